package main

import (
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"
)

// runDailySnapshots copies the uploads directory into a timestamped folder
// under backupDir once a day at the given wall-clock time, then prunes
// snapshots older than the retention window.
func runDailySnapshots(srcDir, backupDir string, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("Next image snapshot scheduled at %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		dest := filepath.Join(backupDir, time.Now().Format("2006-01-02_15-04-05"))
		if err := snapshotDir(srcDir, dest); err != nil {
			log.Printf("Failed to snapshot images: %v", err)
		} else {
			log.Printf("Images snapshotted to %s", dest)
		}

		pruneSnapshots(backupDir, retention)
	}
}

// snapshotDir mirrors src into dest.
func snapshotDir(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// pruneSnapshots removes snapshot folders older than the retention window.
func pruneSnapshots(backupDir string, retention time.Duration) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		log.Printf("Failed to read backup directory: %v", err)
		return
	}

	cutoff := time.Now().Add(-retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(backupDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			log.Printf("Failed to remove old snapshot %s: %v", path, err)
		} else {
			log.Printf("Removed old snapshot: %s", path)
		}
	}
}
