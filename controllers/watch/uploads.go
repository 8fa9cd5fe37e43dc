package watchController

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhishekshak/watchstore-api/models"
)

// uploadDir is where stored image files live; they are served under /uploads.
func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// saveWatchImages stores up to models.MaxWatchImages files and returns their
// image rows in upload order. Stored names are timestamp-prefixed so repeated
// uploads of the same file never collide.
func saveWatchImages(c *gin.Context, files []*multipart.FileHeader) ([]models.WatchImage, error) {
	if len(files) > models.MaxWatchImages {
		return nil, fmt.Errorf("a watch can have at most %d images", models.MaxWatchImages)
	}

	dir := uploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload folder: %w", err)
	}

	images := make([]models.WatchImage, 0, len(files))
	for i, file := range files {
		name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), strings.ReplaceAll(file.Filename, " ", "_"))
		if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
		images = append(images, models.WatchImage{
			Position: i,
			Path:     "/uploads/" + name,
		})
	}
	return images, nil
}

// removeImageFiles deletes stored files for the given rows, best effort.
func removeImageFiles(images []models.WatchImage) {
	dir := uploadDir()
	for _, img := range images {
		name := strings.TrimPrefix(img.Path, "/uploads/")
		if name == "" || name == img.Path {
			continue
		}
		os.Remove(filepath.Join(dir, filepath.Base(name)))
	}
}
