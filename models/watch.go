package models

import "time"

type WatchGender string

const (
	GenderMen    WatchGender = "Men"
	GenderWomen  WatchGender = "Women"
	GenderUnisex WatchGender = "Unisex"
)

// MaxWatchImages caps how many image files one watch may carry.
const MaxWatchImages = 4

// Specifications is the fixed set of spec fields shown on the product page.
type Specifications struct {
	Movement        string `json:"movement"`
	CaseMaterial    string `json:"caseMaterial"`
	WaterResistance string `json:"waterResistance"`
	Strap           string `json:"strap"`
}

type Watch struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	Brand           string         `gorm:"not null" json:"brand"`
	Price           int64          `gorm:"not null" json:"price"`     // paisa
	DiscountedPrice *int64         `json:"discountedPrice,omitempty"` // paisa, never above Price
	Description     string         `json:"description"`
	Features        []WatchFeature `gorm:"foreignKey:WatchID;constraint:OnDelete:CASCADE" json:"features"`
	Specifications  Specifications `gorm:"embedded;embeddedPrefix:spec_" json:"specifications"`
	Images          []WatchImage   `gorm:"foreignKey:WatchID;constraint:OnDelete:CASCADE" json:"images"`
	Gender          WatchGender    `gorm:"type:VARCHAR(10);default:'Unisex'" json:"gender"`
	DisplayInHome   bool           `gorm:"default:false" json:"displayInHome"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// WatchFeature is one bullet of the ordered feature list.
type WatchFeature struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	WatchID  uint   `gorm:"index" json:"-"`
	Position int    `json:"-"`
	Text     string `json:"text"`
}

// WatchImage references one stored image file, served under /uploads.
type WatchImage struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	WatchID  uint   `gorm:"index" json:"-"`
	Position int    `json:"-"`
	Path     string `json:"path"`
}
