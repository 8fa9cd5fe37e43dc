package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem quantities are always positive; a write that would take a line to
// zero or below removes the line instead.
type CartItem struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	CartID   uint      `gorm:"index" json:"-"`
	WatchID  uint      `gorm:"index" json:"productId"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}
