package models

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// Order is written once at settlement and never mutated. Items carry the cart
// snapshot at purchase time, so later catalog edits do not alter history.
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     string      `gorm:"not null;index" json:"userId"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Amount     int64       `gorm:"not null" json:"amount"` // paisa
	PaymentRef string      `gorm:"uniqueIndex;not null" json:"pidx"`
	Status     OrderStatus `gorm:"type:VARCHAR(10);default:'pending'" json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	OrderID  uint   `gorm:"index" json:"-"`
	WatchID  uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"` // paisa per unit at purchase time
	Image    string `json:"image"`
}
