package models

import "time"

// ShopStatus is a singleton record describing whether the shop is taking orders.
// Only one row is expected to exist; updates overwrite it in place.
type ShopStatus struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ActiveOrders    int       `gorm:"not null" json:"active_orders"`
	AcceptingOrders bool      `gorm:"not null" json:"accepting_orders"`
	UpdatedBy       *uint     `json:"updated_by"`
	UpdatedAt       time.Time `json:"updated_at"`
}
