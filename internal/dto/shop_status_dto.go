package dto

import (
	"time"

	"github.com/opsdeck/opsdeck-api/internal/models"
)

// ShopStatusUpdateRequest is the payload accepted by the shop status endpoint.
type ShopStatusUpdateRequest struct {
	ActiveOrders    *int  `json:"active_orders" validate:"required,min=0"`
	AcceptingOrders *bool `json:"accepting_orders" validate:"required"`
}

// ShopStatusResponse serializes the singleton shop status record.
type ShopStatusResponse struct {
	ActiveOrders    int       `json:"active_orders"`
	AcceptingOrders bool      `json:"accepting_orders"`
	UpdatedBy       *uint     `json:"updated_by"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewShopStatusResponse converts the shop status model into a DTO.
func NewShopStatusResponse(status models.ShopStatus) ShopStatusResponse {
	return ShopStatusResponse{
		ActiveOrders:    status.ActiveOrders,
		AcceptingOrders: status.AcceptingOrders,
		UpdatedBy:       status.UpdatedBy,
		UpdatedAt:       status.UpdatedAt,
	}
}
