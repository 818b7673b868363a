package transport

import "time"

type UpdateStatusRequest struct {
	Status         string  `json:"status" validate:"required,oneof=available busy maintenance"`
	CurrentOrderID *string `json:"currentOrderId" validate:"omitempty,max=60"`
}

type PrinterResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Model          string    `json:"model"`
	Location       *string   `json:"location,omitempty"`
	Status         string    `json:"status"`
	CurrentOrderID *string   `json:"currentOrderId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
