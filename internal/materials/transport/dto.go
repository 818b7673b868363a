package transport

import "time"

type CreateMaterialRequest struct {
	Type           string  `json:"type" validate:"required,max=60"`
	Brand          string  `json:"brand" validate:"required,max=60"`
	Color          string  `json:"color" validate:"required,max=40"`
	ColorHex       string  `json:"colorHex" validate:"omitempty,hexcolor"`
	InitialWeightG float64 `json:"initialWeightG" validate:"omitempty,gt=0"`
	CostPerUnit    float64 `json:"costPerUnit" validate:"required,gte=0"`
}

type ConsumeMaterialRequest struct {
	Grams float64 `json:"grams" validate:"required,gt=0"`
}

type MaterialResponse struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Brand            string    `json:"brand"`
	Color            string    `json:"color"`
	ColorHex         string    `json:"colorHex"`
	InitialWeightG   float64   `json:"initialWeightG"`
	RemainingWeightG float64   `json:"remainingWeightG"`
	CostPerUnit      float64   `json:"costPerUnit"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
