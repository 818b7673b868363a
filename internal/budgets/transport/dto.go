package transport

import "time"

// CalculateRequest mirrors the quote form: numeric fields arrive as
// raw strings and coerce to zero when unparseable.
type CalculateRequest struct {
	WeightGrams           string `json:"weightGrams"`
	PrintHours            string `json:"printHours"`
	PrintMinutes          string `json:"printMinutes"`
	MaterialCostPerKg     string `json:"materialCostPerKg"`
	ElectricityCostPerKwh string `json:"electricityCostPerKwh"`
	PrinterWatts          string `json:"printerWatts"`
	MachineWearPerHour    string `json:"machineWearPerHour"`
	ProfitMarginPercent   string `json:"profitMarginPercent"`
	IsUrgent              bool   `json:"isUrgent"`
	IsStudent             bool   `json:"isStudent"`
}

type CalculateResponse struct {
	TotalHours      float64 `json:"totalHours"`
	MaterialCost    float64 `json:"materialCost"`
	EnergyCost      float64 `json:"energyCost"`
	WearCost        float64 `json:"wearCost"`
	BaseCost        float64 `json:"baseCost"`
	Profit          float64 `json:"profit"`
	Subtotal        float64 `json:"subtotal"`
	UrgencyFee      float64 `json:"urgencyFee"`
	AfterUrgency    float64 `json:"afterUrgency"`
	StudentDiscount float64 `json:"studentDiscount"`
	Total           float64 `json:"total"`
}

// CreateBudgetRequest is the full form payload: descriptive fields
// plus the pricing input the server recomputes the total from.
type CreateBudgetRequest struct {
	ClientName   string `json:"clientName" validate:"required,max=120"`
	ProjectName  string `json:"projectName" validate:"required,max=120"`
	DeliveryDate string `json:"deliveryDate" validate:"omitempty,datetime=2006-01-02"`
	Notes        string `json:"notes" validate:"omitempty,max=1000"`

	CalculateRequest
}

type BudgetResponse struct {
	ID             int64      `json:"id"`
	ClientName     string     `json:"clientName"`
	ProjectName    string     `json:"projectName"`
	TotalCost      float64    `json:"totalCost"`
	Grams          float64    `json:"grams"`
	PrintTimeHours float64    `json:"printTimeHours"`
	IsUrgent       bool       `json:"isUrgent"`
	DeliveryDate   *time.Time `json:"deliveryDate,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
