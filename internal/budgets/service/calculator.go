package service

import (
	"strconv"
	"strings"
)

// Pricing defaults for a fresh quote form. Values are strings because
// the form keeps every numeric field as raw user input.
const (
	DefaultMaterialCostPerKg     = "350"
	DefaultElectricityCostPerKwh = "3.5"
	DefaultPrinterWatts          = "150"
	DefaultMachineWearPerHour    = "10"
	DefaultProfitMarginPercent   = "30"
)

// Fixed surcharge and discount rates.
const (
	UrgencySurchargePercent = 20.0
	StudentDiscountPercent  = 20.0
)

// QuoteInput carries the raw form values for a price calculation.
// Numeric fields are strings: empty or unparseable input counts as
// zero so the live total stays renderable while the user types.
type QuoteInput struct {
	WeightGrams           string
	PrintHours            string
	PrintMinutes          string
	MaterialCostPerKg     string
	ElectricityCostPerKwh string
	PrinterWatts          string
	MachineWearPerHour    string
	ProfitMarginPercent   string
	IsUrgent              bool
	IsStudent             bool
}

// QuoteResult is the full cost breakdown. No rounding is applied;
// display formatting is the client's concern.
type QuoteResult struct {
	TotalHours      float64
	MaterialCost    float64
	EnergyCost      float64
	WearCost        float64
	BaseCost        float64
	Profit          float64
	Subtotal        float64
	UrgencyFee      float64
	AfterUrgency    float64
	StudentDiscount float64
	Total           float64
}

// parseAmount coerces raw form input to a float. Empty and unparseable
// strings become zero; no error is ever raised.
func parseAmount(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

// Compute calculates the quote total. It is pure and deterministic:
// same input, same output, no I/O. The arithmetic order is fixed and
// negative intermediate values propagate without clamping.
func Compute(in QuoteInput) QuoteResult {
	totalHours := parseAmount(in.PrintHours) + parseAmount(in.PrintMinutes)/60.0

	materialCost := (parseAmount(in.MaterialCostPerKg) / 1000.0) * parseAmount(in.WeightGrams)
	energyCost := (parseAmount(in.PrinterWatts) / 1000.0) * totalHours * parseAmount(in.ElectricityCostPerKwh)
	wearCost := parseAmount(in.MachineWearPerHour) * totalHours

	baseCost := materialCost + energyCost + wearCost
	profit := baseCost * parseAmount(in.ProfitMarginPercent) / 100.0
	subtotal := baseCost + profit

	var urgencyFee float64
	if in.IsUrgent {
		urgencyFee = subtotal * UrgencySurchargePercent / 100.0
	}
	afterUrgency := subtotal + urgencyFee

	var studentDiscount float64
	if in.IsStudent {
		studentDiscount = afterUrgency * StudentDiscountPercent / 100.0
	}

	return QuoteResult{
		TotalHours:      totalHours,
		MaterialCost:    materialCost,
		EnergyCost:      energyCost,
		WearCost:        wearCost,
		BaseCost:        baseCost,
		Profit:          profit,
		Subtotal:        subtotal,
		UrgencyFee:      urgencyFee,
		AfterUrgency:    afterUrgency,
		StudentDiscount: studentDiscount,
		Total:           afterUrgency - studentDiscount,
	}
}
