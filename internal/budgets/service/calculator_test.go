package service

import (
	"math"
	"testing"
)

const eps = 1e-9

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func baseInput() QuoteInput {
	return QuoteInput{
		WeightGrams:           "100",
		PrintHours:            "2",
		PrintMinutes:          "30",
		MaterialCostPerKg:     "350",
		ElectricityCostPerKwh: "3.5",
		PrinterWatts:          "150",
		MachineWearPerHour:    "10",
		ProfitMarginPercent:   "30",
	}
}

func TestCompute_Breakdown(t *testing.T) {
	result := Compute(baseInput())

	if !closeTo(result.TotalHours, 2.5) {
		t.Fatalf("expected total hours 2.5, got %v", result.TotalHours)
	}
	if !closeTo(result.MaterialCost, 35.0) {
		t.Fatalf("expected material cost 35.0, got %v", result.MaterialCost)
	}
	if !closeTo(result.EnergyCost, 1.3125) {
		t.Fatalf("expected energy cost 1.3125, got %v", result.EnergyCost)
	}
	if !closeTo(result.WearCost, 25.0) {
		t.Fatalf("expected wear cost 25.0, got %v", result.WearCost)
	}
	if !closeTo(result.BaseCost, 61.3125) {
		t.Fatalf("expected base cost 61.3125, got %v", result.BaseCost)
	}
	if !closeTo(result.Profit, 18.39375) {
		t.Fatalf("expected profit 18.39375, got %v", result.Profit)
	}
	if !closeTo(result.Subtotal, 79.70625) {
		t.Fatalf("expected subtotal 79.70625, got %v", result.Subtotal)
	}
	if result.UrgencyFee != 0 || result.StudentDiscount != 0 {
		t.Fatalf("expected no fee or discount, got %v and %v", result.UrgencyFee, result.StudentDiscount)
	}
	if !closeTo(result.Total, 79.70625) {
		t.Fatalf("expected total 79.70625, got %v", result.Total)
	}
}

func TestCompute_UrgencySurcharge(t *testing.T) {
	input := baseInput()
	input.IsUrgent = true

	result := Compute(input)

	if !closeTo(result.UrgencyFee, 15.94125) {
		t.Fatalf("expected urgency fee 15.94125, got %v", result.UrgencyFee)
	}
	if !closeTo(result.Total, 95.6475) {
		t.Fatalf("expected total 95.6475, got %v", result.Total)
	}
}

func TestCompute_StudentDiscountAppliesAfterUrgency(t *testing.T) {
	input := baseInput()
	input.IsUrgent = true
	input.IsStudent = true

	result := Compute(input)

	if !closeTo(result.AfterUrgency, 95.6475) {
		t.Fatalf("expected after-urgency 95.6475, got %v", result.AfterUrgency)
	}
	if !closeTo(result.StudentDiscount, 19.1295) {
		t.Fatalf("expected student discount 19.1295, got %v", result.StudentDiscount)
	}
	if !closeTo(result.Total, 76.518) {
		t.Fatalf("expected total 76.518, got %v", result.Total)
	}
}

func TestCompute_UnparseableInputCountsAsZero(t *testing.T) {
	input := baseInput()
	input.WeightGrams = "abc"
	input.PrintMinutes = ""

	result := Compute(input)

	if !closeTo(result.MaterialCost, 0) {
		t.Fatalf("expected material cost 0, got %v", result.MaterialCost)
	}
	if !closeTo(result.TotalHours, 2.0) {
		t.Fatalf("expected total hours 2.0, got %v", result.TotalHours)
	}
}

func TestCompute_ZeroInputYieldsZeroTotal(t *testing.T) {
	result := Compute(QuoteInput{IsUrgent: true, IsStudent: true})

	if result.Total != 0 {
		t.Fatalf("expected total 0, got %v", result.Total)
	}
	if result.UrgencyFee != 0 || result.StudentDiscount != 0 {
		t.Fatalf("expected zero fee and discount, got %v and %v", result.UrgencyFee, result.StudentDiscount)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	input := baseInput()
	input.IsUrgent = true
	input.IsStudent = true

	first := Compute(input)
	for i := 0; i < 10; i++ {
		if Compute(input) != first {
			t.Fatalf("expected identical result on repeat computation")
		}
	}
}

func TestCompute_TotalGrowsWithWeight(t *testing.T) {
	light := baseInput()
	heavy := baseInput()
	heavy.WeightGrams = "500"

	if Compute(heavy).Total <= Compute(light).Total {
		t.Fatalf("expected heavier print to cost more")
	}
}
