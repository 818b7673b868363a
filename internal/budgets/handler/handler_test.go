package handler

import (
	"encoding/json"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"printshop_backend/internal/budgets/service"
	"printshop_backend/internal/budgets/transport"
	"printshop_backend/platform/logger"
	"printshop_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func calculateEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.New(nil, nil, logger.New("test"))
	h := New(svc, validator.New())

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/budgets"))
	return engine
}

func TestCalculate_ReturnsBreakdown(t *testing.T) {
	engine := calculateEngine()

	body := `{
		"weightGrams": "100",
		"printHours": "2",
		"printMinutes": "30",
		"materialCostPerKg": "350",
		"electricityCostPerKwh": "3.5",
		"printerWatts": "150",
		"machineWearPerHour": "10",
		"profitMarginPercent": "30",
		"isUrgent": true,
		"isStudent": true
	}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/budgets/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp transport.CalculateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if math.Abs(resp.Total-76.518) > 1e-9 {
		t.Fatalf("expected total 76.518, got %v", resp.Total)
	}
	if math.Abs(resp.StudentDiscount-19.1295) > 1e-9 {
		t.Fatalf("expected discount 19.1295, got %v", resp.StudentDiscount)
	}
}

func TestCalculate_UnparseableFieldsCountAsZero(t *testing.T) {
	engine := calculateEngine()

	body := `{"weightGrams": "not-a-number", "printHours": "1", "machineWearPerHour": "10"}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/budgets/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp transport.CalculateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.MaterialCost != 0 {
		t.Fatalf("expected material cost 0, got %v", resp.MaterialCost)
	}
	if resp.WearCost != 10 {
		t.Fatalf("expected wear cost 10, got %v", resp.WearCost)
	}
}

func TestCalculate_MalformedBodyRejected(t *testing.T) {
	engine := calculateEngine()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/budgets/calculate", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreate_UnauthenticatedRejected(t *testing.T) {
	engine := calculateEngine()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/budgets", strings.NewReader(`{"clientName":"a","projectName":"b"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
