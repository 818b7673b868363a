package handler

import (
	"net/http"
	"strconv"
	"strings"

	"printshop_backend/internal/budgets/repository"
	"printshop_backend/internal/budgets/service"
	"printshop_backend/internal/budgets/transport"
	"printshop_backend/platform/httpkit"
	"printshop_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/calculate", h.Calculate)
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.DELETE("/:id", h.Delete)
}

// Calculate returns the cost breakdown without persisting anything.
func (h *Handler) Calculate(c *gin.Context) {
	var req transport.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequestError(c, "invalid request")
		return
	}

	result := h.svc.Calculate(toQuoteInput(req))
	httpkit.OK(c, toCalculateResponse(result))
}

// Create recomputes the total server-side from the submitted pricing
// input, so the persisted total always matches the calculator.
func (h *Handler) Create(c *gin.Context) {
	userID, ok := httpkit.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req transport.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequestError(c, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequestError(c, err.Error())
		return
	}

	input := toQuoteInput(req.CalculateRequest)
	result := h.svc.Calculate(input)

	draft := service.BudgetDraft{
		ClientName:     req.ClientName,
		ProjectName:    req.ProjectName,
		TotalCost:      result.Total,
		Grams:          parseGrams(req.WeightGrams),
		PrintTimeHours: result.TotalHours,
		IsUrgent:       req.IsUrgent,
	}
	if d := strings.TrimSpace(req.DeliveryDate); d != "" {
		draft.DeliveryDate = &d
	}
	if n := strings.TrimSpace(req.Notes); n != "" {
		draft.Notes = &n
	}

	budget, err := h.svc.Create(c.Request.Context(), userID, draft)
	if err != nil {
		httpkit.Error(c, err)
		return
	}

	httpkit.Created(c, toBudgetResponse(budget))
}

func (h *Handler) List(c *gin.Context) {
	userID, ok := httpkit.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	budgets, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		httpkit.Error(c, err)
		return
	}

	out := make([]transport.BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toBudgetResponse(b))
	}
	httpkit.OK(c, out)
}

func (h *Handler) Delete(c *gin.Context) {
	userID, ok := httpkit.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.BadRequestError(c, "invalid budget id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, userID); err != nil {
		httpkit.Error(c, err)
		return
	}

	httpkit.NoContent(c)
}

func parseGrams(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

func toQuoteInput(req transport.CalculateRequest) service.QuoteInput {
	return service.QuoteInput{
		WeightGrams:           req.WeightGrams,
		PrintHours:            req.PrintHours,
		PrintMinutes:          req.PrintMinutes,
		MaterialCostPerKg:     req.MaterialCostPerKg,
		ElectricityCostPerKwh: req.ElectricityCostPerKwh,
		PrinterWatts:          req.PrinterWatts,
		MachineWearPerHour:    req.MachineWearPerHour,
		ProfitMarginPercent:   req.ProfitMarginPercent,
		IsUrgent:              req.IsUrgent,
		IsStudent:             req.IsStudent,
	}
}

func toCalculateResponse(r service.QuoteResult) transport.CalculateResponse {
	return transport.CalculateResponse{
		TotalHours:      r.TotalHours,
		MaterialCost:    r.MaterialCost,
		EnergyCost:      r.EnergyCost,
		WearCost:        r.WearCost,
		BaseCost:        r.BaseCost,
		Profit:          r.Profit,
		Subtotal:        r.Subtotal,
		UrgencyFee:      r.UrgencyFee,
		AfterUrgency:    r.AfterUrgency,
		StudentDiscount: r.StudentDiscount,
		Total:           r.Total,
	}
}

func toBudgetResponse(b repository.Budget) transport.BudgetResponse {
	return transport.BudgetResponse{
		ID:             b.ID,
		ClientName:     b.ClientName,
		ProjectName:    b.ProjectName,
		TotalCost:      b.TotalCost,
		Grams:          b.Grams,
		PrintTimeHours: b.PrintTimeHours,
		IsUrgent:       b.IsUrgent,
		DeliveryDate:   b.DeliveryDate,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
	}
}
