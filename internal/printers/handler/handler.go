package handler

import (
	"strconv"

	"printshop_backend/internal/printers/repository"
	"printshop_backend/internal/printers/service"
	"printshop_backend/internal/printers/transport"
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
	rg.GET("", h.List)
}

func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/:id/status", h.UpdateStatus)
}

func (h *Handler) List(c *gin.Context) {
	printers, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpkit.Error(c, err)
		return
	}

	out := make([]transport.PrinterResponse, 0, len(printers))
	for _, p := range printers {
		out = append(out, toPrinterResponse(p))
	}
	httpkit.OK(c, out)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.BadRequestError(c, "invalid printer id")
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequestError(c, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequestError(c, err.Error())
		return
	}

	printer, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status, req.CurrentOrderID)
	if err != nil {
		httpkit.Error(c, err)
		return
	}

	httpkit.OK(c, toPrinterResponse(printer))
}

func toPrinterResponse(p repository.Printer) transport.PrinterResponse {
	return transport.PrinterResponse{
		ID:             p.ID,
		Name:           p.Name,
		Model:          p.Model,
		Location:       p.Location,
		Status:         p.Status,
		CurrentOrderID: p.CurrentOrderID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
