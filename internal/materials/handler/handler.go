package handler

import (
	"printshop_backend/internal/materials/repository"
	"printshop_backend/internal/materials/service"
	"printshop_backend/internal/materials/transport"
	"printshop_backend/platform/httpkit"
	"printshop_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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
	rg.POST("", h.Create)
	rg.POST("/:id/consume", h.Consume)
	rg.DELETE("/:id", h.Deactivate)
}

func (h *Handler) List(c *gin.Context) {
	materials, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		httpkit.Error(c, err)
		return
	}

	out := make([]transport.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, toMaterialResponse(m))
	}
	httpkit.OK(c, out)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequestError(c, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequestError(c, err.Error())
		return
	}

	material, err := h.svc.Create(c.Request.Context(), repository.CreateParams{
		Type:           req.Type,
		Brand:          req.Brand,
		Color:          req.Color,
		ColorHex:       req.ColorHex,
		InitialWeightG: req.InitialWeightG,
		CostPerUnit:    req.CostPerUnit,
	})
	if err != nil {
		httpkit.Error(c, err)
		return
	}

	httpkit.Created(c, toMaterialResponse(material))
}

func (h *Handler) Consume(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequestError(c, "invalid material id")
		return
	}

	var req transport.ConsumeMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequestError(c, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequestError(c, err.Error())
		return
	}

	material, err := h.svc.Consume(c.Request.Context(), id, req.Grams)
	if err != nil {
		httpkit.Error(c, err)
		return
	}

	httpkit.OK(c, toMaterialResponse(material))
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.BadRequestError(c, "invalid material id")
		return
	}

	material, err := h.svc.Deactivate(c.Request.Context(), id)
	if err != nil {
		httpkit.Error(c, err)
		return
	}

	httpkit.OK(c, toMaterialResponse(material))
}

func toMaterialResponse(m repository.Material) transport.MaterialResponse {
	return transport.MaterialResponse{
		ID:               m.ID.String(),
		Type:             m.Type,
		Brand:            m.Brand,
		Color:            m.Color,
		ColorHex:         m.ColorHex,
		InitialWeightG:   m.InitialWeightG,
		RemainingWeightG: m.RemainingWeightG,
		CostPerUnit:      m.CostPerUnit,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
