package handler

import (
	"net/http"

	"printshop_backend/internal/profiles/repository"
	"printshop_backend/internal/profiles/service"
	"printshop_backend/internal/profiles/transport"
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
	rg.GET("/me", h.GetMe)
	rg.PATCH("/me", h.UpdateMe)
	rg.POST("/me/avatar", h.UploadAvatar)
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := httpkit.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.svc.GetOwn(c.Request.Context(), userID)
	if err != nil {
		httpkit.Error(c, err)
		return
	}

	httpkit.OK(c, toProfileResponse(profile))
}

func (h *Handler) UpdateMe(c *gin.Context) {
	userID, ok := httpkit.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req transport.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequestError(c, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequestError(c, err.Error())
		return
	}

	profile, err := h.svc.UpdateOwn(c.Request.Context(), userID, repository.UpdateParams{
		FullName:      req.FullName,
		Info:          req.Info,
		IsExternal:    req.IsExternal,
		ControlNumber: req.ControlNumber,
		Career:        req.Career,
		Semester:      req.Semester,
	})
	if err != nil {
		httpkit.Error(c, err)
		return
	}

	httpkit.OK(c, toProfileResponse(profile))
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	userID, ok := httpkit.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		httpkit.BadRequestError(c, "avatar file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.BadRequestError(c, "could not read avatar file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	profile, err := h.svc.UploadAvatar(c.Request.Context(), userID, contentType, file, fileHeader.Size)
	if err != nil {
		httpkit.Error(c, err)
		return
	}

	httpkit.OK(c, toProfileResponse(profile))
}

func toProfileResponse(p repository.Profile) transport.ProfileResponse {
	return transport.ProfileResponse{
		UserID:        p.UserID.String(),
		FullName:      p.FullName,
		Email:         p.Email,
		Role:          p.Role,
		AvatarURL:     p.AvatarURL,
		Info:          p.Info,
		IsExternal:    p.IsExternal,
		ControlNumber: p.ControlNumber,
		Career:        p.Career,
		Semester:      p.Semester,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
