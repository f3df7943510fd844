package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adota-pet/service-adoption/internal/application"
	"github.com/adota-pet/service-adoption/internal/auth"
	"github.com/adota-pet/service-adoption/internal/middleware"
	"github.com/adota-pet/service-adoption/internal/response"
)

// AdopterHandler handles HTTP requests for adopter profiles.
type AdopterHandler struct {
	service *application.AdopterService
}

// NewAdopterHandler creates a new AdopterHandler.
func NewAdopterHandler(service *application.AdopterService) *AdopterHandler {
	return &AdopterHandler{service: service}
}

// RegisterRoutes registers all adopter routes on the given router
// group. Creation is open so the public adoption form can register a
// profile; everything else is admin-only.
func (h *AdopterHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminMW := middleware.RequireRole(auth.RoleAdmin)

	adopters := r.Group("/api/v1/adopters")
	{
		adopters.POST("", h.CreateAdopter)
		adopters.GET("", authMW, adminMW, h.ListAdopters)
		adopters.GET("/:id", authMW, adminMW, h.GetAdopter)
		adopters.PUT("/:id", authMW, adminMW, h.UpdateAdopter)
		adopters.DELETE("/:id", authMW, adminMW, h.DeleteAdopter)
	}
}

// CreateAdopter handles POST /api/v1/adopters.
func (h *AdopterHandler) CreateAdopter(c *gin.Context) {
	var req application.CreateAdopterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListAdopters handles GET /api/v1/adopters.
func (h *AdopterHandler) ListAdopters(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetAdopter handles GET /api/v1/adopters/:id.
func (h *AdopterHandler) GetAdopter(c *gin.Context) {
	adopterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid adopter ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), adopterID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateAdopter handles PUT /api/v1/adopters/:id.
func (h *AdopterHandler) UpdateAdopter(c *gin.Context) {
	adopterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid adopter ID")
		return
	}

	var req application.UpdateAdopterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), adopterID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteAdopter handles DELETE /api/v1/adopters/:id.
func (h *AdopterHandler) DeleteAdopter(c *gin.Context) {
	adopterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid adopter ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), adopterID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
