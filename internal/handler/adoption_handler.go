package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adota-pet/service-adoption/internal/application"
	"github.com/adota-pet/service-adoption/internal/auth"
	"github.com/adota-pet/service-adoption/internal/middleware"
	"github.com/adota-pet/service-adoption/internal/response"
)

// AdoptionHandler handles HTTP requests for adoption requests and the
// adoption history.
type AdoptionHandler struct {
	service *application.AdoptionService
}

// NewAdoptionHandler creates a new AdoptionHandler.
func NewAdoptionHandler(service *application.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{service: service}
}

// RegisterRoutes registers all adoption routes on the given router
// group.
func (h *AdoptionHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminMW := middleware.RequireRole(auth.RoleAdmin)

	requests := r.Group("/api/v1/adoption-requests")
	requests.Use(authMW)
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", adminMW, h.ListRequests)
		requests.PUT("/:id", adminMW, h.UpdateRequestStatus)
	}

	adoptions := r.Group("/api/v1/adoptions")
	adoptions.Use(authMW, adminMW)
	{
		adoptions.GET("", h.ListAdoptions)
		adoptions.GET("/:id", h.GetAdoption)
	}

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminMW)
	{
		admin.GET("/stats/adoption-requests", h.GetRequestStats)
	}
}

// CreateRequest handles POST /api/v1/adoption-requests.
func (h *AdoptionHandler) CreateRequest(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRequest(c.Request.Context(), email, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListRequests handles GET /api/v1/adoption-requests.
func (h *AdoptionHandler) ListRequests(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListRequests(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// UpdateRequestStatus handles PUT /api/v1/adoption-requests/:id.
func (h *AdoptionHandler) UpdateRequestStatus(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request ID")
		return
	}

	var req application.UpdateRequestStatusInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateRequestStatus(c.Request.Context(), requestID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetRequestStats handles GET /api/v1/admin/stats/adoption-requests.
func (h *AdoptionHandler) GetRequestStats(c *gin.Context) {
	result, err := h.service.GetRequestStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListAdoptions handles GET /api/v1/adoptions.
func (h *AdoptionHandler) ListAdoptions(c *gin.Context) {
	result, err := h.service.ListAdoptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetAdoption handles GET /api/v1/adoptions/:id.
func (h *AdoptionHandler) GetAdoption(c *gin.Context) {
	adoptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid adoption ID")
		return
	}

	result, err := h.service.GetAdoption(c.Request.Context(), adoptionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parsePagination extracts page and limit query parameters with
// defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
