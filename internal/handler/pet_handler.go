package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adota-pet/service-adoption/internal/application"
	"github.com/adota-pet/service-adoption/internal/auth"
	"github.com/adota-pet/service-adoption/internal/middleware"
	"github.com/adota-pet/service-adoption/internal/response"
)

// PetHandler handles HTTP requests for pet catalog operations.
type PetHandler struct {
	service   *application.PetService
	uploadDir string
}

// NewPetHandler creates a new PetHandler. uploadDir is where pet
// images are stored; they are served back under /uploads.
func NewPetHandler(service *application.PetService, uploadDir string) *PetHandler {
	return &PetHandler{service: service, uploadDir: uploadDir}
}

// RegisterRoutes registers all pet routes on the given router group.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminMW := middleware.RequireRole(auth.RoleAdmin)

	pets := r.Group("/api/v1/pets")
	{
		pets.GET("", h.ListAvailable)
		pets.GET("/:id", h.GetPet)
		pets.POST("", authMW, adminMW, h.CreatePet)
		pets.PUT("/:id", authMW, adminMW, h.UpdatePet)
		pets.DELETE("/:id", authMW, adminMW, h.DeletePet)
		pets.POST("/:id/image", authMW, adminMW, h.UploadImage)
	}

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminMW)
	{
		admin.GET("/pets", h.ListAll)
	}
}

// ListAvailable handles GET /api/v1/pets. Public catalog of pets still
// open for adoption.
func (h *PetHandler) ListAvailable(c *gin.Context) {
	result, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListAll handles GET /api/v1/admin/pets. Includes adopted pets.
func (h *PetHandler) ListAll(c *gin.Context) {
	result, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetPet handles GET /api/v1/pets/:id.
func (h *PetHandler) GetPet(c *gin.Context) {
	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreatePet handles POST /api/v1/pets.
func (h *PetHandler) CreatePet(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreatePetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdatePet handles PUT /api/v1/pets/:id.
func (h *PetHandler) UpdatePet(c *gin.Context) {
	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	var req application.UpdatePetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), petID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeletePet handles DELETE /api/v1/pets/:id.
func (h *PetHandler) DeletePet(c *gin.Context) {
	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), petID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UploadImage handles POST /api/v1/pets/:id/image. Accepts a multipart
// form with an "image" file, stores it under the upload dir with a
// generated name, and records its public URL on the pet.
func (h *PetHandler) UploadImage(c *gin.Context) {
	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.BadRequest(c, "unsupported image type")
		return
	}

	filename := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	result, err := h.service.SetImage(c.Request.Context(), petID, "/uploads/"+filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
