package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jbalums/benta-flow-api/internal/models"
	"github.com/jbalums/benta-flow-api/internal/repository"
)

// CategoryHandler handles product category CRUD.
type CategoryHandler struct {
	categories repository.CategoryRepository
}

// NewCategoryHandler creates a new CategoryHandler instance.
func NewCategoryHandler(categories repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// CreateCategoryRequest represents the category creation payload.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// UpdateCategoryRequest represents the partial category update payload.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// Index godoc
// @Summary List product categories
// @Tags product-categories
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /product-categories [get]
func (h *CategoryHandler) Index(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Store godoc
// @Summary Create a product category
// @Tags product-categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category payload"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /product-categories [post]
func (h *CategoryHandler) Store(c *gin.Context) {
	var req CreateCategoryRequest
	if !BindJSON(c, &req) {
		return
	}

	category := &models.ProductCategory{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.categories.Create(c.Request.Context(), category); err != nil {
		h.respondWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Product category created successfully.",
		"category": category,
	})
}

// Show godoc
// @Summary Show a product category
// @Tags product-categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /product-categories/{id} [get]
func (h *CategoryHandler) Show(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := h.categories.FindByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// Update godoc
// @Summary Update a product category
// @Tags product-categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category id"
// @Param request body UpdateCategoryRequest true "Category payload"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /product-categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if !BindJSON(c, &req) {
		return
	}

	category, err := h.categories.FindByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}

	if err := h.categories.Update(c.Request.Context(), category); err != nil {
		h.respondWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Product category updated successfully.",
		"category": category,
	})
}

// Destroy godoc
// @Summary Delete a product category
// @Tags product-categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /product-categories/{id} [delete]
func (h *CategoryHandler) Destroy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.categories.FindByID(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product category deleted successfully."})
}

func (h *CategoryHandler) respondWriteError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrDuplicate) {
		RespondValidationError(c, map[string][]string{
			"name": {"The name has already been taken."},
		})
		return
	}
	HandleServiceError(c, err)
}
