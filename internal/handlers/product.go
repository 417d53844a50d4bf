package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jbalums/benta-flow-api/internal/models"
	"github.com/jbalums/benta-flow-api/internal/repository"
)

// ProductHandler handles product CRUD.
type ProductHandler struct {
	products repository.ProductRepository
}

// NewProductHandler creates a new ProductHandler instance.
func NewProductHandler(products repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// CreateProductRequest represents the product creation payload.
type CreateProductRequest struct {
	StoreID       int64    `json:"store_id" binding:"required"`
	Name          string   `json:"name" binding:"required,max=255"`
	SKU           *string  `json:"sku" binding:"omitempty,max=100"`
	Description   *string  `json:"description" binding:"omitempty,max=2000"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	StockQuantity *int     `json:"stock_quantity" binding:"required,gte=0"`
	CategoryIDs   []int64  `json:"category_ids" binding:"required,min=1,unique"`
}

// UpdateProductRequest represents the partial product update payload.
type UpdateProductRequest struct {
	StoreID       *int64   `json:"store_id"`
	Name          *string  `json:"name" binding:"omitempty,max=255"`
	SKU           *string  `json:"sku" binding:"omitempty,max=100"`
	Description   *string  `json:"description" binding:"omitempty,max=2000"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	StockQuantity *int     `json:"stock_quantity" binding:"omitempty,gte=0"`
	CategoryIDs   []int64  `json:"category_ids" binding:"omitempty,min=1,unique"`
}

// Index godoc
// @Summary List products
// @Tags products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /products [get]
func (h *ProductHandler) Index(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Store godoc
// @Summary Create a product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateProductRequest true "Product payload"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /products [post]
func (h *ProductHandler) Store(c *gin.Context) {
	var req CreateProductRequest
	if !BindJSON(c, &req) {
		return
	}

	if !h.validateCategories(c, req.CategoryIDs) {
		return
	}

	product := &models.Product{
		StoreID:       req.StoreID,
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		Price:         *req.Price,
		StockQuantity: *req.StockQuantity,
	}

	if err := h.products.Create(c.Request.Context(), product, req.CategoryIDs); err != nil {
		h.respondWriteError(c, err)
		return
	}

	created, err := h.products.FindByID(c.Request.Context(), product.ID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully.",
		"product": created,
	})
}

// Show godoc
// @Summary Show a product
// @Tags products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *ProductHandler) Show(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product id"
// @Param request body UpdateProductRequest true "Product payload"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !BindJSON(c, &req) {
		return
	}

	if req.CategoryIDs != nil && !h.validateCategories(c, req.CategoryIDs) {
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	if req.StoreID != nil {
		product.StoreID = *req.StoreID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.SKU != nil {
		product.SKU = req.SKU
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	product.Store = nil
	product.Categories = nil

	if err := h.products.Update(c.Request.Context(), product, req.CategoryIDs); err != nil {
		h.respondWriteError(c, err)
		return
	}

	updated, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully.",
		"product": updated,
	})
}

// Destroy godoc
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (h *ProductHandler) Destroy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.products.FindByID(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

// validateCategories answers the 422 when any referenced category is
// missing. Returns false when the request has already been answered.
func (h *ProductHandler) validateCategories(c *gin.Context, ids []int64) bool {
	ok, err := h.products.CategoriesExist(c.Request.Context(), ids)
	if err != nil {
		HandleServiceError(c, err)
		return false
	}
	if !ok {
		RespondValidationError(c, map[string][]string{
			"category_ids": {"The selected category_ids is invalid."},
		})
		return false
	}
	return true
}

func (h *ProductHandler) respondWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		RespondValidationError(c, map[string][]string{
			"sku": {"The sku has already been taken."},
		})
	case errors.Is(err, repository.ErrInvalidReference):
		RespondValidationError(c, map[string][]string{
			"store_id": {"The selected store_id is invalid."},
		})
	default:
		HandleServiceError(c, err)
	}
}
