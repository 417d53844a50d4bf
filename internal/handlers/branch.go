package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jbalums/benta-flow-api/internal/models"
	"github.com/jbalums/benta-flow-api/internal/repository"
)

// BranchHandler handles branch CRUD.
type BranchHandler struct {
	branches repository.BranchRepository
}

// NewBranchHandler creates a new BranchHandler instance.
func NewBranchHandler(branches repository.BranchRepository) *BranchHandler {
	return &BranchHandler{branches: branches}
}

// CreateBranchRequest represents the branch creation payload.
type CreateBranchRequest struct {
	StoreID  int64   `json:"store_id" binding:"required"`
	Name     string  `json:"name" binding:"required,max=255"`
	Code     *string `json:"code" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Address  *string `json:"address" binding:"omitempty,max=255"`
	City     *string `json:"city" binding:"omitempty,max=120"`
	State    *string `json:"state" binding:"omitempty,max=120"`
	Country  *string `json:"country" binding:"omitempty,max=120"`
	IsActive *bool   `json:"is_active"`
}

// UpdateBranchRequest represents the partial branch update payload.
type UpdateBranchRequest struct {
	StoreID  *int64  `json:"store_id"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Code     *string `json:"code" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Address  *string `json:"address" binding:"omitempty,max=255"`
	City     *string `json:"city" binding:"omitempty,max=120"`
	State    *string `json:"state" binding:"omitempty,max=120"`
	Country  *string `json:"country" binding:"omitempty,max=120"`
	IsActive *bool   `json:"is_active"`
}

// Index godoc
// @Summary List branches
// @Tags branches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /branches [get]
func (h *BranchHandler) Index(c *gin.Context) {
	branches, err := h.branches.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

// Store godoc
// @Summary Create a branch
// @Tags branches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateBranchRequest true "Branch payload"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /branches [post]
func (h *BranchHandler) Store(c *gin.Context) {
	var req CreateBranchRequest
	if !BindJSON(c, &req) {
		return
	}

	branch := &models.Branch{
		StoreID:  req.StoreID,
		Name:     req.Name,
		Code:     req.Code,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Country:  req.Country,
		IsActive: true,
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}

	if err := h.branches.Create(c.Request.Context(), branch); err != nil {
		h.respondWriteError(c, err)
		return
	}

	created, err := h.branches.FindByID(c.Request.Context(), branch.ID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Branch created successfully.",
		"branch":  created,
	})
}

// Show godoc
// @Summary Show a branch
// @Tags branches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Branch id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /branches/{id} [get]
func (h *BranchHandler) Show(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	branch, err := h.branches.FindByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branch": branch})
}

// Update godoc
// @Summary Update a branch
// @Tags branches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Branch id"
// @Param request body UpdateBranchRequest true "Branch payload"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /branches/{id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateBranchRequest
	if !BindJSON(c, &req) {
		return
	}

	branch, err := h.branches.FindByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	if req.StoreID != nil {
		branch.StoreID = *req.StoreID
	}
	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Code != nil {
		branch.Code = req.Code
	}
	if req.Phone != nil {
		branch.Phone = req.Phone
	}
	if req.Address != nil {
		branch.Address = req.Address
	}
	if req.City != nil {
		branch.City = req.City
	}
	if req.State != nil {
		branch.State = req.State
	}
	if req.Country != nil {
		branch.Country = req.Country
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}
	branch.Store = nil

	if err := h.branches.Update(c.Request.Context(), branch); err != nil {
		h.respondWriteError(c, err)
		return
	}

	updated, err := h.branches.FindByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branch updated successfully.",
		"branch":  updated,
	})
}

// Destroy godoc
// @Summary Delete a branch
// @Tags branches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Branch id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /branches/{id} [delete]
func (h *BranchHandler) Destroy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.branches.FindByID(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}

	if err := h.branches.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted successfully."})
}

func (h *BranchHandler) respondWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		RespondValidationError(c, map[string][]string{
			"code": {"The code has already been taken."},
		})
	case errors.Is(err, repository.ErrInvalidReference):
		RespondValidationError(c, map[string][]string{
			"store_id": {"The selected store_id is invalid."},
		})
	default:
		HandleServiceError(c, err)
	}
}
