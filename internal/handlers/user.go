package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jbalums/benta-flow-api/internal/models"
	"github.com/jbalums/benta-flow-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles administrative user CRUD.
type UserHandler struct {
	users repository.UserRepository
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// CreateUserRequest represents the user creation payload.
type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password string  `json:"password" binding:"required,min=8"`
	Role     *string `json:"role" binding:"omitempty,max=20"`
}

// UpdateUserRequest represents the partial user update payload.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Role     *string `json:"role" binding:"omitempty,max=20"`
}

// Index godoc
// @Summary List users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users [get]
func (h *UserHandler) Index(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Store godoc
// @Summary Create a user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User payload"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /users [post]
func (h *UserHandler) Store(c *gin.Context) {
	var req CreateUserRequest
	if !BindJSON(c, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		LogAndRespondError(c, http.StatusInternalServerError, err, "Something went wrong.")
		return
	}

	role := models.RoleCashier
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		AuthProvider: models.ProviderLocal,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			RespondValidationError(c, map[string][]string{
				"email": {"The email has already been taken."},
			})
			return
		}
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully.",
		"user":    user,
	})
}

// Show godoc
// @Summary Show a user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func (h *UserHandler) Show(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param request body UpdateUserRequest true "User payload"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !BindJSON(c, &req) {
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			LogAndRespondError(c, http.StatusInternalServerError, err, "Something went wrong.")
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := h.users.Update(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			RespondValidationError(c, map[string][]string{
				"email": {"The email has already been taken."},
			})
			return
		}
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully.",
		"user":    user,
	})
}

// Destroy godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [delete]
func (h *UserHandler) Destroy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.users.FindByID(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}

// pathID parses the numeric id path parameter, answering 404 on garbage.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusNotFound, "Resource not found.")
		return 0, false
	}
	return id, true
}
