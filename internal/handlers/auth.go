package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jbalums/benta-flow-api/internal/metrics"
	"github.com/jbalums/benta-flow-api/internal/middleware"
	"github.com/jbalums/benta-flow-api/internal/service"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	metrics     *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		metrics:     m,
	}
}

// SignupRequest represents the local signup payload.
type SignupRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// GoogleSignupRequest represents the Google signup/login payload.
type GoogleSignupRequest struct {
	IDToken string `json:"id_token" binding:"required"`
	Name    string `json:"name" binding:"omitempty,max=255"`
}

// LoginRequest represents the local login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// StoreDetailsRequest represents the store-details upsert payload.
type StoreDetailsRequest struct {
	Name             string  `json:"name" binding:"required,max=255"`
	BusinessType     string  `json:"business_type" binding:"required,business_type"`
	NatureOfBusiness string  `json:"nature_of_business" binding:"required,max=500"`
	Phone            *string `json:"phone" binding:"omitempty,max=30"`
	Address          *string `json:"address" binding:"omitempty,max=255"`
	City             *string `json:"city" binding:"omitempty,max=120"`
	State            *string `json:"state" binding:"omitempty,max=120"`
	Country          *string `json:"country" binding:"omitempty,max=120"`
	Website          *string `json:"website" binding:"omitempty,url,max=255"`
}

// Signup godoc
// @Summary Register a local account
// @Description Create an OWNER account with email and password, returning a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !BindJSON(c, &req) {
		h.metrics.RecordAuth(metrics.OpSignup, metrics.OutcomeRejected)
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.metrics.RecordAuth(metrics.OpSignup, authOutcome(err))
		HandleServiceError(c, err)
		return
	}

	h.metrics.RecordAuth(metrics.OpSignup, metrics.OutcomeSuccess)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful.",
		"token":   result.Token,
		"user":    result.User,
	})
}

// GoogleSignup godoc
// @Summary Sign up or log in with a Google ID token
// @Description Verify the ID token with Google and resolve it to an existing or new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleSignupRequest true "Google signup payload"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /auth/signup/google [post]
func (h *AuthHandler) GoogleSignup(c *gin.Context) {
	var req GoogleSignupRequest
	if !BindJSON(c, &req) {
		h.metrics.RecordAuth(metrics.OpGoogleAuth, metrics.OutcomeRejected)
		return
	}

	result, err := h.authService.GoogleAuth(c.Request.Context(), req.IDToken, req.Name)
	if err != nil {
		h.metrics.RecordAuth(metrics.OpGoogleAuth, authOutcome(err))
		HandleServiceError(c, err)
		return
	}

	status := http.StatusOK
	message := "Login successful."
	if result.Created {
		status = http.StatusCreated
		message = "Signup successful."
	}

	h.metrics.RecordAuth(metrics.OpGoogleAuth, metrics.OutcomeSuccess)
	c.JSON(status, gin.H{
		"message": message,
		"token":   result.Token,
		"user":    result.User,
	})
}

// Login godoc
// @Summary Log in with email and password
// @Description Authenticate a local account and return a fresh bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !BindJSON(c, &req) {
		h.metrics.RecordAuth(metrics.OpLogin, metrics.OutcomeRejected)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.RecordAuth(metrics.OpLogin, authOutcome(err))
		HandleServiceError(c, err)
		return
	}

	h.metrics.RecordAuth(metrics.OpLogin, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   result.Token,
		"user":    result.User,
	})
}

// Me godoc
// @Summary Current profile
// @Description Return the authenticated user's profile with store setup state
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)

	payload, err := h.authService.Profile(c.Request.Context(), user.ID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": payload})
}

// Logout godoc
// @Summary Log out
// @Description Delete the access token the caller authenticated with; other tokens stay valid
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := middleware.CurrentTokenID(c)

	if err := h.authService.Logout(c.Request.Context(), tokenID); err != nil {
		h.metrics.RecordAuth(metrics.OpLogout, metrics.OutcomeError)
		LogAndRespondError(c, http.StatusInternalServerError, err, "Logout failed.")
		return
	}

	h.metrics.RecordAuth(metrics.OpLogout, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// StoreDetails godoc
// @Summary Save store details
// @Description Create or update the caller's store, keyed on the owning user
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body StoreDetailsRequest true "Store details payload"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /auth/store-details [post]
func (h *AuthHandler) StoreDetails(c *gin.Context) {
	var req StoreDetailsRequest
	if !BindJSON(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	store, payload, err := h.authService.UpsertStoreDetails(c.Request.Context(), user.ID, service.StoreDetailsInput{
		Name:             req.Name,
		BusinessType:     req.BusinessType,
		NatureOfBusiness: req.NatureOfBusiness,
		Phone:            req.Phone,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		Country:          req.Country,
		Website:          req.Website,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store details saved successfully.",
		"store":   store,
		"user":    payload,
	})
}

// authOutcome classifies a service error for the auth metrics.
func authOutcome(err error) string {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}
