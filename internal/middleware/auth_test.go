package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jbalums/benta-flow-api/internal/models"
	"github.com/jbalums/benta-flow-api/internal/repository"
	"github.com/jbalums/benta-flow-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// =============================================================================
// Stubs
// =============================================================================

type stubTokenService struct {
	resolveFunc func(ctx context.Context, plaintext string) (*models.AccessToken, error)
}

func (s *stubTokenService) Issue(ctx context.Context, userID int64) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubTokenService) Resolve(ctx context.Context, plaintext string) (*models.AccessToken, error) {
	if s.resolveFunc != nil {
		return s.resolveFunc(ctx, plaintext)
	}
	return nil, service.ErrTokenInvalid
}

func (s *stubTokenService) Revoke(ctx context.Context, tokenID int64) error {
	return errors.New("not implemented")
}

type stubUserFinder struct {
	findByIDFunc func(ctx context.Context, id int64) (*models.User, error)
}

func (s *stubUserFinder) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if s.findByIDFunc != nil {
		return s.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserFinder) FindByIDWithStore(ctx context.Context, id int64) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserFinder) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserFinder) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserFinder) List(ctx context.Context) ([]models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserFinder) Create(ctx context.Context, user *models.User) error {
	return errors.New("not implemented")
}

func (s *stubUserFinder) Update(ctx context.Context, user *models.User) error {
	return errors.New("not implemented")
}

func (s *stubUserFinder) Delete(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}

// =============================================================================
// Helpers
// =============================================================================

// protectedRouter wires RequireAuth in front of a probe handler that
// reports what the middleware stored on the context.
func protectedRouter(tokens service.TokenService, users repository.UserRepository) *gin.Engine {
	router := gin.New()
	router.GET("/protected", RequireAuth(tokens, users), func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":  user.ID,
			"token_id": CurrentTokenID(c),
		})
	})
	return router
}

func get(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// =============================================================================
// RequireAuth
// =============================================================================

func TestRequireAuth(t *testing.T) {
	tokens := &stubTokenService{
		resolveFunc: func(ctx context.Context, plaintext string) (*models.AccessToken, error) {
			if plaintext != "5|secret" {
				return nil, service.ErrTokenInvalid
			}
			return &models.AccessToken{ID: 5, UserID: 9}, nil
		},
	}
	users := &stubUserFinder{
		findByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleOwner}, nil
		},
	}
	router := protectedRouter(tokens, users)

	rec := get(router, "/protected", "Bearer 5|secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	if body := rec.Body.String(); body != `{"token_id":5,"user_id":9}` {
		t.Errorf("context values = %s", body)
	}
}

func TestRequireAuthRejects(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
	}{
		{"no header", ""},
		{"not a bearer scheme", "Basic dXNlcjpwYXNz"},
		{"bearer with no token", "Bearer"},
		{"invalid token", "Bearer 5|wrong"},
	}

	tokens := &stubTokenService{} // resolves nothing
	router := protectedRouter(tokens, &stubUserFinder{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(router, "/protected", tt.authorization)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if body := rec.Body.String(); body != `{"message":"Unauthenticated."}` {
				t.Errorf("body = %s", body)
			}
		})
	}
}

func TestRequireAuthRejectsWhenUserDeleted(t *testing.T) {
	// A valid token whose user row is gone must not authenticate.
	tokens := &stubTokenService{
		resolveFunc: func(ctx context.Context, plaintext string) (*models.AccessToken, error) {
			return &models.AccessToken{ID: 5, UserID: 9}, nil
		},
	}
	router := protectedRouter(tokens, &stubUserFinder{})

	rec := get(router, "/protected", "Bearer 5|secret")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

// =============================================================================
// RequireRole
// =============================================================================

func TestRequireRole(t *testing.T) {
	tests := []struct {
		role       string
		wantStatus int
	}{
		{models.RoleOwner, http.StatusOK},
		{models.RoleAdmin, http.StatusOK},
		{models.RoleCashier, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			router := gin.New()
			router.GET("/admin",
				func(c *gin.Context) {
					c.Set(ContextUserKey, &models.User{ID: 1, Role: tt.role})
				},
				RequireRole(models.RoleOwner, models.RoleAdmin),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			rec := get(router, "/admin", "")
			if rec.Code != tt.wantStatus {
				t.Errorf("role %s: status = %d, want %d", tt.role, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRoleWithoutUser(t *testing.T) {
	router := gin.New()
	router.GET("/admin",
		RequireRole(models.RoleOwner),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	rec := get(router, "/admin", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when no user is on the context", rec.Code)
	}
}
