package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jbalums/benta-flow-api/internal/events"
	"github.com/jbalums/benta-flow-api/internal/models"
	"github.com/jbalums/benta-flow-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserPayload is the profile projection returned by every auth endpoint.
// HasCompletedStoreSetup is derived from the store association on every
// read and never cached.
type UserPayload struct {
	ID                     int64         `json:"id"`
	Name                   string        `json:"name"`
	Email                  string        `json:"email"`
	Role                   string        `json:"role"`
	AuthProvider           string        `json:"auth_provider"`
	Store                  *models.Store `json:"store"`
	HasCompletedStoreSetup bool          `json:"has_completed_store_setup"`
}

// AuthResult bundles the resolved profile with a freshly issued token.
// Created reports whether the operation registered a new account.
type AuthResult struct {
	User    *UserPayload
	Token   string
	Created bool
}

// SignupInput is the validated local signup payload.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// StoreDetailsInput is the validated store-details payload.
type StoreDetailsInput struct {
	Name             string
	BusinessType     string
	NatureOfBusiness string
	Phone            *string
	Address          *string
	City             *string
	State            *string
	Country          *string
	Website          *string
}

// AuthService implements signup, login, Google identity reconciliation,
// logout and the profile projection.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GoogleAuth(ctx context.Context, idToken, nameOverride string) (*AuthResult, error)
	Logout(ctx context.Context, tokenID int64) error
	Profile(ctx context.Context, userID int64) (*UserPayload, error)
	UpsertStoreDetails(ctx context.Context, userID int64, input StoreDetailsInput) (*models.Store, *UserPayload, error)
}

type authService struct {
	users     repository.UserRepository
	stores    repository.StoreRepository
	tokens    TokenService
	google    GoogleVerifier
	publisher events.Publisher
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	users repository.UserRepository,
	stores repository.StoreRepository,
	tokens TokenService,
	google GoogleVerifier,
	publisher events.Publisher,
) AuthService {
	return &authService{
		users:     users,
		stores:    stores,
		tokens:    tokens,
		google:    google,
		publisher: publisher,
	}
}

func (s *authService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, NewValidationError("email", "The email has already been taken.")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         models.RoleOwner,
		AuthProvider: models.ProviderLocal,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The pre-check above races with concurrent signups; the unique
		// index is the arbiter and its violation reads the same way.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError("email", "The email has already been taken.")
		}
		return nil, err
	}

	return s.finish(ctx, user, true)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewValidationError("email", "Invalid credentials.")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, NewValidationError("email", "Invalid credentials.")
	}

	return s.finish(ctx, user, false)
}

// GoogleAuth verifies the ID token and reconciles the verified identity
// against existing accounts: subject id first, verified email second,
// creation last. A previously linked account always resolves by subject id
// even if its email changed upstream.
func (s *authService) GoogleAuth(ctx context.Context, idToken, nameOverride string) (*AuthResult, error) {
	claims, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, NewValidationError("id_token", "Invalid Google ID token.")
	}

	user, err := s.users.FindByGoogleID(ctx, claims.Sub)
	if err == nil {
		return s.finish(ctx, user, false)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user, err = s.users.FindByEmail(ctx, claims.Email)
	switch {
	case err == nil:
		if user, err = s.linkGoogle(ctx, user, claims); err != nil {
			return nil, err
		}
		return s.finish(ctx, user, false)
	case errors.Is(err, repository.ErrNotFound):
		if user, err = s.createFromGoogle(ctx, claims, nameOverride); err != nil {
			return nil, err
		}
		return s.finish(ctx, user, true)
	default:
		return nil, err
	}
}

// linkGoogle binds the verified Google identity to a pre-existing account.
// An account already bound to a different subject id is a conflict, never a
// silent overwrite.
func (s *authService) linkGoogle(ctx context.Context, user *models.User, claims *GoogleClaims) (*models.User, error) {
	if user.GoogleID != nil && *user.GoogleID != claims.Sub {
		return nil, NewValidationError("id_token", "This Google account does not match the existing user profile.")
	}

	sub := claims.Sub
	user.GoogleID = &sub
	user.AuthProvider = models.ProviderGoogle
	if user.EmailVerifiedAt == nil {
		now := time.Now()
		user.EmailVerifiedAt = &now
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) createFromGoogle(ctx context.Context, claims *GoogleClaims, nameOverride string) (*models.User, error) {
	name := nameOverride
	if name == "" {
		name = claims.Name
	}
	if name == "" {
		name, _, _ = strings.Cut(claims.Email, "@")
	}

	// Google accounts never authenticate locally; a random hash satisfies
	// the credential invariant without a usable password.
	placeholder, err := randomSecret()
	if err != nil {
		return nil, fmt.Errorf("generate placeholder password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(placeholder), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder password: %w", err)
	}

	now := time.Now()
	sub := claims.Sub
	user := &models.User{
		Name:            name,
		Email:           claims.Email,
		PasswordHash:    string(hash),
		Role:            models.RoleOwner,
		AuthProvider:    models.ProviderGoogle,
		GoogleID:        &sub,
		EmailVerifiedAt: &now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError("email", "The email has already been taken.")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, tokenID int64) error {
	return s.tokens.Revoke(ctx, tokenID)
}

func (s *authService) Profile(ctx context.Context, userID int64) (*UserPayload, error) {
	user, err := s.users.FindByIDWithStore(ctx, userID)
	if err != nil {
		return nil, err
	}
	return payload(user), nil
}

func (s *authService) UpsertStoreDetails(ctx context.Context, userID int64, input StoreDetailsInput) (*models.Store, *UserPayload, error) {
	store := &models.Store{
		UserID:           userID,
		Name:             input.Name,
		BusinessType:     input.BusinessType,
		NatureOfBusiness: input.NatureOfBusiness,
		Phone:            input.Phone,
		Address:          input.Address,
		City:             input.City,
		State:            input.State,
		Country:          input.Country,
		Website:          input.Website,
	}
	if err := s.stores.Upsert(ctx, store); err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByIDWithStore(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return store, payload(user), nil
}

// finish loads the store association, issues a token and emits the auth
// event. Token issuance never mutates the user record.
func (s *authService) finish(ctx context.Context, user *models.User, created bool) (*AuthResult, error) {
	loaded, err := s.users.FindByIDWithStore(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(ctx, loaded.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, loaded, created)

	return &AuthResult{User: payload(loaded), Token: token, Created: created}, nil
}

func (s *authService) publish(ctx context.Context, user *models.User, created bool) {
	if s.publisher == nil {
		return
	}
	key := events.KeyUserLoggedIn
	if created {
		key = events.KeyUserSignedUp
	}
	event := events.AuthEvent{
		UserID:   user.ID,
		Email:    user.Email,
		Provider: user.AuthProvider,
	}
	if err := s.publisher.PublishJSON(ctx, key, event); err != nil {
		log.Printf("publish %s event: %v", key, err)
	}
}

func payload(user *models.User) *UserPayload {
	return &UserPayload{
		ID:                     user.ID,
		Name:                   user.Name,
		Email:                  user.Email,
		Role:                   user.Role,
		AuthProvider:           user.AuthProvider,
		Store:                  user.Store,
		HasCompletedStoreSetup: user.Store != nil,
	}
}
