package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jbalums/benta-flow-api/internal/models"
	"github.com/jbalums/benta-flow-api/internal/repository"
	"github.com/redis/go-redis/v9"
)

// tokenName tags every token issued by this API.
const tokenName = "pos-api"

// ErrTokenInvalid is returned when a presented token does not resolve to a
// stored credential.
var ErrTokenInvalid = errors.New("invalid access token")

// TokenService mints and resolves opaque bearer tokens. The plaintext form
// is "<token-id>|<hex-secret>"; only the SHA-256 of the secret is stored,
// so the plaintext is unrecoverable after issuance.
type TokenService interface {
	Issue(ctx context.Context, userID int64) (string, error)
	Resolve(ctx context.Context, plaintext string) (*models.AccessToken, error)
	Revoke(ctx context.Context, tokenID int64) error
}

type tokenService struct {
	tokens   repository.TokenRepository
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewTokenService creates a new TokenService instance. The redis client is
// a resolution cache in front of the access_tokens table and may be nil.
func NewTokenService(tokens repository.TokenRepository, redisClient *redis.Client, cacheTTL time.Duration) TokenService {
	return &tokenService{
		tokens:   tokens,
		redis:    redisClient,
		cacheTTL: cacheTTL,
	}
}

func (s *tokenService) Issue(ctx context.Context, userID int64) (string, error) {
	secret, err := randomSecret()
	if err != nil {
		return "", fmt.Errorf("generate token secret: %w", err)
	}

	token := &models.AccessToken{
		UserID:    userID,
		Name:      tokenName,
		TokenHash: hashSecret(secret),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return "", err
	}

	s.cacheSet(ctx, token)

	return fmt.Sprintf("%d|%s", token.ID, secret), nil
}

func (s *tokenService) Resolve(ctx context.Context, plaintext string) (*models.AccessToken, error) {
	id, secret, ok := splitToken(plaintext)
	if !ok {
		return nil, ErrTokenInvalid
	}

	token := s.cacheGet(ctx, id)
	if token == nil {
		var err error
		token, err = s.tokens.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrTokenInvalid
			}
			return nil, err
		}
		s.cacheSet(ctx, token)
	}

	if subtle.ConstantTimeCompare([]byte(token.TokenHash), []byte(hashSecret(secret))) != 1 {
		return nil, ErrTokenInvalid
	}

	now := time.Now()
	if err := s.tokens.TouchLastUsed(ctx, token.ID, now); err == nil {
		token.LastUsedAt = &now
	}

	return token, nil
}

func (s *tokenService) Revoke(ctx context.Context, tokenID int64) error {
	if s.redis != nil {
		s.redis.Del(ctx, cacheKey(tokenID))
	}
	return s.tokens.Delete(ctx, tokenID)
}

// cacheGet returns the cached token record, or nil on any miss or cache
// error. Cache entries expire on their own; the database stays the source
// of truth so an expired entry never invalidates a token.
func (s *tokenService) cacheGet(ctx context.Context, id int64) *models.AccessToken {
	if s.redis == nil {
		return nil
	}
	value, err := s.redis.Get(ctx, cacheKey(id)).Result()
	if err != nil {
		return nil
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return nil
	}
	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil
	}
	return &models.AccessToken{ID: id, UserID: userID, Name: tokenName, TokenHash: parts[1]}
}

func (s *tokenService) cacheSet(ctx context.Context, token *models.AccessToken) {
	if s.redis == nil {
		return
	}
	value := fmt.Sprintf("%d:%s", token.UserID, token.TokenHash)
	s.redis.Set(ctx, cacheKey(token.ID), value, s.cacheTTL)
}

func cacheKey(id int64) string {
	return fmt.Sprintf("access_token:%d", id)
}

func splitToken(plaintext string) (int64, string, bool) {
	parts := strings.SplitN(plaintext, "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", false
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, parts[1], true
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func randomSecret() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
