package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jbalums/benta-flow-api/internal/models"
	"github.com/jbalums/benta-flow-api/internal/repository"
)

const testCacheTTL = time.Hour

// =============================================================================
// Mock TokenRepository
// =============================================================================

// memoryTokenRepository is an in-memory TokenRepository used by the token
// and auth service tests.
type memoryTokenRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.AccessToken
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{rows: make(map[int64]models.AccessToken)}
}

func (m *memoryTokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	token.ID = m.nextID
	token.CreatedAt = time.Now()
	m.rows[token.ID] = *token
	return nil
}

func (m *memoryTokenRepository) FindByID(ctx context.Context, id int64) (*models.AccessToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("find access token %d: %w", id, repository.ErrNotFound)
	}
	return &row, nil
}

func (m *memoryTokenRepository) TouchLastUsed(ctx context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[id]; ok {
		row.LastUsedAt = &at
		m.rows[id] = row
	}
	return nil
}

func (m *memoryTokenRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memoryTokenRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// =============================================================================
// Issue
// =============================================================================

func TestTokenServiceIssue(t *testing.T) {
	repo := newMemoryTokenRepository()
	svc := NewTokenService(repo, newTestRedis(t), testCacheTTL)

	plaintext, err := svc.Issue(context.Background(), 42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	parts := strings.SplitN(plaintext, "|", 2)
	if len(parts) != 2 {
		t.Fatalf("Issue() plaintext = %q, want id|secret form", plaintext)
	}
	if len(parts[1]) != 64 {
		t.Errorf("secret length = %d, want 64 hex chars", len(parts[1]))
	}

	stored, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("token row not persisted: %v", err)
	}
	if stored.UserID != 42 {
		t.Errorf("stored UserID = %d, want 42", stored.UserID)
	}
	if stored.TokenHash == parts[1] {
		t.Error("plaintext secret was stored verbatim; want a hash")
	}
	if strings.Contains(stored.TokenHash, parts[1]) {
		t.Error("stored hash contains the plaintext secret")
	}
}

func TestTokenServiceIssueUniquePerCall(t *testing.T) {
	repo := newMemoryTokenRepository()
	svc := NewTokenService(repo, newTestRedis(t), testCacheTTL)

	first, err := svc.Issue(context.Background(), 1)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	second, err := svc.Issue(context.Background(), 1)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if first == second {
		t.Error("two issuances produced the same token")
	}
	if repo.count() != 2 {
		t.Errorf("stored tokens = %d, want 2 (no single-session policy)", repo.count())
	}
}

// =============================================================================
// Resolve
// =============================================================================

func TestTokenServiceResolve(t *testing.T) {
	repo := newMemoryTokenRepository()
	svc := NewTokenService(repo, newTestRedis(t), testCacheTTL)

	plaintext, err := svc.Issue(context.Background(), 7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	token, err := svc.Resolve(context.Background(), plaintext)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if token.UserID != 7 {
		t.Errorf("Resolve() UserID = %d, want 7", token.UserID)
	}
}

func TestTokenServiceResolveRejects(t *testing.T) {
	repo := newMemoryTokenRepository()
	svc := NewTokenService(repo, newTestRedis(t), testCacheTTL)

	plaintext, err := svc.Issue(context.Background(), 7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no separator", "abcdef"},
		{"non-numeric id", "x|secret"},
		{"unknown id", "999|" + strings.SplitN(plaintext, "|", 2)[1]},
		{"wrong secret", "1|" + strings.Repeat("0", 64)},
		{"empty secret", "1|"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Resolve(context.Background(), tt.token); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Resolve(%q) error = %v, want ErrTokenInvalid", tt.token, err)
			}
		})
	}
}

func TestTokenServiceResolveFallsBackWhenCacheCold(t *testing.T) {
	repo := newMemoryTokenRepository()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewTokenService(repo, client, testCacheTTL)

	plaintext, err := svc.Issue(context.Background(), 9)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Simulate cache eviction; the database stays the source of truth.
	mr.FlushAll()

	token, err := svc.Resolve(context.Background(), plaintext)
	if err != nil {
		t.Fatalf("Resolve() after cache flush error = %v", err)
	}
	if token.UserID != 9 {
		t.Errorf("Resolve() UserID = %d, want 9", token.UserID)
	}
}

func TestTokenServiceWorksWithoutRedis(t *testing.T) {
	repo := newMemoryTokenRepository()
	svc := NewTokenService(repo, nil, testCacheTTL)

	plaintext, err := svc.Issue(context.Background(), 3)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := svc.Resolve(context.Background(), plaintext); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
}

// =============================================================================
// Revoke
// =============================================================================

func TestTokenServiceRevoke(t *testing.T) {
	repo := newMemoryTokenRepository()
	svc := NewTokenService(repo, newTestRedis(t), testCacheTTL)

	first, err := svc.Issue(context.Background(), 5)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	second, err := svc.Issue(context.Background(), 5)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	resolved, err := svc.Resolve(context.Background(), first)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if err := svc.Revoke(context.Background(), resolved.ID); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	if _, err := svc.Resolve(context.Background(), first); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("revoked token resolved; error = %v, want ErrTokenInvalid", err)
	}
	// Other tokens of the same user stay valid.
	if _, err := svc.Resolve(context.Background(), second); err != nil {
		t.Errorf("sibling token rejected after revoke: %v", err)
	}
}
