package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jbalums/benta-flow-api/internal/models"
)

// testDB opens an in-memory sqlite database with the same error
// translation the production connection uses.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Every pooled connection would otherwise see its own empty in-memory
	// database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.AccessToken{},
		&models.Branch{},
		&models.ProductCategory{},
		&models.Product{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, repo UserRepository, user models.User) *models.User {
	t.Helper()
	if user.PasswordHash == "" {
		user.PasswordHash = "hash"
	}
	if err := repo.Create(context.Background(), &user); err != nil {
		t.Fatalf("seed user %s: %v", user.Email, err)
	}
	return &user
}

// =============================================================================
// Uniqueness
// =============================================================================

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	seedUser(t, repo, models.User{Name: "First", Email: "taken@example.com"})

	err := repo.Create(context.Background(), &models.User{
		Name: "Second", Email: "taken@example.com", PasswordHash: "hash",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("error = %v, want ErrDuplicate", err)
	}
}

func TestUserCreateDuplicateGoogleID(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	sub := "google-sub-123"
	seedUser(t, repo, models.User{Name: "First", Email: "a@example.com", GoogleID: &sub})

	err := repo.Create(context.Background(), &models.User{
		Name: "Second", Email: "b@example.com", PasswordHash: "hash", GoogleID: &sub,
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("error = %v, want ErrDuplicate", err)
	}
}

func TestUserCreateAllowsMultipleNullGoogleIDs(t *testing.T) {
	// The unique index on google_id must not collapse local accounts,
	// which all carry NULL there.
	repo := NewUserRepository(testDB(t))
	seedUser(t, repo, models.User{Name: "First", Email: "a@example.com"})

	err := repo.Create(context.Background(), &models.User{
		Name: "Second", Email: "b@example.com", PasswordHash: "hash",
	})
	if err != nil {
		t.Errorf("second local account rejected: %v", err)
	}
}

// =============================================================================
// Lookups
// =============================================================================

func TestUserFindByEmail(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	seeded := seedUser(t, repo, models.User{Name: "Owner", Email: "owner@example.com"})

	found, err := repo.FindByEmail(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if found.ID != seeded.ID {
		t.Errorf("found id = %d, want %d", found.ID, seeded.ID)
	}

	_, err = repo.FindByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("miss error = %v, want ErrNotFound", err)
	}
}

func TestUserFindByGoogleID(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	sub := "google-sub-123"
	seeded := seedUser(t, repo, models.User{Name: "Owner", Email: "owner@example.com", GoogleID: &sub})

	found, err := repo.FindByGoogleID(context.Background(), sub)
	if err != nil {
		t.Fatalf("FindByGoogleID() error = %v", err)
	}
	if found.ID != seeded.ID {
		t.Errorf("found id = %d, want %d", found.ID, seeded.ID)
	}

	_, err = repo.FindByGoogleID(context.Background(), "unknown-sub")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("miss error = %v, want ErrNotFound", err)
	}
}

func TestUserFindByIDWithStore(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	stores := NewStoreRepository(db)
	seeded := seedUser(t, repo, models.User{Name: "Owner", Email: "owner@example.com"})

	// No store yet.
	found, err := repo.FindByIDWithStore(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("FindByIDWithStore() error = %v", err)
	}
	if found.Store != nil {
		t.Error("store preloaded for a user without one")
	}

	if err := stores.Upsert(context.Background(), &models.Store{
		UserID: seeded.ID, Name: "Benta Main Store", BusinessType: "retail", NatureOfBusiness: "General",
	}); err != nil {
		t.Fatal(err)
	}

	found, err = repo.FindByIDWithStore(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("FindByIDWithStore() error = %v", err)
	}
	if found.Store == nil || found.Store.Name != "Benta Main Store" {
		t.Errorf("store not preloaded: %+v", found.Store)
	}
}

// =============================================================================
// Store upsert
// =============================================================================

func TestStoreUpsert(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db)
	stores := NewStoreRepository(db)
	owner := seedUser(t, users, models.User{Name: "Owner", Email: "owner@example.com"})

	first := &models.Store{
		UserID: owner.ID, Name: "Benta Main Store", BusinessType: "retail", NatureOfBusiness: "General",
	}
	if err := stores.Upsert(context.Background(), first); err != nil {
		t.Fatalf("Upsert() create error = %v", err)
	}
	if first.ID == 0 {
		t.Fatal("store id not populated on create")
	}

	second := &models.Store{
		UserID: owner.ID, Name: "Benta Renamed", BusinessType: "wholesale", NatureOfBusiness: "Bulk goods",
	}
	if err := stores.Upsert(context.Background(), second); err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("update created a second row: id %d vs %d", second.ID, first.ID)
	}

	saved, err := stores.FindByUserID(context.Background(), owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Name != "Benta Renamed" || saved.BusinessType != "wholesale" {
		t.Errorf("row not updated in place: %+v", saved)
	}
}

func TestStoreFindByUserIDMiss(t *testing.T) {
	stores := NewStoreRepository(testDB(t))

	_, err := stores.FindByUserID(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
