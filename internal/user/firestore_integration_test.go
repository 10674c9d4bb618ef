//go:build integration

package user

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/otiai10/rolegate/internal/store"
)

// TestFirestoreRepository_Integration tests the FirestoreRepository against a
// real Firestore instance (or the emulator via FIRESTORE_EMULATOR_HOST).
// Run with: go test -tags=integration ./internal/user/... -v
//
// Requires environment variables:
//   - ROLEGATE_STORE_PROJECT_ID
//   - ROLEGATE_STORE_DATABASE (optional, defaults to "(default)")
//   - ROLEGATE_STORE_CREDENTIALS (path to service account JSON for local dev)
func TestFirestoreRepository_Integration(t *testing.T) {
	projectID := os.Getenv("ROLEGATE_STORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("ROLEGATE_STORE_PROJECT_ID not set, skipping integration test")
	}

	ctx := context.Background()

	client, err := store.NewFirestoreClient(ctx, store.FirestoreConfig{
		ProjectID:   projectID,
		Database:    os.Getenv("ROLEGATE_STORE_DATABASE"),
		Credentials: os.Getenv("ROLEGATE_STORE_CREDENTIALS"),
	})
	if err != nil {
		t.Fatalf("failed to create Firestore client: %v", err)
	}
	defer client.Close()

	repo := NewFirestoreRepository(client.Client(), "")

	// Unique test IDs to avoid conflicts between runs
	testUID := "integration-test-" + time.Now().Format("20060102-150405")
	var createdID string

	t.Run("Create user", func(t *testing.T) {
		now := time.Now().UTC()
		id, err := repo.Create(ctx, User{
			UserID:    testUID,
			Role:      RoleModerator,
			Name:      "Integration Test User",
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		createdID = id
	})

	t.Run("Create duplicate user_id fails", func(t *testing.T) {
		_, err := repo.Create(ctx, User{UserID: testUID, Role: RoleViewer})
		if !errors.Is(err, ErrDuplicateUserID) {
			t.Errorf("expected ErrDuplicateUserID, got %v", err)
		}
	})

	t.Run("FindByID returns the record", func(t *testing.T) {
		u, err := repo.FindByID(ctx, testUID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if u == nil {
			t.Fatal("expected a user, got nil")
		}
		if u.Role != RoleModerator {
			t.Errorf("expected role %q, got %q", RoleModerator, u.Role)
		}
	})

	t.Run("FindByID returns nil for unknown id", func(t *testing.T) {
		u, err := repo.FindByID(ctx, testUID+"-missing")
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if u != nil {
			t.Errorf("expected nil for unknown id, got %+v", u)
		}
	})

	t.Run("non-string role reads as undefined", func(t *testing.T) {
		brokenUID := testUID + "-broken"
		ref, _, err := client.Client().Collection(DefaultCollection).Add(ctx, map[string]any{
			"user_id": brokenUID,
			"role":    123,
			"name":    "Broken Role",
		})
		if err != nil {
			t.Fatalf("failed to seed broken record: %v", err)
		}
		defer ref.Delete(ctx)

		u, err := repo.FindByID(ctx, brokenUID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if u == nil {
			t.Fatal("expected a user, got nil")
		}
		if u.Role != "" {
			t.Errorf("expected empty role for a non-string field, got %q", u.Role)
		}
	})

	t.Run("Update user", func(t *testing.T) {
		u, err := repo.FindByID(ctx, testUID)
		if err != nil || u == nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		u.Role = RoleAdmin
		if err := repo.Update(ctx, u.ID, *u); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		updated, err := repo.FindByID(ctx, testUID)
		if err != nil || updated == nil {
			t.Fatalf("FindByID after update failed: %v", err)
		}
		if updated.Role != RoleAdmin {
			t.Errorf("expected role %q after update, got %q", RoleAdmin, updated.Role)
		}
	})

	t.Run("Update unknown document fails", func(t *testing.T) {
		err := repo.Update(ctx, "no-such-document", User{UserID: "x"})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	// Cleanup
	if createdID != "" {
		_, _ = client.Client().Collection(DefaultCollection).Doc(createdID).Delete(ctx)
	}
}
