package user

import (
	"testing"
	"time"
)

func TestNewFirestoreRepository(t *testing.T) {
	t.Run("defaults the collection name", func(t *testing.T) {
		repo := NewFirestoreRepository(nil, "")
		if repo.collection != DefaultCollection {
			t.Errorf("expected collection %q, got %q", DefaultCollection, repo.collection)
		}
	})

	t.Run("keeps a custom collection name", func(t *testing.T) {
		repo := NewFirestoreRepository(nil, "members")
		if repo.collection != "members" {
			t.Errorf("expected collection 'members', got %q", repo.collection)
		}
	})
}

func TestUserToMap(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	u := User{
		ID:        "doc-id",
		UserID:    "u1",
		Role:      RoleModerator,
		Name:      "Test User",
		CreatedAt: now,
		UpdatedAt: now,
	}

	data := userToMap(u)

	if data["user_id"] != "u1" {
		t.Errorf("expected user_id 'u1', got %v", data["user_id"])
	}
	if data["role"] != RoleModerator {
		t.Errorf("expected role %q, got %v", RoleModerator, data["role"])
	}
	if data["name"] != "Test User" {
		t.Errorf("expected name 'Test User', got %v", data["name"])
	}
	if data["createdAt"] != now {
		t.Errorf("expected createdAt %v, got %v", now, data["createdAt"])
	}

	// The document ID is not a field of the record
	if _, ok := data["id"]; ok {
		t.Error("document ID must not be stored as a field")
	}
}

func TestUser_Copy(t *testing.T) {
	original := User{ID: "doc", UserID: "u1", Role: RoleAdmin, Name: "A"}

	copied := original.Copy()
	copied.Role = RoleViewer

	if original.Role != RoleAdmin {
		t.Error("mutating the copy must not affect the original")
	}
}
