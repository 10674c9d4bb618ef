package user

import (
	"time"
)

// User represents a user record stored in Firestore.
// The record is owned by an external user-management subsystem;
// the gate only ever reads it.
type User struct {
	ID        string    `firestore:"-" json:"id,omitempty"`
	UserID    string    `firestore:"user_id" json:"user_id"` // Identity Platform UID
	Role      string    `firestore:"role" json:"role"`
	Name      string    `firestore:"name" json:"name"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Role constants for user records
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleViewer    = "viewer"
)

// Copy creates a copy of the User to prevent mutation
func (u User) Copy() User {
	return User{
		ID:        u.ID,
		UserID:    u.UserID,
		Role:      u.Role,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
