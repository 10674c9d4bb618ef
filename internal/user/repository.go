package user

import (
	"context"
)

// Repository defines the interface for user storage operations
type Repository interface {
	// FindByID retrieves a user by Identity Platform UID (the user_id field)
	//
	// Parameters:
	//   - ctx: Context for cancellation control
	//   - id: Identity Platform UID to search for
	//
	// Returns:
	//   - Pointer to the user (nil if not found)
	//   - Error if Firestore operation fails (nil for not found)
	FindByID(ctx context.Context, id string) (*User, error)

	// Create creates a new user record
	//
	// Parameters:
	//   - ctx: Context for cancellation control
	//   - user: User to create
	//
	// Returns:
	//   - ID of the created user document
	//   - Error if Firestore operation fails or the UserID already exists
	Create(ctx context.Context, user User) (string, error)

	// Update updates an existing user record
	//
	// Parameters:
	//   - ctx: Context for cancellation control
	//   - id: User document ID to update
	//   - user: New user data
	//
	// Returns:
	//   - Error if user not found or Firestore operation fails
	Update(ctx context.Context, id string, user User) error
}
