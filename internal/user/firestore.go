package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultCollection is the Firestore collection for users
const DefaultCollection = "users"

// Error definitions
var (
	// ErrNotFound is returned when a user is not found
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateUserID is returned when trying to create a user with an existing UserID
	ErrDuplicateUserID = errors.New("user with this user_id already exists")
)

// FirestoreRepository implements Repository interface using Firestore
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
}

// Ensure FirestoreRepository implements Repository interface
var _ Repository = (*FirestoreRepository)(nil)

// NewFirestoreRepository creates a new FirestoreRepository.
// An empty collection name falls back to DefaultCollection.
func NewFirestoreRepository(client *firestore.Client, collection string) *FirestoreRepository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &FirestoreRepository{
		client:     client,
		collection: collection,
	}
}

// FindByID retrieves a user by Identity Platform UID.
// Returns (nil, nil) when no record matches; errors are reserved
// for store-level faults (transport, permission).
func (r *FirestoreRepository) FindByID(ctx context.Context, id string) (*User, error) {
	docs, err := r.client.Collection(r.collection).
		Where("user_id", "==", id).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query user by user_id: %w", err)
	}

	if len(docs) == 0 {
		return nil, nil
	}

	user := documentToUser(docs[0])
	return &user, nil
}

// Create creates a new user record and returns its document ID
func (r *FirestoreRepository) Create(ctx context.Context, user User) (string, error) {
	existing, err := r.FindByID(ctx, user.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return "", ErrDuplicateUserID
	}

	docRef, _, err := r.client.Collection(r.collection).Add(ctx, userToMap(user))
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return docRef.ID, nil
}

// Update updates an existing user record
func (r *FirestoreRepository) Update(ctx context.Context, id string, user User) error {
	docRef := r.client.Collection(r.collection).Doc(id)

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to check user existence: %w", err)
	}

	if _, err := docRef.Set(ctx, userToMap(user)); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// userToMap converts a User to a Firestore document map
func userToMap(user User) map[string]any {
	return map[string]any{
		"user_id":   user.UserID,
		"role":      user.Role,
		"name":      user.Name,
		"createdAt": user.CreatedAt,
		"updatedAt": user.UpdatedAt,
	}
}

// documentToUser converts a Firestore document to a User.
// Fields with unexpected types are left at their zero value, so a
// record whose role is missing or not a string surfaces as Role == "".
func documentToUser(doc *firestore.DocumentSnapshot) User {
	data := doc.Data()

	user := User{
		ID: doc.Ref.ID,
	}

	if userID, ok := data["user_id"].(string); ok {
		user.UserID = userID
	}
	if role, ok := data["role"].(string); ok {
		user.Role = role
	}
	if name, ok := data["name"].(string); ok {
		user.Name = name
	}
	if createdAt, ok := data["createdAt"].(time.Time); ok {
		user.CreatedAt = createdAt
	}
	if updatedAt, ok := data["updatedAt"].(time.Time); ok {
		user.UpdatedAt = updatedAt
	}

	return user
}
