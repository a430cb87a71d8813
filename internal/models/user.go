package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Field constraints for user profiles
const (
	UserIDMinLength = 1
	UserIDMaxLength = 100
	NameMinLength   = 1
	NameMaxLength   = 100
	AgeMin          = 0
	AgeMax          = 150
)

// UserProfile represents a user profile record in the system
type UserProfile struct {
	UserID    string    `json:"userId" validate:"required,min=1,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	FirstName string    `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string    `json:"lastName" validate:"required,min=1,max=100"`
	Age       *int      `json:"age,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Reserved for automatic expiry via the table's TTL attribute.
	// Not set by any current operation.
	ExpiresAt *int64 `json:"-"`
}

// UserUpdate describes a partial update to a user profile. Nil fields
// are left unchanged by the merge.
type UserUpdate struct {
	Email     *string   `json:"email,omitempty"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Age       *int      `json:"age,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsEmpty reports whether the update carries no field changes.
func (u *UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.FirstName == nil && u.LastName == nil && u.Age == nil
}

// NewUserProfile creates a user profile with creation timestamps stamped
func NewUserProfile(userID, email, firstName, lastName string) *UserProfile {
	now := time.Now().UTC()
	return &UserProfile{
		UserID:    userID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GenerateUserID produces an opaque identifier from the current time plus
// a random suffix. Uniqueness is best-effort; the pre-insert existence
// check is the only collision guard.
func GenerateUserID() string {
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("user-%d-%s", time.Now().UnixMilli(), suffix)
}

// Validate validates the complete profile against the field constraints
func (u *UserProfile) Validate() error {
	violations := ValidateProfileFields(u)
	if len(violations) > 0 {
		return &ViolationError{Violations: violations}
	}
	return nil
}

// Touch refreshes the UpdatedAt timestamp
func (u *UserProfile) Touch() {
	u.UpdatedAt = time.Now().UTC()
}

// Apply merges a partial update into the profile. The identity key is
// never changed.
func (u *UserProfile) Apply(update *UserUpdate) {
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Age != nil {
		u.Age = update.Age
	}
	u.UpdatedAt = update.UpdatedAt
}
