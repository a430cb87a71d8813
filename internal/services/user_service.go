package services

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"user-profile-api/internal/models"
	"user-profile-api/internal/repositories"
)

// userService implements the UserService interface
type userService struct {
	userRepo  repositories.UserRepository
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.UserRepository, logger *logrus.Logger) UserService {
	v := validator.New()

	// Report violations under the wire field names, not Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &userService{
		userRepo:  userRepo,
		validator: v,
		logger:    logger,
	}
}

// CreateUser creates a new user profile
func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.UserProfile, error) {
	if req == nil {
		return nil, fmt.Errorf("create user request cannot be nil")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, violationErrorFrom(err)
	}

	userID := models.GenerateUserID()
	if req.UserID != nil {
		userID = *req.UserID
	}

	user := models.NewUserProfile(userID, req.Email, req.FirstName, req.LastName)
	user.Age = req.Age

	if err := user.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.Exists(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, repositories.DuplicateError("user", user.UserID)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      user.UserID,
		"generated_id": req.UserID == nil,
	}).Info("User created")

	return user, nil
}

// GetUser retrieves a user profile by ID
func (s *userService) GetUser(ctx context.Context, id string) (*models.UserProfile, error) {
	if v := models.ValidateUserID(id); v != nil {
		return nil, &models.ViolationError{Violations: []models.FieldViolation{*v}}
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers retrieves all user profiles
func (s *userService) ListUsers(ctx context.Context) ([]*models.UserProfile, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// UpdateUser applies a merge update to an existing user profile
func (s *userService) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) error {
	if v := models.ValidateUserID(id); v != nil {
		return &models.ViolationError{Violations: []models.FieldViolation{*v}}
	}

	if req == nil {
		return fmt.Errorf("update user request cannot be nil")
	}

	// The path identifier wins; a body userId is ignored
	update := &models.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		UpdatedAt: time.Now().UTC(),
	}

	if violations := models.ValidateUpdateFields(update); len(violations) > 0 {
		return &models.ViolationError{Violations: violations}
	}

	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return repositories.NotFoundError("user", id)
	}

	if err := s.userRepo.UpdateFields(ctx, id, update); err != nil {
		return err
	}

	s.logger.WithField("user_id", id).Info("User updated")

	return nil
}

// DeleteUser removes an existing user profile
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if v := models.ValidateUserID(id); v != nil {
		return &models.ViolationError{Violations: []models.FieldViolation{*v}}
	}

	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return repositories.NotFoundError("user", id)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithField("user_id", id).Info("User deleted")

	return nil
}

// violationErrorFrom converts validator failures into the structured
// violation list surfaced to clients
func violationErrorFrom(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	violations := make([]models.FieldViolation, 0, len(validationErrors))
	for _, fe := range validationErrors {
		violations = append(violations, models.FieldViolation{
			Field:  fe.Field(),
			Reason: reasonForTag(fe),
		})
	}

	return &models.ViolationError{Violations: violations}
}

func reasonForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("cannot exceed %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed %s constraint", fe.Tag())
	}
}
