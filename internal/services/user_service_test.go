package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"user-profile-api/internal/models"
	"user-profile-api/internal/repositories"
	"user-profile-api/internal/repositories/memory"
)

func newTestService() UserService {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return NewUserService(memory.NewUserRepository(), logger)
}

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func validCreateRequest() *CreateUserRequest {
	return &CreateUserRequest{
		UserID:    stringPtr("u1"),
		Email:     "a@b.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Age:       intPtr(30),
	}
}

func TestCreateUser_RoundTrip(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if created.UserID != "u1" {
		t.Errorf("UserID = %s, want u1", created.UserID)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Error("CreatedAt should equal UpdatedAt on a fresh record")
	}

	fetched, err := svc.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUser() failed: %v", err)
	}
	if fetched.Email != "a@b.com" || fetched.FirstName != "Ada" || fetched.LastName != "Lovelace" {
		t.Errorf("fetched profile fields differ from submitted: %+v", fetched)
	}
	if *fetched.Age != 30 {
		t.Errorf("Age = %d, want 30", *fetched.Age)
	}
}

func TestCreateUser_GeneratesID(t *testing.T) {
	svc := newTestService()

	req := validCreateRequest()
	req.UserID = nil

	created, err := svc.CreateUser(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if created.UserID == "" {
		t.Error("generated userId should not be empty")
	}
	if len(created.UserID) > models.UserIDMaxLength {
		t.Errorf("generated userId too long: %d chars", len(created.UserID))
	}
}

func TestCreateUser_DuplicateID(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, validCreateRequest()); err != nil {
		t.Fatalf("first CreateUser() failed: %v", err)
	}

	_, err := svc.CreateUser(ctx, validCreateRequest())
	if !repositories.IsDuplicate(err) {
		t.Errorf("second CreateUser() = %v, want duplicate error", err)
	}
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*CreateUserRequest)
		wantField string
	}{
		{"missing email", func(r *CreateUserRequest) { r.Email = "" }, "email"},
		{"bad email", func(r *CreateUserRequest) { r.Email = "nope" }, "email"},
		{"missing first name", func(r *CreateUserRequest) { r.FirstName = "" }, "firstName"},
		{"missing last name", func(r *CreateUserRequest) { r.LastName = "" }, "lastName"},
		{"age below range", func(r *CreateUserRequest) { r.Age = intPtr(-1) }, "age"},
		{"age above range", func(r *CreateUserRequest) { r.Age = intPtr(151) }, "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()

			req := validCreateRequest()
			tt.modify(req)

			_, err := svc.CreateUser(context.Background(), req)

			var vErr *models.ViolationError
			if !errors.As(err, &vErr) {
				t.Fatalf("CreateUser() = %v, want violation error", err)
			}

			found := false
			for _, v := range vErr.Violations {
				if v.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("violations %v should include field %s", vErr.Violations, tt.wantField)
			}
		})
	}
}

func TestCreateUser_AgeBoundsAccepted(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, age := range []int{0, 150} {
		req := validCreateRequest()
		req.UserID = nil
		req.Age = intPtr(age)

		if _, err := svc.CreateUser(ctx, req); err != nil {
			t.Errorf("CreateUser() with age %d = %v, want success", age, err)
		}
	}
}

func TestUpdateUser_Merge(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	err = svc.UpdateUser(ctx, "u1", &UpdateUserRequest{FirstName: stringPtr("Grace")})
	if err != nil {
		t.Fatalf("UpdateUser() failed: %v", err)
	}

	updated, err := svc.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUser() failed: %v", err)
	}

	if updated.FirstName != "Grace" {
		t.Errorf("FirstName = %s, want Grace", updated.FirstName)
	}
	if updated.LastName != "Lovelace" || updated.Email != "a@b.com" || *updated.Age != 30 {
		t.Errorf("unsupplied fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("UpdatedAt should strictly increase across updates")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("CreatedAt should never change")
	}
}

func TestUpdateUser_BodyIDIgnored(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, validCreateRequest()); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	err := svc.UpdateUser(ctx, "u1", &UpdateUserRequest{
		UserID:    stringPtr("hijacked"),
		FirstName: stringPtr("Grace"),
	})
	if err != nil {
		t.Fatalf("UpdateUser() failed: %v", err)
	}

	if _, err := svc.GetUser(ctx, "hijacked"); !repositories.IsNotFound(err) {
		t.Error("body userId should never create or rename a record")
	}

	updated, err := svc.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUser() failed: %v", err)
	}
	if updated.UserID != "u1" {
		t.Errorf("UserID = %s, want u1 (immutable)", updated.UserID)
	}
}

func TestUpdateUser_Missing(t *testing.T) {
	svc := newTestService()

	err := svc.UpdateUser(context.Background(), "ghost", &UpdateUserRequest{FirstName: stringPtr("X")})
	if !repositories.IsNotFound(err) {
		t.Errorf("UpdateUser() on missing record = %v, want not-found", err)
	}
}

func TestUpdateUser_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, validCreateRequest()); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	err := svc.UpdateUser(ctx, "u1", &UpdateUserRequest{Email: stringPtr("not-an-email")})

	var vErr *models.ViolationError
	if !errors.As(err, &vErr) {
		t.Fatalf("UpdateUser() = %v, want violation error", err)
	}
}

func TestDeleteUser_Finality(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, validCreateRequest()); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	if err := svc.DeleteUser(ctx, "u1"); err != nil {
		t.Fatalf("DeleteUser() failed: %v", err)
	}

	if _, err := svc.GetUser(ctx, "u1"); !repositories.IsNotFound(err) {
		t.Errorf("GetUser() after delete = %v, want not-found", err)
	}

	if err := svc.DeleteUser(ctx, "u1"); !repositories.IsNotFound(err) {
		t.Errorf("second DeleteUser() = %v, want not-found", err)
	}
}

func TestListUsers(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("ListUsers() on empty store = %d, want 0", len(users))
	}

	for _, id := range []string{"u1", "u2"} {
		req := validCreateRequest()
		req.UserID = stringPtr(id)
		if _, err := svc.CreateUser(ctx, req); err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", id, err)
		}
	}

	users, err = svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() failed: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("ListUsers() = %d, want 2", len(users))
	}
}
