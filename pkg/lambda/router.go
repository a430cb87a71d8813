package lambda

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"user-profile-api/internal/handlers"
	"user-profile-api/internal/middleware"
	"user-profile-api/internal/models"
	"user-profile-api/internal/services"
)

// handlerFunc processes one classified request
type handlerFunc func(ctx context.Context, req *Request) *Response

// Router dispatches normalized requests to user profile operations.
// One instance is reused across warm invocations.
type Router struct {
	userService services.UserService
	logger      *logrus.Logger
	routes      map[RequestKind]handlerFunc
}

// NewRouter creates a router bound to a user service
func NewRouter(userService services.UserService, logger *logrus.Logger) *Router {
	r := &Router{
		userService: userService,
		logger:      logger,
	}

	r.routes = map[RequestKind]handlerFunc{
		KindCreate:    r.handleCreate,
		KindList:      r.handleList,
		KindGet:       r.handleGet,
		KindUpdate:    r.handleUpdate,
		KindDelete:    r.handleDelete,
		KindMissingID: r.handleMissingID,
	}

	return r
}

// Handle classifies and dispatches a request. Every outcome, including
// malformed boundary input, becomes a normalized JSON response; no
// error escapes.
func (r *Router) Handle(ctx context.Context, req *Request) *Response {
	kind := Classify(req)

	switch kind {
	case KindMalformed:
		r.logger.WithFields(logrus.Fields{
			"has_request": req != nil,
		}).Error("Malformed boundary request")
		return respond(http.StatusInternalServerError,
			handlers.ErrorResponse{Error: "Internal server error"})
	case KindUnsupported:
		return respond(http.StatusMethodNotAllowed,
			handlers.ErrorResponse{Error: "Method not allowed"})
	}

	return r.routes[kind](ctx, req)
}

func (r *Router) handleCreate(ctx context.Context, req *Request) *Response {
	var createReq services.CreateUserRequest
	if err := json.Unmarshal(req.Body, &createReq); err != nil {
		return respond(http.StatusBadRequest, handlers.ErrorResponse{
			Error: "Invalid request body",
			Details: []models.FieldViolation{
				{Field: "body", Reason: "must be a valid JSON object"},
			},
		})
	}

	user, err := r.userService.CreateUser(ctx, &createReq)
	if err != nil {
		return r.respondError(req, err)
	}

	return respond(http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}

func (r *Router) handleList(ctx context.Context, req *Request) *Response {
	users, err := r.userService.ListUsers(ctx)
	if err != nil {
		return r.respondError(req, err)
	}

	return respond(http.StatusOK, map[string]interface{}{"users": users})
}

func (r *Router) handleGet(ctx context.Context, req *Request) *Response {
	user, err := r.userService.GetUser(ctx, req.UserID())
	if err != nil {
		return r.respondError(req, err)
	}

	return respond(http.StatusOK, map[string]interface{}{"user": user})
}

func (r *Router) handleUpdate(ctx context.Context, req *Request) *Response {
	var updateReq services.UpdateUserRequest
	if err := json.Unmarshal(req.Body, &updateReq); err != nil {
		return respond(http.StatusBadRequest, handlers.ErrorResponse{
			Error: "Invalid request body",
			Details: []models.FieldViolation{
				{Field: "body", Reason: "must be a valid JSON object"},
			},
		})
	}

	id := req.UserID()
	if err := r.userService.UpdateUser(ctx, id, &updateReq); err != nil {
		return r.respondError(req, err)
	}

	return respond(http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"userId":  id,
	})
}

func (r *Router) handleDelete(ctx context.Context, req *Request) *Response {
	id := req.UserID()
	if err := r.userService.DeleteUser(ctx, id); err != nil {
		return r.respondError(req, err)
	}

	return respond(http.StatusOK, map[string]interface{}{
		"message": "User deleted successfully",
		"userId":  id,
	})
}

func (r *Router) handleMissingID(ctx context.Context, req *Request) *Response {
	return respond(http.StatusBadRequest, handlers.ErrorResponse{
		Error: "User ID is required",
		Details: []models.FieldViolation{
			{Field: "userId", Reason: "id required"},
		},
	})
}

func (r *Router) respondError(req *Request, err error) *Response {
	status := handlers.StatusForError(err)

	if status == http.StatusInternalServerError {
		r.logger.WithFields(logrus.Fields{
			"method": req.Method,
			"path":   req.Path,
			"error":  err.Error(),
		}).Error("Request failed")
	}

	return respond(status, handlers.ErrorBody(err))
}

// respond serializes a body into a normalized response with the fixed
// CORS header set
func respond(status int, body interface{}) *Response {
	payload, err := json.Marshal(body)
	if err != nil {
		payload = []byte(`{"error": "Internal server error"}`)
		status = http.StatusInternalServerError
	}

	headers := make(map[string]string, len(middleware.CORSHeaders))
	for key, value := range middleware.CORSHeaders {
		headers[key] = value
	}

	return &Response{
		StatusCode: status,
		Headers:    headers,
		Body:       payload,
	}
}
