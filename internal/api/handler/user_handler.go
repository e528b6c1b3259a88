package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"staffdesk/internal/api/response"
	"staffdesk/internal/cache"
	"staffdesk/internal/core/repository"
	"staffdesk/internal/core/service"
)

type UserHandler struct {
	users service.UserService
	log   *zap.Logger
}

func NewUserHandler(users service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		users: users,
		log:   log,
	}
}

// registerRequest mirrors the registration form. Age arrives as a
// json.Number so both "29" and 29 decode; the rule set sees the raw
// string either way.
type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	DOB      string      `json:"dob"`
	Role     string      `json:"role"`
	Gender   string      `json:"gender"`
	Age      json.Number `json:"age"`
	Mobile   string      `json:"mobile"`
	Password string      `json:"password"`
}

type registerResponse struct {
	Message    string `json:"message"`
	EmployeeID string `json:"employeeId"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationFailed, "Invalid request body")
		return
	}

	employeeID, err := h.users.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		DOB:      req.DOB,
		Gender:   req.Gender,
		Role:     req.Role,
		Age:      req.Age.String(),
		Mobile:   req.Mobile,
		Password: req.Password,
	})
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			response.ValidationFailed(w, ve.Fields)
		case errors.Is(err, repository.ErrDuplicateEmail):
			response.Error(w, http.StatusBadRequest, response.CodeDuplicateEmail, "User already exists with this email")
		default:
			h.log.Error("registration failed", zap.Error(err))
			response.Error(w, http.StatusInternalServerError, response.CodeServerError, "Server error")
		}
		return
	}

	cache.Invalidate(r.Context(), req.Role)

	response.JSON(w, http.StatusCreated, registerResponse{
		Message:    "User registered successfully",
		EmployeeID: employeeID,
	})
}
