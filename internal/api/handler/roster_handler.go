package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"staffdesk/internal/api/response"
	"staffdesk/internal/cache"
	"staffdesk/internal/core/model"
	"staffdesk/internal/core/repository"
	"staffdesk/internal/core/service"
)

// RosterHandler serves the list / edit / delete surface for one role.
// The employee and vendor endpoints are the same handler bound to a
// different role constant, so the two views can never drift apart.
type RosterHandler struct {
	users service.UserService
	role  model.Role
	noun  string
	log   *zap.Logger
}

func NewRosterHandler(users service.UserService, role model.Role, log *zap.Logger) *RosterHandler {
	noun := "Employee"
	if role == model.RoleVendor {
		noun = "Vendor"
	}
	return &RosterHandler{
		users: users,
		role:  role,
		noun:  noun,
		log:   log,
	}
}

func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := cache.ListKey(string(h.role))

	var users []*model.User
	if !cache.Get(ctx, key, &users) {
		var err error
		users, err = h.users.ListByRole(ctx, h.role)
		if err != nil {
			h.log.Error("listing roster", zap.String("role", string(h.role)), zap.Error(err))
			response.Error(w, http.StatusInternalServerError, response.CodeServerError, "Server error")
			return
		}
		cache.Set(ctx, key, users, cache.ListTTL)
	}

	if users == nil {
		users = []*model.User{}
	}
	response.JSON(w, http.StatusOK, users)
}

func (h *RosterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch model.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationFailed, "Invalid request body")
		return
	}

	user, err := h.users.Update(r.Context(), id, h.role, patch)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			response.ValidationFailed(w, ve.Fields)
		case errors.Is(err, repository.ErrNotFound):
			response.Error(w, http.StatusNotFound, response.CodeNotFound, h.noun+" not found")
		default:
			h.log.Error("updating record", zap.String("id", id), zap.Error(err))
			response.Error(w, http.StatusInternalServerError, response.CodeServerError, "Server error")
		}
		return
	}

	cache.Invalidate(r.Context(), string(h.role))
	response.JSON(w, http.StatusOK, user)
}

func (h *RosterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.users.Delete(r.Context(), id, h.role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(w, http.StatusNotFound, response.CodeNotFound, h.noun+" not found")
			return
		}
		h.log.Error("deleting record", zap.String("id", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, response.CodeServerError, "Server error")
		return
	}

	cache.Invalidate(r.Context(), string(h.role))
	response.JSON(w, http.StatusOK, map[string]string{"message": h.noun + " deleted"})
}
