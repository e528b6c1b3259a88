package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"staffdesk/internal/api/response"
	"staffdesk/internal/core/model"
	"staffdesk/internal/core/service"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthHandler struct {
	users         service.UserService
	accessSecret  []byte
	refreshSecret []byte
	log           *zap.Logger
}

func NewAuthHandler(users service.UserService, accessSecret, refreshSecret string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:         users,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		log:           log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationFailed, "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid email or password")
			return
		}
		h.log.Error("login failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, response.CodeServerError, "Server error")
		return
	}

	accessToken, err := h.signToken(user, h.accessSecret, accessTokenTTL)
	if err != nil {
		h.log.Error("signing access token", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, response.CodeServerError, "Server error")
		return
	}
	refreshToken, err := h.signToken(user, h.refreshSecret, refreshTokenTTL)
	if err != nil {
		h.log.Error("signing refresh token", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, response.CodeServerError, "Server error")
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func (h *AuthHandler) signToken(user *model.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
