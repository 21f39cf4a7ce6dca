package service

import (
	"log/slog"
	"net/http"

	"github.com/josemedina1/Papafactory/internal/auth"
)

// AuthService handles operator login.
type AuthService struct {
	auth auth.Authenticator
	jwt  *auth.JWTManager
}

// NewAuthService creates a new auth service.
func NewAuthService(a auth.Authenticator, jwt *auth.JWTManager) *AuthService {
	return &AuthService{auth: a, jwt: jwt}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login verifies operator credentials and issues a session token.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	op, err := s.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("Login rejected", "username", req.Username)
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := s.jwt.Generate(op)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Username: op.Username})
}
