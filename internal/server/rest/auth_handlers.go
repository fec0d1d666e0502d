package rest

import (
	"net/http"

	"github.com/dmitrijs2005/irccwatch/internal/server/users"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func viewUser(u *users.User) userView {
	return userView{Email: u.Email, Role: u.Role}
}

func (s *RESTServer) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "email", u.Email)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    viewUser(u),
	})
}

func (s *RESTServer) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}

	token, u, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    viewUser(u),
	})
}

func (s *RESTServer) verifyToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if !decode(w, r, &req) {
		return
	}

	u, err := s.users.Authenticate(r.Context(), req.Token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"valid": false, "error": "Token is invalid"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "user": viewUser(u)})
}

func (s *RESTServer) changePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if !decode(w, r, &req) {
		return
	}

	if err := s.users.ChangePassword(r.Context(), currentUser(r).Email, req.CurrentPassword, req.NewPassword); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Password changed successfully"})
}
