package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/server/credentials"
	"github.com/dmitrijs2005/irccwatch/internal/server/users"
	"github.com/dmitrijs2005/irccwatch/internal/shared"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ctxKey string

const userKey ctxKey = "user"

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument logs every request and records it in the metrics.
func (s *RESTServer) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		elapsed := time.Since(start)
		s.metrics.observe(route, r.Method, rec.status, elapsed)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", elapsed,
			"request_id", reqID,
		)
	})
}

// requireAuth resolves the bearer token to a user. The token itself is
// never logged.
func (s *RESTServer) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Token is missing"})
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: shared.ErrorInvalidAuthheaderFormat.Error()})
			return
		}

		user, err := s.users.Authenticate(r.Context(), token)
		if err != nil {
			msg := "Token is invalid"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			if !errors.Is(err, shared.ErrorInvalidToken) {
				s.logger.Error(r.Context(), "authentication failed", "error", err)
			}
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: msg})
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

func (s *RESTServer) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != users.RoleAdmin {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "Admin permission required"})
			return
		}
		next(w, r)
	})
}

func currentUser(r *http.Request) *users.User {
	u, _ := r.Context().Value(userKey).(*users.User)
	return u
}

func ownerOf(r *http.Request) credentials.Owner {
	u := currentUser(r)
	return credentials.Owner{UserID: u.ID, Email: u.Email, IsAdmin: u.Role == users.RoleAdmin}
}
