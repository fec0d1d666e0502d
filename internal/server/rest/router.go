package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handler builds the router: the API under /api and Prometheus metrics at
// /metrics.
func (s *RESTServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.instrument)

	r.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/config", s.config).Methods(http.MethodGet)

	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-token", s.verifyToken).Methods(http.MethodPost)
	api.HandleFunc("/auth/change-password", s.requireAuth(s.changePassword)).Methods(http.MethodPost)

	api.HandleFunc("/credentials/my-credentials", s.requireAuth(s.myCredentials)).Methods(http.MethodGet)
	api.HandleFunc("/credentials/all", s.requireAdmin(s.allCredentials)).Methods(http.MethodGet)
	api.HandleFunc("/credentials/", s.requireAuth(s.createCredential)).Methods(http.MethodPost)
	api.HandleFunc("/credentials", s.requireAuth(s.createCredential)).Methods(http.MethodPost)
	api.HandleFunc("/credentials/{id}", s.requireAuth(s.getCredential)).Methods(http.MethodGet)
	api.HandleFunc("/credentials/{id}", s.requireAuth(s.updateCredential)).Methods(http.MethodPut)
	api.HandleFunc("/credentials/{id}", s.requireAuth(s.deleteCredential)).Methods(http.MethodDelete)

	api.HandleFunc("/applications", s.requireAuth(s.listApplications)).Methods(http.MethodGet)
	api.HandleFunc("/applications/{number}/latest", s.requireAuth(s.latestApplication)).Methods(http.MethodGet)
	api.HandleFunc("/applications/{number}/{timestamp}", s.requireAuth(s.applicationAt)).Methods(http.MethodGet)

	api.HandleFunc("/admin/dashboard", s.requireAdmin(s.adminDashboard)).Methods(http.MethodGet)
	api.HandleFunc("/admin/check-all", s.requireAdmin(s.checkAll)).Methods(http.MethodPost)
	api.HandleFunc("/admin/test-email", s.requireAdmin(s.testEmail)).Methods(http.MethodPost)

	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	})

	return r
}

func (s *RESTServer) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *RESTServer) config(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.public)
}
