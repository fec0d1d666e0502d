package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/irccwatch/internal/server/applications"
	"github.com/dmitrijs2005/irccwatch/internal/shared"
	"github.com/gorilla/mux"
)

func (s *RESTServer) listApplications(w http.ResponseWriter, r *http.Request) {
	creds, err := s.credentials.Mine(r.Context(), ownerOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	numbers := make([]string, 0, len(creds))
	for _, c := range creds {
		numbers = append(numbers, c.ApplicationNumber)
	}

	recs, err := s.applications.List(r.Context(), numbers)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]applications.Record{"applications": recs})
}

// latestApplication answers with the snapshot the credential last saw,
// falling back to the newest one.
func (s *RESTServer) latestApplication(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	c, err := s.credentials.FindByApplication(r.Context(), ownerOf(r), number)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.applications.At(r.Context(), number, c.LastTimestamp)
	if errors.Is(err, shared.ErrorNotFound) {
		rec, err = s.applications.Latest(r.Context(), number)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *RESTServer) applicationAt(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ts, err := strconv.ParseInt(vars["timestamp"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "Invalid timestamp",
			Fields: map[string]string{"timestamp": "must be epoch milliseconds"},
		})
		return
	}

	if _, err := s.credentials.FindByApplication(r.Context(), ownerOf(r), vars["number"]); err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.applications.At(r.Context(), vars["number"], ts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
