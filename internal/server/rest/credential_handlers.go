package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/server/credentials"
	"github.com/gorilla/mux"
)

// credentialView is the wire form of a credential. The sealed password is
// never included.
type credentialView struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	OwnerEmail        string     `json:"owner_email"`
	IRCCUsername      string     `json:"ircc_username"`
	Email             string     `json:"email"`
	IsActive          bool       `json:"is_active"`
	LastStatus        string     `json:"last_status"`
	LastChecked       *time.Time `json:"last_checked"`
	LastTimestamp     *int64     `json:"last_timestamp"`
	ApplicationNumber string     `json:"application_number"`
	ApplicationType   string     `json:"application_type"`
	CreatedAt         time.Time  `json:"created_at"`
}

func viewCredential(c *credentials.Credential) credentialView {
	v := credentialView{
		ID:                c.ID,
		UserID:            c.UserID,
		OwnerEmail:        c.OwnerEmail,
		IRCCUsername:      c.IRCCUsername,
		Email:             c.NotificationEmail,
		IsActive:          c.IsActive,
		LastStatus:        c.LastStatus,
		ApplicationNumber: c.ApplicationNumber,
		ApplicationType:   c.ApplicationType,
		CreatedAt:         c.CreatedAt,
	}
	if !c.LastChecked.IsZero() {
		t := c.LastChecked
		v.LastChecked = &t
	}
	if c.LastTimestamp != 0 {
		ts := c.LastTimestamp
		v.LastTimestamp = &ts
	}
	return v
}

type credentialList struct {
	Credentials []credentialView `json:"credentials"`
	Total       int              `json:"total"`
}

func viewCredentials(list []credentials.Credential) credentialList {
	out := credentialList{Credentials: make([]credentialView, 0, len(list)), Total: len(list)}
	for i := range list {
		out.Credentials = append(out.Credentials, viewCredential(&list[i]))
	}
	return out
}

func (s *RESTServer) myCredentials(w http.ResponseWriter, r *http.Request) {
	list, err := s.credentials.Mine(r.Context(), ownerOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCredentials(list))
}

func (s *RESTServer) allCredentials(w http.ResponseWriter, r *http.Request) {
	list, err := s.credentials.All(r.Context(), ownerOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCredentials(list))
}

func (s *RESTServer) createCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IRCCUsername    string `json:"ircc_username"`
		IRCCPassword    string `json:"ircc_password"`
		Email           string `json:"email"`
		IsActive        *bool  `json:"is_active"`
		ApplicationType string `json:"application_type"`
	}
	if !decode(w, r, &req) {
		return
	}

	in := credentials.Input{
		IRCCUsername:      req.IRCCUsername,
		IRCCPassword:      req.IRCCPassword,
		NotificationEmail: req.Email,
		IsActive:          req.IsActive == nil || *req.IsActive,
		ApplicationType:   req.ApplicationType,
	}

	c, err := s.credentials.Create(r.Context(), ownerOf(r), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Credential created", "id", c.ID, "application_number", c.ApplicationNumber)
	writeJSON(w, http.StatusCreated, viewCredential(c))
}

func (s *RESTServer) getCredential(w http.ResponseWriter, r *http.Request) {
	c, err := s.credentials.Get(r.Context(), ownerOf(r), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCredential(c))
}

func (s *RESTServer) updateCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IRCCUsername    *string `json:"ircc_username"`
		IRCCPassword    *string `json:"ircc_password"`
		Email           *string `json:"email"`
		IsActive        *bool   `json:"is_active"`
		ApplicationType *string `json:"application_type"`
	}
	if !decode(w, r, &req) {
		return
	}

	c, err := s.credentials.Update(r.Context(), ownerOf(r), mux.Vars(r)["id"], credentials.Patch{
		IRCCUsername:      req.IRCCUsername,
		IRCCPassword:      req.IRCCPassword,
		NotificationEmail: req.Email,
		IsActive:          req.IsActive,
		ApplicationType:   req.ApplicationType,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCredential(c))
}

func (s *RESTServer) deleteCredential(w http.ResponseWriter, r *http.Request) {
	if err := s.credentials.Delete(r.Context(), ownerOf(r), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Credential deleted successfully"})
}
