package rest

import (
	"fmt"
	"net/http"
	"time"
)

type schedulerView struct {
	Running   bool       `json:"running"`
	LastCheck *time.Time `json:"last_check"`
	Checked   int        `json:"checked"`
}

func (s *RESTServer) adminDashboard(w http.ResponseWriter, r *http.Request) {
	us, err := s.users.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cs, err := s.credentials.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	sched := schedulerView{Checked: s.checked}
	if !s.lastCheck.IsZero() {
		t := s.lastCheck
		sched.LastCheck = &t
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"users": map[string]int{
			"total":    us.Total,
			"active":   us.Active,
			"inactive": us.Inactive,
		},
		"credentials": map[string]any{
			"total":               cs.Total,
			"status_distribution": cs.StatusDistribution,
		},
		"scheduler":     sched,
		"system_status": "running",
	})
}

func (s *RESTServer) checkAll(w http.ResponseWriter, r *http.Request) {
	n, err := s.credentials.CheckAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	s.lastCheck = time.Now().UTC()
	s.checked = n
	s.mu.Unlock()

	s.logger.Info(r.Context(), "Checked credentials", "count", n)
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Checked %d credentials", n)})
}

// testEmail does not deliver mail; it logs the would-be recipient.
func (s *RESTServer) testEmail(w http.ResponseWriter, r *http.Request) {
	to := currentUser(r).Email
	s.logger.Info(r.Context(), "Test e-mail requested", "to", to)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Test email sent to " + to})
}
