package models

import "encoding/json"

type UserStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

type CredentialStats struct {
	Total              int            `json:"total"`
	StatusDistribution map[string]int `json:"status_distribution"`
}

// AdminStats is the admin dashboard payload. Scheduler is kept raw because
// its shape belongs to the backend's job runner.
type AdminStats struct {
	Users        UserStats       `json:"users"`
	Credentials  CredentialStats `json:"credentials"`
	Scheduler    json.RawMessage `json:"scheduler,omitempty"`
	SystemStatus string          `json:"system_status"`
}

// PublicConfig is served unauthenticated by GET /config.
type PublicConfig struct {
	GoogleClientID    string `json:"googleClientId"`
	GoogleAnalyticsID string `json:"googleAnalyticsId"`
}
