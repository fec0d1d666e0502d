package credentials

import "time"

const (
	TypeCitizen   = "citizen"
	TypeImmigrant = "immigrant"
)

// Credential is a stored IRCC portal login. SealedPassword never leaves
// the server.
type Credential struct {
	ID                string
	UserID            string
	OwnerEmail        string
	IRCCUsername      string
	SealedPassword    string
	NotificationEmail string
	IsActive          bool
	LastStatus        string
	LastChecked       time.Time
	// LastTimestamp is the lastUpdatedTime (epoch ms) of the newest record.
	LastTimestamp     int64
	ApplicationNumber string
	ApplicationType   string
	CreatedAt         time.Time
}

type Input struct {
	IRCCUsername      string
	IRCCPassword      string
	NotificationEmail string
	IsActive          bool
	ApplicationType   string
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	IRCCUsername      *string
	IRCCPassword      *string
	NotificationEmail *string
	IsActive          *bool
	ApplicationType   *string
}
