package models

// ApplicationType is the kind of IRCC application a credential tracks.
type ApplicationType string

const (
	ApplicationCitizen   ApplicationType = "citizen"
	ApplicationImmigrant ApplicationType = "immigrant"
)

func (t ApplicationType) IsValid() bool {
	return t == ApplicationCitizen || t == ApplicationImmigrant
}

// Credential is the client's view of a stored IRCC portal login. The portal
// password is write-only and never part of this type.
type Credential struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id,omitempty"`
	OwnerEmail        string          `json:"owner_email,omitempty"`
	IRCCUsername      string          `json:"ircc_username"`
	NotificationEmail string          `json:"email"`
	IsActive          bool            `json:"is_active"`
	LastStatus        string          `json:"last_status"`
	LastCheckedAt     Timestamp       `json:"last_checked"`
	LastStatusAt      Timestamp       `json:"last_timestamp"`
	ApplicationNumber string          `json:"application_number"`
	ApplicationType   ApplicationType `json:"application_type"`
}

// CredentialList is the payload of the credential listing endpoints.
type CredentialList struct {
	Credentials []Credential `json:"credentials"`
	Total       int          `json:"total"`
}

// CredentialInput is sent once to create a credential.
type CredentialInput struct {
	IRCCUsername      string          `json:"ircc_username"`
	IRCCPassword      string          `json:"ircc_password"`
	NotificationEmail string          `json:"email"`
	IsActive          bool            `json:"is_active"`
	ApplicationType   ApplicationType `json:"application_type"`
}

// CredentialPatch is a partial update; nil fields are left untouched.
type CredentialPatch struct {
	IRCCUsername      *string          `json:"ircc_username,omitempty"`
	IRCCPassword      *string          `json:"ircc_password,omitempty"`
	NotificationEmail *string          `json:"email,omitempty"`
	IsActive          *bool            `json:"is_active,omitempty"`
	ApplicationType   *ApplicationType `json:"application_type,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p CredentialPatch) IsEmpty() bool {
	return p.IRCCUsername == nil && p.IRCCPassword == nil && p.NotificationEmail == nil &&
		p.IsActive == nil && p.ApplicationType == nil
}
