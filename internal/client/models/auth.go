package models

// Credentials is the e-mail/password pair used by register and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	User    *User  `json:"user"`
	Message string `json:"message"`
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

type VerifyTokenResponse struct {
	Valid   bool   `json:"valid"`
	User    *User  `json:"user"`
	Message string `json:"message"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// MessageResponse is the generic {message} acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
