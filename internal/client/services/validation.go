package services

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/models"
)

const MinPasswordLength = 6

// RegisterForm is the registration screen input.
type RegisterForm struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (f RegisterForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Password, validation.Required, validation.Length(MinPasswordLength, 0)),
		validation.Field(&f.ConfirmPassword, validation.Required, validation.By(stringEquals(f.Password))),
	)
}

// LoginForm is the login screen input.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Password, validation.Required),
	)
}

// ChangePasswordForm is the account screen input.
type ChangePasswordForm struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (f ChangePasswordForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.CurrentPassword, validation.Required),
		validation.Field(&f.NewPassword, validation.Required, validation.Length(MinPasswordLength, 0)),
		validation.Field(&f.ConfirmPassword, validation.Required, validation.By(stringEquals(f.NewPassword))),
	)
}

var applicationTypes = []interface{}{models.ApplicationCitizen, models.ApplicationImmigrant}

func validateCredentialInput(in models.CredentialInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.IRCCUsername, validation.Required),
		validation.Field(&in.IRCCPassword, validation.Required),
		validation.Field(&in.NotificationEmail, validation.Required, is.Email),
		validation.Field(&in.ApplicationType, validation.Required, validation.In(applicationTypes...)),
	)
}

func validateCredentialPatch(p models.CredentialPatch) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.IRCCUsername, validation.NilOrNotEmpty),
		validation.Field(&p.IRCCPassword, validation.NilOrNotEmpty),
		validation.Field(&p.NotificationEmail, validation.NilOrNotEmpty, is.Email),
		validation.Field(&p.ApplicationType, validation.NilOrNotEmpty, validation.In(applicationTypes...)),
	)
}

func stringEquals(want string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != want {
			return errors.New("passwords do not match")
		}
		return nil
	}
}

// asValidationError turns ozzo-validation's per-field errors into a
// client.APIError of kind KindValidation so screens render both local and
// backend validation failures the same way.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for k, e := range verrs {
		if e != nil {
			fields[k] = e.Error()
		}
	}
	return client.ValidationError("invalid input", fields)
}
