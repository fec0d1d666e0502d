package credentials

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/irccwatch/internal/cryptox"
	"github.com/dmitrijs2005/irccwatch/internal/shared"
)

// StatusUnchecked is reported for credentials that were never polled.
const StatusUnchecked = "notChecked"

// Owner identifies the caller of a credential operation.
type Owner struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// Tracker keeps application records for the numbers credentials point at.
type Tracker interface {
	Track(ctx context.Context, number string) (status string, lastUpdated int64, err error)
	Refresh(ctx context.Context, number string) (status string, lastUpdated int64, err error)
}

type Service struct {
	repo    Repository
	sealer  *cryptox.Sealer
	tracker Tracker
	now     func() time.Time
}

func NewService(repo Repository, sealer *cryptox.Sealer, tracker Tracker) *Service {
	return &Service{repo: repo, sealer: sealer, tracker: tracker, now: time.Now}
}

var applicationTypes = []interface{}{TypeCitizen, TypeImmigrant}

type inputForm struct {
	IRCCUsername      string `json:"ircc_username"`
	IRCCPassword      string `json:"ircc_password"`
	NotificationEmail string `json:"email"`
	ApplicationType   string `json:"application_type"`
}

type patchForm struct {
	IRCCUsername      *string `json:"ircc_username"`
	IRCCPassword      *string `json:"ircc_password"`
	NotificationEmail *string `json:"email"`
	ApplicationType   *string `json:"application_type"`
}

func validateInput(in Input) error {
	f := inputForm{in.IRCCUsername, in.IRCCPassword, in.NotificationEmail, in.ApplicationType}
	return fieldErrors(validation.ValidateStruct(&f,
		validation.Field(&f.IRCCUsername, validation.Required),
		validation.Field(&f.IRCCPassword, validation.Required),
		validation.Field(&f.NotificationEmail, validation.Required, is.Email),
		validation.Field(&f.ApplicationType, validation.Required, validation.In(applicationTypes...)),
	))
}

func validatePatch(p Patch) error {
	f := patchForm{p.IRCCUsername, p.IRCCPassword, p.NotificationEmail, p.ApplicationType}
	return fieldErrors(validation.ValidateStruct(&f,
		validation.Field(&f.IRCCUsername, validation.NilOrNotEmpty),
		validation.Field(&f.IRCCPassword, validation.NilOrNotEmpty),
		validation.Field(&f.NotificationEmail, validation.NilOrNotEmpty, is.Email),
		validation.Field(&f.ApplicationType, validation.NilOrNotEmpty, validation.In(applicationTypes...)),
	))
}

func fieldErrors(err error) error {
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
	return &shared.ValidationError{Fields: fields}
}

// NewApplicationNumber builds a portal-style number: C for citizenship,
// E for immigration, then eight digits.
func NewApplicationNumber(appType string) string {
	prefix := "C"
	if appType == TypeImmigrant {
		prefix = "E"
	}
	return fmt.Sprintf("%s%08d", prefix, rand.IntN(100_000_000))
}

func (s *Service) Mine(ctx context.Context, owner Owner) ([]Credential, error) {
	return s.repo.ListByUser(ctx, owner.UserID)
}

func (s *Service) All(ctx context.Context, owner Owner) ([]Credential, error) {
	if !owner.IsAdmin {
		return nil, shared.ErrorForbidden
	}
	return s.repo.List(ctx)
}

// Get returns the credential if owner may see it. Other users' records are
// reported as not found.
func (s *Service) Get(ctx context.Context, owner Owner, id string) (*Credential, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != owner.UserID && !owner.IsAdmin {
		return nil, shared.ErrorNotFound
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, owner Owner, in Input) (*Credential, error) {
	in.IRCCUsername = strings.TrimSpace(in.IRCCUsername)
	in.NotificationEmail = strings.TrimSpace(in.NotificationEmail)
	in.ApplicationType = strings.ToLower(strings.TrimSpace(in.ApplicationType))
	if in.ApplicationType == "" {
		in.ApplicationType = TypeCitizen
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	sealed, err := s.sealer.Seal(in.IRCCPassword)
	if err != nil {
		return nil, fmt.Errorf("seal password: %w", err)
	}

	c := &Credential{
		UserID:            owner.UserID,
		OwnerEmail:        owner.Email,
		IRCCUsername:      in.IRCCUsername,
		SealedPassword:    sealed,
		NotificationEmail: in.NotificationEmail,
		IsActive:          in.IsActive,
		LastStatus:        StatusUnchecked,
		ApplicationNumber: NewApplicationNumber(in.ApplicationType),
		ApplicationType:   in.ApplicationType,
	}

	if s.tracker != nil {
		st, ts, err := s.tracker.Track(ctx, c.ApplicationNumber)
		if err != nil {
			return nil, fmt.Errorf("track application: %w", err)
		}
		c.LastStatus, c.LastTimestamp = st, ts
	}

	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, owner Owner, id string, p Patch) (*Credential, error) {
	if err := validatePatch(p); err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if p.IRCCUsername != nil {
		c.IRCCUsername = strings.TrimSpace(*p.IRCCUsername)
	}
	if p.IRCCPassword != nil {
		sealed, err := s.sealer.Seal(*p.IRCCPassword)
		if err != nil {
			return nil, fmt.Errorf("seal password: %w", err)
		}
		c.SealedPassword = sealed
	}
	if p.NotificationEmail != nil {
		c.NotificationEmail = strings.TrimSpace(*p.NotificationEmail)
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	if p.ApplicationType != nil {
		c.ApplicationType = *p.ApplicationType
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, owner Owner, id string) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// CheckAll polls every active credential once and returns how many were
// checked. A credential whose password cannot be opened is skipped.
func (s *Service) CheckAll(ctx context.Context) (int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	checked := 0
	for _, c := range all {
		if err := ctx.Err(); err != nil {
			return checked, err
		}
		if !c.IsActive {
			continue
		}
		if _, err := s.sealer.Open(c.SealedPassword); err != nil {
			continue
		}

		if s.tracker != nil {
			st, ts, err := s.tracker.Refresh(ctx, c.ApplicationNumber)
			if err != nil {
				return checked, fmt.Errorf("refresh %s: %w", c.ApplicationNumber, err)
			}
			c.LastStatus, c.LastTimestamp = st, ts
		}
		c.LastChecked = s.now().UTC()

		if err := s.repo.Update(ctx, &c); err != nil {
			if errors.Is(err, shared.ErrorNotFound) {
				continue
			}
			return checked, err
		}
		checked++
	}

	return checked, nil
}

// FindByApplication returns the credential tracking number, limited to
// owner's credentials unless owner is an admin.
func (s *Service) FindByApplication(ctx context.Context, owner Owner, number string) (*Credential, error) {
	var (
		list []Credential
		err  error
	)
	if owner.IsAdmin {
		list, err = s.repo.List(ctx)
	} else {
		list, err = s.repo.ListByUser(ctx, owner.UserID)
	}
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ApplicationNumber == number {
			return &list[i], nil
		}
	}
	return nil, shared.ErrorNotFound
}

type Stats struct {
	Total              int
	StatusDistribution map[string]int
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(all), StatusDistribution: make(map[string]int)}
	for _, c := range all {
		status := c.LastStatus
		if status == "" {
			status = StatusUnchecked
		}
		st.StatusDistribution[status]++
	}
	return st, nil
}
