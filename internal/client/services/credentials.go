package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/irccwatch/internal/client/client"
	"github.com/dmitrijs2005/irccwatch/internal/client/models"
)

type CredentialService interface {
	Mine(ctx context.Context) (*models.CredentialList, error)
	// All lists every user's credentials; admin only.
	All(ctx context.Context) (*models.CredentialList, error)
	Get(ctx context.Context, id string) (*models.Credential, error)
	Create(ctx context.Context, in models.CredentialInput) (*models.Credential, error)
	Update(ctx context.Context, id string, patch models.CredentialPatch) (*models.Credential, error)
	SetActive(ctx context.Context, id string, active bool) (*models.Credential, error)
	Delete(ctx context.Context, id string) error
}

type credentialService struct {
	api client.API
}

func NewCredentialService(api client.API) CredentialService {
	return &credentialService{api: api}
}

func (s *credentialService) Mine(ctx context.Context) (*models.CredentialList, error) {
	return s.api.MyCredentials(ctx)
}

func (s *credentialService) All(ctx context.Context) (*models.CredentialList, error) {
	return s.api.AllCredentials(ctx)
}

func (s *credentialService) Get(ctx context.Context, id string) (*models.Credential, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.api.Credential(ctx, id)
}

func (s *credentialService) Create(ctx context.Context, in models.CredentialInput) (*models.Credential, error) {
	in.IRCCUsername = strings.TrimSpace(in.IRCCUsername)
	in.NotificationEmail = strings.TrimSpace(in.NotificationEmail)
	if in.ApplicationType == "" {
		in.ApplicationType = models.ApplicationCitizen
	}
	if err := asValidationError(validateCredentialInput(in)); err != nil {
		return nil, err
	}
	return s.api.CreateCredential(ctx, in)
}

func (s *credentialService) Update(ctx context.Context, id string, patch models.CredentialPatch) (*models.Credential, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, client.ValidationError("nothing to update", nil)
	}
	if err := asValidationError(validateCredentialPatch(patch)); err != nil {
		return nil, err
	}
	return s.api.UpdateCredential(ctx, id, patch)
}

func (s *credentialService) SetActive(ctx context.Context, id string, active bool) (*models.Credential, error) {
	return s.Update(ctx, id, models.CredentialPatch{IsActive: &active})
}

func (s *credentialService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.api.DeleteCredential(ctx, id)
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return client.ValidationError("invalid input", map[string]string{"id": "cannot be blank"})
	}
	return nil
}
