package client

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/dmitrijs2005/irccwatch/internal/client/models"
)

// API is the backend REST contract as seen by the client.
type API interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	VerifyToken(ctx context.Context, token string) (*models.VerifyTokenResponse, error)
	ChangePassword(ctx context.Context, current, next string) (string, error)

	MyCredentials(ctx context.Context) (*models.CredentialList, error)
	AllCredentials(ctx context.Context) (*models.CredentialList, error)
	Credential(ctx context.Context, id string) (*models.Credential, error)
	CreateCredential(ctx context.Context, in models.CredentialInput) (*models.Credential, error)
	UpdateCredential(ctx context.Context, id string, patch models.CredentialPatch) (*models.Credential, error)
	DeleteCredential(ctx context.Context, id string) error

	Applications(ctx context.Context) (json.RawMessage, error)
	LatestApplication(ctx context.Context, number string) (json.RawMessage, error)
	ApplicationAt(ctx context.Context, number, timestamp string) (json.RawMessage, error)

	AdminDashboard(ctx context.Context) (*models.AdminStats, error)
	CheckAll(ctx context.Context) (string, error)
	TestEmail(ctx context.Context) (string, error)

	PublicConfig(ctx context.Context) (*models.PublicConfig, error)
}

// RESTClient implements API over HTTPClient.
type RESTClient struct {
	http *HTTPClient
}

var _ API = (*RESTClient)(nil)

func NewRESTClient(h *HTTPClient) *RESTClient {
	return &RESTClient{http: h}
}

func (c *RESTClient) Register(ctx context.Context, email, password string) (string, error) {
	var res models.MessageResponse
	if err := c.http.Post(ctx, "/auth/register", models.Credentials{Email: email, Password: password}, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *RESTClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var res models.LoginResponse
	if err := c.http.Post(ctx, "/auth/login", models.Credentials{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RESTClient) VerifyToken(ctx context.Context, token string) (*models.VerifyTokenResponse, error) {
	var res models.VerifyTokenResponse
	if err := c.http.Post(ctx, "/auth/verify-token", models.VerifyTokenRequest{Token: token}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RESTClient) ChangePassword(ctx context.Context, current, next string) (string, error) {
	var res models.MessageResponse
	req := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	if err := c.http.Post(ctx, "/auth/change-password", req, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *RESTClient) MyCredentials(ctx context.Context) (*models.CredentialList, error) {
	return c.credentialList(ctx, "/credentials/my-credentials")
}

func (c *RESTClient) AllCredentials(ctx context.Context) (*models.CredentialList, error) {
	return c.credentialList(ctx, "/credentials/all")
}

func (c *RESTClient) credentialList(ctx context.Context, path string) (*models.CredentialList, error) {
	var res models.CredentialList
	if err := c.http.Get(ctx, path, &res); err != nil {
		return nil, err
	}
	if res.Total == 0 {
		res.Total = len(res.Credentials)
	}
	return &res, nil
}

func (c *RESTClient) Credential(ctx context.Context, id string) (*models.Credential, error) {
	var res models.Credential
	if err := c.http.Get(ctx, "/credentials/"+url.PathEscape(id), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RESTClient) CreateCredential(ctx context.Context, in models.CredentialInput) (*models.Credential, error) {
	var res models.Credential
	if err := c.http.Post(ctx, "/credentials/", in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RESTClient) UpdateCredential(ctx context.Context, id string, patch models.CredentialPatch) (*models.Credential, error) {
	var res models.Credential
	if err := c.http.Put(ctx, "/credentials/"+url.PathEscape(id), patch, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RESTClient) DeleteCredential(ctx context.Context, id string) error {
	return c.http.Delete(ctx, "/credentials/"+url.PathEscape(id), nil)
}

func (c *RESTClient) Applications(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, "/applications")
}

func (c *RESTClient) LatestApplication(ctx context.Context, number string) (json.RawMessage, error) {
	return c.raw(ctx, "/applications/"+url.PathEscape(number)+"/latest")
}

func (c *RESTClient) ApplicationAt(ctx context.Context, number, timestamp string) (json.RawMessage, error) {
	return c.raw(ctx, "/applications/"+url.PathEscape(number)+"/"+url.PathEscape(timestamp))
}

func (c *RESTClient) raw(ctx context.Context, path string) (json.RawMessage, error) {
	var res json.RawMessage
	if err := c.http.Get(ctx, path, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *RESTClient) AdminDashboard(ctx context.Context) (*models.AdminStats, error) {
	var res models.AdminStats
	if err := c.http.Get(ctx, "/admin/dashboard", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RESTClient) CheckAll(ctx context.Context) (string, error) {
	var res models.MessageResponse
	if err := c.http.Post(ctx, "/admin/check-all", nil, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *RESTClient) TestEmail(ctx context.Context) (string, error) {
	var res models.MessageResponse
	if err := c.http.Post(ctx, "/admin/test-email", nil, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *RESTClient) PublicConfig(ctx context.Context) (*models.PublicConfig, error) {
	var res models.PublicConfig
	if err := c.http.Get(ctx, "/config", &res); err != nil {
		return nil, err
	}
	return &res, nil
}
