package tokenstore

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// CookieName is the cookie that carries the session token.
const CookieName = "auth_token"

// CookieStore keeps the token as a Secure, SameSite=Strict cookie scoped to
// the backend origin and path "/". The jar never releases a Secure cookie for
// a plain-http URL, which is why the store refuses non-https base URLs.
// The jar lives in memory: the token lasts for the process, bounded by its TTL.
type CookieStore struct {
	jar http.CookieJar
	u   *url.URL
}

func NewCookieStore(baseURL string) (*CookieStore, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "https" {
		return nil, ErrInsecureBaseURL
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &CookieStore{jar: jar, u: &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}}, nil
}

func (s *CookieStore) Set(_ context.Context, token string, ttl time.Duration) error {
	if err := validate(token, ttl); err != nil {
		return err
	}
	s.jar.SetCookies(s.u, []*http.Cookie{{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}})
	return nil
}

func (s *CookieStore) Get(_ context.Context) (string, bool, error) {
	for _, c := range s.jar.Cookies(s.u) {
		if c.Name == CookieName && c.Value != "" {
			return c.Value, true, nil
		}
	}
	return "", false, nil
}

func (s *CookieStore) Clear(_ context.Context) error {
	s.jar.SetCookies(s.u, []*http.Cookie{{
		Name:     CookieName,
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}})
	return nil
}
