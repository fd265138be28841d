// Package http implements the HTTP transports behind the catalog
// capabilities: the site endpoint handing out catalog credentials and the
// JSON query client for the catalog service itself.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glorpus-work/bundlestore/internal/logger"
	"github.com/glorpus-work/bundlestore/pkg/catalog"
	"github.com/glorpus-work/bundlestore/pkg/errors"
)

const userAgent = "bundlestore/1.0"

// installCredentialsPath is the site endpoint handing out the catalog
// service account for this site.
const installCredentialsPath = "/api/v1/install_credentials"

// TokenSource supplies and renews the site session token. It is implemented
// by the host's authentication layer.
type TokenSource interface {
	// Token returns the current session token.
	Token(ctx context.Context) (string, error)
	// Refresh forces the session token to be renewed.
	Refresh(ctx context.Context) error
}

// SiteClient fetches catalog credentials from the originating site. It
// implements catalog.CredentialsSource.
type SiteClient struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
}

// NewSiteClient creates a credentials source for the given site.
func NewSiteClient(baseURL string, timeout time.Duration, tokens TokenSource) *SiteClient {
	return &SiteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// BaseURL returns the site base URL the credentials belong to.
func (sc *SiteClient) BaseURL() string {
	return sc.baseURL
}

// InstallCredentials posts the session token to the site's install
// credentials endpoint and returns the catalog service account. A 403
// response wraps catalog.ErrSessionExpired so the caller can refresh the
// session and retry once.
func (sc *SiteClient) InstallCredentials(ctx context.Context) (catalog.Credentials, error) {
	logger.Debugf("retrieving catalog credentials from %s", sc.baseURL)

	token, err := sc.tokens.Token(ctx)
	if err != nil {
		return catalog.Credentials{}, errors.Wrap(err, "failed to obtain site session token")
	}

	form := url.Values{"session_token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		sc.baseURL+installCredentialsPath, strings.NewReader(form.Encode()))
	if err != nil {
		return catalog.Credentials{}, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := sc.client.Do(req)
	if err != nil {
		return catalog.Credentials{}, fmt.Errorf("%w: %v", catalog.ErrConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return catalog.Credentials{}, fmt.Errorf("credentials request to %s rejected: %w", sc.baseURL, catalog.ErrSessionExpired)
	default:
		return catalog.Credentials{}, fmt.Errorf("%w: credentials request to %s returned HTTP %d", catalog.ErrConnection, sc.baseURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return catalog.Credentials{}, fmt.Errorf("%w: %v", catalog.ErrConnection, err)
	}

	var payload struct {
		Login string `json:"login"`
		Key   string `json:"key"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return catalog.Credentials{}, errors.Wrapf(err, "malformed credentials response from %s", sc.baseURL)
	}
	if payload.Login == "" || payload.Key == "" {
		return catalog.Credentials{}, fmt.Errorf("catalog credentials could not be retrieved from %s: %w", sc.baseURL, catalog.ErrInvalidCredentials)
	}

	logger.Debugf("retrieved catalog credentials for account %q", payload.Login)
	return catalog.Credentials{Login: payload.Login, Key: payload.Key}, nil
}

// RefreshSession forces the site session to be renewed.
func (sc *SiteClient) RefreshSession(ctx context.Context) error {
	return sc.tokens.Refresh(ctx)
}
