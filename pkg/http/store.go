package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glorpus-work/bundlestore/pkg/catalog"
	"github.com/glorpus-work/bundlestore/pkg/errors"
)

// Catalog query endpoints.
const (
	findOnePath = "/api/v1/find_one"
	findPath    = "/api/v1/find"
	createPath  = "/api/v1/create"
)

// StoreDialer creates catalog clients for one catalog deployment. It
// implements catalog.Dialer.
type StoreDialer struct {
	storeURL string
	client   *http.Client
}

// NewStoreDialer creates a dialer for the catalog at storeURL. An empty
// proxyURL falls back to the process environment's proxy settings.
func NewStoreDialer(storeURL string, timeout time.Duration, proxyURL string) (*StoreDialer, error) {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid catalog proxy URL %q", proxyURL)
		}
		transport.Proxy = http.ProxyURL(parsed)
	}
	return &StoreDialer{
		storeURL: strings.TrimRight(storeURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// Dial returns a catalog client authenticated with the given credentials.
// The connection is lazy; the first query performs the actual round trip.
func (d *StoreDialer) Dial(_ context.Context, creds catalog.Credentials) (catalog.Client, error) {
	return &StoreClient{
		storeURL: d.storeURL,
		client:   d.client,
		creds:    creds,
	}, nil
}

// StoreClient is a JSON-over-HTTP catalog session. It implements
// catalog.Client and classifies transport and authentication failures as
// catalog errors.
type StoreClient struct {
	storeURL string
	client   *http.Client
	creds    catalog.Credentials
}

// FindOne returns the first record matching the filters, or nil.
func (sc *StoreClient) FindOne(ctx context.Context, entityType string, filters []catalog.Filter, fields []string) (catalog.Record, error) {
	req := map[string]any{
		"entity_type": entityType,
		"filters":     filters,
		"fields":      fields,
	}
	var resp struct {
		Record catalog.Record `json:"record"`
	}
	if err := sc.post(ctx, findOnePath, req, &resp); err != nil {
		return nil, err
	}
	return resp.Record, nil
}

// Find returns all records matching the filters.
func (sc *StoreClient) Find(ctx context.Context, entityType string, filters []catalog.Filter, fields []string, order []catalog.Order, limit int) ([]catalog.Record, error) {
	req := map[string]any{
		"entity_type": entityType,
		"filters":     filters,
		"fields":      fields,
		"order":       order,
		"limit":       limit,
	}
	var resp struct {
		Records []catalog.Record `json:"records"`
	}
	if err := sc.post(ctx, findPath, req, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// Create writes a new record.
func (sc *StoreClient) Create(ctx context.Context, entityType string, data catalog.Record) (catalog.Record, error) {
	req := map[string]any{
		"entity_type": entityType,
		"data":        data,
	}
	var resp struct {
		Record catalog.Record `json:"record"`
	}
	if err := sc.post(ctx, createPath, req, &resp); err != nil {
		return nil, err
	}
	return resp.Record, nil
}

// post sends one JSON request and decodes the response into out.
func (sc *StoreClient) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode catalog request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sc.storeURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(sc.creds.Login, sc.creds.Key)

	resp, err := sc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("catalog at %s: %w", sc.storeURL, catalog.ErrInvalidCredentials)
	default:
		return fmt.Errorf("%w: catalog at %s returned HTTP %d", catalog.ErrConnection, sc.storeURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrConnection, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "malformed catalog response from %s", sc.storeURL)
	}
	return nil
}
