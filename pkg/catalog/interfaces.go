//go:generate mockgen -destination=./mocks/catalog.go . Client,CredentialsSource,Dialer

// Package catalog defines the capability surface of the remote catalog
// service: the query client, the record shape, the per-kind entity schema and
// the classified errors the rest of bundlestore reacts to. The transport that
// implements these interfaces is supplied by the host.
package catalog

import "context"

// Filter narrows a catalog query. Op is one of OpIs and OpIsNot.
type Filter struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Value any    `json:"value"`
}

// Filter operators.
const (
	OpIs    = "is"
	OpIsNot = "is_not"
)

// Order sorts a catalog query result by a single field.
type Order struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Sort directions.
const (
	Ascending  = "asc"
	Descending = "desc"
)

// Client is a connected catalog session. Implementations return errors
// wrapping ErrConnection or ErrInvalidCredentials so callers can classify
// failures without knowing the transport.
type Client interface {
	// FindOne returns the first record of the given entity type matching all
	// filters, or nil when no record matches.
	FindOne(ctx context.Context, entityType string, filters []Filter, fields []string) (Record, error)

	// Find returns all records matching the filters in the given order.
	// A limit of zero means no limit.
	Find(ctx context.Context, entityType string, filters []Filter, fields []string, order []Order, limit int) ([]Record, error)

	// Create writes a new record of the given entity type.
	Create(ctx context.Context, entityType string, data Record) (Record, error)
}

// Credentials is the service account used to talk to the catalog.
type Credentials struct {
	Login string
	Key   string
}

// Identity is the catalog-side entity of the acting account, recorded on
// usage events.
type Identity struct {
	Type string
	ID   int
}

// Record converts the identity into its catalog record form.
func (i Identity) Record() Record {
	return Record{"type": i.Type, "id": i.ID}
}

// CredentialsSource obtains catalog credentials from the originating site.
// There is a strict one-to-one relationship between a site and its catalog
// account, so connections are cached per site base URL.
type CredentialsSource interface {
	// BaseURL returns the site base URL the credentials belong to.
	BaseURL() string

	// InstallCredentials fetches the catalog service account from the site.
	// A stale site session surfaces as an error wrapping ErrSessionExpired.
	InstallCredentials(ctx context.Context) (Credentials, error)

	// RefreshSession forces the site session to be renewed.
	RefreshSession(ctx context.Context) error
}

// Dialer establishes a catalog client from credentials.
type Dialer interface {
	Dial(ctx context.Context, creds Credentials) (Client, error)
}
