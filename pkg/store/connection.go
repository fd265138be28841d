package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/glorpus-work/bundlestore/internal/logger"
	"github.com/glorpus-work/bundlestore/pkg/catalog"
)

// Environment variable names consumed by the resolver.
const (
	// EnvDisableRemote disables all catalog access when set to "1"; every
	// connection attempt fails immediately.
	EnvDisableRemote = "BUNDLESTORE_DISABLE_REMOTE"
	// EnvQAMode, when set to any non-empty value, includes versions still
	// under review in latest-version queries.
	EnvQAMode = "BUNDLESTORE_QA_MODE"
)

// Environment is a snapshot of the host flags influencing resolution.
type Environment struct {
	RemoteDisabled bool
	QAMode         bool
}

// EnvironmentFromOS reads the environment flags from the process environment.
func EnvironmentFromOS() Environment {
	return Environment{
		RemoteDisabled: os.Getenv(EnvDisableRemote) == "1",
		QAMode:         os.Getenv(EnvQAMode) != "",
	}
}

// Connection is an established catalog session together with the acting
// identity recorded on usage events.
type Connection struct {
	Client   catalog.Client
	Identity catalog.Identity
}

// ConnectionCache caches catalog connections per site base URL for the
// lifetime of the process; a site has exactly one catalog account, so one
// connection per site suffices. The cache is safe for concurrent use and
// dials once per key: concurrent first requests for the same site share a
// single dial (single-flight). Failed dials are not cached.
type ConnectionCache struct {
	mu     sync.Mutex
	conns  map[string]*Connection
	flight map[string]*dialFlight
}

type dialFlight struct {
	done chan struct{}
	conn *Connection
	err  error
}

// NewConnectionCache creates an empty connection cache.
func NewConnectionCache() *ConnectionCache {
	return &ConnectionCache{
		conns:  make(map[string]*Connection),
		flight: make(map[string]*dialFlight),
	}
}

// Get returns the cached connection for key, dialing it with dial when
// absent. Callers requesting the same key while a dial is in flight wait for
// its outcome instead of dialing again.
func (c *ConnectionCache) Get(ctx context.Context, key string, dial func(context.Context) (*Connection, error)) (*Connection, error) {
	c.mu.Lock()
	if conn, ok := c.conns[key]; ok {
		c.mu.Unlock()
		return conn, nil
	}
	if fl, ok := c.flight[key]; ok {
		c.mu.Unlock()
		select {
		case <-fl.done:
			return fl.conn, fl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	fl := &dialFlight{done: make(chan struct{})}
	c.flight[key] = fl
	c.mu.Unlock()

	fl.conn, fl.err = dial(ctx)

	c.mu.Lock()
	delete(c.flight, key)
	if fl.err == nil {
		c.conns[key] = fl.conn
	}
	c.mu.Unlock()
	close(fl.done)

	return fl.conn, fl.err
}

// connect returns the cached connection for the resolver's site, dialing it
// on first use.
func (r *Resolver) connect(ctx context.Context) (*Connection, error) {
	if r.env.RemoteDisabled {
		return nil, fmt.Errorf("the %s environment variable is active: %w", EnvDisableRemote, catalog.ErrRemoteDisabled)
	}
	return r.conns.Get(ctx, r.site.BaseURL(), r.dial)
}

// dial fetches the catalog credentials from the site, establishes the
// catalog session and resolves the acting identity.
func (r *Resolver) dial(ctx context.Context) (*Connection, error) {
	creds, err := r.site.InstallCredentials(ctx)
	if errors.Is(err, catalog.ErrSessionExpired) {
		// The credentials endpoint sits outside the session-refreshing API
		// wrapper, so an expired session must be renewed explicitly. One
		// refresh, one retry.
		logger.Debugf("site session expired while fetching catalog credentials, refreshing and retrying")
		if rerr := r.site.RefreshSession(ctx); rerr != nil {
			return nil, rerr
		}
		creds, err = r.site.InstallCredentials(ctx)
	}
	if err != nil {
		return nil, err
	}

	client, err := r.dialer.Dial(ctx, creds)
	if err != nil {
		return nil, err
	}

	identity, err := r.resolveIdentity(ctx, client, creds)
	if err != nil {
		return nil, err
	}
	return &Connection{Client: client, Identity: identity}, nil
}

// resolveIdentity looks up the catalog account the credentials belong to.
func (r *Resolver) resolveIdentity(ctx context.Context, client catalog.Client, creds catalog.Credentials) (catalog.Identity, error) {
	rec, err := client.FindOne(ctx, catalog.ServiceAccountEntity, []catalog.Filter{
		{Field: catalog.FieldName, Op: catalog.OpIs, Value: creds.Login},
	}, []string{catalog.FieldType, catalog.FieldID})
	if err != nil {
		return catalog.Identity{}, err
	}
	if rec == nil {
		return catalog.Identity{}, fmt.Errorf("could not resolve the catalog account %q: %w", creds.Login, catalog.ErrInvalidCredentials)
	}
	return catalog.Identity{Type: rec.String(catalog.FieldType), ID: rec.Int(catalog.FieldID)}, nil
}

// HasRemoteAccess probes whether a catalog connection can currently be
// established. It never returns an error and has no side effects beyond
// populating the connection cache on success.
func (r *Resolver) HasRemoteAccess(ctx context.Context) bool {
	logger.Debugf("probing if a catalog connection can be established")
	if _, err := r.connect(ctx); err != nil {
		logger.Debugf("could not establish catalog connection: %v", err)
		return false
	}
	return true
}
