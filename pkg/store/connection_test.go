package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/bundlestore/pkg/catalog"
	"github.com/glorpus-work/bundlestore/pkg/store"
)

func TestLatestVersionWithRemoteDisabled(t *testing.T) {
	f := newFixture(t, store.Options{Environment: &store.Environment{RemoteDisabled: true}})
	f.seedFooVersions()

	_, err := f.resolver.LatestVersion(context.Background(), fooRef(""), "")

	require.ErrorIs(t, err, catalog.ErrRemoteDisabled)
	assert.Zero(t, f.site.InstallCalls, "no network traffic when remote access is disabled")
}

func TestConnectionIsReusedAcrossQueries(t *testing.T) {
	f := newFixture(t, store.Options{})
	f.seedFooVersions()

	_, err := f.resolver.LatestVersion(context.Background(), fooRef(""), "")
	require.NoError(t, err)
	_, err = f.resolver.LatestVersion(context.Background(), fooRef("stable"), "")
	require.NoError(t, err)

	assert.Equal(t, 1, f.site.InstallCalls)
	assert.Equal(t, 1, f.dialer.DialCalls)
}

func TestExpiredSessionIsRefreshedOnce(t *testing.T) {
	f := newFixture(t, store.Options{})
	f.seedFooVersions()
	f.site.ErrOnce = fmt.Errorf("credentials request rejected: %w", catalog.ErrSessionExpired)

	resolved, err := f.resolver.LatestVersion(context.Background(), fooRef(""), "")

	require.NoError(t, err)
	assert.Equal(t, "v1.1.0", resolved.Version)
	assert.Equal(t, 1, f.site.RefreshCalls)
	assert.Equal(t, 2, f.site.InstallCalls)
}

func TestPersistentlyExpiredSessionFails(t *testing.T) {
	f := newFixture(t, store.Options{})
	f.seedFooVersions()
	f.site.Err = fmt.Errorf("credentials request rejected: %w", catalog.ErrSessionExpired)

	_, err := f.resolver.LatestVersion(context.Background(), fooRef(""), "")

	require.ErrorIs(t, err, catalog.ErrSessionExpired)
	// exactly one refresh and one retry, no loop
	assert.Equal(t, 1, f.site.RefreshCalls)
	assert.Equal(t, 2, f.site.InstallCalls)
}

func TestUnknownServiceAccountFails(t *testing.T) {
	f := newFixture(t, store.Options{})
	f.site.Creds = catalog.Credentials{Login: "someone_else", Key: "secret"}

	_, err := f.resolver.LatestVersion(context.Background(), fooRef(""), "")

	assert.ErrorIs(t, err, catalog.ErrInvalidCredentials)
}

func TestHasRemoteAccess(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		f := newFixture(t, store.Options{})
		assert.True(t, f.resolver.HasRemoteAccess(context.Background()))
	})

	t.Run("dial failure", func(t *testing.T) {
		f := newFixture(t, store.Options{})
		f.dialer.Err = fmt.Errorf("boom: %w", catalog.ErrConnection)
		assert.False(t, f.resolver.HasRemoteAccess(context.Background()))
	})

	t.Run("remote disabled", func(t *testing.T) {
		f := newFixture(t, store.Options{Environment: &store.Environment{RemoteDisabled: true}})
		assert.False(t, f.resolver.HasRemoteAccess(context.Background()))
	})
}

func TestConnectionCacheSingleFlight(t *testing.T) {
	cache := store.NewConnectionCache()

	var mu sync.Mutex
	dials := 0
	release := make(chan struct{})
	dial := func(context.Context) (*store.Connection, error) {
		mu.Lock()
		dials++
		mu.Unlock()
		<-release
		return &store.Connection{}, nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]*store.Connection, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, err := cache.Get(context.Background(), "https://site.example.test", dial)
			assert.NoError(t, err)
			results[i] = conn
		}(i)
	}

	close(release)
	wg.Wait()

	mu.Lock()
	assert.Equal(t, 1, dials)
	mu.Unlock()
	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestConnectionCacheDoesNotCacheFailures(t *testing.T) {
	cache := store.NewConnectionCache()

	dials := 0
	dial := func(context.Context) (*store.Connection, error) {
		dials++
		if dials == 1 {
			return nil, fmt.Errorf("transient: %w", catalog.ErrConnection)
		}
		return &store.Connection{}, nil
	}

	_, err := cache.Get(context.Background(), "key", dial)
	require.Error(t, err)

	conn, err := cache.Get(context.Background(), "key", dial)
	require.NoError(t, err)
	assert.NotNil(t, conn)
	assert.Equal(t, 2, dials)

	// the success is cached
	again, err := cache.Get(context.Background(), "key", dial)
	require.NoError(t, err)
	assert.Same(t, conn, again)
	assert.Equal(t, 2, dials)
}

func TestConnectionCacheKeysAreIndependent(t *testing.T) {
	cache := store.NewConnectionCache()

	dial := func(context.Context) (*store.Connection, error) {
		return &store.Connection{}, nil
	}

	a, err := cache.Get(context.Background(), "https://a.test", dial)
	require.NoError(t, err)
	b, err := cache.Get(context.Background(), "https://b.test", dial)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
}

func TestEnvironmentFromOS(t *testing.T) {
	t.Setenv(store.EnvDisableRemote, "1")
	t.Setenv(store.EnvQAMode, "yes")
	env := store.EnvironmentFromOS()
	assert.True(t, env.RemoteDisabled)
	assert.True(t, env.QAMode)

	t.Setenv(store.EnvDisableRemote, "0")
	t.Setenv(store.EnvQAMode, "")
	env = store.EnvironmentFromOS()
	assert.False(t, env.RemoteDisabled)
	assert.False(t, env.QAMode)
}
