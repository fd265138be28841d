package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/bundlestore/pkg/catalog"
	"github.com/glorpus-work/bundlestore/pkg/model"
	"github.com/glorpus-work/bundlestore/pkg/store"
	"github.com/glorpus-work/bundlestore/test/testutil"
)

func mkVersionDir(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func newInventoryResolver(t *testing.T, fallbacks ...string) (*store.Resolver, string) {
	t.Helper()
	cacheRoot := t.TempDir()
	resolver := store.NewResolver(
		&testutil.FixtureSite{URL: "https://site.example.test"},
		&testutil.FixtureDialer{},
		catalog.DefaultSchema(),
		cacheRoot,
		store.Options{FallbackRoots: fallbacks, Environment: &store.Environment{}},
	)
	return resolver, cacheRoot
}

func TestListLocalVersions(t *testing.T) {
	fallback := t.TempDir()
	resolver, cacheRoot := newInventoryResolver(t, fallback)

	fallbackDir := mkVersionDir(t, fallback, "store", "foo", "v1.0.0")
	mkVersionDir(t, fallback, "store", "foo", "v0.9.0")
	legacyDir := mkVersionDir(t, cacheRoot, "apps", "store", "foo", "v1.1.0")
	primaryDir := mkVersionDir(t, cacheRoot, "store", "foo", "v1.0.0")
	mkVersionDir(t, cacheRoot, "store", "foo", "v1.2.0")

	// noise that must be ignored
	mkVersionDir(t, cacheRoot, "store", "foo", ".tmp")
	require.NoError(t, os.WriteFile(filepath.Join(cacheRoot, "store", "foo", "notes.txt"), []byte("x"), 0o644))

	versions := resolver.ListLocalVersions(model.KindApp, "foo")

	assert.Len(t, versions, 4)
	assert.Equal(t, primaryDir, versions["v1.0.0"], "primary root shadows the fallback copy")
	assert.Equal(t, legacyDir, versions["v1.1.0"])
	assert.Equal(t, filepath.Join(fallback, "store", "foo", "v0.9.0"), versions["v0.9.0"])
	assert.NotEqual(t, fallbackDir, versions["v1.0.0"])
}

func TestListLocalVersionsEmpty(t *testing.T) {
	resolver, _ := newInventoryResolver(t)
	assert.Empty(t, resolver.ListLocalVersions(model.KindApp, "foo"))
}

func TestLocalPathPrecedence(t *testing.T) {
	fallback := t.TempDir()
	resolver, cacheRoot := newInventoryResolver(t, fallback)
	ref := model.ArtifactReference{Kind: model.KindApp, Name: "foo", Version: "v1.0.0"}

	assert.Empty(t, resolver.LocalPath(ref))

	fallbackDir := mkVersionDir(t, fallback, "store", "foo", "v1.0.0")
	assert.Equal(t, fallbackDir, resolver.LocalPath(ref))

	legacyDir := mkVersionDir(t, cacheRoot, "apps", "store", "foo", "v1.0.0")
	assert.Equal(t, legacyDir, resolver.LocalPath(ref))

	primaryDir := mkVersionDir(t, cacheRoot, "store", "foo", "v1.0.0")
	assert.Equal(t, primaryDir, resolver.LocalPath(ref))
}

func TestLocalPathCoreUsesCoreFolder(t *testing.T) {
	resolver, cacheRoot := newInventoryResolver(t)
	ref := model.ArtifactReference{Kind: model.KindCore, Version: "v0.19.1"}

	dir := mkVersionDir(t, cacheRoot, "store", "core", "v0.19.1")

	assert.Equal(t, dir, resolver.LocalPath(ref))
}

func TestLocalPathLegacyCoreLayout(t *testing.T) {
	resolver, cacheRoot := newInventoryResolver(t)
	ref := model.ArtifactReference{Kind: model.KindCore, Version: "v0.19.1"}

	dir := mkVersionDir(t, cacheRoot, "cores", "store", "core", "v0.19.1")

	assert.Equal(t, dir, resolver.LocalPath(ref))
}
