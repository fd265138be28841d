package metacache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glorpus-work/bundlestore/pkg/catalog"
	mock_catalog "github.com/glorpus-work/bundlestore/pkg/catalog/mocks"
	"github.com/glorpus-work/bundlestore/pkg/model"
)

func appRef() model.ArtifactReference {
	return model.ArtifactReference{Kind: model.KindApp, Name: "image-loader", Version: "v1.2.3"}
}

func TestLoadMissingFileYieldsEmptyMetadata(t *testing.T) {
	c := New(catalog.DefaultSchema())

	meta, err := c.Load(t.TempDir())

	require.NoError(t, err)
	assert.Nil(t, meta.BundleData)
	assert.Nil(t, meta.VersionData)
}

func TestLoadCorruptFile(t *testing.T) {
	c := New(catalog.DefaultSchema())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataFile), []byte("{not json"), 0o644))

	_, err := c.Load(dir)

	var corrupt *CorruptError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, filepath.Join(dir, MetadataFile), corrupt.Path)
}

func TestLoadRoundTrip(t *testing.T) {
	c := New(catalog.DefaultSchema())
	dir := t.TempDir()
	meta := Metadata{
		BundleData:  catalog.Record{"system_name": "image-loader"},
		VersionData: catalog.Record{"code": "v1.2.3"},
	}
	data, err := json.Marshal(meta)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataFile), data, 0o644))

	got, err := c.Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "image-loader", got.BundleData.String(catalog.FieldSystemName))
	assert.Equal(t, "v1.2.3", got.VersionData.String(catalog.FieldVersionCode))
}

func TestRefreshWithPrefetchedDataSkipsRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_catalog.NewMockClient(ctrl)
	// no expectations: any call fails the test

	c := New(catalog.DefaultSchema())
	dir := t.TempDir()
	bundle := catalog.Record{"system_name": "image-loader"}
	version := catalog.Record{"code": "v1.2.3"}

	meta, err := c.Refresh(context.Background(), client, appRef(), dir, bundle, version)

	require.NoError(t, err)
	assert.Equal(t, version, meta.VersionData)

	loaded, err := c.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", loaded.VersionData.String(catalog.FieldVersionCode))
	assert.Equal(t, "image-loader", loaded.BundleData.String(catalog.FieldSystemName))
}

func TestRefreshFetchesBundleAndVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_catalog.NewMockClient(ctrl)
	schema := catalog.DefaultSchema()

	bundle := catalog.Record{"id": 1, "system_name": "image-loader"}
	version := catalog.Record{"id": 10, "code": "v1.2.3"}

	client.EXPECT().
		FindOne(gomock.Any(), "AppBundle", []catalog.Filter{
			{Field: catalog.FieldSystemName, Op: catalog.OpIs, Value: "image-loader"},
		}, schema.BundleFields()).
		Return(bundle, nil)
	client.EXPECT().
		FindOne(gomock.Any(), "AppVersion", []catalog.Filter{
			{Field: "app", Op: catalog.OpIs, Value: bundle},
			{Field: catalog.FieldVersionCode, Op: catalog.OpIs, Value: "v1.2.3"},
		}, schema.VersionFields()).
		Return(version, nil)

	c := New(schema)
	dir := t.TempDir()

	meta, err := c.Refresh(context.Background(), client, appRef(), dir, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, bundle, meta.BundleData)
	assert.Equal(t, version, meta.VersionData)
}

func TestRefreshCoreSkipsBundleLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_catalog.NewMockClient(ctrl)
	schema := catalog.DefaultSchema()

	version := catalog.Record{"id": 10, "code": "v0.19.1"}
	client.EXPECT().
		FindOne(gomock.Any(), "CoreVersion", []catalog.Filter{
			{Field: catalog.FieldVersionCode, Op: catalog.OpIs, Value: "v0.19.1"},
		}, schema.VersionFields()).
		Return(version, nil)

	c := New(schema)
	ref := model.ArtifactReference{Kind: model.KindCore, Version: "v0.19.1"}

	meta, err := c.Refresh(context.Background(), client, ref, t.TempDir(), nil, nil)

	require.NoError(t, err)
	assert.Nil(t, meta.BundleData)
	assert.Equal(t, version, meta.VersionData)
}

func TestRefreshMissingBundle(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_catalog.NewMockClient(ctrl)

	client.EXPECT().
		FindOne(gomock.Any(), "AppBundle", gomock.Any(), gomock.Any()).
		Return(nil, nil)

	c := New(catalog.DefaultSchema())

	_, err := c.Refresh(context.Background(), client, appRef(), t.TempDir(), nil, nil)

	var notFound *catalog.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, notFound.Version)
}

func TestRefreshMissingVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_catalog.NewMockClient(ctrl)

	bundle := catalog.Record{"id": 1}
	client.EXPECT().
		FindOne(gomock.Any(), "AppBundle", gomock.Any(), gomock.Any()).
		Return(bundle, nil)
	client.EXPECT().
		FindOne(gomock.Any(), "AppVersion", gomock.Any(), gomock.Any()).
		Return(nil, nil)

	c := New(catalog.DefaultSchema())

	_, err := c.Refresh(context.Background(), client, appRef(), t.TempDir(), nil, nil)

	var notFound *catalog.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "v1.2.3", notFound.Version)
}

func TestRefreshKindWithoutCatalogPresence(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_catalog.NewMockClient(ctrl)

	c := New(catalog.DefaultSchema())
	ref := model.ArtifactReference{Kind: model.KindInstalledConfig, Name: "site-config", Version: "v1.0.0"}

	_, err := c.Refresh(context.Background(), client, ref, t.TempDir(), nil, nil)

	var notFound *catalog.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRefreshSurvivesUnwritablePath(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	ctrl := gomock.NewController(t)
	client := mock_catalog.NewMockClient(ctrl)

	c := New(catalog.DefaultSchema())
	parent := t.TempDir()
	require.NoError(t, os.Chmod(parent, 0o500))
	t.Cleanup(func() { _ = os.Chmod(parent, 0o700) })
	dir := filepath.Join(parent, "store", "image-loader", "v1.2.3")

	version := catalog.Record{"code": "v1.2.3"}
	_, err := c.Refresh(context.Background(), client, appRef(), dir, nil, version)

	// the write failure is swallowed, the metadata is still returned
	require.NoError(t, err)

	loaded, err := c.Load(dir)
	require.NoError(t, err)
	assert.Nil(t, loaded.VersionData)
}
