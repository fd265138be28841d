package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/bundlestore/pkg/catalog"
)

func TestInstallCredentials(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, installCredentialsPath, r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotToken = r.PostFormValue("session_token")
		_ = json.NewEncoder(w).Encode(map[string]string{"login": "svc_account", "key": "secret"})
	}))
	defer srv.Close()

	sc := NewSiteClient(srv.URL, time.Second, StaticTokenSource{SessionToken: "tok123"})

	creds, err := sc.InstallCredentials(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "tok123", gotToken)
	assert.Equal(t, catalog.Credentials{Login: "svc_account", Key: "secret"}, creds)
}

func TestInstallCredentialsSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	sc := NewSiteClient(srv.URL, time.Second, StaticTokenSource{SessionToken: "tok123"})

	_, err := sc.InstallCredentials(context.Background())

	assert.ErrorIs(t, err, catalog.ErrSessionExpired)
}

func TestInstallCredentialsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sc := NewSiteClient(srv.URL, time.Second, StaticTokenSource{SessionToken: "tok123"})

	_, err := sc.InstallCredentials(context.Background())

	assert.ErrorIs(t, err, catalog.ErrConnection)
}

func TestInstallCredentialsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	sc := NewSiteClient(srv.URL, time.Second, StaticTokenSource{SessionToken: "tok123"})

	_, err := sc.InstallCredentials(context.Background())

	assert.ErrorIs(t, err, catalog.ErrConnection)
}

func TestInstallCredentialsEmptyAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"login": "", "key": ""})
	}))
	defer srv.Close()

	sc := NewSiteClient(srv.URL, time.Second, StaticTokenSource{SessionToken: "tok123"})

	_, err := sc.InstallCredentials(context.Background())

	assert.ErrorIs(t, err, catalog.ErrInvalidCredentials)
}

func TestStaticTokenSource(t *testing.T) {
	tok, err := StaticTokenSource{SessionToken: "tok123"}.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok123", tok)

	_, err = StaticTokenSource{}.Token(context.Background())
	assert.Error(t, err)

	assert.Error(t, StaticTokenSource{SessionToken: "tok123"}.Refresh(context.Background()))
}
