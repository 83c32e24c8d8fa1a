package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YOU54F/pact-cli/internal/config"
	"github.com/YOU54F/pact-cli/internal/errors"
)

func newTestResolver(aiBase, apiURL string) *Resolver {
	return New(&config.Configuration{
		AIBaseURL:          aiBase,
		StandaloneAPIURL:   apiURL,
		HTTPTimeoutSeconds: 5,
	})
}

func TestLatestAIVersion_TrimsBareString(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/x86_64-unknown-linux-gnu/latest", r.URL.Path)
		assert.Equal(t, "pact-cli", r.Header.Get("User-Agent"))
		w.Write([]byte("1.11.4\n"))
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL, "")
	version, err := r.LatestAIVersion(context.Background(), "x86_64-unknown-linux-gnu")
	require.NoError(t, err)
	assert.Equal(t, "1.11.4", version)
}

func TestLatestAIVersion_EmptyBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  \n"))
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL, "")
	_, err := r.LatestAIVersion(context.Background(), "x86_64-unknown-linux-gnu")
	assert.True(t, errors.IsCategory(err, errors.VersionResolution))
}

func TestLatestAIVersion_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL, "")
	_, err := r.LatestAIVersion(context.Background(), "x86_64-unknown-linux-gnu")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.RemoteStatus))
	assert.Contains(t, err.Error(), "404")
}

func TestLatestStandaloneVersion_ExtractsTag(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v2.5.2", "name": "release"}`))
	}))
	defer srv.Close()

	r := newTestResolver("", srv.URL)
	version, err := r.LatestStandaloneVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v2.5.2", version)
}

func TestLatestStandaloneVersion_MissingTag(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "release"}`))
	}))
	defer srv.Close()

	r := newTestResolver("", srv.URL)
	_, err := r.LatestStandaloneVersion(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.VersionResolution))
}

func TestLatestStandaloneVersion_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	r := newTestResolver("", srv.URL)
	_, err := r.LatestStandaloneVersion(context.Background())
	assert.True(t, errors.IsCategory(err, errors.VersionResolution))
}

func TestGet_NetworkError(t *testing.T) {
	t.Parallel()

	// Closed server to force a connection failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	r := newTestResolver(url, url)
	_, err := r.LatestStandaloneVersion(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.Network))
}
