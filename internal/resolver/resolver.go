// Package resolver retrieves the latest available version string for each
// extension family. The two families publish through different mechanisms:
// pactflow-ai exposes a per-target endpoint whose body is the bare version
// string, while pact-standalone is resolved from structured GitHub release
// metadata.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/YOU54F/pact-cli/internal/config"
	"github.com/YOU54F/pact-cli/internal/errors"
)

const userAgent = "pact-cli"

// Resolver issues version lookups against the configured endpoints.
type Resolver struct {
	client           *http.Client
	aiBaseURL        string
	standaloneAPIURL string
}

// New creates a Resolver using the endpoint URLs and timeout from config.
func New(cfg *config.Configuration) *Resolver {
	return &Resolver{
		client:           &http.Client{Timeout: cfg.HTTPTimeout()},
		aiBaseURL:        strings.TrimRight(cfg.AIBaseURL, "/"),
		standaloneAPIURL: cfg.StandaloneAPIURL,
	}
}

// LatestAIVersion fetches the latest pactflow-ai version for the given
// release target. The endpoint returns the bare version string, which is
// trimmed and used verbatim.
func (r *Resolver) LatestAIVersion(ctx context.Context, target string) (string, error) {
	url := fmt.Sprintf("%s/%s/latest", r.aiBaseURL, target)

	body, err := r.get(ctx, url)
	if err != nil {
		return "", err
	}

	version := strings.TrimSpace(string(body))
	if version == "" {
		return "", errors.Newf(errors.VersionResolution, "empty version response from %s", url)
	}
	return version, nil
}

// releaseMetadata is the subset of the GitHub release document we extract.
type releaseMetadata struct {
	TagName string `json:"tag_name"`
}

// LatestStandaloneVersion fetches the latest pact-standalone release tag
// from the releases-metadata endpoint.
func (r *Resolver) LatestStandaloneVersion(ctx context.Context) (string, error) {
	body, err := r.get(ctx, r.standaloneAPIURL)
	if err != nil {
		return "", err
	}

	var release releaseMetadata
	if err := json.Unmarshal(body, &release); err != nil {
		return "", errors.WrapWithMessage(err, errors.VersionResolution, "parsing release metadata")
	}
	if release.TagName == "" {
		return "", errors.New(errors.VersionResolution, "no tag_name found in release metadata")
	}
	return release.TagName, nil
}

// get performs a bounded GET and returns the response body. Request
// failures surface as Network errors, non-2xx statuses as RemoteStatus
// errors carrying the status.
func (r *Resolver) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Network, "creating request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Network, fmt.Sprintf("requesting %s", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf(errors.RemoteStatus, "request to %s failed: HTTP %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Network, "reading response body")
	}
	return body, nil
}
