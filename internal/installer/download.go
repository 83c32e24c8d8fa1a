package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/YOU54F/pact-cli/internal/errors"
)

const userAgent = "pact-cli"

// download fetches url into dest. The body is streamed to a temp file in
// the destination directory and renamed into place, so an aborted transfer
// never leaves a partial artifact at dest.
func (i *Installer) download(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.WrapWithMessage(err, errors.Filesystem, "preparing download destination")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Network, "creating request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := i.client.Do(req)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Network, fmt.Sprintf("downloading %s", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Newf(errors.RemoteStatus, "downloading %s failed: HTTP %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "download-*.tmp")
	if err != nil {
		return errors.WrapWithMessage(err, errors.Filesystem, "creating temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return errors.WrapWithMessage(err, errors.Network, "writing download body")
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapWithMessage(err, errors.Filesystem, "closing temp file")
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return errors.WrapWithMessage(err, errors.Filesystem, "finalizing download")
	}
	return nil
}
