package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/edouard/tgbind/telegram/objects"
)

// ErrNoFilePath is returned when getFile answers without a file_path, which
// happens for files over the download size limit.
var ErrNoFilePath = errors.New("telegram: file has no download path")

// downloadDo is a package-level variable for testability.
var downloadDo = func(req *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(req)
}

// Download resolves fileID with getFile and copies the file contents to w.
// It returns the file description and the number of bytes written.
func (c *Client) Download(ctx context.Context, fileID string, w io.Writer) (*objects.File, int64, error) {
	f, err := c.GetFile(ctx, Params{"file_id": fileID}, CallAsync(false))
	if err != nil {
		return nil, 0, err
	}
	if f.FilePath() == "" {
		return f, 0, fmt.Errorf("%w: %s", ErrNoFilePath, fileID)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// Files are served under /file/bot<token>/ on the API host.
	url := c.baseURL + "/file/bot" + c.token + "/" + f.FilePath()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return f, 0, fmt.Errorf("telegram: download: create request: %w", err)
	}

	slog.Debug("downloading file", "component", "telegram", "operation", "download", "file_id", fileID, "file_path", f.FilePath())

	resp, err := downloadDo(req)
	if err != nil {
		return f, 0, &TransportError{Method: "download", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return f, 0, fmt.Errorf("telegram: download %s: status %d", f.FilePath(), resp.StatusCode)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return f, n, fmt.Errorf("telegram: download %s: %w", f.FilePath(), err)
	}
	return f, n, nil
}
