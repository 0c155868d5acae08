package gtfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/klauspost/compress/zip"
	"github.com/sudface/frequency/internal/logging"
)

// tableSource hands out the raw content of feed files by name. open returns
// an error wrapping fs.ErrNotExist for files the feed does not contain.
type tableSource interface {
	open(name string) (io.ReadCloser, error)
	io.Closer
}

type dirSource struct {
	dir string
}

func (d dirSource) open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.dir, name))
}

func (d dirSource) Close() error { return nil }

// zipSource serves files from a feed archive. Feeds zipped with a top level
// folder are accepted: files are matched on their base name.
type zipSource struct {
	files  map[string]*zip.File
	closer io.Closer
}

func newZipSource(r *zip.Reader, closer io.Closer) *zipSource {
	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := strings.ToLower(path.Base(f.Name))
		if _, seen := files[name]; !seen {
			files[name] = f
		}
	}
	return &zipSource{files: files, closer: closer}
}

func (z *zipSource) open(name string) (io.ReadCloser, error) {
	f, ok := z.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	return f.Open()
}

func (z *zipSource) Close() error {
	if z.closer == nil {
		return nil
	}
	return z.closer.Close()
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// openSource resolves a feed location: an http(s) URL to a zip, a local zip
// file or a directory of .txt files.
func openSource(ctx context.Context, source string, client *http.Client) (tableSource, error) {
	if source == "" {
		return nil, errors.New("no feed source configured")
	}

	if isRemote(source) {
		b, err := downloadFeed(ctx, source, client)
		if err != nil {
			return nil, err
		}
		r, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
		if err != nil {
			return nil, fmt.Errorf("error opening downloaded GTFS archive: %w", err)
		}
		return newZipSource(r, nil), nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("error reading local GTFS source: %w", err)
	}
	if info.IsDir() {
		return dirSource{dir: source}, nil
	}

	rc, err := zip.OpenReader(source)
	if err != nil {
		return nil, fmt.Errorf("error opening GTFS archive %s: %w", source, err)
	}
	return newZipSource(&rc.Reader, rc), nil
}

// rawGtfsData returns the bytes of a zipped feed, local or remote.
func rawGtfsData(ctx context.Context, source string, client *http.Client) ([]byte, error) {
	if isRemote(source) {
		return downloadFeed(ctx, source, client)
	}
	b, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("error reading local GTFS file: %w", err)
	}
	return b, nil
}

// downloadFeed fetches a feed archive, retrying transient failures with an
// exponential backoff. Client errors (4xx) are not retried.
func downloadFeed(ctx context.Context, url string, client *http.Client) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	logger := logging.FromContext(ctx)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxElapsedTime = 2 * time.Minute

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("error downloading GTFS data: %w", err)
		}
		defer logging.SafeCloseWithLogging(resp.Body, logger, "gtfs_download_body")

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("error downloading GTFS data: %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("error downloading GTFS data: %s", resp.Status)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("error reading GTFS data: %w", err)
		}
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logging.LogError(logger, "gtfs download failed, retrying", err,
			slog.String("url", url),
			slog.Duration("retry_in", wait),
			slog.String("component", "gtfs_loader"))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, err
	}
	return body, nil
}
