package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"javaboot/downloader/core"
	"javaboot/logging"
)

const (
	// DefaultEndpoint is the download host the pinned runtime ids belong to.
	DefaultEndpoint = "https://docs.google.com/uc?export=download"

	// ChunkSize is the streaming granularity, and the granularity of progress events.
	ChunkSize = 32 * 1024

	// confirmCookiePrefix marks the cookie carrying the large-file confirmation token.
	confirmCookiePrefix = "download_warning"

	DefaultTimeout       = 30 * time.Second
	DefaultRetries       = 1
	DefaultRetryCooldown = 2 * time.Second
)

// Client handles network operations
type Client struct {
	httpClient    *http.Client
	endpoint      string
	retries       int
	retryCooldown time.Duration
	validator     *core.Validator
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client is copied, so
// attaching a cookie jar or a transport never alters hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			cp := *hc
			c.httpClient = &cp
		}
	}
}

// WithEndpoint points the client at another download URL. Used by tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTimeout bounds connection setup and the wait for response headers.
// The body itself is streamed without a deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Transport = newTransport(timeout)
		}
	}
}

// WithRetries sets how many times a failed transfer is retried and the pause before each retry.
func WithRetries(retries int, cooldown time.Duration) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.retries = retries
		}
		if cooldown >= 0 {
			c.retryCooldown = cooldown
		}
	}
}

// WithValidator replaces the disk space validator.
func WithValidator(v *core.Validator) Option {
	return func(c *Client) {
		if v != nil {
			c.validator = v
		}
	}
}

// NewClient creates a new Client instance
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:    &http.Client{Transport: newTransport(DefaultTimeout)},
		endpoint:      DefaultEndpoint,
		retries:       DefaultRetries,
		retryCooldown: DefaultRetryCooldown,
		validator:     core.NewValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		jar, _ := cookiejar.New(nil)
		c.httpClient.Jar = jar
	}
	return c
}

func newTransport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext
	t.TLSHandshakeTimeout = timeout
	t.ResponseHeaderTimeout = timeout
	return t
}

// statusError is a non-2xx answer from the download host; it is never retried.
type statusError struct {
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server returned non-OK status: %s", e.status)
}

// transferError wraps failures worth a retry: the connection, not the disk or the server's answer.
type transferError struct {
	err error
}

func (e *transferError) Error() string { return e.err.Error() }
func (e *transferError) Unwrap() error { return e.err }

// Retrieve downloads remoteID into destination. The body is streamed into a fresh
// temporary directory and moved into place once complete, so every call starts over.
// sink may be nil. Any failure is returned as *core.DownloadError.
func (c *Client) Retrieve(ctx context.Context, remoteID, destination string, expectedSize int64, sink core.ProgressSink) error {
	logging.LogInfo("📥 Downloading %s to: %s", remoteID, filepath.Dir(destination))

	var err error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			logging.LogWarn("⚠️ Download attempt %d failed: %v, retrying in %s", attempt, err, c.retryCooldown)
			select {
			case <-ctx.Done():
				return &core.DownloadError{RemoteID: remoteID, Err: ctx.Err()}
			case <-time.After(c.retryCooldown):
			}
		}

		err = c.retrieveOnce(ctx, remoteID, destination, expectedSize, sink)
		if err == nil {
			return nil
		}

		var transfer *transferError
		if !errors.As(err, &transfer) || ctx.Err() != nil {
			break
		}
	}
	return &core.DownloadError{RemoteID: remoteID, Err: err}
}

func (c *Client) retrieveOnce(ctx context.Context, remoteID, destination string, expectedSize int64, sink core.ProgressSink) error {
	resp, err := c.get(ctx, remoteID, "")
	if err != nil {
		return err
	}

	if token := confirmToken(resp); token != "" {
		logging.LogDebug("🔑 Download host asked for confirmation, retrying with token")
		resp.Body.Close()
		if resp, err = c.get(ctx, remoteID, token); err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{status: resp.Status}
	}

	if err := c.validator.ValidateSpace(expectedSize, os.TempDir()); err != nil {
		return fmt.Errorf("temporary directory space check failed: %w", err)
	}
	if err := c.validator.ValidateSpace(expectedSize, filepath.Dir(destination)); err != nil {
		return fmt.Errorf("destination space check failed: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "javaboot-download-")
	if err != nil {
		return fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile := filepath.Join(tempDir, filepath.Base(destination))
	written, err := stream(resp.Body, tempFile, expectedSize, sink)
	if err != nil {
		return err
	}
	logging.LogDebug("✅ Download completed. Wrote %d bytes", written)

	if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	if err := moveFile(tempFile, destination); err != nil {
		return fmt.Errorf("failed to move download into place: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, remoteID, confirm string) (*http.Response, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid download endpoint: %w", err)
	}
	q := u.Query()
	q.Set("id", remoteID)
	if confirm != "" {
		q.Set("confirm", confirm)
	}
	u.RawQuery = q.Encode()

	logging.LogDebug("📡 Initiating network request to %s", u.Redacted())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &transferError{err: fmt.Errorf("network request failed: %w", err)}
	}
	return resp, nil
}

// confirmToken returns the value of the first download_warning* cookie set by resp.
func confirmToken(resp *http.Response) string {
	for _, cookie := range resp.Cookies() {
		if strings.HasPrefix(cookie.Name, confirmCookiePrefix) {
			return cookie.Value
		}
	}
	return ""
}

func stream(body io.Reader, path string, expectedSize int64, sink core.ProgressSink) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if sink != nil {
		sink(core.Started{Total: expectedSize})
	}

	var written int64
	buf := make([]byte, ChunkSize)
	for {
		n, readErr := readChunk(body, buf)
		if n > 0 {
			if _, err := out.Write(buf[:n]); err != nil {
				return written, fmt.Errorf("failed to write file: %w", err)
			}
			written += int64(n)
			if sink != nil {
				sink(core.Chunk{Size: n})
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return written, &transferError{err: fmt.Errorf("failed to read response body: %w", readErr)}
		}
	}

	if err := out.Close(); err != nil {
		return written, fmt.Errorf("failed to close output file: %w", err)
	}
	return written, nil
}

// readChunk fills buf unless the reader ends or fails first.
func readChunk(r io.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// moveFile renames src to dst, copying when they sit on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
