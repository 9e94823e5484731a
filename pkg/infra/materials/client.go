package materials

import (
	"context"
	"io"
	"net/http"

	"github.com/DevMountain/dmget/pkg/domain/interfaces"
	"github.com/DevMountain/dmget/pkg/domain/model"
	"github.com/DevMountain/dmget/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type client struct {
	httpClient *http.Client
	userAgent  string
}

// Option is a functional option for the materials client
type Option func(*client)

// WithHTTPClient replaces the HTTP client used for downloads
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for the materials server. Requests are made once;
// there is no retry.
func NewClient(opts ...Option) interfaces.MaterialsClient {
	c := &client{
		httpClient: http.DefaultClient,
		userAgent:  "dmget/" + types.Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads the archive at archive.URL
func (c *client) Fetch(ctx context.Context, archive model.RemoteArchive) ([]byte, error) {
	logger := ctxlog.From(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archive.URL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request",
			goerr.T(model.ErrTagTransport),
			goerr.V("url", archive.URL),
		)
	}
	req.Header.Set("User-Agent", c.userAgent)

	logger.Debug("Requesting archive", "url", archive.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download "+archive.URL,
			goerr.T(model.ErrTagTransport),
			goerr.V("url", archive.URL),
		)
	}
	defer resp.Body.Close()

	logger.Debug("Received response", "url", archive.URL, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		return nil, goerr.New("no file exists at "+archive.URL+" -- are you sure you spelled \""+archive.Slug+"\" correctly?",
			goerr.T(model.ErrTagNotFound),
			goerr.V("url", archive.URL),
			goerr.V("slug", archive.Slug),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, goerr.New("failed to download "+archive.URL+" with status: "+resp.Status,
			goerr.T(model.ErrTagRemote),
			goerr.V("url", archive.URL),
			goerr.V("status_code", resp.StatusCode),
			goerr.V("status_text", http.StatusText(resp.StatusCode)),
		)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body",
			goerr.T(model.ErrTagTransport),
			goerr.V("url", archive.URL),
		)
	}

	return data, nil
}
