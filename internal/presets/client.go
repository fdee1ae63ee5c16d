// Package presets reads guitar model presets and the selectable options
// per field from the spreadsheet-backed preset API, and tracks edits made
// against a selected model.
package presets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidResponse means the API answered without ok=true and a data
// object.
var ErrInvalidResponse = errors.New("invalid response format")

const (
	kindModels  = "models"
	kindOptions = "options"
)

// maxBody bounds a single API response.
const maxBody = 5 << 20

// Client talks to the preset API.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }
func WithLogger(l *zap.Logger) Option      { return func(c *Client) { c.log = l } }
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient returns a client for baseURL. Requests carry no timeout of
// their own; bound them with the context.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type envelope struct {
	OK   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
}

// get fetches one kind and returns the raw data object.
func (c *Client) get(ctx context.Context, kind string) (json.RawMessage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("kind", kind)
	q.Set("_cb", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("fetching presets", zap.String("kind", kind), zap.String("url", u.String()))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", kind, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	data := strings.TrimSpace(string(env.Data))
	if !env.OK || data == "" || data == "null" {
		return nil, fmt.Errorf("%s: %w", kind, ErrInvalidResponse)
	}
	return env.Data, nil
}

// FetchModels returns every named model preset. Rows named "NA" or left
// blank are dropped.
func (c *Client) FetchModels(ctx context.Context) (map[string]Model, error) {
	raw, err := c.get(ctx, kindModels)
	if err != nil {
		return nil, err
	}
	var all map[string]Model
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", kindModels, ErrInvalidResponse, err)
	}
	out := make(map[string]Model, len(all))
	for name, m := range all {
		if strings.TrimSpace(name) == "" || name == "NA" {
			continue
		}
		out[name] = m
	}
	c.log.Info("models loaded", zap.Int("count", len(out)))
	return out, nil
}

// FetchOptions returns the option lists per sheet column, in the
// order the sheet lists them.
func (c *Client) FetchOptions(ctx context.Context) ([]FieldOptions, error) {
	raw, err := c.get(ctx, kindOptions)
	if err != nil {
		return nil, err
	}
	opts, err := decodeOptions(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", kindOptions, ErrInvalidResponse, err)
	}
	c.log.Info("options loaded", zap.Int("fields", len(opts)))
	return opts, nil
}

// LoadAll fetches models and options concurrently. If either request
// fails the whole load fails; there is no partial result.
func (c *Client) LoadAll(ctx context.Context) (*Catalog, error) {
	var (
		models  map[string]Model
		options []FieldOptions
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		models, err = c.FetchModels(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		options, err = c.FetchOptions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		c.log.Error("failed to load presets", zap.Error(err))
		return nil, fmt.Errorf("load presets: %w", err)
	}
	return &Catalog{Models: models, Options: options}, nil
}
