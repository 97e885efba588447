package chatwork

import (
	"log/slog"
	"net/http"

	"github.com/lizzyg/chatwork/internal/config"
	"github.com/lizzyg/chatwork/internal/dispatch"
	"github.com/lizzyg/chatwork/internal/form"
)

// Client exposes the Chatwork API endpoints. It is safe for concurrent use.
type Client struct {
	token      string
	cfg        config.Config
	logger     *slog.Logger
	httpClient *http.Client
	dispatcher *dispatch.Dispatcher
}

// Option allows functional configuration.
type Option func(*Client)

// WithLogger sets a custom slog logger.
func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.logger = l } }

// WithHTTPClient sets a custom http.Client. Its timeout replaces the configured one.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

// New returns a client for the public API authenticated with token.
func New(token string, opts ...Option) *Client {
	cfg := config.Default()
	cfg.Token = token
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig builds a client from explicit settings.
func NewFromConfig(cfg Config, opts ...Option) *Client {
	cfg = cfg.WithDefaults()
	c := &Client{
		token:  cfg.Token,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	c.dispatcher = dispatch.New(cfg, c.httpClient, c.logger)
	return c
}

// NewFromFile loads config via internal/config.Load and returns a Client.
func NewFromFile(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(*cfg, opts...), nil
}

// Config returns the effective settings.
func (c *Client) Config() Config {
	cfg := c.cfg
	cfg.Token = ""
	return cfg
}

func newCall[T any](c *Client, method, path string, params form.Encoder) *Call[T] {
	return dispatch.NewCall[T](c.dispatcher, c.token, method, path, params)
}
