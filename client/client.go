// Package client is an HTTP client for the management API of a dataspace
// connector. Each resource family is reached through an accessor on Client,
// for example c.Assets().Get(ctx, id).
package client

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIKeyHeader carries the management API key.
const APIKeyHeader = "X-Api-Key"

// RequestIDHeader correlates a request with connector logs.
const RequestIDHeader = "X-Request-Id"

// Client talks to one connector's management API.
type Client struct {
	managementURL string
	apiKey        string
	httpClient    *http.Client
	retryConfig   RetryConfig
	logger        *slog.Logger
	metrics       *metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithAPIKey sends key in the X-Api-Key header of every request.
func WithAPIKey(key string) Option {
	return func(client *Client) {
		client.apiKey = key
	}
}

// WithRetryConfig sets the retry configuration.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(client *Client) {
		client.retryConfig = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithMetrics registers request counters and latency histograms with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(client *Client) {
		client.metrics = newMetrics(reg)
	}
}

// New creates a client for the management API rooted at managementURL,
// for example "http://localhost:29193/management".
func New(managementURL string, opts ...Option) *Client {
	c := &Client{
		managementURL: strings.TrimRight(managementURL, "/"),
		retryConfig:   DefaultRetryConfig(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ManagementURL returns the base URL requests are sent to.
func (c *Client) ManagementURL() string {
	return c.managementURL
}

// Assets returns the asset API.
func (c *Client) Assets() *AssetAPI { return &AssetAPI{c: c} }

// Policies returns the policy definition API.
func (c *Client) Policies() *PolicyAPI { return &PolicyAPI{c: c} }

// ContractDefinitions returns the contract definition API.
func (c *Client) ContractDefinitions() *ContractDefinitionAPI {
	return &ContractDefinitionAPI{c: c}
}

// Catalog returns the catalog API.
func (c *Client) Catalog() *CatalogAPI { return &CatalogAPI{c: c} }

// Negotiations returns the contract negotiation API.
func (c *Client) Negotiations() *NegotiationAPI { return &NegotiationAPI{c: c} }

// Agreements returns the contract agreement API.
func (c *Client) Agreements() *AgreementAPI { return &AgreementAPI{c: c} }

// Transfers returns the transfer process API.
func (c *Client) Transfers() *TransferAPI { return &TransferAPI{c: c} }

// DataPlanes returns the data plane API.
func (c *Client) DataPlanes() *DataPlaneAPI { return &DataPlaneAPI{c: c} }

// Secrets returns the secret API.
func (c *Client) Secrets() *SecretAPI { return &SecretAPI{c: c} }
