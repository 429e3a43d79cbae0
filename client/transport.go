package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/query"
	"github.com/c360studio/semstreams/pkg/retry"
	"github.com/google/uuid"
)

// maxResponseSize limits the response body read from a connector.
const maxResponseSize = 16 * 1024 * 1024

func (c *Client) endpoint(resource string, path ...string) string {
	parts := make([]string, 0, len(path)+3)
	parts = append(parts, c.managementURL, "v3", resource)
	for _, p := range path {
		parts = append(parts, url.PathEscape(p))
	}
	return strings.Join(parts, "/")
}

// retryable reports whether repeating a request cannot change connector
// state twice. POSTs are only safe on the query endpoints.
func retryable(method string, path []string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	case http.MethodPost:
		return len(path) > 0 && path[len(path)-1] == "request"
	}
	return false
}

// do sends body (if any) as JSON and decodes a 2xx response into out (if
// any). All attempts share one request id.
func (c *Client) do(ctx context.Context, method, resource string, path []string, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &FatalError{err: fmt.Errorf("encode %s request: %w", resource, err)}
		}
		payload = data
	}

	target := c.endpoint(resource, path...)
	requestID := uuid.New().String()
	policy := c.retryConfig.policy(retryable(method, path))

	attempt := 0
	err := retry.Do(ctx, policy, func() error {
		attempt++
		if attempt > 1 {
			c.metrics.retried()
		}

		respBody, err := c.send(ctx, method, resource, target, requestID, payload)
		if err != nil {
			if IsFatal(err) {
				return retry.NonRetryable(err)
			}
			if attempt < policy.MaxAttempts {
				c.logger.Debug("Management request failed, retrying",
					"request_id", requestID,
					"method", method,
					"url", target,
					"attempt", attempt,
					"max_attempts", policy.MaxAttempts,
					"error", err)
			}
			return err
		}

		if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return retry.NonRetryable(&FatalError{err: fmt.Errorf("decode %s response: %w", resource, err)})
		}
		return nil
	})
	if err == nil {
		return nil
	}

	var final *retry.NonRetryableError
	if errors.As(err, &final) {
		err = final.Err
	}
	return fmt.Errorf("%s %s: %w", method, target, err)
}

// send executes a single HTTP exchange.
func (c *Client) send(ctx context.Context, method, resource, target, requestID string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &FatalError{err: fmt.Errorf("create HTTP request: %w", err)}
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if c.apiKey != "" {
		httpReq.Header.Set(APIKeyHeader, c.apiKey)
	}

	c.logger.Debug("Sending management request",
		"request_id", requestID,
		"method", method,
		"url", target)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(resource, method, 0, time.Since(start))
		return nil, &TransientError{err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	c.metrics.observe(resource, method, httpResp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &TransientError{err: fmt.Errorf("read response body: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		apiErr := parseAPIError(httpResp.StatusCode, respBody)
		c.logger.Debug("Management request rejected",
			"request_id", requestID,
			"status", httpResp.StatusCode,
			"error", apiErr)
		return nil, classify(apiErr)
	}
	return respBody, nil
}

func fetch[T any](ctx context.Context, c *Client, resource string, path ...string) (T, error) {
	var env jsonld.Envelope[T]
	if err := c.do(ctx, http.MethodGet, resource, path, nil, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Inner, nil
}

func fetchAll[T any](ctx context.Context, c *Client, resource string, path ...string) ([]T, error) {
	var envs []jsonld.Envelope[T]
	if err := c.do(ctx, http.MethodGet, resource, path, nil, &envs); err != nil {
		return nil, err
	}
	return unwrap(envs), nil
}

func list[T any](ctx context.Context, c *Client, resource string, q query.Query) ([]T, error) {
	var envs []jsonld.Envelope[T]
	err := c.do(ctx, http.MethodPost, resource, []string{"request"}, jsonld.WithDefaultContext(q), &envs)
	if err != nil {
		return nil, err
	}
	return unwrap(envs), nil
}

func create(ctx context.Context, c *Client, resource string, body any) (edc.IDResponse, error) {
	var env jsonld.Envelope[edc.IDResponse]
	if err := c.do(ctx, http.MethodPost, resource, nil, body, &env); err != nil {
		return edc.IDResponse{}, err
	}
	return env.Inner, nil
}

func unwrap[T any](envs []jsonld.Envelope[T]) []T {
	out := make([]T, len(envs))
	for i, env := range envs {
		out[i] = env.Inner
	}
	return out
}
