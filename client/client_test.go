package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/edcclient/asset"
	"github.com/c360studio/edcclient/client"
	"github.com/c360studio/edcclient/edctest"
	"github.com/c360studio/edcclient/query"
	"github.com/c360studio/edcclient/vocabulary/dataspace"
)

func fastRetry() client.RetryConfig {
	return client.RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       time.Millisecond,
		BackoffMultiplier: 1,
		MaxBackoff:        5 * time.Millisecond,
	}
}

func newClient(t *testing.T, srv *edctest.Server, opts ...client.Option) *client.Client {
	t.Helper()
	opts = append([]client.Option{client.WithRetryConfig(fastRetry())}, opts...)
	return client.New(srv.ManagementURL(), opts...)
}

func TestAssetLifecycle(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	na := asset.New("asset-1", asset.HTTPData("https://example.com/data")).
		WithProperty(dataspace.EDC+"name", "weather").
		WithPrivateProperty("owner", "ops")

	created, err := c.Assets().Create(ctx, na)
	require.NoError(t, err)
	assert.Equal(t, "asset-1", created.ID)
	assert.Positive(t, created.CreatedAt)

	got, err := c.Assets().Get(ctx, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, asset.TypeHTTPData, got.DataAddress.Type())
	name, ok, err := asset.Property[string](&got, dataspace.EDC+"name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "weather", name)

	got.WithProperty(dataspace.EDC+"name", "climate")
	require.NoError(t, c.Assets().Update(ctx, &got))

	found, err := c.Assets().Query(ctx, query.All().Where(dataspace.EDC+"name", "=", "climate"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "asset-1", found[0].ID)

	none, err := c.Assets().Query(ctx, query.All().Where(dataspace.EDC+"name", "=", "weather"))
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, c.Assets().Delete(ctx, "asset-1"))

	_, err = c.Assets().Get(ctx, "asset-1")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
	assert.True(t, client.IsFatal(err))
}

func TestCreateConflict(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	na := asset.New("dup", asset.HTTPData("https://example.com"))
	_, err := c.Assets().Create(ctx, na)
	require.NoError(t, err)

	_, err = c.Assets().Create(ctx, na)
	require.Error(t, err)

	apiErr, ok := client.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.Conflict())
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "ObjectConflict", apiErr.Details[0].Type)
	assert.Contains(t, err.Error(), "already exists")
}

func TestGeneratedIDs(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)

	created, err := c.Assets().Create(context.Background(), asset.New("", asset.HTTPData("https://example.com")))
	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)
}

func TestHeaders(t *testing.T) {
	srv := edctest.NewServer(t, edctest.WithAPIKey("secret-key"))

	t.Run("api key and request id", func(t *testing.T) {
		c := newClient(t, srv, client.WithAPIKey("secret-key"))
		_, err := c.DataPlanes().List(context.Background())
		require.NoError(t, err)

		reqs := srv.Requests()
		require.NotEmpty(t, reqs)
		last := reqs[len(reqs)-1]
		assert.Equal(t, "secret-key", last.APIKey)
		_, err = uuid.Parse(last.RequestID)
		assert.NoError(t, err)
	})

	t.Run("missing key is fatal", func(t *testing.T) {
		c := newClient(t, srv)
		before := len(srv.Requests())

		_, err := c.DataPlanes().List(context.Background())
		require.Error(t, err)
		assert.True(t, client.IsFatal(err))

		apiErr, ok := client.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Len(t, srv.Requests(), before+1, "fatal errors must not be retried")
		assert.NotContains(t, err.Error(), "non-retryable")
	})
}

func TestRetry(t *testing.T) {
	t.Run("reads are retried with one request id", func(t *testing.T) {
		srv := edctest.NewServer(t)
		c := newClient(t, srv)
		srv.Seed(edctest.Secrets, `{"@id": "s1", "value": "v"}`)
		srv.FailNext(http.StatusServiceUnavailable, http.StatusTooManyRequests)

		s, err := c.Secrets().Get(context.Background(), "s1")
		require.NoError(t, err)
		assert.Equal(t, "v", s.Value)

		reqs := srv.Requests()
		require.Len(t, reqs, 3)
		assert.Equal(t, reqs[0].RequestID, reqs[2].RequestID)
	})

	t.Run("query posts are retried", func(t *testing.T) {
		srv := edctest.NewServer(t)
		c := newClient(t, srv)
		srv.FailNext(http.StatusBadGateway)

		_, err := c.Policies().Query(context.Background(), query.All())
		require.NoError(t, err)
		assert.Len(t, srv.Requests(), 2)
	})

	t.Run("creates are not retried", func(t *testing.T) {
		srv := edctest.NewServer(t)
		c := newClient(t, srv)
		srv.FailNext(http.StatusServiceUnavailable)

		_, err := c.Assets().Create(context.Background(), asset.New("a", asset.HTTPData("https://example.com")))
		require.Error(t, err)
		assert.True(t, client.IsTransient(err))
		assert.Len(t, srv.Requests(), 1)
	})

	t.Run("attempts are bounded", func(t *testing.T) {
		srv := edctest.NewServer(t)
		c := newClient(t, srv)
		srv.FailNext(500, 500, 500, 500)

		_, err := c.DataPlanes().List(context.Background())
		require.Error(t, err)
		assert.True(t, client.IsTransient(err))
		assert.Len(t, srv.Requests(), 3)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		srv := edctest.NewServer(t)
		c := client.New(srv.ManagementURL(), client.WithRetryConfig(client.RetryConfig{
			MaxAttempts: 5,
			BackoffBase: time.Hour,
			MaxBackoff:  time.Hour,
		}))
		srv.FailNext(503)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := c.DataPlanes().List(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Len(t, srv.Requests(), 1)
	})
}

func TestUnparsedErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithRetryConfig(client.NoRetry()))
	_, err := c.Assets().Get(context.Background(), "x")
	require.Error(t, err)

	apiErr, ok := client.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "boom", apiErr.Raw)
	assert.Empty(t, apiErr.Details)
	assert.True(t, client.IsTransient(err))
}

func TestEndpointPaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/management/", client.WithRetryConfig(client.NoRetry()))
	ctx := context.Background()

	require.NoError(t, c.Assets().Delete(ctx, "a/b"))
	require.NoError(t, c.Transfers().Resume(ctx, "tp-1"))
	require.NoError(t, c.Negotiations().Terminate(ctx, "neg-1", "done"))

	assert.Equal(t, []string{
		"DELETE /management/v3/assets/a%2Fb",
		"POST /management/v3/transferprocesses/tp-1/resume",
		"POST /management/v3/contractnegotiations/neg-1/terminate",
	}, paths)
}

func TestMetrics(t *testing.T) {
	srv := edctest.NewServer(t)
	reg := prometheus.NewRegistry()
	c := newClient(t, srv, client.WithMetrics(reg))
	srv.FailNext(503)

	_, err := c.DataPlanes().List(context.Background())
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			key := mf.GetName()
			for _, l := range m.GetLabel() {
				if l.GetName() == "code" {
					key += "/" + l.GetValue()
				}
			}
			counts[key] += m.GetCounter().GetValue()
		}
	}

	assert.Equal(t, 1.0, counts["edcclient_requests_total/503"])
	assert.Equal(t, 1.0, counts["edcclient_requests_total/200"])
	assert.Equal(t, 1.0, counts["edcclient_retries_total"])
}

func TestDataPlanesAndSecrets(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	srv.AddDataPlane(`{"@id": "dp-1", "url": "http://dp/control", "allowedSourceTypes": ["HttpData"], "allowedTransferTypes": ["HttpData-PULL"], "state": "AVAILABLE"}`)
	planes, err := c.DataPlanes().List(ctx)
	require.NoError(t, err)
	require.Len(t, planes, 1)
	assert.True(t, planes[0].Supports("HttpData", "HttpData-PULL"))

	secrets := c.Secrets()
	created, err := secrets.Create(ctx, secretPayload("token", "abc"))
	require.NoError(t, err)
	assert.Equal(t, "token", created.ID)

	s, err := secrets.Get(ctx, "token")
	require.NoError(t, err)
	s.Value = "def"
	require.NoError(t, secrets.Update(ctx, &s))

	s, err = secrets.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "def", s.Value)

	require.NoError(t, secrets.Delete(ctx, "token"))
	err = secrets.Delete(ctx, "token")
	assert.True(t, client.IsNotFound(err))
}

func TestRequestBodiesCarryContext(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)

	_, err := c.Secrets().Create(context.Background(), secretPayload("", "v"))
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)

	var body map[string]any
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	assert.Equal(t, map[string]any{"@vocab": dataspace.EDC}, body["@context"])
	assert.Equal(t, "v", body["value"])
}
