package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedule-crawler/internal/domain/entity"
)

func TestClient_GetSendsFixedHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "crawler-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "zh-CN", r.Header.Get("Accept-Language"))
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	c := NewClient(Options{
		UserAgent: "crawler-test",
		Timeout:   time.Second,
		Headers:   map[string]string{"Accept-Language": "zh-CN"},
	})

	body, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(body))
}

func TestClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(map[string]string{"echo": in["q"]})
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: time.Second})

	var out map[string]string
	require.NoError(t, c.PostJSON(context.Background(), srv.URL, map[string]string{"q": "hi"}, &out))
	assert.Equal(t, "hi", out["echo"])
}

func TestClient_ErrorKinds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/down":
			w.WriteHeader(http.StatusBadGateway)
		case "/garbage":
			w.Write([]byte("{not json"))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte("{}"))
		}
	}))
	defer srv.Close()

	c := NewClient(Options{Timeout: 50 * time.Millisecond})
	ctx := context.Background()

	_, err := c.Get(ctx, srv.URL+"/down")
	assert.ErrorIs(t, err, entity.ErrNetwork)

	var out map[string]interface{}
	assert.ErrorIs(t, c.PostJSON(ctx, srv.URL+"/garbage", struct{}{}, &out), entity.ErrParse)
	assert.ErrorIs(t, c.PostJSON(ctx, srv.URL+"/slow", struct{}{}, &out), entity.ErrNetwork)
}

func TestClient_CancelledRequestIsNotNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(Options{Timeout: time.Second}).Get(ctx, srv.URL)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, entity.ErrNetwork)
	assert.Equal(t, entity.FailureCancelled, entity.ClassifyFailure("x", err).Kind)
}
