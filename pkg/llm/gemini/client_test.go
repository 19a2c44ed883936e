package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkarpov/gemini-chat/pkg/llm"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func candidatesBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + string(mustJSON(text)) + `}]}}]}`
}

func mustJSON(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

func TestGenerate_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotBody []byte
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidatesBody("hi there")))
	})

	c := New("secret", srv.URL, "gemini-1.5-flash")
	reply, err := c.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)

	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.JSONEq(t, `{"contents":[{"parts":[{"text":"hello"}]}]}`, string(gotBody))
}

func TestGenerate_Defaults(t *testing.T) {
	c := New("k", "", "")
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", c.BaseURL)
	assert.Equal(t, "gemini-1.5-flash", c.Model)
}

func upstreamError(t *testing.T, err error) *llm.Error {
	t.Helper()
	var uerr *llm.Error
	require.True(t, errors.As(err, &uerr), "expected *llm.Error, got %T: %v", err, err)
	return uerr
}

func TestGenerate_InvalidKey(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
	})

	c := New("bad", srv.URL, "gemini-1.5-flash")
	_, err := c.Generate(context.Background(), "hello")
	uerr := upstreamError(t, err)
	assert.Equal(t, llm.KindAuth, uerr.Kind)
	assert.Contains(t, uerr.Message, "API key not valid")
}

func TestGenerate_QuotaExceeded(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded for quota metric","status":"RESOURCE_EXHAUSTED"}}`))
	})

	c := New("k", srv.URL, "gemini-1.5-flash")
	_, err := c.Generate(context.Background(), "hello")
	assert.Equal(t, llm.KindQuota, upstreamError(t, err).Kind)
}

func TestGenerate_ModelNotFound(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"models/nope is not found for API version v1beta","status":"NOT_FOUND"}}`))
	})

	c := New("k", srv.URL, "nope")
	_, err := c.Generate(context.Background(), "hello")
	assert.Equal(t, llm.KindModelNotFound, upstreamError(t, err).Kind)
}

func TestGenerate_ServerError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"Internal error encountered.","status":"INTERNAL"}}`))
	})

	c := New("k", srv.URL, "gemini-1.5-flash")
	_, err := c.Generate(context.Background(), "hello")
	uerr := upstreamError(t, err)
	assert.Equal(t, llm.KindOther, uerr.Kind)
	assert.Equal(t, "Internal error encountered.", uerr.Message)
}

func TestGenerate_NonJSONErrorBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	})

	c := New("k", srv.URL, "gemini-1.5-flash")
	_, err := c.Generate(context.Background(), "hello")
	uerr := upstreamError(t, err)
	assert.Equal(t, llm.KindOther, uerr.Kind)
	assert.Equal(t, "gemini http 502", uerr.Message)
}

func TestGenerate_NoCandidates(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	c := New("k", srv.URL, "gemini-1.5-flash")
	_, err := c.Generate(context.Background(), "hello")
	uerr := upstreamError(t, err)
	assert.Equal(t, llm.KindOther, uerr.Kind)
	assert.Equal(t, "no response from gemini", uerr.Message)
}
