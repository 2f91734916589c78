package server

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordonklaus/piano"
	"github.com/gordonklaus/piano/model"
)

func newTestServer(t *testing.T, cfg piano.Config) http.Handler {
	r, err := piano.NewRenderer(model.Default(), cfg)
	require.NoError(t, err)
	return New(r, slog.New(slog.NewTextHandler(io.Discard, nil))).Handler()
}

func post(h http.Handler, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body))
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Result()
}

func TestRender(t *testing.T) {
	h := newTestServer(t, piano.DefaultConfig())
	resp := post(h, `{"bpm":120,"notes":[{"pitch":69,"velocity":100,"start":0,"duration":48}]}`)
	body, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal("audio/wav", resp.Header.Get("Content-Type"))
	assert.Equal("*", resp.Header.Get("Access-Control-Allow-Origin"))
	_, err := uuid.Parse(resp.Header.Get("X-Render-Id"))
	assert.NoError(err)

	d := wav.NewDecoder(bytes.NewReader(body))
	buf, err := d.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(48000, buf.Format.SampleRate)
	// 0.05s note plus a 1s release tail
	assert.Equal(50400, len(buf.Data))
}

func TestRenderDefaultTempo(t *testing.T) {
	h := newTestServer(t, piano.DefaultConfig())
	resp := post(h, `{"notes":[{"pitch":60,"velocity":80,"duration":24}]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRenderErrors(t *testing.T) {
	h := newTestServer(t, piano.DefaultConfig())
	for _, c := range []struct {
		body string
		code int
	}{
		{`not json`, http.StatusBadRequest},
		{`{"notes":[{"pitch":300}]}`, http.StatusBadRequest},
		{`{"notes":[{"pitch":200,"velocity":1,"duration":1}]}`, http.StatusBadRequest},
		{`{"notes":[{"pitch":60,"velocity":1,"start":4294967295,"duration":1}]}`, http.StatusBadRequest},
		{`{"notes":[]}`, http.StatusOK},
		{`{"pad":"` + strings.Repeat("x", 2<<20) + `"}`, http.StatusRequestEntityTooLarge},
	} {
		resp := post(h, c.body)
		assert.Equal(t, c.code, resp.StatusCode, c.body[:min(len(c.body), 80)])
		assert.NotEmpty(t, resp.Header.Get("X-Render-Id"))
	}

	cfg := piano.DefaultConfig()
	cfg.MaxSamples = 1000
	resp := post(newTestServer(t, cfg), `{"notes":[{"pitch":60,"velocity":1,"duration":480}]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

type brokenWriter struct{ *httptest.ResponseRecorder }

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestRenderWriteError(t *testing.T) {
	r, err := piano.NewRenderer(model.Default(), piano.DefaultConfig())
	require.NoError(t, err)
	var logs bytes.Buffer
	h := New(r, slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))).Handler()

	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"notes":[{"pitch":60,"velocity":80,"duration":24}]}`))
	h.ServeHTTP(brokenWriter{httptest.NewRecorder()}, req)
	assert.Contains(t, logs.String(), "writing response")
	assert.Contains(t, logs.String(), "connection reset")
}

func TestRoutes(t *testing.T) {
	h := newTestServer(t, piano.DefaultConfig())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok\n", w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/render", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
