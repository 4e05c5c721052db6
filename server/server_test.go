package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dentalbot/scribe/config"
	"github.com/dentalbot/scribe/server"
	"github.com/dentalbot/scribe/server/shared"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type testHandler struct{}

func (testHandler) Attach(r chi.Router) {
	r.Post("/echo", func(w http.ResponseWriter, r *http.Request) {
		io.Copy(w, r.Body)
	})

	r.Options("/echo", shared.NoContent)

	r.Get("/schema", func(w http.ResponseWriter, r *http.Request) {
		shared.WriteJson(w, []string{"patient_name"})
	})

	r.Handle("/mcp", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			shared.WriteError(w, http.StatusBadRequest, "unsupported method")
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}))

	r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
}

func newServer(t *testing.T, origins ...string) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Origins: origins,
	}

	s := server.New("test", cfg, testHandler{})

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return ts
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(data)
}

func TestHealthz(t *testing.T) {
	ts := newServer(t, "*")

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"status": "ok"}`, readBody(t, resp))
}

func TestPreflight(t *testing.T) {
	ts := newServer(t, "http://localhost:3000")

	routes := map[string]string{
		"/echo":    http.MethodPost,
		"/schema":  http.MethodGet,
		"/healthz": http.MethodGet,
		"/mcp":     http.MethodPost,
	}

	for path, method := range routes {
		req, err := http.NewRequest(http.MethodOptions, ts.URL+path, nil)
		require.NoError(t, err)

		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", method)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		require.Equal(t, http.StatusNoContent, resp.StatusCode, path)
		require.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"), path)
		require.Empty(t, readBody(t, resp), path)
	}
}

func TestPlainOptions(t *testing.T) {
	ts := newServer(t, "*")

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/echo", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Empty(t, readBody(t, resp))
}

func TestCORSOrigin(t *testing.T) {
	ts := newServer(t, "http://localhost:3000")

	for origin, allowed := range map[string]string{
		"http://localhost:3000": "http://localhost:3000",
		"http://evil.example":   "",
	} {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
		require.NoError(t, err)

		req.Header.Set("Origin", origin)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, allowed, resp.Header.Get("Access-Control-Allow-Origin"), origin)
	}
}

func TestRecoverer(t *testing.T) {
	ts := newServer(t, "*")

	resp, err := http.Get(ts.URL + "/panic")
	require.NoError(t, err)

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.JSONEq(t, `{"error": "internal server error"}`, readBody(t, resp))
}

func TestListenAndServeShutdown(t *testing.T) {
	s := server.New("test", &config.Config{Origins: []string{"*"}})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- s.ListenAndServe(ctx, "127.0.0.1:0")
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)

	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
