/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		bind:         "127.0.0.1",
		port:         8080,
		minPlayers:   2,
		lockStarted:  true,
		codeLength:   4,
		topicChoices: 3,
		rounds:       3,
		timer:        30,
		rateLimit:    50,
		log:          zerolog.Nop(),
	}
}

func testRouter(t *testing.T, cfg *Config) *httprouter.Router {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	errs := make(chan error, 64)

	return newRouter(ctx, cfg, errs)
}

func get(t *testing.T, h http.Handler, target string) *http.Response {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec.Result()
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(data)
}

func TestWeb_HealthCheck(t *testing.T) {
	mux := testRouter(t, testConfig())

	resp := get(t, mux, "/healthz")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ok\n", body(t, resp))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Empty(t, resp.Header.Get("Strict-Transport-Security"))
}

func TestWeb_Version(t *testing.T) {
	mux := testRouter(t, testConfig())

	resp := get(t, mux, "/version")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rankmatch v"+releaseVersion+"\n", body(t, resp))
}

func TestWeb_Robots(t *testing.T) {
	mux := testRouter(t, testConfig())

	resp := get(t, mux, "/robots.txt")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "User-agent: GPTBot")
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))
}

func TestWeb_HomePage(t *testing.T) {
	mux := testRouter(t, testConfig())

	resp := get(t, mux, "/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body(t, resp), "/ws")
}

func TestWeb_Prefix(t *testing.T) {
	cfg := testConfig()
	cfg.prefix = "/play/"
	mux := testRouter(t, cfg)

	assert.Equal(t, "/play", cfg.prefix)
	assert.Equal(t, http.StatusOK, get(t, mux, "/play/healthz").StatusCode)
	assert.Equal(t, http.StatusNotFound, get(t, mux, "/healthz").StatusCode)
}

func TestWeb_ProfileOnlyWhenEnabled(t *testing.T) {
	off := testRouter(t, testConfig())
	assert.Equal(t, http.StatusNotFound, get(t, off, "/pprof/cmdline").StatusCode)

	cfg := testConfig()
	cfg.profile = true
	on := testRouter(t, cfg)
	assert.Equal(t, http.StatusOK, get(t, on, "/pprof/cmdline").StatusCode)
}

func TestWeb_StrictTransportOverTLS(t *testing.T) {
	cfg := testConfig()
	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	mux := testRouter(t, cfg)

	resp := get(t, mux, "/healthz")

	assert.Contains(t, resp.Header.Get("Strict-Transport-Security"), "max-age=")
}

func TestWeb_QRCode(t *testing.T) {
	mux := testRouter(t, testConfig())

	resp := get(t, mux, "/room/abcd/qr")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix([]byte(body(t, resp)), []byte("\x89PNG")))
}

func TestJoinURL(t *testing.T) {
	cfg := testConfig()

	r := httptest.NewRequest(http.MethodGet, "http://example.com/room/ABCD/qr", nil)
	assert.Equal(t, "http://example.com/?room=ABCD", joinURL(cfg, r, "ABCD"))

	r.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://example.com/?room=ABCD", joinURL(cfg, r, "ABCD"))

	cfg.prefix = "/play"
	r = httptest.NewRequest(http.MethodGet, "http://example.com/play/room/ABCD/qr", nil)
	assert.Equal(t, "http://example.com/play/?room=ABCD", joinURL(cfg, r, "ABCD"))
}

func TestRealIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:4321"
	assert.Equal(t, "10.0.0.1:4321", realIP(r))

	r.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9:4321", realIP(r))

	r.Header.Set("CF-Connecting-IP", "2001:db8::1")
	assert.Equal(t, "[2001:db8::1]:4321", realIP(r))
}

func TestHumanReadableSize(t *testing.T) {
	assert.Equal(t, "999 B", humanReadableSize(999))
	assert.Equal(t, "1.5 kB", humanReadableSize(1500))
	assert.Equal(t, "2.0 MB", humanReadableSize(2_000_000))
}
