/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Seednode/rankmatch/games/ranking"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// joinURL is the link a QR code points at: the home page with the room preset.
func joinURL(cfg *Config, r *http.Request, code string) string {
	scheme := cfg.scheme()
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     cfg.prefix + "/",
		RawQuery: url.Values{"room": {code}}.Encode(),
	}

	return u.String()
}

// qrHandler renders a PNG QR code that joins the room in :code.
func qrHandler(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		code := ranking.NormalizeCode(ps.ByName("code"))
		if code == "" {
			http.Error(w, "missing room code", http.StatusBadRequest)
			return
		}

		png, err := qrcode.Encode(joinURL(cfg, r, code), qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		securityHeaders(cfg, w)

		written, err := w.Write(png)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: QR code for %s (%s) to %s in %s",
			code,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// registerRankingGame starts the engine and wires up:
//   - $prefix/ws             → websocket gateway
//   - $prefix/room/:code/qr  → PNG QR code joining that room
func registerRankingGame(ctx context.Context, cfg *Config, errs chan<- error, mux *httprouter.Router) *Gateway {
	gw := newGateway(cfg.rateLimit, cfg.log.With().Str("component", "gateway").Logger())
	engine := ranking.New(gw, cfg.options())

	go func() {
		if err := engine.Run(ctx); err != nil {
			cfg.log.Error().Err(err).Msg("GAMES: engine stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		gw.closeAll()
	}()

	mux.HandlerFunc("GET", cfg.prefix+"/ws", gw.serveWS(ctx, engine))

	mux.GET(cfg.prefix+"/room/:code/qr", qrHandler(cfg, errs))

	logf(cfg, "GAMES: Registered ranking game at %s/ws", cfg.prefix)

	return gw
}
