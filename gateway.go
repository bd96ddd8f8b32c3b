/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/Seednode/rankmatch/games/ranking"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendQueueSize  = 32
)

var errRateLimited = errors.New("rate limit exceeded")

const rateLimitedText = "Slow down!"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// frame is one websocket message in either direction.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// sessionEngine is the part of the engine the gateway feeds.
type sessionEngine interface {
	Submit(ctx context.Context, connID string, msg ranking.Inbound)
	Disconnect(ctx context.Context, connID string)
}

type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan outbound
	limiter *rate.Limiter
}

// Gateway tracks live websocket connections and which room each one is
// tagged with. It implements ranking.Transport.
type Gateway struct {
	mu      sync.Mutex
	clients map[string]*Client
	// room code -> connection ids
	rooms map[string]map[string]struct{}
	// connection id -> room code
	tags map[string]string

	rateLimit float64
	log       zerolog.Logger
}

func newGateway(rateLimit float64, log zerolog.Logger) *Gateway {
	return &Gateway{
		clients:   make(map[string]*Client),
		rooms:     make(map[string]map[string]struct{}),
		tags:      make(map[string]string),
		rateLimit: rateLimit,
		log:       log,
	}
}

func (g *Gateway) Send(connID, event string, payload any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[connID]; ok {
		g.deliverLocked(c, outbound{Event: event, Data: payload})
	}
}

func (g *Gateway) Broadcast(code, event string, payload any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	msg := outbound{Event: event, Data: payload}
	for id := range g.rooms[code] {
		if c, ok := g.clients[id]; ok {
			g.deliverLocked(c, msg)
		}
	}
}

func (g *Gateway) Tag(connID, code string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.untagLocked(connID)

	members, ok := g.rooms[code]
	if !ok {
		members = make(map[string]struct{})
		g.rooms[code] = members
	}
	members[connID] = struct{}{}
	g.tags[connID] = code
}

func (g *Gateway) Untag(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.untagLocked(connID)
}

func (g *Gateway) untagLocked(connID string) {
	code, ok := g.tags[connID]
	if !ok {
		return
	}

	delete(g.tags, connID)

	members := g.rooms[code]
	delete(members, connID)
	if len(members) == 0 {
		delete(g.rooms, code)
	}
}

// deliverLocked queues msg without blocking. A client whose queue is full is
// dropped; its read pump then reports the disconnect.
func (g *Gateway) deliverLocked(c *Client, msg outbound) {
	select {
	case c.send <- msg:
	default:
		g.log.Warn().Str("conn", c.id).Str("event", msg.Event).Msg("GATEWAY: send queue full, dropping client")
		g.removeLocked(c)
		_ = c.conn.Close()
	}
}

func (g *Gateway) register(c *Client) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.clients[c.id] = c
}

func (g *Gateway) unregister(c *Client) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.removeLocked(c)
}

func (g *Gateway) removeLocked(c *Client) {
	if current, ok := g.clients[c.id]; !ok || current != c {
		return
	}

	delete(g.clients, c.id)
	g.untagLocked(c.id)
	close(c.send)
}

// closeAll disconnects every client, used on shutdown.
func (g *Gateway) closeAll() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, c := range g.clients {
		g.removeLocked(c)
		_ = c.conn.Close()
	}
}

func (g *Gateway) connections() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.clients)
}

func (g *Gateway) serveWS(ctx context.Context, engine sessionEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			g.log.Debug().Err(err).Str("remote", realIP(r)).Msg("GATEWAY: upgrade failed")
			return
		}

		client := &Client{
			id:      uuid.NewString(),
			conn:    conn,
			send:    make(chan outbound, sendQueueSize),
			limiter: rate.NewLimiter(rate.Limit(g.rateLimit), int(g.rateLimit)+1),
		}

		g.register(client)

		g.log.Debug().Str("conn", client.id).Str("remote", realIP(r)).Msg("GATEWAY: connected")

		go client.writePump()
		client.readPump(ctx, g, engine)
	}
}

func (c *Client) readPump(ctx context.Context, g *Gateway, engine sessionEngine) {
	defer func() {
		g.unregister(c)
		engine.Disconnect(ctx, c.id)
		_ = c.conn.Close()

		g.log.Debug().Str("conn", c.id).Msg("GATEWAY: disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Debug().Str("conn", c.id).Err(err).Msg("GATEWAY: read failed")
			}
			return
		}

		if !c.limiter.Allow() {
			g.log.Debug().Str("conn", c.id).Err(errRateLimited).Msg("GATEWAY: dropped frame")
			g.Send(c.id, ranking.EventErrorMsg, rateLimitedText)
			continue
		}

		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			g.Send(c.id, ranking.EventErrorMsg, ranking.ErrInvalidPayload.Error())
			continue
		}

		msg, err := ranking.ParseInbound(f.Event, f.Data)
		if err != nil {
			g.log.Debug().Str("conn", c.id).Str("event", f.Event).Err(err).Msg("GATEWAY: rejected frame")
			g.Send(c.id, ranking.EventErrorMsg, ranking.UserMessage(err))
			continue
		}

		engine.Submit(ctx, c.id, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
