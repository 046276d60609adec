package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"chess-relay/internal/ids"
	"chess-relay/internal/relay"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

var (
	pongWait     = 60 * time.Second
	pingInterval = 15 * time.Second
)

type Options struct {
	// AllowedOrigins limits browser origins; empty allows any.
	AllowedOrigins []string
	SendBuffer     int
}

// Server adapts websocket connections to a relay. It never touches seat or
// game state directly.
type Server struct {
	relay      *relay.Relay
	upgrader   websocket.Upgrader
	sendBuffer int
}

func NewServer(r *relay.Relay, opts Options) *Server {
	allowed := map[string]bool{}
	for _, o := range opts.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}
	return &Server{
		relay:      r,
		sendBuffer: opts.SendBuffer,
		upgrader: websocket.Upgrader{CheckOrigin: func(req *http.Request) bool {
			origin := req.Header.Get("Origin")
			return len(allowed) == 0 || origin == "" || allowed[origin]
		}},
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		metricWSUpgradeErrors.Add(1)
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("ws_upgrade_failed")
		return
	}
	metricWSConnectionsTotal.Add(1)
	client := newClient(relay.ConnID(ids.New()), conn, s.sendBuffer)
	log.Info().Str("conn_id", string(client.id)).Str("remote", r.RemoteAddr).Msg("connection_open")

	go s.writeLoop(client)
	s.relay.Connect(client)
	s.readLoop(client)
}

func (s *Server) readLoop(c *Client) {
	defer func() {
		s.relay.Disconnect(c.id)
		c.close()
		log.Info().Str("conn_id", string(c.id)).Msg("connection_closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		metricWSFramesInTotal.Add(1)
		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &base); err != nil {
			metricWSBadFramesTotal.Add(1)
			continue
		}
		switch base.Type {
		case relay.TypeMove:
			s.handleMove(c, msg)
		default:
			metricWSBadFramesTotal.Add(1)
			log.Debug().Str("conn_id", string(c.id)).Str("type", base.Type).Msg("ws_unknown_type")
		}
	}
}

// handleMove forwards a move frame to the relay. A frame whose fields do not
// decode is submitted as an empty move so it is rejected as malformed.
func (s *Server) handleMove(c *Client, msg []byte) {
	var req MoveRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		metricWSBadFramesTotal.Add(1)
		req = MoveRequest{}
	}
	_ = s.relay.SubmitMove(c.id, req.Input())
}

func (s *Server) writeLoop(c *Client) {
	ticker := time.NewTicker(pingInterval)
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
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug().Err(err).Str("conn_id", string(c.id)).Msg("ws_write_failed")
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
