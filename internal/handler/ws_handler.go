package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/portal-backend/internal/middleware"
	"github.com/stemsi/portal-backend/internal/response"
	"github.com/stemsi/portal-backend/internal/service"
	ws "github.com/stemsi/portal-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live results to students.
type WSHandler struct {
	results  *service.ResultService
	feed     service.ResultFeed
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(results *service.ResultService, feed service.ResultFeed, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		results:  results,
		feed:     feed,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// ResultsStream godoc
// WS /ws/v1/student/results/stream?token=...
// Sends the current results on connect and every recomputed view after that.
func (h *WSHandler) ResultsStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	studentID := claims.UserID

	raw, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	conn := ws.Wrap(raw)
	defer conn.Close()

	// The request context is not reliable once the connection is hijacked.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsLog := h.log.With().Int("student_id", studentID).Logger()

	// Subscribe first so nothing published during the initial read is lost.
	updates, err := h.feed.Subscribe(ctx, studentID)
	if err != nil {
		wsLog.Error().Err(err).Msg("Subscribe failed")
		_ = conn.WriteError("live updates unavailable")
		return
	}

	view, err := h.results.GetResults(ctx, studentID)
	if err != nil {
		wsLog.Error().Err(err).Msg("Initial results failed")
		_ = conn.WriteError("results unavailable")
		return
	}
	initial, err := json.Marshal(view)
	if err != nil {
		wsLog.Error().Err(err).Msg("Encode results failed")
		return
	}
	if err := conn.WriteResults(initial); err != nil {
		return
	}

	wsLog.Info().Msg("Student connected to results stream")

	go func() {
		for payload := range updates {
			if err := conn.WriteResults(payload); err != nil {
				wsLog.Debug().Err(err).Msg("Forward failed")
				cancel()
				return
			}
		}
	}()

	for {
		var msg ws.RequestEnvelope
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			_ = conn.WriteTyped(ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			_ = conn.WriteError("unknown action: " + string(msg.Action))
		}
	}
}
