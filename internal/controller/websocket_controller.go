package controller

import (
	"encoding/json"

	"github.com/benbeisheim/rollerball-backend/internal/middleware"
	"github.com/benbeisheim/rollerball-backend/internal/model"
	"github.com/benbeisheim/rollerball-backend/internal/service"
	"github.com/benbeisheim/rollerball-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type WebSocketController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewWebSocketController(gameService *service.GameService, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		log:         log,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	log := wsc.log.With().Str("game", gameID).Str("player", playerID).Logger()

	// Broadcasts and error replies share this writer.
	conn := model.NewSyncConn(c)
	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		if errors.Is(err, model.ErrDuplicateConnection) {
			log.Info().Msg("duplicate connection closed")
			return
		}
		log.Warn().Err(err).Msg("failed to register connection")
		wsc.sendError(conn, err)
		conn.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("read error")
			break
		}

		if messageType != websocket.TextMessage {
			continue
		}
		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug().Err(err).Msg("parse error")
			wsc.sendError(conn, errors.Wrap(err, "malformed message"))
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Info().Err(err).Str("type", string(msg.Type)).Msg("message rejected")
			wsc.sendError(conn, err)
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID, conn)
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return errors.Wrap(err, "malformed move")
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeReset:
		return wsc.gameService.ResetGame(gameID)

	default:
		return errors.Errorf("unknown message type: %s", msg.Type)
	}
}

// sendError reports err to a single client; the state broadcast stays
// untouched.
func (wsc *WebSocketController) sendError(c model.Conn, err error) {
	payload, mErr := json.Marshal(ws.ErrorPayload{Error: err.Error()})
	if mErr != nil {
		wsc.log.Error().Err(mErr).Msg("failed to marshal error")
		return
	}
	if wErr := c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	}); wErr != nil {
		wsc.log.Debug().Err(wErr).Msg("failed to send error")
	}
}
