package websocket

import (
	"context"
	"encoding/json"

	"grant-advisor-be/internal/pkg/logger"
	"grant-advisor-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	frameTypeDelta = "delta"
	frameTypeDone  = "done"
	frameTypeError = "error"
)

type inboundFrame struct {
	Message string `json:"message"`
}

type outboundFrame struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}

// ChatStreamHandler drives chat turns over a websocket connection. Each
// inbound frame triggers exactly one turn, processed to completion
// before the next frame is read; while the stream runs, every fragment
// pushes the full accumulated text so the client can re-render the
// message in place instead of appending.
type ChatStreamHandler struct {
	advisorService service.IAdvisorService
	wsLogger       logger.ILogger
}

func NewChatStreamHandler(advisorService service.IAdvisorService, wsLogger logger.ILogger) *ChatStreamHandler {
	return &ChatStreamHandler{
		advisorService: advisorService,
		wsLogger:       wsLogger,
	}
}

// Handle runs the read loop for one connection. Everything happens in
// the connection's goroutine; there is no fan-out and no hub.
func (h *ChatStreamHandler) Handle(c *websocket.Conn) {
	defer c.Close()

	sessionId, err := uuid.Parse(c.Params("id"))
	if err != nil {
		h.writeFrame(c, outboundFrame{Type: frameTypeError, Message: "invalid session id"})
		return
	}

	h.wsLogger.Info("ChatStream", "Connection opened", map[string]interface{}{
		"session_id": sessionId.String(),
	})

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.wsLogger.Warn("ChatStream", "Unexpected close", map[string]interface{}{
					"session_id": sessionId.String(),
					"error":      err.Error(),
				})
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.writeFrame(c, outboundFrame{Type: frameTypeError, Message: "invalid frame"})
			continue
		}

		res, err := h.advisorService.SendChat(context.Background(), sessionId, frame.Message,
			func(accumulated string) {
				h.writeFrame(c, outboundFrame{Type: frameTypeDelta, Content: accumulated})
			},
		)
		if err != nil {
			// Surfaced as a distinct error frame; the transcript keeps no
			// partial assistant turn
			h.writeFrame(c, outboundFrame{Type: frameTypeError, Message: err.Error()})
			continue
		}

		h.writeFrame(c, outboundFrame{Type: frameTypeDone, Content: res.Reply})
	}
}

func (h *ChatStreamHandler) writeFrame(c *websocket.Conn, frame outboundFrame) {
	if err := c.WriteJSON(frame); err != nil {
		h.wsLogger.Warn("ChatStream", "Write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
