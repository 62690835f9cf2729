package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/muhammadolammi/careerpilot/internal/interview"
	"github.com/muhammadolammi/careerpilot/internal/logger"
)

const wsWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 5 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type StreamHandler struct {
	sessions *interview.Registry
	log      *logger.Logger
}

func NewStreamHandler(sessions *interview.Registry, log *logger.Logger) *StreamHandler {
	return &StreamHandler{sessions: sessions, log: log}
}

// Stream pushes a snapshot on connect and after every change, including each
// clock tick, until the client leaves or the session is closed. The socket is
// send-only; anything the client sends is discarded.
func (h *StreamHandler) Stream(c *gin.Context) {
	ctrl, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "session_id", ctrl.ID(), "error", err)
		return
	}
	defer conn.Close()

	updates := make(chan interview.Snapshot, 1)
	cancel := ctrl.Subscribe(func(s interview.Snapshot) {
		for {
			select {
			case updates <- s:
				return
			default:
			}
			// Keep only the newest snapshot for a slow reader.
			select {
			case <-updates:
			default:
			}
		}
	})
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var lastVersion uint64
	send := func(s interview.Snapshot) bool {
		if s.Version < lastVersion {
			return true
		}
		lastVersion = s.Version
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(s); err != nil {
			h.log.Debug("websocket write failed", "session_id", ctrl.ID(), "error", err)
			return false
		}
		return true
	}

	if !send(ctrl.Snapshot()) {
		return
	}
	for {
		select {
		case s := <-updates:
			if !send(s) {
				return
			}
		case <-ctrl.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
				time.Now().Add(wsWriteWait))
			return
		case <-closed:
			return
		}
	}
}
