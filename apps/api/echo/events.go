package echoapi

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/agenda/core/route"
	"github.com/trezcool/agenda/core/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	eventTypeSession = "session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SessionEvent is pushed to websocket clients on every session change.
type SessionEvent struct {
	Type        string            `json:"type"`
	Destination route.Destination `json:"destination"`
	Identity    *session.Identity `json:"identity"`
}

func newSessionEvent(ident *session.Identity) SessionEvent {
	return SessionEvent{
		Type:        eventTypeSession,
		Destination: route.Select(ident),
		Identity:    ident,
	}
}

// events streams the changes of the session given by the `session_id` query param.
// The first message is the current state. The stream ends when the session is dropped.
func (api *sessionApi) events(ctx echo.Context) error {
	h, err := api.store.Get(ctx.QueryParam("session_id"))
	if err != nil {
		return errors.Wrap(err, "finding session by ID")
	}

	// subscribe before reading the current state so no change is missed
	changes, unsubscribe := h.Subscribe()
	defer unsubscribe()

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		api.logger.Warn("websocket upgrade failed", err, map[string]interface{}{"session_id": h.ID})
		return nil // the upgrader already replied
	}
	defer conn.Close()

	closed := readPump(conn)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := writeEvent(conn, newSessionEvent(h.Current())); err != nil {
		return nil
	}

	for {
		select {
		case evt, ok := <-changes:
			if !ok { // session dropped
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return nil
			}
			if err := writeEvent(conn, newSessionEvent(evt.Identity)); err != nil {
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-closed:
			return nil
		}
	}
}

// readPump discards client messages and handles pongs. The returned channel is closed when the peer goes away.
func readPump(conn *websocket.Conn) <-chan struct{} {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return closed
}

func writeEvent(conn *websocket.Conn, evt SessionEvent) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(evt)
}
