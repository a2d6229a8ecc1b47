package netbot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerarena/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrDisconnected = errors.New("bot disconnected")
	ErrSendBuffer   = errors.New("send buffer full")
)

// Remote is a seat played by a bot over a websocket. It implements
// game.Actor and game.EventSubscriber, so it can be handed to a match as a
// player and subscribed to the match's event bus.
type Remote struct {
	name   string
	conn   *websocket.Conn
	send   chan any
	reply  chan ActionReply
	logger *log.Logger

	nextID atomic.Int64

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newRemote(conn *websocket.Conn, name string, logger *log.Logger) *Remote {
	ctx, cancel := context.WithCancel(context.Background())
	return &Remote{
		name:   name,
		conn:   conn,
		send:   make(chan any, 256),
		reply:  make(chan ActionReply, 1),
		logger: logger.With("bot", name),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Name returns the name the bot connected with
func (r *Remote) Name() string {
	return r.name
}

// Done is closed once the bot disconnects
func (r *Remote) Done() <-chan struct{} {
	return r.ctx.Done()
}

// Start begins handling the connection
func (r *Remote) Start() {
	go r.writePump()
	go r.readPump()
}

// Close says goodbye to the bot and closes the connection
func (r *Remote) Close() error {
	r.closeOnce.Do(r.cancel)
	return nil
}

// RequestAction sends the request to the bot and waits for its reply. An
// unparseable reply folds; a disconnected bot returns ErrDisconnected.
func (r *Remote) RequestAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	id := r.nextID.Add(1)

	// a late answer to an earlier request must not answer this one
	select {
	case <-r.reply:
	default:
	}

	if err := r.enqueue(newActionRequestMessage(id, req)); err != nil {
		return game.Action{}, err
	}

	for {
		select {
		case reply := <-r.reply:
			if reply.ID != 0 && reply.ID != id {
				r.logger.Debug("Dropping stale reply", "id", reply.ID, "want", id)
				continue
			}
			return reply.action(), nil
		case <-ctx.Done():
			return game.Action{}, ctx.Err()
		case <-r.ctx.Done():
			return game.Action{}, ErrDisconnected
		}
	}
}

// OnEvent forwards events to the bot with other seats' hole cards removed
func (r *Remote) OnEvent(event game.GameEvent) {
	if err := r.enqueue(newEventMessage(event, game.Seat(r.name))); err != nil {
		r.logger.Debug("Dropped event", "event", event.EventType(), "error", err)
	}
}

func (r *Remote) enqueue(msg any) error {
	select {
	case <-r.ctx.Done():
		return ErrDisconnected
	default:
	}

	select {
	case r.send <- msg:
		return nil
	case <-r.ctx.Done():
		return ErrDisconnected
	default:
		r.logger.Warn("Connection send buffer full, closing connection")
		_ = r.Close()
		return ErrSendBuffer
	}
}

// readPump handles replies from the bot
func (r *Remote) readPump() {
	defer func() { _ = r.Close() }()

	r.conn.SetReadLimit(maxMessageSize)
	_ = r.conn.SetReadDeadline(time.Now().Add(pongWait))
	r.conn.SetPongHandler(func(string) error {
		_ = r.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := r.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				r.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		reply, err := decode[ActionReply](raw)
		if err != nil {
			// garbage counts as an invalid action, which folds
			r.logger.Warn("Malformed reply", "error", err)
			reply = ActionReply{Action: "invalid"}
		}

		// keep only the newest reply
		select {
		case <-r.reply:
		default:
		}
		select {
		case r.reply <- reply:
		default:
		}
	}
}

// writePump sends queued messages and keeps the connection alive
func (r *Remote) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = r.Close()
		_ = r.conn.Close()
	}()

	for {
		select {
		case msg := <-r.send:
			_ = r.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := r.conn.WriteJSON(msg); err != nil {
				r.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = r.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := r.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-r.ctx.Done():
			_ = r.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
