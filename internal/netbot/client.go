package netbot

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerarena/internal/game"
)

// Play connects actor to the server at serverURL as name and answers action
// requests until ctx is done or the server closes the connection.
func Play(ctx context.Context, serverURL, name string, actor game.Actor, logger *log.Logger) error {
	logger = logger.WithPrefix("netbot").With("bot", name)

	u, err := BotURL(serverURL, name)
	if err != nil {
		return err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connect as %s: %s: %w", name, resp.Status, err)
		}
		return fmt.Errorf("connect as %s: %w", name, err)
	}
	defer func() { _ = conn.Close() }()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	conn.SetReadLimit(64 * maxMessageSize)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		env, err := decode[Envelope](raw)
		if err != nil {
			logger.Warn("Malformed message", "error", err)
			continue
		}

		switch env.Type {
		case TypeActionRequest:
			msg, err := decode[ActionRequestMessage](raw)
			if err != nil {
				logger.Warn("Malformed action request", "error", err)
				continue
			}
			reply := decide(ctx, actor, msg, logger)
			if err := conn.WriteJSON(reply); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		case TypeError:
			msg, _ := decode[ErrorMessage](raw)
			return fmt.Errorf("server refused %s: %s", name, msg.Error)
		case TypeWelcome:
			logger.Info("Seated")
		default:
			logger.Debug("Received message", "type", env.Type)
		}
	}
}

func decide(ctx context.Context, actor game.Actor, msg ActionRequestMessage, logger *log.Logger) ActionReply {
	req, err := msg.toRequest()
	if err != nil {
		logger.Warn("Bad cards in request", "error", err)
		return ActionReply{ID: msg.ID, Action: game.Fold.String()}
	}

	actx := ctx
	if req.Budget > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, req.Budget)
		defer cancel()
	}

	action, err := actor.RequestAction(actx, req)
	if err != nil {
		logger.Warn("Actor failed, folding", "error", err)
		action = game.Action{Kind: game.Fold}
	}
	return ActionReply{ID: msg.ID, Action: action.Kind.String(), Amount: action.Amount}
}

// BotURL builds the websocket address a bot named name connects to. An
// http(s) base is converted to ws(s).
func BotURL(base, name string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/bot"
	u.RawQuery = url.Values{"name": {name}}.Encode()
	return u.String(), nil
}
