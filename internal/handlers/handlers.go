package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"livequiz-backend/api"
	"livequiz-backend/internal/config"
	errs "livequiz-backend/internal/errors"
	"livequiz-backend/internal/quiz"
	"livequiz-backend/internal/rate"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/lithammer/shortuuid/v3"
)

const eventTimeout = 5 * time.Second

// wsSender adapts a websocket conn to the session's outbound boundary.
type wsSender struct {
	conn *websocket.Conn
}

func (s wsSender) Send(ctx context.Context, v any) error {
	return wsjson.Write(ctx, s.conn, v)
}

// QuizHandler returns the websocket handler feeding inbound events to
// the shared session.
func QuizHandler(cfg config.Config, session *quiz.Session, acceptOpts websocket.AcceptOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &acceptOpts)
		if err != nil {
			// Accept already writes a status code and error message.
			slog.Error("websocket accept", slog.Any("error", err))
			return
		}
		conn.SetReadLimit(cfg.Quiz.WebsocketReadLimit)

		connID := shortuuid.New()
		ctx := r.Context()

		timeoutCtx, cancel := context.WithTimeout(ctx, eventTimeout)
		session.AddConn(timeoutCtx, connID, wsSender{conn})
		cancel()

		go ping(ctx, conn, 5*time.Second) // Detect timed out connection.
		defer disconnect(session, connID, conn)

		limiter := rate.NewLimiter(cfg.Quiz.RateLimitWindow, cfg.Quiz.RateLimit)

		for {
			req := api.Request[json.RawMessage]{}
			if err := wsjson.Read(ctx, conn, &req); err != nil {
				if websocket.CloseStatus(err) == -1 { // -1 is considered as an err unrelated to closing.
					timeoutCtx, cancel := context.WithTimeout(ctx, eventTimeout)
					errs.WriteWebsocketError(timeoutCtx, conn, errs.InvalidRequestError(err, api.RequestTypeUnknown, "could not read websocket frame"))
					cancel()
				}
				return
			}

			timeoutCtx, cancel := context.WithTimeout(ctx, eventTimeout)
			if limiter.Allow() {
				handleRequest(timeoutCtx, session, connID, conn, req)
			} else {
				errs.WriteWebsocketError(timeoutCtx, conn, errs.RateLimitedError(req.Type))
			}
			cancel()
		}
	}
}

func handleRequest(ctx context.Context, session *quiz.Session, connID string, conn *websocket.Conn, req api.Request[json.RawMessage]) {
	switch req.Type {
	case api.RequestTypeJoin:
		handleJoinRequest(ctx, session, connID, conn, req.Data)
	case api.RequestTypeStart:
		handleStartRequest(ctx, session, connID, conn)
	case api.RequestTypeAnswer:
		handleAnswerRequest(ctx, session, connID, conn, req.Data)
	case api.RequestTypeAdvance:
		handleAdvanceRequest(ctx, session, connID)
	case api.RequestTypeReset:
		handleResetRequest(ctx, session, connID, conn)
	default:
		err := fmt.Errorf("unknown request: %s", req.Type)
		errs.WriteWebsocketError(ctx, conn, errs.InvalidRequestError(err, api.RequestTypeUnknown, err.Error()))
	}
}

func ping(ctx context.Context, conn *websocket.Conn, interval time.Duration) {
	for {
		select {
		case <-time.Tick(interval):
			timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := conn.Ping(timeoutCtx); err != nil {
				conn.CloseNow()
				cancel()
				return
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}
}

func disconnect(session *quiz.Session, connID string, conn *websocket.Conn) {
	conn.CloseNow()

	// The request context may already be closing down; removal
	// broadcasts go out on their own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	session.RemoveConn(ctx, connID)
}
