package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"unicode/utf8"

	"livequiz-backend/api"
	errs "livequiz-backend/internal/errors"
	"livequiz-backend/internal/quiz"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

func handleJoinRequest(ctx context.Context, session *quiz.Session, connID string, conn *websocket.Conn, data json.RawMessage) {
	req, err := api.DecodeJSON[api.JoinRequestData](data)
	if err != nil {
		errs.WriteWebsocketError(ctx, conn, errs.InvalidRequestError(err, api.RequestTypeJoin, "invalid join request"))
		return
	}

	if err := validateDisplayName(req.DisplayName); err != nil {
		fields := map[string]string{"displayName": err.Error()}
		errs.WriteWebsocketError(ctx, conn, errs.InputValidationError(err, api.RequestTypeJoin, fields))
		return
	}

	switch err := session.Join(ctx, connID, req.DisplayName); {
	case err == nil:
	case errors.Is(err, quiz.ErrNameTaken):
		res := api.Response[api.NameTakenData]{
			Type: api.ResponseTypeNameTaken,
			Data: api.NameTakenData{DisplayName: req.DisplayName},
		}
		if err := wsjson.Write(ctx, conn, res); err != nil {
			slog.Error("name-taken response write",
				slog.String("display_name", req.DisplayName),
				slog.Any("error", err))
		}
	case errors.Is(err, quiz.ErrAlreadyJoined):
		errs.WriteWebsocketError(ctx, conn, errs.InvalidRequestError(err, api.RequestTypeJoin, "already joined"))
	default:
		// Wrong phase: tolerate client/server desync without noise.
		slog.DebugContext(ctx, "join rejected", slog.Any("error", err))
	}
}

func handleStartRequest(ctx context.Context, session *quiz.Session, connID string, conn *websocket.Conn) {
	switch err := session.Start(ctx, connID); {
	case err == nil:
	case errors.Is(err, quiz.ErrNotAdmin):
		errs.WriteWebsocketError(ctx, conn, errs.UnauthorizedRequestError(api.RequestTypeStart, "not admin-eligible"))
	default:
		slog.DebugContext(ctx, "start rejected", slog.Any("error", err))
	}
}

func handleAnswerRequest(ctx context.Context, session *quiz.Session, connID string, conn *websocket.Conn, data json.RawMessage) {
	req, err := api.DecodeJSON[api.AnswerRequestData](data)
	if err != nil {
		errs.WriteWebsocketError(ctx, conn, errs.InvalidRequestError(err, api.RequestTypeAnswer, "invalid answer request"))
		return
	}

	// Duplicate, stale and out-of-phase answers are dropped without a
	// response: the session already moved on and the client will catch
	// up on the next broadcast.
	if err := session.SubmitAnswer(ctx, connID, req.ChoiceIndex); err != nil {
		slog.DebugContext(ctx, "answer rejected", slog.Any("error", err))
	}
}

func handleAdvanceRequest(ctx context.Context, session *quiz.Session, connID string) {
	if err := session.Advance(ctx, connID); err != nil {
		slog.DebugContext(ctx, "advance rejected", slog.Any("error", err))
	}
}

func handleResetRequest(ctx context.Context, session *quiz.Session, connID string, conn *websocket.Conn) {
	switch err := session.Reset(ctx, connID); {
	case err == nil:
	case errors.Is(err, quiz.ErrNotAdmin):
		errs.WriteWebsocketError(ctx, conn, errs.UnauthorizedRequestError(api.RequestTypeReset, "not admin-eligible"))
	default:
		slog.DebugContext(ctx, "reset rejected", slog.Any("error", err))
	}
}

func validateDisplayName(name string) error {
	count := utf8.RuneCountInString(name)
	if count < 2 {
		return errors.New("display name too short")
	}
	if count > 25 {
		return errors.New("display name too long")
	}
	return nil
}
