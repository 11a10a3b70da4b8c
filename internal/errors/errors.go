// Package errors maps rejected requests to wire error responses.
package errors

import (
	"context"
	"errors"
	"log/slog"

	"livequiz-backend/api"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// WriteWebsocketError writes an error response on the websocket and
// logs it. Unrecognized errors are masked as internal server errors.
func WriteWebsocketError(ctx context.Context, conn *websocket.Conn, err error) {
	res := api.Response[api.WebsocketErrorData]{
		Type: api.ResponseTypeError,
	}

	apiErr := api.ErrorData{}
	if errors.As(err, &apiErr) {
		res.Data.Request = apiErr.Request
		res.Data.Code = apiErr.Code
		res.Data.Message = apiErr.Message
		res.Data.Extra = apiErr.Extra
	} else {
		res.Data.Code = api.InternalServerErrorCode
		res.Data.Message = "unexpected error"
	}

	slog.ErrorContext(ctx, "ws error",
		slog.Any("error", err),
		slog.Any("error_code", res.Data.Code))

	if err := wsjson.Write(ctx, conn, res); err != nil {
		slog.ErrorContext(ctx, "ws error: failed to write response", slog.Any("error", err))
	}
}

func InvalidRequestError(err error, req api.RequestType, cause string) api.ErrorData {
	return api.ErrorData{
		Request: req,
		Code:    api.InvalidRequestCode,
		Message: "invalid request",
		Extra: struct {
			Cause string `json:"cause"`
		}{
			Cause: cause,
		},
		Err: err,
	}
}

func UnauthorizedRequestError(req api.RequestType, cause string) api.ErrorData {
	return api.ErrorData{
		Request: req,
		Code:    api.UnauthorizedErrorCode,
		Message: "unauthorized request",
		Extra: struct {
			Cause string `json:"cause"`
		}{
			Cause: cause,
		},
	}
}

func RateLimitedError(req api.RequestType) api.ErrorData {
	return api.ErrorData{
		Request: req,
		Code:    api.RateLimitedCode,
		Message: "too many requests",
	}
}

func InputValidationError(err error, req api.RequestType, fields map[string]string) api.ErrorData {
	return api.ErrorData{
		Request: req,
		Code:    api.InvalidRequestCode,
		Message: "invalid input",
		Extra:   fields,
		Err:     err,
	}
}
