package api

type ErrorCode uint8

const (
	InvalidRequestCode      ErrorCode = 201
	UnauthorizedErrorCode   ErrorCode = 202
	RateLimitedCode         ErrorCode = 203
	InternalServerErrorCode ErrorCode = 204
)

type WebsocketErrorData struct {
	Request RequestType `json:"request,omitempty"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message,omitempty"`
	Extra   any         `json:"extra,omitempty"`
}

type ErrorData struct { //nolint: errname
	Request RequestType `json:"request,omitempty"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message,omitempty"`
	Extra   any         `json:"extra,omitempty"`
	Err     error       `json:"-"`
}

func (e ErrorData) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}

func (e ErrorData) Unwrap() error {
	return e.Err
}
