// Package client provides a typed websocket client used by tests to
// drive the quiz protocol.
package client

import (
	"encoding/json"
	"time"

	"livequiz-backend/api"

	"github.com/gorilla/websocket"
)

type Client struct {
	conn    *websocket.Conn
	timeout time.Duration
}

func NewClient(conn *websocket.Conn, timeout time.Duration) *Client {
	return &Client{
		conn:    conn,
		timeout: timeout,
	}
}

func (c *Client) Close() {
	c.conn.Close()
}

// sendCmd writes a request. Responses are read separately since
// broadcasts interleave with direct replies.
func (c *Client) sendCmd(req api.Request[any]) error {
	if c.timeout > 0 {
		deadline := time.Now().Add(c.timeout)
		if err := c.conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}
	return c.conn.WriteJSON(req)
}

func (c *Client) ReadResponse() (api.Response[json.RawMessage], error) {
	if c.timeout > 0 {
		deadline := time.Now().Add(c.timeout)
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return api.Response[json.RawMessage]{}, err
		}
	}
	res := api.Response[json.RawMessage]{}
	err := c.conn.ReadJSON(&res)
	return res, err
}

func (c *Client) Join(displayName string) error {
	return c.sendCmd(api.Request[any]{
		Type: api.RequestTypeJoin,
		Data: api.JoinRequestData{DisplayName: displayName},
	})
}

func (c *Client) Start() error {
	return c.sendCmd(api.Request[any]{Type: api.RequestTypeStart})
}

func (c *Client) Answer(choiceIndex int) error {
	return c.sendCmd(api.Request[any]{
		Type: api.RequestTypeAnswer,
		Data: api.AnswerRequestData{ChoiceIndex: choiceIndex},
	})
}

func (c *Client) Advance() error {
	return c.sendCmd(api.Request[any]{Type: api.RequestTypeAdvance})
}

func (c *Client) Reset() error {
	return c.sendCmd(api.Request[any]{Type: api.RequestTypeReset})
}
