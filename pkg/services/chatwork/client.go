// Package chatwork is a minimal client for the Chatwork v2 message API.
package chatwork

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	dftAPIBase = "https://api.chatwork.com/v2"

	sendTimeout = time.Second * 10
)

type Client struct {
	token string
	base  string
	hc    *http.Client
}

type Option func(*Client)

// WithAPIBase override the API endpoint, mainly for tests.
func WithAPIBase(base string) Option {
	return func(c *Client) { c.base = strings.TrimSuffix(base, "/") }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token: token,
		base:  dftAPIBase,
		hc: &http.Client{
			Timeout:   sendTimeout,
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendMessage post a message body to one room.
func (c *Client) SendMessage(ctx context.Context, roomID int64, body string) error {
	uri := c.base + "/rooms/" + strconv.FormatInt(roomID, 10) + "/messages"
	form := url.Values{"body": {body}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("X-ChatWorkToken", c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("send message to room %d: %s: %s", roomID, res.Status, b)
	}
	return nil
}
