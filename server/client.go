package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// Sentinel errors mapped back from the server's rejection statuses, so a
// caller can tell a lost revision race from a real fault.
var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrUnknownSession = errors.New("unknown session")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrStaleRevision  = errors.New("stale revision")
	ErrMatchOver      = errors.New("match is over")
)

// Client talks to a match server. Every rejection comes back as an error;
// nothing is silently dropped.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the server at baseURL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// CreateMatch asks the server to host a new game and returns its code,
// the per-seat session tokens and the opening update.
func (c *Client) CreateMatch(req CreateMatchRequest) (*CreatedMatch, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Post(c.baseURL+"/matches", "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return nil, responseError(resp)
	}
	var created CreatedMatch
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode create response: %w", err)
	}
	return &created, nil
}

// State fetches the match's current revision.
func (c *Client) State(code string) (*Update, error) {
	resp, err := c.http.Get(fmt.Sprintf("%s/matches/%s/state", c.baseURL, code))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}
	var u Update
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode state response: %w", err)
	}
	return &u, nil
}

// Play submits one turn: move the given token with the match's pending
// roll, based on the view at rev.
func (c *Client) Play(code, session string, tokenID, rev int) (*Update, error) {
	data, err := json.Marshal(PlayRequest{Session: session, TokenID: tokenID, Rev: rev})
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Post(fmt.Sprintf("%s/matches/%s/play", c.baseURL, code), "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}
	var u Update
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode play response: %w", err)
	}
	return &u, nil
}

// Subscribe opens the match's websocket update stream. The server sends
// the current revision immediately, then every new one as it happens.
func (c *Client) Subscribe(code string) (*Subscription, error) {
	url := fmt.Sprintf("%s/matches/%s/ws", websocketURL(c.baseURL), code)
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Subscription{conn: conn}, nil
}

func websocketURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}

// responseError turns a rejection into the matching sentinel, carrying
// the server's own message when it says more.
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	msg := strings.TrimSpace(string(body))
	var sentinel error
	switch resp.StatusCode {
	case http.StatusNotFound:
		sentinel = ErrMatchNotFound
	case http.StatusUnauthorized:
		sentinel = ErrUnknownSession
	case http.StatusForbidden:
		sentinel = ErrNotYourTurn
	case http.StatusConflict:
		sentinel = ErrStaleRevision
	case http.StatusGone:
		sentinel = ErrMatchOver
	default:
		return fmt.Errorf("server returned %s: %s", resp.Status, msg)
	}
	if msg == "" || msg == sentinel.Error() {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, strings.TrimPrefix(msg, sentinel.Error()+": "))
}

// Subscription is a live feed of one match's updates.
type Subscription struct {
	conn *websocket.Conn
}

// Next blocks until the server pushes the next update.
func (s *Subscription) Next() (*Update, error) {
	var u Update
	if err := s.conn.ReadJSON(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Close tears the stream down.
func (s *Subscription) Close() error {
	return s.conn.Close()
}
