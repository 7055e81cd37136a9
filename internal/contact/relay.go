package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnreachable wraps transport failures talking to the relay.
var ErrUnreachable = errors.New("contact relay unreachable")

// Sender delivers one message and returns the confirmation text to show.
type Sender interface {
	Send(ctx context.Context, m Message) (string, error)
}

// RejectedError is a delivery the remote side refused: a non-2xx status or
// success=false. Msg is the server's explanation, possibly empty.
type RejectedError struct {
	Status int
	Msg    string
}

func (e *RejectedError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("contact relay rejected message (status %d)", e.Status)
	}
	return fmt.Sprintf("contact relay rejected message (status %d): %s", e.Status, e.Msg)
}

// Relay POSTs messages as JSON to a fixed endpoint. It makes exactly one
// attempt per message.
type Relay struct {
	Endpoint string
	Client   *http.Client
}

func NewRelay(endpoint string, client *http.Client) *Relay {
	if client == nil {
		client = http.DefaultClient
	}
	return &Relay{Endpoint: endpoint, Client: client}
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (r *Relay) Send(ctx context.Context, m Message) (string, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	var out relayResponse
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUnreachable, err)
	}
	// A body that is not JSON leaves out zero-valued, which reads as a rejection.
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !out.Success {
		return "", &RejectedError{Status: resp.StatusCode, Msg: out.Message}
	}
	return out.Message, nil
}
