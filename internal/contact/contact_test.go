package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid() Message {
	return Message{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello there"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Message)
		want string
	}{
		{"ok", func(*Message) {}, ""},
		{"blank name", func(m *Message) { m.Name = "   " }, "Name is required"},
		{"missing email", func(m *Message) { m.Email = "" }, "Please enter a valid email"},
		{"no dot", func(m *Message) { m.Email = "ada@example" }, "Please enter a valid email"},
		{"space in email", func(m *Message) { m.Email = "a da@example.com" }, "Please enter a valid email"},
		{"missing message", func(m *Message) { m.Message = "\n" }, "Message is required"},
		{"reports first field", func(m *Message) { m.Name, m.Message = "", "" }, "Name is required"},
		{"newline in subject", func(m *Message) { m.Subject = "hi\r\nBcc: someone@example.net" }, "Subject must be a single line"},
		{"newline in name", func(m *Message) { m.Name = "Ada\nBcc: someone@example.net" }, "Name must be a single line"},
		{"multi-line message", func(m *Message) { m.Message = "line one\nline two" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid()
			tt.edit(&m)
			err := m.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Msg)
		})
	}
}

func TestValidateTrims(t *testing.T) {
	m := Message{Name: "  Ada ", Email: " ada@example.com ", Message: " hi "}
	require.NoError(t, m.Validate())
	assert.Equal(t, "Ada", m.Name)
	assert.Equal(t, "ada@example.com", m.Email)
	assert.Equal(t, "hi", m.Message)
}

func relayServer(t *testing.T, status int, body string) (*httptest.Server, *Message) {
	t.Helper()
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestRelaySuccess(t *testing.T) {
	srv, got := relayServer(t, http.StatusOK, `{"success":true,"message":"Message sent!"}`)

	msg, err := NewRelay(srv.URL, srv.Client()).Send(context.Background(), valid())
	require.NoError(t, err)
	assert.Equal(t, "Message sent!", msg)
	assert.Equal(t, valid(), *got)
}

func TestRelayRejections(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		msg    string
	}{
		{"success false", http.StatusOK, `{"success":false,"message":"Mailbox full"}`, "Mailbox full"},
		{"server error", http.StatusInternalServerError, `{"success":true,"message":"weird"}`, "weird"},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := relayServer(t, tt.status, tt.body)
			_, err := NewRelay(srv.URL, srv.Client()).Send(context.Background(), valid())

			var rej *RejectedError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, tt.status, rej.Status)
			assert.Equal(t, tt.msg, rej.Msg)
		})
	}
}

func TestRelayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewRelay(url, nil).Send(context.Background(), valid())
	assert.ErrorIs(t, err, ErrUnreachable)
}

type stubSender struct {
	msg   string
	err   error
	calls int
	seen  func()
}

func (s *stubSender) Send(context.Context, Message) (string, error) {
	s.calls++
	if s.seen != nil {
		s.seen()
	}
	return s.msg, s.err
}

type stubRecorder struct {
	outcomes map[string]bool
}

func (r *stubRecorder) RecordContact(_ context.Context, id string, ok bool) error {
	r.outcomes[id] = ok
	return nil
}

func TestSubmitOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		sender  *stubSender
		success bool
		message string
	}{
		{"sent with server text", &stubSender{msg: "Got it"}, true, "Got it"},
		{"sent without text", &stubSender{}, true, MsgSent},
		{"rejected with reason", &stubSender{err: &RejectedError{Status: 400, Msg: "Spam detected"}}, false, "Spam detected"},
		{"rejected silently", &stubSender{err: &RejectedError{Status: 500}}, false, MsgFailed},
		{"unreachable", &stubSender{err: ErrUnreachable}, false, MsgUnreachable},
		{"other error", &stubSender{err: errors.New("boom")}, false, MsgFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &stubRecorder{outcomes: map[string]bool{}}
			s := NewSubmitter(tt.sender, rec, nil)

			res := s.Submit(context.Background(), valid())
			assert.Equal(t, tt.success, res.Success)
			assert.Equal(t, tt.message, res.Message)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.success, rec.outcomes[res.ID])
			assert.Equal(t, 0, s.Pending())
		})
	}
}

func TestSubmitInvalidSkipsSender(t *testing.T) {
	sender := &stubSender{}
	s := NewSubmitter(sender, nil, nil)

	res := s.Submit(context.Background(), Message{Name: "Ada", Email: "nope"})
	assert.False(t, res.Success)
	assert.Equal(t, "Please enter a valid email", res.Message)
	assert.Zero(t, sender.calls)
}

func TestSubmitTracksInFlight(t *testing.T) {
	sender := &stubSender{}
	s := NewSubmitter(sender, nil, nil)
	sender.seen = func() { assert.Equal(t, 1, s.Pending()) }

	s.Submit(context.Background(), valid())
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, 0, s.Pending())
}

func TestSMTPComposeAndSend(t *testing.T) {
	s := NewSMTP(SMTPConfig{Host: "smtp.example.com", Port: "587", User: "me@example.com", Pass: "pw", To: "me@example.com"})
	var addr string
	var sent []byte
	s.sendMail = func(a string, _ smtp.Auth, from string, to []string, msg []byte) error {
		addr, sent = a, msg
		return nil
	}

	m := valid()
	m.Subject = ""
	text, err := s.Send(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, MsgSent, text)
	assert.Equal(t, "smtp.example.com:587", addr)
	assert.Contains(t, string(sent), "Subject: Portfolio Contact: Ada\r\n")
	assert.Contains(t, string(sent), "Reply-To: ada@example.com\r\n")
	assert.True(t, strings.Contains(string(sent), "Hello there"))
}

func TestSMTPComposeKeepsHeadersSingleLine(t *testing.T) {
	s := NewSMTP(SMTPConfig{User: "me@example.com", To: "me@example.com"})
	m := valid()
	m.Subject = "hi\r\nBcc: someone@example.net"

	headers, _, ok := strings.Cut(string(s.compose(m)), "\r\n\r\n")
	require.True(t, ok)
	lines := strings.Split(headers, "\r\n")
	assert.Len(t, lines, 4)
	for _, l := range lines {
		assert.False(t, strings.HasPrefix(l, "Bcc:"), l)
		assert.NotContains(t, l, "\n")
	}
	assert.Equal(t, "Subject: hi  Bcc: someone@example.net", lines[1])
}

func TestSMTPRequiresCredentials(t *testing.T) {
	_, err := NewSMTP(SMTPConfig{Host: "h"}).Send(context.Background(), valid())
	assert.ErrorIs(t, err, ErrSMTPNotConfigured)
}

func TestSMTPFailureIsUnreachable(t *testing.T) {
	s := NewSMTP(SMTPConfig{Host: "h", Port: "25", User: "u", Pass: "p", To: "t"})
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("dial tcp: refused") }
	_, err := s.Send(context.Background(), valid())
	assert.ErrorIs(t, err, ErrUnreachable)
}
