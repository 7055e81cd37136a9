package contact

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// User-facing fallbacks when the relay gives no explanation.
const (
	MsgSent        = "Thank you for your message! I'll get back to you soon."
	MsgFailed      = "Failed to send message"
	MsgUnreachable = "Failed to connect to server. Please try again later."
)

// Result is what the form shows after a submission.
type Result struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Recorder stores the outcome of a submission. Implementations must not
// block for long; Submit waits for them.
type Recorder interface {
	RecordContact(ctx context.Context, id string, success bool) error
}

// Submitter validates, sends and records contact messages.
type Submitter struct {
	sender   Sender
	recorder Recorder
	log      *zap.Logger
	pending  atomic.Int32
}

func NewSubmitter(sender Sender, recorder Recorder, log *zap.Logger) *Submitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Submitter{sender: sender, recorder: recorder, log: log}
}

// Pending is the number of submissions currently in flight.
func (s *Submitter) Pending() int { return int(s.pending.Load()) }

// Submit never returns an error: every failure becomes an unsuccessful
// Result with a message fit for display. The in-flight count is released on
// every path.
func (s *Submitter) Submit(ctx context.Context, m Message) Result {
	res := Result{ID: uuid.NewString()}

	if err := m.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			res.Message = verr.Msg
		} else {
			res.Message = MsgFailed
		}
		return res
	}

	s.pending.Add(1)
	defer s.pending.Add(-1)

	msg, err := s.sender.Send(ctx, m)
	switch {
	case err == nil:
		res.Success = true
		res.Message = msg
		if res.Message == "" {
			res.Message = MsgSent
		}
		s.log.Info("contact message sent", zap.String("id", res.ID), zap.String("from", m.Email))
	case errors.Is(err, ErrUnreachable):
		res.Message = MsgUnreachable
		s.log.Error("contact relay unreachable", zap.String("id", res.ID), zap.Error(err))
	default:
		res.Message = MsgFailed
		var rej *RejectedError
		if errors.As(err, &rej) && rej.Msg != "" {
			res.Message = rej.Msg
		}
		s.log.Warn("contact message rejected", zap.String("id", res.ID), zap.Error(err))
	}

	if s.recorder != nil {
		if err := s.recorder.RecordContact(ctx, res.ID, res.Success); err != nil {
			s.log.Warn("recording contact outcome", zap.String("id", res.ID), zap.Error(err))
		}
	}
	return res
}
