// Package handover implements the one-time-code verification flow that proves
// a food pickup happened. Each session walks a small state machine: the code
// is generated up front, sent to the donor, and the rescuer submits it back.
package handover

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// State enum
type State string

const (
	AwaitingSend         State = "awaiting_send"
	AwaitingVerification State = "awaiting_verification"
	Verified             State = "verified"
)

const (
	// CodeTTL is the displayed validity window armed when the code is sent.
	// Submission is intentionally not gated on it; it is display state only.
	CodeTTL = 300 * time.Second

	// completionDelay is the pause between a successful verification and the
	// completion callback firing.
	completionDelay = 2 * time.Second

	codeLength = 6
)

var (
	ErrCodeMismatch    = errors.New("handover: code does not match")
	ErrNotSent         = errors.New("handover: code has not been sent yet")
	ErrAlreadySent     = errors.New("handover: code already sent")
	ErrAlreadyVerified = errors.New("handover: session already verified")
)

// Session is a single verification flow bound to one donation.
type Session struct {
	mu sync.Mutex

	id         string
	donationID string
	code       string
	state      State
	deadline   time.Time

	now        func() time.Time
	delay      time.Duration
	timer      *time.Timer
	onComplete func()
	closed     bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithNow overrides the session's time source.
func WithNow(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithCompletionDelay overrides the delay before the completion callback.
func WithCompletionDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.delay = d }
}

// NewSession creates a session in AwaitingSend with a freshly generated code.
// onComplete runs once, a fixed delay after successful verification, unless
// the session is closed first.
func NewSession(id, donationID string, onComplete func(), opts ...SessionOption) *Session {
	s := &Session{
		id:         id,
		donationID: donationID,
		code:       generateCode(),
		state:      AwaitingSend,
		now:        time.Now,
		delay:      completionDelay,
		onComplete: onComplete,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func generateCode() string {
	return fmt.Sprintf("%d", rand.Intn(900000)+100000)
}

// SanitizeCode strips non-digits from a candidate and truncates it to the
// code length.
func SanitizeCode(candidate string) string {
	var b strings.Builder
	for _, r := range candidate {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == codeLength {
				break
			}
		}
	}
	return b.String()
}

func (s *Session) ID() string { return s.id }

func (s *Session) DonationID() string { return s.donationID }

func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Remaining reports the countdown. Before the code is sent the full window is
// armed but not ticking; after expiry it clamps at zero.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == AwaitingSend {
		return CodeTTL
	}
	remaining := s.deadline.Sub(s.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Send delivers the code to the counterparty and starts the countdown.
func (s *Session) Send() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case AwaitingVerification:
		return ErrAlreadySent
	case Verified:
		return ErrAlreadyVerified
	}

	s.state = AwaitingVerification
	s.deadline = s.now().Add(CodeTTL)
	return nil
}

// Submit compares a candidate code against the held one. On a match the
// session becomes Verified and the completion callback is scheduled. On a
// mismatch the state is untouched and ErrCodeMismatch is returned so the
// caller can clear the input and prompt a retry. The countdown having reached
// zero does not reject an otherwise correct code.
func (s *Session) Submit(candidate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case AwaitingSend:
		return ErrNotSent
	case Verified:
		return ErrAlreadyVerified
	}

	if SanitizeCode(candidate) != s.code {
		return ErrCodeMismatch
	}

	s.state = Verified
	if s.onComplete != nil && !s.closed {
		s.timer = time.AfterFunc(s.delay, s.onComplete)
	}
	return nil
}

// Regenerate discards the current code and returns to AwaitingSend with a
// fresh one and the countdown re-armed.
func (s *Session) Regenerate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case AwaitingSend:
		return ErrNotSent
	case Verified:
		return ErrAlreadyVerified
	}

	s.code = generateCode()
	s.state = AwaitingSend
	s.deadline = time.Time{}
	return nil
}

// Close tears the session down. A pending completion callback is cancelled so
// it never fires against a discarded flow.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// QRPayload is the data a donor-side scan would confirm.
type QRPayload struct {
	DonationID string `json:"donationId"`
	OTP        string `json:"otp"`
	Timestamp  int64  `json:"timestamp"`
}

// QR returns the session's QR payload as JSON.
func (s *Session) QR() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return json.Marshal(QRPayload{
		DonationID: s.donationID,
		OTP:        s.code,
		Timestamp:  s.now().UnixMilli(),
	})
}
