package auth

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/CrestNiraj12/igreply/domain"
)

const (
	defaultPollInterval = time.Second
	defaultTimeout      = 5 * time.Minute
)

// State is the handshake's position in its lifecycle.
type State int

const (
	Waiting State = iota
	Completed
	Abandoned
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Completed:
		return "completed"
	case Abandoned:
		return "abandoned"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Outcome is the terminal result of a handshake.
type Outcome struct {
	State   State
	Message domain.AuthMessage // Set when Completed; Type tells success from error
	Reason  string             // Set when Abandoned
}

// Succeeded reports whether the handshake produced a linked account.
func (o Outcome) Succeeded() bool {
	return o.State == Completed && o.Message.Type == domain.AuthSuccessType
}

// Handshake tracks one OAuth popup flow. The first transition out of Waiting
// wins; every later message or observation is ignored. Leaving Waiting runs
// the teardown exactly once.
type Handshake struct {
	mu       sync.Mutex
	state    State
	outcome  Outcome
	teardown []func()
	done     chan struct{}
}

// NewHandshake returns a handshake in the Waiting state.
func NewHandshake() *Handshake {
	return &Handshake{done: make(chan struct{})}
}

// OnTeardown registers fn to run when the handshake leaves Waiting.
// Registered functions run in reverse order of registration.
func (h *Handshake) OnTeardown(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.teardown = append(h.teardown, fn)
}

// State returns the current state.
func (h *Handshake) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Done is closed once the handshake reaches a terminal state.
func (h *Handshake) Done() <-chan struct{} {
	return h.done
}

// Outcome returns the terminal outcome. It is only meaningful after Done.
func (h *Handshake) Outcome() Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outcome
}

// Deliver feeds a cross-window message into the handshake. Messages of
// unknown type are ignored. It reports whether the message ended the flow.
func (h *Handshake) Deliver(msg domain.AuthMessage) bool {
	if !msg.Terminal() {
		return false
	}
	return h.finish(Outcome{State: Completed, Message: msg})
}

// Abandon ends the flow without a result. It reports whether this call
// ended the flow.
func (h *Handshake) Abandon(reason string) bool {
	return h.finish(Outcome{State: Abandoned, Reason: reason})
}

func (h *Handshake) finish(o Outcome) bool {
	h.mu.Lock()
	if h.state != Waiting {
		h.mu.Unlock()
		return false
	}
	h.state = o.State
	h.outcome = o
	fns := h.teardown
	h.teardown = nil
	h.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
	close(h.done)
	log.Printf("oauth handshake: %s type=%q reason=%q", o.State, o.Message.Type, o.Reason)
	return true
}

// Options configures Run.
type Options struct {
	Port         int           // Relay port, 0 picks a free one
	PollInterval time.Duration // Window-closed poll, default 1s
	Timeout      time.Duration // Give up after this long, default 5m
	Open         Opener
}

// Run performs the popup handshake for authURL: it starts the message relay,
// opens the window and blocks until a message arrives, the window is closed,
// the timeout fires or ctx is cancelled. Only setup failures return an error;
// abandonment is reported through the outcome.
func Run(ctx context.Context, authURL string, opts Options) (Outcome, error) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	h := NewHandshake()

	relay, err := StartRelay(opts.Port, func(msg domain.AuthMessage) { h.Deliver(msg) })
	if err != nil {
		return Outcome{}, err
	}
	// Teardown may run inside a relay handler, which Shutdown would wait on.
	h.OnTeardown(func() { go relay.Shutdown() })

	win, err := opts.Open(authURL)
	if err != nil {
		relay.Shutdown()
		return Outcome{}, fmt.Errorf("opening login window: %w", err)
	}
	h.OnTeardown(func() { _ = win.Close() })

	stopPoll := make(chan struct{})
	h.OnTeardown(func() { close(stopPoll) })
	go watchWindow(h, win, opts.PollInterval, stopPoll)

	timeout := time.NewTimer(opts.Timeout)
	defer timeout.Stop()

	select {
	case <-h.Done():
	case <-ctx.Done():
		h.Abandon("cancelled")
	case <-timeout.C:
		h.Abandon("timed out")
	}
	<-h.Done()
	return h.Outcome(), nil
}

func watchWindow(h *Handshake, win Window, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if win.Closed() {
				h.Abandon("window closed")
				return
			}
		}
	}
}
