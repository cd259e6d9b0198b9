package application

import (
	"context"
	"sync"

	"runclub/internal/domain"
)

// GateState is the state of a ConfirmationGate.
type GateState int

const (
	GateClosed GateState = iota
	GatePending
)

func (s GateState) String() string {
	if s == GatePending {
		return "pending"
	}
	return "closed"
}

// Leaver performs the leave once it is confirmed.
type Leaver interface {
	Leave(ctx context.Context, eventID string) error
}

// ConfirmationGate holds at most one leave request waiting for explicit
// confirmation. A new request replaces the pending one.
type ConfirmationGate struct {
	leaver Leaver

	mu      sync.Mutex
	state   GateState
	eventID string
}

func NewConfirmationGate(leaver Leaver) *ConfirmationGate {
	return &ConfirmationGate{leaver: leaver}
}

func (g *ConfirmationGate) RequestLeave(eventID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = GatePending
	g.eventID = eventID
}

func (g *ConfirmationGate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.close()
}

// Confirm closes the gate and leaves the pending event. The gate is closed
// whether or not the leave succeeds.
func (g *ConfirmationGate) Confirm(ctx context.Context) (string, error) {
	g.mu.Lock()
	if g.state != GatePending {
		g.mu.Unlock()
		return "", domain.ErrNoPendingLeave
	}
	eventID := g.eventID
	g.close()
	g.mu.Unlock()

	return eventID, g.leaver.Leave(ctx, eventID)
}

// State returns the current state and, when pending, the target event id.
func (g *ConfirmationGate) State() (GateState, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state, g.eventID
}

func (g *ConfirmationGate) close() {
	g.state = GateClosed
	g.eventID = ""
}
