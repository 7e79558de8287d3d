// Package catalogtest provides in-memory stand-ins for the catalog's Spanner
// repositories, read models and committer.
//
// Repositories hand out real *spanner.Mutation values and register what each
// one does on a shared Ledger. The Ledger implements committer.Applier and
// runs the registered effects when a plan is applied, so a mutation becomes
// visible to readers only after a successful commit.
package catalogtest

import (
	"context"
	"errors"
	"sync"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/shopcat-service/internal/pkg/committer"
)

// ErrInjected is returned by stores and the ledger when a failure is armed.
var ErrInjected = errors.New("injected failure")

// Ledger applies commit plans against the in-memory stores.
type Ledger struct {
	mu      sync.Mutex
	effects map[*spanner.Mutation]func()
	applied int
	failErr error
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{effects: make(map[*spanner.Mutation]func())}
}

var _ committer.Applier = (*Ledger)(nil)

func (l *Ledger) register(mut *spanner.Mutation, effect func()) *spanner.Mutation {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.effects[mut] = effect
	return mut
}

// FailNext makes the next Apply or ApplyInTransaction return err.
func (l *Ledger) FailNext(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failErr = err
}

// Applied returns the number of committed plans.
func (l *Ledger) Applied() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applied
}

// Apply runs the effect of every mutation in the plan.
func (l *Ledger) Apply(_ context.Context, plan *committer.CommitPlan) error {
	l.mu.Lock()
	if err := l.failErr; err != nil {
		l.failErr = nil
		l.mu.Unlock()
		return err
	}
	if plan.IsEmpty() {
		l.mu.Unlock()
		return nil
	}

	effects := make([]func(), 0, plan.Count())
	for _, mut := range plan.Mutations() {
		if effect, ok := l.effects[mut]; ok {
			effects = append(effects, effect)
			delete(l.effects, mut)
		}
	}
	l.applied++
	l.mu.Unlock()

	for _, effect := range effects {
		effect()
	}
	return nil
}

// ApplyInTransaction builds the plan with a nil reader; the in-memory stores
// ignore it.
func (l *Ledger) ApplyInTransaction(ctx context.Context, fn committer.PlanFunc) error {
	l.mu.Lock()
	if err := l.failErr; err != nil {
		l.failErr = nil
		l.mu.Unlock()
		return err
	}
	l.mu.Unlock()

	plan, err := fn(ctx, nil)
	if err != nil {
		return err
	}
	return l.Apply(ctx, plan)
}
