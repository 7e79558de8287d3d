// Package committer applies collected Spanner mutations atomically.
//
// Aggregates change in memory, repositories turn those changes into
// mutations, and use cases collect the mutations into a CommitPlan that is
// applied once at the end:
//
//	product, err := repo.GetByID(ctx, productID)
//	if err := product.Apply(patch, now); err != nil {
//	    return err
//	}
//	plan := committer.NewPlan()
//	mut, err := repo.UpdateMut(product)
//	plan.Add(mut)
//	return c.Apply(ctx, plan)
//
// When the mutation depends on the current row (an embedded review list),
// ApplyInTransaction reads and writes inside one read-write transaction.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan collects mutations to be applied together.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return cp == nil || len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	if cp == nil {
		return 0
	}
	return len(cp.mutations)
}

// RowReader reads single rows. Both read-only and read-write transactions
// satisfy it.
type RowReader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
}

// PlanFunc builds a plan from rows read inside a transaction.
type PlanFunc func(ctx context.Context, reader RowReader) (*CommitPlan, error)

// Applier is implemented by Committer; use cases depend on it.
type Applier interface {
	Apply(ctx context.Context, plan *CommitPlan) error
	ApplyInTransaction(ctx context.Context, fn PlanFunc) error
}

// Committer applies plans against a Spanner database.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply writes the plan in a single blind-write transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ApplyInTransaction runs fn inside a read-write transaction and buffers the
// plan it returns. Spanner may retry fn if the transaction aborts, so fn must
// not have side effects beyond building the plan.
func (c *Committer) ApplyInTransaction(ctx context.Context, fn PlanFunc) error {
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		plan, err := fn(ctx, txn)
		if err != nil {
			return err
		}
		if plan.IsEmpty() {
			return nil
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
