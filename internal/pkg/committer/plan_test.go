package committer

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(nil)
	assert.Equal(t, 0, plan.Count())

	plan.Add(spanner.Delete("products", spanner.Key{"p1"}))
	plan.Add(spanner.Delete("products", spanner.Key{"p2"}))
	assert.False(t, plan.IsEmpty())
	assert.Equal(t, 2, plan.Count())
	assert.Len(t, plan.Mutations(), 2)
}

func TestCommitPlan_NilIsEmpty(t *testing.T) {
	var plan *CommitPlan
	assert.True(t, plan.IsEmpty())
	assert.Equal(t, 0, plan.Count())
}
