package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextProvider(t *testing.T) {
	p := NewContextProvider()

	t.Run("no user", func(t *testing.T) {
		_, err := p.CurrentUserID(context.Background())
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("blank user", func(t *testing.T) {
		_, err := p.CurrentUserID(WithUserID(context.Background(), ""))
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("attached user", func(t *testing.T) {
		id, err := p.CurrentUserID(WithUserID(context.Background(), "u-42"))
		require.NoError(t, err)
		assert.Equal(t, "u-42", id)
	})
}
