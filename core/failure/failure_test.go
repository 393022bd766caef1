package failure

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	kindA Kind = "KindA"
	kindB Kind = "KindB"
)

func TestFailure(t *testing.T) {
	t.Run("matches kind", func(t *testing.T) {
		err := New(kindA, "bad thing %d", 1)
		require.True(t, errors.Is(err, kindA))
		require.False(t, errors.Is(err, kindB))
		require.Equal(t, "KindA", err.Name())
		require.Equal(t, "bad thing 1", err.Error())
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(kindB, "inner"))
		require.True(t, errors.Is(err, kindB))
		require.Equal(t, "outer: inner", err.Error())
	})

	t.Run("wraps cause", func(t *testing.T) {
		err := Wrap(kindA, io.ErrUnexpectedEOF, "reading")
		require.True(t, errors.Is(err, kindA))
		require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
		require.Equal(t, "reading: unexpected EOF", err.Error())
	})

	t.Run("records stack", func(t *testing.T) {
		err := New(kindA, "here")
		require.Contains(t, err.Stack(), "TestFailure")
	})

	t.Run("kind is an error", func(t *testing.T) {
		require.Equal(t, "KindA", kindA.Error())
		require.True(t, errors.Is(kindA, kindA))
	})
}
