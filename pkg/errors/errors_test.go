package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndCode(t *testing.T) {
	base := errors.New("disk full")
	err := Wrap(CodeStorage, "save tile failed", base)

	require.Equal(t, "save tile failed: disk full", err.Error())
	require.True(t, IsCode(err, CodeStorage))
	require.ErrorIs(t, err, base)

	outer := fmt.Errorf("handler: %w", err)
	require.Equal(t, CodeStorage, CodeOf(outer))
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(CodeNotFound, "region not found", nil)
	require.Equal(t, "region not found", err.Error())
	require.False(t, IsCode(err, CodeInvalidInput))
	require.Empty(t, CodeOf(errors.New("plain")))
}
