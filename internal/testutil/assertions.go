package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireNoError is the one-line failure-with-message wrapper diwire's own
// tests lean on, mirroring the container library's testutil helpers of the
// same shape.
func RequireNoError(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// RequireError requires err to be non-nil.
func RequireError(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
}
