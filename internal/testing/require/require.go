// Package require is a thin wrapper over testify's require package, kept as
// its own internal package so assertion style stays uniform without every
// _test.go file naming testify directly.
package require

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Equal(t *testing.T, expected, actual any, msgAndArgs ...any) {
	t.Helper()
	require.Equal(t, expected, actual, msgAndArgs...)
}

func NotEqual(t *testing.T, expected, actual any, msgAndArgs ...any) {
	t.Helper()
	require.NotEqual(t, expected, actual, msgAndArgs...)
}

func True(t *testing.T, value bool, msgAndArgs ...any) {
	t.Helper()
	require.True(t, value, msgAndArgs...)
}

func False(t *testing.T, value bool, msgAndArgs ...any) {
	t.Helper()
	require.False(t, value, msgAndArgs...)
}

func NoError(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

func Error(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
}

func Nil(t *testing.T, value any, msgAndArgs ...any) {
	t.Helper()
	require.Nil(t, value, msgAndArgs...)
}
