package console_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnsim/core/internal/console"
)

func TestPrintRoutesByErrorFlag(t *testing.T) {
	var out, errBuf bytes.Buffer
	sink := console.New(&out, &errBuf)

	sink.Print("hello", false)
	sink.Print("oops", true)

	require.Equal(t, "hello", out.String())
	require.Equal(t, "oops", errBuf.String())
}

func TestNewDefaultsNilWritersToDiscard(t *testing.T) {
	sink := console.New(nil, nil)
	require.NotPanics(t, func() {
		sink.Print("whatever", false)
		sink.Print("whatever", true)
	})
}
