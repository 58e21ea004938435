package automaxprocs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitUndo(t *testing.T) {
	require.NoError(t, Init())
	assert.Positive(t, Value())
	assert.Equal(t, Value(), Current())
	assert.Equal(t, initialMaxProcs, Undo())
}
