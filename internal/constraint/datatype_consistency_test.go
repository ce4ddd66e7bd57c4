package constraint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataTypeConsistencyAllIntegersSucceeds(t *testing.T) {
	d, err := NewDataTypeConsistency("qty", 0.9)
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"v"},
		row("1"), row("2"), row("3"), row("4"), row("5"),
		row("6"), row("7"), row("8"), row("9"), row("10"),
	))
	res, err := d.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
}

func TestDataTypeConsistencySkippedWhenNoSamples(t *testing.T) {
	d, err := NewDataTypeConsistency("qty", 0.9)
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"v"}))
	res, err := d.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Skipped, res.Status)
}

func TestDataTypeConsistencyRejectsBadThreshold(t *testing.T) {
	_, err := NewDataTypeConsistency("qty", 2.0)
	assert.Error(t, err)
}
