package constraint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatRejectsBadRegex(t *testing.T) {
	_, err := NewFormat("email", Regex("(unterminated"), 0.9, FormatOptions{})
	assert.Error(t, err)
}

func TestFormatEmailEvaluateSuccess(t *testing.T) {
	f, err := NewFormat("email", Email(), 0.9, FormatOptions{})
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"matches", "total"}, row(float64(90), float64(100))))
	res, err := f.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
}

func TestFormatCreditCardDetectOnlyInvertsThreshold(t *testing.T) {
	f, err := NewFormat("note", CreditCard(true), 0.1, FormatOptions{})
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"matches", "total"}, row(float64(50), float64(100))))
	res, err := f.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)

	sess2 := sessionOf(batch([]string{"matches", "total"}, row(float64(2), float64(100))))
	res2, err := f.Evaluate(context.Background(), sess2)
	require.NoError(t, err)
	assert.Equal(t, Success, res2.Status)
}

func TestFormatSkippedOnEmptyTable(t *testing.T) {
	f, err := NewFormat("email", Email(), 0.9, FormatOptions{})
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"matches", "total"}, row(float64(0), float64(0))))
	res, err := f.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Skipped, res.Status)
}
