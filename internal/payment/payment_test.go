package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	assert.Equal(t, StatusPending, Derive(10000, 0))
	assert.Equal(t, StatusPartial, Derive(10000, 2500))
	assert.Equal(t, StatusPaid, Derive(10000, 10000))
	assert.Equal(t, StatusPaid, Derive(0, 0))
}

func TestApply(t *testing.T) {
	paid, status, err := Apply(10000, 0, 4000)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), paid)
	assert.Equal(t, StatusPartial, status)

	paid, status, err = Apply(10000, 4000, 6000)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), paid)
	assert.Equal(t, StatusPaid, status)
}

func TestApplyRejectsBadAmounts(t *testing.T) {
	_, _, err := Apply(10000, 0, 0)
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, _, err = Apply(10000, 9000, 2000)
	assert.ErrorIs(t, err, ErrOverpayment)
}

func TestSettled(t *testing.T) {
	assert.True(t, Settled(StatusPaid))
	assert.True(t, Settled(StatusRefunded))
	assert.False(t, Settled(StatusPending))
	assert.False(t, Settled(StatusPartial))
}
