package bookref

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	at := time.Unix(1_700_482_913, 0).UTC()

	ref := Format("PB", 7, at)
	assert.Equal(t, "PB-482913-7", ref)
	assert.True(t, Valid(ref))
}

func TestNewIsValidAndPrefixed(t *testing.T) {
	ref := New("HR", 42)
	require.True(t, strings.HasPrefix(ref, "HR-"))
	assert.True(t, Valid(ref))
	assert.True(t, strings.HasSuffix(ref, "-42"))
}

func TestValidRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "PB", "pb-123456-1", "PB-1234567-1", "PB-12a-1", "PB-123456-"} {
		assert.False(t, Valid(s), "expected %q to be rejected", s)
	}
}
