package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherDefaults(t *testing.T) {
	m, err := NewMatcher(nil)
	require.NoError(t, err)

	assert.True(t, m.Match("trail.json"))
	assert.True(t, m.Match("logs/2024/01/01/123456789012_CloudTrail_us-east-1_20240101T0000Z_abc.json.gz"))
	assert.False(t, m.Match("logs/readme.md"))
	assert.False(t, m.Match("trail.json.bak"))
}

func TestMatcherCustom(t *testing.T) {
	m, err := NewMatcher([]string{"*_CloudTrail_*", "{a,b}.log"})
	require.NoError(t, err)

	assert.True(t, m.Match("prefix/123_CloudTrail_us-east-1.json.gz"))
	assert.True(t, m.Match("b.log"))
	assert.False(t, m.Match("c.log"))
}
