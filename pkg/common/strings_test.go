package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIntoLines(t *testing.T) {
	assert.Equal(t, []string{"a bb", "ccc", "d"}, SplitIntoLines("a bb ccc d", 4))
	assert.Equal(t, []string{"verylongword", "x"}, SplitIntoLines("verylongword x", 4))
	assert.Nil(t, SplitIntoLines("   ", 4))
}
