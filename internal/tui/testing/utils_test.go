package testing_test

import (
	"testing"

	tuitest "github.com/Veraticus/fino/internal/tui/testing"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "hello", tuitest.StripANSI("\x1b[1;38;5;6mhello\x1b[0m"))
	assert.Equal(t, "plain", tuitest.StripANSI("plain"))
	assert.Equal(t, "x", tuitest.StripANSI("\x1b[?25hx"))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", tuitest.NormalizeWhitespace("  a \n\t b   c "))
}

func TestContainsInOrder(t *testing.T) {
	assert.True(t, tuitest.ContainsInOrder("Date Description Amount", "Date", "Amount"))
	assert.False(t, tuitest.ContainsInOrder("Date Description Amount", "Amount", "Date"))
}
