package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 30))
	assert.Equal(t, strings.Repeat("a", 30), truncate(strings.Repeat("a", 30), 30))
	assert.Equal(t, strings.Repeat("a", 27)+"...", truncate(strings.Repeat("a", 31), 30))
}

func TestTruncate_Multibyte(t *testing.T) {
	// 31 three-byte runes; a byte slice at 27 would split a rune.
	location := strings.Repeat("म", 31)

	got := truncate(location, 30)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("म", 27)+"...", got)
	assert.Equal(t, 30, utf8.RuneCountInString(got))
}
