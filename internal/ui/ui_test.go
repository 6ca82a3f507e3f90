package ui

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestBar(t *testing.T) {
	color.NoColor = true

	assert.Equal(t, "█████░░░░░", Bar(50, 10))
	assert.Equal(t, "██████████", Bar(120, 10))
	assert.Equal(t, "░░░░", Bar(-5, 4))
	assert.Empty(t, Bar(50, 0))
	assert.Equal(t, 10, len([]rune(Bar(33.3, 10))))
}

func TestStatusIcon(t *testing.T) {
	color.NoColor = true

	assert.Equal(t, "✓", StatusIcon(true))
	assert.Equal(t, "✗", StatusIcon(false))
	assert.True(t, strings.Contains(WarnIcon(), "⚠"))
}

func TestSetColor(t *testing.T) {
	color.NoColor = false
	SetColor(false)
	assert.True(t, color.NoColor)
}
