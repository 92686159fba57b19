package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBullets(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "dash marker stripped",
			input:    "- Built a dashboard reducing load time by 40%",
			expected: []string{"Built a dashboard reducing load time by 40%"},
		},
		{
			name:     "bullet glyph and star",
			input:    "• Led a team\n* Shipped v2",
			expected: []string{"Led a team", "Shipped v2"},
		},
		{
			name:     "no marker",
			input:    "Designed the schema",
			expected: []string{"Designed the schema"},
		},
		{
			name:     "lowercase start skipped",
			input:    "- built something\nwrote docs",
			expected: []string{},
		},
		{
			name:     "leading indentation blocks match",
			input:    "  - Indented bullet",
			expected: []string{},
		},
		{
			name:     "trailing spaces trimmed",
			input:    "Improved latency   ",
			expected: []string{"Improved latency"},
		},
		{
			name:     "empty",
			input:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Bullets(tt.input))
		})
	}
}

func TestBullets_CapturesAtMost201Characters(t *testing.T) {
	line := "A" + strings.Repeat("b", 300)
	got := Bullets(line)

	assert.Len(t, got, 1)
	assert.Len(t, got[0], 201)
}

func TestHasMetric(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"reduced load time by 40%", true},
		{"improved accuracy by 3.5%", true},
		{"cut latency to 120 ms", true},
		{"cut latency to 120ms", false},
		{"processed 2 million rows", true},
		{"3 x throughput", true},
		{"3x throughput", false},
		{"saved 5 days per sprint", true},
		{"served 10 k users", true},
		{"built a dashboard", false},
		{"version2 shipped", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasMetric(tt.input))
		})
	}
}

func TestFirstWord(t *testing.T) {
	assert.Equal(t, "Built", FirstWord("  Built a thing"))
	assert.Equal(t, "", FirstWord("   "))
}
