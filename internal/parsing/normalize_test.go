package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Python", "python"},
		{"keeps plus signs", "C++", "c++"},
		{"keeps hash", "C#", "c#"},
		{"keeps dots", "Node.js", "node.js"},
		{"replaces punctuation with spaces", "Power-BI", "power bi"},
		{"trims surrounding noise", "  (Docker), ", "docker"},
		{"inner runs are not collapsed", "a//b", "a  b"},
		{"non ascii letters become spaces", "café", "caf"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestDocumentTokens(t *testing.T) {
	tokens := DocumentTokens("Built APIs with Python/SQL and C++, deployed on Docker.")

	for _, want := range []string{"built", "apis", "python", "sql", "docker", "c"} {
		assert.True(t, tokens.Contains(want), "expected token %q", want)
	}
	assert.False(t, tokens.Contains("c++"), "word splitting drops the plus signs")
	assert.False(t, tokens.Contains("Python"))
}

func TestDocumentTokens_Underscore(t *testing.T) {
	tokens := DocumentTokens("scikit_learn")
	assert.True(t, tokens.Contains("scikit learn"))
}

func TestWhitespaceTokens(t *testing.T) {
	tokens := WhitespaceTokens("Must know Docker, Airflow and python/sql.")

	assert.True(t, tokens.Contains("docker"))
	assert.True(t, tokens.Contains("airflow"))
	assert.True(t, tokens.Contains("python sql."))
	assert.False(t, tokens.Contains("python"))
}
