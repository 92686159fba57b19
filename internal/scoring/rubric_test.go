package scoring

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcision(t *testing.T) {
	longBullet := "Built " + strings.Repeat("word ", 28)

	assert.Equal(t, noBulletConcision, Concision("all lowercase text"))
	assert.InDelta(t, 0.7, Concision("- Built things\n- Led people"), 1e-9)
	assert.InDelta(t, 0.35, Concision("- Built things\n- "+longBullet), 1e-9)
	assert.InDelta(t, 0.0, Concision(longBullet), 1e-9)
}

func TestTenseBalance(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0.5},
		{"only past", "Worked and walked", 0.5},
		{"one of each", "worked testing", 0.4},
		{"suffix proxy counts nouns", "morning spring", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TenseBalance(tt.text), 1e-9)
		})
	}
}

func TestClarity(t *testing.T) {
	tests := []struct {
		name   string
		oracle fixedGrade
		want   float64
	}{
		{"ideal grade", fixedGrade{grade: 11}, 1.6},
		{"unreadable grade", fixedGrade{grade: 30}, 0.8},
		{"oracle failure", fixedGrade{err: errors.New("boom")}, 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clarity("", tt.oracle))
		})
	}
}

func TestClarity_Capped(t *testing.T) {
	text := "- Built things\n- Led people"
	assert.LessOrEqual(t, Clarity(text, fixedGrade{grade: 11}), MaxClarity)
}

func TestStructureATS(t *testing.T) {
	t.Run("long document with skills header", func(t *testing.T) {
		text := "Skills\n" + strings.Repeat("- item\n", 6)
		text += strings.Repeat("x", 20000-len(text))
		assert.Equal(t, 20000, len(text))

		score, reasons := StructureATS(text)
		assert.Equal(t, 1.1, score)
		assert.Equal(t, []string{ReasonTooLong}, reasons)
	})

	t.Run("empty text", func(t *testing.T) {
		score, reasons := StructureATS("")
		assert.Equal(t, 0.9, score)
		assert.Equal(t, []string{ReasonFewBullets, ReasonNoHeaderHints}, reasons)
	})

	t.Run("every penalty", func(t *testing.T) {
		score, reasons := StructureATS("a\tb" + strings.Repeat("y", 18000))
		assert.Equal(t, 0.2, score)
		assert.Equal(t, []string{ReasonTooLong, ReasonTabs, ReasonFewBullets, ReasonNoHeaderHints}, reasons)
	})

	t.Run("clean resume", func(t *testing.T) {
		text := "Experience\n• a\n• b\n• c\n- d\n- e"
		score, reasons := StructureATS(text)
		assert.Equal(t, 1.5, score)
		assert.Empty(t, reasons)
	})

	t.Run("length counts characters not bytes", func(t *testing.T) {
		text := "Skills - - - - - " + strings.Repeat("é", 17000)
		_, reasons := StructureATS(text)
		assert.NotContains(t, reasons, ReasonTooLong)
	})
}

func TestProjectsEvidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"problem only", "The challenge was scale", 0.3},
		{"problem and approach", "Goal: cut cost. Approach: rewrite", 0.6},
		{"all three", "Problem: slow reports. Stack: Go. Result: 40% faster", 1.0},
		{"case insensitive", "METHOD", 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectsEvidence(tt.text))
		})
	}
}

func TestHygiene(t *testing.T) {
	padding := strings.Repeat("a", 500)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"complete", "jane@example.com +15551234567 " + padding, 0.5},
		{"no phone", "jane@example.com " + padding, 0.4},
		{"no email", "+15551234567 " + padding, 0.3},
		{"short with contact", "jane@example.com 5551234567", 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hygiene(tt.text))
		})
	}
}

func TestSkillAlignment(t *testing.T) {
	assert.Equal(t, 0.0, SkillAlignment(0))
	assert.Equal(t, 0.6, SkillAlignment(3))
	assert.Equal(t, 2.0, SkillAlignment(10))
	assert.Equal(t, 2.0, SkillAlignment(25))
	assert.Equal(t, 0.0, SkillAlignment(-1))

	prev := 0.0
	for n := 0; n <= 15; n++ {
		got := SkillAlignment(n)
		assert.GreaterOrEqual(t, got, prev, "non-decreasing at %d", n)
		assert.LessOrEqual(t, got, MaxSkillAlignment)
		prev = got
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.12, Round(0.125, 2), "exact ties round to even")
	assert.Equal(t, 2.67, Round(2.675, 2), "binary value of 2.675 is below the tie")
	assert.Equal(t, 1.1, Round(1.5-0.4, 2))
	assert.Equal(t, 0.0, Round(-0.0001, 2))
	assert.False(t, math.Signbit(Round(-0.0001, 2)))
}
