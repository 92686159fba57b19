package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSections(t *testing.T) {
	text := strings.Join([]string{
		"Jane Doe",
		"jane@example.com",
		"",
		"EXPERIENCE",
		"- Built a dashboard reducing load time by 40%",
		"  - Led migration to Docker  ",
		"",
		"Projects",
		"Resume parser in Go",
		"Skills",
		"Python, SQL, Docker",
	}, "\n")

	sections := DetectSections(text)

	assert.Equal(t, []string{"summary", "experience", "projects", "skills"}, sections.Names())
	assert.Equal(t, "Jane Doe\njane@example.com", sections.Get(SectionSummary))
	assert.Equal(t, "- Built a dashboard reducing load time by 40%\n- Led migration to Docker", sections.Get(SectionExperience))
	assert.Equal(t, "Resume parser in Go", sections.Get(SectionProjects))
	assert.Equal(t, "Python, SQL, Docker", sections.Get(SectionSkills))
	assert.False(t, sections.Has(SectionEducation))
	assert.Equal(t, "", sections.Get(SectionEducation))
}

func TestDetectSections_NoHeaders(t *testing.T) {
	sections := DetectSections("Just a paragraph of text\nwith two lines")

	assert.Equal(t, 1, sections.Len())
	assert.Equal(t, "Just a paragraph of text\nwith two lines", sections.Get(SectionSummary))
}

func TestDetectSections_LongLineIsNotHeader(t *testing.T) {
	long := "I have extensive experience building distributed data platforms"
	sections := DetectSections(long)

	assert.False(t, sections.Has(SectionExperience))
	assert.Equal(t, long, sections.Get(SectionSummary))
}

func TestDetectSections_HintPrecedence(t *testing.T) {
	// "work experience" contains both hints; experience is checked first.
	sections := DetectSections("Work Experience\n- Shipped things")

	assert.True(t, sections.Has(SectionExperience))
	assert.False(t, sections.Has(SectionWork))
}

func TestDetectSections_HeaderOnlySectionIsOmitted(t *testing.T) {
	sections := DetectSections("Projects\nSkills\nGo")

	assert.False(t, sections.Has(SectionProjects))
	assert.True(t, sections.Has(SectionSkills))
}

func TestDetectSections_BlankLinesCountAsContent(t *testing.T) {
	sections := DetectSections("Projects\n\nSkills\nGo")

	assert.True(t, sections.Has(SectionProjects))
	assert.Equal(t, "", sections.Get(SectionProjects))
}

func TestDetectSections_Empty(t *testing.T) {
	sections := DetectSections("")
	assert.Equal(t, 0, sections.Len())
	assert.Empty(t, sections.Names())
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"unix", "a\nb", []string{"a", "b"}},
		{"windows", "a\r\nb", []string{"a", "b"}},
		{"old mac", "a\rb", []string{"a", "b"}},
		{"trailing newline", "a\n", []string{"a"}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
		{"form feed", "a\fb", []string{"a", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLines(tt.input))
		})
	}
}

func TestContainsHeaderHint(t *testing.T) {
	assert.True(t, ContainsHeaderHint("My SKILLS include"))
	assert.False(t, ContainsHeaderHint("nothing relevant here"))
}
