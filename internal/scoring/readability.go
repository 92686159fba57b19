package scoring

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ReadabilityFallback is the readability contribution used when the grade oracle fails.
const ReadabilityFallback = 0.4

// GradeLevel estimates the US school grade needed to read text.
type GradeLevel interface {
	Grade(text string) (float64, error)
}

// Readability maps the oracle's grade to [0, 0.8], peaking for grades 10 to 12.
func Readability(text string, oracle GradeLevel) float64 {
	grade, err := oracle.Grade(text)
	if err != nil {
		return ReadabilityFallback
	}
	if grade >= 10 && grade <= 12 {
		return 0.8
	}
	return math.Max(0, 0.8-math.Abs(11-grade)*0.1)
}

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+`)
	vowelGroups = regexp.MustCompile(`[aeiouy]+`)
)

// FleschKincaid computes the Flesch-Kincaid grade level, rounded to one decimal.
// Text without words yields the formula's intercept.
type FleschKincaid struct{}

// Grade implements GradeLevel.
func (FleschKincaid) Grade(text string) (float64, error) {
	words := lexicon(text)
	if len(words) == 0 {
		return Round(-15.59, 1), nil
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	sentences := 0
	for _, s := range sentenceEnd.Split(text, -1) {
		if len(lexicon(s)) > 0 {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))
	return Round(0.39*wordsPerSentence+11.8*syllablesPerWord-15.59, 1), nil
}

// lexicon returns the lowercase words of text with punctuation removed.
func lexicon(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
				return unicode.ToLower(r)
			}
			return -1
		}, f)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// countSyllables approximates syllables by vowel groups, discounting a silent final e.
func countSyllables(word string) int {
	n := len(vowelGroups.FindAllString(word, -1))
	if n > 1 && strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		n--
	}
	if n < 1 {
		n = 1
	}
	return n
}
