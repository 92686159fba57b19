// Package ontology holds the read-only skill taxonomy and action-verb vocabulary
// shared by every analysis. An Ontology is built once and never mutated.
package ontology

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/drishanroy/resume-analysis-app/internal/schemas"
	schemafiles "github.com/drishanroy/resume-analysis-app/schemas"
)

//go:embed default_ontology.json
var defaultDocument []byte

// Document is the serialized ontology form.
type Document struct {
	Skills      map[string][]string `json:"skills"`
	ActionVerbs []string            `json:"action_verbs"`
}

// Bucket is one skill category and its synonyms.
type Bucket struct {
	Name     string
	Synonyms []string
}

// Ontology is an immutable skill taxonomy plus action-verb set.
type Ontology struct {
	buckets []Bucket
	verbs   map[string]struct{}
}

// Source produces an ontology, typically once at process start.
type Source interface {
	LoadOntology(ctx context.Context) (*Ontology, error)
}

// LoadError reports an ontology that could not be read or parsed.
type LoadError struct {
	Source string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load ontology from %s: %v", e.Source, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// New builds an Ontology from doc. Buckets are ordered by name and action
// verbs are lowercased. doc is copied, so later changes to it have no effect.
func New(doc Document) *Ontology {
	names := make([]string, 0, len(doc.Skills))
	for name := range doc.Skills {
		names = append(names, name)
	}
	sort.Strings(names)

	o := &Ontology{
		buckets: make([]Bucket, 0, len(names)),
		verbs:   make(map[string]struct{}, len(doc.ActionVerbs)),
	}
	for _, name := range names {
		synonyms := make([]string, len(doc.Skills[name]))
		copy(synonyms, doc.Skills[name])
		o.buckets = append(o.buckets, Bucket{Name: name, Synonyms: synonyms})
	}
	for _, verb := range doc.ActionVerbs {
		if v := strings.ToLower(strings.TrimSpace(verb)); v != "" {
			o.verbs[v] = struct{}{}
		}
	}
	return o
}

// Buckets returns a copy of the skill buckets in name order.
func (o *Ontology) Buckets() []Bucket {
	out := make([]Bucket, len(o.buckets))
	for i, b := range o.buckets {
		synonyms := make([]string, len(b.Synonyms))
		copy(synonyms, b.Synonyms)
		out[i] = Bucket{Name: b.Name, Synonyms: synonyms}
	}
	return out
}

// EachSynonym calls fn for every synonym of every bucket.
func (o *Ontology) EachSynonym(fn func(bucket, synonym string)) {
	for _, b := range o.buckets {
		for _, s := range b.Synonyms {
			fn(b.Name, s)
		}
	}
}

// SynonymCount returns the total number of synonyms across buckets.
func (o *Ontology) SynonymCount() int {
	n := 0
	for _, b := range o.buckets {
		n += len(b.Synonyms)
	}
	return n
}

// IsActionVerb reports whether word, compared case-insensitively, is an action verb.
func (o *Ontology) IsActionVerb(word string) bool {
	_, ok := o.verbs[strings.ToLower(word)]
	return ok
}

// ActionVerbs returns the verb set in sorted order.
func (o *Ontology) ActionVerbs() []string {
	out := make([]string, 0, len(o.verbs))
	for v := range o.verbs {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Document converts the ontology back to its serialized form.
func (o *Ontology) Document() Document {
	doc := Document{
		Skills:      make(map[string][]string, len(o.buckets)),
		ActionVerbs: o.ActionVerbs(),
	}
	for _, b := range o.Buckets() {
		doc.Skills[b.Name] = b.Synonyms
	}
	return doc
}

// Parse validates data against the ontology schema and builds an Ontology.
// source names the origin for error messages.
func Parse(data []byte, source string) (*Ontology, error) {
	if err := schemas.ValidateBytes(schemafiles.Ontology, data); err != nil {
		return nil, &LoadError{Source: source, Cause: err}
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Source: source, Cause: err}
	}
	return New(doc), nil
}

// LoadFile reads and parses an ontology JSON file.
func LoadFile(path string) (*Ontology, error) {
	if path == "" {
		return nil, &LoadError{Source: "file", Cause: fmt.Errorf("ontology path is empty")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Cause: err}
	}
	return Parse(data, path)
}

var (
	defaultOnce sync.Once
	defaultOnt  *Ontology
	defaultErr  error
)

// Default returns the ontology embedded in the binary.
func Default() (*Ontology, error) {
	defaultOnce.Do(func() {
		defaultOnt, defaultErr = Parse(defaultDocument, "embedded")
	})
	return defaultOnt, defaultErr
}

// FileSource loads the ontology from a JSON file.
type FileSource struct {
	Path string
}

// LoadOntology implements Source.
func (s FileSource) LoadOntology(_ context.Context) (*Ontology, error) {
	return LoadFile(s.Path)
}

// EmbeddedSource returns the built-in ontology.
type EmbeddedSource struct{}

// LoadOntology implements Source.
func (EmbeddedSource) LoadOntology(_ context.Context) (*Ontology, error) {
	return Default()
}
