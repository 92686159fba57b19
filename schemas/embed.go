// Package schemas embeds the JSON Schemas shipped with the service.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var files embed.FS

// Schema file names.
const (
	Ontology       = "ontology.schema.json"
	AnalysisResult = "analysis_result.schema.json"
)

// Read returns the raw content of an embedded schema.
func Read(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", name, err)
	}
	return data, nil
}

// Names lists the embedded schema files.
func Names() []string {
	return []string{Ontology, AnalysisResult}
}
