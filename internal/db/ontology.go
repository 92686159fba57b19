package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/drishanroy/resume-analysis-app/internal/ontology"
	"github.com/drishanroy/resume-analysis-app/internal/schemas"
	schemafiles "github.com/drishanroy/resume-analysis-app/schemas"
)

// ErrEmptyOntology is returned when the ontology tables hold no skills.
var ErrEmptyOntology = errors.New("ontology tables are empty")

const ontologySource = "postgres"

// LoadOntology reads the ontology tables. It implements ontology.Source.
func (db *DB) LoadOntology(ctx context.Context) (*ontology.Ontology, error) {
	doc, err := db.loadOntologyDocument(ctx)
	if err != nil {
		return nil, &ontology.LoadError{Source: ontologySource, Cause: err}
	}
	if len(doc.Skills) == 0 {
		return nil, &ontology.LoadError{Source: ontologySource, Cause: ErrEmptyOntology}
	}
	if err := schemas.ValidateValue(schemafiles.Ontology, doc); err != nil {
		return nil, &ontology.LoadError{Source: ontologySource, Cause: err}
	}
	return ontology.New(doc), nil
}

func (db *DB) loadOntologyDocument(ctx context.Context) (ontology.Document, error) {
	doc := ontology.Document{
		Skills:      map[string][]string{},
		ActionVerbs: []string{},
	}

	rows, err := db.pool.Query(ctx,
		`SELECT bucket, synonym FROM ontology_skills ORDER BY bucket, position`)
	if err != nil {
		return doc, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var bucket, synonym string
		if err := rows.Scan(&bucket, &synonym); err != nil {
			return doc, fmt.Errorf("failed to scan skill: %w", err)
		}
		doc.Skills[bucket] = append(doc.Skills[bucket], synonym)
	}
	if err := rows.Err(); err != nil {
		return doc, fmt.Errorf("failed to read skills: %w", err)
	}

	verbRows, err := db.pool.Query(ctx, `SELECT verb FROM ontology_action_verbs ORDER BY verb`)
	if err != nil {
		return doc, fmt.Errorf("failed to query action verbs: %w", err)
	}
	defer verbRows.Close()
	for verbRows.Next() {
		var verb string
		if err := verbRows.Scan(&verb); err != nil {
			return doc, fmt.Errorf("failed to scan action verb: %w", err)
		}
		doc.ActionVerbs = append(doc.ActionVerbs, verb)
	}
	if err := verbRows.Err(); err != nil {
		return doc, fmt.Errorf("failed to read action verbs: %w", err)
	}

	return doc, nil
}

// SaveOntology replaces the stored ontology with ont in one transaction.
func (db *DB) SaveOntology(ctx context.Context, ont *ontology.Ontology) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM ontology_skills`); err != nil {
		return fmt.Errorf("failed to clear skills: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM ontology_action_verbs`); err != nil {
		return fmt.Errorf("failed to clear action verbs: %w", err)
	}

	for _, bucket := range ont.Buckets() {
		for i, synonym := range bucket.Synonyms {
			_, err := tx.Exec(ctx,
				`INSERT INTO ontology_skills (bucket, position, synonym) VALUES ($1, $2, $3)`,
				bucket.Name, i, synonym,
			)
			if err != nil {
				return fmt.Errorf("failed to insert skill %s/%s: %w", bucket.Name, synonym, err)
			}
		}
	}
	for _, verb := range ont.ActionVerbs() {
		if _, err := tx.Exec(ctx, `INSERT INTO ontology_action_verbs (verb) VALUES ($1)`, verb); err != nil {
			return fmt.Errorf("failed to insert action verb %s: %w", verb, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ontology: %w", err)
	}
	return nil
}
