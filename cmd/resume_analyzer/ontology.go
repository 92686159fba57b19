package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/drishanroy/resume-analysis-app/internal/db"
	"github.com/drishanroy/resume-analysis-app/internal/ontology"
	"github.com/drishanroy/resume-analysis-app/internal/schemas"
	schemafiles "github.com/drishanroy/resume-analysis-app/schemas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ontologyCmd = &cobra.Command{
	Use:   "ontology",
	Short: "Inspect and publish the skill ontology",
}

var ontologyValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate an ontology file, or the built-in ontology when no path is given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOntologyValidate,
}

var ontologyPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Store an ontology in PostgreSQL",
	Long:  `Store the built-in ontology, or the one in --file, in PostgreSQL so services started with ontology.source=postgres load it.`,
	Args:  cobra.NoArgs,
	RunE:  runOntologyPush,
}

var ontologyFile string

func init() {
	ontologyPushCmd.Flags().StringVar(&ontologyFile, "file", "", "ontology JSON file (defaults to the built-in ontology)")

	ontologyCmd.AddCommand(ontologyValidateCmd)
	ontologyCmd.AddCommand(ontologyPushCmd)
	rootCmd.AddCommand(ontologyCmd)
}

// readOntology loads path, or the embedded ontology when path is empty.
func readOntology(path string) (*ontology.Ontology, error) {
	if path == "" {
		return ontology.Default()
	}
	if err := schemas.ValidateFile(schemafiles.Ontology, path); err != nil {
		return nil, err
	}
	return ontology.LoadFile(path)
}

func describeOntology(w io.Writer, name string, ont *ontology.Ontology) {
	fmt.Fprintf(w, "%s: %d buckets, %d synonyms, %d action verbs\n",
		name, len(ont.Buckets()), ont.SynonymCount(), len(ont.ActionVerbs()))
}

func runOntologyValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	ont, err := readOntology(path)
	if err != nil {
		return err
	}
	name := path
	if name == "" {
		name = "built-in ontology"
	}
	describeOntology(cmd.OutOrStdout(), name, ont)
	return nil
}

func runOntologyPush(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Database.URL == "" {
		return errors.New("database.url is required")
	}

	ont, err := readOntology(ontologyFile)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := database.SaveOntology(ctx, ont); err != nil {
		return err
	}

	logger.Info("ontology stored", zap.Int("buckets", len(ont.Buckets())), zap.Int("synonyms", ont.SynonymCount()))
	describeOntology(cmd.OutOrStdout(), "stored", ont)
	return nil
}
