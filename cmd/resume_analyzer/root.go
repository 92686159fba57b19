package main

import (
	"fmt"

	"github.com/drishanroy/resume-analysis-app/internal/config"
	"github.com/drishanroy/resume-analysis-app/internal/server"
	"github.com/spf13/cobra"
)

const app = "resume_analyzer"

var (
	// Used for flags.
	cfgFile string

	v = config.New()

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "Score resumes against a rubric and optional job description",
		Long:          "resume_analyzer scores PDF, DOCX and TXT resumes on a 0-10 rubric, suggests improvements and compares detected skills with a job description.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, server.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	mustBind("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	mustBind("log.json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.AddCommand(versionCmd)
}
