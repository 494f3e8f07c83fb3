package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// validateCmd checks a knowledge base without running inference
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the knowledge base",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kb, source, err := loadKnowledgeBase()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d symptoms, %d rules\n", source, len(kb.Symptoms), len(kb.Rules))
		return nil
	},
}

// symptomsCmd lists the symptoms a user can report
var symptomsCmd = &cobra.Command{
	Use:   "symptoms",
	Short: "List the symptoms of the knowledge base",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kb, _, err := loadKnowledgeBase()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tMB\tMD\tBASE CF\tNAME")
		for _, s := range kb.Symptoms {
			fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%s\n", s.Code, s.MB, s.MD, s.BaseCF(), s.Name)
		}
		return w.Flush()
	},
}
