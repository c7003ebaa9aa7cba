package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/codementor/internal/analysis"
	"github.com/dgallion1/codementor/internal/source"
)

var (
	analyzeDocs     string
	analyzeDocsFile string
	analyzeQuestion string
	analyzeOld      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file-or-zip>",
	Short: "Analyze a local source file or zip archive and print JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := readLocal(args[0])
		if err != nil {
			return err
		}
		req := analysis.Request{
			Input:    source.Bundle{File: code},
			Docs:     analyzeDocs,
			Question: analyzeQuestion,
		}
		if analyzeDocsFile != "" {
			if req.DocsFile, err = readLocal(analyzeDocsFile); err != nil {
				return err
			}
		}
		if analyzeOld != "" {
			old, err := os.ReadFile(analyzeOld)
			if err != nil {
				return fmt.Errorf("read old code: %w", err)
			}
			req.OldCode = string(old)
		}

		ctx := cmd.Context()
		_, gw, err := loadGateway(ctx)
		if err != nil {
			return err
		}
		result, err := analysis.NewOrchestrator(gw, log).Analyze(ctx, req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDocs, "docs", "", "Documentation text used as context")
	analyzeCmd.Flags().StringVar(&analyzeDocsFile, "docs-file", "", "Documentation file (pdf, docx, md, html, csv, txt)")
	analyzeCmd.Flags().StringVarP(&analyzeQuestion, "question", "q", "", "Question for the mentor")
	analyzeCmd.Flags().StringVar(&analyzeOld, "old", "", "Previous version of the code for a compatibility check")
}

func readLocal(path string) (*source.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &source.File{Name: filepath.Base(path), Data: data}, nil
}
