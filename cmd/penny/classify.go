package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/copperwire/penny/internal/model"
)

var (
	categoryStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	degradedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	disclaimerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Categorize a single transaction description",
		Long: `Classify a transaction description through the hybrid engine: the local
fast path answers when confident, the remote service handles the rest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := initRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			description := strings.Join(args, " ")
			result := rt.engine.Categorize(cmd.Context(), description, nil)

			printResult(description, result)
			return nil
		},
	}
	return cmd
}

func printResult(description string, result model.CategorizationResult) {
	fmt.Printf("%s → %s\n", description, categoryStyle.Render(result.Category))
	fmt.Printf("  %s\n", dimStyle.Render(fmt.Sprintf("source=%s tier=%s score=%.2f",
		result.Source, result.Confidence.Tier, result.Confidence.Score)))

	if result.Disclaimer {
		fmt.Printf("  %s\n", disclaimerStyle.Render("⚠ medium confidence, verify before relying on this"))
	}
	if result.Degraded {
		fmt.Printf("  %s\n", degradedStyle.Render("⚠ degraded: remote service unavailable, best local guess"))
	}
	for _, issue := range result.Issues {
		fmt.Printf("  %s\n", dimStyle.Render(fmt.Sprintf("issue: %s (%s)", issue.Code, issue.Detail)))
	}
}
