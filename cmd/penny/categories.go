package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/copperwire/penny/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the category taxonomy",
		RunE: func(cmd *cobra.Command, args []string) error {
			taxonomy := model.DefaultTaxonomy()

			fmt.Println(headerStyle.Render("Categories"))
			fmt.Println()
			for _, category := range taxonomy.Categories() {
				fmt.Printf("  %-18s %s\n",
					category.Name,
					typeStyle.Render(string(category.Type)))
				if category.Description != "" {
					fmt.Printf("  %-18s %s\n", "", dimStyle.Render(category.Description))
				}
			}
			fmt.Println()
			fmt.Printf("%d categories\n", len(taxonomy.Categories()))
			return nil
		},
	}
}
