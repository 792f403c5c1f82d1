package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/copperwire/penny/internal/model"
)

func askCmd() *cobra.Command {
	var modeName string
	var facts []string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the remote service about your finances",
		Long: `Send a free-form question through the resilient remote path. Responses are
validated before display; aggregate claims are checked against --fact values.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := model.ParseRequestMode(modeName)
			if err != nil {
				return err
			}
			if mode.Structured() {
				return fmt.Errorf("mode %q returns structured labels; use classify instead", mode)
			}

			sourceFacts, err := parseFacts(facts)
			if err != nil {
				return err
			}

			rt, err := initRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			req := model.NewClassificationRequest(mode, strings.Join(args, " "), sourceFacts)
			result := rt.brain.Classify(cmd.Context(), req)

			if result.Degraded {
				fmt.Println(degradedStyle.Render(fmt.Sprintf("⚠ remote service unavailable (%s), try again later", result.Reason)))
				for _, issue := range result.Issues {
					fmt.Printf("  %s\n", dimStyle.Render(fmt.Sprintf("issue: %s (%s)", issue.Code, issue.Detail)))
				}
				return nil
			}

			fmt.Println(result.Content)
			if result.FromCache {
				fmt.Println(dimStyle.Render("(cached)"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", "chat", "request mode (chat, analyze)")
	cmd.Flags().StringArrayVar(&facts, "fact", nil, "trusted source fact as key=value (e.g. total=162.73)")
	return cmd
}

// parseFacts converts key=value flags into the source-fact map.
func parseFacts(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	facts := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid fact %q, expected key=value", pair)
		}
		facts[key] = value
	}
	return facts, nil
}
