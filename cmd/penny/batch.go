package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Categorize a file of transaction descriptions",
		Long: `Read newline-separated transaction descriptions from a file and classify
them concurrently. Blank lines and lines starting with # are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptions, err := readDescriptions(args[0])
			if err != nil {
				return err
			}
			if len(descriptions) == 0 {
				fmt.Println("nothing to classify")
				return nil
			}

			rt, err := initRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			bar := progressbar.NewOptions(len(descriptions),
				progressbar.OptionSetDescription("classifying"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			// Chunked so the bar advances between batches.
			chunkSize := viper.GetInt("batch.chunk_size")
			if chunkSize <= 0 {
				chunkSize = 20
			}

			degraded := 0
			for start := 0; start < len(descriptions); start += chunkSize {
				end := min(start+chunkSize, len(descriptions))
				chunk := descriptions[start:end]

				results := rt.engine.CategorizeBatch(cmd.Context(), chunk, nil)
				for i, result := range results {
					if result.Degraded {
						degraded++
					}
					printResult(chunk[i], result)
				}
				_ = bar.Add(len(chunk))
			}
			_ = bar.Finish()

			stats := rt.cache.Stats()
			fmt.Printf("\n%d classified, %d degraded, cache %d/%d hit/miss\n",
				len(descriptions), degraded, stats.Hits, stats.Misses)
			return nil
		},
	}
	cmd.Flags().Int("chunk-size", 20, "descriptions classified per progress tick")
	_ = viper.BindPFlag("batch.chunk_size", cmd.Flags().Lookup("chunk-size"))
	return cmd
}

func readDescriptions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var descriptions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		descriptions = append(descriptions, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return descriptions, nil
}
