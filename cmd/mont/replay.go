package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/montlabs/mont-core/internal/common"
	"github.com/montlabs/mont-core/internal/model"
	"github.com/montlabs/mont-core/internal/nlp"
	"github.com/montlabs/mont-core/internal/tui"
)

func replayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <transcript-file>",
		Short: "Replay a transcript through the extractor and report accuracy stats",
		Long: `Replay runs every line of a transcript file through the intent and
entity extractor as one continuous conversation, then prints the intent
distribution and mean confidence.

Lines starting with # are skipped. Useful for eyeballing extraction
quality after changing patterns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runReplay(args[0])
		},
	}
	return cmd
}

func runReplay(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open transcript: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}
	if len(lines) == 0 {
		return fmt.Errorf("%w: %s has no messages to replay", common.ErrEmptyInput, path)
	}

	bar := progressbar.NewOptions(len(lines),
		progressbar.OptionSetDescription("Replaying transcript"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	processor := nlp.NewProcessor()
	conv := &model.Context{}

	intentCounts := make(map[model.Intent]int)
	var confidenceSum float64
	var invalid int

	for _, line := range lines {
		result := processor.Process(line, conv)
		intentCounts[result.Intent]++
		confidenceSum += result.Confidence
		if !result.Validation.IsValid {
			invalid++
		} else {
			conv.LastIntent = result.Intent
		}
		_ = bar.Add(1)
	}

	fmt.Println(tui.TitleStyle.Render("Replay results"))
	fmt.Printf("Messages:         %d\n", len(lines))
	fmt.Printf("Mean confidence:  %.2f\n", confidenceSum/float64(len(lines)))
	fmt.Printf("Needing recovery: %d\n", invalid)
	fmt.Println("\nIntent distribution:")
	for _, intent := range model.AllIntents {
		if count := intentCounts[intent]; count > 0 {
			fmt.Printf("  %-18s %d\n", intent, count)
		}
	}
	if count := intentCounts[model.IntentUnknown]; count > 0 {
		fmt.Printf("  %-18s %d\n", model.IntentUnknown, count)
	}
	return nil
}
