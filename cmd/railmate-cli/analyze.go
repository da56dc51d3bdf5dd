package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"railmate/internal/ai"
	"railmate/internal/config"
	"railmate/internal/infra"
	"railmate/internal/modules/booking"
)

type analyzeFlags struct {
	req     booking.AnalyzeRequest
	asJSON  bool
	verbose bool
}

func newAnalyzeCmd() *cobra.Command {
	var f analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one booking analysis with the configured provider",
		Example: `  railmate-cli analyze --from "Mumbai Central" --to "New Delhi" --date 2025-12-01 \
      --passengers 2 --class 3A --priority confirmation`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVar(&f.req.Source, "from", "", "source station")
	cmd.Flags().StringVar(&f.req.Destination, "to", "", "destination station")
	cmd.Flags().StringVar(&f.req.TravelDate, "date", "", "travel date, e.g. 2025-12-01")
	cmd.Flags().Float64Var(&f.req.PassengerCount, "passengers", 1, "number of passengers (1-6)")
	cmd.Flags().StringVar(&f.req.TravelClass, "class", string(booking.ClassThirdAC), "travel class: 1A, 2A, 3A, SL or 2S")
	cmd.Flags().StringVar(&f.req.Priority, "priority", string(booking.PriorityConfirmation), "priority: time, confirmation or cost")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log pipeline details to stderr")
	return cmd
}

func runAnalyze(ctx context.Context, out io.Writer, f analyzeFlags) error {
	q, err := booking.Validate(f.req)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if f.verbose {
		if logger, err = infra.NewLogger(false, "debug"); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	provider, closeProvider, err := ai.NewProvider(ctx, ai.ProviderConfig{
		Provider:      cfg.AI.Provider,
		OpenAIKey:     cfg.AI.OpenAIKey,
		OpenAIBaseURL: cfg.AI.OpenAIBaseURL,
		OpenAIModel:   cfg.AI.OpenAIModel,
		GeminiKey:     cfg.AI.GeminiKey,
		GeminiModel:   cfg.AI.GeminiModel,
		Temperature:   cfg.AI.Temperature,
		MaxTokens:     cfg.AI.MaxTokens,
	})
	if err != nil {
		return err
	}
	defer closeProvider()

	svc := booking.NewService(provider, logger, booking.WithTimeout(cfg.AI.Timeout))
	res, err := svc.Analyze(ctx, q)
	if errors.Is(err, ai.ErrNotConfigured) {
		msg, _ := booking.ConfigurationPlaceholder(provider.Info())
		return errors.New(msg)
	}
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printSections(out, res)
	return nil
}

func printSections(out io.Writer, res booking.AnalysisResult) {
	for i, s := range res.Sections() {
		fmt.Fprintf(out, "%d. %s\n", i+1, s.Title)
		body := s.Body
		if body == "" {
			body = "(no content)"
		}
		fmt.Fprintf(out, "%s\n\n", body)
	}
}
