package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"trucking-quote-backend/internal/domain"
	"trucking-quote-backend/pkg/quoteclient"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8080"

type submitOptions struct {
	fields  quoteclient.Fields
	server  string
	timeout time.Duration
	retries int
	backoff time.Duration
}

func NewRootCommand(out io.Writer) *cobra.Command {
	var lang string

	root := &cobra.Command{
		Use:          "quote",
		Short:        "Trucking insurance quote request client",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&lang, "lang", envOr("QUOTE_LANG", quoteclient.LangEnglish), "Notification language: en or es")

	root.AddCommand(
		newSubmitCommand(&lang),
		newCoveragesCommand(&lang),
	)
	return root
}

func newSubmitCommand(lang *string) *cobra.Command {
	opts := submitOptions{}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a quote request to the brokerage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := quoteclient.New(
				quoteclient.WithServer(opts.server),
				quoteclient.WithTimeout(opts.timeout),
				quoteclient.WithRetry(opts.retries, opts.backoff),
				quoteclient.WithUserAgent("quote-cli"),
			)
			if err != nil {
				return err
			}

			writer := cmd.OutOrStdout()
			form := quoteclient.NewForm(client, quoteclient.NotifierFunc(func(n quoteclient.Notification) {
				_, _ = fmt.Fprintf(writer, "[%s] %s\n", n.Kind, n.Text)
			}), *lang)
			form.Set(opts.fields)

			outcome, err := form.Submit(cmd.Context())
			if err != nil {
				return fmt.Errorf("quote request %s: %w", outcome, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.fields.FullName, "name", "", "Full name")
	cmd.Flags().StringVar(&opts.fields.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&opts.fields.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&opts.fields.CoverageType, "coverage", "", "Coverage type (see 'quote coverages')")
	cmd.Flags().StringVar(&opts.server, "server", envOr("QUOTE_SERVER", defaultServer), "Quote server URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	cmd.Flags().IntVar(&opts.retries, "retries", 1, "Attempts when the server cannot be reached")
	cmd.Flags().DurationVar(&opts.backoff, "backoff", time.Second, "Delay between connection attempts")

	for _, name := range []string{"name", "email", "phone", "coverage"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newCoveragesCommand(lang *string) *cobra.Command {
	return &cobra.Command{
		Use:   "coverages",
		Short: "List the coverage options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, coverage := range domain.CoverageTypes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", coverage, quoteclient.CoverageLabel(*lang, string(coverage)))
			}
			return nil
		},
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
