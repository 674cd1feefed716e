package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/app-sre/tabqa/pkg/client"
	"github.com/app-sre/tabqa/pkg/form"
	"github.com/app-sre/tabqa/pkg/terminal"
	"github.com/app-sre/tabqa/pkg/version"
)

const (
	defaultServerURL = "http://localhost:8080"
	envFile          = ".env"
)

type askOptions struct {
	url          string
	answerFormat string
	noChart      bool
}

// NewCommand returns the tabqa root command with the serve and ask
// subcommands. Variables from a .env file in the working directory are
// loaded first and never override the process environment.
func NewCommand(logger *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:           "tabqa",
		Short:         "Answer questions about a data series",
		Version:       version.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("unable to load %s file: %w", envFile, err)
			}
			return nil
		},
	}

	root.AddCommand(newServeCommand(logger), newAskCommand())

	return root
}

func newServeCommand(logger *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return Run(logger)
		},
	}
}

func newAskCommand() *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Ask a running server a question and print the answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", defaultServerURL, "server base URL")
	cmd.Flags().StringVar(&opts.answerFormat, "answer-format", "raw", "answer format: raw or marker")
	cmd.Flags().BoolVar(&opts.noChart, "no-chart", false, "do not draw the bar chart")

	return cmd
}

func runAsk(cmd *cobra.Command, opts *askOptions, query string) error {
	format, err := parseAnswerFormat(opts.answerFormat)
	if err != nil {
		return err
	}

	doc := terminal.New(cmd.OutOrStdout())

	options := []form.Option{form.WithAnswerFormat(format)}
	if !opts.noChart {
		options = append(options, form.WithCharts(doc))
	}

	h := form.New(client.New(opts.url), doc, options...)

	return h.Submit(cmd.Context(), query)
}

func parseAnswerFormat(s string) (form.AnswerFormat, error) {
	switch s {
	case "raw":
		return form.AnswerRaw, nil
	case "marker":
		return form.AnswerAfterMarker, nil
	default:
		return form.AnswerRaw, fmt.Errorf("unknown answer format: %s", s)
	}
}
