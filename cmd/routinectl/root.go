package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/client"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/output"
)

type globals struct {
	api     string
	output  string
	color   string
	timeout time.Duration
	debug   bool

	out io.Writer
}

func defaultAPI() string {
	if v := os.Getenv("ROUTINES_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func (g *globals) client() (*client.Client, error) {
	return client.New(g.api, client.WithHTTPTimeout(g.timeout), client.WithDebug(g.debug))
}

func (g *globals) printer() *output.Printer {
	return output.NewPrinter(g.out, output.ColorMode(g.color))
}

func (g *globals) jsonOutput() bool { return g.output == "json" }

func (g *globals) validate() error {
	switch g.output {
	case "table", "json":
	default:
		return fmt.Errorf("--output must be table or json, got %q", g.output)
	}
	switch output.ColorMode(g.color) {
	case output.ColorAuto, output.ColorAlways, output.ColorNever:
	default:
		return fmt.Errorf("--color must be auto, always or never, got %q", g.color)
	}
	return nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	g := &globals{out: out}
	root := &cobra.Command{
		Use:           "routinectl",
		Short:         "CLI client for the routine service REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.validate()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&g.api, "api", "a", defaultAPI(), "Routine service base URL")
	root.PersistentFlags().StringVarP(&g.output, "output", "o", "table", "Output format: table or json")
	root.PersistentFlags().StringVar(&g.color, "color", string(output.ColorAuto), "Color mode: auto, always or never")
	root.PersistentFlags().DurationVar(&g.timeout, "timeout", 10*time.Second, "HTTP request timeout")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "Log HTTP requests and responses")

	root.AddCommand(
		newListCmd(g),
		newGetCmd(g),
		newCreateCmd(g),
		newUpdateCmd(g),
		newStatusCmd(g, "enable", true),
		newStatusCmd(g, "disable", false),
		newDeleteCmd(g),
		newStatsCmd(g),
		newTimelineCmd(g),
	)
	return root
}
