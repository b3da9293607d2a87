package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/client"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/output"
)

func newTimelineCmd(g *globals) *cobra.Command {
	var (
		f        listFlags
		watch    bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Draw the 24h timeline of routines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}
			c, err := g.client()
			if err != nil {
				return err
			}
			p := g.printer()
			if !watch {
				return drawTimeline(cmd.Context(), c, p, g, f.options())
			}
			return watchTimeline(cmd.Context(), c, p, g, f.options(), interval)
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Redraw until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Redraw interval with --watch")
	return cmd
}

func drawTimeline(ctx context.Context, c *client.Client, p *output.Printer, g *globals, opts client.ListOptions) error {
	chart, err := c.Timeline(ctx, opts)
	if err != nil {
		return err
	}
	if g.jsonOutput() {
		return p.JSON(chart)
	}
	p.Timeline(chart)
	return nil
}

// watchTimeline redraws every interval and returns nil once ctx is cancelled.
func watchTimeline(ctx context.Context, c *client.Client, p *output.Printer, g *globals, opts client.ListOptions, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		p.ClearScreen()
		if err := drawTimeline(ctx, c, p, g, opts); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
