package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/client"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
)

type listFlags struct {
	frequency  string
	query      string
	activeOnly bool
}

func (f *listFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.frequency, "frequency", "f", "all", "Frequency type: all, second, minute or hour")
	fs.StringVarP(&f.query, "query", "q", "", "Case-insensitive search over name and description")
	fs.BoolVar(&f.activeOnly, "active-only", false, "Only include active routines")
}

func (f *listFlags) options() client.ListOptions {
	return client.ListOptions{Frequency: f.frequency, Query: f.query, ActiveOnly: f.activeOnly}
}

func newListCmd(g *globals) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routines sorted by start time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			rs, err := c.List(cmd.Context(), f.options())
			if err != nil {
				return err
			}
			if g.jsonOutput() {
				return g.printer().JSON(rs)
			}
			g.printer().Routines(rs)
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newGetCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			r, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return g.showRoutine(r)
		},
	}
}

func (g *globals) showRoutine(r model.Routine) error {
	if g.jsonOutput() {
		return g.printer().JSON(r)
	}
	g.printer().Routine(r)
	return nil
}

// reportFieldErrors prints each rejected field before returning err.
func (g *globals) reportFieldErrors(err error) error {
	if fields, ok := client.FieldErrors(err); ok {
		p := g.printer()
		for _, f := range fields {
			p.Error(f.Field + ": " + f.Message)
		}
	}
	return err
}

// routineFlags binds one flag per routine field. Only flags the user set end up
// in the input.
type routineFlags struct {
	name           string
	description    string
	frequencyType  string
	frequencyValue int
	startTime      string
	duration       int
	durationUnit   string
	active         bool
}

func (f *routineFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Routine name")
	fs.StringVar(&f.description, "description", "", "Free-text description")
	fs.StringVar(&f.frequencyType, "frequency-type", "", "Frequency unit: second, minute or hour")
	fs.IntVar(&f.frequencyValue, "frequency-value", 0, "Run every N frequency units")
	fs.StringVar(&f.startTime, "start-time", "", "Start time of day as HH:MM")
	fs.IntVar(&f.duration, "duration", 0, "Duration amount")
	fs.StringVar(&f.durationUnit, "duration-unit", "", "Duration unit: second, minute or hour")
	fs.BoolVar(&f.active, "active", true, "Whether the routine is active")
}

func (f *routineFlags) input(fs *pflag.FlagSet, includeDefaults bool) model.RoutineInput {
	var in model.RoutineInput
	set := func(name string) bool { return fs.Changed(name) }
	if set("name") {
		in.Name = &f.name
	}
	if set("description") {
		in.Description = &f.description
	}
	if set("frequency-type") {
		u := model.TimeUnit(f.frequencyType)
		in.FrequencyType = &u
	}
	if set("frequency-value") {
		in.FrequencyValue = &f.frequencyValue
	}
	if set("start-time") {
		in.StartTime = &f.startTime
	}
	if set("duration") {
		in.Duration = &f.duration
	}
	if set("duration-unit") {
		u := model.TimeUnit(f.durationUnit)
		in.DurationUnit = &u
	}
	if set("active") || includeDefaults {
		in.IsActive = &f.active
	}
	return in
}

func newCreateCmd(g *globals) *cobra.Command {
	var f routineFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a routine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			r, err := c.Create(cmd.Context(), f.input(cmd.Flags(), true))
			if err != nil {
				return g.reportFieldErrors(err)
			}
			if !g.jsonOutput() {
				g.printer().Success(fmt.Sprintf("created %s", r.ID))
			}
			return g.showRoutine(r)
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newUpdateCmd(g *globals) *cobra.Command {
	var f routineFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := f.input(cmd.Flags(), false)
			if in.Empty() {
				return fmt.Errorf("nothing to update: set at least one field flag")
			}
			c, err := g.client()
			if err != nil {
				return err
			}
			r, err := c.Update(cmd.Context(), args[0], in)
			if err != nil {
				return g.reportFieldErrors(err)
			}
			return g.showRoutine(r)
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newStatusCmd(g *globals, use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: fmt.Sprintf("Mark routines as %s", map[bool]string{true: "active", false: "inactive"}[active]),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			p := g.printer()
			for _, id := range args {
				r, err := c.SetStatus(cmd.Context(), id, active)
				if err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
				p.Success(fmt.Sprintf("%s %sd", r.Name, use))
			}
			return nil
		},
	}
}

func newDeleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete routines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			p := g.printer()
			for _, id := range args {
				if err := c.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
				p.Success("deleted " + id)
			}
			return nil
		},
	}
}

func newStatsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show routine counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			st, err := c.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if g.jsonOutput() {
				return g.printer().JSON(st)
			}
			g.printer().Stats(st)
			return nil
		},
	}
}
