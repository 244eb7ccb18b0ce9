package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/plus3/campfire/ecs"
	"github.com/plus3/campfire/internal/sim"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Ticks int
}

// RunResult is the JSON payload of the run command.
type RunResult struct {
	RunID    string            `json:"run_id"`
	Scenario string            `json:"scenario"`
	Ticks    int               `json:"ticks"`
	Display  []string          `json:"display,omitempty"`
	Entities []sim.EntityState `json:"entities"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "Run a scenario",
		Long: `Build a world from a scenario file and advance it tick by tick.

Without a scenario file the built-in demo runs: one entity starting at the
origin with velocity 4:7, and the display, movement and accelerate systems.

Example:
  campfire run
  campfire run --ticks 10 ./scenarios/patrol.yaml
  campfire run --format json ./scenarios/patrol.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runScenario(cmd, opts, path)
		},
	}

	cmd.Flags().IntVar(&opts.Ticks, "ticks", 0, "override the number of ticks in the scenario")

	return cmd
}

func runScenario(cmd *cobra.Command, opts *RunOptions, path string) error {
	out := cmd.OutOrStdout()
	text := opts.Format != "json"
	runID := newRunID()
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose).With("run_id", runID)

	scenario := sim.DefaultScenario()
	if path != "" {
		loaded, err := sim.LoadScenario(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenario", err)
		}
		scenario = loaded
	}

	if cmd.Flags().Changed("ticks") {
		if opts.Ticks < 0 {
			return NewExitError(ExitCommandError, fmt.Sprintf("--ticks must not be negative, got %d", opts.Ticks))
		}
		scenario.Ticks = opts.Ticks
	}

	// display lines go straight to stdout in text mode and into the result
	// in json mode
	var display bytes.Buffer
	var displayOut io.Writer = &display
	if text {
		displayOut = out
	}

	world := ecs.NewWorld()
	ids := scenario.Seed(world)

	systems, err := scenario.BuildSystems(displayOut)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build systems", err)
	}
	world.AddSystem(systems...)

	logger.Info("scenario loaded",
		"scenario", scenario.Name,
		"entities", len(ids),
		"systems", len(systems),
		"ticks", scenario.Ticks,
	)

	if text {
		fmt.Fprintf(out, "scenario %s: %d entities, %d systems\n", scenario.Name, len(ids), len(systems))
	}

	for tick := 1; tick <= scenario.Ticks; tick++ {
		if text {
			fmt.Fprintf(out, "tick %d\n", tick)
		}
		world.Run()

		for id, entity := range world.Entities() {
			logger.Debug("entity state", "tick", tick, "entity", id, "components", entity.String())
		}
	}

	for _, stats := range world.Stats().Systems {
		logger.Debug("system stats",
			"system", stats.Name,
			"executions", stats.ExecutionCount,
			"avg", stats.AvgDuration,
			"max", stats.MaxDuration,
		)
	}
	if opts.Verbose {
		for id, entity := range world.Entities() {
			logger.Debug("entity dump", "entity", id, "dump", entity.Dump())
		}
	}

	states := sim.Snapshot(world)
	logger.Info("scenario finished", "ticks", world.Stats().TickCount)

	if !text {
		formatter := &OutputFormatter{Format: opts.Format, Writer: out}
		return formatter.Success(RunResult{
			RunID:    runID,
			Scenario: scenario.Name,
			Ticks:    scenario.Ticks,
			Display:  splitLines(display.String()),
			Entities: states,
		})
	}

	fmt.Fprintln(out, "final")
	for _, state := range states {
		fmt.Fprintln(out, state)
	}
	return nil
}

// newRunID returns a time-ordered id correlating log records of one run.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
