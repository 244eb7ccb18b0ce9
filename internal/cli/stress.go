package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/plus3/campfire/ecs"
	"github.com/plus3/campfire/internal/sim"
)

// StressOptions holds flags for the stress command.
type StressOptions struct {
	*RootOptions
	Duration       time.Duration
	Entities       int
	GCPauseMetrics bool
	Profile        string // "" | "cpu" | "mem"
	ProfileDir     string
	Seed           int64
}

// NewStressCommand creates the stress command.
func NewStressCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StressOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run the stress benchmark",
		Long: `Populate a world with random entities and run the demo systems over it
until the duration elapses, then print a report of tick times, per-system
timings and memory usage.

Example:
  campfire stress --duration 5s --entities 50000
  campfire stress --profile cpu --profile-dir ./profiles`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Duration, "duration", 10*time.Second, "the total duration the test should run for")
	cmd.Flags().IntVar(&opts.Entities, "entities", 10000, "the initial number of entities to create")
	cmd.Flags().BoolVar(&opts.GCPauseMetrics, "gc-pause-metrics", false, "include GC pause metrics in the report")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "write a profile of the run (cpu|mem)")
	cmd.Flags().StringVar(&opts.ProfileDir, "profile-dir", ".", "directory profiles are written to")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "seed for the random entity layout")

	return cmd
}

func runStress(cmd *cobra.Command, opts *StressOptions) error {
	if opts.Duration <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--duration must be positive, got %s", opts.Duration))
	}
	if opts.Entities < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--entities must not be negative, got %d", opts.Entities))
	}

	var mode func(*profile.Profile)
	switch opts.Profile {
	case "":
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid profile %q: must be cpu or mem", opts.Profile))
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose).With("run_id", newRunID())
	logger.Info("starting stress test", "duration", opts.Duration, "entities", opts.Entities)

	if mode != nil {
		defer profile.Start(mode, profile.ProfilePath(opts.ProfileDir), profile.NoShutdownHook, profile.Quiet).Stop()
		logger.Info("profiling enabled", "profile", opts.Profile, "dir", opts.ProfileDir)
	}

	world := ecs.NewWorld()
	world.AddSystem(sim.Movement(), sim.Accelerate(), sim.Regen(), sim.Display(io.Discard))

	rng := rand.New(rand.NewSource(opts.Seed))
	for i := 0; i < opts.Entities; i++ {
		spawnRandomEntity(world, rng)
	}
	logger.Debug("population complete", "entities", world.Len())

	report := &Report{
		Duration:       opts.Duration,
		Entities:       opts.Entities,
		Components:     componentKinds,
		Systems:        len(world.Systems()),
		GCPauseMetrics: opts.GCPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			world.Run()
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.SystemStats = world.Stats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("stress test complete", "updates", totalUpdates, "elapsed", report.TotalTime)

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(report.Summary())
	}
	if err := report.Generate(cmd.OutOrStdout()); err != nil {
		return WrapExitError(ExitFailure, "failed to generate report", err)
	}
	return nil
}

// componentKinds is the number of component types spawnRandomEntity draws from.
const componentKinds = 4

// spawnRandomEntity creates an entity holding a random non-empty subset of
// the demo components.
func spawnRandomEntity(world *ecs.World, rng *rand.Rand) ecs.EntityId {
	id := world.NewEntity()
	entity := world.Entity(id)

	mask := rng.Intn(1<<componentKinds-1) + 1
	if mask&1 != 0 {
		ecs.Insert(entity, sim.Position{X: rng.Float32() * 100, Y: rng.Float32() * 100})
	}
	if mask&2 != 0 {
		ecs.Insert(entity, sim.Velocity{DX: rng.Float32()*2 - 1, DY: rng.Float32()*2 - 1})
	}
	if mask&4 != 0 {
		maxHealth := rng.Intn(100) + 1
		ecs.Insert(entity, sim.Health{Current: rng.Intn(maxHealth + 1), Max: maxHealth})
	}
	if mask&8 != 0 {
		ecs.Insert(entity, sim.Name(fmt.Sprintf("unit-%d", id)))
	}
	return id
}
