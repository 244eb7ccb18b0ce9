package cli

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/campfire/ecs"
)

func TestStressReport(t *testing.T) {
	stdout, stderr, code := execute(t, "stress", "--duration", "20ms", "--entities", "200", "--gc-pause-metrics")
	require.Equal(t, ExitSuccess, code, "stderr: %s", stderr)

	out := stdout.String()
	assert.Contains(t, out, "# ECS Stress Test Report")
	assert.Contains(t, out, "- **Initial Entities:** 200")
	assert.Contains(t, out, "- **Systems:** 4")
	assert.Contains(t, out, "- **movement:**")
	assert.Contains(t, out, "- **regen:**")
	assert.Contains(t, out, "## GC Pause Durations")
	assert.Contains(t, stderr.String(), `msg="stress test complete"`)
}

func TestStressJSON(t *testing.T) {
	stdout, stderr, code := execute(t, "--format", "json", "stress", "--duration", "10ms", "--entities", "10")
	require.Equal(t, ExitSuccess, code, "stderr: %s", stderr)

	var resp struct {
		Status string        `json:"status"`
		Data   ReportSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 10, resp.Data.Entities)
	assert.Equal(t, 4, resp.Data.Systems)
	require.Len(t, resp.Data.PerSystem, 4)
	assert.Equal(t, "movement", resp.Data.PerSystem[0].Name)
	assert.Equal(t, resp.Data.TotalUpdates, resp.Data.PerSystem[0].Executions)
}

func TestStressMemProfile(t *testing.T) {
	dir := t.TempDir()
	_, stderr, code := execute(t, "stress", "--duration", "10ms", "--entities", "10", "--profile", "mem", "--profile-dir", dir)
	require.Equal(t, ExitSuccess, code, "stderr: %s", stderr)

	_, err := os.Stat(filepath.Join(dir, "mem.pprof"))
	assert.NoError(t, err)
}

func TestStressErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad profile", []string{"stress", "--profile", "block"}, `invalid profile "block"`},
		{"zero duration", []string{"stress", "--duration", "0s"}, "--duration must be positive"},
		{"negative entities", []string{"stress", "--entities", "-5"}, "--entities must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := execute(t, tt.args...)
			assert.Equal(t, ExitCommandError, code)
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestSpawnRandomEntity(t *testing.T) {
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		id := spawnRandomEntity(world, rng)
		entity := world.Entity(id)
		assert.GreaterOrEqual(t, entity.Len(), 1)
		assert.LessOrEqual(t, entity.Len(), componentKinds)
	}
	assert.Equal(t, 100, world.Len())
}

func TestStatsFinalize(t *testing.T) {
	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)

	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
}
