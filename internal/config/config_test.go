package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outbreak/internal/sim"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultMatchesClassicRun(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	s := cfg.Sim()
	assert.Equal(t, 600.0, s.Width)
	assert.Equal(t, 480.0, s.Height)
	assert.Equal(t, 95, s.Susceptible)
	assert.Equal(t, 5, s.Infected)
	assert.Equal(t, 200, s.CyclesToFate)
	assert.Equal(t, 0.03, s.MortalityRate)
	assert.True(t, s.Randomize)
	assert.Equal(t, 30.0, cfg.Display.StepsPerSecond)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, ".", "outbreak.yaml", `
population:
  susceptible: 40
  quarantined: 10
disease:
  mortality_rate: 0.5
seed: 99
output:
  csv: counts.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Population.Susceptible)
	assert.Equal(t, 5, cfg.Population.Infected)
	assert.Equal(t, 10, cfg.Population.Quarantined)
	assert.Equal(t, 0.5, cfg.Disease.MortalityRate)
	assert.Equal(t, 200, cfg.Disease.CyclesToFate)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, "counts.csv", cfg.Output.CSV)
	assert.True(t, cfg.Randomize)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OUTBREAK_TEST_OUT", "/tmp/run")
	path := writeFile(t, ".", "c.yaml", `
output:
  csv: ${OUTBREAK_TEST_OUT}/counts.csv
  chart: ${OUTBREAK_TEST_MISSING:-plot.png}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/run/counts.csv", cfg.Output.CSV)
	assert.Equal(t, "plot.png", cfg.Output.Chart)
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvLogLevel, "warn")
	writeFile(t, dir, ".env", "OUTBREAK_SEED=1234\nOUTBREAK_LOG_LEVEL=trace\n")
	t.Cleanup(func() { os.Unsetenv(EnvSeed) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative population", "population:\n  infected: -2\n"},
		{"mortality out of range", "disease:\n  mortality_rate: 1.2\n"},
		{"zero plane", "plane:\n  width: 0\n"},
		{"unknown key", "population:\n  zombies: 3\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"bad gif cadence", "output:\n  gif_every: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			path := writeFile(t, ".", "c.yaml", tt.body)
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestSimulationErrorsKeepTheirSentinel(t *testing.T) {
	cfg := Default()
	cfg.Population.Susceptible = -1
	err := cfg.Validate()
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func TestBadSeedInEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvSeed, "not-a-number")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestEmptyFileKeepsDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, Parse(nil, &cfg))
	assert.Equal(t, Default(), cfg)
}
