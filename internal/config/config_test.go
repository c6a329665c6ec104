package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/sst/piechart/internal/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every global config location at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.IntP("radius", "r", 7, "")
	flags.IntP("aspect", "a", 3, "")
	flags.Bool("no-legend", false, "")
	flags.StringP("format", "f", "text", "")
	flags.String("color", "auto", "")
	flags.BoolP("debug", "d", false, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Radius)
	assert.Equal(t, 3, cfg.Aspect)
	assert.True(t, cfg.Legend)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, []string{"blue", "red", "magenta", "cyan", "yellow", "green"}, cfg.Palette)
	assert.Equal(t, []string{"•", "▪", "▴"}, cfg.Fills)
	assert.False(t, cfg.Debug)
}

func TestLoadPrecedence(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".piechart.json"), `{"radius": 4, "aspect": 2, "palette": ["bold red"]}`)

	wd := t.TempDir()
	writeFile(t, filepath.Join(wd, ".piechart.json"), `{"aspect": 5, "legend": false}`)

	t.Run("global and local files", func(t *testing.T) {
		cfg, err := Load(Options{WorkingDir: wd})
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Radius)
		assert.Equal(t, 5, cfg.Aspect)
		assert.False(t, cfg.Legend)
		assert.Equal(t, []string{"bold red"}, cfg.Palette)
	})

	t.Run("env over files", func(t *testing.T) {
		t.Setenv("PIECHART_RADIUS", "10")
		cfg, err := Load(Options{WorkingDir: wd})
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Radius)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("PIECHART_RADIUS", "10")
		cfg, err := Load(Options{WorkingDir: wd, Flags: testFlags(t, "--radius", "2", "--format", "json")})
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Radius)
		assert.Equal(t, 5, cfg.Aspect, "unset flag keeps the file value")
		assert.Equal(t, "json", cfg.Format)
	})

	t.Run("no-legend flag", func(t *testing.T) {
		cfg, err := Load(Options{Flags: testFlags(t, "--no-legend")})
		require.NoError(t, err)
		assert.False(t, cfg.Legend)
	})
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)

	file := filepath.Join(t.TempDir(), "chart.json")
	writeFile(t, file, `{"radius": 1, "fills": ["#"]}`)

	cfg, err := Load(Options{File: file})
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Radius)
	assert.Equal(t, []string{"#"}, cfg.Fills)

	_, err = Load(Options{File: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	isolate(t)

	_, err := Load(Options{Flags: testFlags(t, "--aspect", "0")})
	assert.ErrorIs(t, err, ErrInvalidAspect)
	assert.ErrorIs(t, err, chart.ErrInvalidAspectRatio)

	_, err = Load(Options{Flags: testFlags(t, "--radius=-1")})
	assert.ErrorIs(t, err, ErrInvalidRadius)
	assert.ErrorIs(t, err, chart.ErrInvalidRadius)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{Radius: 3, Aspect: 2, Format: "text", Color: "never", Fills: []string{"x"}}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero radius", mutate: func(c *Config) { c.Radius = 0 }},
		{name: "zero aspect", mutate: func(c *Config) { c.Aspect = 0 }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Format = "yaml" }, wantErr: true},
		{name: "bad color", mutate: func(c *Config) { c.Color = "sometimes" }, wantErr: true},
		{name: "wide fill", mutate: func(c *Config) { c.Fills = []string{"xx"} }, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
