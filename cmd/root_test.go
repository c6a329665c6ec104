package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/sst/piechart/internal/chart"
	"github.com/sst/piechart/internal/format"
	"github.com/sst/piechart/internal/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a fresh command tree with HOME pointing at an empty
// directory so no user config leaks into the test.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootDrawsChart(t *testing.T) {
	out, _, err := run(t, "--color", "never", "--radius", "3", "--aspect", "2", "A:1", "B:3")
	require.NoError(t, err)

	want := strings.Join([]string{
		"    •      ",
		" ▪▪▪••••   ",
		"▪▪▪▪•••••  • A 25.00%",
		"▪▪▪▪▪••••  ",
		"▪▪▪▪▪▪▪▪▪  ▪ B 75.00%",
		" ▪▪▪▪▪▪▪   ",
		"    ▪      ",
	}, "\n") + "\n"
	assert.Equal(t, want, ansi.Strip(out))
}

func TestRootNoLegend(t *testing.T) {
	out, _, err := run(t, "--color", "never", "-r", "1", "--no-legend", "A:1", "B:3")
	require.NoError(t, err)
	assert.Equal(t, "  •\n▪▪▪••\n  ▪\n", ansi.Strip(out))
}

func TestRootColorAlways(t *testing.T) {
	out, _, err := run(t, "--color", "always", "-r", "2", "A:1:bold red:#", "B:1:green")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, ansi.Strip(out), "# A 50.00%")
}

func TestRootJSON(t *testing.T) {
	out, _, err := run(t, "--format", "json", "--color", "always", "-r", "2", "Chocolate:4", "Vanilla:4:yellow:*")
	require.NoError(t, err)

	var doc format.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 8.0, doc.Total)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Chocolate", doc.Items[0].Label)
	assert.Equal(t, "•", doc.Items[0].Fill)
	assert.Equal(t, "*", doc.Items[1].Fill)
	assert.Equal(t, 50.0, doc.Items[1].Percent)
	assert.Len(t, strings.Split(doc.Chart, "\n"), 5)
	assert.NotContains(t, doc.Chart, "\x1b[")
}

func TestRootErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "no values", args: nil, want: errNoValues},
		{name: "zero aspect", args: []string{"--aspect", "0", "A:1"}},
		{name: "bad token", args: []string{"A"}, want: values.ErrFieldCount},
		{name: "zero total", args: []string{"A:0", "B:0"}, want: chart.ErrNonPositiveTotal},
		{name: "bad style", args: []string{"A:1:purple"}},
		{name: "bad format", args: []string{"-f", "yaml", "A:1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.Empty(t, out)
		})
	}
}

func TestRootVersion(t *testing.T) {
	out, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestPreview(t *testing.T) {
	out, _, err := run(t, "preview", "--color", "never", "--aspect", "3", "--max-radius", "1", "A:1", "B:3")
	require.NoError(t, err)
	assert.Equal(t, "radius 0\n▪\nradius 1\n  •\n▪▪▪••\n  ▪\n", ansi.Strip(out))
}

func TestPreviewNegativeRadius(t *testing.T) {
	_, _, err := run(t, "preview", "--max-radius=-1", "A:1")
	assert.ErrorIs(t, err, chart.ErrInvalidRadius)
}

func TestPreviewHelpMentionsHeader(t *testing.T) {
	out, _, err := run(t, "preview", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, `"radius N" header line`)
}
