package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid/internal/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_InlineRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "crossing.hcl", `
scenario "crossing" {
  rows = [
    ".....",
    "..@..",
    ".....",
  ]

  agent {
    start = [0, 0]
    goal  = [4, 0]
  }

  agent {
    start = [4, 2]
    goal  = [0, 2]
  }
}
`)

	scenarios, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	sc := scenarios[0]
	assert.Equal(t, "crossing", sc.Name)

	w, h := sc.Grid.Bounds()
	assert.Equal(t, 5, w)
	assert.Equal(t, 3, h)
	assert.True(t, sc.Grid.IsBlocked(2, 1))

	require.Len(t, sc.Starts, 2)
	assert.Equal(t, core.Cell{X: 0, Y: 0}, sc.Starts[0])
	assert.Equal(t, core.Cell{X: 0, Y: 2}, sc.Goals[1])

	inst, err := sc.Instance()
	require.NoError(t, err)
	assert.Len(t, inst.Agents, 2)
}

func TestLoadFile_MapFileReference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tiny.map", "type octile\nheight 2\nwidth 3\nmap\n...\n.@.\n")
	path := writeFile(t, dir, "scenario.hcl", `
scenario "from_map" {
  map_file = "tiny.map"

  agent {
    start = [0, 0]
    goal  = [2, 0]
  }
}
`)

	scenarios, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.True(t, scenarios[0].Grid.IsBlocked(1, 1))
}

func TestLoadFile_Rejections(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name, content string
	}{
		{"no_grid", `
scenario "s" {
  agent {
    start = [0, 0]
    goal  = [1, 1]
  }
}
`},
		{"no_agents", `
scenario "s" {
  rows = ["..", ".."]
}
`},
		{"bad_pair", `
scenario "s" {
  rows = ["..", ".."]
  agent {
    start = [0]
    goal  = [1, 1]
  }
}
`},
		{"start_on_obstacle", `
scenario "s" {
  rows = ["@.", ".."]
  agent {
    start = [0, 0]
    goal  = [1, 1]
  }
}
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.name+".hcl", tc.content)
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}
