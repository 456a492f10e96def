package grid

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid/internal/core"
)

func TestGridBoundsAndBlocking(t *testing.T) {
	g := New(4, 3)
	w, h := g.Bounds()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)

	assert.False(t, g.IsBlocked(0, 0))
	g.Block(2, 1)
	assert.True(t, g.IsBlocked(2, 1))

	// Outside the map counts as blocked.
	assert.True(t, g.IsBlocked(-1, 0))
	assert.True(t, g.IsBlocked(4, 0))
	assert.True(t, g.IsBlocked(0, 3))
}

func TestNeighbors4(t *testing.T) {
	g := New(3, 3)
	g.Block(1, 0)

	ns := g.Neighbors4(core.Cell{X: 1, Y: 1}, nil)
	assert.ElementsMatch(t, []core.Cell{
		{X: 2, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 2},
	}, ns)

	corner := g.Neighbors4(core.Cell{X: 0, Y: 0}, nil)
	assert.ElementsMatch(t, []core.Cell{{X: 0, Y: 1}}, corner)
}

func TestParseRows(t *testing.T) {
	g, err := ParseRows([]string{
		".@.",
		"...",
		"T.G",
	})
	require.NoError(t, err)

	assert.True(t, g.IsBlocked(1, 0))
	assert.True(t, g.IsBlocked(0, 2))
	assert.False(t, g.IsBlocked(2, 2))
	assert.False(t, g.IsBlocked(0, 0))
}

func TestParseRowsErrors(t *testing.T) {
	_, err := ParseRows(nil)
	assert.Error(t, err)

	_, err = ParseRows([]string{"...", ".."})
	assert.Error(t, err, "ragged rows must be rejected")

	_, err = ParseRows([]string{".x."})
	assert.Error(t, err, "unknown glyphs must be rejected")
}

func TestReadMovingAIFormat(t *testing.T) {
	src := strings.Join([]string{
		"type octile",
		"height 3",
		"width 4",
		"map",
		"....",
		".@@.",
		"....",
	}, "\n")

	g, err := Read(strings.NewReader(src))
	require.NoError(t, err)

	w, h := g.Bounds()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)
	assert.True(t, g.IsBlocked(1, 1))
	assert.True(t, g.IsBlocked(2, 1))
	assert.False(t, g.IsBlocked(0, 1))
}

func TestReadRejectsTruncatedBody(t *testing.T) {
	src := "height 3\nwidth 4\nmap\n....\n"
	_, err := Read(strings.NewReader(src))
	assert.Error(t, err)
}

func TestStringRoundTrip(t *testing.T) {
	g, err := ParseRows([]string{
		"..@",
		"@..",
	})
	require.NoError(t, err)

	again, err := ParseRows(strings.Split(g.String(), "\n"))
	require.NoError(t, err)
	assert.Equal(t, g.String(), again.String())
}

func TestRandomIsSeedDeterministic(t *testing.T) {
	a := Random(10, 10, 0.3, rand.New(rand.NewSource(7)))
	b := Random(10, 10, 0.3, rand.New(rand.NewSource(7)))
	assert.Equal(t, a.String(), b.String())

	c := Random(10, 10, 0.3, rand.New(rand.NewSource(8)))
	assert.NotEqual(t, a.String(), c.String())
}
