package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Cell glyphs follow the MovingAI benchmark convention: '.' and 'G'
// are passable, '@', 'O' and 'T' are blocked.

// ParseRows builds a grid from equal-length row strings.
func ParseRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.New("grid: no rows")
	}
	width := len(rows[0])
	g := New(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, errors.Errorf("grid: row %d has %d cells, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			switch row[x] {
			case '.', 'G':
			case '@', 'O', 'T':
				g.Block(x, y)
			default:
				return nil, errors.Errorf("grid: unknown cell %q at (%d,%d)", row[x], x, y)
			}
		}
	}
	return g, nil
}

// Read parses a MovingAI-format map:
//
//	type octile
//	height 5
//	width 5
//	map
//	.....
//	...
func Read(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	var width, height int
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "map" {
			break
		}
		if _, err := fmt.Sscanf(line, "height %d", &height); err == nil {
			continue
		}
		if _, err := fmt.Sscanf(line, "width %d", &width); err == nil {
			continue
		}
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("grid: bad header dimensions %dx%d", width, height)
	}

	rows := make([]string, 0, height)
	for sc.Scan() && len(rows) < height {
		rows = append(rows, strings.TrimRight(sc.Text(), "\r\n"))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "grid: reading map body")
	}
	if len(rows) != height {
		return nil, errors.Errorf("grid: map body has %d rows, header says %d", len(rows), height)
	}
	return ParseRows(rows)
}

// Load reads a MovingAI-format map file.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "grid: opening %s", path)
	}
	defer f.Close()
	g, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "grid: parsing %s", path)
	}
	return g, nil
}
