package velocity

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/gpr-migration/migration/radargram"
)

// LoadSpecFile parses a whitespace-delimited numeric table into a Layered
// (2-column: velocity, depth) or Gridded (3-column: velocity, depth, x)
// Spec. Blank lines and lines beginning with '#' are skipped.
func LoadSpecFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &radargram.Error{Kind: radargram.VelocityFileUnreadable, Msg: path, Err: err}
	}
	defer f.Close()

	var rows []Row
	cols := 0
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if cols == 0 {
			cols = len(fields)
		}
		if len(fields) != cols || (cols != 2 && cols != 3) {
			return nil, &radargram.Error{
				Kind: radargram.VelocityFileUnreadable,
				Msg:  path,
				Err:  radargram.Errorf(radargram.VelocityFileUnreadable, "line %d: expected 2 or 3 consistent numeric columns, got %d", lineNo, len(fields)),
			}
		}
		vals := make([]float64, cols)
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &radargram.Error{
					Kind: radargram.VelocityFileUnreadable,
					Msg:  path,
					Err:  err,
				}
			}
			vals[i] = v
		}
		row := Row{V: vals[0], Z: vals[1]}
		if cols == 3 {
			row.X = vals[2]
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, &radargram.Error{Kind: radargram.VelocityFileUnreadable, Msg: path, Err: err}
	}

	switch cols {
	case 2:
		return NewLayered(rows)
	case 3:
		return NewGridded(rows)
	default:
		return nil, &radargram.Error{Kind: radargram.VelocityFileUnreadable, Msg: path, Err: radargram.Errorf(radargram.VelocityFileUnreadable, "file contained no data rows")}
	}
}
