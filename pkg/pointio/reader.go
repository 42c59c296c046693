package pointio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/philipparndt/circlefit/pkg/geometry"
)

// ErrMalformedLine is wrapped by every ParseError
var ErrMalformedLine = errors.New("malformed point line")

// ParseError reports a line of a point file that could not be parsed
type ParseError struct {
	Line int    // 1-based line number
	Text string // the offending line, trimmed
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Read parses 2D points, one per line, as two whitespace or tab separated
// decimal numbers. Blank lines and lines starting with '#' are skipped. Any
// other line that does not hold exactly two finite numbers fails the read
// with a *ParseError.
func Read(r io.Reader) ([]geometry.Vector2, error) {
	points := make([]geometry.Vector2, 0)
	err := scanRows(r, 2, func(v []float64) {
		points = append(points, geometry.NewVector2(v[0], v[1]))
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

// Read3D is Read for three-column files
func Read3D(r io.Reader) ([]geometry.Vector3, error) {
	points := make([]geometry.Vector3, 0)
	err := scanRows(r, 3, func(v []float64) {
		points = append(points, geometry.NewVector3(v[0], v[1], v[2]))
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

// scanRows calls emit with the parsed values of every data line
func scanRows(r io.Reader, columns int, emit func([]float64)) error {
	scanner := bufio.NewScanner(r)
	values := make([]float64, columns)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != columns {
			return &ParseError{
				Line: lineNo,
				Text: line,
				Err:  fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedLine, columns, len(fields)),
			}
		}

		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return &ParseError{Line: lineNo, Text: line, Err: fmt.Errorf("%w: %v", ErrMalformedLine, err)}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &ParseError{Line: lineNo, Text: line, Err: fmt.Errorf("%w: non-finite value %q", ErrMalformedLine, field)}
			}
			values[i] = v
		}
		emit(values)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading points: %w", err)
	}
	return nil
}
