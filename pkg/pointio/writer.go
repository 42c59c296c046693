package pointio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/philipparndt/circlefit/pkg/geometry"
)

// Write writes points in the two-column tab separated format read by Read.
// Values use the shortest representation that parses back to the same float.
func Write(w io.Writer, points []geometry.Vector2) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)

	for i, p := range points {
		buf = strconv.AppendFloat(buf[:0], p.X, 'g', -1, 64)
		buf = append(buf, '\t')
		buf = strconv.AppendFloat(buf, p.Y, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("failed to write point %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush points: %w", err)
	}
	return nil
}
