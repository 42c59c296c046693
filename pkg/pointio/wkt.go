package pointio

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/philipparndt/circlefit/pkg/geometry"
)

// ReadWKT reads a single WKT geometry of any type and returns its XY
// coordinates in order. Repeated coordinates, such as the closing point of a
// polygon ring, are kept only once so they do not weigh twice in a fit.
func ReadWKT(r io.Reader) ([]geometry.Vector2, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read WKT: %w", err)
	}

	g, err := geom.UnmarshalWKT(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse WKT: %w", err)
	}

	seq := g.DumpCoordinates()
	seen := make(map[geometry.Vector2]struct{}, seq.Length())
	points := make([]geometry.Vector2, 0, seq.Length())
	for i := 0; i < seq.Length(); i++ {
		xy := seq.GetXY(i)
		p := geometry.NewVector2(xy.X, xy.Y)
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		points = append(points, p)
	}
	return points, nil
}
