package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/circlefit/pkg/analysis"
	"github.com/philipparndt/circlefit/pkg/geometry"
)

// Format selects the encoding used by Write
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for a format name Write does not support
var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat validates a format name; the empty name selects text
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	for _, f := range Formats() {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Point is a serializable 2D coordinate
type Point struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Residuals summarizes the radial deviation of the input points
type Residuals struct {
	RMS    float64 `json:"rms" yaml:"rms" toml:"rms"`
	Mean   float64 `json:"mean" yaml:"mean" toml:"mean"`
	MaxAbs float64 `json:"max_abs" yaml:"max_abs" toml:"max_abs"`
}

// Coverage is the angle spanned by the input points around the center
type Coverage struct {
	Radians  float64 `json:"radians" yaml:"radians" toml:"radians"`
	Fraction float64 `json:"fraction" yaml:"fraction" toml:"fraction"`
}

// Report is the outcome of one fit, ready for serialization
type Report struct {
	ID            string    `json:"id" yaml:"id" toml:"id"`
	Source        string    `json:"source" yaml:"source" toml:"source"`
	GeneratedAt   time.Time `json:"generated_at" yaml:"generated_at" toml:"generated_at"`
	Points        int       `json:"points" yaml:"points" toml:"points"`
	Center        Point     `json:"center" yaml:"center" toml:"center"`
	Radius        float64   `json:"radius" yaml:"radius" toml:"radius"`
	RadiusSquared float64   `json:"radius_squared" yaml:"radius_squared" toml:"radius_squared"`
	Condition     float64   `json:"condition" yaml:"condition" toml:"condition"`
	Sentinel      bool      `json:"sentinel" yaml:"sentinel" toml:"sentinel"`
	Residuals     Residuals `json:"residuals" yaml:"residuals" toml:"residuals"`
	Coverage      Coverage  `json:"coverage" yaml:"coverage" toml:"coverage"`
}

// New builds a report from a fit and its analysis. The analysis may be nil.
func New(source string, fit geometry.Fit, a *analysis.FitAnalysis) *Report {
	r := &Report{
		ID:            uuid.NewString(),
		Source:        source,
		GeneratedAt:   time.Now().UTC().Truncate(time.Second),
		Points:        fit.Points,
		Center:        Point{X: fit.Center.X, Y: fit.Center.Y},
		Radius:        fit.Radius,
		RadiusSquared: fit.RadiusSquared,
		Condition:     fit.Condition,
		Sentinel:      fit.Sentinel,
	}

	if a != nil && !fit.Sentinel {
		r.Residuals = Residuals{RMS: a.RMS, Mean: a.Mean, MaxAbs: a.MaxAbs}
		r.Coverage = Coverage{Radians: a.Coverage, Fraction: a.CoverageFraction()}
	}
	return r
}

// Write encodes r to w in the given format
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(r); err != nil {
			return fmt.Errorf("failed to encode TOML report: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func writeText(w io.Writer, r *Report) error {
	var b strings.Builder

	b.WriteString("Circle Fit\n")
	b.WriteString("==========\n")
	if r.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", r.Source)
	}
	fmt.Fprintf(&b, "Points: %d\n\n", r.Points)

	if r.Sentinel {
		fmt.Fprintf(&b, "Fit failed: radius squared is negative (%g)\n", r.RadiusSquared)
		fmt.Fprintf(&b, "  Center: (%.6f, %.6f)\n", r.Center.X, r.Center.Y)
		fmt.Fprintf(&b, "  Radius: %.6f\n", r.Radius)
	} else {
		b.WriteString("Circle:\n")
		fmt.Fprintf(&b, "  Center: (%.6f, %.6f)\n", r.Center.X, r.Center.Y)
		fmt.Fprintf(&b, "  Radius: %.6f\n\n", r.Radius)

		b.WriteString("Residuals:\n")
		fmt.Fprintf(&b, "  RMS: %.6f units\n", r.Residuals.RMS)
		fmt.Fprintf(&b, "  Mean: %.6f units\n", r.Residuals.Mean)
		fmt.Fprintf(&b, "  Max: %.6f units\n\n", r.Residuals.MaxAbs)

		b.WriteString("Coverage:\n")
		fmt.Fprintf(&b, "  Arc: %.6f rad (%.2f%% of a turn)\n", r.Coverage.Radians, r.Coverage.Fraction*100)
	}
	fmt.Fprintf(&b, "  Condition: %.3g\n", r.Condition)

	_, err := io.WriteString(w, b.String())
	return err
}
