package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/circlefit/pkg/analysis"
	"github.com/philipparndt/circlefit/pkg/geometry"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()

	points := geometry.ArcPoints(geometry.NewVector2(500, 500), 300, geometry.DefaultArcPoints, geometry.DefaultArcSpan)
	fit, err := geometry.FitCircleDetailed(points, geometry.DefaultFitOptions())
	require.NoError(t, err)

	return New("arc.txt", fit, analysis.Analyze(points, fit.Circle))
}

func TestNew(t *testing.T) {
	r := sampleReport(t)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "arc.txt", r.Source)
	assert.Equal(t, geometry.DefaultArcPoints, r.Points)
	assert.InEpsilon(t, 300.0, r.Radius, 1e-6)
	assert.False(t, r.Sentinel)
	assert.Greater(t, r.Coverage.Radians, 0.0)

	other := sampleReport(t)
	assert.NotEqual(t, r.ID, other.ID)
}

func TestNewSentinel(t *testing.T) {
	fit := geometry.Fit{RadiusSquared: -1, Points: 3, Sentinel: true}
	r := New("", fit, analysis.Analyze([]geometry.Vector2{{X: 1, Y: 1}}, fit.Circle))

	assert.True(t, r.Sentinel)
	assert.Equal(t, Point{}, r.Center)
	assert.Equal(t, 0.0, r.Radius)
	assert.Equal(t, Residuals{}, r.Residuals)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatText))
	assert.Contains(t, buf.String(), "Fit failed")
}

func TestWriteText(t *testing.T) {
	fit := geometry.Fit{
		Circle:        geometry.NewCircle(geometry.NewVector2(500, 500), 300),
		RadiusSquared: 90000,
		Condition:     1e13,
		Points:        360,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, New("arc.txt", fit, nil), FormatText))

	out := buf.String()
	assert.Contains(t, out, "Source: arc.txt")
	assert.Contains(t, out, "Points: 360")
	assert.Contains(t, out, "Center: (500.000000, 500.000000)")
	assert.Contains(t, out, "Radius: 300.000000")
	assert.NotContains(t, out, "Fit failed")
}

func TestWriteJSON(t *testing.T) {
	r := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatJSON))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.ID, decoded.ID)
	assert.Equal(t, r.Center, decoded.Center)
	assert.True(t, r.GeneratedAt.Equal(decoded.GeneratedAt))
}

func TestWriteYAML(t *testing.T) {
	r := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatYAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.ID, decoded["id"])
	assert.Equal(t, 360, decoded["points"])
	assert.Contains(t, decoded, "residuals")
}

func TestWriteTOML(t *testing.T) {
	r := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, FormatTOML))

	var decoded Report
	_, err := toml.Decode(buf.String(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, r.ID, decoded.ID)
	assert.Equal(t, r.Radius, decoded.Radius)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, sampleReport(t), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	for name, expected := range map[string]Format{"": FormatText, "JSON": FormatJSON, "yaml": FormatYAML, "toml": FormatTOML} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, expected, f)
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
