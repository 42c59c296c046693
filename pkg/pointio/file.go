package pointio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver/v3"

	"github.com/philipparndt/circlefit/pkg/geometry"
)

// Format identifies how the content of a point file is encoded
type Format int

const (
	FormatText Format = iota
	FormatWKT
)

var compressionExts = map[string]bool{
	".gz":  true,
	".bz2": true,
	".xz":  true,
	".lz4": true,
	".sz":  true,
	".zst": true,
}

// DetectFormat returns the content format of filename and whether it is
// compressed, judging by its extensions ("arc.wkt.gz" is compressed WKT)
func DetectFormat(filename string) (Format, bool) {
	name := strings.ToLower(filename)
	compressed := compressionExts[filepath.Ext(name)]
	if compressed {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if filepath.Ext(name) == ".wkt" {
		return FormatWKT, compressed
	}
	return FormatText, compressed
}

// Open opens a point file and returns a reader over its decompressed content
func Open(filename string) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if _, compressed := DetectFormat(filename); !compressed {
		return file, nil
	}
	defer file.Close()

	format, err := archiver.ByExtension(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to detect compression of %s: %w", filename, err)
	}
	decompressor, ok := format.(archiver.Decompressor)
	if !ok {
		return nil, fmt.Errorf("%s is an archive, not a compressed point file", filename)
	}

	var buf bytes.Buffer
	if err := decompressor.Decompress(file, &buf); err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", filename, err)
	}
	return io.NopCloser(&buf), nil
}

// ParseFile reads 2D points from a text or WKT file, optionally compressed
func ParseFile(filename string) ([]geometry.Vector2, error) {
	rc, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	format, _ := DetectFormat(filename)
	if format == FormatWKT {
		return ReadWKT(rc)
	}
	return Read(rc)
}

// ParseFile3D reads three-column points from a text file, optionally compressed
func ParseFile3D(filename string) ([]geometry.Vector3, error) {
	if format, _ := DetectFormat(filename); format == FormatWKT {
		return nil, fmt.Errorf("WKT input is 2D only: %s", filename)
	}

	rc, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Read3D(rc)
}

// WriteFile writes points to filename in the text format, compressing when
// the name carries a compression extension
func WriteFile(filename string, points []geometry.Vector2) error {
	var buf bytes.Buffer
	if err := Write(&buf, points); err != nil {
		return err
	}

	content := io.Reader(&buf)
	if _, compressed := DetectFormat(filename); compressed {
		format, err := archiver.ByExtension(filename)
		if err != nil {
			return fmt.Errorf("failed to detect compression of %s: %w", filename, err)
		}
		compressor, ok := format.(archiver.Compressor)
		if !ok {
			return fmt.Errorf("%s is an archive, not a compressed point file", filename)
		}
		var packed bytes.Buffer
		if err := compressor.Compress(&buf, &packed); err != nil {
			return fmt.Errorf("failed to compress %s: %w", filename, err)
		}
		content = &packed
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return file.Close()
}
