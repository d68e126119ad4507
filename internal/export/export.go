// Package export renders a window aggregate to static files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/scenes"
)

// Format is an export file format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Formats lists the supported formats.
var Formats = []Format{FormatSVG, FormatHTML, FormatXLSX, FormatCSV}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", name)
}

// FormatFromPath infers a format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "htm" {
		ext = "html"
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Default pixel size of image exports.
const (
	DefaultWidth  = 960
	DefaultHeight = 500
)

// Chart is the content of an export.
type Chart struct {
	Title       string
	Window      incidents.Window
	Aggregates  []incidents.DailyAggregate
	Annotations []scenes.Annotation
	Regions     []incidents.RegionCount

	// Width and Height are pixel sizes for image formats. Zero means the
	// defaults.
	Width  int
	Height int
}

func (c Chart) size() (int, int) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

func (c Chart) subtitle() string {
	totals := incidents.Sum(c.Aggregates)
	return fmt.Sprintf("%s  incidents %d  killed %d  injured %d",
		c.Window, totals.Incidents, totals.Killed, totals.Injured)
}

// Series colours shared by every format: incidents green, killed red,
// injured blue.
var seriesColors = map[incidents.Measure]string{
	incidents.MeasureIncidents: "#2ca02c",
	incidents.MeasureKilled:    "#d62728",
	incidents.MeasureInjured:   "#1f77b4",
}

// SeriesColor returns the hex colour of a measure.
func SeriesColor(m incidents.Measure) string {
	return seriesColors[m]
}

// Write renders c into w.
func Write(w io.Writer, format Format, c Chart) error {
	switch format {
	case FormatSVG:
		return WriteSVG(w, c)
	case FormatHTML:
		return WriteHTML(w, c)
	case FormatXLSX:
		return WriteXLSX(w, c)
	case FormatCSV:
		return WriteCSV(w, c)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteFile renders c into a new file at path.
func WriteFile(path string, format Format, c Chart) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := Write(f, format, c); err != nil {
		return fmt.Errorf("write %s export: %w", format, err)
	}
	return nil
}
