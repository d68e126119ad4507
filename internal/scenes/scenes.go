// Package scenes defines the guided narrative and the state that selects
// which date window is shown.
package scenes

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kpumuk/incidentscope/internal/incidents"
)

//go:embed default.yaml
var defaultScenes []byte

// Annotation marks a historical date on a chart.
type Annotation struct {
	Date  time.Time
	Label string
}

// Scene is one step of the narrative.
type Scene struct {
	Title       string
	Description string
	// Window is the preset range of a fixed scene. It is zero for an
	// interactive scene, whose window comes from the slider.
	Window      incidents.Window
	Interactive bool
	Annotations []Annotation
}

// AnnotationsIn returns the annotations falling inside w, in date order.
func (s Scene) AnnotationsIn(w incidents.Window) []Annotation {
	var out []Annotation
	for _, a := range s.Annotations {
		if w.Contains(a.Date) {
			out = append(out, a)
		}
	}
	return out
}

type document struct {
	Scenes []sceneEntry `yaml:"scenes"`
}

type sceneEntry struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Start       date              `yaml:"start"`
	End         date              `yaml:"end"`
	Interactive bool              `yaml:"interactive"`
	Annotations []annotationEntry `yaml:"annotations"`
}

type annotationEntry struct {
	Date  date   `yaml:"date"`
	Label string `yaml:"label"`
}

// date decodes a YYYY-MM-DD scalar, quoted or not.
type date struct {
	time.Time
}

func (d *date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a date", value.Line)
	}
	t, err := time.Parse(time.DateOnly, value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid date %q: %w", value.Line, value.Value, err)
	}
	d.Time = t
	return nil
}

// Default returns the built-in narrative.
func Default() []Scene {
	scenes, err := Parse(defaultScenes)
	if err != nil {
		panic(fmt.Sprintf("built-in scenes: %v", err))
	}
	return scenes
}

// LoadFile reads a scene document from path.
func LoadFile(path string) ([]Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenes: %w", err)
	}
	scenes, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenes, nil
}

// Parse decodes and validates a scene document.
func Parse(data []byte) ([]Scene, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scenes: %w", err)
	}
	if len(doc.Scenes) == 0 {
		return nil, errors.New("parse scenes: no scenes defined")
	}

	scenes := make([]Scene, 0, len(doc.Scenes))
	for i, entry := range doc.Scenes {
		scene, err := entry.scene()
		if err != nil {
			return nil, fmt.Errorf("scene %d: %w", i+1, err)
		}
		scenes = append(scenes, scene)
	}
	return scenes, nil
}

func (e sceneEntry) scene() (Scene, error) {
	if e.Title == "" {
		return Scene{}, errors.New("missing title")
	}
	scene := Scene{
		Title:       e.Title,
		Description: e.Description,
		Interactive: e.Interactive,
	}
	if !e.Interactive {
		if e.Start.IsZero() || e.End.IsZero() {
			return Scene{}, fmt.Errorf("%q: fixed scenes need start and end", e.Title)
		}
		if e.Start.After(e.End.Time) {
			return Scene{}, fmt.Errorf("%q: start %s is after end %s", e.Title,
				e.Start.Format(time.DateOnly), e.End.Format(time.DateOnly))
		}
		scene.Window = incidents.NewWindow(e.Start.Time, e.End.Time)
	}
	for _, a := range e.Annotations {
		if a.Date.IsZero() || a.Label == "" {
			return Scene{}, fmt.Errorf("%q: annotations need a date and a label", e.Title)
		}
		scene.Annotations = append(scene.Annotations, Annotation{Date: a.Date.Time, Label: a.Label})
	}
	slices.SortStableFunc(scene.Annotations, func(a, b Annotation) int {
		return a.Date.Compare(b.Date)
	})
	return scene, nil
}
