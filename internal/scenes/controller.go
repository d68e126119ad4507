package scenes

import (
	"errors"

	"github.com/kpumuk/incidentscope/internal/incidents"
	"github.com/kpumuk/incidentscope/internal/mathutil"
)

// Controller tracks the active scene. The index always stays within
// [0, Len()-1].
type Controller struct {
	scenes []Scene
	active int
	slider *Slider
}

// NewController returns a controller positioned on the first scene.
func NewController(scenes []Scene) (*Controller, error) {
	if len(scenes) == 0 {
		return nil, errors.New("no scenes")
	}
	return &Controller{scenes: scenes}, nil
}

// Len returns the number of scenes.
func (c *Controller) Len() int {
	return len(c.scenes)
}

// Scenes returns every scene in narrative order.
func (c *Controller) Scenes() []Scene {
	return c.scenes
}

// Active returns the active scene index.
func (c *Controller) Active() int {
	return c.active
}

// Scene returns the active scene.
func (c *Controller) Scene() Scene {
	return c.scenes[c.active]
}

// Next advances to the following scene. It is a no-op on the last scene.
func (c *Controller) Next() bool {
	return c.SetActive(c.active + 1)
}

// Prev returns to the previous scene. It is a no-op on the first scene.
func (c *Controller) Prev() bool {
	return c.SetActive(c.active - 1)
}

// SetActive jumps to scene i, clamped to the valid range. It reports
// whether the index changed.
func (c *Controller) SetActive(i int) bool {
	i = mathutil.Clamp(i, 0, len(c.scenes)-1)
	if i == c.active {
		return false
	}
	c.active = i
	return true
}

// AttachSlider binds the slider that drives interactive scenes.
func (c *Controller) AttachSlider(s *Slider) {
	c.slider = s
}

// Slider returns the attached slider, nil before the dataset is loaded.
func (c *Controller) Slider() *Slider {
	return c.slider
}

// Window returns the effective window of the active scene.
func (c *Controller) Window() incidents.Window {
	return c.WindowOf(c.active)
}

// WindowOf returns the effective window of scene i: its preset, or the
// live slider range for an interactive scene. It is zero for an
// interactive scene while no slider is attached.
func (c *Controller) WindowOf(i int) incidents.Window {
	if i < 0 || i >= len(c.scenes) {
		return incidents.Window{}
	}
	scene := c.scenes[i]
	if !scene.Interactive {
		return scene.Window
	}
	if c.slider == nil {
		return incidents.Window{}
	}
	return c.slider.Window()
}
