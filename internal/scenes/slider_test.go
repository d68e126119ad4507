package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kpumuk/incidentscope/internal/incidents"
)

func testSlider() *Slider {
	return NewSlider(incidents.NewWindow(day("2015-01-01"), day("2015-01-11")), 11)
}

func TestSlider_Initial(t *testing.T) {
	s := testSlider()

	start, end := s.Positions()
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)
	assert.Equal(t, s.Bounds(), s.Window())
	assert.Equal(t, HandleStart, s.Focus())
}

func TestSlider_MoveRecomputesWindow(t *testing.T) {
	s := testSlider()

	assert.True(t, s.Move(HandleStart, 2))
	assert.True(t, s.Move(HandleEnd, -3))

	assert.Equal(t, incidents.NewWindow(day("2015-01-03"), day("2015-01-08")), s.Window())
}

func TestSlider_ClampsToTrack(t *testing.T) {
	s := testSlider()

	assert.False(t, s.Move(HandleStart, -5))
	assert.False(t, s.Move(HandleEnd, 5))
	start, end := s.Positions()
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	s.Set(HandleEnd, 3)
	s.Set(HandleEnd, 100)
	_, end = s.Positions()
	assert.Equal(t, 10, end)
}

func TestSlider_HandlesNeverCross(t *testing.T) {
	s := testSlider()
	s.Set(HandleEnd, 4)

	s.Set(HandleStart, 8)
	start, end := s.Positions()
	assert.Equal(t, 4, start)
	assert.Equal(t, 4, end)

	s.Set(HandleEnd, 1)
	start, end = s.Positions()
	assert.Equal(t, 4, start)
	assert.Equal(t, 4, end)

	w := s.Window()
	assert.False(t, w.Start.After(w.End))
	assert.Equal(t, 1, w.Days())

	for delta := -20; delta <= 20; delta += 3 {
		s.Move(HandleStart, delta)
		s.Move(HandleEnd, -delta)
		start, end = s.Positions()
		assert.LessOrEqual(t, start, end)
		assert.GreaterOrEqual(t, start, 0)
		assert.LessOrEqual(t, end, s.Width()-1)
	}
}

func TestSlider_SetDate(t *testing.T) {
	s := testSlider()

	assert.True(t, s.SetDate(HandleStart, day("2015-01-05")))
	assert.Equal(t, day("2015-01-05"), s.Window().Start)

	s.SetDate(HandleEnd, day("2020-01-01"))
	assert.Equal(t, day("2015-01-11"), s.Window().End)
}

func TestSlider_Nearest(t *testing.T) {
	s := testSlider()
	s.Set(HandleStart, 3)
	s.Set(HandleEnd, 7)

	assert.Equal(t, HandleStart, s.Nearest(0))
	assert.Equal(t, HandleStart, s.Nearest(4))
	assert.Equal(t, HandleEnd, s.Nearest(6))
	assert.Equal(t, HandleEnd, s.Nearest(10))

	s.Set(HandleEnd, 3)
	assert.Equal(t, HandleStart, s.Nearest(1))
	assert.Equal(t, HandleEnd, s.Nearest(9))
	s.SetFocus(HandleEnd)
	assert.Equal(t, HandleEnd, s.Nearest(3))
	s.ToggleFocus()
	assert.Equal(t, HandleStart, s.Focus())
}

func TestSlider_SetWidthKeepsWindow(t *testing.T) {
	s := testSlider()
	s.SetDate(HandleStart, day("2015-01-03"))
	s.SetDate(HandleEnd, day("2015-01-09"))

	s.SetWidth(21)

	assert.Equal(t, 21, s.Width())
	assert.Equal(t, incidents.NewWindow(day("2015-01-03"), day("2015-01-09")), s.Window())
}
