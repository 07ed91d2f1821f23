package screen

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	motion "github.com/grindlemire/go-motion"
)

// hiddenOpacity is the opacity at or below which a row is not painted.
const hiddenOpacity = 0.05

// Painter draws a Stage as text. Opacity maps onto the 24-step ANSI grey
// ramp; offsets are rounded to whole cells.
type Painter struct {
	renderer *lipgloss.Renderer
}

// NewPainter creates a painter that styles with r. A nil r uses lipgloss's
// default renderer.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{renderer: r}
}

// Render draws every row of s at its laid-out position plus its animated
// offset. Rows later in the layout order paint over earlier ones that land
// on the same line. The canvas grows to fit a row that is still gliding in
// from below the last laid-out row.
func (p *Painter) Render(s *Stage) string {
	type placed struct {
		el      *Element
		x, y    int
		opacity float64
	}

	height := len(s.order) * s.rowHeight
	rows := make([]placed, 0, len(s.order))
	for _, key := range s.order {
		el := s.Lookup(key)
		if el == nil {
			continue
		}
		v := el.Visual()
		if v.Opacity <= hiddenOpacity {
			continue
		}
		y := el.rect.Y + round(v.Offset.Y)
		if y < 0 {
			continue
		}
		x := max(0, el.rect.X+round(v.Offset.X))
		if x >= s.width {
			continue
		}
		height = max(height, y+s.rowHeight)
		rows = append(rows, placed{el: el, x: x, y: y, opacity: v.Opacity})
	}

	lines := make([]string, height)
	for _, r := range rows {
		text := p.style(r.opacity).MaxWidth(s.width - r.x).Render(r.el.text)
		lines[r.y] = strings.Repeat(" ", r.x) + text
	}
	return strings.Join(lines, "\n")
}

func (p *Painter) style(opacity float64) lipgloss.Style {
	return p.renderer.NewStyle().Foreground(Grey(opacity))
}

// Grey returns the ANSI grey for opacity: 232 (near black) at 0 up to 255
// (near white) at 1.
func Grey(opacity float64) lipgloss.Color {
	o := math.Min(math.Max(opacity, 0), 1)
	return lipgloss.Color(strconv.Itoa(232 + round(o*23)))
}

func round(v float64) int {
	return int(math.Round(v))
}

// RowState is a point-in-time view of one row.
type RowState struct {
	Key     string
	Text    string
	Top     int
	Left    int
	Offset  motion.Offset
	Opacity float64
	Players int
}

// Snapshot returns the state of every row in layout order.
func (s *Stage) Snapshot() []RowState {
	out := make([]RowState, 0, len(s.order))
	for _, key := range s.order {
		el := s.Lookup(key)
		if el == nil {
			continue
		}
		v := el.Visual()
		out = append(out, RowState{
			Key:     key,
			Text:    el.text,
			Top:     el.rect.Y,
			Left:    el.rect.X,
			Offset:  v.Offset,
			Opacity: v.Opacity,
			Players: len(el.players),
		})
	}
	return out
}
