package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/cryptex/internal/puzzle"
	"github.com/verte-zerg/cryptex/internal/reveal"
)

const (
	dialGap  = 1
	capWidth = 2
	// Columns an end cap slides once fully open.
	capTravel   = 4
	maxYawShift = 12
	// Columns of body shift per radian of yaw.
	yawColumns = 10
	// Neighbour rows per radian of pitch.
	pitchRows     = 2
	maxNeighbours = 2
	keyBobRows    = 3
)

var (
	dialStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	faceStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	neighbourStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	capStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C6A2A"))
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")).Bold(true)
	bannerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
)

// rect is a hit area in pointer pixels, half-open on the far edges.
type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

// Scene draws the cryptex in terminal cells and answers hit tests in
// pointer pixels, where one cell is cellW by cellH pixels.
type Scene struct {
	symbols   []string
	positions []int
	cellW     float64
	cellH     float64
	width     int
	height    int

	faceWidth int
	yaw       float64
	pitch     float64

	revealing bool
	snap      reveal.Snapshot
	capRest   float64
	capOpen   float64
	scaleMax  float64

	hits []rect
}

// NewScene lays out dials showing symbols from the alphabet.
func NewScene(alphabet []string, dials int, cellW, cellH float64, progress []reveal.Progress) *Scene {
	s := &Scene{
		symbols:   append([]string(nil), alphabet...),
		positions: make([]int, dials),
		cellW:     cellW,
		cellH:     cellH,
		capRest:   4.2,
		capOpen:   6.0,
		scaleMax:  1.5,
	}
	for _, p := range progress {
		switch p.Name {
		case reveal.Cap:
			s.capRest, s.capOpen = p.Start, p.Target
		case reveal.Scale:
			s.scaleMax = p.Target
		}
	}
	for _, sym := range alphabet {
		s.faceWidth = max(s.faceWidth, runewidth.StringWidth(sym))
	}
	s.faceWidth += 2
	s.layout()
	return s
}

// SetSize records the terminal size in cells.
func (s *Scene) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.layout()
}

// Rotate accumulates a yaw/pitch delta.
func (s *Scene) Rotate(deltaYaw, deltaPitch float64) {
	s.yaw += deltaYaw
	s.pitch += deltaPitch
	s.layout()
}

// HitTestDials returns the dial whose box contains the pixel point.
func (s *Scene) HitTestDials(x, y float64) (puzzle.DialID, bool) {
	for i, r := range s.hits {
		if r.contains(x, y) {
			return puzzle.DialID(i), true
		}
	}
	return 0, false
}

// SetDialRotation shows a dial at the given alphabet position.
func (s *Scene) SetDialRotation(id puzzle.DialID, position int) {
	if int(id) < 0 || int(id) >= len(s.positions) {
		return
	}
	s.positions[id] = position
}

// StartReveal switches the scene to drawing the opening sequence.
func (s *Scene) StartReveal() {
	s.revealing = true
}

// SetReveal stores the reveal values for the next frame.
func (s *Scene) SetReveal(snap reveal.Snapshot) {
	s.snap = snap
}

func (s *Scene) boxWidth() int {
	return s.faceWidth + 2
}

func (s *Scene) bodyWidth() int {
	n := len(s.positions)
	return 2*capWidth + n*s.boxWidth() + max(n-1, 0)*dialGap
}

// neighbours is how many extra rows the pitch tilts into view; negative
// values show symbols below the face, positive ones above.
func (s *Scene) neighbours() int {
	n := int(math.Round(s.pitch * pitchRows))
	return max(-maxNeighbours, min(n, maxNeighbours))
}

func (s *Scene) yawShift() int {
	shift := int(math.Round(s.yaw * yawColumns))
	return max(-maxYawShift, min(shift, maxYawShift))
}

func (s *Scene) capShift() int {
	if !s.revealing || s.capOpen == s.capRest {
		return 0
	}
	frac := (s.snap.Cap - s.capRest) / (s.capOpen - s.capRest)
	frac = max(0, min(frac, 1))
	return int(math.Round(frac * capTravel))
}

// boxHeight is the border rows, the face row and the tilted neighbours.
func (s *Scene) boxHeight() int {
	return 3 + abs(s.neighbours())
}

// origin returns the top-left cell of the body.
func (s *Scene) origin() (int, int) {
	x := (s.width-s.bodyWidth())/2 + s.yawShift()
	y := (s.height - s.boxHeight()) / 2
	return max(x, 0), max(y, 1)
}

func (s *Scene) layout() {
	ox, oy := s.origin()
	boxW := s.boxWidth()
	boxH := s.boxHeight()
	s.hits = s.hits[:0]
	for i := range s.positions {
		col := ox + capWidth + i*(boxW+dialGap)
		s.hits = append(s.hits, rect{
			x0: float64(col) * s.cellW,
			y0: float64(oy) * s.cellH,
			x1: float64(col+boxW) * s.cellW,
			y1: float64(oy+boxH) * s.cellH,
		})
	}
}

func (s *Scene) symbolAt(pos int) string {
	m := len(s.symbols)
	if m == 0 {
		return ""
	}
	return s.symbols[((pos%m)+m)%m]
}

func center(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-w-left)
}

// dialRows renders every row of the dial body, top to bottom. Rows start
// at the left cap, which sits shift columns left of its resting place.
func (s *Scene) dialRows(shift int) []string {
	n := s.neighbours()
	boxH := s.boxHeight()
	rows := make([]string, boxH)
	endCap := capStyle.Render(strings.Repeat("█", capWidth))
	gap := strings.Repeat(" ", shift)
	border := strings.Repeat("─", s.faceWidth)

	for r := 0; r < boxH; r++ {
		var b strings.Builder
		inner := r > 0 && r < boxH-1
		if inner {
			b.WriteString(endCap + gap)
		} else {
			b.WriteString(strings.Repeat(" ", capWidth) + gap)
		}
		for i, pos := range s.positions {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", dialGap))
			}
			switch {
			case r == 0:
				b.WriteString(dialStyle.Render("╭" + border + "╮"))
			case r == boxH-1:
				b.WriteString(dialStyle.Render("╰" + border + "╯"))
			default:
				b.WriteString(dialStyle.Render("│"))
				b.WriteString(s.faceCell(pos, r-1, n))
				b.WriteString(dialStyle.Render("│"))
			}
		}
		if inner {
			b.WriteString(gap + endCap)
		}
		rows[r] = b.String()
	}
	return rows
}

// faceCell renders inner row idx of a dial. With n > 0 the n symbols
// before the face sit above it; with n < 0 the |n| after it sit below.
func (s *Scene) faceCell(pos, idx, n int) string {
	faceRow := 0
	if n > 0 {
		faceRow = n
	}
	offset := idx - faceRow
	text := center(s.symbolAt(pos+offset), s.faceWidth)
	if offset == 0 {
		return faceStyle.Render(text)
	}
	return neighbourStyle.Render(text)
}

// keyRow renders the key grown to the current scale, drawn with a shaft
// glyph matching its spin.
func (s *Scene) keyRow() string {
	if !s.revealing || s.scaleMax <= 0 {
		return ""
	}
	frac := max(0, min(s.snap.Scale/s.scaleMax, 1))
	length := int(math.Round(frac * float64(len(s.positions)*(s.boxWidth()+dialGap))))
	if length == 0 {
		return ""
	}
	shafts := []string{"─", "╲", "│", "╱"}
	angle := math.Mod(s.snap.Spin, math.Pi)
	if angle < 0 {
		angle += math.Pi
	}
	idx := int(math.Round(angle/(math.Pi/4))) % len(shafts)
	return keyStyle.Render("◯" + strings.Repeat(shafts[idx], max(length-1, 0)))
}

func (s *Scene) keyBob() int {
	return int(math.Round(s.snap.Bob * keyBobRows))
}

// Render draws the full frame. banner is shown above the body.
func (s *Scene) Render(banner string) string {
	ox, oy := s.origin()
	shift := s.capShift()
	rows := s.dialRows(shift)
	lines := make([]string, 0, s.height)
	for len(lines) < oy-1 {
		lines = append(lines, "")
	}
	if banner != "" {
		lines = append(lines, lipgloss.PlaceHorizontal(s.width, lipgloss.Center, banner))
	} else {
		lines = append(lines, "")
	}
	indent := strings.Repeat(" ", max(ox-shift, 0))
	for _, row := range rows {
		lines = append(lines, indent+row)
	}
	if key := s.keyRow(); key != "" {
		for i := 0; i < 1+max(s.keyBob(), -1); i++ {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Repeat(" ", ox+capWidth)+key)
	}
	return strings.Join(lines, "\n")
}

// Banner styles an unlock message.
func Banner(text string) string {
	return bannerStyle.Render(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
