// Package tui provides the Bubble Tea cryptex interface.
package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cryptex/internal/gesture"
	"github.com/verte-zerg/cryptex/internal/model"
	"github.com/verte-zerg/cryptex/internal/puzzle"
	statsPkg "github.com/verte-zerg/cryptex/internal/stats"
	"github.com/verte-zerg/cryptex/internal/store"
)

const frameInterval = 16 * time.Millisecond

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

type frameMsg time.Time

// Model implements the Bubble Tea cryptex UI.
type Model struct {
	config  model.Config
	store   *store.Store
	session *puzzle.Session
	scene   *Scene
	dials   int

	epoch time.Time
	now   func() time.Time

	width  int
	height int

	saved   bool
	saveErr error

	hasBest bool
	bestMs  int64
	runs    int
}

// NewModel wires a session to its scene. st may be nil, in which case runs
// are not recorded.
func NewModel(cfg model.Config, st *store.Store, session *puzzle.Session, scene *Scene) *Model {
	m := &Model{
		config:  cfg,
		store:   st,
		session: session,
		scene:   scene,
		dials:   len(session.Positions()),
		now:     time.Now,
	}
	m.epoch = m.now()
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scene.SetSize(msg.Width, max(msg.Height-1, 0))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.BlurMsg:
		m.session.PointerCancel()
		return m, nil
	case frameMsg:
		m.session.Frame(m.clockMs())
		m.scene.SetReveal(m.session.Reveal())
		return m, tick()
	default:
		return m, nil
	}
}

func (m *Model) clockMs() int64 {
	return m.now().Sub(m.epoch).Milliseconds()
}

// sample converts a cell position into pointer pixels at the cell centre.
func (m *Model) sample(x, y int) gesture.Sample {
	return gesture.Sample{
		X:           (float64(x) + 0.5) * m.config.CellWidth,
		Y:           (float64(y) + 0.5) * m.config.CellHeight,
		TimestampMs: m.clockMs(),
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	s := m.sample(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.session.PointerDown(s)
	case tea.MouseActionMotion:
		m.session.PointerMove(s)
	case tea.MouseActionRelease:
		before := m.session.Status()
		outcome := m.session.PointerUp(s)
		if outcome != gesture.None {
			log.Printf("gesture %s at (%.0f, %.0f): %v", outcome, s.X, s.Y, m.session.Symbols())
		}
		if before == puzzle.Locked && m.session.Status() != puzzle.Locked {
			log.Printf("unlocked: %+v", m.session.Stats())
			m.finishRun()
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	banner := ""
	if m.session.Status() != puzzle.Locked {
		banner = Banner("UNLOCKED")
	}
	body := m.scene.Render(banner)
	if m.width == 0 || m.height < 3 {
		return body
	}
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	lines := strings.Split(body, "\n")
	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}
	if len(lines) > m.height-1 {
		lines = lines[:m.height-1]
	}
	return strings.Join(lines, "\n") + "\n" + footer
}

func (m *Model) renderFooter() string {
	st := m.session.Stats()
	segments := []string{fmt.Sprintf("Turns %d", st.Advances)}
	if m.session.Status() != puzzle.Locked && st.UnlockedMs >= st.StartedMs {
		segments = append(segments, "Time "+statsPkg.FormatDuration(st.UnlockedMs-st.StartedMs))
	}
	if m.hasBest {
		segments = append(segments, fmt.Sprintf("Best %s · %d runs", statsPkg.FormatDuration(m.bestMs), m.runs))
	}
	if m.saveErr != nil {
		segments = append(segments, "save failed: "+m.saveErr.Error())
	}
	segments = append(segments, "click a dial · drag to turn · q to quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	runs, err := m.store.ListRuns(context.Background(), model.StatsConfig{})
	if err != nil {
		log.Printf("failed to load run stats: %v", err)
		return
	}
	if len(runs) == 0 {
		return
	}
	summary := statsPkg.Summarize(runs)
	m.hasBest = true
	m.bestMs = summary.BestMs
	m.runs = summary.Runs
}

func (m *Model) finishRun() {
	if m.saved {
		return
	}
	m.saved = true
	run := m.runRecord()
	if m.hasBest {
		m.bestMs = min(m.bestMs, run.DurationMs)
	} else {
		m.bestMs = run.DurationMs
		m.hasBest = true
	}
	m.runs++
	if m.store == nil {
		return
	}
	if _, err := m.store.InsertRun(context.Background(), run); err != nil {
		m.saveErr = err
		log.Printf("failed to save run: %v", err)
	}
}

func (m *Model) runRecord() model.RunRecord {
	st := m.session.Stats()
	started := m.epoch.Add(time.Duration(st.StartedMs) * time.Millisecond)
	ended := m.epoch.Add(time.Duration(st.UnlockedMs) * time.Millisecond)
	return model.RunRecord{
		RunID:         st.RunID,
		StartedAt:     started,
		EndedAt:       ended,
		Dials:         m.dials,
		AlphabetSize:  len(m.config.Alphabet),
		Taps:          st.Taps,
		Drags:         st.Drags,
		Advances:      st.Advances,
		Misses:        st.Misses,
		CooldownDrops: st.CooldownDrops,
		DurationMs:    st.UnlockedMs - st.StartedMs,
	}
}
