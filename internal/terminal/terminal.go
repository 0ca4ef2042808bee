// Package terminal hosts the site in a terminal: bubbletea drives the frame
// clock and every two pixel rows are drawn as one row of half-block cells.
package terminal

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"csethon/internal/app"
	"csethon/internal/page"
)

// lineStep is how far one j/k press scrolls, in pixels.
const lineStep = 16

type tickMsg time.Time

// Model is the bubbletea model wrapping an app.App.
type Model struct {
	app      *app.App
	log      *zap.Logger
	interval time.Duration

	cols, rows int
	frame      *image.RGBA
	status     string
}

func NewModel(a *app.App, interval time.Duration, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{app: a, log: log.Named("terminal"), interval: interval}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.WindowSizeMsg:
		if msg.Width <= 0 || msg.Height <= 0 {
			return m, nil
		}
		m.cols, m.rows = msg.Width, msg.Height
		m.app.Resize(m.cols, m.rows*2)
		return m, nil
	case tickMsg:
		m.frame = m.app.Frame(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "j", "down":
		m.app.Scroll(lineStep * 2)
	case "k", "up":
		m.app.Scroll(-lineStep * 2)
	case "pgdown", " ":
		m.app.Scroll(float64(m.rows * 2))
	case "pgup":
		m.app.Scroll(-float64(m.rows * 2))
	case "home", "g":
		m.app.Activate(page.AnchorHome)
	case "e":
		m.app.Activate(page.AnchorEvents)
	case "r", "enter":
		if m.app.Phase() != app.PhasePage {
			return m, nil
		}
		if err := m.app.Register(0); err != nil {
			m.log.Warn("register failed", zap.Error(err))
			m.status = err.Error()
		} else {
			m.status = ""
		}
	}
	return m, nil
}

// Status is the last error shown on the bottom row, if any.
func (m Model) Status() string { return m.status }

func (m Model) View() string {
	if m.frame == nil {
		return ""
	}
	out := Cells(m.frame)
	if m.status != "" {
		lines := strings.Split(out, "\n")
		lines[len(lines)-1] = statusStyle.Render(truncate(m.status, m.cols))
		out = strings.Join(lines, "\n")
	}
	return out
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Background(lipgloss.Color("#000000"))

func truncate(s string, n int) string {
	r := []rune(s)
	if n > 0 && len(r) > n {
		return string(r[:n])
	}
	return s
}

func hex(img *image.RGBA, x, y int) string {
	if y >= img.Bounds().Dy() {
		return "#000000"
	}
	c := img.RGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Cells renders img as rows of upper half blocks: the foreground carries
// the top pixel and the background the one below it. Runs of identical
// cells share one style.
func Cells(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := 0; y < b.Dy(); y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run, fg, bg := 0, "", ""
		flush := func() {
			if run == 0 {
				return
			}
			st := lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
			sb.WriteString(st.Render(strings.Repeat("▀", run)))
			run = 0
		}
		for x := 0; x < b.Dx(); x++ {
			f, k := hex(img, x, y), hex(img, x, y+1)
			if run > 0 && (f != fg || k != bg) {
				flush()
			}
			fg, bg = f, k
			run++
		}
		flush()
	}
	return sb.String()
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, a *app.App, interval time.Duration, log *zap.Logger) error {
	p := tea.NewProgram(NewModel(a, interval, log), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}
