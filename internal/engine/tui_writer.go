package engine

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"meteorsim/internal/impact"
	"meteorsim/internal/units"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a log line for the viewport.
type logMsg struct{ line string }

// resultMsg carries the full result for the effects table.
type resultMsg struct{ impact.SimulationResult }

const maxLogLines = 1000

// TUIWriter renders results using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter() *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(), tea.WithAltScreen())
	w.program = p
	go func() {
		_ = p.Start()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteResult implements ResultWriter.
func (w *TUIWriter) WriteResult(r impact.SimulationResult) error {
	eColor := severityColor(r.EnergyMegatons)
	line := fmt.Sprintf("%s[%s]%s %srun=%s%s %sloc=(%.4f,%.4f)%s %senergy=%.2fMT%s %scrater=%.2fkm%s %squake=M%.1f%s",
		colorGray, r.Timestamp.Format(time.RFC3339), colorReset,
		colorWhite, r.ID, colorReset,
		colorBlue, r.Location.Lat, r.Location.Lon, colorReset,
		eColor, r.EnergyMegatons, colorReset,
		colorMagenta, r.Crater.DiameterM/units.MetersPerKilometer, colorReset,
		colorGreen, r.Earthquake.Magnitude, colorReset,
	)
	w.program.Send(logMsg{line: line})
	w.program.Send(resultMsg{r})
	return nil
}

// WriteResults outputs multiple results.
func (w *TUIWriter) WriteResults(rows []impact.SimulationResult) error {
	for _, r := range rows {
		_ = w.WriteResult(r)
	}
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	table        table.Model
	vp           viewport.Model
	logs         []string
	latest       impact.SimulationResult
	haveResult   bool
	runs         int
	wrap         bool
	autoscroll   bool
	help         bool
	headerHeight int
	height       int
}

func newTUIModel() tuiModel {
	cols := []table.Column{
		{Title: "Effect", Width: 14},
		{Title: "Extent", Width: 18},
		{Title: "Severity", Width: 22},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(6))
	vp := viewport.New(0, 0)
	return tuiModel{table: t, vp: vp, autoscroll: true}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.height = msg.Height
		m.headerHeight = lipgloss.Height(m.renderHeader())
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "?", "h", "esc":
				m.help = false
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
			return m, nil
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
			return m, nil
		case "h", "?":
			m.help = !m.help
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
			case "pgdown", "ctrl+n":
				m.vp.LineDown(10)
			case "pgup", "ctrl+p":
				m.vp.LineUp(10)
			default:
				var cmd tea.Cmd
				m.vp, cmd = m.vp.Update(msg)
				return m, cmd
			}
		}
		return m, nil
	case logMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
		m.refreshViewport()
	case resultMsg:
		m.latest = msg.SimulationResult
		m.haveResult = true
		m.runs++
		m.table.SetRows(effectRows(m.latest))
		m.headerHeight = lipgloss.Height(m.renderHeader())
		m.updateViewportHeight()
	}
	return m, nil
}

func effectRows(r impact.SimulationResult) []table.Row {
	return []table.Row{
		{"Crater", fmt.Sprintf("%.2f km wide", r.Crater.DiameterM/units.MetersPerKilometer), fmt.Sprintf("%.0f m deep", r.Crater.DepthM)},
		{"Fireball", fmt.Sprintf("%.2f km radius", r.Fireball.RadiusKm), fmt.Sprintf("burns to %.1f km", r.Fireball.ThirdDegreeBurnKm)},
		{"Shockwave", fmt.Sprintf("%.0f dB", r.Shockwave.Decibels), fmt.Sprintf("homes down to %.1f km", r.Shockwave.HomeCollapseKm)},
		{"Wind blast", fmt.Sprintf("%.0f m/s peak", r.WindBlast.PeakSpeedMps), fmt.Sprintf("trees down to %.1f km", r.WindBlast.TreesDownKm)},
		{"Earthquake", fmt.Sprintf("M %.1f", r.Earthquake.Magnitude), fmt.Sprintf("felt to %.1f km", r.Earthquake.FeltRadiusKm)},
	}
}

func (m *tuiModel) updateViewportHeight() {
	bottomHeight := lipgloss.Height(m.renderBottom())
	h := m.height - m.headerHeight - bottomHeight - 3
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{
		m.renderHeader(),
		divider,
		m.vp.View(),
		divider,
		m.renderBottom(),
	}
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderHeader() string {
	if !m.haveResult {
		return "Waiting for results..."
	}
	title := fmt.Sprintf("Run %s  %.2f MT  (%.4f, %.4f)",
		m.latest.ID, m.latest.EnergyMegatons, m.latest.Location.Lat, m.latest.Location.Lon)
	return lipgloss.JoinVertical(lipgloss.Left, title, m.table.View())
}

func (m tuiModel) renderBottom() string {
	wrapColor := lipgloss.Color("9")
	if m.wrap {
		wrapColor = lipgloss.Color("10")
	}
	scrollColor := lipgloss.Color("10")
	if !m.autoscroll {
		scrollColor = lipgloss.Color("9")
	}
	wrapIndicator := lipgloss.NewStyle().Foreground(wrapColor).Render("●")
	scrollIndicator := lipgloss.NewStyle().Foreground(scrollColor).Render("●")
	return fmt.Sprintf("runs=%d | Wrap %s | Scroll %s | h for help", m.runs, wrapIndicator, scrollIndicator)
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" q  quit",
		" w  toggle line wrap",
		" s  toggle auto-scroll",
		" h/? toggle this help view",
		"",
		"When auto-scroll is disabled:",
		" j/k or up/down    scroll one line",
		" pgdown/pgup       scroll a page",
	}
	return strings.Join(lines, "\n")
}
