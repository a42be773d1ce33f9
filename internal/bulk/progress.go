package bulk

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProgressUpdate reports that one more seed finished scanning.
type ProgressUpdate struct {
	Seed       string
	Infeasible bool
}

// ProgressDone signals the scan goroutine has finished (or errored).
type ProgressDone struct{ Err error }

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	statStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ProgressModel is a bubbletea model showing a live progress bar and
// running infeasible count while a bulk scan runs.
type ProgressModel struct {
	bar     progress.Model
	total   int
	done    int
	infeas  int
	updates <-chan ProgressUpdate
	results <-chan ProgressDone
	err     error
	width   int
}

// NewProgressModel returns a ProgressModel that expects total updates
// on updates and a single terminal ProgressDone on results.
func NewProgressModel(total int, updates <-chan ProgressUpdate, results <-chan ProgressDone) ProgressModel {
	return ProgressModel{
		bar:     progress.New(progress.WithDefaultGradient()),
		total:   total,
		updates: updates,
		results: results,
	}
}

// Err returns the error the scan finished with, if any; only
// meaningful after the bubbletea program has quit.
func (m ProgressModel) Err() error { return m.err }

func (m ProgressModel) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), waitForDone(m.results))
}

func waitForUpdate(ch <-chan ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func waitForDone(ch <-chan ProgressDone) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return ProgressDone{}
		}
		return msg
	}
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil

	case ProgressUpdate:
		m.done++
		if msg.Infeasible {
			m.infeas++
		}
		cmd := waitForUpdate(m.updates)
		if m.total > 0 {
			return m, tea.Batch(cmd, m.bar.SetPercent(float64(m.done)/float64(m.total)))
		}
		return m, cmd

	case ProgressDone:
		m.err = msg.Err
		return m, tea.Quit

	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m ProgressModel) View() string {
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	header := labelStyle.Render("hanabi-solver scan")
	stats := statStyle.Render(fmt.Sprintf("%d/%d seeds  %d infeasible (%.1f%%)",
		m.done, m.total, m.infeas, pct*100))
	return fmt.Sprintf("%s\n%s\n%s\n", header, m.bar.View(), stats)
}
