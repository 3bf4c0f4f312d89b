package tui

import (
	"fmt"
	"strings"

	"onthisday/internal/domain"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseChecking Phase = iota
	PhaseDone
	PhaseError
)

// Messages for the TUI
type (
	StatusMsg struct {
		Event domain.StatusEvent
	}
	ResultMsg struct {
		Result domain.PhotoResult
	}
	ErrorMsg struct {
		Err error
	}
)

// Config for the TUI
type Config struct {
	Server     string
	TargetPath string
	Verbose    bool
	// MaxVisible limits how many photos are listed at once.
	MaxVisible int
}

// Model is the main TUI model
type Model struct {
	config   Config
	Phase    Phase
	Result   domain.PhotoResult
	Events   []domain.StatusEvent
	Err      error
	Selected int
	Chosen   bool
	Quitting bool
	spinner  spinner.Model
	width    int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	if cfg.MaxVisible <= 0 {
		cfg.MaxVisible = 8
	}

	return Model{
		config:  cfg,
		Phase:   PhaseChecking,
		spinner: s,
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// SelectedPhoto returns the photo picked with Enter, if any.
func (m Model) SelectedPhoto() (domain.Photo, bool) {
	if !m.Chosen || m.Selected < 0 || m.Selected >= len(m.Result.Photos) {
		return domain.Photo{}, false
	}
	return m.Result.Photos[m.Selected], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.Quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.Phase == PhaseDone && m.Selected > 0 {
				m.Selected--
			}
		case "down", "j":
			if m.Phase == PhaseDone && m.Selected < len(m.Result.Photos)-1 {
				m.Selected++
			}
		case "enter":
			if m.Phase == PhaseDone && len(m.Result.Photos) > 0 {
				m.Chosen = true
			}
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}
		return m, nil

	case StatusMsg:
		m.Events = append(m.Events, msg.Event)
		return m, nil

	case ResultMsg:
		m.Phase = PhaseDone
		m.Result = msg.Result
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseChecking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseChecking:
		b.WriteString(m.renderChecking())
	case PhaseDone:
		b.WriteString(m.renderPhotos())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(glyphCalendar + " On This Day")
	subtitle := subtitleStyle.Render("Photos from this day in past years")
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		metaStyle.Render(fmt.Sprintf("%s Server: %s", glyphServer, m.config.Server)),
		metaStyle.Render(fmt.Sprintf("%s Folder: %s", glyphFolder, m.config.TargetPath)),
	)
}

func (m Model) renderChecking() string {
	msg := "Connecting..."
	if n := len(m.Events); n > 0 {
		msg = m.Events[n-1].Message
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), msg)
}

func (m Model) renderPhotos() string {
	var b strings.Builder

	b.WriteString(dayStyle.Render(m.Result.Day.Format("January 2")))
	b.WriteString("\n\n")

	if len(m.Result.Photos) == 0 {
		b.WriteString(metaStyle.Render("  " + m.lastMessage()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(foundStyle.Render(fmt.Sprintf("%s %s", glyphFound, m.lastMessage())))
	b.WriteString("\n\n")

	start, end := visibleWindow(len(m.Result.Photos), m.Selected, m.config.MaxVisible)
	if start > 0 {
		b.WriteString(moreStyle.Render(fmt.Sprintf("  ... %d above", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.formatPhoto(i))
		b.WriteString("\n")
	}
	if end < len(m.Result.Photos) {
		b.WriteString(moreStyle.Render(fmt.Sprintf("  ... %d below", len(m.Result.Photos)-end)))
		b.WriteString("\n")
	}

	if m.config.Verbose && len(m.Result.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Warnings:"))
		b.WriteString("\n")
		for _, w := range m.Result.Warnings {
			b.WriteString(fmt.Sprintf("  %s %s\n", glyphWarning, w))
		}
	}

	return b.String()
}

func (m Model) formatPhoto(i int) string {
	photo := m.Result.Photos[i]
	cursor := "  "
	nameStyle := photoNameStyle
	if i == m.Selected {
		cursor = cursorStyle.Render(glyphCursor + " ")
		nameStyle = cursorStyle
	}
	age := humanize.RelTime(photo.LastModified, m.Result.Day, "ago", "from now")
	return fmt.Sprintf("%s%s  %s", cursor, nameStyle.Render(photo.Name), yearStyle.Render(fmt.Sprintf("%d · %s", photo.LastModified.Year(), age)))
}

func (m Model) lastMessage() string {
	if n := len(m.Events); n > 0 {
		return m.Events[n-1].Message
	}
	return ""
}

func (m Model) renderError() string {
	icon := errorStyle.Render(glyphError)
	msg := errorStyle.Render(m.lastMessage())
	if m.lastMessage() == "" && m.Err != nil {
		msg = errorStyle.Render(fmt.Sprintf("Error: %s", m.Err.Error()))
	}

	return box(failure).Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseChecking:
		help = "Press q to quit"
	case PhaseDone:
		if len(m.Result.Photos) > 0 {
			help = "↑ ↓ to move • Enter to print the URL • q to quit"
		} else {
			help = "Press Enter to exit"
		}
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

// visibleWindow keeps the selected row inside a window of at most size rows.
func visibleWindow(total, selected, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := selected - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > total {
		end = total
		start = end - size
	}
	return start, end
}
