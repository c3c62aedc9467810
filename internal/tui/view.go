package tui

import (
	"strings"

	"termfm/internal/command"
	"termfm/internal/entry"

	"github.com/charmbracelet/lipgloss"
)

// ErrorBanner replaces the command line after a failed command.
const ErrorBanner = "Invalid command"

const (
	infoLines = 4
	// Border rows and columns of a framed pane.
	frameSize = 2
)

// View implements tea.Model
func (m *Model) View() string {
	bodyHeight := m.height - 1
	if m.showHelp {
		bodyHeight -= lipgloss.Height(m.helpView())
	}
	minHeight := 2*frameSize + infoLines + 1
	if bodyHeight < minHeight {
		bodyHeight = minHeight
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth
	previewHeight := bodyHeight - 2*frameSize - infoLines

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.listView(leftWidth, bodyHeight),
		lipgloss.JoinVertical(lipgloss.Left,
			m.previewView(rightWidth, previewHeight),
			m.infoView(rightWidth),
		),
	)

	view := lipgloss.JoinVertical(lipgloss.Left, body, m.commandLine())
	if m.showHelp {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.helpView())
	}
	return view
}

func (m *Model) listView(width, height int) string {
	innerW, innerH := max(width-frameSize, 1), max(height-frameSize, 1)

	var rows []string
	if m.listErr != nil {
		rows = append(rows, m.styles.Error.Render(truncate(m.listErr.Error(), innerW)))
	}

	// Scroll so the cursor stays visible.
	first := 0
	if visible := innerH - len(rows); m.cursor >= visible {
		first = m.cursor - visible + 1
	}
	for i := first; i < len(m.entries) && len(rows) < innerH; i++ {
		rows = append(rows, m.row(m.entries[i], i == m.cursor, innerW))
	}

	return titled(m.styles.Listing.Width(innerW).Height(innerH), " "+m.dir+" ", strings.Join(rows, "\n"))
}

func (m *Model) row(e entry.Entry, selected bool, width int) string {
	name := truncate(e.DisplayName(), width-1)
	if selected {
		return m.styles.Selected.Render(">" + name)
	}
	if e.IsDir() {
		return " " + m.styles.Directory.Render(name)
	}
	return " " + m.styles.File.Render(name)
}

func (m *Model) previewView(width, height int) string {
	innerW := max(width-frameSize, 1)
	content := ""
	if _, ok := m.Selected(); ok {
		content = entry.Preview(m.fs, m.entries[m.cursor].Path, m.previewLines)
	}

	m.preview.Width = innerW
	m.preview.Height = max(height, 1)
	m.preview.SetContent(clip(content, innerW))
	m.preview.GotoTop()
	return titled(m.styles.Preview.Width(innerW), " Preview ", m.preview.View())
}

func (m *Model) infoView(width int) string {
	innerW := max(width-frameSize, 1)
	content := ""
	if _, ok := m.Selected(); ok {
		content = m.entries[m.cursor].Info(m.fs)
	}
	return titled(m.styles.Info.Width(innerW).Height(infoLines), " Info ", clip(content, innerW))
}

func (m *Model) commandLine() string {
	if m.handler.Mode() == command.Error {
		return m.styles.Error.Render(ErrorBanner)
	}
	return m.handler.Input()
}

func (m *Model) helpView() string {
	return m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" + m.styles.Help.Render(commandHelp)
}

// titled renders content in style's frame with title set into the top border.
func titled(style lipgloss.Style, title, content string) string {
	body := style.BorderTop(false).Render(content)
	width := lipgloss.Width(body)

	b := lipgloss.ThickBorder()
	title = truncate(title, width-2)
	fill := max(width-2-lipgloss.Width(title), 0)
	top := b.TopLeft + title + strings.Repeat(b.Top, fill) + b.TopRight

	border := lipgloss.NewStyle().Foreground(style.GetBorderTopForeground())
	return lipgloss.JoinVertical(lipgloss.Left, border.Render(top), body)
}

// clip truncates every line of s to width runes.
func clip(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = truncate(l, width)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}
