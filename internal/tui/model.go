// Package tui is the interactive file browser: a listing with preview and
// info panes and a command line driven by the command package.
package tui

import (
	"os/exec"
	"path/filepath"
	"time"

	"termfm/internal/command"
	"termfm/internal/entry"
	"termfm/internal/log"
	"termfm/internal/watch"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

// Options configure a Model. Zero values fall back to sensible defaults.
type Options struct {
	Fs           afero.Fs
	Dir          string
	Filter       *entry.Filter
	PreviewLines int
	Tick         time.Duration
	Opener       string
	Theme        Theme
	// Watcher is optional; when set the listing refreshes on changes.
	Watcher *watch.Watcher
	// Start launches the opener. Defaults to starting a detached process.
	Start func(name string, args ...string) error
}

type tickMsg time.Time

type changeMsg watch.Change

type openedMsg struct {
	path string
	err  error
}

// Model implements tea.Model.
type Model struct {
	fs      afero.Fs
	dir     string
	filter  *entry.Filter
	entries []entry.Entry
	cursor  int
	listErr error

	handler *command.Handler

	previewLines int
	tick         time.Duration
	opener       string
	start        func(name string, args ...string) error
	watcher      *watch.Watcher

	keys     keyMap
	help     help.Model
	showHelp bool
	preview  viewport.Model
	styles   Styles

	width  int
	height int
}

// New builds a model rooted at opts.Dir and reads its listing.
func New(opts Options) *Model {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.PreviewLines <= 0 {
		opts.PreviewLines = entry.DefaultPreviewLines
	}
	if opts.Tick <= 0 {
		opts.Tick = 200 * time.Millisecond
	}
	if opts.Opener == "" {
		opts.Opener = "xdg-open"
	}
	if opts.Theme == (Theme{}) {
		opts.Theme = DefaultTheme
	}
	if opts.Start == nil {
		opts.Start = startDetached
	}

	m := &Model{
		fs:           opts.Fs,
		dir:          filepath.Clean(opts.Dir),
		filter:       opts.Filter,
		previewLines: opts.PreviewLines,
		tick:         opts.Tick,
		opener:       opts.Opener,
		start:        opts.Start,
		watcher:      opts.Watcher,
		keys:         defaultKeyMap(),
		help:         help.New(),
		preview:      viewport.New(0, opts.PreviewLines),
		styles:       NewStyles(opts.Theme),
		width:        80,
		height:       24,
	}
	m.handler = command.NewHandler(command.NewExecutor(m.fs, m))
	m.refresh()
	return m
}

// Dir implements command.DirProvider: commands resolve against the
// directory being browsed.
func (m *Model) Dir() (string, error) {
	return m.dir, nil
}

// Selected returns the highlighted entry name; ok is false for an empty
// listing.
func (m *Model) Selected() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return "", false
	}
	return m.entries[m.cursor].Name, true
}

// Entries is the listing of the working directory, in display order.
func (m *Model) Entries() []entry.Entry { return m.entries }

// Cursor is the index of the highlighted entry.
func (m *Model) Cursor() int { return m.cursor }

// Mode is the command line's current mode.
func (m *Model) Mode() command.Mode { return m.handler.Mode() }

// Input is the command line text.
func (m *Model) Input() string { return m.handler.Input() }

// Handler is the command line the browser drives.
func (m *Model) Handler() *command.Handler { return m.handler }

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.watcher != nil {
		if err := m.watcher.Watch(m.dir); err != nil {
			log.LogWithFields(log.F("directory", m.dir), log.F("error", err)).Warn("Cannot watch directory")
		}
		cmds = append(cmds, waitForChange(m.watcher.Changes()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(ch <-chan watch.Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg(change)
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.refresh()
		return m, m.tickCmd()

	case changeMsg:
		if msg.Dir == m.dir {
			m.refresh()
		}
		return m, waitForChange(m.watcher.Changes())

	case openedMsg:
		if msg.err != nil {
			log.LogWithFields(log.F("path", msg.path), log.F("error", msg.err)).Warn("Failed to open file")
		}
		return m, nil

	case tea.KeyMsg:
		if m.handler.Mode() == command.Editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Enter):
		return m, m.enter()
	case key.Matches(msg, m.keys.Parent):
		m.parent()
	case key.Matches(msg, m.keys.Command):
		m.handler.Begin()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		name, ok := m.Selected()
		m.handler.Submit(name, ok)
		m.refresh()
	case tea.KeyEsc:
		m.handler.Cancel()
	case tea.KeyBackspace:
		m.handler.Backspace()
	case tea.KeySpace:
		m.handler.Type(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.handler.Type(r)
		}
	}
	return m, nil
}

// move shifts the cursor by delta, wrapping at both ends.
func (m *Model) move(delta int) {
	n := len(m.entries)
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

// enter descends into the highlighted directory or hands a file to the
// opener.
func (m *Model) enter() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return nil
	}
	e := m.entries[m.cursor]

	// Follow links so a link to a directory can be entered.
	info, err := m.fs.Stat(e.Path)
	if err != nil {
		log.LogWithFields(log.F("path", e.Path), log.F("error", err)).Debug("Cannot stat entry")
		return nil
	}
	if info.IsDir() {
		m.chdir(e.Path, "")
		return nil
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	opener, path, start := m.opener, e.Path, m.start
	return func() tea.Msg {
		return openedMsg{path: path, err: start(opener, path)}
	}
}

// parent moves to the parent directory, keeping the directory just left
// highlighted.
func (m *Model) parent() {
	parent := filepath.Dir(m.dir)
	if parent == m.dir {
		return
	}
	m.chdir(parent, filepath.Base(m.dir))
}

func (m *Model) chdir(dir, highlight string) {
	m.dir = dir
	m.cursor = 0
	m.refresh()
	for i, e := range m.entries {
		if e.Name == highlight {
			m.cursor = i
			break
		}
	}
	m.clampCursor()
	if m.watcher != nil {
		if err := m.watcher.Watch(dir); err != nil {
			log.LogWithFields(log.F("directory", dir), log.F("error", err)).Debug("Cannot watch directory")
		}
	}
}

// refresh re-reads the listing, keeping the cursor on the same name when it
// still exists.
func (m *Model) refresh() {
	current, hadSelection := m.Selected()

	entries, err := entry.ReadDir(m.fs, m.dir, m.filter)
	m.entries, m.listErr = entries, err
	if err != nil {
		log.LogWithError(err).Debug("Cannot read directory")
	}

	if hadSelection {
		for i, e := range m.entries {
			if e.Name == current {
				m.cursor = i
				break
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	switch {
	case len(m.entries) == 0:
		m.cursor = -1
	case m.cursor < 0:
		m.cursor = 0
	case m.cursor >= len(m.entries):
		m.cursor = len(m.entries) - 1
	}
}
