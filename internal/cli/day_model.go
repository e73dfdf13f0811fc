package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lbarrett/tempo/internal/cli/formatter"
	"github.com/lbarrett/tempo/internal/domain"
	"github.com/lbarrett/tempo/internal/editor"
	"github.com/lbarrett/tempo/internal/repository"
	"github.com/lbarrett/tempo/internal/timeline"
)

// dayKeyMap holds the day view's key bindings.
type dayKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Nudge       key.Binding
	ResizeStart key.Binding
	ResizeEnd   key.Binding
	Move        key.Binding
	CreateEntry key.Binding
	Commit      key.Binding
	Cancel      key.Binding
	Delete      key.Binding
	Undo        key.Binding
	StartTimer  key.Binding
	StopTimer   key.Binding
	PrevDay     key.Binding
	NextDay     key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newDayKeyMap() dayKeyMap {
	return dayKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "select")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select")),
		Nudge:       key.NewBinding(key.WithKeys("h", "l", "left", "right"), key.WithHelp("←/→", "adjust")),
		ResizeStart: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "resize start")),
		ResizeEnd:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "resize end")),
		Move:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		CreateEntry: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new entry")),
		Commit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Undo:        key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo delete")),
		StartTimer:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "start timer")),
		StopTimer:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop timer")),
		PrevDay:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous day")),
		NextDay:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next day")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Move, k.ResizeEnd, k.CreateEntry, k.Delete, k.StartTimer, k.Help, k.Quit}
}

func (k dayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevDay, k.NextDay, k.Refresh},
		{k.Move, k.ResizeStart, k.ResizeEnd, k.CreateEntry, k.Nudge, k.Commit, k.Cancel},
		{k.Delete, k.Undo, k.StartTimer, k.StopTimer, k.Quit},
	}
}

// dayEntriesMsg signals that the day's entries have been loaded.
type dayEntriesMsg struct {
	details []repository.EntryDetail
	err     error
}

// dayActionMsg reports the outcome of a mutation.
type dayActionMsg struct {
	status string
	err    error
}

// dayTasksMsg carries the task choices for a create gesture.
type dayTasksMsg struct {
	tasks []*domain.Task
	err   error
}

// dayTickMsg drives the running-timer display and the undo countdown.
type dayTickMsg time.Time

// dayModel is the interactive one-day timeline. Gestures run through the
// editor state machine, driven here by keys: one snap step per press, one
// store call per committed gesture.
type dayModel struct {
	app *App
	cfg timeline.Config
	day time.Time

	gesture *editor.Gesture
	undo    *editor.UndoBuffer

	details []repository.EntryDetail
	cursor  int
	loading bool
	err     error
	status  string

	// editTarget is the pixel the keyboard "pointer" sits at mid-gesture.
	editTarget float64

	// task picker shown while a create gesture waits for its task
	picking    bool
	tasks      []*domain.Task
	taskCursor int

	keys dayKeyMap
	help help.Model
	spin spinner.Model
}

func newDayModel(app *App, day time.Time) *dayModel {
	cfg := timeline.DefaultConfig(app.Loc)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleBlue

	return &dayModel{
		app:     app,
		cfg:     cfg,
		day:     day,
		gesture: editor.NewGesture(cfg, app.Entries),
		undo:    editor.NewUndoBuffer(app.Entries, nil),
		loading: true,
		keys:    newDayKeyMap(),
		help:    help.New(),
		spin:    sp,
	}
}

func (m *dayModel) Init() tea.Cmd {
	return tea.Batch(m.loadEntries(), m.spin.Tick, dayTick())
}

func dayTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return dayTickMsg(t)
	})
}

func (m *dayModel) loadEntries() tea.Cmd {
	app, day := m.app, m.day
	return func() tea.Msg {
		details, err := app.Entries.ListForDay(context.Background(), day)
		return dayEntriesMsg{details: details, err: err}
	}
}

func (m *dayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dayEntriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.details = msg.details
		if m.cursor >= len(m.details) {
			m.cursor = len(m.details) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case dayActionMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(msg.err.Error())
		} else {
			m.status = msg.status
		}
		m.loading = true
		return m, m.loadEntries()

	case dayTasksMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(msg.err.Error())
			return m, nil
		}
		if len(msg.tasks) == 0 {
			m.status = "No tasks yet. Add one with: tempo task add"
			return m, nil
		}
		m.tasks = msg.tasks
		m.taskCursor = 0
		m.picking = true
		return m, nil

	case dayTickMsg:
		return m, dayTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *dayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picking {
		return m.handlePickKey(msg)
	}
	if m.gesture.State() == editor.Dragging {
		return m.handleGestureKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.details)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevDay):
		m.day = m.day.AddDate(0, 0, -1)
		m.loading = true
		return m, m.loadEntries()

	case key.Matches(msg, m.keys.NextDay):
		m.day = m.day.AddDate(0, 0, 1)
		m.loading = true
		return m, m.loadEntries()

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadEntries()

	case key.Matches(msg, m.keys.ResizeStart):
		return m.beginGesture(editor.ResizeStart)
	case key.Matches(msg, m.keys.ResizeEnd):
		return m.beginGesture(editor.ResizeEnd)
	case key.Matches(msg, m.keys.Move):
		return m.beginGesture(editor.Move)

	case key.Matches(msg, m.keys.CreateEntry):
		tasks := m.app.Tasks
		return m, func() tea.Msg {
			list, err := tasks.List(context.Background(), repository.TaskFilter{})
			return dayTasksMsg{tasks: list, err: err}
		}

	case key.Matches(msg, m.keys.Delete):
		return m.deleteSelected()

	case key.Matches(msg, m.keys.Undo):
		undo := m.undo
		return m, func() tea.Msg {
			entry, err := undo.Undo(context.Background())
			if err != nil {
				return dayActionMsg{err: err}
			}
			return dayActionMsg{status: "Restored " + formatter.FormatDurationCompact(entry.DurationSeconds) + "."}
		}

	case key.Matches(msg, m.keys.StartTimer):
		detail := m.selected()
		if detail == nil {
			return m, nil
		}
		timer, taskID := m.app.Timer, detail.Entry.TaskID
		return m, func() tea.Msg {
			if _, err := timer.Start(context.Background(), taskID); err != nil {
				return dayActionMsg{err: err}
			}
			return dayActionMsg{status: "Timer started."}
		}

	case key.Matches(msg, m.keys.StopTimer):
		timer := m.app.Timer
		return m, func() tea.Msg {
			active, err := timer.Active(context.Background())
			if err != nil {
				return dayActionMsg{err: err}
			}
			if active == nil {
				return dayActionMsg{status: "No timer running."}
			}
			if _, err := timer.Stop(context.Background(), active.Entry.ID); err != nil {
				return dayActionMsg{err: err}
			}
			return dayActionMsg{status: "Timer stopped."}
		}
	}
	return m, nil
}

// handleGestureKey drives an in-progress gesture: arrows nudge one snap
// step, enter commits once, esc discards.
func (m *dayModel) handleGestureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snapPx := float64(m.cfg.PixelsPerHour) * float64(m.cfg.SnapMinutes) / 60

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.gesture.Cancel()
		m.status = "Cancelled."
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		g := m.gesture
		return m, func() tea.Msg {
			entry, err := g.End(context.Background())
			if err != nil {
				return dayActionMsg{err: err}
			}
			if entry == nil {
				return dayActionMsg{status: "No change."}
			}
			return dayActionMsg{status: "Saved."}
		}

	case key.Matches(msg, m.keys.Nudge):
		switch msg.String() {
		case "h", "left":
			m.editTarget -= snapPx
		case "l", "right":
			m.editTarget += snapPx
		}
		if err := m.gesture.Tick(m.editTarget); err != nil {
			m.status = formatter.StyleRed.Render(err.Error())
		}
		return m, nil
	}
	return m, nil
}

func (m *dayModel) beginGesture(kind editor.Kind) (tea.Model, tea.Cmd) {
	detail := m.selected()
	if detail == nil {
		return m, nil
	}
	if detail.Entry.EndTime == nil {
		m.status = "Stop the timer before editing this entry."
		return m, nil
	}

	entry := detail.Entry
	var anchor time.Time
	switch kind {
	case editor.ResizeStart, editor.Move:
		anchor = entry.StartTime
	case editor.ResizeEnd:
		anchor = *entry.EndTime
	}
	m.editTarget = m.cfg.TimeToPosition(anchor)

	if err := m.gesture.Begin(kind, &entry, m.day, m.editTarget); err != nil {
		m.status = formatter.StyleRed.Render(err.Error())
		return m, nil
	}
	m.status = fmt.Sprintf("%s: ←/→ adjust, enter commit, esc cancel", kind)
	return m, nil
}

// handlePickKey drives the task picker that precedes a create gesture.
func (m *dayModel) handlePickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.picking = false
		m.status = "Cancelled."
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.taskCursor < len(m.tasks)-1 {
			m.taskCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		m.picking = false
		return m.beginCreate(m.tasks[m.taskCursor])
	}
	return m, nil
}

// beginCreate opens a create gesture for the picked task. The candidate
// anchors after the day's last stopped entry, or at the start of the track
// when the day is empty, and grows with → like any other drag.
func (m *dayModel) beginCreate(task *domain.Task) (tea.Model, tea.Cmd) {
	anchor := m.cfg.WindowStart(m.day)
	for _, d := range m.details {
		if d.Entry.EndTime != nil && d.Entry.EndTime.After(anchor) {
			anchor = *d.Entry.EndTime
		}
	}
	m.editTarget = m.cfg.TimeToPosition(anchor)

	if err := m.gesture.BeginCreate(task.ID, m.day, m.editTarget); err != nil {
		m.status = formatter.StyleRed.Render(err.Error())
		return m, nil
	}
	m.status = fmt.Sprintf("create %q: ←/→ adjust, enter commit, esc cancel", task.Name)
	return m, nil
}

func (m *dayModel) deleteSelected() (tea.Model, tea.Cmd) {
	detail := m.selected()
	if detail == nil {
		return m, nil
	}
	if detail.Entry.EndTime == nil {
		m.status = "Stop the timer before deleting this entry."
		return m, nil
	}

	entry := detail.Entry
	undo := m.undo
	return m, func() tea.Msg {
		if err := undo.Delete(context.Background(), &entry); err != nil {
			return dayActionMsg{err: err}
		}
		return dayActionMsg{status: "Deleted — press u to undo."}
	}
}

func (m *dayModel) selected() *repository.EntryDetail {
	if m.cursor < 0 || m.cursor >= len(m.details) {
		return nil
	}
	return &m.details[m.cursor]
}

// trackWidth is the character budget for each entry's duration bar.
const trackWidth = 48

func (m *dayModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render(m.day.In(m.app.Loc).Format("Monday 2 January 2006")))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		fmt.Fprintf(&b, "%s loading…\n", m.spin.View())
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render(m.err.Error()) + "\n")
	case len(m.details) == 0:
		b.WriteString(formatter.StyleDim.Render("No entries for this day.") + "\n")
	default:
		for i, d := range m.details {
			b.WriteString(m.renderRow(i, d))
		}
	}

	if m.gesture.State() == editor.Dragging && m.gesture.Kind() == editor.Create {
		b.WriteString(m.renderCreateRow())
	}
	if m.picking {
		b.WriteString(m.renderPicker())
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.undo.CanUndo() {
		b.WriteString(formatter.StyleYellow.Render("undo available") + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *dayModel) renderRow(i int, d repository.EntryDetail) string {
	entry := d.Entry
	start, end := entry.StartTime, time.Now().UTC()
	running := entry.EndTime == nil
	if !running {
		end = *entry.EndTime
	}

	// A dragged entry renders at its candidate interval, not its stored
	// one; nothing is persisted until the gesture commits. Create gestures
	// render their own row instead.
	editing := m.gesture.State() == editor.Dragging &&
		m.gesture.Kind() != editor.Create && i == m.cursor
	if editing {
		start, end = m.gesture.Candidate()
	}

	cursor := "  "
	if i == m.cursor {
		cursor = formatter.StyleHeader.Render("▸ ")
	}

	clock := fmt.Sprintf("%s-%s",
		start.In(m.app.Loc).Format("15:04"),
		end.In(m.app.Loc).Format("15:04"))
	if running {
		clock = start.In(m.app.Loc).Format("15:04") + "-  now"
	}

	bar := m.renderBar(start, end, d.ProjectColor, editing)

	dur := formatter.FormatDurationCompact(int(end.Sub(start).Seconds()))
	if running {
		dur = formatter.RunningIndicator()
	}

	name := d.TaskName
	if d.ProjectName != "" {
		name += formatter.StyleDim.Render(" · " + d.ProjectName)
	}

	return fmt.Sprintf("%s%s %s %-8s %s\n", cursor, formatter.StyleFg.Render(clock), bar, dur, name)
}

// renderCreateRow shows the candidate interval of an in-flight create
// gesture; the row only becomes a stored entry on commit.
func (m *dayModel) renderCreateRow() string {
	start, end := m.gesture.Candidate()
	clock := fmt.Sprintf("%s-%s",
		start.In(m.app.Loc).Format("15:04"),
		end.In(m.app.Loc).Format("15:04"))
	bar := m.renderBar(start, end, "", true)
	dur := formatter.FormatDurationCompact(int(end.Sub(start).Seconds()))
	return fmt.Sprintf("%s%s %s %-8s %s\n",
		formatter.StyleHeader.Render("+ "), formatter.StyleFg.Render(clock), bar, dur,
		formatter.StyleDim.Render("new entry"))
}

func (m *dayModel) renderPicker() string {
	var b strings.Builder
	b.WriteString("\n" + formatter.StyleHeader.Render("New entry for which task?") + "\n")
	for i, task := range m.tasks {
		cursor := "  "
		if i == m.taskCursor {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		b.WriteString(cursor + task.Name + "\n")
	}
	return b.String()
}

// renderBar scales the entry's pixel span down to a character bar so the
// view keeps the track's proportions.
func (m *dayModel) renderBar(start, end time.Time, color string, editing bool) string {
	from := clampF(m.cfg.TimeToPosition(start), 0, m.cfg.Width())
	to := clampF(m.cfg.TimeToPosition(end), 0, m.cfg.Width())

	scale := float64(trackWidth) / m.cfg.Width()
	lead := int(from * scale)
	span := int((to - from) * scale)
	if span < 1 {
		span = 1
	}
	if lead+span > trackWidth {
		span = trackWidth - lead
	}

	style := formatter.ProjectStyle(color)
	if editing {
		style = formatter.StyleYellow
	}
	return formatter.StyleDim.Render(strings.Repeat("·", lead)) +
		style.Render(strings.Repeat("█", span)) +
		formatter.StyleDim.Render(strings.Repeat("·", trackWidth-lead-span))
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
