package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bcdxn/f1results/internal/domain"
	"github.com/bcdxn/f1results/internal/render"
	"github.com/bcdxn/f1results/internal/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

var (
	s = styles.Default()
)

// LoadFunc retrieves the race weekend to display; it runs once, off the UI goroutine.
type LoadFunc = func(ctx context.Context) (domain.Weekend, error)

// NewResults returns a Bubbletea program displaying the qualifying and race classifications of a
// race weekend.
func NewResults(load LoadFunc, opts ...TUIOption) *tea.Program {
	r := newResults(load, opts...)
	return tea.NewProgram(r, tea.WithContext(r.ctx), tea.WithAltScreen())
}

func newResults(load LoadFunc, opts ...TUIOption) Results {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = s.Spinner

	r := Results{
		load:       load,
		loading:    true,
		loadingMsg: "Loading race results...",
		spinner:    sp,
		logger:     slog.Default(),
		ctx:        context.Background(),
	}
	// apply given options
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

type TUIOption = func(r *Results)

// WithLogger configures the logger to use within the TUI program
func WithLogger(l *slog.Logger) TUIOption {
	return func(r *Results) { r.logger = l }
}

// WithContext configures the context to use within the TUI program
func WithContext(ctx context.Context) TUIOption {
	return func(r *Results) { r.ctx = ctx }
}

// WithLoadingMessage configures the message displayed next to the spinner while loading
func WithLoadingMessage(msg string) TUIOption {
	return func(r *Results) { r.loadingMsg = msg }
}

/* Bubbletea Interface Implementation
------------------------------------------------------------------------------------------------- */

func (r Results) Init() tea.Cmd {
	return tea.Batch(r.spinner.Tick, loadCmd(r.ctx, r.load))
}

func (r Results) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		return handleErrorMsg(r, msg)
	case WeekendMsg:
		return handleWeekendMsg(r, msg)
	case tea.KeyMsg:
		return handleKeyMsg(r, msg)
	case tea.WindowSizeMsg:
		return handleWindowSizeMsg(r, msg)
	default:
		var cmd tea.Cmd
		if r.loading {
			r.spinner, cmd = r.spinner.Update(msg)
		}
		return r, cmd
	}
}

func (r Results) View() string {
	var v string

	switch {
	case r.err != "":
		v = lipgloss.JoinVertical(lipgloss.Left, s.Error.Render(r.err), "", s.Help.Render("q quit"))
	case r.loading:
		v = fmt.Sprintf("%s %s", r.spinner.View(), r.loadingMsg)
	default:
		v = lipgloss.JoinVertical(
			lipgloss.Left,
			titleView(r),
			subtitleView(r),
			tabsView(r),
			tableView(r),
			helpView(),
		)
	}

	return s.Doc.Render(v)
}

/* Tea Message Types
------------------------------------------------------------------------------------------------- */

type WeekendMsg domain.Weekend

type ErrorMsg struct {
	Err error
}

/* Tea Commands
------------------------------------------------------------------------------------------------- */

func loadCmd(ctx context.Context, load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		w, err := load(ctx)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return WeekendMsg(w)
	}
}

/* Tea Message Handlers
------------------------------------------------------------------------------------------------- */

func handleKeyMsg(r Results, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		r.logger.Debug("received quit tea message")
		return r, tea.Quit
	case "tab", "right", "l":
		return selectSession(r, 1), nil
	case "shift+tab", "left", "h":
		return selectSession(r, -1), nil
	}
	// row and page navigation
	var cmd tea.Cmd
	r.table, cmd = r.table.Update(msg)
	return r, cmd
}

func handleErrorMsg(r Results, msg ErrorMsg) (tea.Model, tea.Cmd) {
	r.logger.Error("unable to load race results", "err", msg.Err)
	r.loading = false
	r.err = msg.Err.Error()
	return r, nil
}

func handleWeekendMsg(r Results, msg WeekendMsg) (tea.Model, tea.Cmd) {
	r.loading = false
	r.weekend = domain.Weekend(msg)
	r.active = 0
	if len(r.weekend.Tables) > 0 {
		r.table = newTable(r.weekend.Tables[0], pageSize(r))
	}
	r.logger.Debug("race weekend loaded", "meeting", r.weekend.Meeting.Name, "sessions", len(r.weekend.Tables))
	return r, nil
}

func handleWindowSizeMsg(r Results, msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h, v := s.Doc.GetFrameSize()
	r.width = msg.Width - h
	r.height = msg.Height - v
	if !r.loading && r.active < len(r.weekend.Tables) {
		r.table = newTable(r.weekend.Tables[r.active], pageSize(r))
	}
	return r, nil
}

/* View Helper Functions
------------------------------------------------------------------------------------------------- */

func titleView(r Results) string {
	name := r.weekend.Meeting.Name
	if name == "" {
		name = fmt.Sprintf("%d Round %d", r.weekend.Meeting.Season, r.weekend.Meeting.RoundNumber)
	}
	return fitWidth(r, s.TitleBar).Render(name)
}

func subtitleView(r Results) string {
	m := r.weekend.Meeting
	parts := []string{fmt.Sprintf("Round %d • %d", m.RoundNumber, m.Season)}
	for _, p := range []string{m.CircuitName, m.Place(), m.Date} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return fitWidth(r, s.SubtitleBar).Render(strings.Join(parts, " • "))
}

func tabsView(r Results) string {
	tabs := make([]string, 0, len(r.weekend.Tables))
	for i, t := range r.weekend.Tables {
		style := s.Tab
		if i == r.active {
			style = s.ActiveTab
		}
		tabs = append(tabs, style.Render(t.Session.Title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func tableView(r Results) string {
	if r.active >= len(r.weekend.Tables) || r.weekend.Tables[r.active].Empty() {
		return s.Placeholder.Render(render.NotAvailableMessage)
	}
	return r.table.View()
}

func helpView() string {
	return s.Help.Render("tab switch session • pgup/pgdown page • q quit")
}

// fitWidth stretches the style across the window once its size is known.
func fitWidth(r Results, style lipgloss.Style) lipgloss.Style {
	if r.width > 4 {
		return style.Width(r.width - 4)
	}
	return style
}

/* Private Helper Functions
------------------------------------------------------------------------------------------------- */

func selectSession(r Results, step int) Results {
	n := len(r.weekend.Tables)
	if r.loading || n == 0 {
		return r
	}
	r.active = ((r.active+step)%n + n) % n
	r.table = newTable(r.weekend.Tables[r.active], pageSize(r))
	return r
}

// tableChrome is the number of lines the table draws around its rows: the borders, the header
// and the page footer.
const tableChrome = 6

// pageSize is the number of rows that fit below the header views once the window size is known;
// zero until then.
func pageSize(r Results) int {
	if r.height <= 0 {
		return 0
	}
	used := lipgloss.Height(titleView(r)) +
		lipgloss.Height(subtitleView(r)) +
		lipgloss.Height(tabsView(r)) +
		lipgloss.Height(helpView()) +
		tableChrome
	return max(r.height-used, 1)
}

// newTable builds the table for a session from the render column set, colouring drivers with their
// team colour and the podium positions. Rows are paged when there are more than perPage of them.
func newTable(t domain.ResultTable, perPage int) table.Model {
	cols := render.Columns(t.Source, t.Session)
	columns := make([]table.Column, 0, len(cols))
	for _, c := range cols {
		columns = append(columns, table.NewColumn(c.Key, c.Title, c.Width))
	}

	rows := make([]table.Row, 0, len(t.Rows))
	for _, result := range t.Rows {
		data := table.RowData{}
		for key, value := range render.Cells(result, t.Source, t.Session) {
			data[key] = value
		}
		if result.Position >= 1 && result.Position <= len(s.Podium) {
			data[render.ColumnPosition] = table.NewStyledCell(data[render.ColumnPosition], s.Podium[result.Position-1])
		}
		if result.TeamColor != "" {
			data[render.ColumnDriver] = table.NewStyledCell(
				data[render.ColumnDriver],
				lipgloss.NewStyle().Foreground(lipgloss.Color(result.TeamColor)),
			)
		}
		rows = append(rows, table.NewRow(data))
	}

	m := table.New(columns).
		WithRows(rows).
		WithBaseStyle(s.Table).
		Focused(true)
	if perPage > 0 && len(rows) > perPage {
		m = m.WithPageSize(perPage)
	}
	return m
}

/* Type Definitions
------------------------------------------------------------------------------------------------- */

type Results struct {
	load       LoadFunc
	loading    bool
	loadingMsg string
	err        string
	spinner    spinner.Model
	weekend    domain.Weekend
	active     int
	table      table.Model
	width      int
	height     int
	logger     *slog.Logger
	ctx        context.Context
}
