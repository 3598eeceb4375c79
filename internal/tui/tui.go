// Package tui renders a kasino session in the terminal and turns typed
// commands into clicks.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/kasino/internal/bot"
	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/game"
)

const (
	logPane   = 0
	inputPane = 1

	sidebarWidth    = 25
	defaultBotDelay = 500 * time.Millisecond
)

// Options configures the TUI
type Options struct {
	Humans   []int           // seats played from the keyboard
	Bots     map[int]bot.Bot // seats played by bots
	BotDelay time.Duration
	TestMode bool
}

// botTurnMsg asks the model to let the current bot play
type botTurnMsg struct{}

// Model is the Bubble Tea model for a kasino session. Session events are
// delivered on the Update goroutine, since every Click happens there.
type Model struct {
	session   *game.Session
	logger    *log.Logger
	formatter *game.EventFormatter
	humans    map[int]bool
	bots      map[int]bot.Bot
	botDelay  time.Duration

	// UI components
	logViewport viewport.Model
	input       textinput.Model
	help        help.Model
	keys        keyMap

	// State
	gameLog     []string
	status      string
	statusErr   bool
	botPending  bool
	quitting    bool
	focusedPane int

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// New creates the model and subscribes it to the session's events. Call it
// before Session.Start so the opening deal is logged.
func New(session *game.Session, logger *log.Logger, opts Options) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = commandHelp
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(focusedBorder).Bold(true)
	ti.Prompt = "> "

	humans := make(map[int]bool, len(opts.Humans))
	for _, seat := range opts.Humans {
		humans[seat] = true
	}
	bots := opts.Bots
	if bots == nil {
		bots = map[int]bot.Bot{}
	}
	delay := opts.BotDelay
	if delay == 0 {
		delay = defaultBotDelay
	}

	m := &Model{
		session:     session,
		logger:      logger.WithPrefix("tui"),
		humans:      humans,
		bots:        bots,
		botDelay:    delay,
		logViewport: vp,
		input:       ti,
		help:        help.New(),
		keys:        defaultKeyMap(),
		focusedPane: inputPane,
		testMode:    opts.TestMode,
	}

	perspective := ""
	if len(opts.Humans) == 1 {
		view := session.Snapshot()
		if seat := opts.Humans[0]; seat < len(view.Players) {
			perspective = view.Players[seat].Name
		}
	}
	m.formatter = game.NewEventFormatter(game.FormattingOptions{Perspective: perspective})

	session.Events().Subscribe(game.EventFunc(func(e game.GameEvent) {
		if line := m.formatter.Format(e); line != "" {
			m.AddLogEntry(line)
		}
	}))
	return m
}

// Run starts the program and blocks until the user quits or ctx is done
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.scheduleBot())
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case botTurnMsg:
		m.botPending = false
		m.playBot()
		cmds = append(cmds, m.scheduleBot())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Focus):
			if m.focusedPane == logPane {
				m.focusedPane = inputPane
				m.input.Focus()
			} else {
				m.focusedPane = logPane
				m.input.Blur()
			}
		case key.Matches(msg, m.keys.Cancel):
			m.session.Cancel()
			m.setStatus("", false)
		case key.Matches(msg, m.keys.Help) && m.focusedPane == logPane:
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Submit) && m.focusedPane == inputPane:
			cmd := m.processCommand(m.input.Value())
			m.input.SetValue("")
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == inputPane {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.logViewport, cmd = m.logViewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// processCommand handles one line of typed input
func (m *Model) processCommand(input string) tea.Cmd {
	input = strings.TrimSpace(input)
	switch strings.ToLower(input) {
	case "q", "quit":
		m.quitting = true
		return tea.Quit
	case "c", "cancel":
		m.session.Cancel()
		m.setStatus("", false)
		return nil
	case "":
		return nil
	}

	view := m.session.Snapshot()
	if !view.State.InProgress() {
		m.setStatus("The game is over, ctrl+c to quit", false)
		return nil
	}
	if !m.humans[view.Turn] {
		cur, _ := view.Current()
		m.setStatus(fmt.Sprintf("Waiting for %s", cur.Name), false)
		return nil
	}

	clicks, err := parseCommand(input, view)
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}

	m.setStatus("", false)
	for _, in := range clicks {
		_, err := m.session.Click(in)
		switch {
		case game.IsPartial(err):
			m.setStatus(game.PartialHint(err), false)
		case err != nil:
			m.logger.Debug("Move rejected", "input", input, "error", err)
			m.setStatus(err.Error(), true)
			m.session.Cancel()
			return m.scheduleBot()
		}
	}
	return m.scheduleBot()
}

// scheduleBot returns a delayed botTurnMsg when a bot has the turn
func (m *Model) scheduleBot() tea.Cmd {
	if m.botPending {
		return nil
	}
	view := m.session.Snapshot()
	if !view.State.InProgress() {
		return nil
	}
	if _, ok := m.bots[view.Turn]; !ok {
		return nil
	}
	m.botPending = true
	return tea.Tick(m.botDelay, func(time.Time) tea.Msg { return botTurnMsg{} })
}

// playBot lets the bot holding the turn play one move
func (m *Model) playBot() {
	view := m.session.Snapshot()
	b, ok := m.bots[view.Turn]
	if !ok {
		return
	}
	if _, err := bot.Play(m.session, b); err != nil {
		cur, _ := view.Current()
		m.logger.Warn("Bot move rejected", "player", cur.Name, "error", err)
		m.session.Cancel()
	}
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	view := m.session.Snapshot()

	actionContent := m.renderActionPane(view)
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderFor(inputPane)).
		Width(max(m.width-2, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane(view)
	width := max(sidebarWidth, lipgloss.Width(sidebarContent))
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blurredBorder).
		Width(width).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-width-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPaneView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderFor(logPane)).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPaneView, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) borderFor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return focusedBorder
	}
	return blurredBorder
}

// renderSidebarPane lists the players and the deck
func (m *Model) renderSidebarPane(view game.View) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(" kasino "))
	content.WriteString("\n\n")
	content.WriteString(WarningStyle.Render(fmt.Sprintf("Deck: %d", view.DeckSize)))
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(fmt.Sprintf("%s, round %d", view.State, view.Rounds+1)))
	content.WriteString("\n\n")

	for i, p := range view.Players {
		line := fmt.Sprintf("%s: %d cards", p.Name, len(p.Cards))
		if i == view.Turn {
			content.WriteString(CurrentPlayerStyle.Render("▶ " + line))
		} else {
			content.WriteString(PlayerInfoStyle.Render("  " + line))
		}
		content.WriteString("\n")
	}
	return content.String()
}

// renderActionPane shows the table, the hand to play and the input
func (m *Model) renderActionPane(view game.View) string {
	var content strings.Builder

	content.WriteString(TableStyle.Render("Table: "))
	piles := make([]string, len(view.Piles))
	for i, pile := range view.Piles {
		piles[i] = fmt.Sprintf("%d:%s", i+1, m.formatCards(pile.Cards, nil))
	}
	content.WriteString(strings.Join(piles, " "))
	content.WriteString("\n")

	if cur, ok := view.Current(); ok && m.humans[view.Turn] {
		cards := make([]deck.Card, len(cur.Cards))
		for i, ref := range cur.Cards {
			cards[i] = ref.Card
		}
		content.WriteString(HandStyle.Render(fmt.Sprintf("%s's hand: ", cur.Name)))
		content.WriteString(m.formatCards(cards, view.Selected))
	} else if view.State == game.Ended {
		content.WriteString(HandStyle.Render("Game over"))
	} else {
		content.WriteString(HandStyle.Render("Waiting..."))
	}
	content.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			content.WriteString(ErrorStyle.Render(m.status))
		} else {
			content.WriteString(WarningStyle.Render(m.status))
		}
		content.WriteString("\n")
	}

	content.WriteString(m.input.View())
	content.WriteString("\n")
	content.WriteString(m.help.View(m.keys))
	return content.String()
}

// formatCards formats cards with colors, highlighting the selected card
func (m *Model) formatCards(cards []deck.Card, selected *deck.Card) string {
	formatted := make([]string, len(cards))
	for i, card := range cards {
		style := BlackCardStyle
		if card.IsRed() {
			style = RedCardStyle
		}
		if selected != nil && *selected == card {
			style = style.Inherit(SelectedCardStyle)
		}
		formatted[i] = style.Render(card.String())
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// AddLogEntry adds an entry to the game log
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectCommand processes typed input directly (test mode only)
func (m *Model) InjectCommand(input string) error {
	if !m.testMode {
		return fmt.Errorf("command injection only available in test mode")
	}
	m.processCommand(input)
	return nil
}

// Status returns the hint or error shown above the input
func (m *Model) Status() string {
	return m.status
}

// IsTestMode returns whether the TUI is in test mode
func (m *Model) IsTestMode() bool {
	return m.testMode
}
