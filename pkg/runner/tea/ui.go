package teaui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/glyph"
	"tableflip.dev/roster/pkg/importer"
	"tableflip.dev/roster/pkg/roster"
	"tableflip.dev/roster/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/roster/pkg/runner/tea/internal/theme"
	"tableflip.dev/roster/pkg/timeutil"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeCommand
	modeHelp
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionNickname
	actionCooldown
)

const ddWindow = 600 * time.Millisecond

// Launcher starts Steam for an account. *launcher.Launcher implements it.
type Launcher interface {
	Login(ctx context.Context, a *account.Account) error
}

type accountItem struct {
	a   *account.Account
	now time.Time
}

func (it accountItem) Title() string {
	prime := "  "
	if it.a.Prime {
		prime = glyph.Prime.Symbol + " "
	}
	return fmt.Sprintf("%s%s %s  %s", prime, glyph.For(it.a.Status).Symbol, it.a.Name(), it.a.DisplayStatus(it.now))
}
func (it accountItem) Description() string { return it.a.Username }
func (it accountItem) FilterValue() string { return it.a.Username + " " + it.a.Nickname }

// messages
type errMsg struct{ err error }
type tickMsg time.Time
type changeMsg struct{ change roster.Change }
type opDoneMsg struct {
	status string
	err    error
}

var commands = []bottombar.CommandOption{
	{Name: "add", Description: "<username> <password> [nickname]"},
	{Name: "cooldown", Description: "<duration> e.g. 7d, 3d12h, 20h"},
	{Name: "status", Description: "<unknown|normal|game_ban|vac_ban>"},
	{Name: "nick", Description: "<nickname> for the selected account"},
	{Name: "steamid", Description: "<SteamID64> for the selected account"},
	{Name: "notes", Description: "<text> for the selected account"},
	{Name: "prime", Description: "toggle prime on the selected account"},
	{Name: "delete", Description: "remove the selected account"},
	{Name: "refresh", Description: "[all] check ban status"},
	{Name: "nicknames", Description: "[all] fetch Steam persona names"},
	{Name: "login", Description: "launch Steam as the selected account"},
	{Name: "sweep", Description: "end expired cooldowns now"},
	{Name: "import", Description: "<file> one account per line"},
	{Name: "key", Description: "<Steam Web API key>"},
	{Name: "notice", Description: "<on|off> startup notice"},
	{Name: "help", Description: "show keys"},
	{Name: "quit", Description: "leave"},
}

const helpText = `Keys: j/k move, g/G top/bottom, enter or L log in, r refresh selected, R refresh all,
n nickname from Steam, N all nicknames, p toggle prime, c cooldown, x mark normal,
i edit nickname, o add account, dd delete, s show secrets, : commands, ? close help, ctrl+c quit`

// Model contains UI state
type Model struct {
	roster   *roster.Roster
	launcher Launcher
	ctx      context.Context
	theme    theme.Theme

	mode   mode
	action action

	list   list.Model
	input  textinput.Model
	footer bottombar.Model

	status      string
	showSecrets bool
	awaitingDD  bool
	lastDTime   time.Time

	termWidth   int
	termHeight  int
	detailWidth int
}

// New creates a UI model for r. l may be nil, in which case login is
// unavailable.
func New(r *roster.Roster, l Launcher) Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	accounts := list.New([]list.Item{}, d, 48, 20)
	accounts.Title = "Accounts"
	accounts.SetShowHelp(false)
	accounts.SetShowStatusBar(false)
	accounts.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.CharLimit = 512
	ti.Prompt = ""

	footer := bottombar.New()
	footer.SetCommandDefinitions(commands)

	m := Model{
		roster:      r,
		launcher:    l,
		ctx:         context.Background(),
		theme:       theme.Default(),
		mode:        modeNormal,
		list:        accounts,
		input:       ti,
		footer:      footer,
		status:      "j/k move, enter log in, r refresh, : commands, ? help",
		detailWidth: 48,
	}
	if r != nil {
		if r.Settings().ShowStartupNotice {
			m.status = "Passwords are stored unencrypted in the roster folder. :notice off hides this."
		}
		m.reload()
	}
	m.syncFooter()
	return m
}

// Init starts the countdown ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// reload rebuilds the list from the roster, keeping the selection on the same
// account when it still exists.
func (m *Model) reload() {
	if m.roster == nil {
		return
	}
	selected := ""
	if a := m.current(); a != nil {
		selected = a.ID
	}
	idx := m.list.Index()

	now := m.roster.Now()
	accounts := m.roster.View()
	items := make([]list.Item, 0, len(accounts))
	for i, a := range accounts {
		if a.ID == selected {
			idx = i
		}
		items = append(items, accountItem{a: a, now: now})
	}
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.footer.SetSummary(summarize(accounts, m.roster.Busy()))
}

func summarize(accounts []*account.Account, busy bool) string {
	counts := map[account.Status]int{}
	for _, a := range accounts {
		counts[a.Status]++
	}
	parts := []string{fmt.Sprintf("%d accounts", len(accounts))}
	if n := counts[account.Normal]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d ready", n))
	}
	if n := counts[account.Cooldown]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d cooling", n))
	}
	if n := counts[account.GameBan] + counts[account.VacBan]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d banned", n))
	}
	if busy {
		parts = append(parts, "refreshing")
	}
	return strings.Join(parts, " · ")
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	skipListRouting := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case tickMsg:
		m.reload()
		cmds = append(cmds, tick())
		skipListRouting = true
	case changeMsg:
		m.reload()
		if msg.change.Message != "" {
			m.status = msg.change.Message
		}
		skipListRouting = true
	case opDoneMsg:
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
		} else if msg.status != "" {
			m.status = msg.status
		}
		m.reload()
		skipListRouting = true
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
		skipListRouting = true
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
			}
			skipListRouting = true
		case modeInsert:
			skipListRouting = true
			switch msg.String() {
			case "enter":
				input := strings.TrimSpace(m.input.Value())
				act := m.action
				m.leaveInput()
				m.submit(act, input, &cmds)
			case "esc":
				m.leaveInput()
				m.status = "Cancelled"
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeCommand:
			skipListRouting = true
			switch msg.String() {
			case "enter":
				input := strings.TrimSpace(m.input.Value())
				m.leaveInput()
				m.runCommand(input, &cmds)
			case "esc":
				m.leaveInput()
				m.status = "Command cancelled"
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
				m.footer.UpdateCommandInput(m.input.Value(), m.input.View())
			}
		case modeNormal:
			skipListRouting = m.handleNormalKey(msg.String(), &cmds)
		}
	}

	if m.mode == modeNormal && !skipListRouting {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.syncFooter()
	m.applySizes()
	return m, tea.Batch(cmds...)
}

// handleNormalKey reports whether the key was consumed.
func (m *Model) handleNormalKey(key string, cmds *[]tea.Cmd) bool {
	if key != "d" {
		m.awaitingDD = false
	}
	switch key {
	case ":":
		m.enterCommandMode(cmds)
	case "?":
		m.mode = modeHelp
	case "q":
		m.status = "Use :q or ctrl+c to quit"

	case "j", "down":
		m.list.CursorDown()
	case "k", "up":
		m.list.CursorUp()
	case "g", "home":
		m.list.Select(0)
	case "G", "end":
		if n := len(m.list.Items()); n > 0 {
			m.list.Select(n - 1)
		}

	case "r":
		if a := m.current(); a != nil {
			*cmds = append(*cmds, m.refreshCmd(false, a.ID))
		}
	case "R":
		*cmds = append(*cmds, m.refreshCmd(false))
	case "n":
		if a := m.current(); a != nil {
			*cmds = append(*cmds, m.refreshCmd(true, a.ID))
		}
	case "N":
		*cmds = append(*cmds, m.refreshCmd(true))

	case "enter", "L":
		if a := m.current(); a != nil {
			*cmds = append(*cmds, m.loginCmd(a))
		}
	case "p":
		m.togglePrime(cmds)
	case "x":
		m.setStatus(cmds, account.Normal)
	case "s":
		m.showSecrets = !m.showSecrets

	case "o", "a":
		m.enterInsert(cmds, actionAdd, "username password [nickname]", "")
	case "i":
		if a := m.current(); a != nil {
			m.enterInsert(cmds, actionNickname, "nickname", a.Nickname)
		}
	case "c":
		if m.current() != nil {
			m.enterInsert(cmds, actionCooldown, "7d, 3d12h or 20h", "")
		}

	case "d":
		a := m.current()
		if a == nil {
			break
		}
		if m.awaitingDD && time.Since(m.lastDTime) < ddWindow {
			m.awaitingDD = false
			m.deleteAccount(cmds, a)
		} else {
			m.awaitingDD = true
			m.lastDTime = time.Now()
			m.status = "Press d again to delete " + a.Name()
		}
	default:
		return false
	}
	return true
}

func (m *Model) current() *account.Account {
	if len(m.list.Items()) == 0 {
		return nil
	}
	it, ok := m.list.SelectedItem().(accountItem)
	if !ok {
		return nil
	}
	return it.a
}

func (m *Model) fail(cmds *[]tea.Cmd, err error) {
	*cmds = append(*cmds, func() tea.Msg { return errMsg{err} })
}

func (m *Model) edit(cmds *[]tea.Cmd, fn func(*account.Account) error, done string) {
	a := m.current()
	if a == nil {
		m.status = "No account selected"
		return
	}
	if m.roster == nil {
		return
	}
	if _, err := m.roster.Edit(m.ctx, a.ID, fn); err != nil {
		m.fail(cmds, err)
		return
	}
	m.status = done
	m.reload()
}

func (m *Model) togglePrime(cmds *[]tea.Cmd) {
	m.edit(cmds, func(a *account.Account) error {
		a.Prime = !a.Prime
		return nil
	}, "Prime toggled")
}

func (m *Model) setStatus(cmds *[]tea.Cmd, s account.Status) {
	m.edit(cmds, func(a *account.Account) error {
		return a.SetStatus(s)
	}, "Status set to "+s.String())
}

func (m *Model) startCooldown(cmds *[]tea.Cmd, raw string) {
	if m.roster == nil {
		return
	}
	days, hours, err := timeutil.ParseCooldown(raw)
	if err != nil {
		m.fail(cmds, err)
		return
	}
	now := m.roster.Now()
	m.edit(cmds, func(a *account.Account) error {
		return a.StartCooldown(now, days, hours)
	}, "Cooldown started for "+timeutil.FormatRemaining(time.Duration(days)*24*time.Hour+time.Duration(hours)*time.Hour))
}

func (m *Model) deleteAccount(cmds *[]tea.Cmd, a *account.Account) {
	if m.roster == nil {
		return
	}
	if _, err := m.roster.Delete(m.ctx, a.ID); err != nil {
		m.fail(cmds, err)
		return
	}
	m.status = "Deleted " + a.Name()
	m.reload()
}

func (m *Model) addAccount(cmds *[]tea.Cmd, fields []string) {
	if len(fields) < 2 {
		m.status = "usage: <username> <password> [nickname]"
		return
	}
	if m.roster == nil {
		return
	}
	a := account.New(fields[0], fields[1])
	a.Nickname = strings.Join(fields[2:], " ")
	added, err := m.roster.Add(m.ctx, a)
	if err != nil {
		m.fail(cmds, err)
		return
	}
	m.status = "Added " + added.Name()
	m.reload()
	for i, it := range m.list.Items() {
		if it.(accountItem).a.ID == added.ID {
			m.list.Select(i)
		}
	}
}

// refreshCmd runs the remote check off the UI goroutine.
func (m *Model) refreshCmd(nicknames bool, ids ...string) tea.Cmd {
	if m.roster == nil {
		return nil
	}
	if m.roster.Busy() {
		m.status = "A refresh is already running"
		return nil
	}
	r, ctx := m.roster, m.ctx
	if nicknames {
		m.status = "Fetching nicknames..."
	} else {
		m.status = "Checking ban status..."
	}
	return func() tea.Msg {
		var err error
		if nicknames {
			_, err = r.RefreshNicknames(ctx, ids...)
		} else {
			_, err = r.RefreshStatus(ctx, ids...)
		}
		return opDoneMsg{status: r.StatusLine(), err: err}
	}
}

func (m *Model) loginCmd(a *account.Account) tea.Cmd {
	if m.launcher == nil {
		m.status = "Steam launcher is not configured"
		return nil
	}
	l, ctx := m.launcher, m.ctx
	m.status = "Launching Steam as " + a.Username + "..."
	return func() tea.Msg {
		if err := l.Login(ctx, a); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{status: "Steam launched as " + a.Username}
	}
}

func (m *Model) submit(act action, input string, cmds *[]tea.Cmd) {
	switch act {
	case actionAdd:
		m.addAccount(cmds, strings.Fields(input))
	case actionNickname:
		m.edit(cmds, func(a *account.Account) error {
			a.Nickname = input
			return nil
		}, "Nickname saved")
	case actionCooldown:
		m.startCooldown(cmds, input)
	}
}

func (m *Model) runCommand(input string, cmds *[]tea.Cmd) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.TrimSpace(strings.Join(args, " "))

	if m.roster == nil && name != "q" && name != "quit" && name != "exit" {
		m.status = "No roster loaded"
		return
	}

	switch name {
	case "q", "quit", "exit":
		*cmds = append(*cmds, tea.Quit)
	case "help":
		m.mode = modeHelp
	case "add":
		m.addAccount(cmds, args)
	case "cooldown", "cd":
		m.startCooldown(cmds, rest)
	case "status":
		s, ok := account.ParseStatus(rest)
		switch {
		case !ok:
			m.status = fmt.Sprintf("Unknown status: %s", rest)
		case s == account.Cooldown:
			m.status = "Use :cooldown <duration> to start a cooldown"
		default:
			m.setStatus(cmds, s)
		}
	case "nick":
		m.edit(cmds, func(a *account.Account) error {
			a.Nickname = rest
			return nil
		}, "Nickname saved")
	case "steamid":
		m.edit(cmds, func(a *account.Account) error {
			a.SteamID64 = rest
			return nil
		}, "SteamID64 saved")
	case "notes":
		m.edit(cmds, func(a *account.Account) error {
			a.Notes = rest
			return nil
		}, "Notes saved")
	case "prime":
		m.togglePrime(cmds)
	case "delete", "rm":
		if a := m.current(); a != nil {
			m.deleteAccount(cmds, a)
		}
	case "refresh", "nicknames":
		nick := name == "nicknames"
		if rest == "all" {
			*cmds = append(*cmds, m.refreshCmd(nick))
		} else if a := m.current(); a != nil {
			*cmds = append(*cmds, m.refreshCmd(nick, a.ID))
		}
	case "login":
		if a := m.current(); a != nil {
			*cmds = append(*cmds, m.loginCmd(a))
		}
	case "sweep":
		ended, err := m.roster.Sweep(m.ctx)
		if err != nil {
			m.fail(cmds, err)
			return
		}
		if len(ended) == 0 {
			m.status = "No cooldowns ended"
		} else {
			m.status = m.roster.StatusLine()
		}
		m.reload()
	case "import":
		m.importFile(cmds, rest)
	case "key":
		if err := m.roster.SetAPIKey(m.ctx, rest); err != nil {
			m.fail(cmds, err)
			return
		}
		m.status = m.roster.StatusLine()
	case "notice":
		show := rest != "off"
		if err := m.roster.SetNotice(m.ctx, show); err != nil {
			m.fail(cmds, err)
			return
		}
		if show {
			m.status = "Startup notice on"
		} else {
			m.status = "Startup notice off"
		}
	default:
		m.status = fmt.Sprintf("Unknown command: %s", input)
	}
}

func (m *Model) importFile(cmds *[]tea.Cmd, path string) {
	if path == "" {
		m.status = "usage: :import <file>"
		return
	}
	path, err := homedir.Expand(path)
	if err != nil {
		m.fail(cmds, err)
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		m.fail(cmds, err)
		return
	}
	res := importer.Parse(string(raw), importer.DefaultOptions())
	if err := res.Err(); err != nil {
		m.fail(cmds, err)
		return
	}
	n, err := m.roster.BulkAdd(m.ctx, res.Accounts)
	if err != nil {
		m.fail(cmds, err)
		return
	}
	m.status = fmt.Sprintf("Imported %d accounts, skipped %d lines", n, len(res.Skipped))
	m.reload()
}

func (m *Model) enterInsert(cmds *[]tea.Cmd, act action, placeholder, value string) {
	m.mode = modeInsert
	m.action = act
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
}

func (m *Model) enterCommandMode(cmds *[]tea.Cmd) {
	m.mode = modeCommand
	m.input.Reset()
	m.input.Placeholder = "command"
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
	m.footer.SetMode(bottombar.ModeCommand)
	m.footer.UpdateCommandInput("", m.input.View())
}

func (m *Model) leaveInput() {
	m.mode = modeNormal
	m.action = actionNone
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) syncFooter() {
	switch m.mode {
	case modeInsert:
		m.footer.SetMode(bottombar.ModeInsert)
	case modeCommand:
		m.footer.SetMode(bottombar.ModeCommand)
	case modeHelp:
		m.footer.SetMode(bottombar.ModeHelp)
	default:
		m.footer.SetMode(bottombar.ModeNormal)
	}
	m.footer.SetStatus(m.status)
}

// View renders the account list, the detail pane and the footer.
func (m Model) View() string {
	gap := lipgloss.NewStyle().Padding(0, 1).Render
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), gap(" "), m.detailView())

	switch m.mode {
	case modeInsert:
		prompt := map[action]string{actionAdd: "Add: ", actionNickname: "Nickname: ", actionCooldown: "Cooldown: "}[m.action]
		body += "\n\n" + prompt + m.input.View()
	case modeHelp:
		body += "\n\n" + m.theme.Help.Render(helpText)
	}

	footer, _ := m.footer.View()
	return body + "\n\n" + footer
}

func (m Model) detailView() string {
	t := m.theme.Detail
	width := m.detailWidth
	a := m.current()
	if a == nil {
		return t.Frame.Width(width).Render(t.Muted.Render("No accounts yet. Press o to add one or :import <file>."))
	}
	now := time.Now()
	if m.roster != nil {
		now = m.roster.Now()
	}

	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	secret := func(v string) string {
		if v == "" || m.showSecrets {
			return v
		}
		return "••••••••"
	}
	rows := [][2]string{
		{"Username", a.Username},
		{"Password", secret(a.Password)},
		{"SteamID64", a.SteamID64},
		{"Email", a.Email},
		{"Email pass", secret(a.EmailPassword)},
		{"Email URL", a.EmailURL},
		{"Status", theme.Status(a.Status).Render(glyph.For(a.Status).Symbol + " " + a.DisplayStatus(now))},
	}
	if a.CooldownExpiry != nil {
		rows = append(rows, [2]string{"Cooldown ends", account.FormatTime(a.CooldownExpiry.Time)})
	}
	if a.Prime {
		rows = append(rows, [2]string{"Prime", glyph.Prime.Symbol + " yes"})
	}
	if a.VACBanned || a.GameBans > 0 {
		rows = append(rows, [2]string{"Bans", fmt.Sprintf("vac=%t game=%d last=%dd ago", a.VACBanned, a.GameBans, a.DaysSinceLastBan)})
	}

	lines := []string{t.Title.Render(truncate.StringWithTail(a.Name(), uint(inner), "…")), ""}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		line := t.Label.Render(fmt.Sprintf("%-13s", r[0])) + " " + r[1]
		lines = append(lines, truncate.StringWithTail(line, uint(inner), "…"))
	}
	if a.Notes != "" {
		lines = append(lines, "", t.Label.Render("Notes"), wordwrap.String(a.Notes, inner))
	}
	return t.Frame.Width(width).Render(strings.Join(lines, "\n"))
}

// applySizes recalculates pane sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	left := m.termWidth / 2
	if left < 30 {
		left = 30
	}
	if left > 60 {
		left = 60
	}
	right := m.termWidth - left - 4
	if right < 24 {
		right = 24
	}
	height := m.termHeight - 4 - m.footer.ExtraHeight()
	if m.mode == modeInsert || m.mode == modeHelp {
		height -= 3
	}
	if height < 5 {
		height = 5
	}
	m.list.SetSize(left, height)
	m.detailWidth = right
}
