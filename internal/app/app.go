// Package app wires the clock together: settings, theme, face, board,
// overlay, and renderer. All state lives on the event loop goroutine;
// fetch goroutines only ever report back through the results channel.
package app

import (
	"context"
	"log"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/dmytropaduchak/chrono/internal/board"
	"github.com/dmytropaduchak/chrono/internal/clockface"
	"github.com/dmytropaduchak/chrono/internal/config"
	"github.com/dmytropaduchak/chrono/internal/github"
	"github.com/dmytropaduchak/chrono/internal/render"
	"github.com/dmytropaduchak/chrono/internal/theme"
	"github.com/micro-editor/tcell/v2"
)

// FetchResult pairs a fetch outcome with the credential generation
// that produced it, so results from a replaced token can be dropped.
type FetchResult struct {
	Gen int
	Res github.Result
}

// App holds the whole clock state and reacts to events
type App struct {
	Settings *config.Settings

	face     *clockface.Face
	cycle    *theme.Cycle
	theme    *theme.Theme
	board    *board.Buffer
	renderer *render.Renderer
	rng      *rand.Rand
	now      time.Time

	token     string
	client    *github.Client
	overlay   github.Overlay
	results   chan FetchResult
	fetchGen  int
	lastFetch time.Time

	selected    int
	updateTag   string
	lastButtons tcell.ButtonMask

	// OnQuit is called when a quit key is pressed
	OnQuit func()

	// Seams for tests; production wiring happens in New
	newClient func(token string) *github.Client
	openFn    func(url string) error
	copyFn    func(text string) error
}

// New builds the app from settings and an optional GitHub token. An
// empty token runs the clock without the PR overlay.
func New(settings *config.Settings, token string) *App {
	accents := theme.Palette
	extra, err := theme.LoadUserAccents(filepath.Join(config.ConfigDir, theme.PalettesFileName))
	if err != nil {
		log.Printf("chrono theme: %v", err)
	} else if len(extra) > 0 {
		accents = append(append([]theme.Accent{}, accents...), extra...)
	}

	cycle, found := theme.NewCycle(accents, settings.Appearance.Accent)
	if !found {
		log.Printf("chrono theme: unknown accent %q, using %q", settings.Appearance.Accent, cycle.Current().Name)
	}

	background := settings.Appearance.BackgroundColor
	if background == "" {
		background = theme.DefaultBackground
	}
	th := theme.New(background, cycle.Current())

	face := clockface.New()
	face.Hours, _ = clockface.ParseHourFormat(settings.Clock.HourFormat)
	face.Layout, _ = clockface.ParseTimeFormat(settings.Clock.TimeFormat)
	face.ShowAMPM = settings.Clock.ShowAMPM

	a := &App{
		Settings: settings,
		face:     face,
		cycle:    cycle,
		theme:    th,
		board:    board.NewBuffer(settings.Appearance.BoardWidth, settings.Appearance.BoardHeight),
		renderer: render.New(th),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now(),
		results:  make(chan FetchResult, 1),
		selected: -1,
	}

	a.newClient = func(token string) *github.Client {
		c := github.NewClient(token)
		c.SetRepoFilter(settings.GitHub.RepoFilter)
		return c
	}
	a.openFn = a.openWithCommand
	a.copyFn = copyToClipboard

	a.SetToken(token)
	return a
}

// SetToken installs a GitHub credential. An empty token disables the
// overlay. Setting the unchanged token is a no-op; a new one resets the
// overlay and polls on the next tick.
func (a *App) SetToken(token string) {
	if token == a.token {
		return
	}
	a.token = token
	a.fetchGen++
	a.lastFetch = time.Time{}
	a.overlay = github.Overlay{}
	a.selected = -1
	if token == "" {
		a.client = nil
		return
	}
	a.client = a.newClient(token)
}

// Tick advances the clock to now, recomposes the board, and starts a
// fetch when the poll interval has elapsed.
func (a *App) Tick(now time.Time) {
	a.now = now
	board.Compose(a.board, board.Input{
		Time:         a.face.Time(now),
		AMPM:         a.face.AMPM(now),
		Date:         a.face.Date(now),
		Seed:         now.Minute(),
		NoiseDensity: a.Settings.NoiseDensity(),
		Rng:          a.rng,
	})
	a.maybePoll(now)
}

// maybePoll starts a fetch when the interval has elapsed. A fetch
// already in flight swallows the poll; the next due tick retries.
func (a *App) maybePoll(now time.Time) {
	if a.client == nil || a.overlay.InFlight {
		return
	}
	interval := time.Duration(a.Settings.GitHub.PollIntervalMinutes) * time.Minute
	if a.lastFetch.IsZero() || now.Sub(a.lastFetch) >= interval {
		a.StartFetch()
	}
}

// StartFetch spawns one fetch goroutine. The goroutine never touches
// app state; its result comes back through Results for the event loop
// to apply.
func (a *App) StartFetch() {
	if a.client == nil || a.overlay.InFlight {
		return
	}
	a.overlay.InFlight = true
	a.lastFetch = a.now

	client := a.client
	gen := a.fetchGen
	go func() {
		a.results <- FetchResult{Gen: gen, Res: client.FetchOpenPRs(context.Background())}
	}()
}

// Results delivers fetch outcomes to the event loop
func (a *App) Results() <-chan FetchResult {
	return a.results
}

// ApplyFetch folds a fetch outcome into the overlay and clamps the PR
// selection to the new list. Results from a superseded credential are
// dropped.
func (a *App) ApplyFetch(fr FetchResult) {
	if fr.Gen != a.fetchGen {
		return
	}
	a.overlay.Apply(fr.Res)
	if a.selected >= len(a.overlay.PRs) {
		a.selected = len(a.overlay.PRs) - 1
	}
}

// Refetch reloads the credential and fetches immediately
func (a *App) Refetch() {
	token, err := config.LoadToken()
	if err != nil && err != config.ErrNoToken {
		log.Printf("chrono github: %v", err)
	}
	a.SetToken(token)
	a.StartFetch()
}

// SetUpdateTag shows the release hint in the caption
func (a *App) SetUpdateTag(tag string) {
	a.updateTag = tag
}

// Frame assembles the draw state for the renderer
func (a *App) Frame() render.Frame {
	return render.Frame{
		Board:       a.board,
		Caption:     a.face.Caption(a.now),
		Clock:       a.face.FullTime(a.now),
		ShowOverlay: a.client != nil,
		Overlay:     a.overlay,
		Selected:    a.selected,
		JiraBaseURL: a.Settings.GitHub.JiraBaseURL,
		UpdateTag:   a.updateTag,
		Now:         a.now,
	}
}

// Render draws the current state to the screen
func (a *App) Render(screen tcell.Screen) {
	a.renderer.Draw(screen, a.Frame())
	screen.Show()
}

// HandleEvent processes one terminal event.
// Returns true if the event was consumed.
func (a *App) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		return a.handleMouse(ev)
	case *tcell.EventResize:
		// The renderer reads the screen size on every draw
		return true
	}
	return false
}

// handleKey processes keyboard events
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		if a.OnQuit != nil {
			a.OnQuit()
		}
		return true

	case tcell.KeyUp:
		a.movePrevious()
		return true

	case tcell.KeyDown:
		a.moveNext()
		return true

	case tcell.KeyEnter:
		a.openSelected()
		return true
	}

	switch ev.Rune() {
	case 'q', 'Q':
		if a.OnQuit != nil {
			a.OnQuit()
		}
		return true

	case 'c', 'C':
		a.cycleAccent()
		return true

	case 'h', 'H':
		a.face.ToggleHours()
		a.Settings.Clock.HourFormat = a.face.Hours.String()
		config.SaveSettings(a.Settings)
		a.Tick(a.now)
		return true

	case 'f', 'F':
		a.face.CycleLayout()
		a.Settings.Clock.TimeFormat = a.face.Layout.String()
		config.SaveSettings(a.Settings)
		a.Tick(a.now)
		return true

	case 'a', 'A':
		a.face.ToggleAMPM()
		a.Settings.Clock.ShowAMPM = a.face.ShowAMPM
		config.SaveSettings(a.Settings)
		a.Tick(a.now)
		return true

	case 'j':
		a.moveNext()
		return true

	case 'k':
		a.movePrevious()
		return true

	case 'o', 'O':
		a.openSelected()
		return true

	case 'y', 'Y':
		a.copySelected()
		return true

	case 'r', 'R':
		a.Refetch()
		return true
	}

	return true // the clock consumes all key events
}

// handleMouse processes mouse events
func (a *App) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()

	// React to the press edge only, so drag reports with the button
	// still held don't re-fire the click
	clicked := buttons&tcell.Button1 != 0 && a.lastButtons&tcell.Button1 == 0
	a.lastButtons = buttons

	switch {
	case clicked:
		return a.handleLeftClick(x, y)

	case buttons&tcell.WheelUp != 0:
		a.movePrevious()
		return true

	case buttons&tcell.WheelDown != 0:
		a.moveNext()
		return true
	}

	return true
}

// handleLeftClick selects the clicked PR row and opens whatever URL is
// under the pointer
func (a *App) handleLeftClick(x, y int) bool {
	if row := a.renderer.PRRowAt(x, y); row >= 0 {
		a.selected = row
	}
	if url, ok := a.renderer.URLAt(x, y); ok {
		a.openURL(url)
	}
	return true
}

// cycleAccent advances to the next accent and persists the choice
func (a *App) cycleAccent() {
	accent := a.cycle.Next()
	a.theme.SetAccent(accent)
	a.Settings.Appearance.Accent = accent.Name
	config.SaveSettings(a.Settings)
}

// visiblePRs returns how many PR rows are on screen
func (a *App) visiblePRs() int {
	if a.client == nil {
		return 0
	}
	n := len(a.overlay.PRs)
	if n > render.MaxPRRows {
		n = render.MaxPRRows
	}
	return n
}

// moveNext moves the PR selection down, stopping at the last row
func (a *App) moveNext() {
	n := a.visiblePRs()
	if n == 0 {
		return
	}
	if a.selected < n-1 {
		a.selected++
	}
}

// movePrevious moves the PR selection up. With nothing selected it
// starts from the bottom.
func (a *App) movePrevious() {
	n := a.visiblePRs()
	if n == 0 {
		return
	}
	if a.selected < 0 {
		a.selected = n - 1
	} else if a.selected > 0 {
		a.selected--
	}
}

// openSelected opens the selected PR in the browser
func (a *App) openSelected() {
	if a.selected < 0 || a.selected >= a.visiblePRs() {
		return
	}
	a.openURL(a.overlay.PRs[a.selected].URL)
}

// copySelected copies the selected PR's URL to the clipboard
func (a *App) copySelected() {
	if a.selected < 0 || a.selected >= a.visiblePRs() {
		return
	}
	if err := a.copyFn(a.overlay.PRs[a.selected].URL); err != nil {
		log.Printf("chrono clipboard: %v", err)
	}
}

// openURL opens a URL without ever failing the event loop
func (a *App) openURL(url string) {
	if url == "" {
		return
	}
	if err := a.openFn(url); err != nil {
		log.Printf("chrono open: %v", err)
	}
}
