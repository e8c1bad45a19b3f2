package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmytropaduchak/chrono/internal/app"
	"github.com/dmytropaduchak/chrono/internal/config"
	"github.com/dmytropaduchak/chrono/internal/update"
	"github.com/dmytropaduchak/chrono/internal/util"
	"github.com/dmytropaduchak/chrono/internal/watch"
	"github.com/go-errors/errors"
	isatty "github.com/mattn/go-isatty"
	"github.com/micro-editor/tcell/v2"
)

var (
	// Command line flags
	flagVersion   = flag.Bool("version", false, "Show the version number and information")
	flagConfigDir = flag.String("config-dir", "", "Specify a custom location for the configuration directory")
	flagDebug     = flag.Bool("debug", false, "Enable debug mode (prints debug info to ./log.txt)")

	screen tcell.Screen

	sigterm chan os.Signal
	sighup  chan os.Signal
)

func InitFlags() {
	flag.Usage = func() {
		fmt.Println("Usage: chrono [OPTION]...")
		fmt.Println("-config-dir dir")
		fmt.Println("    \tSpecify a custom location for the configuration directory")
		fmt.Println("-debug")
		fmt.Println("    \tEnable debug mode (enables logging to ./log.txt)")
		fmt.Println("-version")
		fmt.Println("    \tShow the version number and information and exit")
	}

	flag.Parse()

	if *flagVersion {
		// If -version was passed
		fmt.Println("Version:", util.Version)
		fmt.Println("Commit hash:", util.CommitHash)
		fmt.Println("Compiled on", util.CompileDate)
		exit(0)
	}

	if util.Debug == "OFF" && (*flagDebug || os.Getenv("CHRONO_DEBUG") != "") {
		util.Debug = "ON"
	}
}

func exit(rc int) {
	if screen != nil {
		screen.Fini()
	}
	os.Exit(rc)
}

func initScreen() error {
	var err error
	screen, err = tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()
	return nil
}

// checkForUpdate asks GitHub for a newer stable release at most once a
// day, off the event loop. A found tag is reported on out.
func checkForUpdate(out chan<- string) {
	state, err := update.LoadState()
	if err != nil {
		log.Printf("chrono update: %v", err)
		return
	}
	if !state.ShouldCheck(1) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tag, err := update.Check(ctx)
	if err != nil {
		log.Printf("chrono update: %v", err)
		return
	}

	state.MarkChecked()
	if err := state.Save(); err != nil {
		log.Printf("chrono update: %v", err)
	}

	if tag != "" {
		log.Printf("chrono update: version %s is available", tag)
		out <- tag
	}
}

func main() {
	InitFlags()
	InitLog()

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "chrono requires an interactive terminal")
		exit(1)
	}

	if err := config.InitConfigDir(*flagConfigDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if err := config.EnsureSettingsFile(); err != nil {
		log.Printf("chrono settings: %v", err)
	}
	settings := config.LoadSettings()

	token, err := config.LoadToken()
	if err != nil && err != config.ErrNoToken {
		log.Printf("chrono github: %v", err)
	}
	if err == config.ErrNoToken {
		log.Printf("chrono github: no token found, PR overlay disabled (drop one in %s)", config.TokenPath())
	}

	if err := initScreen(); err != nil {
		fmt.Println(err)
		fmt.Println("Fatal: chrono could not initialize a screen.")
		exit(1)
	}

	defer func() {
		if err := recover(); err != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Println("chrono encountered an error:", errors.Wrap(err, 2).ErrorStack(), "\nIf you can reproduce this error, please report it at https://github.com/dmytropaduchak/chrono/issues")
			os.Exit(1)
		}
	}()

	a := app.New(settings, token)
	a.OnQuit = func() { exit(0) }

	// A token dropped into the config directory enables the overlay
	// without a restart. The watcher fires on its own goroutine, so
	// forward onto a channel the event loop owns.
	tokenChanged := make(chan struct{}, 1)
	watcher, err := watch.NewTokenWatcher(config.TokenPath(), func() {
		select {
		case tokenChanged <- struct{}{}:
		default:
		}
	})
	if err != nil {
		log.Printf("chrono watch: %v", err)
	} else if err := watcher.Start(); err != nil {
		log.Printf("chrono watch: %v", err)
	} else {
		defer watcher.Stop()
	}

	updateTag := make(chan string, 1)
	if settings.Update.CheckEnabled {
		go checkForUpdate(updateTag)
	}

	sigterm = make(chan os.Signal, 1)
	sighup = make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGABRT)
	signal.Notify(sighup, syscall.SIGHUP)

	// Here is the event loop which runs in a separate thread
	events := make(chan tcell.Event)
	go func() {
		for {
			e := screen.PollEvent()
			if e == nil {
				return
			}
			events <- e
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	a.Tick(time.Now())
	a.Render(screen)

	for {
		select {
		case event := <-events:
			if e, ok := event.(*tcell.EventError); ok {
				log.Println("tcell event error: ", e.Error())
				if e.Err() == io.EOF {
					// shutdown due to terminal closing/becoming inaccessible
					exit(0)
				}
				continue
			}
			if _, ok := event.(*tcell.EventResize); ok {
				screen.Sync()
			}
			a.HandleEvent(event)
			a.Render(screen)
		case now := <-ticker.C:
			a.Tick(now)
			a.Render(screen)
		case fr := <-a.Results():
			a.ApplyFetch(fr)
			a.Render(screen)
		case <-tokenChanged:
			a.Refetch()
			a.Render(screen)
		case tag := <-updateTag:
			a.SetUpdateTag(tag)
			a.Render(screen)
		case <-sighup:
			exit(0)
		case <-sigterm:
			exit(0)
		}
	}
}
