package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/craftboard/signcast/internal/canvas"
	"github.com/craftboard/signcast/internal/engine"
	"github.com/craftboard/signcast/internal/httpserver"
	"github.com/craftboard/signcast/internal/model"
	"github.com/craftboard/signcast/internal/ndi"
	"github.com/craftboard/signcast/internal/poller"
	"github.com/craftboard/signcast/internal/slides"
	"github.com/craftboard/signcast/internal/source"
)

// runDisplay starts the headless render loop with the monitor API.
func runDisplay(cfg appConfig) error {
	cleanupLogger := configureRuntimeLogger()
	defer cleanupLogger()

	// Slide rotation: configured deck file, or every known slide.
	deck := source.DefaultDeck()
	if cfg.DeckPath != "" {
		var err error
		deck, err = source.LoadSlideDeck(cfg.DeckPath)
		if err != nil {
			return fmt.Errorf("failed to load slide deck: %w", err)
		}
	}

	// Data backend: office server API, DuckDB mirror, or demo data.
	src, err := source.Open(source.Config{
		APIBaseURL: cfg.ServerURL,
		APIToken:   cfg.ServerToken,
		DBPath:     cfg.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to open data source: %w", err)
	}
	if closer, ok := src.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// Video output. A sender that cannot initialize is fatal; a display
	// that cannot emit frames has no reason to run.
	var transport ndi.Transport = ndi.NullTransport{}
	if cfg.NDITarget != "" {
		transport = ndi.NewTCPTransport(cfg.NDITarget)
	}
	sender := ndi.NewSender(transport)
	if err := sender.Initialize(cfg.NDIName, cfg.FrameRate); err != nil {
		return fmt.Errorf("failed to initialize frame sender: %w", err)
	}
	defer sender.Destroy()

	theme := slides.DefaultTheme()
	if cfg.Background != "" {
		if theme.Background, err = canvas.ParseHexColor(cfg.Background); err != nil {
			return fmt.Errorf("invalid background-color: %w", err)
		}
	}
	if cfg.Accent != "" {
		if theme.Accent, err = canvas.ParseHexColor(cfg.Accent); err != nil {
			return fmt.Errorf("invalid accent-color: %w", err)
		}
	}

	// Set up context and signal handling before errgroup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		// Shutdown deadline starts now — not at boot.
		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		os.Exit(1)
	}()

	poll := poller.NewManager(src, pollerIntervals(cfg.PollInterval))
	poll.Start(ctx)
	defer poll.Stop()

	eng := engine.New(engine.Config{
		Width:          cfg.DisplayWidth,
		Height:         cfg.DisplayHeight,
		FrameRate:      cfg.FrameRate,
		Theme:          theme,
		TransitionKind: model.TransitionKind(cfg.Transition),
		TransitionTime: cfg.TransitionTime,
		StaleThreshold: cfg.StaleThreshold,
		StalePosition:  cfg.StalePosition,
		Deck:           deck,
	}, poll, sender)

	// Start monitor API server if enabled
	if cfg.APIEnabled {
		apiServer := httpserver.NewServer(cfg.APIAddr, eng)
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("failed to start API server: %w", err)
		}
		defer apiServer.Stop()
	}

	printStartupBanner(cfg, src.Name(), len(deck))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return eng.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	signal.Stop(sigCh)
	return nil
}

// pollerIntervals applies a single configured refresh override to the
// fast-moving data domains; the slow ones keep their defaults.
func pollerIntervals(override time.Duration) poller.Intervals {
	if override <= 0 {
		return poller.Intervals{}
	}
	return poller.Intervals{
		Projects:  override,
		POs:       override,
		Metrics:   override,
		Dashboard: override,
	}
}

func configureRuntimeLogger() func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	home, err := os.UserHomeDir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logDir := filepath.Join(home, ".local", "state", "signcast")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logPath := filepath.Join(logDir, "signcast.log")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		_ = f.Close()
	}
}

func printStartupBanner(cfg appConfig, sourceName string, deckSize int) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	logo := cyan.Bold(true).Render(`
    ╔═╗╦╔═╗╔╗╔╔═╗╔═╗╔═╗╔╦╗
    ╚═╗║║ ╦║║║║  ╠═╣╚═╗ ║
    ╚═╝╩╚═╝╝╚╝╚═╝╩ ╩╚═╝ ╩`)

	ver := dim.Render("v" + version)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, logo)
	lines = append(lines, "    "+ver)
	lines = append(lines, "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator)
	lines = append(lines, "")

	// Output
	lines = append(lines, bold.Render("    Output"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Stream Name    %s", check, cyan.Render(cfg.NDIName)))
	if cfg.NDITarget != "" {
		lines = append(lines, fmt.Sprintf("    %s  Target         %s", check, cyan.Render(cfg.NDITarget)))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Target         %s", dot, dim.Render("none (frames discarded)")))
	}
	lines = append(lines, fmt.Sprintf("    %s  Format         %s", check,
		dim.Render(fmt.Sprintf("%dx%d @ %d fps", cfg.DisplayWidth, cfg.DisplayHeight, cfg.FrameRate))))
	lines = append(lines, "")

	// Data
	lines = append(lines, bold.Render("    Data"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Source         %s", check, cyan.Render(sourceName)))
	lines = append(lines, fmt.Sprintf("    %s  Rotation       %s", check,
		dim.Render(fmt.Sprintf("%d slides, %s transition", deckSize, cfg.Transition))))
	lines = append(lines, "")

	// Runtime
	lines = append(lines, bold.Render("    Runtime"))
	lines = append(lines, "")
	if cfg.APIEnabled {
		lines = append(lines, fmt.Sprintf("    %s  Monitor API    %s", check, cyan.Render(cfg.APIAddr)))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Monitor API    %s", dot, dim.Render("disabled")))
	}
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}

	lines = append(lines, "")
	lines = append(lines, separator)
	lines = append(lines, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"))
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
