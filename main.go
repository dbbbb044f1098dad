package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/rotary-dial/internal/clock"
	"github.com/iburimskiy/rotary-dial/internal/config"
	"github.com/iburimskiy/rotary-dial/internal/dial"
	"github.com/iburimskiy/rotary-dial/internal/game"
	"github.com/iburimskiy/rotary-dial/internal/headless"
)

func main() {
	var (
		configPath string
		verbose    bool
		mute       bool
		headlessOn bool
		number     string
		hcfg       headless.Config
	)
	flag.StringVar(&configPath, "config", "", "YAML file overriding the built-in settings.")
	flag.BoolVar(&verbose, "v", false, "Log dial transitions.")
	flag.BoolVar(&mute, "mute", false, "Start with the ratchet sound muted.")
	flag.BoolVar(&headlessOn, "headless", false, "Dial -dial without opening a window.")
	flag.StringVar(&number, "dial", "", "Number to dial in headless mode.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Give up after N ticks in headless mode (0 = no limit).")
	flag.Parse()

	logger := log.New(os.Stderr, "rotary: ", log.LstdFlags)
	dialLog := log.New(io.Discard, "", 0)
	if verbose || headlessOn {
		dialLog = logger
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal(logger, err, !headlessOn)
	}

	if headlessOn {
		if err := runHeadless(cfg, number, hcfg, dialLog); err != nil {
			fatal(logger, err, false)
		}
		return
	}

	g, err := game.New(cfg, game.Options{Mute: mute, Logger: dialLog})
	if err != nil {
		fatal(logger, err, true)
	}
	if err := g.Run(); err != nil {
		fatal(logger, err, true)
	}
}

func runHeadless(cfg config.Config, number string, hcfg headless.Config, logger *log.Logger) error {
	digits, err := headless.ParseNumber(number)
	if err != nil {
		return fmt.Errorf("-dial: %w", err)
	}

	cx := float64(cfg.Window.Width) / 2
	cy := float64(cfg.Window.Height) - cfg.Dial.Radius
	d := dial.New(dial.Env{
		Locator:   dial.FixedCenter{X: cx, Y: cy},
		Scheduler: clock.NewScheduler(clock.Real{}),
		Logger:    logger,
	}, dial.Options{
		Radius:      cfg.Dial.HoleRadius,
		ReturnSpeed: cfg.Dial.ReturnSpeed,
		Settle:      time.Duration(cfg.Dial.SettleMs) * time.Millisecond,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = headless.Run(ctx, headless.NewScript(d, cx, cy, digits, 0), hcfg)
	fmt.Println(d.Display().String())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// fatal reports err and exits. In window mode the error is also shown in a dialog.
func fatal(logger *log.Logger, err error, dialog bool) {
	if dialog {
		if derr := zenity.Error(err.Error(), zenity.Title("Rotary Dial"), zenity.ErrorIcon); derr != nil && !errors.Is(derr, zenity.ErrCanceled) {
			logger.Printf("error dialog: %v", derr)
		}
	}
	logger.Fatal(err)
}
