// Command dynamd is the tiling window manager's entrypoint: load config,
// open the display, run the ICCCM/EWMH handshake, scan pre-existing
// windows, and pump events until shutdown. All os.Exit calls live here —
// never inside library code — per SPEC_FULL.md's AMBIENT STACK / CLI note.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"

	"github.com/loannaflip/dynamd/internal/config"
	"github.com/loannaflip/dynamd/internal/wm"
	"github.com/loannaflip/dynamd/internal/xserver"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Exit codes, spec.md §6: 0 on clean shutdown, nonzero with a diagnostic
// on display open failure, XCB sidecar unavailable, or another WM
// present. exitLocale is declared but not returned: run() only logs a
// warning when neither LANG nor LC_ALL is set and carries on.
const (
	exitOK = iota
	exitLocale
	exitDisplay
	exitXCB
	exitOtherWM
	exitConfig
)

func main() {
	var cfgPath string
	var printConfig bool

	root := &cobra.Command{
		Use:     "dynamd",
		Short:   "a tiling window manager for X",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath, printConfig)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to TOML config file")
	root.Flags().BoolVar(&printConfig, "print-config", false, "print the resolved configuration and exit")

	if err := root.Execute(); err != nil {
		log.Error(err)
		if code, ok := err.(exitError); ok {
			os.Exit(code.code)
		}
		os.Exit(exitConfig)
	}
}

// exitError carries one of the §6 exit codes through cobra's RunE return
// so main can os.Exit with the right diagnostic code; library code below
// run() never calls os.Exit itself.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string { return e.err.Error() }

func fail(code int, err error) error { return exitError{code: code, err: err} }

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir + "/dynamd/dynamd.toml"
}

func run(cfgPath string, printConfig bool) error {
	if os.Getenv("LANG") == "" && os.Getenv("LC_ALL") == "" {
		log.Warn("dynamd: no locale set in environment, continuing with C locale")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fail(exitConfig, fmt.Errorf("dynamd: config: %w", err))
	}

	if printConfig {
		enc := toml.NewEncoder(os.Stdout)
		if err := enc.Encode(cfg); err != nil {
			return fail(exitConfig, fmt.Errorf("dynamd: encoding config: %w", err))
		}
		return nil
	}

	conn, err := xserver.Open("")
	if err != nil {
		return fail(exitDisplay, fmt.Errorf("dynamd: cannot open display: %w", err))
	}
	defer conn.Close()

	manager := wm.New(conn, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		<-sig
		manager.Stop()
		cancel()
	}()

	if err := manager.Setup(); err != nil {
		code := exitXCB
		if strings.Contains(err.Error(), "already running") {
			code = exitOtherWM
		}
		return fail(code, fmt.Errorf("dynamd: setup failed: %w", err))
	}
	manager.Scan()

	if err := manager.Run(ctx); err != nil {
		return fmt.Errorf("dynamd: %w", err)
	}
	return nil
}
