// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/tapdrawer/main.go
// Summary: Tapdrawer entry point: config, app discovery, state store, and
// the terminal frontend loop.
// Usage: Run `tapdrawer` in a terminal; tap an app to launch it and exit.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"tapdrawer/config"
	"tapdrawer/drawer"
	frontend "tapdrawer/internal/frontend/term"
	"tapdrawer/launch"
	"tapdrawer/power"
	"tapdrawer/usage"
	"tapdrawer/xdg"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Config file path (default: user config dir)")
	statePath := flag.String("state", "", "State database path (default: XDG state dir)")
	logPath := flag.String("log", "tapdrawer.log", "Log file path")
	flag.Parse()

	// The screen owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Println("Tapdrawer starting...")

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal")
	}

	var cfg config.Config
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	input, err := cfg.Input()
	if err != nil {
		return err
	}

	entries, err := xdg.LoadEntries()
	if err != nil {
		// An unreadable application dir still leaves the builtin row usable.
		log.Printf("Main: Desktop entry scan failed: %v", err)
	}
	log.Printf("Main: Found %d desktop entries", len(entries))

	var state drawer.StateStore
	if store, err := usage.Open(resolveStatePath(*statePath)); err != nil {
		log.Printf("Main: State store unavailable, running stateless: %v", err)
	} else {
		defer store.Close()
		state = store
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}

	var fe *frontend.Frontend
	d := drawer.New(drawer.Options{
		Input:       input,
		Entries:     entries,
		System:      power.Control{},
		Spawner:     launch.Spawner{},
		State:       state,
		SortByUsage: cfg.GetBool("drawer", "sort_by_usage", true),
		OnLaunched: func(e xdg.Entry) {
			log.Printf("Main: Launched %s, exiting", e.ID)
			fe.Stop()
		},
	})
	fe = frontend.New(screen, d, input.VelocityInterval)

	if err := fe.Run(); err != nil {
		return fmt.Errorf("run frontend: %w", err)
	}
	log.Println("Tapdrawer stopped cleanly.")
	return nil
}

// resolveStatePath picks the state database location: the flag if given,
// otherwise $XDG_STATE_HOME/tapdrawer/state.db with the usual home-dir
// fallback.
func resolveStatePath(override string) string {
	if override != "" {
		return override
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "tapdrawer-state.db"
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "tapdrawer", "state.db")
}
