// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: xdg/entries.go
// Summary: XDG desktop entry discovery for the drawer grid.
// Usage: LoadEntries scans the standard application directories once at
// startup; the drawer owns the resulting list.

package xdg

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one launchable application from a .desktop file.
type Entry struct {
	// ID is the desktop-file id, unique across data directories.
	ID string
	// Name is the display name from the entry.
	Name string
	// Icon is the icon name or path, possibly empty.
	Icon string
	// Exec is the command line with field codes stripped.
	Exec string
	// Hidden reports NoDisplay or Hidden entries, which stay out of the
	// grid unless the user is in settings mode.
	Hidden bool
}

// LoadEntries scans the standard XDG application directories.
func LoadEntries() ([]Entry, error) {
	return LoadEntriesFrom(ApplicationDirs())
}

// LoadEntriesFrom scans the given directories in order. Earlier
// directories win on desktop-file id collisions, per the XDG precedence
// rules. Unreadable files are skipped; only a fully failed scan is an
// error.
func LoadEntriesFrom(dirs []string) ([]Entry, error) {
	seen := make(map[string]bool)
	var entries []Entry
	var lastErr error
	scanned := 0

	for _, dir := range dirs {
		files, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				lastErr = err
			}
			continue
		}
		scanned++

		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".desktop") {
				continue
			}
			id := strings.TrimSuffix(file.Name(), ".desktop")
			if seen[id] {
				continue
			}
			seen[id] = true

			entry, ok, err := parseEntry(filepath.Join(dir, file.Name()))
			if err != nil || !ok {
				continue
			}
			entry.ID = id
			entries = append(entries, entry)
		}
	}

	if scanned == 0 && lastErr != nil {
		return nil, fmt.Errorf("scan application dirs: %w", lastErr)
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// ApplicationDirs returns the application directories in precedence
// order: $XDG_DATA_HOME first, then each $XDG_DATA_DIRS element.
func ApplicationDirs() []string {
	var dirs []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir != "" {
			dirs = append(dirs, filepath.Join(dir, "applications"))
		}
	}
	return dirs
}

// parseEntry reads the [Desktop Entry] group of a .desktop file. Returns
// ok=false for entries that are not launchable applications.
func parseEntry(path string) (Entry, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, false, err
	}
	defer f.Close()

	var entry Entry
	appType := ""
	inGroup := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inGroup = line == "[Desktop Entry]"
			continue
		}
		if !inGroup {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Type":
			appType = value
		case "Name":
			entry.Name = value
		case "Icon":
			entry.Icon = value
		case "Exec":
			entry.Exec = stripFieldCodes(value)
		case "NoDisplay", "Hidden":
			if value == "true" {
				entry.Hidden = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Entry{}, false, err
	}

	if appType != "Application" || entry.Name == "" || entry.Exec == "" {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

// stripFieldCodes removes %f/%u style placeholders from an Exec line.
// The drawer launches without files or URLs, so the codes expand to
// nothing; %% unescapes to a literal percent.
func stripFieldCodes(exec string) string {
	var words []string
	for _, word := range strings.Fields(exec) {
		switch {
		case word == "%%":
			words = append(words, "%")
		case len(word) == 2 && word[0] == '%':
			// Standalone field code: drop the word.
		default:
			words = append(words, strings.ReplaceAll(word, "%%", "%"))
		}
	}
	return strings.Join(words, " ")
}
