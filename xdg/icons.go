// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: xdg/icons.go
// Summary: Icon file lookup across hicolor theme and pixmap directories.

package xdg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var iconExtensions = []string{".png", ".svg", ".xpm"}

// FindIcon resolves an icon name to a file path, preferring the hicolor
// theme directory closest to the requested size and falling back to
// pixmaps. An absolute path is returned as-is when the file exists.
func FindIcon(name string, size int) (string, error) {
	return FindIconIn(name, size, iconDirs())
}

// FindIconIn resolves an icon against explicit data directories.
func FindIconIn(name string, size int, dataDirs []string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty icon name")
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}

	sizeDirs := []string{
		fmt.Sprintf("%dx%d", size, size),
		"scalable",
		"512x512", "256x256", "128x128", "96x96", "64x64", "48x48",
	}
	for _, dir := range dataDirs {
		for _, sizeDir := range sizeDirs {
			base := filepath.Join(dir, "icons", "hicolor", sizeDir, "apps", name)
			if path, ok := withKnownExtension(base); ok {
				return path, nil
			}
		}
		if path, ok := withKnownExtension(filepath.Join(dir, "pixmaps", name)); ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("icon %q not found", name)
}

func withKnownExtension(base string) (string, bool) {
	// Icon names normally omit the extension, but some .desktop files
	// include one.
	if ext := filepath.Ext(base); ext != "" && contains(iconExtensions, ext) {
		if _, err := os.Stat(base); err == nil {
			return base, true
		}
		base = strings.TrimSuffix(base, ext)
	}
	for _, ext := range iconExtensions {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext, true
		}
	}
	return "", false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func iconDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share"))
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
