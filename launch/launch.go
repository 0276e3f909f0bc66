// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: launch/launch.go
// Summary: Detached process spawning for launched applications.

package launch

import (
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

// Spawner starts applications detached from the drawer process, so a
// drawer exit after a successful launch does not take the app with it.
type Spawner struct{}

// Spawn starts the given Exec command line. The command is split on
// whitespace; desktop-entry field codes are already stripped by the xdg
// package. The child gets its own session and is left unreaped on
// purpose: the drawer exits right after a successful launch.
func (Spawner) Spawn(execLine string) error {
	words := strings.Fields(execLine)
	if len(words) == 0 {
		return fmt.Errorf("empty exec line")
	}

	cmd := exec.Command(words[0], words[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %q: %w", words[0], err)
	}
	// Release so the child is not tied to our wait status.
	return cmd.Process.Release()
}
