// Copyright © 2026 Tapdrawer contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: power/power.go
// Summary: System power actions over the logind DBus interface.

package power

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	logindService = "org.freedesktop.login1"
	logindPath    = "/org/freedesktop/login1"
	logindManager = "org.freedesktop.login1.Manager"
)

// Control executes power actions for the drawer's builtin entries.
type Control struct{}

// PowerOff shuts the system down via logind.
func (Control) PowerOff() error {
	return call("PowerOff")
}

// Reboot restarts the system via logind.
func (Control) Reboot() error {
	return call("Reboot")
}

func call(method string) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("connect system bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(logindService, dbus.ObjectPath(logindPath))
	// interactive=false: never pop an auth prompt on a handheld.
	if err := obj.Call(logindManager+"."+method, 0, false).Err; err != nil {
		return fmt.Errorf("logind %s: %w", method, err)
	}
	return nil
}
