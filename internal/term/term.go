// Package term decides whether output is colored and holds the ANSI
// sequence for each log role. Sequences are empty while color is off,
// so callers concatenate them unconditionally.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/mtsmux/internal/config"
)

// Role is a kind of console output with its own color.
type Role int

const (
	RoleInfo Role = iota
	RoleSuccess
	RoleWarn
	RoleError
	RoleFallback
	RoleDebug
	RoleAccent // banner
	roleCount
)

var palette = [roleCount]string{
	RoleInfo:     "\033[1;94m",
	RoleSuccess:  "\033[1;92m",
	RoleWarn:     "\033[1;93m",
	RoleError:    "\033[1;91m",
	RoleFallback: "\033[1;38;5;208m",
	RoleDebug:    "\033[1;96m",
	RoleAccent:   "\033[1;95m",
}

const reset = "\033[0m"

var enabled bool

// Configure resolves mode against the environment. Called once at startup
// by logging.NewLogger.
func Configure(mode config.ColorMode) {
	enabled = resolve(mode, IsTerminal(os.Stdout), os.Getenv("NO_COLOR"), os.Getenv("TERM"))
}

// Enabled reports whether color is on.
func Enabled() bool { return enabled }

// Color returns the sequence for r, or "" when color is off.
func Color(r Role) string {
	if !enabled || r < 0 || r >= roleCount {
		return ""
	}
	return palette[r]
}

// Reset returns the reset sequence, or "" when color is off.
func Reset() string {
	if !enabled {
		return ""
	}
	return reset
}

// Paint wraps s in the color for r.
func Paint(r Role, s string) string {
	if !enabled {
		return s
	}
	return Color(r) + s + reset
}

// resolve honors NO_COLOR (https://no-color.org) and TERM=dumb in auto mode.
func resolve(mode config.ColorMode, tty bool, noColor, termEnv string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return tty && noColor == "" && strings.ToLower(termEnv) != "dumb"
}

// IsTerminal reports whether f is a TTY, including Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
