package term

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/mtsmux/internal/config"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name    string
		mode    config.ColorMode
		tty     bool
		noColor string
		termEnv string
		want    bool
	}{
		{"always ignores tty", config.ColorAlways, false, "1", "dumb", true},
		{"never", config.ColorNever, true, "", "xterm", false},
		{"auto on tty", config.ColorAuto, true, "", "xterm-256color", true},
		{"auto off pipe", config.ColorAuto, false, "", "xterm", false},
		{"auto NO_COLOR", config.ColorAuto, true, "1", "xterm", false},
		{"auto dumb", config.ColorAuto, true, "", "DUMB", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolve(tc.mode, tc.tty, tc.noColor, tc.termEnv))
		})
	}
}

func TestPaintFollowsConfigure(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })

	Configure(config.ColorNever)
	assert.False(t, Enabled())
	assert.Equal(t, "ok", Paint(RoleSuccess, "ok"))
	assert.Empty(t, Color(RoleError))
	assert.Empty(t, Reset())

	Configure(config.ColorAlways)
	assert.True(t, Enabled())
	assert.Equal(t, "\033[1;92mok\033[0m", Paint(RoleSuccess, "ok"))
	assert.Empty(t, Color(roleCount))
}

func TestIsTerminalNil(t *testing.T) {
	assert.False(t, IsTerminal(nil))

	f, err := os.CreateTemp(t.TempDir(), "tty")
	assert.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
}
