package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harshul/noderunner/internal/doctor"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name   string
		env    doctor.Environment
		screen bool
		want   Strategy
	}{
		{"headless linux", doctor.Environment{Platform: doctor.Linux, Headless: true, HasMultiplexer: true}, true, Headless},
		{"headless mac", doctor.Environment{Platform: doctor.MacOS, Headless: true}, false, Headless},
		{"headless windows", doctor.Environment{Platform: doctor.Windows, Headless: true}, false, Headless},
		{"linux default", doctor.Environment{Platform: doctor.Linux}, false, LinuxTerminal},
		{"linux screen requested but missing", doctor.Environment{Platform: doctor.Linux}, true, LinuxTerminal},
		{"linux screen available but not requested", doctor.Environment{Platform: doctor.Linux, HasMultiplexer: true}, false, LinuxTerminal},
		{"linux screen", doctor.Environment{Platform: doctor.Linux, HasMultiplexer: true}, true, UnixMultiplexer},
		{"mac default", doctor.Environment{Platform: doctor.MacOS}, false, MacTerminalTab},
		{"mac screen", doctor.Environment{Platform: doctor.MacOS, HasMultiplexer: true}, true, UnixMultiplexer},
		{"windows ignores screen", doctor.Environment{Platform: doctor.Windows, HasMultiplexer: true}, true, WindowsStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.env, tt.screen)
			assert.Equal(t, tt.want, got)
			// Same inputs, same answer.
			assert.Equal(t, got, Select(tt.env, tt.screen))
		})
	}
}

func TestExtraArgs(t *testing.T) {
	assert.Equal(t, []string{NoLocalShellArg}, Headless.ExtraArgs())
	for _, s := range []Strategy{UnixMultiplexer, LinuxTerminal, MacTerminalTab, WindowsStart} {
		assert.Empty(t, s.ExtraArgs(), s.String())
	}
}
