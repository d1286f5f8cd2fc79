package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-b", "sqlite", "-l", "debug"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b", "sqlite"},
		},
		{
			name:         "equals form",
			args:         []string{"-b=redis", "-l", "debug"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b=redis"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-b"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value kept",
			args:         []string{"-b"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-b", "-l", "debug"},
			allowedFlags: []string{"-b", "-l"},
			want:         []string{"-b", "-l", "debug"},
		},
		{
			name:         "repeated flag preserved in order",
			args:         []string{"-d", "one", "-d", "two"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d", "one", "-d", "two"},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-d"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/fleet.json"}, "/etc/fleet.json"},
		{"long", []string{"-config", "/etc/fleet.yaml"}, "/etc/fleet.yaml"},
		{"equals", []string{"-config=/tmp/x.json", "-b", "memory"}, "/tmp/x.json"},
		{"absent", []string{"-b", "memory"}, ""},
		{"last wins", []string{"-c", "/a.json", "-config", "/b.json"}, "/b.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFileFlag(tt.args))
		})
	}
}
