// FILE: loglens/src/cmd/loglens/flags_test.go
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		config string
		quiet  bool
		want   []string
	}{
		{
			name: "empty",
		},
		{
			name: "positional input",
			args: []string{"/var/log/nginx/access.log"},
			want: []string{"--input.path=/var/log/nginx/access.log"},
		},
		{
			name: "stdin",
			args: []string{"-"},
			want: []string{"--input.path=-"},
		},
		{
			name:   "config and quiet",
			args:   []string{"-c", "/etc/loglens.toml", "-q"},
			config: "/etc/loglens.toml",
			quiet:  true,
		},
		{
			name:   "config with equals",
			args:   []string{"--config=/tmp/x.toml"},
			config: "/tmp/x.toml",
		},
		{
			name: "short value flags",
			args: []string{"-f", "combined", "-o", "json", "-a", "country,city", "access.log"},
			want: []string{
				"--input.format=combined",
				"--report.output=json",
				"--report.aggregations=country,city",
				"--input.path=access.log",
			},
		},
		{
			name: "bool flag",
			args: []string{"-g", "--geo=false"},
			want: []string{"--geo.enabled=true", "--geo.enabled=false"},
		},
		{
			name: "config key passthrough",
			args: []string{"--report.top=5", "--geo.database_path", "/db.mmdb", "--geo.fallback.enabled"},
			want: []string{
				"--report.top=5",
				"--geo.database_path=/db.mmdb",
				"--geo.fallback.enabled=true",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := ParseFlags(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.config, fc.ConfigFile)
			assert.Equal(t, tt.quiet, fc.Quiet)
			assert.Equal(t, tt.want, fc.ConfigArgs)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"missing value", []string{"-o"}, "requires a value"},
		{"missing config value", []string{"--config"}, "requires a value"},
		{"unknown flag", []string{"--bogus"}, "unknown flag"},
		{"two inputs", []string{"a.log", "b.log"}, "at most one input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
