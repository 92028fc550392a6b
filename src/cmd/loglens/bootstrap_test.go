// FILE: loglens/src/cmd/loglens/bootstrap_test.go
package main

import (
	"fmt"
	"testing"

	"loglens/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerArgs(t *testing.T) {
	t.Run("Quiet", func(t *testing.T) {
		args, err := loggerArgs(config.DefaultLogConfig(), true)
		require.NoError(t, err)
		assert.Contains(t, args, "level=255")
		assert.Contains(t, args, "enable_console=false")
	})

	t.Run("DefaultStderr", func(t *testing.T) {
		args, err := loggerArgs(config.DefaultLogConfig(), false)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("level=%d", log.LevelWarn), args[0])
		assert.Contains(t, args, "console_target=stderr")
		assert.Contains(t, args, "disable_file=true")
		assert.Contains(t, args, "format=txt")
	})

	t.Run("BothWithSplit", func(t *testing.T) {
		lc := config.DefaultLogConfig()
		lc.Output = "both"
		lc.Level = "debug"
		lc.Console.Target = "split"

		args, err := loggerArgs(lc, false)
		require.NoError(t, err)
		assert.Contains(t, args, "directory=./log")
		assert.Contains(t, args, "name=loglens")
		assert.Contains(t, args, "retention_period_hrs=168.0")
		assert.Contains(t, args, "console_target=split")
	})

	t.Run("FileOnly", func(t *testing.T) {
		lc := config.DefaultLogConfig()
		lc.Output = "file"

		args, err := loggerArgs(lc, false)
		require.NoError(t, err)
		assert.Contains(t, args, "enable_console=false")
		assert.NotContains(t, args, "console_target=stderr")
	})

	t.Run("Invalid", func(t *testing.T) {
		lc := config.DefaultLogConfig()
		lc.Output = "syslog"
		_, err := loggerArgs(lc, false)
		assert.ErrorContains(t, err, "invalid log output mode")

		lc = config.DefaultLogConfig()
		lc.Level = "loud"
		_, err = loggerArgs(lc, false)
		assert.ErrorContains(t, err, "invalid log level")
	})
}
