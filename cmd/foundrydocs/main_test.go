package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	newApp := func(level string) *cli.App {
		return &cli.App{
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: level},
			},
			Action: setupLogger,
		}
	}

	t.Run("accepts valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
			err := newApp(level).Run([]string{"foundrydocs"})
			assert.NoError(t, err, "level %q", level)
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		err := newApp("chatty").Run([]string{"foundrydocs"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("debug level enables debug output", func(t *testing.T) {
		require.NoError(t, newApp("debug").Run([]string{"foundrydocs"}))
		assert.True(t, slog.Default().Enabled(nil, slog.LevelDebug))
	})
}

func TestIngestCommandRequiresFiles(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{Name: "ingest", Action: ingestCommand},
		},
	}

	err := app.Run([]string{"foundrydocs", "ingest"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one PDF file")
}

func TestDeleteAllRequiresConfirmation(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "delete-all",
				Action: deleteAllCommand,
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "yes"}},
			},
		},
	}

	err := app.Run([]string{"foundrydocs", "delete-all"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestReembedCommandValidatesConfig(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "reembed",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "batch-size", Value: 100},
					&cli.IntFlag{Name: "report-interval", Value: 100},
					&cli.IntFlag{Name: "max-retries", Value: 3},
				},
			},
		},
	}

	err := app.Run([]string{"foundrydocs", "reembed", "--batch-size", "0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch-size")
}
