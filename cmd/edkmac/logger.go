package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
}

func createLogger(c *cli.Context) *zerolog.Logger {
	cfg := configFrom(c)
	level, levelErr := zerolog.ParseLevel(stringSetting(c, flagLogLevel, cfg.LogLevel))
	if levelErr != nil {
		level = zerolog.InfoLevel
	}

	out := c.App.ErrWriter
	if out == nil {
		out = os.Stderr
	}
	if f, ok := out.(*os.File); ok {
		out = colorable.NewColorable(f)
	}
	var writer io.Writer = zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}

	if path := stringSetting(c, flagLogFile, cfg.LogFile); path != "" {
		rotating := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		writer = zerolog.MultiLevelWriter(writer, rotating)
	}

	log := zerolog.New(writer).With().Timestamp().Logger().Level(level)
	return &log
}
