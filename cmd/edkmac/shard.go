package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/TheusHen/edkmac/edkmac/shard"
)

const flagOutDir = "out-dir"

func shardCommand() *cli.Command {
	return &cli.Command{
		Name:  "shard",
		Usage: "Spread a cryptogram file over Reed-Solomon shards and rebuild it",
		Subcommands: []*cli.Command{
			{
				Name:      "split",
				Usage:     "Split a file into data and parity shards",
				UsageText: "edkmac shard split [--data-shards N] [--parity-shards M] [--out-dir DIR] FILE",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagDataShards, Value: 4, Usage: "Number of data shards"},
					&cli.IntFlag{Name: flagParityShards, Value: 2, Usage: "Number of shards that may be lost"},
					&cli.StringFlag{Name: flagOutDir, Usage: "Directory for shard files (default: next to FILE)"},
				},
				Action: shardSplitAction,
			},
			{
				Name:      "join",
				Usage:     "Rebuild a file from any sufficient subset of its shards",
				UsageText: "edkmac shard join [--out FILE] SHARD...",
				Flags:     []cli.Flag{outFlag("Rebuilt output file")},
				Action:    shardJoinAction,
			},
		},
	}
}

func shardName(dir, base string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("%s.shard%03d", base, index))
}

func shardSplitAction(c *cli.Context) error {
	log := createLogger(c)
	path, err := requireArg(c, "FILE")
	if err != nil {
		return err
	}
	data, err := readInput(c, path)
	if err != nil {
		return err
	}

	cfg := configFrom(c)
	codec, err := shard.NewCodec(intSetting(c, flagDataShards, cfg.DataShards), intSetting(c, flagParityShards, cfg.ParityShards))
	if err != nil {
		return err
	}
	shards, err := codec.Split(data)
	if err != nil {
		return errors.Wrapf(err, "splitting %s", path)
	}

	dir := c.String(flagOutDir)
	if dir == "" {
		dir = filepath.Dir(path)
	}
	base := filepath.Base(path)
	for _, s := range shards {
		s := s
		name := shardName(dir, base, s.Index)
		if err := writeOutput(c, name, 0o644, func(w io.Writer) error {
			return shard.WriteShard(w, s)
		}); err != nil {
			return err
		}
		log.Debug().Str("path", name).Int("bytes", len(s.Data)).Msg("wrote shard")
	}
	log.Info().
		Int("data", codec.DataShards()).
		Int("parity", codec.ParityShards()).
		Float64("overhead", codec.Overhead()).
		Msg("split")
	return nil
}

func shardJoinAction(c *cli.Context) error {
	log := createLogger(c)
	if c.NArg() == 0 {
		return errors.New("shard join: no shard files given")
	}

	var shards []shard.Shard
	for _, path := range c.Args().Slice() {
		f, err := os.Open(path)
		if err != nil {
			// a lost shard is expected, parity covers it
			log.Warn().Err(err).Str("path", path).Msg("skipping shard")
			continue
		}
		s, err := shard.ReadShard(f)
		f.Close()
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable shard")
			continue
		}
		shards = append(shards, s)
	}

	data, err := shard.Join(shards)
	if err != nil {
		return errors.Wrapf(err, "joining %d shards", len(shards))
	}
	log.Info().Int("shards", len(shards)).Int("bytes", len(data)).Msg("joined")
	return writeOutput(c, c.String(flagOut), 0o644, writeBytes(data))
}
