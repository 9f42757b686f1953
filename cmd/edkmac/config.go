package main

import (
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	flagConfig       = "config"
	flagLogLevel     = "loglevel"
	flagLogFile      = "logfile"
	flagPassphrase   = "passphrase"
	flagCompress     = "compress"
	flagKeyDir       = "key-dir"
	flagOut          = "out"
	flagDataShards   = "data-shards"
	flagParityShards = "parity-shards"

	defaultConfigPath = "~/.edkmac/config.yml"
	configKey         = "config"
)

// Config holds defaults read from the YAML config file. Command line flags
// take precedence over every field.
type Config struct {
	LogLevel     string `yaml:"loglevel"`
	LogFile      string `yaml:"logfile"`
	KeyDir       string `yaml:"key-dir"`
	Compress     string `yaml:"compress"`
	DataShards   int    `yaml:"data-shards"`
	ParityShards int    `yaml:"parity-shards"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:     "info",
		KeyDir:       "~/.edkmac/keys",
		Compress:     "off",
		DataShards:   4,
		ParityShards: 2,
	}
}

// ReadConfig decodes a config file on top of the defaults. A missing file is
// only an error when mustExist is set.
func ReadConfig(path string, mustExist bool) (Config, error) {
	cfg := defaultConfig()
	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "expanding config path %s", path)
	}
	file, err := os.Open(expanded)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "opening config file %s", expanded)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrap(err, "error parsing YAML in config file at "+expanded)
	}
	return cfg, nil
}

func loadConfig(c *cli.Context) error {
	cfg, err := ReadConfig(c.String(flagConfig), c.IsSet(flagConfig))
	if err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func configFrom(c *cli.Context) Config {
	if cfg, ok := c.App.Metadata[configKey].(Config); ok {
		return cfg
	}
	return defaultConfig()
}

// stringSetting returns the flag value if set, else the config value.
func stringSetting(c *cli.Context, flag, fromConfig string) string {
	if c.IsSet(flag) || fromConfig == "" {
		return c.String(flag)
	}
	return fromConfig
}

func intSetting(c *cli.Context, flag string, fromConfig int) int {
	if c.IsSet(flag) || fromConfig == 0 {
		return c.Int(flag)
	}
	return fromConfig
}

func keyDir(c *cli.Context) (string, error) {
	dir, err := homedir.Expand(stringSetting(c, flagKeyDir, configFrom(c).KeyDir))
	return dir, errors.Wrap(err, "expanding key directory")
}
