// Command edkmac hashes, encrypts and signs files with KMACXOF256 and the
// Ed448-Goldilocks Edwards curve.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var Version = "DEV"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "edkmac: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "edkmac"
	app.Usage = "KMAC and Edwards-curve file cryptography"
	app.Version = Version
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Usage:   "Path to a YAML config file",
			Value:   defaultConfigPath,
			EnvVars: []string{"EDKMAC_CONFIG"},
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Value:   "info",
			Usage:   "Application logging level {debug, info, warn, error}",
			EnvVars: []string{"EDKMAC_LOGLEVEL"},
		},
		&cli.StringFlag{
			Name:    flagLogFile,
			Usage:   "Also write logs to this file, rotated by size",
			EnvVars: []string{"EDKMAC_LOGFILE"},
		},
	}
	app.Before = loadConfig
	app.Commands = []*cli.Command{
		hashCommand(),
		tagCommand(),
		encryptCommand(),
		decryptCommand(),
		keygenCommand(),
		sealCommand(),
		openCommand(),
		signCommand(),
		verifyCommand(),
		shardCommand(),
	}
	return app
}
