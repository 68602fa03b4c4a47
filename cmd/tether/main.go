package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const (
	dataKey     = "data"
	templateKey = "template"
	setKey      = "set"
	maxDepthKey = "max-depth"
	logLevelKey = "log-level"
	metricsKey  = "metrics"
)

func main() {
	cmd := &cli.Command{
		Name:  "tether",
		Usage: "Bind text templates to a reactive data tree",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  logLevelKey,
				Usage: "Log level (debug, info, warn, error)",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			renderCommand(),
			inspectCommand(),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
