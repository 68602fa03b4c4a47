package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/delaneyj/tether/bind"
	"github.com/delaneyj/tether/internal/datafile"
	"github.com/delaneyj/tether/internal/logging"
	"github.com/delaneyj/tether/metrics"
	"github.com/delaneyj/tether/view"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render a template, then re-render after each --set assignment",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     dataKey,
				Usage:    "YAML or JSON data file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     templateKey,
				Usage:    "Template file with {{ path }} markers",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  setKey,
				Usage: "Assignment path=value, applied in order",
			},
			&cli.IntFlag{
				Name:  maxDepthKey,
				Usage: "Maximum nested notify depth, 0 for unbounded",
				Value: bind.DefaultMaxNotifyDepth,
			},
			&cli.BoolFlag{
				Name:  metricsKey,
				Usage: "Print notification metrics when done",
			},
		},
		Action: render,
	}
}

func render(ctx context.Context, cmd *cli.Command) error {
	level, err := logging.ParseLevel(cmd.String(logLevelKey))
	if err != nil {
		return err
	}
	logger := logging.New(level)

	data, err := datafile.Load(cmd.String(dataKey))
	if err != nil {
		return err
	}
	tmpl, err := os.ReadFile(cmd.String(templateKey))
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}

	rs := bind.CreateReactiveSystem(data,
		bind.WithLogger(logger),
		bind.WithHooks(collector.Hooks()),
		bind.WithMaxNotifyDepth(int(cmd.Int(maxDepthKey))),
	)

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	if _, err := view.BindText(rs, string(tmpl), func(s string) {
		fmt.Fprintln(out, s)
	}); err != nil {
		return err
	}

	for _, assignment := range cmd.StringSlice(setKey) {
		path, v, err := datafile.ParseAssignment(assignment)
		if err != nil {
			return err
		}
		logger.Info("assign", "path", path, "value", v)
		if err := rs.Assign(path, v); err != nil {
			return fmt.Errorf("assign %s: %w", path, err)
		}
	}

	if cmd.Bool(metricsKey) {
		return printMetrics(reg, out)
	}
	return nil
}

func printMetrics(reg *prometheus.Registry, out io.Writer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetTitle("Metrics")
	tbl.SetOutputMirror(out)
	tbl.AppendHeader(table.Row{"metric", "labels", "value"})
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for i, lp := range m.GetLabel() {
				if i > 0 {
					labels += ","
				}
				labels += lp.GetName() + "=" + lp.GetValue()
			}
			var value any
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				value = fmt.Sprintf("count=%d sum=%g", m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum())
			}
			tbl.AppendRow(table.Row{mf.GetName(), labels, value})
		}
	}
	tbl.Render()
	return nil
}
