package main

import (
	"context"
	"fmt"
	"os"

	"github.com/delaneyj/tether/bind"
	"github.com/delaneyj/tether/internal/datafile"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "List every bindable path in a data file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     dataKey,
				Usage:    "YAML or JSON data file",
				Required: true,
			},
		},
		Action: inspect,
	}
}

func inspect(ctx context.Context, cmd *cli.Command) error {
	data, err := datafile.Load(cmd.String(dataKey))
	if err != nil {
		return err
	}
	rs := bind.CreateReactiveSystem(data)

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	tbl := table.NewWriter()
	tbl.SetTitle(cmd.String(dataKey))
	tbl.SetOutputMirror(out)
	tbl.AppendHeader(table.Row{"path", "kind", "value"})
	walk(rs.Root(), nil, func(p bind.Path, v any) {
		kind := fmt.Sprintf("%T", v)
		value := fmt.Sprint(v)
		if _, ok := v.(*bind.Object); ok {
			kind, value = "object", ""
		}
		tbl.AppendRow(table.Row{p.String(), kind, value})
	})
	tbl.Render()
	return nil
}

func walk(o *bind.Object, prefix bind.Path, visit func(bind.Path, any)) {
	for _, key := range o.Keys() {
		v, _ := o.Peek(key)
		p := append(append(bind.Path{}, prefix...), key)
		visit(p, v)
		if child, ok := v.(*bind.Object); ok {
			walk(child, p, visit)
		}
	}
}
