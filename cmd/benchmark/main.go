package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/tether/bind"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
)

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100}
	iters = 100

	profile = flag.String("cpuprofile", "", "write a CPU profile to this file")
)

type result struct {
	name     string
	updates  int64
	duration time.Duration
}

func main() {
	flag.Parse()

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkPropagate(false)

	results := benchmarkPropagate(true)
	renderSummary(results)
}

// benchmarkPropagate builds w chains of h watchers hanging off one root
// property. Every write to "src" walks each chain to its end.
func benchmarkPropagate(shouldRender bool) []result {
	tbl := table.NewWriter()
	tbl.SetTitle("tether propagate")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	var results []result
	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			data := map[string]any{"src": 0}
			for i := 0; i < w; i++ {
				chain := map[string]any{}
				for j := 0; j < h; j++ {
					chain[fmt.Sprintf("l%d", j)] = 0
				}
				data[fmt.Sprintf("c%d", i)] = chain
			}
			rs := bind.CreateReactiveSystem(data, bind.WithMaxNotifyDepth(0))

			var updates int64
			for i := 0; i < w; i++ {
				prev := "src"
				for j := 0; j < h; j++ {
					next := fmt.Sprintf("c%d.l%d", i, j)
					if _, _, err := bind.Watch(rs, prev, func(v any) error {
						updates++
						return rs.Assign(next, v.(int)+1)
					}); err != nil {
						log.Fatal(err)
					}
					prev = next
				}
			}

			start := time.Now()
			for i := 1; i <= iters; i++ {
				sample := time.Now()
				if err := rs.Assign("src", i); err != nil {
					log.Fatal(err)
				}
				tach.AddTime(time.Since(sample))
			}
			elapsed := time.Since(start)

			name := fmt.Sprintf("propagate: %d * %d", w, h)
			results = append(results, result{name: name, updates: updates, duration: elapsed})

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					name,
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
	return results
}

func renderSummary(results []result) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"benchmark", "updates", "time", "updates/ms"})
	for _, r := range results {
		rate := float64(r.updates) / (float64(r.duration) / float64(time.Millisecond))
		tw.Append([]string{
			r.name,
			humanize.Comma(r.updates),
			fmt.Sprint(r.duration),
			humanize.Comma(int64(rate)),
		})
	}
	tw.Render()
}
