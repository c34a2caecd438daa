package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/rewire/binding"
	"github.com/delaneyj/rewire/cell"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	profileKey = "profile"
)

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 4, 16, 64}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure how long a root change takes to rewire every chain below it",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Root changes measured per width x depth combination",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Int(itersKey))
	log.Printf("warming up")
	if err := benchmarkRewire(iters, false); err != nil {
		return err
	}
	return benchmarkRewire(iters, true)
}

// hop is one link of a world: the next hop and a value at the end.
type hop struct {
	next  *cell.Cell[*hop]
	value *cell.Cell[int]
}

func buildWorld(depth, seed int) *hop {
	var last *hop
	for i := depth; i >= 0; i-- {
		last = &hop{
			next:  cell.Of(last),
			value: cell.Of(seed + i),
		}
	}
	return last
}

func nextHop(h *hop) cell.Observable[*hop] {
	return h.next
}

func hopValue(h *hop) cell.Observable[int] {
	return h.value
}

func benchmarkRewire(iters int, shouldRender bool) error {
	tbl := table.NewWriter()
	tbl.SetTitle("Chain rewiring")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "rewires", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := binding.NewRuntime(binding.DefaultConfig())
			worlds := [2]*hop{buildWorld(h, 0), buildWorld(h, 1_000)}
			src := cell.Of(worlds[0])

			targets := make([]*cell.Cell[int], w)
			scope := binding.NewScope()
			for i := 0; i < w; i++ {
				n := binding.Observe[*hop](src, binding.WithRuntime(rt), binding.InScope(scope))
				for j := 0; j < h; j++ {
					n = binding.MustThen(n, nextHop)
				}
				leaf := binding.MustThen(n, hopValue)

				targets[i] = cell.New[int]()
				if _, err := leaf.MirrorTo(targets[i]); err != nil {
					return err
				}
			}

			for i := 0; i < iters; i++ {
				world := worlds[(i+1)%2]
				start := time.Now()
				if err := src.SetValue(world); err != nil {
					return err
				}
				tach.AddTime(time.Since(start))

				want := world.value.Get() + h
				for _, target := range targets {
					if got := target.Get(); got != want {
						return fmt.Errorf("%d x %d: mirrored %d, want %d", w, h, got, want)
					}
				}
			}

			if err := scope.Dispose(); err != nil {
				return err
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("rewire: %d * %d", w, h),
					humanize.Comma(int64(rt.Stats().Rewires)),
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
	return nil
}
