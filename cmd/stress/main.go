package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/rewire/binding"
	"github.com/delaneyj/rewire/binding/strategy"
	"github.com/delaneyj/rewire/cell"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	seedKey    = "seed"
	repeatsKey = "repeats"
)

func main() {
	cmd := &cli.Command{
		Name:  "stress",
		Usage: "Randomly rewire, break and write chains and verify every terminal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  seedKey,
				Usage: "Seed of the random operation sequence",
				Value: 0,
			},
			&cli.IntFlag{
				Name:  repeatsKey,
				Usage: "Timed runs per config, the best one is reported",
				Value: 5,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type stressConfig struct {
	name          string  // friendly name for the run, should be unique
	chains        int     // number of independent chains
	depth         int     // hops below each root
	worlds        int     // number of hop lists the roots switch between
	breakFraction float64 // fraction of operations that break a chain
	writeFraction float64 // fraction of operations that write a leaf value
	iterations    int
}

type stressResult struct {
	duration time.Duration
	rewires  uint64
	checksum uint64
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting rewire stress run, please wait...")
	defer log.Print("Finished rewire stress run")

	cfgs := []stressConfig{
		{
			name:          "shallow rewires",
			chains:        10,
			depth:         2,
			worlds:        4,
			breakFraction: 0.1,
			writeFraction: 0.2,
			iterations:    200_000,
		},
		{
			name:          "deep chains",
			chains:        10,
			depth:         50,
			worlds:        3,
			breakFraction: 0.05,
			writeFraction: 0.5,
			iterations:    20_000,
		},
		{
			name:          "many chains",
			chains:        1_000,
			depth:         5,
			worlds:        8,
			breakFraction: 0.2,
			writeFraction: 0.3,
			iterations:    100_000,
		},
		{
			name:          "mostly broken",
			chains:        100,
			depth:         8,
			worlds:        2,
			breakFraction: 0.6,
			writeFraction: 0.1,
			iterations:    50_000,
		},
	}

	seed := int64(cmd.Int(seedKey))
	repeats := int(cmd.Int(repeatsKey))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"test", "chains", "depth", "worlds", "break%", "write%",
		"nTimes", "time", "rewires", "opsRate", "checksum",
	})

	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)

		// warm up
		if _, err := runStress(cfg, seed); err != nil {
			return err
		}

		best := stressResult{duration: time.Hour}
		for i := 0; i < repeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.name, i+1, repeats, (i+1)*100/repeats)
			res, err := runStress(cfg, seed)
			if err != nil {
				return err
			}
			if res.checksum != best.checksum && best.duration != time.Hour {
				return fmt.Errorf("%s: checksum %016x differs from earlier run %016x", cfg.name, res.checksum, best.checksum)
			}
			if res.duration < best.duration {
				best = res
			}
		}

		opsRate := float64(cfg.iterations) / (float64(best.duration) / float64(time.Millisecond))
		table.Append([]string{
			cfg.name,
			humanize.Comma(int64(cfg.chains)),
			fmt.Sprint(cfg.depth),
			fmt.Sprint(cfg.worlds),
			fmt.Sprintf("%0.0f", 100*cfg.breakFraction),
			fmt.Sprintf("%0.0f", 100*cfg.writeFraction),
			humanize.Comma(int64(cfg.iterations)),
			fmt.Sprint(best.duration),
			humanize.Comma(int64(best.rewires)),
			humanize.Comma(int64(opsRate)),
			fmt.Sprintf("%016x", best.checksum),
		})
	}
	table.Render()
	return nil
}

// hop is one link of a world; the last hop of a world holds the leaf value.
type hop struct {
	next  *cell.Cell[*hop]
	value *cell.Cell[int]
}

type world struct {
	first *hop
	leaf  *cell.Cell[int]
}

func buildWorld(depth, seed int) world {
	leaf := cell.Of(seed)
	h := &hop{next: cell.New[*hop](), value: leaf}
	for i := 0; i < depth; i++ {
		h = &hop{next: cell.Of(h), value: cell.Of(-seed)}
	}
	return world{first: h, leaf: leaf}
}

func runStress(cfg stressConfig, seed int64) (stressResult, error) {
	random := rand.New(rand.NewSource(seed))
	rt := binding.NewRuntime(binding.DefaultConfig())
	scope := binding.NewScope()
	defer scope.Dispose()

	worlds := make([]world, cfg.worlds)
	for i := range worlds {
		worlds[i] = buildWorld(cfg.depth, (i+1)*1_000)
	}

	roots := make([]*cell.Cell[*hop], cfg.chains)
	current := make([]int, cfg.chains)
	targets := make([]*cell.Cell[int], cfg.chains)
	for i := range roots {
		roots[i] = cell.New[*hop]()
		current[i] = -1
		targets[i] = cell.New[int]()

		n := binding.Observe[*hop](roots[i], binding.WithRuntime(rt), binding.Named(fmt.Sprintf("chain%d", i)))
		if err := scope.Add(n); err != nil {
			return stressResult{}, err
		}
		for j := 0; j < cfg.depth; j++ {
			n = binding.MustThen(n, func(h *hop) cell.Observable[*hop] { return h.next })
		}
		leaf := binding.MustThen(n, func(h *hop) cell.Observable[int] { return h.value })
		if _, err := leaf.MirrorTo(targets[i], strategy.ResetTo(-1)); err != nil {
			return stressResult{}, err
		}
	}

	digest := xxhash.New()
	var buf [8]byte
	start := time.Now()
	for it := 0; it < cfg.iterations; it++ {
		chain := random.Intn(cfg.chains)
		w := random.Intn(cfg.worlds)

		var err error
		switch p := random.Float64(); {
		case p < cfg.breakFraction:
			err = roots[chain].Clear()
			current[chain] = -1
		case p < cfg.breakFraction+cfg.writeFraction:
			err = worlds[w].leaf.SetValue(it)
		default:
			err = roots[chain].SetValue(worlds[w].first)
			current[chain] = w
		}
		if err != nil {
			return stressResult{}, err
		}

		want := -1
		if cur := current[chain]; cur >= 0 {
			want = worlds[cur].leaf.Get()
		}
		got := targets[chain].Get()
		if got != want {
			return stressResult{}, fmt.Errorf("%s: iteration %d chain %d mirrored %d, want %d", cfg.name, it, chain, got, want)
		}

		binary.LittleEndian.PutUint64(buf[:], uint64(got))
		digest.Write(buf[:])
	}
	duration := time.Since(start)

	var sb strings.Builder
	for i, target := range targets {
		fmt.Fprintf(&sb, "%d=%d;", i, target.Get())
	}
	digest.WriteString(sb.String())

	return stressResult{
		duration: duration,
		rewires:  rt.Stats().Rewires,
		checksum: digest.Sum64(),
	}, nil
}
