package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"os"
	"time"

	"github.com/delaneyj/rewire/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	maxHopsKey = "hops"
	outputKey  = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the multi-hop path helpers of the binding package",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  maxHopsKey,
				Usage: "Largest number of hops to generate a PathN helper for",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "File to write",
				Value: "binding/paths.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for binding paths started !")
	defer func() {
		log.Printf("Codegen for binding paths finished in %v", time.Since(start))
	}()

	maxHops := int(cmd.Uint(maxHopsKey))
	if maxHops < 2 {
		return fmt.Errorf("need at least 2 hops, got %d", maxHops)
	}
	log.Printf("Max hops: %d", maxHops)

	contents, err := format.Source([]byte(templates.PathsGen(maxHops)))
	if err != nil {
		return fmt.Errorf("formatting generated paths: %w", err)
	}

	out := cmd.String(outputKey)
	if err := os.WriteFile(out, contents, 0644); err != nil {
		return err
	}
	log.Printf("Wrote %s", out)
	return nil
}
