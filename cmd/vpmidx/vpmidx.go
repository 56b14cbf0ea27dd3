package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/morikuni/aec"
	"github.com/pkg/errors"

	"lab47.dev/vpmidx/pkg/cmd"
	"lab47.dev/vpmidx/pkg/config"
	"lab47.dev/vpmidx/pkg/ops"
)

func main() {
	c := cli.NewCLI("vpmidx", "0.1.0")
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"generate": func() (cli.Command, error) {
			return cmd.New(
				"generate",
				"scan the repository and write index.json",
				generateF,
			), nil
		},
		"inspect": func() (cli.Command, error) {
			return cmd.New(
				"inspect",
				"output information about a plugin archive",
				inspectF,
			), nil
		},
		"debug": func() (cli.Command, error) {
			return cmd.New(
				"debug",
				"Debug various things",
				debugF,
			), nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}

func generateF(ctx context.Context, opts struct {
	Root      string `short:"r" long:"root" description:"scan this directory instead of the configured root"`
	Output    string `short:"o" long:"output" description:"write the index to this path"`
	Checksums bool   `long:"checksums" description:"include a zipSHA256 field in each version record"`
}) error {
	cfg, err := config.LoadRepo()
	if err != nil {
		return errors.Wrapf(err, "Unable to load repository configuration")
	}

	if opts.Root != "" {
		cfg.ScanRoot = opts.Root
	}

	if opts.Output != "" {
		cfg.OutputPath = opts.Output
	}

	if opts.Checksums {
		cfg.Checksums = true
	}

	if cfg.Id == "" || cfg.URL == "" || cfg.DownloadURL == "" {
		err = cfg.DetectIdentity()
		if err != nil {
			hclog.L().Warn("unable to detect repository identity", "error", err)
		}
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	var rs ops.RepoScan

	packages, err := rs.Scan(ctx, cfg)
	if err != nil {
		return errors.Wrapf(err, "Unable to scan %s", cfg.ScanRoot)
	}

	var ib ops.IndexBuild

	idx := ib.Build(cfg.RepoInfo(), packages)

	iw := ops.IndexWrite{Path: cfg.OutputPath}

	err = iw.Write(idx)
	if err != nil {
		return errors.Wrapf(err, "Unable to write %s", cfg.OutputPath)
	}

	fmt.Println(aec.GreenF.Apply(
		fmt.Sprintf("Indexed %d package(s) into %s", len(idx.Packages), cfg.OutputPath)))

	return nil
}

func inspectF(ctx context.Context, opts struct {
	Pos struct {
		Archive string `positional-arg-name:"archive"`
	} `positional-args:"yes" required:"yes"`
}) error {
	var ai ops.ArchiveInspect

	return ai.Show(opts.Pos.Archive, os.Stdout)
}

func debugF(ctx context.Context, opts struct {
	Root  string `short:"r" long:"root" description:"scan this directory instead of the configured root"`
	Trace bool   `long:"trace" description:"log in trace mode"`
}) error {
	cfg, err := config.LoadRepo()
	if err != nil {
		return err
	}

	if opts.Root != "" {
		cfg.ScanRoot = opts.Root
	}

	level := hclog.Debug

	if opts.Trace {
		level = hclog.Trace
	}

	L := hclog.New(&hclog.LoggerOptions{
		Name:  "vpmidx-debug",
		Level: level,
	})

	spew.Dump(cfg)

	var rs ops.RepoScan
	rs.SetLogger(L)

	packages, err := rs.Scan(ctx, cfg)
	if err != nil {
		return err
	}

	for _, res := range rs.Results {
		if res.Skip != ops.SkipNone {
			fmt.Printf("skipped %s/%s: %s\n", res.Dir, res.Filename, res.Skip)
			continue
		}

		fmt.Printf("indexed %s %s from %s/%s\n", res.Package, res.Version, res.Dir, res.Filename)
	}

	spew.Dump(packages)

	return nil
}
