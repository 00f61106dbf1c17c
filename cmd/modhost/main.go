// Command modhost drives the sample mod the way a mod loader would:
//
//  1. construct the mod (root, then children)
//  2. discover the required resources
//  3. load them from a YAML scene manifest
//  4. inject and print what the mod reported
//
// Usage:
//
//	modhost -manifest scenes.yaml [-env .env] [-collect Cave,Town]
//
// Configuration comes from .env and MODBIND_* variables (see package config);
// -manifest overrides MODBIND_MANIFEST.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sghaida/modbind/bind"
	"github.com/sghaida/modbind/config"
	"github.com/sghaida/modbind/examples"
	"github.com/sghaida/modbind/manifest"
	"go.uber.org/zap"
)

// run executes the host and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("modhost", flag.ContinueOnError)
	flags.SetOutput(stderr)

	manifestPath := flags.String("manifest", "", "path to the scene manifest (default $MODBIND_MANIFEST)")
	envPath := flags.String("env", ".env", "optional .env file")
	collect := flags.String("collect", "", "comma-separated scenes to load in full")

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() > 0 {
		_, _ = fmt.Fprintln(stderr, "usage: modhost -manifest <scenes.yaml> [-env <.env>] [-collect <scene,...>]")
		return 2
	}

	cfg, err := config.Load(*envPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	if strings.TrimSpace(*manifestPath) != "" {
		cfg.Manifest = *manifestPath
	}

	log, err := cfg.NewLogger()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()
	bind.SetLogger(log)

	man, err := manifest.Load(cfg.Manifest)
	if err != nil {
		log.Error("loading manifest", zap.Error(err))
		return 1
	}

	mod, err := examples.NewMod(cfg.LifecycleOptions(log)...)
	if err != nil {
		log.Error("constructing mod", zap.Error(err))
		return 1
	}

	reqs := mod.DiscoverRequiredResources()
	_, _ = fmt.Fprintf(stdout, "requested %d resources\n", len(reqs))
	for _, r := range reqs {
		_, _ = fmt.Fprintf(stdout, "  %s/%s\n", r.Scene, r.Name)
	}

	table, missing := man.Table(reqs, splitList(*collect)...)
	for _, r := range missing {
		_, _ = fmt.Fprintf(stdout, "unavailable: %s/%s\n", r.Scene, r.Name)
	}

	if err := mod.Inject(table); err != nil {
		log.Error("injection failed", zap.Error(err))
		return 1
	}

	for _, line := range mod.Summary() {
		_, _ = fmt.Fprintln(stdout, line)
	}
	return 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
