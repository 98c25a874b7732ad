package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Verbose bool `cli:"name=v aliases=verbose desc='log debug records to stderr'"`

	Main *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "paprika").
		WithSynopsis("paprika [opts] command [opts]").
		WithDescription("paprika exercises synthesized data types, persistence and access counting.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return paprikaMain(cfg, cc, args)
		}).
		WithSubs(
			DemoCommand(cfg),
			RoundTripCommand(cfg),
		)
}

func paprikaMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) logger() *slog.Logger {
	if !cfg.Verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
