package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/paprika-go/paprika"
)

type Snapshot struct {
	Owner  Person            `paprika:"owner,required"`
	Labels map[string]string `paprika:"labels"`
	Blob   []byte            `paprika:"blob"`
}

type RoundTripConfig struct {
	MainConfig *MainConfig
	RoundTrip  *cli.Command

	Protocol int  `cli:"name=protocol aliases=p desc='protocol to save with: 1 gob, 2 gzip (default 2)'"`
	Size     int  `cli:"name=size desc='payload size in bytes (default 1024)'"`
	Keep     bool `cli:"name=keep desc='keep the file after loading it'"`
}

func RoundTripCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RoundTripConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.RoundTrip, "roundtrip").
		WithSynopsis("roundtrip [-protocol n] [-size bytes] [-keep] [path]").
		WithDescription("save an instance, load it back and compare the two").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return roundTrip(cfg, cc, args)
		})
}

func roundTrip(cfg *RoundTripConfig, cc *cli.Context, args []string) error {
	args, err := cfg.RoundTrip.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: at most one path", cli.ErrUsage)
	}
	size := cfg.Size
	if size == 0 {
		size = 1024
	}
	if size < 0 {
		return fmt.Errorf("%w: -size must not be negative", cli.ErrUsage)
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		dir, err := os.MkdirTemp("", "paprika-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)
		path = filepath.Join(dir, "snapshot.pkl")
	}

	logger := cfg.MainConfig.logger()
	snapshots, err := paprika.Data[Snapshot](paprika.WithLogger(logger))
	if err != nil {
		return err
	}
	store, err := paprika.Pickled[Snapshot](paprika.WithProtocol(cfg.Protocol), paprika.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}

	blob := make([]byte, size)
	for i := range blob {
		blob[i] = byte(i % 251)
	}
	in, err := snapshots.New(Person{Age: 19, Name: "Rayan"}, map[string]string{"env": "demo"}, blob)
	if err != nil {
		return err
	}

	if err := store.Save(in, path); err != nil {
		return err
	}
	if !cfg.Keep && len(args) == 1 {
		defer os.Remove(path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	out, err := store.Load(path)
	if err != nil {
		return err
	}
	if !snapshots.Equal(in, out) {
		return fmt.Errorf("loaded instance differs:\n%s", snapshots.Diff(in, out))
	}

	_, err = fmt.Fprintf(
		cc.Out, "protocol %d: %d byte payload stored in %d bytes, hash %016x\n",
		store.Protocol(), size, info.Size(), snapshots.Hash(out),
	)
	return err
}
