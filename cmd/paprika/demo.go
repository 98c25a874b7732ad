package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/paprika-go/paprika"
	"github.com/paprika-go/paprika/wrap"
)

type Person struct {
	Age  int    `paprika:"age,required"`
	Name string `paprika:"name"`
}

type DemoConfig struct {
	MainConfig *MainConfig
	Demo       *cli.Command

	Iterations int    `cli:"name=n desc='loop iterations inside the instrumented function (default 100)'"`
	Format     string `cli:"name=format aliases=f desc='report format: table or yaml'"`
	Color      bool   `cli:"name=color desc='force coloured table headers'"`
	Runs       int    `cli:"name=runs desc='rank the slowest of this many runs'"`
}

func DemoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DemoConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Demo, "demo").
		WithSynopsis("demo [-n iterations] [-format table|yaml] [-color] [-runs n]").
		WithDescription("count reads and writes on a slice, a map, a struct and an array").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return demo(cfg, cc, args)
		})
}

func demo(cfg *DemoConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Demo.Parse(cc, args); err != nil {
		return err
	}
	format, err := paprika.ParseReportFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if cfg.Iterations < 0 || cfg.Runs < 0 {
		return fmt.Errorf("%w: -n and -runs must not be negative", cli.ErrUsage)
	}
	n := cfg.Iterations
	if n == 0 {
		n = 100
	}

	logger := cfg.MainConfig.logger()
	people, err := paprika.Data[Person](paprika.WithLogger(logger))
	if err != nil {
		return err
	}
	person, err := people.New(19, "Rayan")
	if err != nil {
		return err
	}

	opts := []paprika.Option{
		paprika.WithLogger(logger),
		paprika.WithReportWriter(cc.Out),
		paprika.WithReportFormat(format),
	}
	if cfg.Color {
		opts = append(opts, paprika.WithColor(true))
	}
	f := paprika.AccessCounter("f", []string{"list", "dict", "person", "tuple"}, shuffle(n), opts...)

	list := []int{1, 2, 3, 4, 5}
	dict := map[string]int{"key": 0}
	tuple := [2]int{0, 0}

	if cfg.Runs > 0 {
		_, err = wrap.Profile(f, cfg.Runs, 5, wrap.WithOutput(cc.Out), wrap.WithLogger(logger))(list, dict, person, tuple)
	} else {
		_, err = f.Call(list, dict, person, tuple)
	}
	if err != nil {
		return err
	}
	return printResult(cc.Out, people, person)
}

// shuffle moves values through all four arguments n times: the list is only
// written, the array only read, the map and the struct both.
func shuffle(n int) func(*paprika.Call) (struct{}, error) {
	return func(c *paprika.Call) (struct{}, error) {
		list, dict, person, tuple := c.Arg(0), c.Arg(1), c.Arg(2), c.Arg(3)
		for i := 0; i < n; i++ {
			v, err := dict.Get("key")
			if err != nil {
				return struct{}{}, err
			}
			if err := list.Set(0, v); err != nil {
				return struct{}{}, err
			}
			age, err := person.Attr("age")
			if err != nil {
				return struct{}{}, err
			}
			if err := dict.Set("key", age); err != nil {
				return struct{}{}, err
			}
			t, err := tuple.Get(0)
			if err != nil {
				return struct{}{}, err
			}
			if err := person.SetAttr("age", t); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	}
}

func printResult(w io.Writer, people *paprika.Type[Person], p *Person) error {
	_, err := fmt.Fprintf(w, "person after call: %s\n", people.String(p))
	return err
}
