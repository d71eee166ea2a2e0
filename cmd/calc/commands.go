package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "calc").
		WithSynopsis("calc [opts] [command [opts]]").
		WithDescription("calc evaluates arithmetic expressions with variables and plots.\n" +
			"With no command, calc starts an interactive session.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return calcMain(cfg, cc, args)
		}).
		WithSubs(
			EvalCommand(cfg),
			ReplCommand(cfg),
			HistoryCommand(cfg))
}

func calcMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"repl"}
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

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("eval").
		WithAliases("e").
		WithSynopsis("eval [-n] [-echo] [-in file] [expressions]").
		WithDescription("evaluate expressions from arguments or an input stream").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return eval(cfg, cc, args)
		})
	cfg.Eval = cmd
	return cmd
}

func ReplCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReplConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("repl").
		WithAliases("r").
		WithSynopsis("repl").
		WithDescription("evaluate expressions interactively until quit() or end of input").
		WithRun(func(cc *cli.Context, args []string) error {
			return repl(cfg, cc, args)
		})
	cfg.Repl = cmd
	return cmd
}

func HistoryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &HistoryConfig{MainConfig: mainCfg, N: 20}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("history").
		WithAliases("h").
		WithSynopsis("history [-n count]").
		WithDescription("list recently evaluated expressions").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return listHistory(cfg, cc, args)
		})
	cfg.History = cmd
	return cmd
}
