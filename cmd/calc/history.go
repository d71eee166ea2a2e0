package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func listHistory(cfg *HistoryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.History.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: history takes no arguments", cli.ErrUsage)
	}
	fc, err := cfg.settings()
	if err != nil {
		return err
	}
	if fc.History == "" {
		return fmt.Errorf("%w: no history database configured", cli.ErrUsage)
	}
	st := store(fc)
	defer st.Close()
	entries, err := st.Recent(cfg.N)
	if err != nil {
		return err
	}
	for _, e := range entries {
		out := resultColor(e.Output)
		if e.Err != "" {
			out = errColor(e.Err)
		}
		fmt.Fprintf(cc.Out, "%5d  %s  %s\n      %s\n", e.Seq, e.At.Format("2006-01-02 15:04:05"), e.Input, out)
	}
	return nil
}
