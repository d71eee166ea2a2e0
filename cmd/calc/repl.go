package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"
	"github.com/scott-cotton/cli"
)

// historyLines is the number of history entries loaded into line editing.
const historyLines = 1000

func repl(cfg *ReplConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Repl.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: repl takes no arguments", cli.ErrUsage)
	}
	fc, err := cfg.settings()
	if err != nil {
		return err
	}
	c, err := calculator(fc)
	if err != nil {
		return err
	}
	st := store(fc)
	defer st.Close()
	s := session{calc: c, store: st, out: cc.Out}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if recent, err := st.Recent(historyLines); err != nil {
		log.Warnf("loading history: %v", err)
	} else {
		for _, e := range recent {
			ln.AppendHistory(e.Input)
		}
	}

	for {
		line, err := ln.Prompt(fc.Prompt)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
			fmt.Fprintln(cc.Out)
			return nil
		default:
			return err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}
		ln.AppendHistory(line)
		if s.text(line) {
			return nil
		}
	}
}
