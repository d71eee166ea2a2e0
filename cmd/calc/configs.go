package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"fortio.org/log"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/history"
	"github.com/zephyrtronium/calc/plot"
)

type MainConfig struct {
	ConfigFile  string `cli:"name=config desc='configuration file (yaml), default ~/.calc.yaml'"`
	LogLevel    string `cli:"name=log desc='log level: debug, verbose, info, warning, error'"`
	Prec        int    `cli:"name=p aliases=prec desc='precision of calculations in bits'"`
	Extended    bool   `cli:"name=x aliases=extended desc='enable tan, exp, ln, log, sqrt, pi, e'"`
	PlotPath    string `cli:"name=plot desc='PNG file to draw plots to'"`
	HistoryPath string `cli:"name=history desc='history database file'"`
	Color       bool   `cli:"name=color desc='color output'"`

	Main *cli.Command
}

type EvalConfig struct {
	*MainConfig

	NL   bool   `cli:"name=n desc='parse separate input lines as separate expressions'"`
	Echo bool   `cli:"name=echo desc='print parse trees'"`
	In   string `cli:"name=in desc='input file (default stdin if no args given)'"`

	Eval *cli.Command
}

type ReplConfig struct {
	*MainConfig

	Repl *cli.Command
}

type HistoryConfig struct {
	*MainConfig

	N int `cli:"name=n desc='number of entries to show, 0 for all'"`

	History *cli.Command
}

// FileConfig is the configuration file.
type FileConfig struct {
	Prompt   string `yaml:"prompt"`
	History  string `yaml:"history"`
	Plot     string `yaml:"plot"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Prec     int    `yaml:"prec"`
	Extended bool   `yaml:"extended"`
	// Color is auto, always, or never.
	Color string `yaml:"color"`
	Log   string `yaml:"log"`
	// Given defines variables at startup as name: expression.
	Given map[string]string `yaml:"given"`
}

func loadFile(path string, explicit bool) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return fc, nil
		}
		return fc, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return fc, nil
}

// settings merges the configuration file with command-line options, which
// take priority.
func (cfg *MainConfig) settings() (FileConfig, error) {
	path, explicit := cfg.ConfigFile, cfg.ConfigFile != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".calc.yaml")
		}
	}
	var fc FileConfig
	if path != "" {
		var err error
		fc, err = loadFile(path, explicit)
		if err != nil {
			return fc, err
		}
	}
	if cfg.LogLevel != "" {
		fc.Log = cfg.LogLevel
	}
	if cfg.Prec != 0 {
		fc.Prec = cfg.Prec
	}
	if cfg.Extended {
		fc.Extended = true
	}
	if cfg.PlotPath != "" {
		fc.Plot = cfg.PlotPath
	}
	if cfg.HistoryPath != "" {
		fc.History = cfg.HistoryPath
	}
	if v, ok := cfg.optValue("color"); ok {
		fc.Color = "never"
		if b, _ := v.(bool); b {
			fc.Color = "always"
		}
	}
	if fc.Prompt == "" {
		fc.Prompt = "> "
	}
	if fc.Prec < 0 {
		return fc, fmt.Errorf("%w: precision (%d) must be positive", cli.ErrUsage, fc.Prec)
	}
	if fc.Log != "" {
		if err := log.SetLogLevelStr(fc.Log); err != nil {
			return fc, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	setColor(fc.Color)
	return fc, nil
}

// optValue gets the value of a main option if it was given.
func (cfg *MainConfig) optValue(name string) (any, bool) {
	for _, opt := range cfg.Main.Opts {
		if opt.Name != name {
			continue
		}
		if opt.Value == nil {
			return nil, false
		}
		return *opt.Value, true
	}
	return nil, false
}

func setColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())
	}
}

// calculator creates the calculator described by the settings, with given
// variables defined.
func calculator(fc FileConfig) (*calc.Calculator, error) {
	opts := []calc.Option{calc.WithPrec(uint(fc.Prec))}
	if fc.Extended {
		opts = append(opts, calc.WithFuncs(calc.ExtendedFuncs()))
	}
	if fc.Plot != "" {
		opts = append(opts, calc.WithDrawer(plot.NewPNG(fc.Plot, fc.Width, fc.Height)))
	}
	c, err := calc.New(opts...)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(fc.Given))
	for k := range fc.Given {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		n, err := calc.ParseString(fc.Given[name])
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		if _, err := c.Interpreter().Evaluate(calc.Op("assign", calc.Var(name), n)); err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
	}
	return c, nil
}

// store opens the history store described by the settings. Without a
// database file, or if it cannot be opened, history is kept in memory.
func store(fc FileConfig) history.Store {
	if fc.History == "" {
		return history.NewMemory()
	}
	s, err := history.OpenSQLite(fc.History)
	if err != nil {
		log.Warnf("history unavailable: %v", err)
		return history.NewMemory()
	}
	return s
}
