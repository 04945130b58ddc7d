package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Bookshelf-Writer/mailsyntax"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type appStateObj struct {
	log *zap.Logger
	reg *prometheus.Registry
}

func newApp() *cli.App {
	state := &appStateObj{log: zap.NewNop()}

	app := cli.NewApp()
	app.Name = "mailsyntax"
	app.Usage = "check email address syntax"
	app.Description = `Validates addresses against the dot-atom local part rules, DNS label rules,
bracketed IPv4/IPv6 literals and internationalized domains (converted to A-labels).
No DNS lookups are made.`
	app.ExitErrHandler = func(c *cli.Context, err error) {}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn or error",
			EnvVars: []string{"MAILSYNTAX_LOG_LEVEL"},
			Value:   "warn",
		},
		&cli.BoolFlag{
			Name:  "cache",
			Usage: "Remember verdicts of repeated addresses",
		},
		&cli.BoolFlag{
			Name:  "metrics",
			Usage: "Print validation counters to stderr on exit",
		},
	}

	app.Before = func(c *cli.Context) error {
		logger, err := buildLogger(c.String("log-level"), c.App.ErrWriter)
		if err != nil {
			return err
		}
		state.log = logger

		mailsyntax.Init(&mailsyntax.ConfigObj{
			NoCache: !c.Bool("cache"),
			Metrics: c.Bool("metrics"),
			Cache:   mailsyntax.DefaultConfig.Cache,
			Logger:  logger,
		})

		if c.Bool("metrics") {
			state.reg = prometheus.NewRegistry()
			return mailsyntax.RegisterMetrics(state.reg)
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		_ = state.log.Sync()
		if state.reg == nil {
			return nil
		}
		return dumpMetrics(c.App.ErrWriter, state.reg)
	}

	app.Commands = []*cli.Command{
		{
			Name:      "check",
			Usage:     "Validate addresses given as arguments or one per line on stdin",
			ArgsUsage: "[ADDRESS...]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "quiet",
					Aliases: []string{"q"},
					Usage:   "Print invalid addresses only",
				},
			},
			Action: func(c *cli.Context) error {
				return checkCommand(c, state)
			},
		},
		{
			Name:      "split",
			Usage:     "Validate an address and print its parts",
			ArgsUsage: "ADDRESS",
			Action: func(c *cli.Context) error {
				return splitCommand(c)
			},
		},
	}

	return app
}

func buildLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if w == nil {
		w = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

//

func checkCommand(c *cli.Context, state *appStateObj) error {
	quiet := c.Bool("quiet")
	out := c.App.Writer

	invalid := 0
	report := func(addr string) {
		err := mailsyntax.CheckString(addr)
		if err != nil {
			invalid++
			state.log.Debug("rejected", zap.String("address", addr), zap.Error(err))
		} else if quiet {
			return
		}
		fmt.Fprintf(out, "%s\t%t\t%s\n", addr, err == nil, kindName(err))
	}

	if c.Args().Len() > 0 {
		for _, addr := range c.Args().Slice() {
			report(addr)
		}
	} else {
		in := c.App.Reader
		if in == nil {
			in = os.Stdin
		}
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			line := strings.TrimRight(sc.Text(), "\r")
			if line == "" {
				continue
			}
			report(line)
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read addresses: %w", err)
		}
	}

	if invalid > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func kindName(err error) string {
	if err == nil {
		return "-"
	}
	if k, ok := mailsyntax.KindOf(err); ok {
		return k.Name()
	}
	return err.Error()
}

func splitCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("split: exactly one ADDRESS expected", 2)
	}

	obj, err := mailsyntax.Parse(c.Args().First())
	if err != nil {
		return cli.Exit("split: "+err.Error(), 1)
	}

	hash := obj.Hash()
	out := c.App.Writer
	fmt.Fprintf(out, "login\t%s\n", obj.Login())
	fmt.Fprintf(out, "domain\t%s\n", obj.Domain())
	fmt.Fprintf(out, "ascii\t%s\n", obj.DomainASCII())
	fmt.Fprintf(out, "unicode\t%s\n", obj.DomainUnicode())
	fmt.Fprintf(out, "literal\t%s\n", strconv.FormatBool(obj.IsIPLiteral()))
	fmt.Fprintf(out, "hash\t%s\n", hex.EncodeToString(hash[:]))
	return nil
}

func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+strconv.Quote(l.GetValue()))
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}
