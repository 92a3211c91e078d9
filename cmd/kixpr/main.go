package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/ki-editor/kixpr"
)

const (
	appName     = "kixpr"
	historyFile = ".kixpr_history"
	promptMain  = "==> "
)

var banner = fmt.Sprintf("kixpr %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", kixpr.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	app := &cli.App{
		Name:    appName,
		Usage:   "parse mixfix expressions into canonical S-expressions",
		Version: kixpr.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "parse files (or stdin) and print their S-expressions",
				ArgsUsage: "[file ...]",
				Action:    cmdParse,
			},
			{
				Name:      "tokens",
				Usage:     "lex files (or stdin) and dump the token stream",
				ArgsUsage: "[file ...]",
				Action:    cmdTokens,
			},
			{
				Name:   "repl",
				Usage:  "start an interactive read-parse-print loop",
				Action: cmdRepl,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

// readSources resolves the command arguments to named source texts, reading
// stdin when no files are given.
func readSources(c *cli.Context) (names, sources []string, err error) {
	if c.Args().Len() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, errors.Wrap(err, "reading stdin")
		}
		return []string{"<stdin>"}, []string{string(data)}, nil
	}
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "reading %s", path)
		}
		names = append(names, path)
		sources = append(sources, string(data))
	}
	return names, sources, nil
}

func cmdParse(c *cli.Context) error {
	names, sources, err := readSources(c)
	if err != nil {
		return err
	}
	for i, src := range sources {
		log.Debug().Str("source", names[i]).Int("bytes", len(src)).Msg("parsing")
		sexp, err := kixpr.Parse(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, kixpr.WrapErrorWithName(err, names[i], src))
			return cli.Exit("", 1)
		}
		fmt.Println(kixpr.Stringify(sexp))
	}
	return nil
}

func cmdTokens(c *cli.Context) error {
	names, sources, err := readSources(c)
	if err != nil {
		return err
	}
	for i, src := range sources {
		tokens, err := kixpr.NewLexer(src).Scan()
		if err != nil {
			fmt.Fprintln(os.Stderr, kixpr.WrapErrorWithName(err, names[i], src))
			return cli.Exit("", 1)
		}
		for _, tok := range tokens {
			fmt.Printf("%d:%d-%d:%d\t%s\t%s\n",
				tok.Span.Start.Line, tok.Span.Start.Column,
				tok.Span.End.Line, tok.Span.End.Column,
				tok.Type, tok.String())
		}
	}
	return nil
}

func cmdRepl(_ *cli.Context) error {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			continue
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if strings.HasPrefix(code, ":") {
			switch strings.ToLower(code) {
			case ":quit":
				return nil
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		sexp, perr := kixpr.Parse(line)
		if perr != nil {
			fmt.Fprintln(os.Stderr, red(kixpr.WrapErrorWithSource(perr, line).Error()))
			continue
		}
		fmt.Println(blue(kixpr.Stringify(sexp)))
		ln.AppendHistory(line)
	}
}
