// Command asura is the Asura lexer CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/asura-lang/asura/go/internal/config"
	"github.com/asura-lang/asura/go/pkg/diagnostics"
	"github.com/asura-lang/asura/go/pkg/lexer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "usage: asura <command> [options]")
		fmt.Fprintln(stderr, "commands: tokenize, check, kinds, help")
		return 1
	}

	app := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	switch args[0] {
	case "tokenize":
		return app.cmdTokenize(args[1:])
	case "check":
		return app.cmdCheck(args[1:])
	case "kinds":
		return app.cmdKinds(args[1:])
	case "help", "--help", "-h":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		return 1
	}
}

const usage = `usage: asura <command> [options]

  tokenize <file>... [--pretty] [--trivia] [--format json|text] [--config path]
      print the tokens of each file ("-" reads stdin)
  check <file> [--pretty] [--config path]
      report lexical diagnostics only
  kinds
      list token kinds by category

exit codes: 0 ok, 1 usage or io error, 2 lexical error
`

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *logrus.Logger
}

type options struct {
	files  []string
	pretty bool
	trivia bool
	format string
	config string
}

func parseOptions(args []string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--pretty":
			o.pretty = true
		case "--trivia":
			o.trivia = true
		case "--format", "--config":
			if i+1 >= len(args) {
				return o, fmt.Errorf("%s needs a value", args[i])
			}
			i++
			if args[i-1] == "--format" {
				o.format = args[i]
			} else {
				o.config = args[i]
			}
		default:
			if args[i] != "-" && strings.HasPrefix(args[i], "-") {
				return o, fmt.Errorf("unknown option %s", args[i])
			}
			o.files = append(o.files, args[i])
		}
	}
	return o, nil
}

// setup loads the configuration, applies the flags on top of it and
// prepares the logger.
func (a *app) setup(o options) (config.Config, bool) {
	cfg, err := config.Load(o.config)
	if err != nil {
		diag := diagnostics.MakeDiag(diagnostics.EConfig, err.Error(), nil, "")
		fmt.Fprintln(a.stderr, diagnostics.FormatDiagnostic(diag, "", o.pretty))
		return cfg, false
	}
	if o.pretty {
		cfg.Format = lexer.FormatText
	}
	if o.format != "" {
		cfg.Format = o.format
	}
	if o.trivia {
		cfg.Trivia = true
	}
	if err := cfg.Validate(); err != nil {
		diag := diagnostics.MakeDiag(diagnostics.EConfig, err.Error(), nil, "")
		fmt.Fprintln(a.stderr, diagnostics.FormatDiagnostic(diag, "", o.pretty))
		return cfg, false
	}

	a.log = logrus.New()
	a.log.Out = a.stderr
	a.log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	a.log.SetLevel(cfg.Level())
	a.log.WithField("config", cfg.String()).Debug("loaded configuration")
	return cfg, true
}

func (a *app) table(cfg config.Config) (*lexer.Table, bool) {
	if cfg.Engine == "go" {
		return lexer.Default(), true
	}
	table, err := lexer.NewTableWithEngine(cfg.Engine, lexer.AsuraRules()...)
	if err != nil {
		diag := diagnostics.MakeDiag(diagnostics.ELexRule, err.Error(), nil, "")
		fmt.Fprintln(a.stderr, diagnostics.FormatDiagnostic(diag, "", false))
		return nil, false
	}
	return table, true
}

func (a *app) cmdTokenize(args []string) int {
	o, err := parseOptions(args)
	if err != nil || len(o.files) == 0 {
		if err != nil {
			fmt.Fprintf(a.stderr, "error: %s\n", err)
		}
		fmt.Fprintln(a.stderr, "usage: asura tokenize <file>... [--pretty] [--trivia] [--format json|text] [--config path]")
		return 1
	}
	cfg, ok := a.setup(o)
	if !ok {
		return 1
	}
	table, ok := a.table(cfg)
	if !ok {
		return 1
	}

	cache, err := lexer.NewCache(cfg.CacheSize, table, lexer.WithLogger(a.log))
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %s\n", err)
		return 1
	}

	for _, file := range o.files {
		source, filename, exitCode := a.readSource(file, cfg.Format == lexer.FormatText)
		if exitCode != 0 {
			return exitCode
		}

		tokens, err := cache.Tokenize(source)
		if err != nil {
			return a.reportLexError(err, filename, source, cfg.Format == lexer.FormatText)
		}
		if !cfg.Trivia {
			tokens = lexer.Significant(tokens)
		}
		a.log.WithFields(logrus.Fields{"file": filename, "tokens": len(tokens)}).Debug("tokenized")

		if len(o.files) > 1 && cfg.Format == lexer.FormatText {
			fmt.Fprintf(a.stdout, "==> %s <==\n", filename)
		}
		if err := lexer.WriteTokens(a.stdout, tokens, cfg.Format); err != nil {
			fmt.Fprintf(a.stderr, "error: %s\n", err)
			return 1
		}
	}
	return 0
}

func (a *app) cmdCheck(args []string) int {
	o, err := parseOptions(args)
	if err != nil || len(o.files) != 1 {
		if err != nil {
			fmt.Fprintf(a.stderr, "error: %s\n", err)
		}
		fmt.Fprintln(a.stderr, "usage: asura check <file> [--pretty] [--config path]")
		return 1
	}
	cfg, ok := a.setup(o)
	if !ok {
		return 1
	}
	table, ok := a.table(cfg)
	if !ok {
		return 1
	}

	source, filename, exitCode := a.readSource(o.files[0], o.pretty)
	if exitCode != 0 {
		return exitCode
	}

	entry := a.log.WithField("file", filename)
	_, err = lexer.TokenizeContext(context.Background(), source, lexer.WithTable(table), lexer.WithLogger(entry))
	if err != nil {
		return a.reportLexError(err, filename, source, o.pretty)
	}

	if o.pretty {
		fmt.Fprintln(a.stdout, "No errors found.")
	} else {
		fmt.Fprintln(a.stdout, "[]")
	}
	return 0
}

func (a *app) cmdKinds(args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(a.stderr, "usage: asura kinds")
		return 1
	}
	byCategory := map[lexer.Category][]string{}
	var order []lexer.Category
	for _, k := range lexer.Kinds() {
		c := k.Category()
		if _, seen := byCategory[c]; !seen {
			order = append(order, c)
		}
		byCategory[c] = append(byCategory[c], k.String())
	}
	for _, c := range order {
		fmt.Fprintf(a.stdout, "%s: %s\n", c, strings.Join(byCategory[c], " "))
	}
	return 0
}

func (a *app) reportLexError(err error, filename, source string, pretty bool) int {
	var diag diagnostics.Diagnostic
	var lexErr *lexer.LexError
	if errors.As(err, &lexErr) {
		diag = lexErr.Diag
	} else {
		diag = diagnostics.MakeDiag(diagnostics.ELexUnrecognized, err.Error(), nil, "")
	}
	diags := []diagnostics.Diagnostic{diag.WithFile(filename)}
	fmt.Fprintln(a.stderr, diagnostics.FormatDiagnostics(diags, source, pretty))
	return 2
}

func (a *app) readSource(file string, pretty bool) (string, string, int) {
	if file == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			fmt.Fprintf(a.stderr, "error reading stdin: %s\n", err)
			return "", "", 1
		}
		return string(data), "<stdin>", 0
	}

	source, err := os.ReadFile(file)
	if err != nil {
		diag := diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, "")
		fmt.Fprintln(a.stderr, diagnostics.FormatDiagnostics([]diagnostics.Diagnostic{diag}, "", pretty))
		return "", "", 1
	}
	return string(source), file, 0
}
