package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sageleaf/internal/ast"
	"sageleaf/internal/evaluator"
	"sageleaf/internal/history"
	"sageleaf/internal/object"
	"sageleaf/internal/runner"
	"strings"
)

const PROMPT = ">> "

// historyLimit is how many records `:history` shows.
const historyLimit = 20

type Options struct {
	Version string
	// Prompt prints the banner and `>> ` before each line; off when stdin is not a terminal.
	Prompt  bool
	History history.Store
	Session string
}

// Start reads statements line by line and evaluates them against one global environment
// until in is exhausted or `:quit` is entered.
func Start(in io.Reader, out io.Writer, opts Options) {
	scanner := bufio.NewScanner(in)
	env := evaluator.NewGlobalEnvironment(out)
	ctx := context.Background()

	runOpts := runner.Options{
		History: opts.History,
		Session: opts.Session,
		Mode:    history.ModeRepl,
		Env:     env,
		OnValue: func(_ ast.Statement, val object.Value) {
			io.WriteString(out, val.Inspect())
			io.WriteString(out, "\n")
		},
	}

	if opts.Prompt {
		fmt.Fprintf(out, "Sageleaf %s:\n", opts.Version)
	}

	for {
		if opts.Prompt {
			io.WriteString(out, PROMPT)
		}
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit":
			return
		case ":env":
			printEnv(out, env)
			continue
		case ":history":
			printHistory(ctx, out, opts.History)
			continue
		}

		_, err := runner.RunSource(ctx, "repl", line, out, runOpts)
		if err == nil {
			continue
		}

		var pf *runner.ParseFailure
		var se *runner.StatementError
		switch {
		case errors.As(err, &pf):
			printParserErrors(out, pf.Messages())
		case errors.As(err, &se):
			fmt.Fprintf(out, "error: %v\n", se.Err)
		default:
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func printEnv(out io.Writer, env *object.Environment) {
	for _, name := range env.BindingNames() {
		val, _ := env.LookupBinding(name)
		fmt.Fprintf(out, "%s : %s\n", name, val.Type)
	}
}

func printHistory(ctx context.Context, out io.Writer, store history.Store) {
	if store == nil {
		io.WriteString(out, "history is disabled\n")
		return
	}
	records, err := store.Recent(ctx, historyLimit)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	for _, r := range records {
		outcome := r.Result + " : " + r.Type
		if r.Error != "" {
			outcome = "error: " + r.Error
		}
		fmt.Fprintf(out, "%4d  %s  =>  %s\n", r.Seq, r.Source, outcome)
	}
}

func printParserErrors(out io.Writer, errors []string) {
	io.WriteString(out, "Oops! That line did not parse:\n")
	for _, msg := range errors {
		io.WriteString(out, "\t"+msg+"\n")
	}
}
