// Package runner evaluates whole Sageleaf sources: parse, optional AST dump, then
// statement by statement evaluation with every outcome sent to the history store.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sageleaf/internal/ast"
	"sageleaf/internal/evaluator"
	"sageleaf/internal/history"
	"sageleaf/internal/lexer"
	"sageleaf/internal/object"
	"sageleaf/internal/parser"
	"sageleaf/internal/util"
	"strings"
	"time"
)

type Options struct {
	Config util.Configuration

	// History receives one record per evaluated statement. Nil disables recording.
	History history.Store
	Session string
	Mode    string

	// Env is evaluated against when set, so callers can keep state across runs.
	// A fresh global environment writing to out is used otherwise.
	Env *object.Environment

	// OnValue is called after each statement that evaluated successfully.
	OnValue func(stmt ast.Statement, val object.Value)
}

// ParseFailure reports every syntax error of a source, each with its context lines.
type ParseFailure struct {
	Name   string
	Src    string
	Errors []parser.ParseError
}

func (e *ParseFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d parse error(s) in %s", len(e.Errors), e.Name)
	for _, pe := range e.Errors {
		fmt.Fprintf(&b, "\nError: %s\n    --> %s:%d:%d\n", pe.Message, e.Name, pe.Line, pe.Column)
		b.WriteString(util.GetContextLines(e.Src, pe.Line, pe.Column))
	}
	return b.String()
}

// Messages returns the errors in the short `[line:col] message` form.
func (e *ParseFailure) Messages() []string {
	msgs := make([]string, len(e.Errors))
	for i, pe := range e.Errors {
		msgs[i] = pe.String()
	}
	return msgs
}

// StatementError is the first failing statement of a run. Index counts from 1.
type StatementError struct {
	Index     int
	Statement string
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d `%s`: %v", e.Index, e.Statement, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// RunFile reads and runs the file at path. With DebugAST set, the parsed program is
// written next to it as <path>.ast.<format>.
func RunFile(ctx context.Context, path string, out io.Writer, opts Options) (object.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return object.Value{}, fmt.Errorf("could not read %s: %w", path, err)
	}

	program, err := parse(path, string(src))
	if err != nil {
		return object.Value{}, err
	}

	if opts.Config.DebugAST {
		format := opts.Config.DebugASTFormat
		if format == "" {
			format = "json"
		}
		astPath := path + ".ast." + format
		if err := parser.WriteAST(program, format, astPath); err != nil {
			slog.Error("failed to write AST",
				slog.String("path", astPath),
				slog.Any("error", err))
		} else {
			slog.Info("AST written", slog.String("path", astPath))
		}
	}

	return run(ctx, program, out, opts)
}

// RunSource runs src, using name in error messages.
func RunSource(ctx context.Context, name, src string, out io.Writer, opts Options) (object.Value, error) {
	program, err := parse(name, src)
	if err != nil {
		return object.Value{}, err
	}
	return run(ctx, program, out, opts)
}

func parse(name, src string) (*ast.Program, error) {
	p := parser.New(lexer.New(src), src)
	program := p.ParseProgram()
	if errs := p.ParseErrors(); len(errs) > 0 {
		slog.Warn("parse failed",
			slog.String("name", name),
			slog.Int("errors", len(errs)))
		return nil, &ParseFailure{Name: name, Src: src, Errors: errs}
	}
	return program, nil
}

func run(ctx context.Context, program *ast.Program, out io.Writer, opts Options) (object.Value, error) {
	env := opts.Env
	if env == nil {
		env = evaluator.NewGlobalEnvironment(out)
	}

	last, err := evaluator.EvalProgram(env, &ast.Program{})
	if err != nil {
		return object.Value{}, err
	}

	for i, stmt := range program.Statements {
		if err := ctx.Err(); err != nil {
			return object.Value{}, err
		}

		var val object.Value
		env, val, err = evaluator.EvalStatement(env, stmt)
		record(ctx, opts, stmt, val, err)
		if err != nil {
			return object.Value{}, &StatementError{Index: i + 1, Statement: stmt.String(), Err: err}
		}

		last = val
		if opts.OnValue != nil {
			opts.OnValue(stmt, val)
		}
	}
	return last, nil
}

// record never fails the run; a broken history store only gets logged.
func record(ctx context.Context, opts Options, stmt ast.Statement, val object.Value, evalErr error) {
	if opts.History == nil {
		return
	}
	mode := opts.Mode
	if mode == "" {
		mode = history.ModeFile
	}

	r := history.Record{
		Session: opts.Session,
		Mode:    mode,
		Source:  stmt.String(),
		At:      time.Now(),
	}
	if evalErr != nil {
		r.Error = evalErr.Error()
	} else {
		r.Result = val.Payload.Inspect()
		r.Type = val.Type.String()
	}

	if _, err := opts.History.Append(ctx, r); err != nil {
		slog.Warn("failed to record history",
			slog.String("statement", r.Source),
			slog.Any("error", err))
	}
}
