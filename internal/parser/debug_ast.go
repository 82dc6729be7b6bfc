package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sageleaf/internal/ast"

	"gopkg.in/yaml.v3"
)

// WalkAST recursively traverses an AST and serializes it into a map structure for
// JSON or YAML output.
func WalkAST(node ast.Node) interface{} {
	if node == nil || (reflect.ValueOf(node).Kind() == reflect.Ptr && reflect.ValueOf(node).IsNil()) {
		return nil
	}

	switch n := node.(type) {
	case *ast.Program:
		return map[string]interface{}{
			"type":       "Program",
			"statements": walkStatements(n.Statements),
		}

	case *ast.Binding:
		return map[string]interface{}{
			"type":     "Binding",
			"position": n.Token.Position,
			"name":     n.Name.Name,
			"declared": WalkAST(n.Type),
			"value":    WalkAST(n.Value),
		}

	case *ast.Expression:
		terms := make([]interface{}, len(n.Terms))
		for i, t := range n.Terms {
			terms[i] = WalkAST(t)
		}
		return map[string]interface{}{
			"type":  "Expression",
			"terms": terms,
		}

	case *ast.NumberLiteral:
		return map[string]interface{}{
			"type":     "NumberLiteral",
			"position": n.Token.Position,
			"value":    n.Value,
		}

	case *ast.Identifier:
		return map[string]interface{}{
			"type":     "Identifier",
			"position": n.Token.Position,
			"name":     n.Name,
		}

	case *ast.Block:
		return map[string]interface{}{
			"type":       "Block",
			"position":   n.Token.Position,
			"statements": walkStatements(n.Statements),
		}

	case *ast.NamedType:
		return map[string]interface{}{
			"type": "NamedType",
			"name": n.Name,
		}

	case *ast.FunctionType:
		return map[string]interface{}{
			"type":   "FunctionType",
			"input":  WalkAST(n.Input),
			"output": WalkAST(n.Output),
		}

	default:
		return map[string]interface{}{
			"type":  "Unknown",
			"value": fmt.Sprintf("%T", node),
		}
	}
}

func walkStatements(stmts []ast.Statement) []interface{} {
	statements := make([]interface{}, len(stmts))
	for i, s := range stmts {
		statements[i] = WalkAST(s)
	}
	return statements
}

func RenderASTAsJSON(node ast.Node) (string, error) {
	astMap := WalkAST(node)
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(astMap); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.String(), nil
}

func RenderASTAsYAML(node ast.Node) (string, error) {
	buf := new(bytes.Buffer)
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(WalkAST(node)); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.String(), nil
}

// WriteAST renders node in the given format ("json" or "yaml") to filename.
func WriteAST(node ast.Node, format string, filename string) error {
	var (
		out string
		err error
	)
	switch format {
	case "json":
		out, err = RenderASTAsJSON(node)
	case "yaml", "":
		out, err = RenderASTAsYAML(node)
	default:
		return fmt.Errorf("unknown AST format %q", format)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write AST to %s: %w", filename, err)
	}
	return nil
}
