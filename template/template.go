// Package template expands {{expr}} placeholders whose expressions are CEL.
package template

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/cel-go/cel"
)

var exprRe = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Expand expands every {{expr}} in tmpl by evaluating expr against store.
// Strings without placeholders are returned as is, without building a CEL environment.
func Expand(tmpl string, store map[string]any) (string, error) {
	if !strings.Contains(tmpl, "{{") {
		return tmpl, nil
	}
	env, err := createCELEnv(store)
	if err != nil {
		return "", fmt.Errorf("failed to create CEL environment: %w", err)
	}

	var expandErr error
	result := exprRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		if expandErr != nil {
			return match
		}
		expr := strings.TrimSpace(match[2 : len(match)-2])
		ast, issues := env.Compile(expr)
		if issues != nil && issues.Err() != nil {
			expandErr = fmt.Errorf("template compilation error for '{{%s}}': %w", expr, issues.Err())
			return match
		}
		prg, err := env.Program(ast)
		if err != nil {
			expandErr = fmt.Errorf("template program creation error for '{{%s}}': %w", expr, err)
			return match
		}
		out, _, err := prg.Eval(store)
		if err != nil {
			expandErr = fmt.Errorf("template evaluation error for '{{%s}}': %w", expr, err)
			return match
		}
		return fmt.Sprintf("%v", out.Value())
	})
	if expandErr != nil {
		return "", expandErr
	}
	return result, nil
}

// EnvironToMap returns the process environment as a map.
func EnvironToMap() map[string]string {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

func createCELEnv(store map[string]any) (*cel.Env, error) {
	var options []cel.EnvOption
	for key, value := range store {
		options = append(options, cel.Variable(key, inferCELType(value)))
	}
	return cel.NewEnv(options...)
}

func inferCELType(value any) *cel.Type {
	switch value.(type) {
	case string:
		return cel.StringType
	case int, int32, int64:
		return cel.IntType
	case uint64:
		return cel.UintType
	case float32, float64:
		return cel.DoubleType
	case bool:
		return cel.BoolType
	case map[string]any:
		return cel.MapType(cel.StringType, cel.AnyType)
	case map[string]string:
		return cel.MapType(cel.StringType, cel.StringType)
	case []any:
		return cel.ListType(cel.AnyType)
	case []string:
		return cel.ListType(cel.StringType)
	default:
		return cel.AnyType
	}
}
