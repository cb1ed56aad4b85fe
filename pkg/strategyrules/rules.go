// Package strategyrules resolves a box's layout strategy dynamically from
// its attributes, ahead of the static per-box/default chain.
package strategyrules

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dshills/boxlayout/pkg/layout"
)

// Rule pairs a boolean expression over a box's attributes with the
// strategy id to use when it evaluates true. Rules are tried in order;
// the first match wins.
type Rule struct {
	When       string
	StrategyID string

	program *vm.Program
}

// RuleSet evaluates a box's Attributes against an ordered list of Rules,
// implementing layout.StrategyResolver. A box that matches no rule defers
// to the static chain.
type RuleSet struct {
	regular    []Rule
	assistants []Rule
}

// NewRuleSet compiles regular and assistants-root rule lists. Compilation
// errors are returned immediately rather than deferred to first
// evaluation, since a bad rule is a configuration mistake the caller
// should fail fast on.
func NewRuleSet(regular, assistants []Rule) (*RuleSet, error) {
	rs := &RuleSet{}
	var err error
	if rs.regular, err = compileAll(regular); err != nil {
		return nil, err
	}
	if rs.assistants, err = compileAll(assistants); err != nil {
		return nil, err
	}
	return rs, nil
}

func compileAll(rules []Rule) ([]Rule, error) {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		if err := validateExpression(r.When); err != nil {
			return nil, fmt.Errorf("strategyrules: rule %d (%s): %w", i, r.StrategyID, err)
		}
		program, err := expr.Compile(r.When, expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("strategyrules: rule %d (%s): %w", i, r.StrategyID, err)
		}
		r.program = program
		out[i] = r
	}
	return out, nil
}

// unsafePatterns blocks attribute rules from reaching outside their own
// attribute map; box attributes are untrusted ingestion data.
var unsafePatterns = []string{"os.", "exec.", "net.", "syscall.", "unsafe.", "__proto__"}

func validateExpression(expression string) error {
	lower := strings.ToLower(expression)
	for _, p := range unsafePatterns {
		if strings.Contains(lower, p) {
			return fmt.Errorf("unsafe pattern %q in rule expression", p)
		}
	}
	return nil
}

// ResolveStrategyID implements layout.StrategyResolver.
func (rs *RuleSet) ResolveStrategyID(box *layout.Box, isAssistantsRoot bool) (string, bool) {
	rules := rs.regular
	if isAssistantsRoot {
		rules = rs.assistants
	}
	if len(rules) == 0 {
		return "", false
	}
	env := attributeEnv(box)
	for _, r := range rules {
		out, err := vm.Run(r.program, env)
		if err != nil {
			continue
		}
		if matched, ok := out.(bool); ok && matched {
			return r.StrategyID, true
		}
	}
	return "", false
}

func attributeEnv(box *layout.Box) map[string]interface{} {
	env := make(map[string]interface{}, len(box.Attributes)+2)
	for k, v := range box.Attributes {
		env[k] = v
	}
	env["is_collapsed"] = box.IsCollapsed
	env["is_assistant"] = box.IsAssistant
	return env
}
