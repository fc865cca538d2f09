package ruleset

import (
	"strings"

	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// 🏗️ FromConfig compiles a declared ruleset into an executable one,
// preserving declaration order
func FromConfig(cfg *config.Config) (*RuleSet, error) {
	rules := make([]rule.Rule, 0, len(cfg.Rules))
	for _, spec := range cfg.Rules {
		switch spec.Kind {
		case config.KindRegex:
			r, err := rule.NewRegexRule(spec.ID, spec.Pattern, spec.Replace)
			if err != nil {
				return nil, errors.Errorf("compiling rule %s: %w", spec.ID, err)
			}
			if spec.FileFilterGlob != "" {
				r = r.WithFileFilter(spec.FileFilterGlob)
			}
			rules = append(rules, r)
		case config.KindLines:
			r, err := rule.NewLineRangeRule(spec.ID, spec.Start, spec.End, blockLines(spec.Block))
			if err != nil {
				return nil, errors.Errorf("compiling rule %s: %w", spec.ID, err)
			}
			rules = append(rules, r)
		default:
			return nil, errors.Errorf("rule %s: unknown kind %q", spec.ID, spec.Kind)
		}
	}
	return New(rules...)
}

// blockLines splits a literal block into lines. HCL heredocs and YAML
// literal blocks end with a newline that is not a line of its own; an empty
// block means the interval is deleted outright.
func blockLines(block string) []string {
	if block == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(block, "\n"), "\n")
}
