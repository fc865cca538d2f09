// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ruleset

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// 🔢 RuleCount records how many times one rule's matcher fired during a run
type RuleCount struct {
	ID    string // rule identifier
	Count int    // number of applications
}

// 📚 RuleSet is an ordered sequence of rules applied against the same
// mutable buffer. Order is caller-determined and semantically significant:
// later rules see the output of earlier ones, so a rename rule must run
// before any rule that depends on the renamed token appearing literally.
type RuleSet struct {
	rules []rule.Rule
}

// 🏭 New creates a ruleset, rejecting duplicate rule ids
func New(rules ...rule.Rule) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, errors.Errorf("at least one rule is required")
	}
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if seen[r.ID()] {
			return nil, errors.Errorf("duplicate rule id %q", r.ID())
		}
		seen[r.ID()] = true
	}
	return &RuleSet{rules: rules}, nil
}

// 📏 Len returns the number of rules in the set
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// 🔄 Apply runs every rule in order against doc, each consuming the buffer
// produced by the previous one. No rule is skipped or reordered; the first
// rule error aborts the remainder of the set.
func (s *RuleSet) Apply(ctx context.Context, doc *rule.Document) ([]RuleCount, error) {
	logger := zerolog.Ctx(ctx)

	counts := make([]RuleCount, 0, len(s.rules))
	for _, r := range s.rules {
		n, err := r.Apply(ctx, doc)
		if err != nil {
			return counts, errors.Errorf("applying rule %s: %w", r.ID(), err)
		}
		counts = append(counts, RuleCount{ID: r.ID(), Count: n})
	}

	logger.Debug().Int("rules", len(s.rules)).Msg("ruleset applied")
	return counts, nil
}

// 🔍 AppliedTo reports whether content looks like it already carries this
// ruleset's output: at least one substitution rule finds its replacement
// text verbatim, and no substitution rule would still fire. Splice rules
// carry no content evidence and are ignored by the probe.
func (s *RuleSet) AppliedTo(content string) bool {
	evidence := false
	for _, r := range s.rules {
		probe, ok := r.(*rule.RegexRule)
		if !ok {
			continue
		}
		if probe.Matches(content) > 0 {
			return false
		}
		if probe.AppliedTo(content) {
			evidence = true
		}
	}
	return evidence
}
