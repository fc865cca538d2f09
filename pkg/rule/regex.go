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

package rule

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 RewriteFunc maps a successful match to its replacement text. groups[0]
// is the full match, groups[i] is capture group i ("" when unmatched).
type RewriteFunc func(groups []string) string

// 🔄 RegexRule substitutes every non-overlapping match of a pattern in a
// single left-to-right scan of the whole buffer. Replacement text is spliced
// from the original text and never rescanned within one application, so a
// rule whose pattern can match its own output only re-fires on a later run.
//
// Callers are responsible for anchoring with word boundaries where
// partial-token matches would rewrite too much (matching the identifier
// `phase` must not match inside `phaseShift`).
type RegexRule struct {
	id       string
	pattern  *regexp.Regexp
	template string
	rewrite  RewriteFunc
	filter   string
}

// 🏭 NewRegexRule creates a substitution rule from a pattern and a rewrite
// template. The template uses regexp.Expand syntax ($1, ${name}).
func NewRegexRule(id, pattern, template string) (*RegexRule, error) {
	if id == "" {
		return nil, errors.Errorf("rule id is required")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("rule %s: compiling pattern: %w", id, err)
	}
	return &RegexRule{
		id:       id,
		pattern:  re,
		template: template,
	}, nil
}

// 🏭 NewRegexFuncRule creates a substitution rule whose replacement is
// computed per match by a rewrite function
func NewRegexFuncRule(id string, pattern *regexp.Regexp, rewrite RewriteFunc) *RegexRule {
	return &RegexRule{
		id:      id,
		pattern: pattern,
		rewrite: rewrite,
	}
}

// 🔍 WithFileFilter restricts the rule to documents whose path matches the
// given doublestar glob. An empty glob means the rule always fires.
func (r *RegexRule) WithFileFilter(glob string) *RegexRule {
	r.filter = glob
	return r
}

// ID implements Rule.ID
func (r *RegexRule) ID() string {
	return r.id
}

// 🔄 Apply implements Rule.Apply
func (r *RegexRule) Apply(ctx context.Context, doc *Document) (int, error) {
	logger := zerolog.Ctx(ctx)

	// Check file filter
	if r.filter != "" {
		matched, err := doublestar.Match(r.filter, filepath.ToSlash(doc.Path()))
		if err != nil {
			return 0, errors.Errorf("rule %s: matching file filter %q: %w", r.id, r.filter, err)
		}
		if !matched {
			logger.Debug().Str("rule", r.id).Str("glob", r.filter).Msg("file filter did not match, skipping rule")
			return 0, nil
		}
	}

	content := doc.Content()
	matches := r.pattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		logger.Debug().Str("rule", r.id).Msg("no matches")
		return 0, nil
	}

	// Splice replacements between the untouched stretches of the original
	// text. Scanning resumes after each match in the original, so earlier
	// replacements are never rescanned.
	var buf strings.Builder
	last := 0
	for _, m := range matches {
		buf.WriteString(content[last:m[0]])
		if r.rewrite != nil {
			buf.WriteString(r.rewrite(captureGroups(content, m)))
		} else {
			buf.Write(r.pattern.ExpandString(nil, r.template, content, m))
		}
		last = m[1]
	}
	buf.WriteString(content[last:])

	doc.setContent(buf.String())
	logger.Debug().Str("rule", r.id).Int("count", len(matches)).Msg("applied substitutions")
	return len(matches), nil
}

// 🔍 Matches counts how many times the pattern would fire against content,
// without rewriting anything
func (r *RegexRule) Matches(content string) int {
	return len(r.pattern.FindAllStringIndex(content, -1))
}

// 🔍 AppliedTo reports whether content already carries this rule's output:
// the literal replacement text occurs while the pattern no longer matches.
// Rules with capture references in their template never report true.
func (r *RegexRule) AppliedTo(content string) bool {
	if r.rewrite != nil || r.template == "" || strings.ContainsRune(r.template, '$') {
		return false
	}
	return !r.pattern.MatchString(content) && strings.Contains(content, r.template)
}

// captureGroups extracts match text per group from submatch indices
func captureGroups(content string, m []int) []string {
	groups := make([]string, 0, len(m)/2)
	for i := 0; i < len(m); i += 2 {
		if m[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, content[m[i]:m[i+1]])
	}
	return groups
}
