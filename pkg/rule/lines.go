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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ✂️ LineRangeRule splices a literal block of lines over the half-open
// interval [start, end), 1-indexed. It is a pure positional splice: it does
// not search for content and trusts the caller's line numbers to still be
// accurate against the document it receives.
type LineRangeRule struct {
	id    string
	start int // 1-indexed inclusive
	end   int // 1-indexed exclusive
	block []string
}

// 🏭 NewLineRangeRule creates a splice rule. start and end must satisfy
// 1 <= start <= end; the upper bound against the live document is checked
// at apply time.
func NewLineRangeRule(id string, start, end int, block []string) (*LineRangeRule, error) {
	if id == "" {
		return nil, errors.Errorf("rule id is required")
	}
	if start < 1 || end < start {
		return nil, errors.Errorf("rule %s: line range [%d,%d) is malformed", id, start, end)
	}
	return &LineRangeRule{
		id:    id,
		start: start,
		end:   end,
		block: block,
	}, nil
}

// ID implements Rule.ID
func (r *LineRangeRule) ID() string {
	return r.id
}

// ✂️ Apply implements Rule.Apply. The output is
// lines[:start-1] + block + lines[end-1:], so a document of N lines becomes
// N - (end-start) + len(block) lines. An interval that no longer fits the
// document fails with a RangeError, which is fatal to the whole run.
func (r *LineRangeRule) Apply(ctx context.Context, doc *Document) (int, error) {
	logger := zerolog.Ctx(ctx)

	lines := doc.Lines()
	if r.end > len(lines)+1 {
		return 0, &RangeError{
			RuleID: r.id,
			Start:  r.start,
			End:    r.end,
			Lines:  len(lines),
		}
	}

	spliced := make([]string, 0, len(lines)-(r.end-r.start)+len(r.block))
	spliced = append(spliced, lines[:r.start-1]...)
	spliced = append(spliced, r.block...)
	spliced = append(spliced, lines[r.end-1:]...)

	doc.setLines(spliced)
	logger.Debug().
		Str("rule", r.id).
		Int("start", r.start).
		Int("end", r.end).
		Int("replaced_lines", r.end-r.start).
		Int("block_lines", len(r.block)).
		Msg("spliced line range")
	return 1, nil
}
