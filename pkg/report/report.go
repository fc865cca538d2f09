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

package report

import (
	"github.com/walteh/rewriterc/pkg/ruleset"
)

// 📊 Report is the informational result of a run: per-rule counts in
// application order, plus advisory notes for patterns the engine
// deliberately does not attempt. It is not machine-consumed and has no
// bearing on correctness.
type Report struct {
	Target     string              // path of the rewritten file
	BackupPath string              // where the pre-run snapshot lives ("" for dry runs)
	Counts     []ruleset.RuleCount // per-rule applied counts, in rule order
	Advisories []string            // manual follow-ups declared by the ruleset
	Skipped    bool                // ruleset was already applied and mode is skip
	DryRun     bool                // nothing was written
	Diff       string              // unified-style preview, dry runs only
}

// 🔢 TotalChanges sums the per-rule counts
func (r *Report) TotalChanges() int {
	total := 0
	for _, c := range r.Counts {
		total += c.Count
	}
	return total
}

// 🔍 WasModified reports whether any rule fired
func (r *Report) WasModified() bool {
	return r.TotalChanges() > 0
}
