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

package runner

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/rewriterc/pkg/backup"
	"github.com/walteh/rewriterc/pkg/report"
	"github.com/walteh/rewriterc/pkg/rule"
	"github.com/walteh/rewriterc/pkg/ruleset"
	"gitlab.com/tozd/go/errors"
)

// 🚦 State tracks a run through its linear pipeline
type State int

const (
	StateIdle State = iota
	StateLoaded
	StateBackedUp
	StateTransforming
	StateSaved
	StateAborted
)

// 📝 String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoaded:
		return "loaded"
	case StateBackedUp:
		return "backed-up"
	case StateTransforming:
		return "transforming"
	case StateSaved:
		return "saved"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// 🔁 AlreadyAppliedMode controls what a run does when the target already
// carries the ruleset's output
type AlreadyAppliedMode string

const (
	// ModeReapply runs the rules regardless (the default; double-edits are
	// the caller's problem, idempotence is not guaranteed)
	ModeReapply AlreadyAppliedMode = "reapply"
	// ModeSkip saves nothing and reports zero counts
	ModeSkip AlreadyAppliedMode = "skip"
	// ModeError aborts the run
	ModeError AlreadyAppliedMode = "error"
)

// ❌ ErrAlreadyApplied is returned in ModeError when the target already
// carries the ruleset's output
var ErrAlreadyApplied = errors.New("ruleset already applied to target")

// 🔍 ParseAlreadyAppliedMode parses a mode string, defaulting to reapply
func ParseAlreadyAppliedMode(s string) (AlreadyAppliedMode, error) {
	switch AlreadyAppliedMode(s) {
	case "":
		return ModeReapply, nil
	case ModeReapply, ModeSkip, ModeError:
		return AlreadyAppliedMode(s), nil
	default:
		return "", errors.Errorf("unknown on_already_applied mode %q", s)
	}
}

// 🔧 Options configures a run
type Options struct {
	// Target is the path of the single file to rewrite
	Target string
	// Rules is the ordered ruleset to apply
	Rules *ruleset.RuleSet
	// BackupSuffix is appended to Target to derive the backup path
	BackupSuffix string
	// OnAlreadyApplied controls re-run behavior (defaults to reapply)
	OnAlreadyApplied AlreadyAppliedMode
	// Advisories are echoed verbatim in the report
	Advisories []string
}

// 🏃 Runner drives one run through load → backup → transform → save.
// The target file is never overwritten until every rule has completed, and
// never before the backup is durably written. A Runner drives at most one
// run; concurrent runs against the same target are undefined behavior.
type Runner struct {
	target     string
	rules      *ruleset.RuleSet
	guard      *backup.Guard
	mode       AlreadyAppliedMode
	advisories []string
	state      State
}

// 🏭 New creates a runner with the given options
func New(opts Options) (*Runner, error) {
	if opts.Target == "" {
		return nil, errors.Errorf("target is required")
	}
	if opts.Rules == nil {
		return nil, errors.Errorf("ruleset is required")
	}
	guard, err := backup.NewGuard(opts.BackupSuffix)
	if err != nil {
		return nil, errors.Errorf("creating backup guard: %w", err)
	}
	mode, err := ParseAlreadyAppliedMode(string(opts.OnAlreadyApplied))
	if err != nil {
		return nil, err
	}
	return &Runner{
		target:     opts.Target,
		rules:      opts.Rules,
		guard:      guard,
		mode:       mode,
		advisories: opts.Advisories,
		state:      StateIdle,
	}, nil
}

// 🚦 State returns the runner's current state
func (r *Runner) State() State {
	return r.state
}

// 🏃 Run executes the pipeline: load the target fully into memory, snapshot
// it, apply every rule in order against the in-memory buffer, then persist
// the result atomically over the original path. On failure the partial
// report (counts of rules that did complete) is returned alongside the
// error.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	logger := zerolog.Ctx(ctx)

	// Idle -> Loaded
	data, err := os.ReadFile(r.target)
	if err != nil {
		r.state = StateAborted
		return nil, errors.Errorf("loading target file: %w", err)
	}
	r.state = StateLoaded
	logger.Debug().Str("target", r.target).Int("bytes", len(data)).Msg("target loaded")

	// Re-run probe, before any storage is touched
	if r.mode != ModeReapply && r.rules.AppliedTo(string(data)) {
		if r.mode == ModeError {
			r.state = StateAborted
			return nil, errors.Errorf("target %s: %w", r.target, ErrAlreadyApplied)
		}
		logger.Debug().Str("target", r.target).Msg("already applied, skipping")
		return &report.Report{
			Target:     r.target,
			Advisories: r.advisories,
			Skipped:    true,
		}, nil
	}

	// Loaded -> BackedUp
	handle, err := r.guard.Snapshot(ctx, r.target)
	if err != nil {
		r.state = StateAborted
		return nil, errors.Errorf("backing up target file: %w", err)
	}
	r.state = StateBackedUp

	// BackedUp -> Transforming
	r.state = StateTransforming
	doc := rule.NewDocument(r.target, data)
	counts, err := r.rules.Apply(ctx, doc)
	rep := &report.Report{
		Target:     r.target,
		BackupPath: handle.Path,
		Counts:     counts,
		Advisories: r.advisories,
	}
	if err != nil {
		r.state = StateAborted
		return rep, errors.Errorf("transforming %s: %w", r.target, err)
	}

	// Transforming -> Saved
	if err := r.save(doc.Bytes()); err != nil {
		r.state = StateAborted
		return rep, errors.Errorf("saving %s: %w", r.target, err)
	}
	r.state = StateSaved
	logger.Debug().Str("target", r.target).Int("changes", rep.TotalChanges()).Msg("run saved")
	return rep, nil
}

// 🔍 Plan runs the ruleset purely in memory: no backup, no save. The report
// carries per-rule counts and a colored diff preview of what Run would do.
func (r *Runner) Plan(ctx context.Context) (*report.Report, error) {
	data, err := os.ReadFile(r.target)
	if err != nil {
		r.state = StateAborted
		return nil, errors.Errorf("loading target file: %w", err)
	}
	r.state = StateLoaded

	rep := &report.Report{
		Target:     r.target,
		Advisories: r.advisories,
		DryRun:     true,
	}
	if r.mode != ModeReapply && r.rules.AppliedTo(string(data)) {
		rep.Skipped = true
		return rep, nil
	}

	doc := rule.NewDocument(r.target, data)
	counts, err := r.rules.Apply(ctx, doc)
	rep.Counts = counts
	if err != nil {
		r.state = StateAborted
		return rep, errors.Errorf("transforming %s: %w", r.target, err)
	}

	if doc.Content() != string(data) {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(data), doc.Content(), true)
		diffs = dmp.DiffCleanupSemantic(diffs)
		rep.Diff = dmp.DiffPrettyText(diffs)
	}
	return rep, nil
}

// save persists the transformed buffer over the target. The temp file is a
// sibling so the rename cannot cross filesystems; the rename is the commit
// point, a failure before it leaves the original untouched.
func (r *Runner) save(data []byte) error {
	info, err := os.Stat(r.target)
	if err != nil {
		return errors.Errorf("stating target file: %w", err)
	}

	tempPath := r.target + ".tmp"
	if err := os.WriteFile(tempPath, data, info.Mode().Perm()); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tempPath, r.target); err != nil {
		return errors.Errorf("renaming temp file into place: %w", err)
	}
	return nil
}
