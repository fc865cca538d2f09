package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/rewriterc/pkg/ruleset"
)

func TestReport_TotalChanges(t *testing.T) {
	rep := &Report{
		Counts: []ruleset.RuleCount{
			{ID: "a", Count: 3},
			{ID: "b", Count: 0},
			{ID: "c", Count: 4},
		},
	}
	assert.Equal(t, 7, rep.TotalChanges())
	assert.True(t, rep.WasModified())

	empty := &Report{}
	assert.Equal(t, 0, empty.TotalChanges())
	assert.False(t, empty.WasModified())
}

func TestFormatter_FormatRuleCount(t *testing.T) {
	f := NewFormatter(false)

	line := f.FormatRuleCount("set-phase-action", 12)
	assert.Contains(t, line, "✓")
	assert.Contains(t, line, "set-phase-action")
	assert.Contains(t, line, "12 changes")

	single := f.FormatRuleCount("one-shot", 1)
	assert.Contains(t, single, "1 change")
	assert.NotContains(t, single, "1 changes")

	none := f.FormatRuleCount("quiet", 0)
	assert.Contains(t, none, "-")
	assert.Contains(t, none, "0 changes")
}

func TestFormatter_FormatSummary(t *testing.T) {
	f := NewFormatter(false)

	applied := &Report{
		Target:     "App.jsx",
		BackupPath: "App.jsx.bak",
		Counts:     []ruleset.RuleCount{{ID: "r", Count: 2}},
	}
	assert.Equal(t, "✅ 2 changes applied to App.jsx (backup at App.jsx.bak)", f.FormatSummary(applied))

	skipped := &Report{Target: "App.jsx", Skipped: true}
	assert.Contains(t, f.FormatSummary(skipped), "already transformed")

	dry := &Report{Target: "App.jsx", DryRun: true, Counts: []ruleset.RuleCount{{ID: "r", Count: 5}}}
	assert.Contains(t, f.FormatSummary(dry), "dry run: 5 changes")
}

func TestFormatter_Render(t *testing.T) {
	f := NewFormatter(false)
	rep := &Report{
		Target:     "App.jsx",
		BackupPath: "App.jsx.bak",
		Counts: []ruleset.RuleCount{
			{ID: "set-phase-action", Count: 3},
			{ID: "phase-strict-eq", Count: 0},
		},
		Advisories: []string{"lines 1715, 2872 need manual edits"},
	}

	var buf strings.Builder
	require.NoError(t, f.Render(&buf, rep))
	out := buf.String()

	assert.Contains(t, out, "set-phase-action")
	assert.Contains(t, out, "phase-strict-eq")
	assert.Contains(t, out, "manual follow-up: lines 1715, 2872 need manual edits")
	assert.Contains(t, out, "3 changes applied to App.jsx")

	// Rule lines come before the summary
	assert.Less(t, strings.Index(out, "set-phase-action"), strings.Index(out, "applied to"))
}
