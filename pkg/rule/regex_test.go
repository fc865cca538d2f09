package rule

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexRule_Apply(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		template  string
		content   string
		want      string
		wantCount int
	}{
		{
			name:      "word_boundary_rename",
			pattern:   `\bsetPhase\(`,
			template:  "actions.setPhase(",
			content:   "setPhase('select'); setPhaseFlag(true); setPhase('resolve');",
			want:      "actions.setPhase('select'); setPhaseFlag(true); actions.setPhase('resolve');",
			wantCount: 2,
		},
		{
			name:      "boundary_does_not_match_longer_identifier",
			pattern:   `\bphase\s*===`,
			template:  "battle.phase ===",
			content:   "if (phase === 'select') { return phaseLabel; }",
			want:      "if (battle.phase === 'select') { return phaseLabel; }",
			wantCount: 1,
		},
		{
			name:      "functional_update_capture_group",
			pattern:   `actions\.setPlayer\(\s*(?:prev|p)\s*=>\s*\(\{\s*\.\.\.(?:prev|p),\s*([^}]+)\}\)\s*\)`,
			template:  "actions.setPlayer({ ...player, ${1}})",
			content:   "actions.setPlayer(prev => ({ ...prev, hp: 10 }))",
			want:      "actions.setPlayer({ ...player, hp: 10 })",
			wantCount: 1,
		},
		{
			name:      "no_match_is_not_an_error",
			pattern:   `\bsetEnemy\(`,
			template:  "actions.setEnemy(",
			content:   "setPhase('select');",
			want:      "setPhase('select');",
			wantCount: 0,
		},
		{
			name:      "non_overlapping_left_to_right_scan",
			pattern:   "aa",
			template:  "a",
			content:   "aaaa",
			want:      "aa",
			wantCount: 2,
		},
		{
			name:      "replacement_text_is_not_rescanned",
			pattern:   `\bhp\b`,
			template:  "hp.current",
			content:   "hp + hp",
			want:      "hp.current + hp.current",
			wantCount: 2,
		},
		{
			name:      "empty_content",
			pattern:   `\bphase\b`,
			template:  "battle.phase",
			content:   "",
			want:      "",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegexRule("test-rule", tt.pattern, tt.template)
			require.NoError(t, err)

			doc := NewDocument("src/App.jsx", []byte(tt.content))
			count, err := r.Apply(context.Background(), doc)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCount, count, "change count should match")
			assert.Equal(t, tt.want, doc.Content(), "rewritten content should match")
		})
	}
}

func TestRegexRule_Apply_RewriteFunc(t *testing.T) {
	re := regexp.MustCompile(`actions\.setEnemy\(\s*(?:prev|e)\s*=>\s*\(\{\s*\.\.\.(?:prev|e),\s*([^}]+)\}\)\s*\)`)
	r := NewRegexFuncRule("enemy-functional-update", re, func(groups []string) string {
		return "actions.setEnemy({ ...enemy, " + strings.TrimSpace(groups[1]) + " })"
	})

	doc := NewDocument("src/App.jsx", []byte("actions.setEnemy(e => ({ ...e, hp: 3 }))"))
	count, err := r.Apply(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Equal(t, "actions.setEnemy({ ...enemy, hp: 3 })", doc.Content())
}

func TestRegexRule_Apply_SecondApplicationIsZero(t *testing.T) {
	// A self-guarding matcher excludes its own output, so re-running the
	// rule fires zero times instead of double-applying.
	r, err := NewRegexRule("phase-strict-eq", `(^|[^.\w])phase(\s*===)`, "${1}battle.phase${2}")
	require.NoError(t, err)

	doc := NewDocument("src/App.jsx", []byte("if (phase === 'select') doIt();"))

	count, err := r.Apply(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, "if (battle.phase === 'select') doIt();", doc.Content())

	count, err = r.Apply(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "second application should not re-match rewritten text")
	assert.Equal(t, "if (battle.phase === 'select') doIt();", doc.Content())
}

func TestRegexRule_Apply_FileFilter(t *testing.T) {
	tests := []struct {
		name      string
		glob      string
		path      string
		wantCount int
	}{
		{name: "matching_glob", glob: "src/**/*.jsx", path: "src/components/battle/App.jsx", wantCount: 1},
		{name: "non_matching_glob", glob: "src/**/*.jsx", path: "lib/util.js", wantCount: 0},
		{name: "no_glob_always_fires", glob: "", path: "anything.txt", wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegexRule("filtered", `\bfoo\b`, "bar")
			require.NoError(t, err)
			if tt.glob != "" {
				r = r.WithFileFilter(tt.glob)
			}

			doc := NewDocument(tt.path, []byte("foo"))
			count, err := r.Apply(context.Background(), doc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestNewRegexRule_Validation(t *testing.T) {
	_, err := NewRegexRule("", `\bfoo\b`, "bar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")

	_, err = NewRegexRule("broken", `(`, "bar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling pattern")
}

func TestRegexRule_AppliedTo(t *testing.T) {
	r, err := NewRegexRule("battle-hook-rename", `\buseBattleState\(`, "useBattleContext(")
	require.NoError(t, err)

	assert.False(t, r.AppliedTo("const s = useBattleState();"), "pattern still matches")
	assert.True(t, r.AppliedTo("const s = useBattleContext();"), "only the rewritten form is present")
	assert.False(t, r.AppliedTo("nothing related"), "no evidence either way")

	// Templates with capture references carry no literal evidence
	grouped, err := NewRegexRule("grouped", `(^|[^.\w])phase(\s*===)`, "${1}battle.phase${2}")
	require.NoError(t, err)
	assert.False(t, grouped.AppliedTo("battle.phase === 'x'"))
}
