package rule

import (
	"context"
	"fmt"
)

// Rule defines a single match/replace transformation over a document
type Rule interface {
	// ID returns the unique identifier of the rule, used in change reports
	ID() string

	// Apply rewrites the document in place and returns how many times the
	// rule's matcher fired. Zero matches is a normal outcome, not an error.
	Apply(ctx context.Context, doc *Document) (int, error)
}

// RangeError reports a line-range rule whose interval is invalid against
// the current document. A stale range means the document has drifted from
// the caller's assumptions, so the whole run must abort rather than skip.
type RangeError struct {
	RuleID string // rule that carried the interval
	Start  int    // 1-indexed inclusive start
	End    int    // 1-indexed exclusive end
	Lines  int    // document length at apply time
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("rule %s: line range [%d,%d) is invalid for document of %d lines", e.RuleID, e.Start, e.End, e.Lines)
}
