/*
Package rule implements the two transformation rule variants.

🎯 Purpose:
- RegexRule: pattern substitution over the whole buffer, one left-to-right
  non-overlapping scan, per-match counting
- LineRangeRule: positional splice of a literal block over a half-open
  1-indexed line interval

📝 Design Philosophy:
Regular expressions stand in for structural code edits here. That is a known
fragility (nested or multi-line constructs cannot be matched reliably) and it
is preserved deliberately: where a pattern is irreducible to a regex, model
the edit as an explicit line-range splice instead of reaching for a parser.
Rulesets declare those gaps as advisories rather than guessing.
*/
package rule
