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

package config

import (
	"context"
	"os"
	"regexp"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for ruleset file parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🏷️ RuleKind distinguishes the two rule variants
type RuleKind string

const (
	// KindRegex is a pattern substitution rule
	KindRegex RuleKind = "regex"
	// KindLines is a positional line-range splice rule
	KindLines RuleKind = "lines"
)

// 🔄 RuleSpec declares one rule of the ruleset
type RuleSpec struct {
	Kind RuleKind // regex or lines
	ID   string   // unique identifier, used in the change report

	// regex rules
	Pattern        string // Go regular expression
	Replace        string // rewrite template ($1, ${name})
	FileFilterGlob string // optional doublestar glob the target path must match

	// lines rules
	Start int    // 1-indexed inclusive start line
	End   int    // 1-indexed exclusive end line
	Block string // literal replacement block
}

// 📚 Config declares one ruleset: the single file it targets, the backup
// suffix that names its snapshot, the ordered rules, and advisory notes for
// patterns the ruleset deliberately does not attempt.
type Config struct {
	Target           string     // path of the file to rewrite
	BackupSuffix     string     // appended to Target to derive the backup path
	OnAlreadyApplied string     // skip | error | reapply ("" means reapply)
	Rules            []RuleSpec // applied in declaration order
	Advisories       []string   // echoed in the report as manual follow-ups
}

// 🎯 Load loads the ruleset configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading ruleset configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Target == "" {
		return errors.Errorf("target is required")
	}
	if cfg.BackupSuffix == "" {
		return errors.Errorf("backup_suffix is required")
	}
	switch cfg.OnAlreadyApplied {
	case "", "skip", "error", "reapply":
	default:
		return errors.Errorf("on_already_applied must be skip, error or reapply, got %q", cfg.OnAlreadyApplied)
	}
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}

	seen := make(map[string]bool, len(cfg.Rules))
	for i, r := range cfg.Rules {
		if r.ID == "" {
			return errors.Errorf("rule %d: id is required", i)
		}
		if seen[r.ID] {
			return errors.Errorf("rule %d: duplicate id %q", i, r.ID)
		}
		seen[r.ID] = true

		switch r.Kind {
		case KindRegex:
			if r.Pattern == "" {
				return errors.Errorf("rule %s: pattern is required", r.ID)
			}
			if _, err := regexp.Compile(r.Pattern); err != nil {
				return errors.Errorf("rule %s: invalid pattern: %w", r.ID, err)
			}
			if r.Start != 0 || r.End != 0 {
				return errors.Errorf("rule %s: start/end are not valid for regex rules", r.ID)
			}
		case KindLines:
			if r.Start < 1 || r.End < r.Start {
				return errors.Errorf("rule %s: line range [%d,%d) is malformed", r.ID, r.Start, r.End)
			}
			if r.Pattern != "" || r.Replace != "" {
				return errors.Errorf("rule %s: pattern/replace are not valid for lines rules", r.ID)
			}
		default:
			return errors.Errorf("rule %s: unknown kind %q", r.ID, r.Kind)
		}
	}

	return nil
}
