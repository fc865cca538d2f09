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
	"bytes"
	"context"
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLParser{})
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	// Define YAML schema
	type yamlRule struct {
		Kind           string `yaml:"kind"`
		ID             string `yaml:"id"`
		Pattern        string `yaml:"pattern,omitempty"`
		Replace        string `yaml:"replace,omitempty"`
		FileFilterGlob string `yaml:"file_filter_glob,omitempty"`
		Start          int    `yaml:"start,omitempty"`
		End            int    `yaml:"end,omitempty"`
		Block          string `yaml:"block,omitempty"`
	}
	type yamlConfig struct {
		Target           string     `yaml:"target"`
		BackupSuffix     string     `yaml:"backup_suffix"`
		OnAlreadyApplied string     `yaml:"on_already_applied,omitempty"`
		Rules            []yamlRule `yaml:"rules"`
		Advisories       []string   `yaml:"advisories,omitempty"`
	}

	// Parse YAML
	var yamlCfg yamlConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&yamlCfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	// Convert to model
	cfg := &Config{
		Target:           yamlCfg.Target,
		BackupSuffix:     yamlCfg.BackupSuffix,
		OnAlreadyApplied: yamlCfg.OnAlreadyApplied,
		Advisories:       yamlCfg.Advisories,
	}
	for _, r := range yamlCfg.Rules {
		cfg.Rules = append(cfg.Rules, RuleSpec{
			Kind:           RuleKind(r.Kind),
			ID:             r.ID,
			Pattern:        r.Pattern,
			Replace:        r.Replace,
			FileFilterGlob: r.FileFilterGlob,
			Start:          r.Start,
			End:            r.End,
			Block:          r.Block,
		})
	}

	return cfg, nil
}
