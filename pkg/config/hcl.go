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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclRule struct {
		Kind           string  `hcl:"kind,label"`
		ID             string  `hcl:"id,label"`
		Pattern        *string `hcl:"pattern,optional"`
		Replace        *string `hcl:"replace,optional"`
		FileFilterGlob *string `hcl:"file_filter_glob,optional"`
		Start          *int    `hcl:"start,optional"`
		End            *int    `hcl:"end,optional"`
		Block          *string `hcl:"block,optional"`
	}
	type hclConfig struct {
		Target           string    `hcl:"target"`
		BackupSuffix     string    `hcl:"backup_suffix"`
		OnAlreadyApplied *string   `hcl:"on_already_applied,optional"`
		Rules            []hclRule `hcl:"rule,block"`
		Advisories       []string  `hcl:"advisories,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Target:       hclCfg.Target,
		BackupSuffix: hclCfg.BackupSuffix,
	}
	if hclCfg.OnAlreadyApplied != nil {
		cfg.OnAlreadyApplied = *hclCfg.OnAlreadyApplied
	}
	cfg.Advisories = hclCfg.Advisories
	for _, r := range hclCfg.Rules {
		spec := RuleSpec{
			Kind: RuleKind(r.Kind),
			ID:   r.ID,
		}
		if r.Pattern != nil {
			spec.Pattern = *r.Pattern
		}
		if r.Replace != nil {
			spec.Replace = *r.Replace
		}
		if r.FileFilterGlob != nil {
			spec.FileFilterGlob = *r.FileFilterGlob
		}
		if r.Start != nil {
			spec.Start = *r.Start
		}
		if r.End != nil {
			spec.End = *r.End
		}
		if r.Block != nil {
			spec.Block = *r.Block
		}
		cfg.Rules = append(cfg.Rules, spec)
	}

	return cfg, nil
}
