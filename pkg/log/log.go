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

package log

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about run progress. Debug
// detail goes to zerolog; the pterm printers are for human eyes only.
type UserLogger struct {
	log zerolog.Logger
}

// 🎯 NewUserLogger creates a new user logger from the context's zerolog
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogStage logs a pipeline stage transition
func (u *UserLogger) LogStage(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Println(description)
	u.log.Info().Msg(description)
}

// 📸 LogBackup logs a successful backup snapshot
func (u *UserLogger) LogBackup(source, backup string) {
	msg := fmt.Sprintf("Backed up %s to %s", source, backup)
	pterm.Success.WithPrefix(pterm.Prefix{Text: "📸"}).Println(msg)
	u.log.Info().Str("source", source).Str("backup", backup).Msg("backup written")
}

// ⚠️ LogAdvisory logs a manual follow-up note from the ruleset
func (u *UserLogger) LogAdvisory(msg string) {
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
	u.log.Warn().Msg(msg)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(description)
	} else {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
		u.log.Warn().Msg(description)
	}
}
