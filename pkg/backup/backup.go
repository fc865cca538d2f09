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

package backup

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎫 Handle confirms a backup was durably written before any mutation
type Handle struct {
	Source string // path of the file that was snapshotted
	Path   string // path the snapshot was written to
	Size   int64  // bytes written
}

// 🛡️ Guard snapshots the target file to a sibling path before a run mutates
// it. The suffix is chosen per ruleset so backups from different migrations
// do not clobber each other; re-running with the same suffix silently
// overwrites the previous backup.
type Guard struct {
	suffix string
}

// 🏭 NewGuard creates a guard with the given backup suffix
func NewGuard(suffix string) (*Guard, error) {
	if suffix == "" {
		return nil, errors.Errorf("backup suffix is required")
	}
	return &Guard{suffix: suffix}, nil
}

// 📍 BackupPath returns the sibling path the snapshot of path is written to
func (g *Guard) BackupPath(path string) string {
	return path + g.suffix
}

// 📸 Snapshot reads the file at path fully into memory and writes the exact
// byte content to its backup path, syncing before returning. Any failure
// here must abort the run before the original is touched.
func (g *Guard) Snapshot(ctx context.Context, path string) (*Handle, error) {
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading source file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stating source file: %w", err)
	}

	backupPath := g.BackupPath(path)
	f, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return nil, errors.Errorf("creating backup file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, errors.Errorf("writing backup file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return nil, errors.Errorf("syncing backup file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, errors.Errorf("closing backup file: %w", err)
	}

	logger.Debug().Str("source", path).Str("backup", backupPath).Int("bytes", len(data)).Msg("backup written")
	return &Handle{
		Source: path,
		Path:   backupPath,
		Size:   int64(len(data)),
	}, nil
}

// ⏪ Restore copies the backup of path back over path, undoing a run. The
// backup itself is left in place.
func (g *Guard) Restore(ctx context.Context, path string) error {
	logger := zerolog.Ctx(ctx)

	backupPath := g.BackupPath(path)
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return errors.Errorf("reading backup file: %w", err)
	}

	// Restore through a temp file so a failed write cannot truncate the
	// target we are trying to recover.
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return errors.Errorf("writing restored content: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return errors.Errorf("renaming restored content into place: %w", err)
	}

	logger.Debug().Str("backup", backupPath).Str("target", path).Msg("restored from backup")
	return nil
}
