// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package artifact keeps generated documents on local disk for a bounded
// retention window. The index lives in memory; losing it on restart is
// acceptable because artifacts are short-lived downloads, not records.
package artifact

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/google/uuid"
)

// Record describes a stored artifact. The file itself lives under the store
// directory named by the artifact ID.
type Record struct {
	ID           uuid.UUID
	FileName     string
	MimeType     string
	Size         int64
	ExportFormat string
	TemplateID   uuid.UUID
	CreatedBy    string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Meta carries the identifying fields recorded alongside the artifact bytes.
type Meta struct {
	FileName     string
	MimeType     string
	ExportFormat string
	TemplateID   uuid.UUID
	CreatedBy    string
}

// Store is a disk-backed artifact store with an in-memory index.
type Store struct {
	dir       string
	retention time.Duration
	logger    log.Logger

	mu    sync.RWMutex
	index map[uuid.UUID]Record
}

// NewStore creates the artifact directory if needed and returns the store.
// Zero retention falls back to the default window.
func NewStore(dir string, retention time.Duration, logger log.Logger) (*Store, error) {
	if retention <= 0 {
		retention = constant.DefaultArtifactRetention
	}

	if err := os.MkdirAll(dir, constant.ArtifactDirPermissions); err != nil {
		return nil, err
	}

	return &Store{
		dir:       dir,
		retention: retention,
		logger:    logger,
		index:     make(map[uuid.UUID]Record),
	}, nil
}

// Register writes the artifact to disk and records it in the index. The record
// only becomes visible after the file write succeeds, so a failed write leaves
// no trace.
func (s *Store) Register(ctx context.Context, data []byte, meta Meta) (*Record, error) {
	logger := libCommons.NewLoggerFromContext(ctx)

	id := uuid.New()

	if err := os.WriteFile(s.path(id), data, constant.ArtifactFilePermissions); err != nil {
		logger.Errorf("Failed to persist artifact %s: %v", id, err)

		return nil, pkg.ValidateBusinessError(constant.ErrStorageInconsistency, "artifact")
	}

	now := time.Now().UTC()

	record := Record{
		ID:           id,
		FileName:     meta.FileName,
		MimeType:     meta.MimeType,
		Size:         int64(len(data)),
		ExportFormat: meta.ExportFormat,
		TemplateID:   meta.TemplateID,
		CreatedBy:    meta.CreatedBy,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.retention),
	}

	s.mu.Lock()
	s.index[id] = record
	s.mu.Unlock()

	logger.Infof("Registered artifact %s (%s, %d bytes, expires %s)", id, meta.MimeType, record.Size, record.ExpiresAt.Format(time.RFC3339))

	return &record, nil
}

// Retrieve returns the record and content for a live artifact. An unknown ID
// is a not-found; a known but expired one reports the expiry explicitly. A
// live record whose file is gone means the store itself is broken and is
// surfaced as a storage inconsistency rather than a not-found.
func (s *Store) Retrieve(ctx context.Context, id uuid.UUID) (*Record, []byte, error) {
	s.mu.RLock()
	record, ok := s.index[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil, pkg.ValidateBusinessError(constant.ErrEntityNotFound, "artifact")
	}

	if time.Now().UTC().After(record.ExpiresAt) {
		return nil, nil, pkg.ValidateBusinessError(constant.ErrGenerationExpired, "artifact")
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, nil, s.classifyUnreadable(ctx, id, record, err)
	}

	return &record, data, nil
}

// classifyUnreadable decides what a failed artifact read means. The sweeper
// can reclaim the file between Retrieve's expiry check and the read; when the
// record is gone from the index or past its window the caller lost that race
// and the artifact expired. A live record with no file is a broken store.
func (s *Store) classifyUnreadable(ctx context.Context, id uuid.UUID, record Record, readErr error) error {
	s.mu.RLock()
	_, indexed := s.index[id]
	s.mu.RUnlock()

	if !indexed || time.Now().UTC().After(record.ExpiresAt) {
		return pkg.ValidateBusinessError(constant.ErrGenerationExpired, "artifact")
	}

	logger := libCommons.NewLoggerFromContext(ctx)
	logger.Errorf("Artifact %s indexed but unreadable: %v", id, readErr)

	return pkg.ValidateBusinessError(constant.ErrStorageInconsistency, "artifact")
}

// Sweep removes every expired artifact and returns how many were reclaimed.
func (s *Store) Sweep(ctx context.Context) int {
	logger := libCommons.NewLoggerFromContext(ctx)

	now := time.Now().UTC()

	s.mu.Lock()

	expired := make([]uuid.UUID, 0)

	for id, record := range s.index {
		if now.After(record.ExpiresAt) {
			expired = append(expired, id)
			delete(s.index, id)
		}
	}

	s.mu.Unlock()

	for _, id := range expired {
		if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
			logger.Warnf("Failed to remove expired artifact %s: %v", id, err)
		}
	}

	if len(expired) > 0 {
		logger.Infof("Swept %d expired artifacts", len(expired))
	}

	return len(expired)
}

// StartSweeper runs Sweep on the given interval until the context is done.
// Zero interval falls back to the default.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = constant.DefaultArtifactSweepInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

// Count reports how many artifacts are currently indexed.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.index)
}

func (s *Store) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String())
}
