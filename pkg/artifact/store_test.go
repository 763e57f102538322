// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package artifact

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/docstackhq/docstack/pkg"
	"github.com/docstackhq/docstack/pkg/constant"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, retention time.Duration) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir(), retention, &log.NoneLogger{})
	require.NoError(t, err)

	return store
}

func TestRegisterAndRetrieve(t *testing.T) {
	store := newTestStore(t, time.Hour)

	templateId := uuid.New()

	record, err := store.Register(context.Background(), []byte("%PDF-1.7"), Meta{
		FileName:     "invoice.pdf",
		MimeType:     constant.MimeTypePDF,
		ExportFormat: constant.FormatPDF,
		TemplateID:   templateId,
		CreatedBy:    "req-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "invoice.pdf", record.FileName)
	assert.Equal(t, int64(8), record.Size)
	assert.Equal(t, constant.FormatPDF, record.ExportFormat)
	assert.Equal(t, templateId, record.TemplateID)
	assert.Equal(t, "req-1", record.CreatedBy)
	assert.True(t, record.ExpiresAt.After(record.CreatedAt))

	got, data, err := store.Retrieve(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, templateId, got.TemplateID)
	assert.Equal(t, []byte("%PDF-1.7"), data)
}

func TestRetrieveUnknownID(t *testing.T) {
	store := newTestStore(t, time.Hour)

	_, _, err := store.Retrieve(context.Background(), uuid.New())

	require.Error(t, err)

	var notFound pkg.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, constant.ErrEntityNotFound.Error(), notFound.Code)
}

func TestRetrieveExpiredArtifact(t *testing.T) {
	store := newTestStore(t, time.Hour)

	record, err := store.Register(context.Background(), []byte("x"), Meta{FileName: "a.txt", MimeType: constant.MimeTypeText})
	require.NoError(t, err)

	store.mu.Lock()
	expired := store.index[record.ID]
	expired.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	store.index[record.ID] = expired
	store.mu.Unlock()

	_, _, err = store.Retrieve(context.Background(), record.ID)

	require.Error(t, err)

	var notFound pkg.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, constant.ErrGenerationExpired.Error(), notFound.Code)
}

func TestRetrieveMissingFileIsInconsistency(t *testing.T) {
	store := newTestStore(t, time.Hour)

	record, err := store.Register(context.Background(), []byte("x"), Meta{FileName: "a.txt", MimeType: constant.MimeTypeText})
	require.NoError(t, err)

	require.NoError(t, os.Remove(store.path(record.ID)))

	_, _, err = store.Retrieve(context.Background(), record.ID)

	require.Error(t, err)

	var inconsistency pkg.StorageInconsistencyError
	require.ErrorAs(t, err, &inconsistency)
	assert.Equal(t, constant.ErrStorageInconsistency.Error(), inconsistency.Code)
}

func TestRetrieveSweptDuringReadReportsExpired(t *testing.T) {
	store := newTestStore(t, time.Hour)

	record, err := store.Register(context.Background(), []byte("x"), Meta{FileName: "a.txt", MimeType: constant.MimeTypeText})
	require.NoError(t, err)

	// Sweep wins the race: file and index entry are gone by the time the
	// failed read gets classified.
	require.NoError(t, os.Remove(store.path(record.ID)))
	store.mu.Lock()
	delete(store.index, record.ID)
	store.mu.Unlock()

	err = store.classifyUnreadable(context.Background(), record.ID, *record, os.ErrNotExist)

	require.Error(t, err)

	var notFound pkg.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, constant.ErrGenerationExpired.Error(), notFound.Code)
}

func TestRetrieveExpiredMidReadReportsExpired(t *testing.T) {
	store := newTestStore(t, time.Hour)

	record, err := store.Register(context.Background(), []byte("x"), Meta{FileName: "a.txt", MimeType: constant.MimeTypeText})
	require.NoError(t, err)

	// The record is still indexed but its window closed while the read was
	// in flight.
	stale := *record
	stale.ExpiresAt = time.Now().UTC().Add(-time.Second)

	err = store.classifyUnreadable(context.Background(), record.ID, stale, os.ErrNotExist)

	require.Error(t, err)

	var notFound pkg.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, constant.ErrGenerationExpired.Error(), notFound.Code)
}

func TestSweepRemovesExpiredOnly(t *testing.T) {
	store := newTestStore(t, time.Hour)

	alive, err := store.Register(context.Background(), []byte("alive"), Meta{FileName: "a.txt", MimeType: constant.MimeTypeText})
	require.NoError(t, err)

	dead, err := store.Register(context.Background(), []byte("dead"), Meta{FileName: "b.txt", MimeType: constant.MimeTypeText})
	require.NoError(t, err)

	store.mu.Lock()
	expired := store.index[dead.ID]
	expired.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	store.index[dead.ID] = expired
	store.mu.Unlock()

	removed := store.Sweep(context.Background())

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Count())

	_, _, err = store.Retrieve(context.Background(), alive.ID)
	require.NoError(t, err)

	_, err = os.Stat(store.path(dead.ID))
	assert.True(t, os.IsNotExist(err))
}

func TestRegisterConcurrent(t *testing.T) {
	store := newTestStore(t, time.Hour)

	const writers = 16

	var wg sync.WaitGroup

	for i := 0; i < writers; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			_, err := store.Register(context.Background(), []byte("data"), Meta{FileName: fmt.Sprintf("f-%d.txt", n), MimeType: constant.MimeTypeText})
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()

	assert.Equal(t, writers, store.Count())
}
