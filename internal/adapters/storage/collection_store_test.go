package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/backend/internal/domain/entities"
	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// memKV is an in-memory KeyValueStore shared by the storage tests.
type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func sampleAppointment(id int64, url string) *entities.Appointment {
	a := &entities.Appointment{
		ID:          id,
		PatientName: "Ada Lovelace",
		DoctorName:  "Dr. Gregory House",
		Date:        "30/08/2026",
		Time:        "10:30",
		Reason:      "Checkup",
	}
	if url != "" {
		a.Enrichment = &entities.Enrichment{URL: url, Title: "Daily", Author: "NASA"}
	}
	return a
}

func TestCollectionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	store := NewCollectionStore(kv)
	store.Load(ctx)
	require.NoError(t, store.Append(ctx, sampleAppointment(1, "https://apod.nasa.gov/a.jpg")))
	require.NoError(t, store.Append(ctx, sampleAppointment(2, "")))

	// A fresh store over the same backend sees the identical collection.
	reloaded := NewCollectionStore(kv)
	reloaded.Load(ctx)

	records, err := reloaded.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, int64(2), records[1].ID)
	require.NotNil(t, records[0].Enrichment)
	assert.Equal(t, "https://apod.nasa.gov/a.jpg", records[0].Enrichment.URL)
	assert.Nil(t, records[1].Enrichment)
}

func TestCollectionStore_PersistedFormStableAcrossReload(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	store := NewCollectionStore(kv)
	store.Load(ctx)
	require.NoError(t, store.Append(ctx, sampleAppointment(1, "https://apod.nasa.gov/a.jpg")))
	require.NoError(t, store.Append(ctx, sampleAppointment(2, "")))

	before, found, err := kv.Get(ctx, CollectionKey)
	require.NoError(t, err)
	require.True(t, found)

	// Reload and rewrite the same content; the serialized form must not
	// drift across load/save cycles.
	reloaded := NewCollectionStore(kv)
	reloaded.Load(ctx)
	require.NoError(t, reloaded.Update(ctx, sampleAppointment(1, "https://apod.nasa.gov/a.jpg")))

	after, found, err := kv.Get(ctx, CollectionKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, before, after)
}

func TestCollectionStore_Load_CorruptValueStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	require.NoError(t, kv.Set(ctx, CollectionKey, "{not json"))

	store := NewCollectionStore(kv)
	store.Load(ctx)

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCollectionStore_Load_MissingKeyStartsEmpty(t *testing.T) {
	store := NewCollectionStore(newMemKV())
	store.Load(context.Background())

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCollectionStore_NextID_StrictlyMonotonic(t *testing.T) {
	store := NewCollectionStore(newMemKV())
	frozen := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return frozen }

	first := store.NextID()
	second := store.NextID()
	third := store.NextID()

	assert.Equal(t, frozen.UnixMilli(), first)
	assert.Equal(t, first+1, second, "same-instant creations must still get distinct IDs")
	assert.Equal(t, second+1, third)
}

func TestCollectionStore_NextID_NeverBehindLoadedRecords(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	store := NewCollectionStore(kv)
	store.Load(ctx)

	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(ctx, sampleAppointment(future.UnixMilli(), "")))

	past := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return past }

	assert.Greater(t, store.NextID(), future.UnixMilli())
}

func TestCollectionStore_GetByID(t *testing.T) {
	ctx := context.Background()
	store := NewCollectionStore(newMemKV())
	store.Load(ctx)
	require.NoError(t, store.Append(ctx, sampleAppointment(1, "https://apod.nasa.gov/a.jpg")))

	got, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.PatientName)

	_, err = store.GetByID(ctx, 99)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCollectionStore_ReturnsClones(t *testing.T) {
	ctx := context.Background()
	store := NewCollectionStore(newMemKV())
	store.Load(ctx)
	require.NoError(t, store.Append(ctx, sampleAppointment(1, "https://apod.nasa.gov/a.jpg")))

	got, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	got.PatientName = "Tampered"
	got.Enrichment.URL = "https://tampered.example/x.jpg"

	fresh, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", fresh.PatientName)
	assert.Equal(t, "https://apod.nasa.gov/a.jpg", fresh.Enrichment.URL)
}

func TestCollectionStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewCollectionStore(newMemKV())
	store.Load(ctx)
	require.NoError(t, store.Append(ctx, sampleAppointment(1, "")))

	updated := sampleAppointment(1, "")
	updated.PatientName = "Grace Hopper"
	require.NoError(t, store.Update(ctx, updated))

	got, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", got.PatientName)

	err = store.Update(ctx, sampleAppointment(99, ""))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCollectionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewCollectionStore(newMemKV())
	store.Load(ctx)
	require.NoError(t, store.Append(ctx, sampleAppointment(1, "")))
	require.NoError(t, store.Append(ctx, sampleAppointment(2, "")))

	require.NoError(t, store.Delete(ctx, 1))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(2), records[0].ID)

	// Unknown IDs are a no-op.
	require.NoError(t, store.Delete(ctx, 99))
}

func TestCollectionStore_UsedEnrichmentURLs(t *testing.T) {
	ctx := context.Background()
	store := NewCollectionStore(newMemKV())
	store.Load(ctx)
	require.NoError(t, store.Append(ctx, sampleAppointment(1, "https://apod.nasa.gov/a.jpg")))
	require.NoError(t, store.Append(ctx, sampleAppointment(2, "")))
	require.NoError(t, store.Append(ctx, sampleAppointment(3, "https://apod.nasa.gov/b.jpg")))

	used, err := store.UsedEnrichmentURLs(ctx)
	require.NoError(t, err)
	assert.Len(t, used, 2)
	assert.Contains(t, used, "https://apod.nasa.gov/a.jpg")
	assert.Contains(t, used, "https://apod.nasa.gov/b.jpg")
}
