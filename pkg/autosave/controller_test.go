package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	delay   time.Duration
	saves   int
	updates int
	deletes int
	failAll bool
	lastID  string
}

func (f *fakeStore) SaveDraft(ctx context.Context, snap Snapshot) (string, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return "", errors.New("store down")
	}
	f.saves++
	f.lastID = "draft-1"
	return f.lastID, nil
}

func (f *fakeStore) UpdateDraft(ctx context.Context, draftID string, snap Snapshot) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("store down")
	}
	f.updates++
	return nil
}

func (f *fakeStore) DeleteDraft(ctx context.Context, draftID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("store down")
	}
	f.deletes++
	return nil
}

func (f *fakeStore) counts() (int, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves, f.updates, f.deletes
}

type nopLogger struct{}

func (nopLogger) Warn(module, message string, details map[string]interface{}) {}

func quietOptions() Options {
	return Options{
		Debounce:    10 * time.Millisecond,
		Interval:    time.Hour, // keep the periodic trigger out of unit tests
		SavedWindow: 5 * time.Millisecond,
		ErrorWindow: 5 * time.Millisecond,
	}
}

func TestFirstSaveCreatesDraftThenUpdates(t *testing.T) {
	store := &fakeStore{}
	state := Snapshot{Title: "v1", Content: "body"}
	var mu sync.Mutex
	source := func() Snapshot {
		mu.Lock()
		defer mu.Unlock()
		return state
	}

	c := New(store, source, nopLogger{}, quietOptions())
	defer c.Close()

	require.NoError(t, c.SaveNow(context.Background()))
	assert.Equal(t, "draft-1", c.DraftID())

	mu.Lock()
	state.Title = "v2"
	mu.Unlock()
	require.NoError(t, c.SaveNow(context.Background()))

	saves, updates, _ := store.counts()
	assert.Equal(t, 1, saves, "only the first save creates a record")
	assert.Equal(t, 1, updates, "later saves update the captured draft id")
}

func TestHashGateSkipsRedundantSaves(t *testing.T) {
	store := &fakeStore{}
	source := func() Snapshot { return Snapshot{Title: "same", Content: "same"} }

	c := New(store, source, nopLogger{}, quietOptions())
	defer c.Close()

	require.NoError(t, c.SaveNow(context.Background()))
	require.NoError(t, c.SaveNow(context.Background()))
	require.NoError(t, c.SaveNow(context.Background()))

	saves, updates, _ := store.counts()
	assert.Equal(t, 1, saves)
	assert.Equal(t, 0, updates, "unchanged content must not hit the store again")
}

func TestDebouncedChangeTrigger(t *testing.T) {
	store := &fakeStore{}
	source := func() Snapshot { return Snapshot{Title: "x"} }

	c := New(store, source, nopLogger{}, quietOptions())
	defer c.Close()

	// burst of edits: only the last scheduling fires
	c.NotifyChange()
	c.NotifyChange()
	c.NotifyChange()

	time.Sleep(50 * time.Millisecond)
	saves, _, _ := store.counts()
	assert.Equal(t, 1, saves)
}

func TestOverlappingTriggersCreateOneDraft(t *testing.T) {
	store := &fakeStore{delay: 100 * time.Millisecond}
	source := func() Snapshot { return Snapshot{Title: "v1", Content: "body"} }

	// Interval shorter than the store round trip: the periodic trigger
	// fires while the first create is still in flight.
	c := New(store, source, nopLogger{}, Options{
		Debounce:    10 * time.Millisecond,
		Interval:    40 * time.Millisecond,
		SavedWindow: time.Hour,
		ErrorWindow: time.Hour,
	})
	defer c.Close()

	c.NotifyChange()
	time.Sleep(300 * time.Millisecond)

	saves, updates, _ := store.counts()
	assert.Equal(t, 1, saves, "overlapping triggers must not create a second record")
	assert.Zero(t, updates, "unchanged content needs no follow-up write")
	assert.Equal(t, "draft-1", c.DraftID())
}

func TestSaveErrorSetsTransientErrorStatus(t *testing.T) {
	store := &fakeStore{failAll: true}
	source := func() Snapshot { return Snapshot{Title: "x"} }

	c := New(store, source, nopLogger{}, Options{
		Debounce:    10 * time.Millisecond,
		Interval:    time.Hour,
		SavedWindow: time.Hour,
		ErrorWindow: 20 * time.Millisecond,
	})
	defer c.Close()

	require.Error(t, c.SaveNow(context.Background()))
	assert.Equal(t, StatusError, c.Status())

	// error display window expires back to idle
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, StatusIdle, c.Status())

	// editing continues; the next trigger retries with latest content
	store.mu.Lock()
	store.failAll = false
	store.mu.Unlock()
	require.NoError(t, c.SaveNow(context.Background()))
	saves, _, _ := store.counts()
	assert.Equal(t, 1, saves)
}

func TestPromoteDeletesDraft(t *testing.T) {
	store := &fakeStore{}
	source := func() Snapshot { return Snapshot{Title: "x"} }

	c := New(store, source, nopLogger{}, quietOptions())
	defer c.Close()

	require.NoError(t, c.SaveNow(context.Background()))
	c.Promote(context.Background())

	_, _, deletes := store.counts()
	assert.Equal(t, 1, deletes)
	assert.Empty(t, c.DraftID())
}

func TestPromoteWithoutDraftIsNoop(t *testing.T) {
	store := &fakeStore{}
	c := New(store, func() Snapshot { return Snapshot{} }, nopLogger{}, quietOptions())
	defer c.Close()

	c.Promote(context.Background())
	_, _, deletes := store.counts()
	assert.Zero(t, deletes)
}

func TestCloseCancelsPendingDebounce(t *testing.T) {
	store := &fakeStore{}
	source := func() Snapshot { return Snapshot{Title: "x"} }

	c := New(store, source, nopLogger{}, quietOptions())
	c.NotifyChange()
	c.Close()

	time.Sleep(50 * time.Millisecond)
	saves, updates, _ := store.counts()
	assert.Zero(t, saves+updates, "nothing may fire against a torn-down session")
}

func TestSnapshotHashSensitivity(t *testing.T) {
	base := Snapshot{Title: "t", Content: "c", Importance: "high", Tags: []string{"a", "b"}}

	same := Snapshot{Title: "t", Content: "c", Importance: "high", Tags: []string{"a", "b"}}
	assert.Equal(t, base.Hash(), same.Hash())

	for name, other := range map[string]Snapshot{
		"title":      {Title: "T", Content: "c", Importance: "high", Tags: []string{"a", "b"}},
		"content":    {Title: "t", Content: "C", Importance: "high", Tags: []string{"a", "b"}},
		"importance": {Title: "t", Content: "c", Importance: "low", Tags: []string{"a", "b"}},
		"tags":       {Title: "t", Content: "c", Importance: "high", Tags: []string{"a"}},
		"icon":       {Title: "t", Content: "c", Importance: "high", Tags: []string{"a", "b"}, Icon: "flag"},
	} {
		assert.NotEqual(t, base.Hash(), other.Hash(), "field %s must change the hash", name)
	}
}

func TestPeriodicTrigger(t *testing.T) {
	store := &fakeStore{}
	n := 0
	var mu sync.Mutex
	source := func() Snapshot {
		mu.Lock()
		defer mu.Unlock()
		n++
		return Snapshot{Title: "v", Content: string(rune('a' + n))}
	}

	c := New(store, source, nopLogger{}, Options{
		Debounce:    time.Hour,
		Interval:    15 * time.Millisecond,
		SavedWindow: time.Hour,
		ErrorWindow: time.Hour,
	})
	defer c.Close()

	time.Sleep(60 * time.Millisecond)
	saves, updates, _ := store.counts()
	assert.Greater(t, saves+updates, 1, "periodic safety net must fire without edits")
}
