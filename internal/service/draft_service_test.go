package service

import (
	"context"
	"sync"
	"testing"

	"ops-collab-be/internal/dto"
	"ops-collab-be/pkg/autosave"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// draftAutosaveStore bridges the draft service into the autosave
// controller's persistence contract for one author.
type draftAutosaveStore struct {
	drafts IDraftService
	userId uuid.UUID
}

func snapshotFields(snap autosave.Snapshot) *dto.SaveDraftRequest {
	folderId, _ := uuid.Parse(snap.FolderID)
	return &dto.SaveDraftRequest{
		Title:      snap.Title,
		Content:    snap.Content,
		Importance: snap.Importance,
		Tags:       snap.Tags,
		Color:      snap.Color,
		Icon:       snap.Icon,
		FolderId:   folderId,
	}
}

func (st draftAutosaveStore) SaveDraft(ctx context.Context, snap autosave.Snapshot) (string, error) {
	resp, err := st.drafts.Save(ctx, st.userId, snapshotFields(snap))
	if err != nil {
		return "", err
	}
	return resp.Id.String(), nil
}

func (st draftAutosaveStore) UpdateDraft(ctx context.Context, draftID string, snap autosave.Snapshot) error {
	id, err := uuid.Parse(draftID)
	if err != nil {
		return err
	}
	fields := snapshotFields(snap)
	_, err = st.drafts.Update(ctx, st.userId, &dto.UpdateDraftRequest{
		Id:         id,
		Title:      fields.Title,
		Content:    fields.Content,
		Importance: fields.Importance,
		Tags:       fields.Tags,
		Color:      fields.Color,
		Icon:       fields.Icon,
		FolderId:   fields.FolderId,
	})
	return err
}

func (st draftAutosaveStore) DeleteDraft(ctx context.Context, draftID string) error {
	id, err := uuid.Parse(draftID)
	if err != nil {
		return err
	}
	return st.drafts.Delete(ctx, st.userId, id)
}

// draftServiceStub records the calls the adapter forwards. Unimplemented
// IDraftService methods panic through the embedded nil interface.
type draftServiceStub struct {
	IDraftService

	draftID   uuid.UUID
	saves     int
	updates   int
	deletes   int
	lastTitle string
}

func (s *draftServiceStub) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveDraftRequest) (*dto.SaveDraftResponse, error) {
	s.saves++
	s.draftID = uuid.New()
	s.lastTitle = req.Title
	return &dto.SaveDraftResponse{Id: s.draftID}, nil
}

func (s *draftServiceStub) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateDraftRequest) (*dto.SaveDraftResponse, error) {
	s.updates++
	s.lastTitle = req.Title
	return &dto.SaveDraftResponse{Id: req.Id}, nil
}

func (s *draftServiceStub) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	s.deletes++
	return nil
}

type silentLogger struct{}

func (silentLogger) Warn(module, message string, details map[string]interface{}) {}

func TestAutosaveControllerAgainstDraftService(t *testing.T) {
	stub := &draftServiceStub{}
	store := draftAutosaveStore{drafts: stub, userId: uuid.New()}

	state := autosave.Snapshot{Title: "first pass", Content: "notes"}
	var mu sync.Mutex
	source := func() autosave.Snapshot {
		mu.Lock()
		defer mu.Unlock()
		return state
	}

	c := autosave.New(store, source, silentLogger{}, autosave.Options{})
	defer c.Close()

	require.NoError(t, c.SaveNow(context.Background()))
	assert.Equal(t, 1, stub.saves)
	assert.Equal(t, stub.draftID.String(), c.DraftID())
	assert.Equal(t, "first pass", stub.lastTitle)

	mu.Lock()
	state.Title = "second pass"
	mu.Unlock()
	require.NoError(t, c.SaveNow(context.Background()))
	assert.Equal(t, 1, stub.saves, "later saves reuse the captured draft id")
	assert.Equal(t, 1, stub.updates)
	assert.Equal(t, "second pass", stub.lastTitle)

	c.Promote(context.Background())
	assert.Equal(t, 1, stub.deletes)
	assert.Empty(t, c.DraftID())
}
