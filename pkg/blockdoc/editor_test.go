package blockdoc

import (
	"sync"
	"testing"
	"time"
)

// changeRecorder collects OnChange payloads safely across goroutines.
type changeRecorder struct {
	mu      sync.Mutex
	changes []Block
}

func (r *changeRecorder) record(b Block) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, b)
}

func (r *changeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changes)
}

func (r *changeRecorder) last() Block {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.changes[len(r.changes)-1]
}

func newTestEditor(kinds ...BlockType) (*Editor, *changeRecorder) {
	e := NewEditor(seq(kinds...))
	e.cellDebounce = 20 * time.Millisecond
	e.itemDebounce = 20 * time.Millisecond
	rec := &changeRecorder{}
	e.OnChange = rec.record
	return e, rec
}

func TestEditorStageCellDebounce(t *testing.T) {
	e, rec := newTestEditor(TypeTable)
	defer e.Close()
	id := e.Blocks()[0].ID

	// rapid staging: only the last value may commit
	e.StageCell(id, 0, 0, "a")
	e.StageCell(id, 0, 0, "ab")
	e.StageCell(id, 0, 0, "abc")

	time.Sleep(60 * time.Millisecond)

	if rec.count() != 1 {
		t.Fatalf("commits = %d, want 1", rec.count())
	}
	tc := rec.last().Content.(TableContent)
	if tc.Rows[0][0] != "abc" {
		t.Errorf("cell = %q, want latest staged value", tc.Rows[0][0])
	}
}

func TestEditorCommitCellCancelsDebounce(t *testing.T) {
	e, rec := newTestEditor(TypeTable)
	defer e.Close()
	id := e.Blocks()[0].ID

	e.StageCell(id, 0, 0, "stale")
	if err := e.CommitCell(id, 0, 0, "fresh"); err != nil {
		t.Fatal(err)
	}

	time.Sleep(60 * time.Millisecond)

	if rec.count() != 1 {
		t.Fatalf("commits = %d, want 1 (debounced write must be cancelled)", rec.count())
	}
	tc := rec.last().Content.(TableContent)
	if tc.Rows[0][0] != "fresh" {
		t.Errorf("cell = %q, the stale debounced value overwrote the commit", tc.Rows[0][0])
	}
}

func TestEditorCancelCellDiscards(t *testing.T) {
	e, rec := newTestEditor(TypeTable)
	defer e.Close()
	id := e.Blocks()[0].ID

	e.StageCell(id, 0, 0, "typed")
	e.CancelCell(id, 0, 0)

	time.Sleep(60 * time.Millisecond)
	if rec.count() != 0 {
		t.Errorf("commits = %d, want 0 after Escape", rec.count())
	}
}

func TestEditorChecklistToggleImmediate(t *testing.T) {
	e, rec := newTestEditor(TypeChecklist)
	defer e.Close()
	id := e.Blocks()[0].ID

	if err := e.ToggleItem(id, 0); err != nil {
		t.Fatal(err)
	}
	if rec.count() != 1 {
		t.Fatalf("toggle must persist immediately, commits = %d", rec.count())
	}
	cc := rec.last().Content.(ChecklistContent)
	if !cc.Items[0].Checked {
		t.Error("item not toggled")
	}
}

func TestEditorEnterAppendsItemWhenLastAndNonEmpty(t *testing.T) {
	e, rec := newTestEditor(TypeChecklist)
	defer e.Close()
	id := e.Blocks()[0].ID

	if err := e.EnterItem(id, 0, "buy rope"); err != nil {
		t.Fatal(err)
	}
	cc := rec.last().Content.(ChecklistContent)
	if len(cc.Items) != 2 {
		t.Fatalf("items = %d, want a fresh empty item appended", len(cc.Items))
	}
	if cc.Items[1].Text != "" {
		t.Errorf("appended item text = %q, want empty", cc.Items[1].Text)
	}

	// Enter on an empty item must not append another
	if err := e.EnterItem(id, 1, ""); err != nil {
		t.Fatal(err)
	}
	cc = rec.last().Content.(ChecklistContent)
	if len(cc.Items) != 2 {
		t.Errorf("items = %d, empty Enter must not append", len(cc.Items))
	}
}

func TestEditorItemTextBlurBeatsDebounce(t *testing.T) {
	e, rec := newTestEditor(TypeChecklist)
	defer e.Close()
	id := e.Blocks()[0].ID

	e.StageItemText(id, 0, "typing")
	if err := e.CommitItemText(id, 0, "final"); err != nil {
		t.Fatal(err)
	}

	time.Sleep(60 * time.Millisecond)
	if rec.count() != 1 {
		t.Fatalf("commits = %d, want 1", rec.count())
	}
	cc := rec.last().Content.(ChecklistContent)
	if cc.Items[0].Text != "final" {
		t.Errorf("text = %q, want blur value", cc.Items[0].Text)
	}
}

func TestEditorImageAddVersusReplace(t *testing.T) {
	e, rec := newTestEditor(TypeImage)
	defer e.Close()
	id := e.Blocks()[0].ID

	if err := e.AddImage(id, "https://x/1.png", "one"); err != nil {
		t.Fatal(err)
	}
	ic := rec.last().Content.(ImageContent)
	if ic.Src != "https://x/1.png" {
		t.Fatal("first add must set the primary image")
	}

	if err := e.AddImage(id, "https://x/2.png", "two"); err != nil {
		t.Fatal(err)
	}
	ic = rec.last().Content.(ImageContent)
	if ic.Src != "https://x/1.png" || len(ic.AdditionalImages) != 1 {
		t.Error("second add must append, not replace the primary")
	}

	if err := e.ReplaceImage(id, "https://x/3.png", "three"); err != nil {
		t.Fatal(err)
	}
	ic = rec.last().Content.(ImageContent)
	if ic.Src != "https://x/3.png" {
		t.Error("replace must target the primary")
	}
	if len(ic.AdditionalImages) != 1 {
		t.Error("replace must leave additional images alone")
	}
}

func TestEditorImageAspectRatio(t *testing.T) {
	e, rec := newTestEditor(TypeImage)
	defer e.Close()
	id := e.Blocks()[0].ID

	if err := e.SetImageSize(id, 400, 200); err != nil {
		t.Fatal(err)
	}
	if err := e.SetImageWidth(id, 200); err != nil {
		t.Fatal(err)
	}
	ic := rec.last().Content.(ImageContent)
	if ic.Width != 200 || ic.Height != 100 {
		t.Errorf("size = %dx%d, want 200x100 (ratio preserved)", ic.Width, ic.Height)
	}

	if err := e.SetImageHeight(id, 50); err != nil {
		t.Fatal(err)
	}
	ic = rec.last().Content.(ImageContent)
	if ic.Width != 100 || ic.Height != 50 {
		t.Errorf("size = %dx%d, want 100x50 (ratio preserved)", ic.Width, ic.Height)
	}

	// explicit both: no recompute
	if err := e.SetImageSize(id, 123, 77); err != nil {
		t.Fatal(err)
	}
	ic = rec.last().Content.(ImageContent)
	if ic.Width != 123 || ic.Height != 77 {
		t.Errorf("explicit size = %dx%d, want 123x77 untouched", ic.Width, ic.Height)
	}
}

func TestEditorSpacerClamped(t *testing.T) {
	e, rec := newTestEditor(TypeSpacer)
	defer e.Close()
	id := e.Blocks()[0].ID

	if err := e.SetSpacerHeight(id, 500); err != nil {
		t.Fatal(err)
	}
	sc := rec.last().Content.(SpacerContent)
	if sc.Height != MaxSpacerHeight {
		t.Errorf("height = %d, want clamped to %d", sc.Height, MaxSpacerHeight)
	}
}

func TestEditorCloseStopsPendingTimers(t *testing.T) {
	e, rec := newTestEditor(TypeTable)
	id := e.Blocks()[0].ID

	e.StageCell(id, 0, 0, "doomed")
	e.Close()

	time.Sleep(60 * time.Millisecond)
	if rec.count() != 0 {
		t.Errorf("commits = %d after Close, want 0", rec.count())
	}

	if err := e.SetText(id, "x"); err == nil {
		t.Error("events after Close must fail")
	}
}

func TestEditorStructureEvents(t *testing.T) {
	e, _ := newTestEditor(TypeText, TypeDivider)
	defer e.Close()

	var structures int
	e.OnStructure = func(blocks []Block) {
		structures++
		for i, b := range blocks {
			if b.Order != i {
				t.Errorf("order %d at position %d after structural edit", b.Order, i)
			}
		}
	}

	nb := e.Insert(TypeQuote, 0)
	if e.Blocks()[1].ID != nb.ID {
		t.Error("Insert placed the block at the wrong position")
	}
	e.Move(nb.ID, "down")
	e.Delete(nb.ID)

	if structures != 3 {
		t.Errorf("structure notifications = %d, want 3", structures)
	}
}

func TestEditorSetCodeLanguageValidated(t *testing.T) {
	e, rec := newTestEditor(TypeCode)
	defer e.Close()
	id := e.Blocks()[0].ID

	if err := e.SetCodeLanguage(id, "go"); err != nil {
		t.Fatal(err)
	}
	if cc := rec.last().Content.(CodeContent); cc.Language != "go" {
		t.Errorf("language = %q", cc.Language)
	}

	if err := e.SetCodeLanguage(id, "brainfsck"); err == nil {
		t.Error("language outside the fixed list must be rejected")
	}
}
