package blockdoc

import "testing"

func seq(kinds ...BlockType) []Block {
	blocks := make([]Block, len(kinds))
	for i, k := range kinds {
		blocks[i] = Block{ID: NewBlockID(), Type: k, Order: i, Content: DefaultContent(k)}
	}
	return blocks
}

func assertContiguous(t *testing.T, blocks []Block) {
	t.Helper()
	for i, b := range blocks {
		if b.Order != i {
			t.Errorf("block %d Order = %d, want %d", i, b.Order, i)
		}
	}
}

func TestMoveBlock(t *testing.T) {
	blocks := seq(TypeText, TypeHeading, TypeDivider)
	first, second := blocks[0].ID, blocks[1].ID

	blocks = MoveBlock(blocks, second, "up")
	if blocks[0].ID != second || blocks[1].ID != first {
		t.Error("move up did not swap with the previous block")
	}
	assertContiguous(t, blocks)

	// boundary: first cannot move up, last cannot move down
	blocks = MoveBlock(blocks, blocks[0].ID, "up")
	if blocks[0].ID != second {
		t.Error("move up at top boundary must be a no-op")
	}
	blocks = MoveBlock(blocks, blocks[2].ID, "down")
	assertContiguous(t, blocks)
}

func TestDeleteBlockRenumbers(t *testing.T) {
	blocks := seq(TypeText, TypeQuote, TypeCode, TypeSpacer)
	blocks = DeleteBlock(blocks, blocks[1].ID)

	if len(blocks) != 3 {
		t.Fatalf("len = %d, want 3", len(blocks))
	}
	assertContiguous(t, blocks)

	// deleting an unknown id leaves the sequence untouched
	blocks = DeleteBlock(blocks, "nope")
	if len(blocks) != 3 {
		t.Errorf("len = %d after unknown delete, want 3", len(blocks))
	}
}

func TestInsertAfter(t *testing.T) {
	blocks := seq(TypeText, TypeDivider)

	blocks = InsertAfter(blocks, TypeQuote, 0)
	if blocks[1].Type != TypeQuote {
		t.Errorf("blocks[1].Type = %q, want quote", blocks[1].Type)
	}
	assertContiguous(t, blocks)

	blocks = InsertAfter(blocks, TypeCode, -1)
	if blocks[len(blocks)-1].Type != TypeCode {
		t.Error("negative index must append")
	}
	assertContiguous(t, blocks)
}

func TestConformTable(t *testing.T) {
	tests := []struct {
		name    string
		in      TableContent
		wantLen int
	}{
		{
			name:    "short row padded",
			in:      TableContent{Headers: []string{"a", "b", "c"}, Rows: [][]string{{"1"}}},
			wantLen: 3,
		},
		{
			name:    "long row truncated",
			in:      TableContent{Headers: []string{"a", "b"}, Rows: [][]string{{"1", "2", "3", "4"}}},
			wantLen: 2,
		},
		{
			name:    "empty headers get defaults",
			in:      TableContent{},
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ConformTable(tt.in)
			for i, row := range out.Rows {
				if len(row) != tt.wantLen {
					t.Errorf("row %d has %d cells, want %d", i, len(row), tt.wantLen)
				}
			}
			if len(out.Headers) != tt.wantLen {
				t.Errorf("headers = %d, want %d", len(out.Headers), tt.wantLen)
			}
		})
	}
}

func TestClampSpacer(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{0, 0},
		{80, 80},
		{200, 200},
		{999, 200},
	}
	for _, tt := range tests {
		if got := ClampSpacer(tt.in); got != tt.want {
			t.Errorf("ClampSpacer(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestContentOrDefaultGuardsMalformedPayload(t *testing.T) {
	// wrong payload kind for the block type degrades to the type default
	b := Block{ID: "x", Type: TypeChecklist, Content: TextContent{Text: "oops"}}
	c, ok := ContentOrDefault(b).(ChecklistContent)
	if !ok {
		t.Fatalf("got %T, want ChecklistContent default", ContentOrDefault(b))
	}
	if !c.ShowProgress || len(c.Items) != 1 {
		t.Errorf("unexpected default checklist: %+v", c)
	}

	// nil content too
	b = Block{ID: "y", Type: TypeSpacer}
	if _, ok := ContentOrDefault(b).(SpacerContent); !ok {
		t.Error("nil content must degrade to the kind default")
	}
}

func TestNewBlockIDShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewBlockID()
		if len(id) != 12 {
			t.Fatalf("id %q length = %d, want 12", id, len(id))
		}
		for _, r := range id {
			if r == '-' {
				t.Fatalf("id %q contains a dash, would break the wire delimiters", id)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
