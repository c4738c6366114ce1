package blockdoc

import (
	"fmt"
	"sync"
	"time"
)

// Editor is a single-user editing session over an ordered block sequence.
// Input events replace the target block's payload wholesale and notify via
// OnChange; nothing is mutated in place behind the caller's back. Debounced
// commits (table cells, checklist item text) hold a cancellable timer per
// logical field: a blur or Enter commit cancels the pending debounce so a
// stale write can never overwrite a just-committed value.
type Editor struct {
	mu     sync.Mutex
	blocks []Block
	closed bool

	// OnChange receives the updated block after every committed edit.
	OnChange func(Block)
	// OnStructure receives the full sequence after insert/move/delete.
	OnStructure func([]Block)

	timers  map[string]*time.Timer
	pending map[string]func()

	cellDebounce time.Duration
	itemDebounce time.Duration
}

// SpacerPresets are the discrete spacer heights offered by the editing view.
var SpacerPresets = []int{20, 40, 80, 160}

// CodeLanguages is the fixed language list offered by the code block editor.
var CodeLanguages = []string{
	DefaultCodeLanguage, "go", "javascript", "typescript", "python", "java",
	"c", "cpp", "csharp", "rust", "sql", "bash", "json", "yaml", "html", "css",
}

// NewEditor starts an editing session over the given blocks.
func NewEditor(blocks []Block) *Editor {
	return &Editor{
		blocks:       SortByOrder(blocks),
		timers:       make(map[string]*time.Timer),
		pending:      make(map[string]func()),
		cellDebounce: 150 * time.Millisecond,
		itemDebounce: time.Second,
	}
}

// Blocks returns a copy of the current sequence in display order.
func (e *Editor) Blocks() []Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Block, len(e.blocks))
	copy(out, e.blocks)
	return out
}

// Close tears down the session. All pending debounce timers are cancelled so
// nothing fires against a discarded editing context.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	for key, t := range e.timers {
		t.Stop()
		delete(e.timers, key)
		delete(e.pending, key)
	}
}

// --- structure ---

func (e *Editor) Insert(kind BlockType, afterIndex int) Block {
	e.mu.Lock()
	e.blocks = InsertAfter(e.blocks, kind, afterIndex)
	var nb Block
	if afterIndex < 0 || afterIndex >= len(e.blocks)-1 {
		nb = e.blocks[len(e.blocks)-1]
	} else {
		nb = e.blocks[afterIndex+1]
	}
	e.mu.Unlock()
	e.notifyStructure()
	return nb
}

func (e *Editor) Move(id string, direction string) {
	e.mu.Lock()
	e.blocks = MoveBlock(e.blocks, id, direction)
	e.mu.Unlock()
	e.notifyStructure()
}

func (e *Editor) Delete(id string) {
	e.mu.Lock()
	e.blocks = DeleteBlock(e.blocks, id)
	for key := range e.timers {
		if hasFieldPrefix(key, id) {
			e.timers[key].Stop()
			delete(e.timers, key)
			delete(e.pending, key)
		}
	}
	e.mu.Unlock()
	e.notifyStructure()
}

// --- wholesale content replacement ---

// SetContent replaces a block's payload and notifies immediately.
func (e *Editor) SetContent(id string, content Content) error {
	return e.update(id, func(b *Block) error {
		if content == nil || content.Kind() != b.Type {
			return fmt.Errorf("content kind mismatch for block %s", id)
		}
		b.Content = content
		return nil
	})
}

// --- text / heading / quote / code ---

func (e *Editor) SetText(id, text string) error {
	return e.updateText(id, func(c *TextContent) { c.Text = text })
}

func (e *Editor) SetTextAlignment(id, alignment string) error {
	if alignment != AlignLeft && alignment != AlignCenter && alignment != AlignRight {
		return fmt.Errorf("invalid alignment %q", alignment)
	}
	return e.updateText(id, func(c *TextContent) { c.Alignment = alignment })
}

func (e *Editor) SetTextColor(id, color string) error {
	return e.updateText(id, func(c *TextContent) { c.TextColor = color })
}

func (e *Editor) SetBackgroundColor(id, color string) error {
	return e.updateText(id, func(c *TextContent) { c.BackgroundColor = color })
}

func (e *Editor) SetHeading(id, text string, level int) error {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return e.update(id, func(b *Block) error {
		b.Content = HeadingContent{Text: text, Level: level}
		return nil
	})
}

func (e *Editor) SetQuote(id, text string) error {
	return e.update(id, func(b *Block) error {
		b.Content = QuoteContent{Text: text}
		return nil
	})
}

func (e *Editor) SetCode(id, code string) error {
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(CodeContent)
		if !ok {
			return fmt.Errorf("block %s is not a code block", id)
		}
		c.Code = code
		b.Content = c
		return nil
	})
}

func (e *Editor) SetCodeLanguage(id, language string) error {
	valid := false
	for _, l := range CodeLanguages {
		if l == language {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported language %q", language)
	}
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(CodeContent)
		if !ok {
			return fmt.Errorf("block %s is not a code block", id)
		}
		c.Language = language
		b.Content = c
		return nil
	})
}

// --- table ---

// StageCell records a cell edit and schedules its commit ~150ms out. The
// delay tolerates the blur/refocus race when focus moves between cells.
func (e *Editor) StageCell(id string, row, col int, value string) {
	key := fieldKey(id, "cell", row, col)
	e.schedule(key, e.cellDebounce, func() {
		_ = e.commitCell(id, row, col, value)
	})
}

// CommitCell applies a cell edit immediately (Enter/Tab), cancelling any
// pending debounced commit for the same cell.
func (e *Editor) CommitCell(id string, row, col int, value string) error {
	e.cancel(fieldKey(id, "cell", row, col))
	return e.commitCell(id, row, col, value)
}

// CancelCell drops a staged cell edit without committing (Escape).
func (e *Editor) CancelCell(id string, row, col int) {
	e.cancel(fieldKey(id, "cell", row, col))
}

func (e *Editor) commitCell(id string, row, col int, value string) error {
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(TableContent)
		if !ok {
			return fmt.Errorf("block %s is not a table", id)
		}
		// row -1 addresses the header row
		if row == -1 {
			if col < 0 || col >= len(c.Headers) {
				return fmt.Errorf("header column %d out of range", col)
			}
			c.Headers[col] = value
		} else {
			if row < 0 || row >= len(c.Rows) || col < 0 || col >= len(c.Headers) {
				return fmt.Errorf("cell %d,%d out of range", row, col)
			}
			c.Rows[row][col] = value
		}
		b.Content = c
		return nil
	})
}

func (e *Editor) AddTableRow(id string) error {
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(TableContent)
		if !ok {
			return fmt.Errorf("block %s is not a table", id)
		}
		c.Rows = append(c.Rows, make([]string, len(c.Headers)))
		b.Content = c
		return nil
	})
}

func (e *Editor) AddTableColumn(id string, header string) error {
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(TableContent)
		if !ok {
			return fmt.Errorf("block %s is not a table", id)
		}
		c.Headers = append(c.Headers, header)
		for i := range c.Rows {
			c.Rows[i] = append(c.Rows[i], "")
		}
		b.Content = c
		return nil
	})
}

// --- checklist ---

// StageItemText applies a checklist item edit after ~1s of inactivity on
// that field. Typing restarts the timer, so only the latest value commits.
func (e *Editor) StageItemText(id string, index int, text string) {
	key := fieldKey(id, "item", index, 0)
	e.schedule(key, e.itemDebounce, func() {
		_ = e.commitItemText(id, index, text)
	})
}

// CommitItemText applies an item edit immediately (blur), cancelling the
// pending debounce for that field.
func (e *Editor) CommitItemText(id string, index int, text string) error {
	e.cancel(fieldKey(id, "item", index, 0))
	return e.commitItemText(id, index, text)
}

// EnterItem commits the edited item and, when it is the last item and
// non-empty, appends a fresh empty item below it.
func (e *Editor) EnterItem(id string, index int, text string) error {
	e.cancel(fieldKey(id, "item", index, 0))
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(ChecklistContent)
		if !ok {
			return fmt.Errorf("block %s is not a checklist", id)
		}
		if index < 0 || index >= len(c.Items) {
			return fmt.Errorf("item %d out of range", index)
		}
		c.Items[index].Text = text
		if index == len(c.Items)-1 && text != "" {
			c.Items = append(c.Items, ChecklistItem{})
		}
		b.Content = c
		return nil
	})
}

// ToggleItem flips a checkbox immediately: toggles are discrete low
// frequency events, no debounce.
func (e *Editor) ToggleItem(id string, index int) error {
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(ChecklistContent)
		if !ok {
			return fmt.Errorf("block %s is not a checklist", id)
		}
		if index < 0 || index >= len(c.Items) {
			return fmt.Errorf("item %d out of range", index)
		}
		c.Items[index].Checked = !c.Items[index].Checked
		b.Content = c
		return nil
	})
}

func (e *Editor) SetShowProgress(id string, show bool) error {
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(ChecklistContent)
		if !ok {
			return fmt.Errorf("block %s is not a checklist", id)
		}
		c.ShowProgress = show
		b.Content = c
		return nil
	})
}

func (e *Editor) commitItemText(id string, index int, text string) error {
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(ChecklistContent)
		if !ok {
			return fmt.Errorf("block %s is not a checklist", id)
		}
		if index < 0 || index >= len(c.Items) {
			return fmt.Errorf("item %d out of range", index)
		}
		c.Items[index].Text = text
		b.Content = c
		return nil
	})
}

// --- image ---

// AddImage sets the primary image when none exists; when a primary is
// already present the image is appended to the additional list instead of
// replacing it.
func (e *Editor) AddImage(id, src, alt string) error {
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(ImageContent)
		if !ok {
			return fmt.Errorf("block %s is not an image block", id)
		}
		if c.Src == "" {
			c.Src, c.Alt = src, alt
		} else {
			c.AdditionalImages = append(c.AdditionalImages, ImageRef{Src: src, Alt: alt})
		}
		b.Content = c
		return nil
	})
}

// ReplaceImage always targets the primary image only.
func (e *Editor) ReplaceImage(id, src, alt string) error {
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(ImageContent)
		if !ok {
			return fmt.Errorf("block %s is not an image block", id)
		}
		c.Src, c.Alt = src, alt
		b.Content = c
		return nil
	})
}

func (e *Editor) SetImageCaption(id, caption string) error {
	return e.updateImage(id, func(c *ImageContent) { c.Caption = caption })
}

func (e *Editor) SetImageWrapText(id, wrapText string) error {
	return e.updateImage(id, func(c *ImageContent) { c.WrapText = wrapText })
}

func (e *Editor) SetImageAlignment(id, alignment string) error {
	if alignment != AlignLeft && alignment != AlignCenter && alignment != AlignRight {
		return fmt.Errorf("invalid alignment %q", alignment)
	}
	return e.updateImage(id, func(c *ImageContent) { c.Alignment = alignment })
}

// SetImageWidth recomputes height from the current aspect ratio.
func (e *Editor) SetImageWidth(id string, width int) error {
	return e.updateImage(id, func(c *ImageContent) {
		if c.Width > 0 && c.Height > 0 {
			c.Height = int(float64(c.Height) * float64(width) / float64(c.Width))
		}
		c.Width = width
	})
}

// SetImageHeight recomputes width from the current aspect ratio.
func (e *Editor) SetImageHeight(id string, height int) error {
	return e.updateImage(id, func(c *ImageContent) {
		if c.Width > 0 && c.Height > 0 {
			c.Width = int(float64(c.Width) * float64(height) / float64(c.Height))
		}
		c.Height = height
	})
}

// SetImageSize sets both dimensions explicitly, no ratio recompute.
func (e *Editor) SetImageSize(id string, width, height int) error {
	return e.updateImage(id, func(c *ImageContent) {
		c.Width, c.Height = width, height
	})
}

// --- spacer ---

func (e *Editor) SetSpacerHeight(id string, height int) error {
	return e.update(id, func(b *Block) error {
		if _, ok := ContentOrDefault(*b).(SpacerContent); !ok {
			return fmt.Errorf("block %s is not a spacer", id)
		}
		b.Content = SpacerContent{Height: ClampSpacer(height)}
		return nil
	})
}

// --- internals ---

func (e *Editor) updateText(id string, fn func(*TextContent)) error {
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(TextContent)
		if !ok {
			return fmt.Errorf("block %s is not a text block", id)
		}
		fn(&c)
		b.Content = c
		return nil
	})
}

func (e *Editor) updateImage(id string, fn func(*ImageContent)) error {
	return e.update(id, func(b *Block) error {
		c, ok := ContentOrDefault(*b).(ImageContent)
		if !ok {
			return fmt.Errorf("block %s is not an image block", id)
		}
		fn(&c)
		b.Content = c
		return nil
	})
}

func (e *Editor) update(id string, fn func(*Block) error) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return fmt.Errorf("editor session closed")
	}
	idx := indexOf(e.blocks, id)
	if idx < 0 {
		e.mu.Unlock()
		return fmt.Errorf("block %s not found", id)
	}
	if err := fn(&e.blocks[idx]); err != nil {
		e.mu.Unlock()
		return err
	}
	updated := e.blocks[idx]
	cb := e.OnChange
	e.mu.Unlock()

	if cb != nil {
		cb(updated)
	}
	return nil
}

func (e *Editor) notifyStructure() {
	e.mu.Lock()
	cb := e.OnStructure
	blocks := make([]Block, len(e.blocks))
	copy(blocks, e.blocks)
	e.mu.Unlock()
	if cb != nil {
		cb(blocks)
	}
}

// schedule arms the debounce timer for a field, cancelling any still
// pending timer for the same field so only the latest edit fires.
func (e *Editor) schedule(key string, d time.Duration, fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if t, ok := e.timers[key]; ok {
		t.Stop()
	}
	e.pending[key] = fn
	e.timers[key] = time.AfterFunc(d, func() {
		e.mu.Lock()
		pending, ok := e.pending[key]
		delete(e.pending, key)
		delete(e.timers, key)
		closed := e.closed
		e.mu.Unlock()
		if ok && !closed {
			pending()
		}
	})
}

func (e *Editor) cancel(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.timers[key]; ok {
		t.Stop()
		delete(e.timers, key)
		delete(e.pending, key)
	}
}

func fieldKey(id, field string, a, b int) string {
	return fmt.Sprintf("%s/%s/%d/%d", id, field, a, b)
}

func hasFieldPrefix(key, id string) bool {
	return len(key) > len(id) && key[:len(id)] == id && key[len(id)] == '/'
}
