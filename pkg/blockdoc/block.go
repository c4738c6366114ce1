package blockdoc

import (
	"crypto/rand"
	"encoding/hex"
)

// BlockType enumerates every content block kind a document can hold.
type BlockType string

const (
	TypeText      BlockType = "text"
	TypeHeading   BlockType = "heading"
	TypeList      BlockType = "list"
	TypeTable     BlockType = "table"
	TypeImage     BlockType = "image"
	TypeQuote     BlockType = "quote"
	TypeCode      BlockType = "code"
	TypeDivider   BlockType = "divider"
	TypeChecklist BlockType = "checklist"
	TypeSpacer    BlockType = "spacer"
	TypeFile      BlockType = "file"
)

// Alignment values for text and image blocks. Left is the implicit default
// and is never written to the wire format (keeps legacy documents parseable).
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// DefaultCodeLanguage is what an empty fence language decodes to.
const DefaultCodeLanguage = "plaintext"

// MaxSpacerHeight bounds the spacer height in pixels.
const MaxSpacerHeight = 200

// Content is the closed set of per-kind payloads. Every variant implements
// Kind(); codec and renderer dispatch exhaustively on it so adding a new
// block kind is a compile-visible checklist.
type Content interface {
	Kind() BlockType
}

type TextContent struct {
	Text            string `json:"text"`
	Alignment       string `json:"alignment"`
	TextColor       string `json:"textColor"`
	BackgroundColor string `json:"backgroundColor"`
}

func (TextContent) Kind() BlockType { return TypeText }

type HeadingContent struct {
	Text  string `json:"text"`
	Level int    `json:"level"` // 1..6
}

func (HeadingContent) Kind() BlockType { return TypeHeading }

type ListContent struct {
	Items   []string `json:"items"`
	Ordered bool     `json:"ordered"`
}

func (ListContent) Kind() BlockType { return TypeList }

type TableContent struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func (TableContent) Kind() BlockType { return TypeTable }

type ChecklistItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type ChecklistContent struct {
	Items        []ChecklistItem `json:"checklistItems"`
	ShowProgress bool            `json:"showProgress"`
}

func (ChecklistContent) Kind() BlockType { return TypeChecklist }

type QuoteContent struct {
	Text string `json:"text"`
}

func (QuoteContent) Kind() BlockType { return TypeQuote }

type CodeContent struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (CodeContent) Kind() BlockType { return TypeCode }

type ImageRef struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type ImageContent struct {
	Src              string     `json:"src"`
	Alt              string     `json:"alt"`
	Caption          string     `json:"caption"`
	Alignment        string     `json:"alignment"`
	WrapText         string     `json:"wrapText"`
	Width            int        `json:"width"`  // px, 0 = natural
	Height           int        `json:"height"` // px, 0 = natural
	AdditionalImages []ImageRef `json:"additionalImages"`
}

func (ImageContent) Kind() BlockType { return TypeImage }

type FileContent struct {
	Src      string `json:"src"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"` // bytes
	FileType string `json:"fileType"` // mime
}

func (FileContent) Kind() BlockType { return TypeFile }

type DividerContent struct{}

func (DividerContent) Kind() BlockType { return TypeDivider }

type SpacerContent struct {
	Height int `json:"height"` // px, clamped 0..MaxSpacerHeight
}

func (SpacerContent) Kind() BlockType { return TypeSpacer }

// Block is the unit of document content. Content is always replaced
// wholesale on edit; partial patches are not part of the contract.
type Block struct {
	ID      string    `json:"id"`
	Type    BlockType `json:"type"`
	Order   int       `json:"order"`
	Content Content   `json:"content"`
}

// NewBlockID returns a fresh opaque block identifier. Hex only: the wire
// delimiters are dash-separated, so IDs must not contain dashes.
func NewBlockID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; keep a fixed
		// fallback rather than panicking mid-edit.
		return "000000000000"
	}
	return hex.EncodeToString(b)
}

// DefaultContent returns the documented default payload for a kind.
func DefaultContent(kind BlockType) Content {
	switch kind {
	case TypeText:
		return TextContent{Alignment: AlignLeft, BackgroundColor: "transparent"}
	case TypeHeading:
		return HeadingContent{Level: 1}
	case TypeList:
		return ListContent{Items: []string{""}}
	case TypeTable:
		return TableContent{
			Headers: []string{"Column 1", "Column 2"},
			Rows:    [][]string{{"", ""}},
		}
	case TypeChecklist:
		return ChecklistContent{
			Items:        []ChecklistItem{{}},
			ShowProgress: true,
		}
	case TypeQuote:
		return QuoteContent{}
	case TypeCode:
		return CodeContent{Language: DefaultCodeLanguage}
	case TypeImage:
		return ImageContent{Alignment: AlignCenter}
	case TypeFile:
		return FileContent{}
	case TypeDivider:
		return DividerContent{}
	case TypeSpacer:
		return SpacerContent{Height: 40}
	default:
		return TextContent{Alignment: AlignLeft, BackgroundColor: "transparent"}
	}
}

// NewBlock creates a block of the given kind with a fresh id and the kind's
// default payload, ordered to append after the given sequence.
func NewBlock(kind BlockType, after []Block) Block {
	return Block{
		ID:      NewBlockID(),
		Type:    kind,
		Order:   len(after),
		Content: DefaultContent(kind),
	}
}

// Renumber rewrites Order as 0..n-1 following slice position.
func Renumber(blocks []Block) []Block {
	for i := range blocks {
		blocks[i].Order = i
	}
	return blocks
}

// MoveBlock swaps the target block with its neighbor in the given direction
// ("up" or "down"). No-op at either boundary. Order values are renumbered.
func MoveBlock(blocks []Block, id string, direction string) []Block {
	idx := indexOf(blocks, id)
	if idx < 0 {
		return blocks
	}

	switch direction {
	case "up":
		if idx == 0 {
			return blocks
		}
		blocks[idx-1], blocks[idx] = blocks[idx], blocks[idx-1]
	case "down":
		if idx == len(blocks)-1 {
			return blocks
		}
		blocks[idx], blocks[idx+1] = blocks[idx+1], blocks[idx]
	}

	return Renumber(blocks)
}

// DeleteBlock removes the block and renumbers the remainder contiguously.
func DeleteBlock(blocks []Block, id string) []Block {
	idx := indexOf(blocks, id)
	if idx < 0 {
		return blocks
	}
	blocks = append(blocks[:idx], blocks[idx+1:]...)
	return Renumber(blocks)
}

// InsertAfter inserts a new default block of the given kind immediately
// after position afterIndex. A negative or out-of-range index appends.
func InsertAfter(blocks []Block, kind BlockType, afterIndex int) []Block {
	nb := NewBlock(kind, blocks)
	if afterIndex < 0 || afterIndex >= len(blocks) {
		blocks = append(blocks, nb)
		return Renumber(blocks)
	}
	blocks = append(blocks, Block{})
	copy(blocks[afterIndex+2:], blocks[afterIndex+1:])
	blocks[afterIndex+1] = nb
	return Renumber(blocks)
}

// SortByOrder orders blocks for display. Stable insertion sort; documents
// are small and usually already sorted.
func SortByOrder(blocks []Block) []Block {
	for i := 1; i < len(blocks); i++ {
		for j := i; j > 0 && blocks[j-1].Order > blocks[j].Order; j-- {
			blocks[j-1], blocks[j] = blocks[j], blocks[j-1]
		}
	}
	return blocks
}

// ConformTable pads or truncates every row to headers length. Legacy data
// may violate the shape, so this runs defensively at every read.
func ConformTable(c TableContent) TableContent {
	if len(c.Headers) == 0 {
		c.Headers = []string{"Column 1", "Column 2"}
	}
	n := len(c.Headers)
	if len(c.Rows) == 0 {
		c.Rows = [][]string{make([]string, n)}
	}
	for i, row := range c.Rows {
		switch {
		case len(row) < n:
			padded := make([]string, n)
			copy(padded, row)
			c.Rows[i] = padded
		case len(row) > n:
			c.Rows[i] = row[:n]
		}
	}
	return c
}

// ClampSpacer bounds a spacer height to the allowed pixel range.
func ClampSpacer(height int) int {
	if height < 0 {
		return 0
	}
	if height > MaxSpacerHeight {
		return MaxSpacerHeight
	}
	return height
}

// ContentOrDefault guards render paths against malformed payloads: a nil or
// wrong-kind content degrades to the block kind's default instead of
// panicking mid-render.
func ContentOrDefault(b Block) Content {
	if b.Content == nil || b.Content.Kind() != b.Type {
		return DefaultContent(b.Type)
	}
	if tc, ok := b.Content.(TableContent); ok {
		return ConformTable(tc)
	}
	return b.Content
}

func indexOf(blocks []Block, id string) int {
	for i, b := range blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
