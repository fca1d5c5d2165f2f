package document

import (
	"github.com/pkg/errors"

	"github.com/stateful/buatdocx/internal/ulid"
)

type Kind int

const (
	KindText Kind = iota
	KindHeading
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindHeading:
		return "heading"
	default:
		return "unknown"
	}
}

func (k Kind) Valid() bool {
	return k == KindText || k == KindHeading
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Errorf("invalid block kind: %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "text", "":
		*k = KindText
	case "heading":
		*k = KindHeading
	default:
		return errors.Errorf("unknown block kind %q", text)
	}
	return nil
}

// Alignment is a paragraph-level text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// Alignments lists every alignment in toolbar order.
var Alignments = []Alignment{AlignLeft, AlignCenter, AlignRight, AlignJustify}

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "unknown"
	}
}

func (a Alignment) Valid() bool {
	return a >= AlignLeft && a <= AlignJustify
}

func (a Alignment) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, errors.Errorf("invalid alignment: %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText accepts "both" as a synonym of "justify".
func (a *Alignment) UnmarshalText(text []byte) error {
	v, err := ParseAlignment(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "left", "":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	case "justify", "both":
		return AlignJustify, nil
	default:
		return AlignLeft, errors.Errorf("unknown alignment %q", s)
	}
}

// Block is a single styled unit of document content.
// Its position is implicit and defined by the owning sequence.
type Block struct {
	// ID is a render key only. It is not exported and does not drive focus.
	ID        string    `json:"id,omitempty"`
	Content   string    `json:"content"`
	Kind      Kind      `json:"kind"`
	Emphasis  bool      `json:"emphasis,omitempty"`
	Alignment Alignment `json:"alignment"`
}

// NewBlock returns a default block: empty Text, not emphasized, left-aligned.
func NewBlock() Block {
	return Block{ID: ulid.GenerateID()}
}

// Equal compares blocks ignoring their IDs.
func (b Block) Equal(other Block) bool {
	return b.Content == other.Content &&
		b.Kind == other.Kind &&
		b.Emphasis == other.Emphasis &&
		b.Alignment == other.Alignment
}

// IsDefault reports whether b has the default style and no content.
func (b Block) IsDefault() bool {
	return b.Equal(Block{})
}

// Patch is a partial update of a Block. Nil fields are left untouched.
type Patch struct {
	Content   *string
	Kind      *Kind
	Emphasis  *bool
	Alignment *Alignment
}

func (p Patch) WithContent(content string) Patch {
	p.Content = &content
	return p
}

func (p Patch) WithKind(kind Kind) Patch {
	p.Kind = &kind
	return p
}

func (p Patch) WithEmphasis(emphasis bool) Patch {
	p.Emphasis = &emphasis
	return p
}

func (p Patch) WithAlignment(alignment Alignment) Patch {
	p.Alignment = &alignment
	return p
}

func (p Patch) IsEmpty() bool {
	return p.Content == nil && p.Kind == nil && p.Emphasis == nil && p.Alignment == nil
}

func (p Patch) Apply(b Block) Block {
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.Kind != nil {
		b.Kind = *p.Kind
	}
	if p.Emphasis != nil {
		b.Emphasis = *p.Emphasis
	}
	if p.Alignment != nil {
		b.Alignment = *p.Alignment
	}
	return b
}
