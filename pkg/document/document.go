// Package document defines the block model of a composed document
// and parses markdown or JSON sources into blocks.
package document

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/stateful/buatdocx/internal/ulid"
)

// Source is a parsed input: ordered blocks plus document properties.
type Source struct {
	Properties  Properties   `json:"properties"`
	Blocks      []Block      `json:"blocks"`
	Frontmatter *Frontmatter `json:"-"`
}

var markdownParser = goldmark.New(
	goldmark.WithParserOptions(parser.WithHeadingAttribute()),
).Parser()

// ParseMarkdown converts markdown into blocks:
//   - headings of any level become Heading blocks; an {align=...}
//     attribute sets their alignment,
//   - paragraphs become Text blocks, emphasized when the whole
//     paragraph is strong (**...**),
//   - every list item becomes a Text block prefixed with its marker,
//   - code blocks become Text blocks with their lines preserved,
//   - block quotes contribute their inner blocks.
//
// Thematic breaks and raw HTML are dropped. A YAML or TOML
// frontmatter sets the document properties.
func ParseMarkdown(source []byte) (*Source, error) {
	raw, format, content := splitFrontmatter(source)

	result := &Source{}

	if format != "" {
		fm, err := parseFrontmatter(raw, format)
		if err != nil {
			return nil, err
		}
		result.Frontmatter = fm
		result.Properties = fm.Properties
	}

	root := markdownParser.Parse(text.NewReader(content))

	blocks, err := convertNodes(root, content)
	if err != nil {
		return nil, err
	}
	result.Blocks = blocks

	return result, nil
}

func convertNodes(parent ast.Node, source []byte) ([]Block, error) {
	var result []Block

	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			block := Block{Kind: KindHeading, Content: inlineText(n, source)}
			if v, ok := n.AttributeString("align"); ok {
				align, err := attributeAlignment(v)
				if err != nil {
					return nil, err
				}
				block.Alignment = align
			}
			result = append(result, block)

		case *ast.Paragraph, *ast.TextBlock:
			if strong, ok := soleStrong(n); ok {
				result = append(result, Block{Content: inlineText(strong, source), Emphasis: true})
			} else {
				result = append(result, Block{Content: inlineText(n, source)})
			}

		case *ast.List:
			result = append(result, listBlocks(n, source, "")...)

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			result = append(result, Block{Content: codeText(n, source)})

		case *ast.Blockquote:
			inner, err := convertNodes(n, source)
			if err != nil {
				return nil, err
			}
			result = append(result, inner...)

		case *ast.ThematicBreak, *ast.HTMLBlock:
			// Not representable as a block.
		}
	}

	return result, nil
}

func attributeAlignment(v any) (Alignment, error) {
	var s string
	switch value := v.(type) {
	case []byte:
		s = string(value)
	case string:
		s = value
	default:
		return AlignLeft, errors.Errorf("invalid align attribute: %v", v)
	}
	return ParseAlignment(s)
}

// soleStrong returns the strong emphasis node if it is the only child of n.
func soleStrong(n ast.Node) (ast.Node, bool) {
	if n.ChildCount() != 1 {
		return nil, false
	}
	emphasis, ok := n.FirstChild().(*ast.Emphasis)
	if !ok || emphasis.Level != 2 {
		return nil, false
	}
	return emphasis, true
}

func listBlocks(list *ast.List, source []byte, indent string) []Block {
	var result []Block

	number := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if list.IsOrdered() {
			marker = strconv.Itoa(number) + string(list.Marker) + " "
			number++
		}

		var (
			parts  []string
			nested []Block
		)
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.List:
				nested = append(nested, listBlocks(c, source, indent+"  ")...)
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				parts = append(parts, codeText(c, source))
			default:
				parts = append(parts, inlineText(c, source))
			}
		}

		result = append(result, Block{Content: indent + marker + strings.Join(parts, "\n")})
		result = append(result, nested...)
	}

	return result
}

func codeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		_, _ = buf.Write(segment.Value(source))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	writeInline(&b, n, source)
	return strings.TrimSpace(b.String())
}

func writeInline(b *strings.Builder, n ast.Node, source []byte) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			_, _ = b.Write(c.Segment.Value(source))
			if c.HardLineBreak() {
				_ = b.WriteByte('\n')
			} else if c.SoftLineBreak() {
				_ = b.WriteByte(' ')
			}
		case *ast.String:
			_, _ = b.Write(c.Value)
		case *ast.AutoLink:
			_, _ = b.Write(c.URL(source))
		case *ast.RawHTML:
		default:
			writeInline(b, c, source)
		}
	}
}

// ParseJSON accepts either an array of blocks or an object with
// "properties" and "blocks". Block IDs are optional but must be ULIDs.
func ParseJSON(data []byte) (*Source, error) {
	trimmed := bytes.TrimSpace(data)

	var result Source

	if bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &result.Blocks); err != nil {
			return nil, errors.Wrap(err, "failed to decode blocks")
		}
	} else if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, errors.Wrap(err, "failed to decode document")
	}

	for i, b := range result.Blocks {
		if b.ID != "" && !ulid.ValidID(b.ID) {
			return nil, errors.Errorf("block %d: invalid id %q", i, b.ID)
		}
	}

	return &result, nil
}
