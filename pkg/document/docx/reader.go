package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/stateful/buatdocx/pkg/document"
)

// Paragraph is the structural view of a single w:p element.
type Paragraph struct {
	Style     string
	Alignment document.Alignment
	Bold      bool
	Border    bool
	Text      string
}

func (p Paragraph) IsHeading() bool {
	return p.Style == styleHeading1
}

// Block converts the paragraph back into a block. Emphasis is only
// reported for Text blocks, mirroring Export.
func (p Paragraph) Block() document.Block {
	b := document.Block{
		Content:   p.Text,
		Alignment: p.Alignment,
	}
	if p.IsHeading() {
		b.Kind = document.KindHeading
	} else {
		b.Emphasis = p.Bold
	}
	return b
}

type Document struct {
	Properties document.Properties
	Paragraphs []Paragraph
}

func (d *Document) Blocks() []document.Block {
	result := make([]document.Block, 0, len(d.Paragraphs))
	for _, p := range d.Paragraphs {
		result = append(result, p.Block())
	}
	return result
}

// Read parses a package produced by Export. Unknown parts and
// elements are ignored.
func Read(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open package")
	}

	var (
		doc      Document
		foundDoc bool
	)

	for _, f := range zr.File {
		switch f.Name {
		case partDocument:
			var raw readDocument
			if err := readPart(f, &raw); err != nil {
				return nil, err
			}
			for _, p := range raw.Body.Paragraphs {
				paragraph, err := convertParagraph(p)
				if err != nil {
					return nil, err
				}
				doc.Paragraphs = append(doc.Paragraphs, paragraph)
			}
			foundDoc = true
		case partCoreProperties:
			var raw readCoreProperties
			if err := readPart(f, &raw); err != nil {
				return nil, err
			}
			doc.Properties = document.Properties(raw)
		}
	}

	if !foundDoc {
		return nil, errors.Errorf("package has no %s", partDocument)
	}

	return &doc, nil
}

func readPart(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", f.Name)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", f.Name)
	}

	return errors.Wrapf(xml.Unmarshal(data, v), "failed to parse %s", f.Name)
}

func convertParagraph(p readParagraph) (Paragraph, error) {
	result := Paragraph{
		Border: p.Props.Border != nil,
	}

	if p.Props.Style != nil {
		result.Style = p.Props.Style.Val
	}

	if p.Props.Jc != nil {
		a, err := alignmentFromJc(p.Props.Jc.Val)
		if err != nil {
			return Paragraph{}, err
		}
		result.Alignment = a
	}

	var text strings.Builder
	for _, r := range p.Runs {
		if r.Props != nil && r.Props.Bold != nil && isOn(r.Props.Bold.Val) {
			result.Bold = true
		}
		for _, item := range r.Items {
			switch item.XMLName.Local {
			case "t":
				_, _ = text.WriteString(item.Text)
			case "br", "cr":
				_ = text.WriteByte('\n')
			case "tab":
				_ = text.WriteByte('\t')
			}
		}
	}
	result.Text = text.String()

	return result, nil
}

func alignmentFromJc(val string) (document.Alignment, error) {
	switch val {
	case "left", "start":
		return document.AlignLeft, nil
	case "center":
		return document.AlignCenter, nil
	case "right", "end":
		return document.AlignRight, nil
	case "both", "distribute":
		return document.AlignJustify, nil
	default:
		return document.AlignLeft, errors.Errorf("unsupported justification %q", val)
	}
}

func isOn(val string) bool {
	switch val {
	case "0", "false", "off":
		return false
	default:
		return true
	}
}
