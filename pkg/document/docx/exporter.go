// Package docx serializes a block sequence into a WordprocessingML
// (.docx) package and reads such packages back into paragraphs.
//
// Export is deterministic: the same blocks and options always produce
// the same bytes. Zip entries carry a fixed timestamp and the package
// contains no generated identifiers or dates.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/buatdocx/internal/version"
	"github.com/stateful/buatdocx/pkg/document"
)

const (
	// MIMEType is the media type of the exported artifact.
	MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// DefaultTextSize is the size of text runs in half-points (12pt).
	DefaultTextSize = 24

	applicationName = "buatdocx"
)

// zipEpoch is the earliest time representable in a zip header.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

var jcValues = map[document.Alignment]string{
	document.AlignLeft:    "left",
	document.AlignCenter:  "center",
	document.AlignRight:   "right",
	document.AlignJustify: "both",
}

type Option func(*Exporter)

func WithProperties(p document.Properties) Option {
	return func(e *Exporter) {
		e.properties = p
	}
}

// WithTextSize sets the size of Text block runs in half-points.
func WithTextSize(halfPoints int) Option {
	return func(e *Exporter) {
		e.textSize = halfPoints
	}
}

// WithThematicBreak draws a bottom border under every Text paragraph.
func WithThematicBreak(enabled bool) Option {
	return func(e *Exporter) {
		e.thematicBreak = enabled
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// Exporter holds export options only. It keeps no state between calls.
type Exporter struct {
	properties    document.Properties
	textSize      int
	thematicBreak bool
	logger        *zap.Logger
}

func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		textSize: DefaultTextSize,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = zap.NewNop()
	}

	return e
}

// With returns a copy of e with opts applied on top of its options.
func (e *Exporter) With(opts ...Option) *Exporter {
	c := *e
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

func (e *Exporter) Properties() document.Properties {
	return e.properties
}

// Export is a shorthand for NewExporter(opts...).Export(blocks).
func Export(blocks []document.Block, opts ...Option) ([]byte, error) {
	return NewExporter(opts...).Export(blocks)
}

// Export maps every block to exactly one paragraph, in order, and returns
// the zipped package. blocks is not modified.
func (e *Exporter) Export(blocks []document.Block) ([]byte, error) {
	if e.textSize <= 0 {
		return nil, errors.Errorf("invalid text size: %d", e.textSize)
	}

	body, err := e.documentPart(blocks)
	if err != nil {
		return nil, err
	}

	core, err := marshalPart(xmlCoreProperties{
		XmlnsCP:     nsCoreProperties,
		XmlnsDC:     nsDublinCore,
		Title:       e.properties.Title,
		Creator:     e.properties.Creator,
		Description: e.properties.Description,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to marshal core properties")
	}

	app, err := marshalPart(xmlAppProperties{
		Xmlns:       nsExtendedProperties,
		Application: applicationName,
		AppVersion:  version.BaseVersion(),
	})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to marshal app properties")
	}

	parts := []struct {
		name string
		data []byte
	}{
		// [Content_Types].xml must come first for content sniffers.
		{partContentTypes, []byte(contentTypesXML)},
		{partRootRels, []byte(rootRelsXML)},
		{partDocument, body},
		{partStyles, []byte(stylesXML)},
		{partDocumentRels, []byte(documentRelsXML)},
		{partCoreProperties, core},
		{partAppProperties, app},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: zipEpoch,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create %s", p.name)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, errors.Wrapf(err, "failed to write %s", p.name)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize package")
	}

	e.logger.Debug("exported document", zap.Int("blocks", len(blocks)), zap.Int("size", buf.Len()))

	return buf.Bytes(), nil
}

func (e *Exporter) documentPart(blocks []document.Block) ([]byte, error) {
	doc := xmlDocument{
		XmlnsW: nsWordprocessingML,
		XmlnsR: nsRelationships,
		Body: xmlBody{
			Paragraphs: make([]xmlParagraph, 0, len(blocks)),
			Section: xmlSection{
				PageSize: xmlPageSize{Width: 11906, Height: 16838},
				PageMargins: xmlPageMargins{
					Top: 1440, Right: 1440, Bottom: 1440, Left: 1440,
					Header: 708, Footer: 708,
				},
			},
		},
	}

	for i, b := range blocks {
		p, err := e.paragraph(b)
		if err != nil {
			return nil, errors.WithMessagef(err, "block %d", i)
		}
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, p)
	}

	data, err := marshalPart(doc)
	return data, errors.WithMessage(err, "failed to marshal document")
}

func (e *Exporter) paragraph(b document.Block) (xmlParagraph, error) {
	jc, ok := jcValues[b.Alignment]
	if !ok {
		return xmlParagraph{}, errors.Errorf("unsupported alignment %d", int(b.Alignment))
	}

	p := xmlParagraph{
		Props: xmlParagraphProps{Justification: xmlVal{Val: jc}},
	}
	run := xmlRun{Items: runItems(b.Content)}

	switch b.Kind {
	case document.KindHeading:
		p.Props.Style = &xmlVal{Val: styleHeading1}
	case document.KindText:
		size := &xmlVal{Val: strconv.Itoa(e.textSize)}
		run.Props = &xmlRunProps{Size: size, SizeComplex: size}
		if b.Emphasis {
			run.Props.Bold = &struct{}{}
		}
		if e.thematicBreak {
			p.Props.Border = &xmlBorder{
				Bottom: xmlBorderLine{Val: "single", Size: 6, Space: 1, Color: "auto"},
			}
		}
	default:
		return xmlParagraph{}, errors.Errorf("unsupported block kind %d", int(b.Kind))
	}

	p.Runs = []xmlRun{run}

	return p, nil
}

// runItems splits content on line breaks and tabs. Empty content yields
// a single empty text element so the paragraph is still present.
// Characters XML cannot carry are dropped.
func runItems(content string) []xmlRunItem {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.Map(xmlChar, content)

	var items []xmlRunItem
	for i, line := range strings.Split(content, "\n") {
		if i > 0 {
			items = append(items, breakItem())
		}
		for j, segment := range strings.Split(line, "\t") {
			if j > 0 {
				items = append(items, tabItem())
			}
			if segment != "" || j == 0 {
				items = append(items, textItem(segment))
			}
		}
	}
	return items
}

// xmlChar maps r to -1 when it is outside the XML 1.0 Char production.
func xmlChar(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return r
	case r < 0x20, r == 0xFFFE, r == 0xFFFF:
		return -1
	case r >= 0xD800 && r <= 0xDFFF:
		return -1
	default:
		return r
	}
}

func marshalPart(v any) ([]byte, error) {
	var buf bytes.Buffer
	_, _ = buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf.Bytes(), nil
}
