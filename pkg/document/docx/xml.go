package docx

import (
	"encoding/xml"
)

const (
	nsWordprocessingML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	styleHeading1 = "Heading1"
)

// The types below are used only for writing. Element names carry the
// "w:" prefix literally; the namespace is declared once on the root.

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"w:p"`
	Section    xmlSection     `xml:"w:sectPr"`
}

type xmlParagraph struct {
	Props xmlParagraphProps `xml:"w:pPr"`
	Runs  []xmlRun          `xml:"w:r"`
}

type xmlParagraphProps struct {
	Style         *xmlVal    `xml:"w:pStyle"`
	Border        *xmlBorder `xml:"w:pBdr"`
	Justification xmlVal     `xml:"w:jc"`
}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlBorder struct {
	Bottom xmlBorderLine `xml:"w:bottom"`
}

type xmlBorderLine struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type xmlRun struct {
	Props *xmlRunProps `xml:"w:rPr"`
	// Items are w:t and w:br elements in document order.
	Items []xmlRunItem
}

type xmlRunProps struct {
	Bold        *struct{} `xml:"w:b"`
	Size        *xmlVal   `xml:"w:sz"`
	SizeComplex *xmlVal   `xml:"w:szCs"`
}

type xmlRunItem struct {
	XMLName xml.Name
	Space   string `xml:"xml:space,attr,omitempty"`
	Text    string `xml:",chardata"`
}

type xmlSection struct {
	PageSize    xmlPageSize    `xml:"w:pgSz"`
	PageMargins xmlPageMargins `xml:"w:pgMar"`
}

// A4 in twentieths of a point.
type xmlPageSize struct {
	Width  int `xml:"w:w,attr"`
	Height int `xml:"w:h,attr"`
}

type xmlPageMargins struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

func textItem(s string) xmlRunItem {
	return xmlRunItem{
		XMLName: xml.Name{Local: "w:t"},
		Space:   "preserve",
		Text:    s,
	}
}

func breakItem() xmlRunItem {
	return xmlRunItem{XMLName: xml.Name{Local: "w:br"}}
}

func tabItem() xmlRunItem {
	return xmlRunItem{XMLName: xml.Name{Local: "w:tab"}}
}

type xmlCoreProperties struct {
	XMLName     xml.Name `xml:"cp:coreProperties"`
	XmlnsCP     string   `xml:"xmlns:cp,attr"`
	XmlnsDC     string   `xml:"xmlns:dc,attr"`
	Title       string   `xml:"dc:title,omitempty"`
	Creator     string   `xml:"dc:creator,omitempty"`
	Description string   `xml:"dc:description,omitempty"`
}

type xmlAppProperties struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	Application string   `xml:"Application"`
	AppVersion  string   `xml:"AppVersion,omitempty"`
}

// Read-side types match local names in any namespace.

type readDocument struct {
	Body struct {
		Paragraphs []readParagraph `xml:"p"`
	} `xml:"body"`
}

type readParagraph struct {
	Props struct {
		Style *struct {
			Val string `xml:"val,attr"`
		} `xml:"pStyle"`
		Border *struct{} `xml:"pBdr"`
		Jc     *struct {
			Val string `xml:"val,attr"`
		} `xml:"jc"`
	} `xml:"pPr"`
	Runs []readRun `xml:"r"`
}

type readRun struct {
	Props *struct {
		Bold *struct {
			Val string `xml:"val,attr"`
		} `xml:"b"`
	} `xml:"rPr"`
	Items []readRunItem `xml:",any"`
}

type readRunItem struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

type readCoreProperties struct {
	Title       string `xml:"title"`
	Creator     string `xml:"creator"`
	Description string `xml:"description"`
}
