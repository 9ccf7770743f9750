package docx

import "encoding/xml"

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML holds the document body content in original order.
type bodyXML struct {
	Elements []bodyElement
}

// bodyElement is one top-level body element: a paragraph or a table.
type bodyElement struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// UnmarshalXML decodes the body while preserving the interleaving of
// paragraphs and tables, which xml struct tags alone would lose.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Paragraph: &p})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Table: &tbl})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style styleRefXML `xml:"pStyle"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	Properties runPropsXML `xml:"rPr"`
	Text       []textXML   `xml:"t"`
	Tabs       []tabXML    `xml:"tab"`
	Breaks     []breakXML  `xml:"br"`
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold      toggleXML    `xml:"b"`
	Italic    toggleXML    `xml:"i"`
	Underline underlineXML `xml:"u"`
	Fonts     fontsXML     `xml:"rFonts"`
	Size      valXML       `xml:"sz"`
	Color     valXML       `xml:"color"`
}

// toggleXML represents an OOXML toggle property such as <w:b/>.
// Presence without a val attribute means enabled.
type toggleXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// present reports whether the element appeared at all.
func (t toggleXML) present() bool { return t.XMLName.Local != "" }

// enabled reports the toggle state; only meaningful when present.
func (t toggleXML) enabled() bool { return t.Val != "false" && t.Val != "0" }

// underlineXML represents <w:u>, whose val names an underline style.
type underlineXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

func (u underlineXML) present() bool { return u.XMLName.Local != "" }
func (u underlineXML) enabled() bool { return u.Val != "" && u.Val != "none" }

// fontsXML represents <w:rFonts>.
type fontsXML struct {
	ASCII string `xml:"ascii,attr"`
}

// valXML represents a simple element with a val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}

// textXML represents a text element (<w:t>).
type textXML struct {
	Space string `xml:"space,attr"`
	Value string `xml:",chardata"`
}

// tabXML represents a tab character (<w:tab/>).
type tabXML struct{}

// breakXML represents a break (<w:br/>).
type breakXML struct {
	Type string `xml:"type,attr"`
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

// tableCellXML represents a table cell (<w:tc>).
type tableCellXML struct {
	Properties tableCellPropsXML `xml:"tcPr"`
	Paragraphs []paragraphXML    `xml:"p"`
}

// tableCellPropsXML represents cell properties (<w:tcPr>).
type tableCellPropsXML struct {
	Shading shadingXML `xml:"shd"`
	Borders bordersXML `xml:"tcBorders"`
}

// shadingXML represents cell shading (<w:shd>).
type shadingXML struct {
	Fill string `xml:"fill,attr"`
}

// bordersXML represents cell borders (<w:tcBorders>).
type bordersXML struct {
	Top valXML `xml:"top"`
}
