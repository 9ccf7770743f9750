// Package htmldoc provides HTML document parsing into the normalized
// comparison model. Headings, paragraphs and list items become text
// blocks; tables become table blocks.
package htmldoc

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/tsawler/redline/model"
)

// Open parses an HTML file into a normalized document.
func Open(filename string) (*model.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Parse(data)
}

// Parse parses HTML bytes into a normalized document. The byte stream
// is decoded to UTF-8 first, honoring meta charset declarations.
func Parse(data []byte) (*model.Document, error) {
	encoding, _, _ := charset.DetermineEncoding(data, "text/html")
	decoded := transform.NewReader(bytes.NewReader(data), encoding.NewDecoder())

	root, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := model.NewDocument("HTML")
	doc.Metadata.PageCount = 1

	body := findElement(root, "body")
	if body == nil {
		body = root
	}
	traverse(body, doc)

	return doc, nil
}

// traverse walks the DOM, emitting blocks for content elements.
func traverse(n *html.Node, doc *model.Document) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if text := textContent(n); text != "" {
				doc.AddBlock(&model.TextBlock{
					Text:       text,
					Formatting: model.FormattingAttributes{Bold: model.Bool(true)},
				})
			}
			return

		case "p":
			if text := textContent(n); text != "" {
				doc.AddBlock(&model.TextBlock{
					Text:       text,
					Formatting: inlineFormatting(n),
				})
			}
			return

		case "li":
			if text := directTextContent(n); text != "" {
				doc.AddBlock(&model.TextBlock{Text: text})
			}
			// Nested lists still produce their own items.
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
					traverse(c, doc)
				}
			}
			return

		case "table":
			if tbl := parseTable(n); tbl.RowCount() > 0 {
				doc.AddBlock(tbl)
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		traverse(c, doc)
	}
}

// inlineFormatting detects styling tags wrapping a paragraph's entire
// text. Partial styling inside a paragraph is not attributed.
func inlineFormatting(n *html.Node) model.FormattingAttributes {
	var attrs model.FormattingAttributes
	full := textContent(n)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || textContent(c) != full {
			continue
		}
		switch c.Data {
		case "b", "strong":
			attrs.Bold = model.Bool(true)
		case "i", "em":
			attrs.Italic = model.Bool(true)
		case "u":
			attrs.Underline = model.Bool(true)
		}
	}
	return attrs
}

// parseTable extracts rows from thead, tbody and direct tr children.
// Header cells are marked bold.
func parseTable(tableNode *html.Node) *model.TableBlock {
	tbl := &model.TableBlock{}

	var addRows func(n *html.Node, header bool)
	addRows = func(n *html.Node, header bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead":
				addRows(c, true)
			case "tbody", "tfoot":
				addRows(c, false)
			case "tr":
				if row := parseRow(c, header); len(row) > 0 {
					tbl.Rows = append(tbl.Rows, row)
				}
			}
		}
	}
	addRows(tableNode, false)

	return tbl
}

func parseRow(tr *html.Node, header bool) []model.Cell {
	var row []model.Cell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		cell := model.Cell{Text: textContent(c)}
		if header || c.Data == "th" {
			cell.Formatting.Bold = model.Bool(true)
		}
		row = append(row, cell)
	}
	return row
}

// shouldSkipElement reports elements excluded from content extraction.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// textContent extracts all text from a node and its descendants, with
// whitespace collapsed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			sb.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// directTextContent extracts a node's text excluding nested block
// elements, so a list item's text does not swallow its sublists.
func directTextContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			sb.WriteString(c.Data)
		case c.Type == html.ElementNode:
			switch c.Data {
			case "ul", "ol", "div", "p", "table", "blockquote":
			default:
				sb.WriteString(textContent(c))
				sb.WriteString(" ")
			}
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
