package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// nsPrefix - соответствие URI пространств имён WordprocessingML их
// общепринятым префиксам. Декодер encoding/xml отдаёт имена с URI вместо
// префикса; при дословном восстановлении сырых фрагментов префиксы
// возвращаются по этой таблице.
var nsPrefix = map[string]string{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":           "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships":    "r",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":            "mc",
	"http://schemas.openxmlformats.org/officeDocument/2006/math":             "m",
	"http://www.w3.org/XML/1998/namespace":                                   "xml",
	"urn:schemas-microsoft-com:vml":                                          "v",
	"urn:schemas-microsoft-com:office:office":                                "o",
	"http://schemas.microsoft.com/office/word/2010/wordml":                   "w14",
	"http://schemas.microsoft.com/office/word/2012/wordml":                   "w15",
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	if n.Space == "xmlns" {
		return "xmlns:" + n.Local
	}
	if p, ok := nsPrefix[n.Space]; ok {
		return p + ":" + n.Local
	}
	return n.Local
}

func escapeXML(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func writeStart(b *strings.Builder, start xml.StartElement) {
	b.WriteString("<")
	b.WriteString(qname(start.Name))
	for _, a := range start.Attr {
		b.WriteString(" ")
		b.WriteString(qname(a.Name))
		b.WriteString(`="`)
		b.WriteString(escapeXML(a.Value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
}

func attrsString(start xml.StartElement) string {
	var b strings.Builder
	for _, a := range start.Attr {
		b.WriteString(" ")
		b.WriteString(qname(a.Name))
		b.WriteString(`="`)
		b.WriteString(escapeXML(a.Value))
		b.WriteString(`"`)
	}
	return b.String()
}

// rawCapture дословно пересобирает элемент start вместе со всем его
// содержимым, продвигая декодер до закрывающего тега.
func rawCapture(d *xml.Decoder, start xml.StartElement) (string, error) {
	var b strings.Builder
	writeStart(&b, start)
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			writeStart(&b, t)
			depth++
		case xml.EndElement:
			b.WriteString("</")
			b.WriteString(qname(t.Name))
			b.WriteString(">")
			depth--
		case xml.CharData:
			b.WriteString(escapeXML(string(t)))
		}
	}
	return b.String(), nil
}

// Parse разбирает содержимое word/document.xml.
func Parse(data []byte) (*DocumentXML, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	doc := &DocumentXML{}

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("разбор document.xml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "document":
			doc.RootAttrs = attrsString(start)
		case "body":
			if err := parseBody(d, doc); err != nil {
				return nil, fmt.Errorf("разбор тела документа: %w", err)
			}
		}
	}

	return doc, nil
}

func parseBody(d *xml.Decoder, doc *DocumentXML) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				p, err := parseParagraph(d, t)
				if err != nil {
					return err
				}
				doc.Body = append(doc.Body, BlockXML{Para: p})
			case "tbl":
				tbl, err := parseTable(d, t)
				if err != nil {
					return err
				}
				doc.Body = append(doc.Body, BlockXML{Table: tbl})
			case "sectPr":
				raw, err := rawCapture(d, t)
				if err != nil {
					return err
				}
				doc.SectPr = raw
			default:
				raw, err := rawCapture(d, t)
				if err != nil {
					return err
				}
				doc.Body = append(doc.Body, BlockXML{Raw: raw})
			}
		case xml.EndElement:
			if t.Name.Local == "body" {
				return nil
			}
		}
	}
}

func parseParagraph(d *xml.Decoder, start xml.StartElement) (*ParagraphXML, error) {
	p := &ParagraphXML{Attrs: attrsString(start)}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				raw, err := rawCapture(d, t)
				if err != nil {
					return nil, err
				}
				p.Props = raw
			case "r":
				run, err := parseRun(d, t)
				if err != nil {
					return nil, err
				}
				p.Items = append(p.Items, ParaItemXML{Run: run})
			default:
				raw, err := rawCapture(d, t)
				if err != nil {
					return nil, err
				}
				p.Items = append(p.Items, ParaItemXML{Raw: raw})
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				return p, nil
			}
		}
	}
}

func parseRun(d *xml.Decoder, start xml.StartElement) (*RunXML, error) {
	run := &RunXML{Attrs: attrsString(start)}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := parseRunProps(d, run); err != nil {
					return nil, err
				}
			case "t":
				text, err := parseText(d)
				if err != nil {
					return nil, err
				}
				run.Children = append(run.Children, RunChildXML{Text: text})
			default:
				raw, err := rawCapture(d, t)
				if err != nil {
					return nil, err
				}
				run.Children = append(run.Children, RunChildXML{Raw: raw})
			}
		case xml.EndElement:
			if t.Name.Local == "r" {
				return run, nil
			}
		}
	}
}

func parseRunProps(d *xml.Decoder, run *RunXML) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			raw, err := rawCapture(d, t)
			if err != nil {
				return err
			}
			run.Props = append(run.Props, RunPropXML{Name: t.Name.Local, Raw: raw})
		case xml.EndElement:
			if t.Name.Local == "rPr" {
				return nil
			}
		}
	}
}

func parseText(d *xml.Decoder) (*TextXML, error) {
	text := &TextXML{}
	var b strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			if t.Name.Local == "t" {
				text.Value = b.String()
				return text, nil
			}
		}
	}
}

func parseTable(d *xml.Decoder, start xml.StartElement) (*TableXML, error) {
	tbl := &TableXML{Attrs: attrsString(start)}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tr" {
				row, err := parseRow(d, t)
				if err != nil {
					return nil, err
				}
				tbl.rows = append(tbl.rows, row)
				continue
			}
			raw, err := rawCapture(d, t)
			if err != nil {
				return nil, err
			}
			if len(tbl.rows) == 0 {
				tbl.Lead += raw
			} else {
				tbl.Trail += raw
			}
		case xml.EndElement:
			if t.Name.Local == "tbl" {
				return tbl, nil
			}
		}
	}
}

func parseRow(d *xml.Decoder, start xml.StartElement) (*RowXML, error) {
	row := &RowXML{Attrs: attrsString(start)}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tc" {
				cell, err := parseCell(d, t)
				if err != nil {
					return nil, err
				}
				row.cells = append(row.cells, cell)
				continue
			}
			raw, err := rawCapture(d, t)
			if err != nil {
				return nil, err
			}
			if len(row.cells) == 0 {
				row.Lead += raw
			} else {
				row.Trail += raw
			}
		case xml.EndElement:
			if t.Name.Local == "tr" {
				return row, nil
			}
		}
	}
}

func parseCell(d *xml.Decoder, start xml.StartElement) (*CellXML, error) {
	cell := &CellXML{Attrs: attrsString(start)}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tcPr":
				raw, err := rawCapture(d, t)
				if err != nil {
					return nil, err
				}
				cell.Lead += raw
			case "p":
				p, err := parseParagraph(d, t)
				if err != nil {
					return nil, err
				}
				cell.Blocks = append(cell.Blocks, BlockXML{Para: p})
			case "tbl":
				nested, err := parseTable(d, t)
				if err != nil {
					return nil, err
				}
				cell.Blocks = append(cell.Blocks, BlockXML{Table: nested})
			default:
				raw, err := rawCapture(d, t)
				if err != nil {
					return nil, err
				}
				cell.Blocks = append(cell.Blocks, BlockXML{Raw: raw})
			}
		case xml.EndElement:
			if t.Name.Local == "tc" {
				return cell, nil
			}
		}
	}
}
