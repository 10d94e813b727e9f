package docx

import "strings"

// Marshal сериализует документ обратно в word/document.xml. Сериализация
// ручная: encoding/xml переписывает объявления пространств имён, что
// ломает дословное восстановление сырых фрагментов.
func Marshal(doc *DocumentXML) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n")
	b.WriteString("<w:document")
	b.WriteString(doc.RootAttrs)
	b.WriteString("><w:body>")
	writeBlocks(&b, doc.Body)
	b.WriteString(doc.SectPr)
	b.WriteString("</w:body></w:document>")
	return []byte(b.String())
}

func writeBlocks(b *strings.Builder, blocks []BlockXML) {
	for _, block := range blocks {
		switch {
		case block.Para != nil:
			writeParagraph(b, block.Para)
		case block.Table != nil:
			writeTable(b, block.Table)
		default:
			b.WriteString(block.Raw)
		}
	}
}

func writeParagraph(b *strings.Builder, p *ParagraphXML) {
	b.WriteString("<w:p")
	b.WriteString(p.Attrs)
	b.WriteString(">")
	b.WriteString(p.Props)
	for _, item := range p.Items {
		if item.Run != nil {
			writeRun(b, item.Run)
			continue
		}
		b.WriteString(item.Raw)
	}
	b.WriteString("</w:p>")
}

func writeRun(b *strings.Builder, r *RunXML) {
	b.WriteString("<w:r")
	b.WriteString(r.Attrs)
	b.WriteString(">")
	if len(r.Props) > 0 {
		b.WriteString("<w:rPr>")
		for _, p := range r.Props {
			b.WriteString(p.Raw)
		}
		b.WriteString("</w:rPr>")
	}
	for _, c := range r.Children {
		if c.Text != nil {
			// Опустошённые текстовые элементы не переиздаются.
			if c.Text.Value == "" {
				continue
			}
			b.WriteString(`<w:t xml:space="preserve">`)
			b.WriteString(escapeXML(c.Text.Value))
			b.WriteString("</w:t>")
			continue
		}
		b.WriteString(c.Raw)
	}
	b.WriteString("</w:r>")
}

func writeTable(b *strings.Builder, t *TableXML) {
	b.WriteString("<w:tbl")
	b.WriteString(t.Attrs)
	b.WriteString(">")
	b.WriteString(t.Lead)
	for _, row := range t.rows {
		b.WriteString("<w:tr")
		b.WriteString(row.Attrs)
		b.WriteString(">")
		b.WriteString(row.Lead)
		for _, cell := range row.cells {
			b.WriteString("<w:tc")
			b.WriteString(cell.Attrs)
			b.WriteString(">")
			b.WriteString(cell.Lead)
			writeBlocks(b, cell.Blocks)
			b.WriteString("</w:tc>")
		}
		b.WriteString(row.Trail)
		b.WriteString("</w:tr>")
	}
	b.WriteString(t.Trail)
	b.WriteString("</w:tbl>")
}
