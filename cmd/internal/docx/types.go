package docx

import (
	"strings"

	"github.com/zhukovvlad/docfill-go/cmd/internal/filler"
)

// Пакет docx - адаптер контейнера WordprocessingML. Он разбирает
// word/document.xml в модель "параграфы и раны плюс нетронутый сырой XML
// всего остального" и реализует интерфейсы движка заполнения. Всё, что
// движку не нужно (свойства параграфов, секции, рисунки, закладки),
// переносится в выходной документ дословно.

// DocumentXML - разобранное тело document.xml.
type DocumentXML struct {
	// RootAttrs - атрибуты корневого <w:document> (включая объявления
	// пространств имён), сериализованные дословно.
	RootAttrs string
	Body      []BlockXML
	// SectPr - сырые свойства секции в конце тела.
	SectPr string
}

// BlockXML - элемент тела: параграф, таблица или неизвестный элемент,
// сохранённый дословно. Заполнено ровно одно поле.
type BlockXML struct {
	Para  *ParagraphXML
	Table *TableXML
	Raw   string
}

// ParagraphXML - параграф: сырые свойства плюс упорядоченные элементы.
type ParagraphXML struct {
	Attrs string
	// Props - сырой <w:pPr>.
	Props string
	Items []ParaItemXML
}

// ParaItemXML - дочерний элемент параграфа: ран либо сырой XML
// (гиперссылки, закладки, поля).
type ParaItemXML struct {
	Run *RunXML
	Raw string
}

// RunXML - ран: разобранные свойства и дети. Текстовые дети разбираются,
// остальные (tab, br, drawing) сохраняются дословно на своих местах.
type RunXML struct {
	Attrs    string
	Props    []RunPropXML
	Children []RunChildXML
}

// RunPropXML - одно свойство из <w:rPr>: локальное имя плюс дословная
// сериализация.
type RunPropXML struct {
	Name string
	Raw  string
}

// RunChildXML - дочерний элемент рана. Text != nil для <w:t>.
type RunChildXML struct {
	Text *TextXML
	Raw  string
}

// TextXML - содержимое одного <w:t>.
type TextXML struct {
	Value string
}

// TableXML - таблица. Lead - сырой XML до первой строки (tblPr, tblGrid),
// Trail - после последней.
type TableXML struct {
	Attrs string
	Lead  string
	rows  []*RowXML
	Trail string
}

// RowXML - строка таблицы.
type RowXML struct {
	Attrs string
	Lead  string
	cells []*CellXML
	Trail string
}

// CellXML - ячейка: сырые свойства плюс блоки (параграфы и вложенные
// таблицы).
type CellXML struct {
	Attrs  string
	Lead   string
	Blocks []BlockXML
}

// --- Реализация интерфейсов движка ---

// Text возвращает объединённый текст всех <w:t> рана.
func (r *RunXML) Text() string {
	var b strings.Builder
	for _, c := range r.Children {
		if c.Text != nil {
			b.WriteString(c.Text.Value)
		}
	}
	return b.String()
}

// SetText кладёт новый текст в первый текстовый дочерний элемент и
// опустошает остальные; нетекстовые дети остаются на местах. Ран без
// текстовых детей при непустом тексте получает новый <w:t>.
func (r *RunXML) SetText(text string) {
	first := -1
	for i := range r.Children {
		if r.Children[i].Text == nil {
			continue
		}
		if first == -1 {
			first = i
		} else {
			r.Children[i].Text.Value = ""
		}
	}
	if first >= 0 {
		r.Children[first].Text.Value = text
		return
	}
	if text != "" {
		r.Children = append(r.Children, RunChildXML{Text: &TextXML{Value: text}})
	}
}

// Underlined сообщает, подчёркнут ли ран (свойство u со значением,
// отличным от none).
func (r *RunXML) Underlined() bool {
	for _, p := range r.Props {
		if p.Name == "u" {
			return !strings.Contains(p.Raw, `"none"`)
		}
	}
	return false
}

// ClearUnderline убирает свойство u; остальной бандл форматирования
// не меняется.
func (r *RunXML) ClearUnderline() {
	out := r.Props[:0]
	for _, p := range r.Props {
		if p.Name == "u" {
			continue
		}
		out = append(out, p)
	}
	r.Props = out
}

// Runs отдаёт раны параграфа в порядке следования.
func (p *ParagraphXML) Runs() []filler.Run {
	var out []filler.Run
	for _, item := range p.Items {
		if item.Run != nil {
			out = append(out, item.Run)
		}
	}
	return out
}

// Rows отдаёт строки таблицы.
func (t *TableXML) Rows() []filler.Row {
	out := make([]filler.Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = r
	}
	return out
}

// Cells отдаёт ячейки строки.
func (r *RowXML) Cells() []filler.Cell {
	out := make([]filler.Cell, len(r.cells))
	for i, c := range r.cells {
		out[i] = c
	}
	return out
}

// Paragraphs отдаёт параграфы ячейки.
func (c *CellXML) Paragraphs() []filler.Paragraph {
	var out []filler.Paragraph
	for _, b := range c.Blocks {
		if b.Para != nil {
			out = append(out, b.Para)
		}
	}
	return out
}

// Tables отдаёт вложенные таблицы ячейки.
func (c *CellXML) Tables() []filler.Table {
	var out []filler.Table
	for _, b := range c.Blocks {
		if b.Table != nil {
			out = append(out, b.Table)
		}
	}
	return out
}

// Blocks отдаёт блоки тела документа для движка.
func (d *DocumentXML) Blocks() []filler.Block {
	return blocksFor(d.Body)
}

func blocksFor(blocks []BlockXML) []filler.Block {
	var out []filler.Block
	for _, b := range blocks {
		switch {
		case b.Para != nil:
			out = append(out, filler.Block{Paragraph: b.Para})
		case b.Table != nil:
			out = append(out, filler.Block{Table: b.Table})
		}
	}
	return out
}
