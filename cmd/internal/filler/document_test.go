package filler

import "strings"

// Тестовые реализации интерфейсов документа: параграфы и таблицы в памяти,
// без docx-контейнера.

type fakeRun struct {
	text       string
	underlined bool
}

func (r *fakeRun) Text() string        { return r.text }
func (r *fakeRun) SetText(text string) { r.text = text }
func (r *fakeRun) Underlined() bool    { return r.underlined }
func (r *fakeRun) ClearUnderline()     { r.underlined = false }

type fakePara struct {
	runs []*fakeRun
}

func (p *fakePara) Runs() []Run {
	out := make([]Run, len(p.runs))
	for i, r := range p.runs {
		out[i] = r
	}
	return out
}

func newPara(texts ...string) *fakePara {
	p := &fakePara{}
	for _, t := range texts {
		p.runs = append(p.runs, &fakeRun{text: t})
	}
	return p
}

func paraText(p *fakePara) string {
	var b strings.Builder
	for _, r := range p.runs {
		b.WriteString(r.text)
	}
	return b.String()
}

type fakeCell struct {
	paras  []*fakePara
	tables []*fakeTable
}

func (c *fakeCell) Paragraphs() []Paragraph {
	out := make([]Paragraph, len(c.paras))
	for i, p := range c.paras {
		out[i] = p
	}
	return out
}

func (c *fakeCell) Tables() []Table {
	out := make([]Table, len(c.tables))
	for i, t := range c.tables {
		out[i] = t
	}
	return out
}

func newCell(texts ...string) *fakeCell {
	c := &fakeCell{}
	for _, t := range texts {
		c.paras = append(c.paras, newPara(t))
	}
	return c
}

func cellString(c *fakeCell) string {
	var b strings.Builder
	for _, p := range c.paras {
		b.WriteString(paraText(p))
	}
	return b.String()
}

type fakeRow struct {
	cells []*fakeCell
}

func (r *fakeRow) Cells() []Cell {
	out := make([]Cell, len(r.cells))
	for i, c := range r.cells {
		out[i] = c
	}
	return out
}

type fakeTable struct {
	rows []*fakeRow
}

func (t *fakeTable) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = r
	}
	return out
}

func newTable(rows ...[]*fakeCell) *fakeTable {
	t := &fakeTable{}
	for _, cells := range rows {
		t.rows = append(t.rows, &fakeRow{cells: cells})
	}
	return t
}

type fakeDoc struct {
	blocks []Block
}

func (d *fakeDoc) Blocks() []Block { return d.blocks }

func docOf(items ...any) *fakeDoc {
	d := &fakeDoc{}
	for _, item := range items {
		switch v := item.(type) {
		case *fakePara:
			d.blocks = append(d.blocks, Block{Paragraph: v})
		case *fakeTable:
			d.blocks = append(d.blocks, Block{Table: v})
		}
	}
	return d
}
