package filler

import (
	"regexp"
	"strings"

	"github.com/zhukovvlad/docfill-go/cmd/pkg/logging"
)

// tableClass - вид таблицы, определяющий стратегию структурного заполнения.
type tableClass int

const (
	// tableKeyValue - две колонки "метка | значение".
	tableKeyValue tableClass = iota
	// tableHeaderData - первая строка содержит метки колонок, дальше
	// идут строки данных.
	tableHeaderData
	// tableMixed - произвольная сетка: ячейки обрабатываются поштучно.
	tableMixed
)

// Пороги классификации таблиц.
const (
	keyValueRowShare   = 0.8 // доля строк ровно из двух ячеек
	keyValueLabelShare = 0.5 // доля распознанных меток в левой колонке
	headerLabelShare   = 0.3 // доля распознанных меток в первой строке
)

var (
	cellUnderscoreRe   = regexp.MustCompile(`[_＿]{3,}`)
	cellTrailColonRe   = regexp.MustCompile(`([：:])[ 　\t]*$`)
	cellWhitespaceRe   = regexp.MustCompile(`[ 　\t]{3,}`)
	inPlaceCellLabelRe = regexp.MustCompile(`^([\p{Han}A-Za-z（）()]{2,20})[_＿]{3,}$`)
)

// paragraphFillFunc - конвейер строчных плейсхолдеров, применяемый к
// параграфам внутри ячеек: единый путь с обычными параграфами.
type paragraphFillFunc func(p Paragraph, paraIdx *int, data DataRecord, stats *Stats)

// TableProcessor заполняет таблицы: сперва параграфы всех ячеек проходят
// обычный конвейер, затем выполняется структурный проход по классу таблицы.
type TableProcessor struct {
	recognizer    *FieldRecognizer
	classifier    *FieldClassifier
	filler        *ContentFiller
	fillParagraph paragraphFillFunc
	logger        *logging.Logger
}

func NewTableProcessor(
	recognizer *FieldRecognizer,
	classifier *FieldClassifier,
	filler *ContentFiller,
	fillParagraph paragraphFillFunc,
	logger *logging.Logger,
) *TableProcessor {
	return &TableProcessor{
		recognizer:    recognizer,
		classifier:    classifier,
		filler:        filler,
		fillParagraph: fillParagraph,
		logger:        logger,
	}
}

// ProcessTable обрабатывает таблицу: строчный конвейер по всем параграфам
// ячеек (включая вложенные таблицы), затем структурное заполнение.
func (t *TableProcessor) ProcessTable(tbl Table, paraIdx *int, data DataRecord, stats *Stats) {
	tableIdx := *paraIdx

	for _, row := range tbl.Rows() {
		for _, cell := range row.Cells() {
			for _, p := range cell.Paragraphs() {
				t.fillParagraph(p, paraIdx, data, stats)
			}
			for _, nested := range cell.Tables() {
				t.ProcessTable(nested, paraIdx, data, stats)
			}
		}
	}

	switch t.classify(tbl) {
	case tableKeyValue:
		t.fillKeyValue(tbl, tableIdx, data, stats)
	case tableHeaderData:
		t.fillHeaderData(tbl, tableIdx, data, stats)
	case tableMixed:
		t.fillMixed(tbl, tableIdx, data, stats)
	}
}

// classify определяет класс таблицы один раз.
func (t *TableProcessor) classify(tbl Table) tableClass {
	rows := tbl.Rows()
	if len(rows) == 0 {
		return tableMixed
	}

	twoCellRows := 0
	leftLabels := 0
	for _, row := range rows {
		cells := row.Cells()
		if len(cells) != 2 {
			continue
		}
		twoCellRows++
		if _, ok := t.recognizeLabel(cellText(cells[0])); ok {
			leftLabels++
		}
	}
	if twoCellRows > 0 &&
		float64(twoCellRows) >= keyValueRowShare*float64(len(rows)) &&
		float64(leftLabels) > keyValueLabelShare*float64(twoCellRows) {
		return tableKeyValue
	}

	header := rows[0].Cells()
	if len(header) > 0 {
		recognized := 0
		for _, c := range header {
			if _, ok := t.recognizeLabel(cellText(c)); ok {
				recognized++
			}
		}
		if float64(recognized) > headerLabelShare*float64(len(header)) {
			return tableHeaderData
		}
	}

	return tableMixed
}

// recognizeLabel распознаёт метку ячейки. Замыкающее двоеточие не входит
// в словарь вариантов и отбрасывается: "项目名称：" и "项目名称" - одна метка.
func (t *TableProcessor) recognizeLabel(text string) (FieldKey, bool) {
	return t.recognizer.Recognize(cellTrailColonRe.ReplaceAllString(text, ""))
}

func (t *TableProcessor) fillKeyValue(tbl Table, tableIdx int, data DataRecord, stats *Stats) {
	for _, row := range tbl.Rows() {
		cells := row.Cells()
		if len(cells) != 2 {
			continue
		}
		label := cellText(cells[0])
		key, ok := t.recognizeLabel(label)
		if !ok {
			continue
		}
		t.fillValueCell(cells[1], label, key, tableIdx, data, stats)
	}
}

func (t *TableProcessor) fillHeaderData(tbl Table, tableIdx int, data DataRecord, stats *Stats) {
	rows := tbl.Rows()
	header := rows[0].Cells()

	colKeys := make(map[int]FieldKey)
	colLabels := make(map[int]string)
	for i, c := range header {
		label := cellText(c)
		if key, ok := t.recognizeLabel(label); ok {
			colKeys[i] = key
			colLabels[i] = label
		}
	}

	for _, row := range rows[1:] {
		cells := row.Cells()
		for i, key := range colKeys {
			if i >= len(cells) {
				continue
			}
			t.fillValueCell(cells[i], colLabels[i], key, tableIdx, data, stats)
		}
	}
}

// fillMixed сканирует произвольную сетку: чистая метка заполняет соседнюю
// ячейку, метка с прогоном подчёркиваний переписывается на месте.
func (t *TableProcessor) fillMixed(tbl Table, tableIdx int, data DataRecord, stats *Stats) {
	for _, row := range tbl.Rows() {
		cells := row.Cells()
		for i, cell := range cells {
			text := cellText(cell)
			if text == "" {
				continue
			}

			if key, ok := t.recognizeLabel(text); ok {
				if i+1 < len(cells) {
					t.fillValueCell(cells[i+1], text, key, tableIdx, data, stats)
				}
				continue
			}

			if g := inPlaceCellLabelRe.FindStringSubmatch(text); g != nil {
				if key, ok := t.recognizer.Recognize(g[1]); ok {
					t.fillValueCell(cell, g[1], key, tableIdx, data, stats)
				}
			}
		}
	}
}

// fillValueCell заполняет одну ячейку значением ключа через общую зачистку
// плейсхолдеров. Уже заполненная ячейка не трогается.
func (t *TableProcessor) fillValueCell(cell Cell, label string, key FieldKey, tableIdx int, data DataRecord, stats *Stats) {
	text := cellText(cell)

	if !t.classifier.ShouldFill(label+text, key) {
		stats.SkippedCount++
		return
	}

	value, ok := t.filler.lookupValue(key, data)
	if !ok {
		stats.recordUnfilled(tableIdx, label+"|"+text, KindTable, label)
		return
	}

	newText, changed := cleanCellPlaceholder(text, value)
	if !changed {
		return
	}
	if !setCellText(cell, newText) {
		return
	}
	stats.recordFill(KindTable)
}

// cleanCellPlaceholder применяет зачистку плейсхолдеров ячейки: пустая
// ячейка становится значением, прогоны подчёркиваний (>=3) - значением,
// замыкающее двоеточие получает значение, длинные пробельные прогоны (>=3)
// становятся значением.
func cleanCellPlaceholder(text, value string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return value, true
	}
	if cellUnderscoreRe.MatchString(text) {
		return cellUnderscoreRe.ReplaceAllString(text, value), true
	}
	if cellTrailColonRe.MatchString(text) {
		return cellTrailColonRe.ReplaceAllString(text, "${1}"+value), true
	}
	if cellWhitespaceRe.MatchString(text) {
		return cellWhitespaceRe.ReplaceAllString(text, value), true
	}
	return text, false
}

// cellText возвращает объединённый текст всех параграфов ячейки.
func cellText(c Cell) string {
	var b strings.Builder
	for _, p := range c.Paragraphs() {
		for _, r := range p.Runs() {
			b.WriteString(r.Text())
		}
	}
	return strings.TrimSpace(b.String())
}

// setCellText переписывает текст ячейки, сохраняя бандл форматирования
// первого рана: он получает новый текст, остальные раны первого параграфа
// опустошаются. Ячейка без ранов не заполняется.
func setCellText(c Cell, text string) bool {
	for _, p := range c.Paragraphs() {
		runs := p.Runs()
		if len(runs) == 0 {
			continue
		}
		runs[0].SetText(text)
		for _, r := range runs[1:] {
			r.SetText("")
		}
		// Текст остальных параграфов ячейки не трогается.
		return true
	}
	return false
}
