package filler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zhukovvlad/docfill-go/cmd/pkg/logging"
)

// FillOptions - параметры движка.
type FillOptions struct {
	// PadDates включает дополнение месяца и дня нулями при форматировании дат.
	PadDates bool
}

// Engine - конвейер заполнения документа. Один вызов FillDocument
// монопольно владеет документом на всё время работы; экземпляр движка
// не хранит состояния между документами, поэтому параллельная обработка
// нескольких документов - это несколько независимых вызовов.
type Engine struct {
	matcher    *PatternMatcher
	recognizer *FieldRecognizer
	classifier *FieldClassifier
	filler     *ContentFiller
	tables     *TableProcessor
	logger     *logging.Logger
}

// NewEngine собирает конвейер. Все таблицы констант (отметки, словарь
// вариантов, сокращения) замораживаются на этапе конструирования.
func NewEngine(opts FillOptions, logger *logging.Logger) *Engine {
	recognizer := NewFieldRecognizer()
	classifier := NewFieldClassifier()
	contentFiller := NewContentFiller(recognizer, classifier, opts.PadDates, logger)

	e := &Engine{
		matcher:    NewPatternMatcher(recognizer),
		recognizer: recognizer,
		classifier: classifier,
		filler:     contentFiller,
		logger:     logger,
	}
	e.tables = NewTableProcessor(recognizer, classifier, contentFiller, e.fillParagraph, logger)
	return e
}

// FillDocument обходит все блоки документа в порядке следования, заполняет
// распознанные плейсхолдеры и возвращает статистику прохода. Документ
// мутируется на месте; сериализация - забота вызывающего.
func (e *Engine) FillDocument(doc Document, data DataRecord) *Stats {
	stats := NewStats()
	data = data.Normalized()

	paraIdx := 0
	for _, block := range doc.Blocks() {
		switch {
		case block.Paragraph != nil:
			e.fillParagraph(block.Paragraph, &paraIdx, data, stats)
		case block.Table != nil:
			e.tables.ProcessTable(block.Table, &paraIdx, data, stats)
		}
	}

	e.logger.Infof("документ обработан: заполнено %d, пропущено %d, не заполнено %d, ошибок %d",
		stats.TotalFilled, stats.SkippedCount, len(stats.UnfilledFields), len(stats.Errors))
	return stats
}

// fillParagraph прогоняет один параграф через конвейер. Виды обрабатываются
// в фиксированном порядке combo -> bracket -> date -> colon -> space_fill;
// внутри вида совпадения применяются справа налево, чтобы более ранние
// смещения оставались валидными без перестройки карты.
//
// Паника внутри параграфа гасится и записывается в stats.Errors: один
// испорченный параграф не прерывает документ.
func (e *Engine) fillParagraph(p Paragraph, paraIdx *int, data DataRecord, stats *Stats) {
	idx := *paraIdx
	*paraIdx++

	defer func() {
		if r := recover(); r != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("параграф %d: %v", idx, r))
			e.logger.Errorf("сбой при обработке параграфа %d: %v", idx, r)
		}
	}()

	rtm := BuildRunTextMap(p)
	if rtm == nil || strings.TrimSpace(rtm.FullText) == "" {
		return
	}

	dateFilled := false
	for _, kind := range kindOrder {
		// Карта перестраивается перед каждым видом: правки предыдущего
		// вида могли сдвинуть смещения.
		rtm = BuildRunTextMap(p)
		if rtm == nil {
			return
		}

		matches := e.matcher.MatchKind(rtm.FullText, kind)
		if kind == KindColon && dateFilled {
			// Отформатированная дата не должна перезаписываться
			// colon-логикой.
			matches = e.dropDateKeyed(matches)
		}
		if len(matches) == 0 {
			continue
		}

		sort.Slice(matches, func(i, j int) bool { return matches[i].Start > matches[j].Start })

		for _, m := range matches {
			outcome, field := e.filler.Fill(rtm, m, data)
			switch outcome {
			case outcomeFilled:
				stats.recordFill(kind)
				if kind == KindDate {
					dateFilled = true
				}
			case outcomeSkipped:
				stats.SkippedCount++
			case outcomeUnfilled:
				stats.recordUnfilled(idx, rtm.FullText, kind, field)
			case outcomeFault:
				stats.Errors = append(stats.Errors,
					fmt.Sprintf("параграф %d: не удалось применить замену %q (%s)", idx, m.FullMatch, kind))
				e.logger.Errorf("замена не применилась: параграф %d, %q", idx, m.FullMatch)
			}
		}
	}
}

// dropDateKeyed убирает colon-совпадения, чья метка сводится к ключу date.
func (e *Engine) dropDateKeyed(matches []Match) []Match {
	out := matches[:0]
	for _, m := range matches {
		if key, ok := e.recognizer.Recognize(m.Field); ok && key == KeyDate {
			continue
		}
		out = append(out, m)
	}
	return out
}
