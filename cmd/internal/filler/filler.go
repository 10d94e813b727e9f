package filler

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/zhukovvlad/docfill-go/cmd/pkg/logging"
)

// fillOutcome - результат обработки одного совпадения.
type fillOutcome int

const (
	outcomeFilled fillOutcome = iota
	// outcomeSkipped - сознательный пропуск классификатора (подпись,
	// материалы): не ошибка и не незаполненное поле.
	outcomeSkipped
	// outcomeUnfilled - метка не распознана или для ключа нет значения.
	outcomeUnfilled
	// outcomeFault - сбой замены при валидном совпадении.
	outcomeFault
)

// contextWindow - окно вокруг совпадения для классификатора:
// решение принимается по локальному контексту, а не по всему параграфу,
// иначе плотные параграфы дают ложные пропуски.
const contextWindow = 30

// ContentFiller вычисляет текст замены для совпадения и выполняет правку
// через карту ранов. Раны напрямую не трогает.
type ContentFiller struct {
	recognizer *FieldRecognizer
	classifier *FieldClassifier
	padDates   bool
	logger     *logging.Logger
}

func NewContentFiller(
	recognizer *FieldRecognizer,
	classifier *FieldClassifier,
	padDates bool,
	logger *logging.Logger,
) *ContentFiller {
	return &ContentFiller{
		recognizer: recognizer,
		classifier: classifier,
		padDates:   padDates,
		logger:     logger,
	}
}

// Fill обрабатывает одно совпадение. Возвращает результат и метку поля
// для записи в статистику.
func (f *ContentFiller) Fill(rtm *RunTextMap, m Match, data DataRecord) (fillOutcome, string) {
	switch m.Kind {
	case KindCombo:
		return f.fillCombo(rtm, m, data)
	case KindBracket:
		return f.fillBracket(rtm, m, data)
	case KindColon:
		return f.fillColon(rtm, m, data)
	case KindSpaceFill:
		return f.fillSpaceFill(rtm, m, data)
	case KindDate:
		return f.fillDate(rtm, m, data)
	}
	return outcomeUnfilled, m.Field
}

// lookupValue возвращает значение ключа; значение ключа date форматируется.
func (f *ContentFiller) lookupValue(key FieldKey, data DataRecord) (string, bool) {
	value, ok := data[key]
	if !ok || value == "" {
		return "", false
	}
	if key == KeyDate {
		value = f.formatDate(value)
	}
	return value, true
}

func (f *ContentFiller) fillCombo(rtm *RunTextMap, m Match, data DataRecord) (fillOutcome, string) {
	joined := strings.Join(m.Fields, "、")

	keys, ok := f.recognizer.RecognizeAll(m.Fields)
	if !ok {
		return outcomeUnfilled, joined
	}

	values := make([]string, 0, len(keys))
	for _, key := range keys {
		value, ok := f.lookupValue(key, data)
		if !ok {
			return outcomeUnfilled, joined
		}
		values = append(values, value)
	}

	replacement := m.Open + strings.Join(values, "、") + m.Close
	if !rtm.ApplyReplacement(m.Start, m.End, replacement, true) {
		return outcomeFault, joined
	}
	return outcomeFilled, joined
}

func (f *ContentFiller) fillBracket(rtm *RunTextMap, m Match, data DataRecord) (fillOutcome, string) {
	var key FieldKey
	if m.IsAbbreviation {
		key = m.StandardField
	} else {
		k, ok := f.recognizer.Recognize(m.Field)
		if !ok {
			return outcomeUnfilled, m.Field
		}
		key = k
	}

	if !f.classifier.ShouldFill(f.contextAround(rtm, m), key) {
		return outcomeSkipped, m.Field
	}

	value, ok := f.lookupValue(key, data)
	if !ok {
		return outcomeUnfilled, m.Field
	}

	replacement := m.Open + value + m.Close
	if !rtm.ApplyReplacement(m.Start, m.End, replacement, true) {
		return outcomeFault, m.Field
	}
	return outcomeFilled, m.Field
}

func (f *ContentFiller) fillColon(rtm *RunTextMap, m Match, data DataRecord) (fillOutcome, string) {
	key, ok := f.recognizer.Recognize(m.Field)
	if !ok {
		return outcomeUnfilled, m.Field
	}

	// Контекст для классификатора: метка вместе с хвостом, чтобы
	// "法定代表人：（签字）" пропускался, хотя отметка справа от двоеточия.
	if !f.classifier.ShouldFill(m.Field+m.AfterColon, key) {
		return outcomeSkipped, m.Field
	}

	value, ok := f.lookupValue(key, data)
	if !ok {
		return outcomeUnfilled, m.Field
	}

	marker := ""
	if am := f.classifier.ExtractFormatMarker(m.AfterColon); f.classifier.ShouldPreserveMarker(key, am) {
		marker = am
	}

	// Если сразу за заменой на той же строке начинается следующая
	// CJK-метка, вставляется разделитель из двух пробелов.
	gap := ""
	if rest := []rune(rtm.FullText); m.End < len(rest) && unicode.Is(unicode.Han, rest[m.End]) {
		gap = "  "
	}

	replacement := m.Field + m.Colon + value + marker + gap
	if !rtm.ApplyReplacement(m.Start, m.End, replacement, true) {
		return outcomeFault, m.Field
	}
	return outcomeFilled, m.Field
}

func (f *ContentFiller) fillSpaceFill(rtm *RunTextMap, m Match, data DataRecord) (fillOutcome, string) {
	key, ok := f.recognizer.Recognize(m.Field)
	if !ok {
		return outcomeUnfilled, m.Field
	}

	// Контекст для классификатора: окно вокруг совпадения, а не одна метка.
	// Отметка подписи стоит справа от прогона ("法定代表人　...　（签字）")
	// и в саму метку не попадает.
	if !f.classifier.ShouldFill(f.contextAround(rtm, m), key) {
		return outcomeSkipped, m.Field
	}

	value, ok := f.lookupValue(key, data)
	if !ok {
		return outcomeUnfilled, m.Field
	}

	// Отметка форматирования живёт внутри метки и переиздаётся вместе
	// с ней; при отметке значение отделяется двумя пробелами, без неё -
	// одним.
	sep := " "
	if f.classifier.ExtractFormatMarker(m.Field) != "" {
		sep = "  "
	}

	replacement := m.Field + sep + value
	if !rtm.ApplyReplacement(m.Start, m.End, replacement, true) {
		return outcomeFault, m.Field
	}
	return outcomeFilled, m.Field
}

func (f *ContentFiller) fillDate(rtm *RunTextMap, m Match, data DataRecord) (fillOutcome, string) {
	value, ok := data[KeyDate]
	if !ok || value == "" {
		return outcomeUnfilled, m.Field
	}

	formatted := f.formatDate(value)
	replacement := formatted
	if m.HasDatePrefix {
		replacement = "日期：" + formatted
	}

	if !rtm.ApplyReplacement(m.Start, m.End, replacement, true) {
		return outcomeFault, m.Field
	}
	return outcomeFilled, m.Field
}

// contextAround возвращает окно ±contextWindow рун вокруг совпадения.
func (f *ContentFiller) contextAround(rtm *RunTextMap, m Match) string {
	runes := []rune(rtm.FullText)
	lo := m.Start - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := m.End + contextWindow
	if hi > len(runes) {
		hi = len(runes)
	}
	return string(runes[lo:hi])
}

var (
	numericDateRe = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})$`)
	cjkDateRe     = regexp.MustCompile(`^(\d{4})年(\d{1,2})月(\d{1,2})日`)
)

// formatDate приводит значение даты к виду YYYY年M月D日. Принимаются
// YYYY-M-D, YYYY/M/D, YYYY.M.D и уже-CJK формы; суффиксы времени суток
// после 日 отбрасываются, пробелы игнорируются.
// При неразбираемом значении возвращается исходная строка: движок делает
// прогресс и отчитывается, а не падает.
func (f *ContentFiller) formatDate(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '　' || r == '\t' {
			return -1
		}
		return r
	}, value)

	var year, month, day string
	if g := numericDateRe.FindStringSubmatch(cleaned); g != nil {
		year, month, day = g[1], g[2], g[3]
	} else if g := cjkDateRe.FindStringSubmatch(cleaned); g != nil {
		year, month, day = g[1], g[2], g[3]
	} else {
		return value
	}

	m := atoiDigits(month)
	d := atoiDigits(day)
	if f.padDates {
		return fmt.Sprintf("%s年%02d月%02d日", year, m, d)
	}
	return fmt.Sprintf("%s年%d月%d日", year, m, d)
}

func atoiDigits(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
