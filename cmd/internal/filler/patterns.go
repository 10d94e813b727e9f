package filler

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// PatternKind - вид грамматики плейсхолдера.
type PatternKind string

const (
	KindCombo     PatternKind = "combo"
	KindBracket   PatternKind = "bracket"
	KindColon     PatternKind = "colon"
	KindSpaceFill PatternKind = "space_fill"
	KindDate      PatternKind = "date"
	// KindTable - структурные заполнения ячеек таблиц (дополнение к пяти
	// грамматикам строчных плейсхолдеров).
	KindTable PatternKind = "table"
)

// kindOrder - фиксированный порядок обработки видов внутри параграфа.
var kindOrder = []PatternKind{KindCombo, KindBracket, KindDate, KindColon, KindSpaceFill}

// Match - запись совпадения. Start и End - смещения в рунах объединённого
// текста параграфа.
type Match struct {
	Kind      PatternKind
	Start     int
	End       int
	FullMatch string

	// Field - видимая метка (для combo - Fields).
	Field  string
	Fields []string

	// OriginalField - содержимое скобок до зачистки префиксов и хвостов.
	OriginalField string
	// AfterColon - хвост после двоеточия (для colon).
	AfterColon string
	// IsAbbreviation и StandardField - путь коротких меток скобочной грамматики.
	IsAbbreviation bool
	StandardField  FieldKey
	// HasDatePrefix - совпадение даты включает ведущий "日期：".
	HasDatePrefix bool

	// Стиль пунктуации совпадения: воспроизводится в замене как есть.
	Open  string
	Close string
	Colon string
}

// Все грамматики принимают полноширинную и полуширинную пунктуацию;
// квадратные скобки допускаются для combo и bracket.
var (
	bracketGroupRe = regexp.MustCompile(`[（(\[]([^（）()\[\]]*)[）)\]]`)
	comboSplitRe   = regexp.MustCompile(`[、，和及]`)

	colonLabelRe = regexp.MustCompile(`[\p{Han}A-Za-z0-9（）()]{2,20}[：:]`)

	spaceFillRe = regexp.MustCompile(`[\p{Han}A-Za-z（）()]{2,20}[ 　\t]{5,}`)

	// ____年____月____日: подчёркивания или пробельные прогоны между маркерами.
	dateBlankRe = regexp.MustCompile(`(日期[：:]?)?(?:[_＿]+|[ 　\t]+)年(?:[_＿]+|[ 　\t]+)月(?:[_＿]+|[ 　\t]+)日`)
	// XXXX年XX月XX日: литеральные X.
	dateXRe = regexp.MustCompile(`(日期[：:]?)?[xXＸ]{2,4}年[xXＸ]{1,2}月[xXＸ]{1,2}日`)

	abbreviationGapRe = regexp.MustCompile(`[ 　]{5,}`)

	instructionTailRes = []*regexp.Regexp{
		regexp.MustCompile(`^注[：:]`),
		regexp.MustCompile(`^说明[：:]`),
		regexp.MustCompile(`^如果.*需(要)?提供`),
		regexp.MustCompile(`如.*为.*人.*需`),
		regexp.MustCompile(`需要?提供.*身份证`),
	}
)

// comboMetaWords отвергают подстроки комбинированного поля, которые являются
// оговорками, а не метками.
var comboMetaWords = []string{"如有", "如果", "包括", "或者"}

// promptPrefixes зачищаются с начала скобочной метки.
var promptPrefixes = []string{"请填写", "请输入", "待填写", "填写", "输入"}

// placeholderFillerWords - типографски-инертные заполнители хвоста.
var placeholderFillerWords = []string{"待填写", "请填写", "待确定", "待填", "暂无", "XXX", "xxx"}

// bracketMaterialKeywords - метки, описывающие прилагаемые документы,
// а не поля для заполнения.
var bracketMaterialKeywords = []string{"复印件", "证明", "原件", "扫描件", "附件", "材料", "文件"}

// PatternMatcher находит плейсхолдеры пяти грамматик на объединённом тексте
// параграфа. Экземпляр не хранит состояния между вызовами и безопасен для
// совместного использования.
type PatternMatcher struct {
	recognizer *FieldRecognizer
}

func NewPatternMatcher(recognizer *FieldRecognizer) *PatternMatcher {
	return &PatternMatcher{recognizer: recognizer}
}

// MatchKind возвращает совпадения одного вида в порядке возрастания Start.
func (pm *PatternMatcher) MatchKind(text string, kind PatternKind) []Match {
	switch kind {
	case KindCombo:
		return pm.matchBracketGroups(text, true)
	case KindBracket:
		return pm.matchBracketGroups(text, false)
	case KindColon:
		return pm.matchColons(text)
	case KindSpaceFill:
		return pm.matchSpaceFills(text)
	case KindDate:
		return pm.matchDates(text)
	}
	return nil
}

// runeOffset переводит байтовое смещение регулярного выражения в руны.
func runeOffset(text string, byteOff int) int {
	return utf8.RuneCountInString(text[:byteOff])
}

// matchBracketGroups сканирует скобочные группы и раскладывает их на
// комбинированные (combo=true) либо одиночные (combo=false) совпадения.
func (pm *PatternMatcher) matchBracketGroups(text string, combo bool) []Match {
	var out []Match
	for _, loc := range bracketGroupRe.FindAllStringSubmatchIndex(text, -1) {
		full := text[loc[0]:loc[1]]
		content := text[loc[2]:loc[3]]

		fullRunes := []rune(full)
		m := Match{
			Start:         runeOffset(text, loc[0]),
			End:           runeOffset(text, loc[1]),
			FullMatch:     full,
			OriginalField: content,
			Open:          string(fullRunes[0]),
			Close:         string(fullRunes[len(fullRunes)-1]),
		}

		parts, isCombo := splitComboParts(content)
		if combo {
			if isCombo {
				m.Kind = KindCombo
				m.Fields = parts
				out = append(out, m)
			}
			continue
		}
		if isCombo {
			continue
		}

		if bm, ok := pm.asBracketMatch(m, content); ok {
			out = append(out, bm)
		}
	}
	return out
}

// splitComboParts делит содержимое скобок по разделителям 、，和及.
// Возвращает true только для двух и более подметок без мета-слов.
func splitComboParts(content string) ([]string, bool) {
	raw := comboSplitRe.Split(content, -1)
	if len(raw) < 2 {
		return nil, false
	}
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, false
		}
		for _, meta := range comboMetaWords {
			if strings.Contains(p, meta) {
				return nil, false
			}
		}
		parts = append(parts, p)
	}
	return parts, true
}

// asBracketMatch применяет двухшаговую логику одиночной скобочной метки.
func (pm *PatternMatcher) asBracketMatch(m Match, content string) (Match, bool) {
	// Шаг 1: сокращение - ядро не длиннее трёх символов при прогоне
	// из пяти и более пробелов внутри скобок.
	if abbreviationGapRe.MatchString(content) {
		core := strings.TrimSpace(content)
		if utf8.RuneCountInString(core) <= 3 && core != "" {
			if key, ok := pm.recognizer.RecognizeAbbreviation(core); ok {
				m.Kind = KindBracket
				m.Field = core
				m.IsAbbreviation = true
				m.StandardField = key
				return m, true
			}
		}
	}

	// Шаг 2: зачистка префиксов-подсказок и хвостов-заполнителей.
	label := strings.TrimSpace(content)
	stripped := false
	for _, p := range promptPrefixes {
		if strings.HasPrefix(label, p) {
			label = strings.TrimSpace(strings.TrimPrefix(label, p))
			stripped = true
			break
		}
	}
	if idx := strings.IndexAny(label, "：:"); idx >= 0 {
		_, size := utf8.DecodeRuneInString(label[idx:])
		if isPlaceholderTail(label[idx+size:]) {
			label = strings.TrimSpace(label[:idx])
			stripped = true
		}
	}

	if label == "" {
		return m, false
	}
	if isKnownMarker(m.Open + label + m.Close) {
		return m, false
	}

	// Метка, похожая на настоящий текст: длинная, ничего не зачищено
	// и внутри нет заполнителей.
	if !stripped && utf8.RuneCountInString(label) > 8 && !containsPlaceholderChars(content) {
		return m, false
	}

	// Ссылки на материалы отклоняются, но метки номера удостоверения - нет.
	if containsAny(label, bracketMaterialKeywords) && !containsAny(label, idNumberLabels) {
		return m, false
	}

	m.Kind = KindBracket
	m.Field = label
	return m, true
}

// isPlaceholderTail сообщает, состоит ли хвост после двоеточия только из
// пробелов, подчёркиваний и типовых слов-заполнителей.
func isPlaceholderTail(tail string) bool {
	for _, w := range placeholderFillerWords {
		tail = strings.ReplaceAll(tail, w, "")
	}
	tail = strings.TrimFunc(tail, func(r rune) bool {
		return r == ' ' || r == '　' || r == '\t' || r == '_' || r == '＿'
	})
	return tail == ""
}

func containsPlaceholderChars(s string) bool {
	return strings.ContainsAny(s, "_＿") || abbreviationGapRe.MatchString(s)
}

// matchColons находит пары "<метка>：<хвост>" и решает по хвосту, пустое это
// поле, уже заполненное или инструкция-заполнитель.
func (pm *PatternMatcher) matchColons(text string) []Match {
	locs := colonLabelRe.FindAllStringIndex(text, -1)
	var out []Match
	for i, loc := range locs {
		full := text[loc[0]:loc[1]]
		fullRunes := []rune(full)
		colon := string(fullRunes[len(fullRunes)-1])
		label := string(fullRunes[:len(fullRunes)-1])

		// Хвост простирается до метки следующего поля или конца строки.
		tailEnd := len(text)
		if i+1 < len(locs) {
			tailEnd = locs[i+1][0]
		}
		afterColon := text[loc[1]:tailEnd]

		m := Match{
			Kind:       KindColon,
			Start:      runeOffset(text, loc[0]),
			End:        runeOffset(text, tailEnd),
			FullMatch:  text[loc[0]:tailEnd],
			Field:      label,
			AfterColon: afterColon,
			Colon:      colon,
		}

		residual := stripPlaceholderNoise(afterColon)

		switch {
		case strings.ContainsAny(residual, "：:"):
			// Начало следующего поля: хвост считается пустым,
			// совпадение остаётся незаполненным.
			m.End = runeOffset(text, loc[1])
			m.FullMatch = full
			m.AfterColon = ""
		case isInstructionTail(afterColon):
			// Инструкция-заполнитель не считается заполненным значением.
		case utf8.RuneCountInString(residual) > 2:
			// Уже заполнено.
			continue
		}

		out = append(out, m)
	}
	return out
}

// stripPlaceholderNoise убирает из хвоста подчёркивания, пробелы, отметки
// форматирования и слова-заполнители.
func stripPlaceholderNoise(tail string) string {
	for _, marker := range allMarkers {
		tail = strings.ReplaceAll(tail, marker, "")
	}
	for _, w := range placeholderFillerWords {
		tail = strings.ReplaceAll(tail, w, "")
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '＿', ' ', '　', '\t':
			return -1
		}
		return r
	}, tail)
}

func isInstructionTail(tail string) bool {
	tail = strings.TrimSpace(tail)
	for _, re := range instructionTailRes {
		if re.MatchString(tail) {
			return true
		}
	}
	return false
}

// matchSpaceFills находит "<метка><прогон из 5+ пробелов>" без двоеточия
// после прогона.
func (pm *PatternMatcher) matchSpaceFills(text string) []Match {
	var out []Match
	for _, loc := range spaceFillRe.FindAllStringIndex(text, -1) {
		full := text[loc[0]:loc[1]]
		label := strings.TrimRight(full, " 　\t")

		// RE2 не поддерживает lookahead: двоеточие сразу после прогона
		// проверяется вручную.
		if rest := text[loc[1]:]; rest != "" {
			next, _ := utf8.DecodeRuneInString(rest)
			if next == '：' || next == ':' {
				continue
			}
		}

		if containsAny(label, bracketMaterialKeywords) && !containsAny(label, idNumberLabels) {
			continue
		}
		if isKnownMarker(label) {
			continue
		}

		out = append(out, Match{
			Kind:      KindSpaceFill,
			Start:     runeOffset(text, loc[0]),
			End:       runeOffset(text, loc[1]),
			FullMatch: full,
			Field:     label,
		})
	}
	return out
}

// matchDates находит скелеты дат обоих видов; необязательный префикс
// "日期：" включается в диапазон совпадения.
func (pm *PatternMatcher) matchDates(text string) []Match {
	var out []Match
	seen := make(map[int]bool)
	for _, re := range []*regexp.Regexp{dateBlankRe, dateXRe} {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if seen[loc[0]] {
				continue
			}
			seen[loc[0]] = true
			out = append(out, Match{
				Kind:          KindDate,
				Start:         runeOffset(text, loc[0]),
				End:           runeOffset(text, loc[1]),
				FullMatch:     text[loc[0]:loc[1]],
				Field:         "日期",
				HasDatePrefix: loc[2] >= 0,
			})
		}
	}
	return out
}
