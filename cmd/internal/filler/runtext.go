package filler

import "strings"

// runRef указывает для одного символа объединённого текста владеющий ран
// и позицию символа внутри рана. Все смещения считаются в рунах: движок
// работает с CJK-текстом, байтовые индексы здесь бессмысленны.
type runRef struct {
	run    int
	offset int
}

// RunTextMap - карта "параграф как одна строка": объединённый текст всех
// ранов плюс обратный индекс символ -> ран. Строится по требованию и
// никогда не переживает правку параграфа.
type RunTextMap struct {
	FullText string
	runs     []Run
	owners   []runRef
}

// BuildRunTextMap сканирует раны параграфа по порядку и строит карту.
// Возвращает nil для параграфа без ранов.
func BuildRunTextMap(p Paragraph) *RunTextMap {
	runs := p.Runs()
	if len(runs) == 0 {
		return nil
	}

	var b strings.Builder
	var owners []runRef
	for i, r := range runs {
		text := r.Text()
		b.WriteString(text)
		pos := 0
		for range text {
			owners = append(owners, runRef{run: i, offset: pos})
			pos++
		}
	}

	return &RunTextMap{
		FullText: b.String(),
		runs:     runs,
		owners:   owners,
	}
}

// Len возвращает длину объединённого текста в рунах.
func (m *RunTextMap) Len() int {
	return len(m.owners)
}

// ApplyReplacement заменяет диапазон [start, end) объединённого текста на
// replacement, не трогая форматирование незатронутых ранов.
//
// Алгоритм: префикс первого затронутого рана и суффикс последнего
// сохраняются на своих местах, вся вставка кладётся в первый ран сразу после
// префикса (и наследует его форматирование - метка поля живёт именно там),
// промежуточные раны опустошаются, но не удаляются, чтобы структура
// параграфа оставалась стабильной.
//
// plainValue=true означает, что вставляется обычное значение: если первый
// затронутый ран подчёркнут стилем линии-прочерка, подчёркивание снимается.
//
// Вызывающий обязан применять замены одного параграфа в порядке убывания
// start: тогда более ранние смещения остаются валидными и карту не нужно
// перестраивать между соседними правками.
//
// При некорректном диапазоне возвращает false, ничего не меняя.
func (m *RunTextMap) ApplyReplacement(start, end int, replacement string, plainValue bool) bool {
	if m == nil || len(m.runs) == 0 {
		return false
	}
	if start < 0 || end <= start || end > len(m.owners) {
		return false
	}

	first := m.owners[start]
	last := m.owners[end-1]
	if first.run >= len(m.runs) || last.run >= len(m.runs) {
		return false
	}

	firstRunes := []rune(m.runs[first.run].Text())
	lastRunes := []rune(m.runs[last.run].Text())
	if first.offset > len(firstRunes) || last.offset >= len(lastRunes) {
		return false
	}

	prefix := string(firstRunes[:first.offset])
	suffix := string(lastRunes[last.offset+1:])

	if first.run == last.run {
		m.runs[first.run].SetText(prefix + replacement + suffix)
	} else {
		m.runs[first.run].SetText(prefix + replacement)
		for i := first.run + 1; i < last.run; i++ {
			m.runs[i].SetText("")
		}
		m.runs[last.run].SetText(suffix)
	}

	if plainValue && replacement != "" && m.runs[first.run].Underlined() {
		m.runs[first.run].ClearUnderline()
	}

	return true
}
