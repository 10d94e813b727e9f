package filler

// UnfilledField описывает распознанный, но не заполненный плейсхолдер:
// метка не нашлась в словаре или для ключа нет значения в данных.
type UnfilledField struct {
	ParaIdx int         `json:"para_idx"`
	Text    string      `json:"text"`
	Pattern PatternKind `json:"pattern"`
	Field   string      `json:"field"`
}

// Stats - итог одного прохода по документу.
type Stats struct {
	TotalFilled    int                 `json:"total_filled"`
	PatternCounts  map[PatternKind]int `json:"pattern_counts"`
	SkippedCount   int                 `json:"skipped_count"`
	UnfilledFields []UnfilledField     `json:"unfilled_fields"`
	Errors         []string            `json:"errors"`
}

// NewStats создает пустой аккумулятор статистики.
func NewStats() *Stats {
	return &Stats{
		PatternCounts:  make(map[PatternKind]int),
		UnfilledFields: []UnfilledField{},
		Errors:         []string{},
	}
}

func (s *Stats) recordFill(kind PatternKind) {
	s.TotalFilled++
	s.PatternCounts[kind]++
}

// unfilledTextPrefix ограничивает сохраняемый фрагмент текста параграфа.
const unfilledTextPrefix = 100

func (s *Stats) recordUnfilled(paraIdx int, text string, kind PatternKind, field string) {
	r := []rune(text)
	if len(r) > unfilledTextPrefix {
		r = r[:unfilledTextPrefix]
	}
	s.UnfilledFields = append(s.UnfilledFields, UnfilledField{
		ParaIdx: paraIdx,
		Text:    string(r),
		Pattern: kind,
		Field:   field,
	})
}
