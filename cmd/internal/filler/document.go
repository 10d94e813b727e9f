package filler

// Пакет filler реализует движок заполнения шаблонов конкурсной документации.
// Движок работает только с узкими интерфейсами документа и не знает,
// какая библиотека стоит за ними (см. адаптер в cmd/internal/docx).

// Run представляет минимальный фрагмент текста параграфа с единым
// форматированием. Движок читает и переписывает текст, а из всего бандла
// форматирования ему нужно только подчёркивание: оно снимается, когда
// вместо линии-прочерка вставляется обычное значение.
type Run interface {
	Text() string
	SetText(text string)
	Underlined() bool
	ClearUnderline()
}

// Paragraph отдаёт раны в порядке следования. Движок никогда не добавляет
// и не удаляет раны - только меняет их текст.
type Paragraph interface {
	Runs() []Run
}

// Cell - ячейка таблицы. Содержит параграфы в порядке следования и,
// возможно, вложенные таблицы.
type Cell interface {
	Paragraphs() []Paragraph
	Tables() []Table
}

// Row - строка таблицы.
type Row interface {
	Cells() []Cell
}

// Table - таблица документа.
type Table interface {
	Rows() []Row
}

// Block - элемент тела документа: либо параграф, либо таблица.
// Ровно одно из полей не nil.
type Block struct {
	Paragraph Paragraph
	Table     Table
}

// Document отдаёт блоки в порядке следования. Движок не переставляет блоки.
type Document interface {
	Blocks() []Block
}
