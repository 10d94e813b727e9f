package filler

import "strings"

// FieldClass - классификация каноничного ключа, определяющая политику
// заполнения рядом с отметками о печати/подписи.
type FieldClass int

const (
	// ClassGeneral - обычное поле, заполняется безусловно при наличии данных.
	ClassGeneral FieldClass = iota
	// ClassUnit - наименование организации: заполняется даже при отметке
	// （盖章）, сама отметка сохраняется после значения под живую печать.
	ClassUnit
	// ClassPerson - имя физического лица: рядом с отметкой подписи поле
	// оставляется пустым для собственноручной подписи.
	ClassPerson
)

// Отметки форматирования - трёхчастная таксономия, полноширинные и
// полуширинные варианты.
var (
	sealMarkers = []string{
		"（加盖单位公章）", "（加盖公章）", "（盖单位章）", "（盖企业章）", "（盖公章）", "（公章）", "（盖章）",
		"(加盖单位公章)", "(加盖公章)", "(盖单位章)", "(盖企业章)", "(盖公章)", "(公章)", "(盖章)",
	}
	signatureMarkers = []string{
		"（签字）", "（签名）", "（签章）",
		"(签字)", "(签名)", "(签章)",
	}
	combinedMarkers = []string{
		"（签字或盖章）", "（签字及盖章）", "（签字并盖章）",
		"(签字或盖章)", "(签字及盖章)", "(签字并盖章)",
	}
)

// allMarkers - объединённый список. Комбинированные отметки идут первыми,
// чтобы поиск подстроки не срезал их до короткого варианта.
var allMarkers = func() []string {
	out := make([]string, 0, len(combinedMarkers)+len(sealMarkers)+len(signatureMarkers))
	out = append(out, combinedMarkers...)
	out = append(out, sealMarkers...)
	out = append(out, signatureMarkers...)
	return out
}()

// personKeywords - признаки строки подписи физического лица.
var personKeywords = []string{
	"法定代表人", "法人", "授权代表", "委托代理人", "代理人", "被授权人", "代表",
}

// materialKeywords - ссылки на прилагаемые материалы: такие строки описывают
// документы, а не поля для заполнения.
var materialKeywords = []string{
	"复印件", "证明", "原件", "扫描件", "附件", "材料清单", "提供材料",
}

// idNumberLabels - метки номера удостоверения. Содержат "复印件"-подобные
// слова по соседству, но сами являются полями данных, а не ссылками
// на материалы.
var idNumberLabels = []string{"身份证号码", "身份证号"}

var fieldClasses = map[FieldKey]FieldClass{
	KeyCompanyName:         ClassUnit,
	KeyPurchaserName:       ClassUnit,
	KeyLegalRepresentative: ClassPerson,
	KeyRepresentativeName:  ClassPerson,
}

// FieldClassifier решает, заполнять ли распознанный плейсхолдер с учётом
// окружающих отметок печати/подписи. Таблицы констант неизменяемы и
// безопасны для совместного использования.
type FieldClassifier struct{}

func NewFieldClassifier() *FieldClassifier {
	return &FieldClassifier{}
}

// Classify возвращает класс каноничного ключа.
func (c *FieldClassifier) Classify(key FieldKey) FieldClass {
	if cl, ok := fieldClasses[key]; ok {
		return cl
	}
	return ClassGeneral
}

// ExtractFormatMarker возвращает первую отметку из объединённого списка,
// найденную поиском подстроки, либо пустую строку.
func (c *FieldClassifier) ExtractFormatMarker(text string) string {
	for _, m := range allMarkers {
		if strings.Contains(text, m) {
			return m
		}
	}
	return ""
}

func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// ShouldFill решает, можно ли заполнять поле key в окружении surrounding.
//
// Порядок проверок фиксирован:
//  1. отметка печати/подписи вместе с персональным словом - строка подписи,
//     не заполняется независимо от классификации (и даже если распознавание
//     не удалось);
//  2. ссылка на прилагаемые материалы - не заполняется, кроме меток номера
//     удостоверения;
//  3. нераспознанный ключ - безопасный отказ;
//  4. персональное поле рядом с любой отметкой оставляется под подпись.
func (c *FieldClassifier) ShouldFill(surrounding string, key FieldKey) bool {
	hasMarker := c.ExtractFormatMarker(surrounding) != ""
	hasPerson := containsAny(surrounding, personKeywords)

	if hasMarker && hasPerson {
		return false
	}

	if containsAny(surrounding, materialKeywords) && !containsAny(surrounding, idNumberLabels) {
		return false
	}

	if key == "" {
		return false
	}

	if c.Classify(key) == ClassPerson && hasMarker {
		return false
	}

	return true
}

// ShouldPreserveMarker сообщает, нужно ли переиздать отметку после
// заполненного значения: только для организаций и только для отметок печати.
func (c *FieldClassifier) ShouldPreserveMarker(key FieldKey, marker string) bool {
	if marker == "" {
		return false
	}
	if c.Classify(key) != ClassUnit {
		return false
	}
	for _, m := range sealMarkers {
		if m == marker {
			return true
		}
	}
	return false
}

// isKnownMarker сообщает, является ли текст целиком одной из отметок.
func isKnownMarker(text string) bool {
	for _, m := range allMarkers {
		if m == text {
			return true
		}
	}
	return false
}
