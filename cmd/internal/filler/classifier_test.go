package filler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := NewFieldClassifier()

	assert.Equal(t, ClassUnit, c.Classify(KeyCompanyName))
	assert.Equal(t, ClassUnit, c.Classify(KeyPurchaserName))
	assert.Equal(t, ClassPerson, c.Classify(KeyLegalRepresentative))
	assert.Equal(t, ClassPerson, c.Classify(KeyRepresentativeName))
	assert.Equal(t, ClassGeneral, c.Classify(KeyPhone))
	assert.Equal(t, ClassGeneral, c.Classify(KeyProjectName))
}

func TestExtractFormatMarker(t *testing.T) {
	c := NewFieldClassifier()

	t.Run("отметка печати", func(t *testing.T) {
		assert.Equal(t, "（盖章）", c.ExtractFormatMarker("供应商名称：（盖章）"))
	})

	t.Run("комбинированная отметка не срезается до короткой", func(t *testing.T) {
		assert.Equal(t, "（签字或盖章）", c.ExtractFormatMarker("法定代表人：（签字或盖章）"))
	})

	t.Run("полуширинная отметка", func(t *testing.T) {
		assert.Equal(t, "(盖章)", c.ExtractFormatMarker("单位名称:(盖章)"))
	})

	t.Run("без отметки", func(t *testing.T) {
		assert.Empty(t, c.ExtractFormatMarker("项目名称：____"))
	})
}

func TestShouldFill(t *testing.T) {
	c := NewFieldClassifier()

	t.Run("обычное поле заполняется", func(t *testing.T) {
		assert.True(t, c.ShouldFill("项目名称：____", KeyProjectName))
	})

	t.Run("организация заполняется даже при отметке печати", func(t *testing.T) {
		assert.True(t, c.ShouldFill("供应商名称：（盖章）", KeyCompanyName))
	})

	t.Run("персональное поле при отметке подписи не заполняется", func(t *testing.T) {
		assert.False(t, c.ShouldFill("法定代表人：（签字）", KeyLegalRepresentative))
	})

	t.Run("персональное слово с отметкой блокирует даже нераспознанный ключ", func(t *testing.T) {
		assert.False(t, c.ShouldFill("授权代表（签字）", ""))
	})

	t.Run("ссылка на материалы не заполняется", func(t *testing.T) {
		assert.False(t, c.ShouldFill("营业执照复印件", KeyCompanyName))
	})

	t.Run("номер удостоверения остаётся полем данных", func(t *testing.T) {
		assert.True(t, c.ShouldFill("身份证号码：____", KeySocialCreditCode))
	})

	t.Run("пустой ключ без контекста", func(t *testing.T) {
		assert.False(t, c.ShouldFill("какой-то текст", ""))
	})
}

func TestShouldPreserveMarker(t *testing.T) {
	c := NewFieldClassifier()

	t.Run("печать у организации сохраняется", func(t *testing.T) {
		assert.True(t, c.ShouldPreserveMarker(KeyCompanyName, "（盖章）"))
	})

	t.Run("подпись не переиздаётся", func(t *testing.T) {
		assert.False(t, c.ShouldPreserveMarker(KeyCompanyName, "（签字）"))
	})

	t.Run("отметка у обычного поля не переиздаётся", func(t *testing.T) {
		assert.False(t, c.ShouldPreserveMarker(KeyProjectName, "（盖章）"))
	})

	t.Run("пустая отметка", func(t *testing.T) {
		assert.False(t, c.ShouldPreserveMarker(KeyCompanyName, ""))
	})
}
