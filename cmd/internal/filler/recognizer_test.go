package filler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognize(t *testing.T) {
	r := NewFieldRecognizer()

	t.Run("синонимы сводятся к одному ключу", func(t *testing.T) {
		for _, label := range []string{"供应商名称", "投标人名称", "公司名称", "单位名称", "乙方"} {
			key, ok := r.Recognize(label)
			require.True(t, ok, label)
			assert.Equal(t, KeyCompanyName, key, label)
		}
	})

	t.Run("пробелы внутри метки игнорируются", func(t *testing.T) {
		key, ok := r.Recognize("供 应 商 名 称")
		require.True(t, ok)
		assert.Equal(t, KeyCompanyName, key)
	})

	t.Run("встроенная отметка зачищается", func(t *testing.T) {
		key, ok := r.Recognize("供应商名称（盖章）")
		require.True(t, ok)
		assert.Equal(t, KeyCompanyName, key)
	})

	t.Run("латиница без учёта регистра", func(t *testing.T) {
		key, ok := r.Recognize("E-Mail")
		require.True(t, ok)
		assert.Equal(t, KeyEmail, key)
	})

	t.Run("неизвестная метка", func(t *testing.T) {
		_, ok := r.Recognize("资质等级")
		assert.False(t, ok)
	})
}

func TestRecognizeAbbreviation(t *testing.T) {
	r := NewFieldRecognizer()

	t.Run("короткие метки", func(t *testing.T) {
		cases := map[string]FieldKey{
			"项目": KeyProjectName,
			"编号": KeyProjectNumber,
			"单位": KeyCompanyName,
			"日期": KeyDate,
		}
		for core, want := range cases {
			key, ok := r.RecognizeAbbreviation(core)
			require.True(t, ok, core)
			assert.Equal(t, want, key, core)
		}
	})

	t.Run("обычная метка не является сокращением", func(t *testing.T) {
		_, ok := r.RecognizeAbbreviation("供应商名称")
		assert.False(t, ok)
	})
}

func TestRecognizeAll(t *testing.T) {
	r := NewFieldRecognizer()

	t.Run("все подметки распознаны", func(t *testing.T) {
		keys, ok := r.RecognizeAll([]string{"项目名称", "项目编号"})
		require.True(t, ok)
		assert.Equal(t, []FieldKey{KeyProjectName, KeyProjectNumber}, keys)
	})

	t.Run("одна нераспознанная подметка отменяет всё", func(t *testing.T) {
		_, ok := r.RecognizeAll([]string{"项目名称", "资质等级"})
		assert.False(t, ok)
	})
}

func TestDataRecordNormalized(t *testing.T) {
	t.Run("псевдонимы телефона и адреса", func(t *testing.T) {
		data := DataRecord{
			keyFixedPhone:    "010-12345678",
			keyOfficeAddress: "北京市朝阳区",
		}
		n := data.Normalized()
		assert.Equal(t, "010-12345678", n[KeyPhone])
		assert.Equal(t, "北京市朝阳区", n[KeyAddress])
	})

	t.Run("каноничный ключ имеет приоритет", func(t *testing.T) {
		data := DataRecord{
			KeyPhone:      "400-000-0000",
			keyFixedPhone: "010-12345678",
		}
		assert.Equal(t, "400-000-0000", data.Normalized()[KeyPhone])
	})

	t.Run("исходная запись не мутируется", func(t *testing.T) {
		data := DataRecord{keyMobilePhone: "13800000000"}
		_ = data.Normalized()
		_, ok := data[KeyPhone]
		assert.False(t, ok)
	})
}
