package filler

import "strings"

// fieldVariants - статическая таблица "каноничный ключ -> поверхностные
// варианты". Шаблоны называют одно и то же поле десятками способов;
// таблица покрывает встречавшиеся в реальных пакетах документации формы
// и инвертируется в обратную карту при создании распознавателя.
var fieldVariants = map[FieldKey][]string{
	KeyCompanyName: {
		"供应商名称", "供应商全称", "投标人名称", "公司名称", "单位名称", "应答人名称",
		"企业名称", "供应商", "投标人", "应答人", "报价人名称", "响应人名称", "投标单位",
		"投标单位名称", "公司全称", "乙方",
	},
	KeyProjectName: {
		"项目名称", "采购项目名称", "招标项目名称", "工程名称", "采购项目",
	},
	KeyProjectNumber: {
		"项目编号", "采购编号", "招标编号", "采购项目编号", "招标项目编号", "编号", "标号", "包号",
	},
	KeyPurchaserName: {
		"采购人", "招标人", "甲方", "采购人名称", "招标人名称", "采购单位", "招标单位",
	},
	KeyAddress: {
		"地址", "注册地址", "办公地址", "联系地址", "单位地址", "公司地址", "通讯地址", "住所",
	},
	KeyPhone: {
		"电话", "联系电话", "固定电话", "电话号码", "联系方式",
	},
	KeyEmail: {
		"电子邮箱", "电子邮件", "邮箱", "email", "e-mail", "电子信箱",
	},
	KeyFax: {
		"传真", "传真号码",
	},
	KeyPostalCode: {
		"邮编", "邮政编码",
	},
	KeyLegalRepresentative: {
		"法定代表人", "法人代表", "法人", "负责人", "法定代表人姓名", "法定代表人或其委托代理人",
	},
	KeyRepresentativeName: {
		"授权人姓名", "供应商代表", "授权代表", "被授权人姓名", "委托代理人姓名", "代表姓名", "授权代表姓名",
	},
	KeyRepresentativeTitle: {
		"职务", "职称", "职位",
	},
	KeyEstablishDate: {
		"成立时间", "成立日期", "注册日期", "注册时间",
	},
	KeySocialCreditCode: {
		"统一社会信用代码", "社会信用代码", "信用代码", "统一信用代码",
	},
	KeyRegisteredCapital: {
		"注册资本", "注册资金",
	},
	KeyBusinessScope: {
		"经营范围", "营业范围",
	},
	KeyCompanyType: {
		"企业类型", "公司类型", "单位性质", "企业性质",
	},
	KeyDate: {
		"日期", "投标日期", "报价日期", "签署日期", "时间",
	},
}

// abbreviationFields - таблица коротких меток для скобочных плейсхолдеров
// вида "（     项目）": ядро не длиннее трёх символов при пяти и более
// пробелах внутри скобок.
var abbreviationFields = map[string]FieldKey{
	"项目": KeyProjectName,
	"编号": KeyProjectNumber,
	"公司": KeyCompanyName,
	"单位": KeyCompanyName,
	"名称": KeyCompanyName,
	"地址": KeyAddress,
	"电话": KeyPhone,
	"邮编": KeyPostalCode,
	"传真": KeyFax,
	"日期": KeyDate,
	"职务": KeyRepresentativeTitle,
}

// FieldRecognizer сводит видимую метку плейсхолдера к каноничному ключу.
type FieldRecognizer struct {
	byVariant map[string]FieldKey
}

func NewFieldRecognizer() *FieldRecognizer {
	byVariant := make(map[string]FieldKey)
	for key, variants := range fieldVariants {
		for _, v := range variants {
			byVariant[strings.ToLower(v)] = key
		}
	}
	return &FieldRecognizer{byVariant: byVariant}
}

// normalizeLabel убирает пробелы, встроенные отметки форматирования и
// приводит латиницу к нижнему регистру.
func normalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	for _, m := range allMarkers {
		label = strings.ReplaceAll(label, m, "")
	}
	label = strings.Map(func(r rune) rune {
		if r == ' ' || r == '　' || r == '\t' {
			return -1
		}
		return r
	}, label)
	return strings.ToLower(label)
}

// Recognize возвращает каноничный ключ метки или пустой ключ, если метка
// не входит в словарь.
func (r *FieldRecognizer) Recognize(label string) (FieldKey, bool) {
	key, ok := r.byVariant[normalizeLabel(label)]
	return key, ok
}

// RecognizeAbbreviation ищет короткую метку в таблице сокращений.
func (r *FieldRecognizer) RecognizeAbbreviation(core string) (FieldKey, bool) {
	key, ok := abbreviationFields[strings.TrimSpace(core)]
	return key, ok
}

// RecognizeAll распознаёт каждую подметку комбинированного поля независимо.
// Возвращает false, если хотя бы одна подметка не распознана.
func (r *FieldRecognizer) RecognizeAll(labels []string) ([]FieldKey, bool) {
	keys := make([]FieldKey, 0, len(labels))
	for _, l := range labels {
		key, ok := r.Recognize(l)
		if !ok {
			return nil, false
		}
		keys = append(keys, key)
	}
	return keys, true
}
