package filler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillKeyValueTable(t *testing.T) {
	e := newTestEngine()

	tbl := newTable(
		[]*fakeCell{newCell("供应商名称"), newCell("")},
		[]*fakeCell{newCell("联系电话"), newCell("____")},
		[]*fakeCell{newCell("资质等级"), newCell("")},
	)
	stats := e.FillDocument(docOf(tbl), testData())

	assert.Equal(t, "测试科技有限公司", cellString(tbl.rows[0].cells[1]))
	assert.Equal(t, "010-12345678", cellString(tbl.rows[1].cells[1]))
	// Нераспознанная метка не трогается.
	assert.Equal(t, "", cellString(tbl.rows[2].cells[1]))
	assert.Equal(t, 2, stats.PatternCounts[KindTable])
}

func TestFillHeaderDataTable(t *testing.T) {
	e := newTestEngine()

	tbl := newTable(
		[]*fakeCell{newCell("项目名称"), newCell("项目编号"), newCell("备注")},
		[]*fakeCell{newCell(""), newCell(""), newCell("无")},
	)
	e.FillDocument(docOf(tbl), testData())

	assert.Equal(t, "智慧城市建设项目", cellString(tbl.rows[1].cells[0]))
	assert.Equal(t, "ZB-2024-001", cellString(tbl.rows[1].cells[1]))
	// Колонка без распознанной метки не трогается.
	assert.Equal(t, "无", cellString(tbl.rows[1].cells[2]))
}

func TestFillMixedTable(t *testing.T) {
	e := newTestEngine()

	tbl := newTable(
		[]*fakeCell{newCell("其他"), newCell("地址____"), newCell("备注")},
		[]*fakeCell{newCell("联系电话"), newCell(""), newCell("x")},
	)
	e.FillDocument(docOf(tbl), testData())

	// Метка с прогоном подчёркиваний переписывается на месте.
	assert.Equal(t, "地址北京市朝阳区", cellString(tbl.rows[0].cells[1]))
	// Чистая метка заполняет соседнюю ячейку.
	assert.Equal(t, "010-12345678", cellString(tbl.rows[1].cells[1]))
}

func TestClassifyColonLabels(t *testing.T) {
	e := newTestEngine()

	t.Run("метки левой колонки с двоеточием", func(t *testing.T) {
		tbl := newTable(
			[]*fakeCell{newCell("供应商名称："), newCell("")},
			[]*fakeCell{newCell("联系电话："), newCell("")},
			[]*fakeCell{newCell("资质等级："), newCell("")},
		)
		assert.Equal(t, tableKeyValue, e.tables.classify(tbl))
	})

	t.Run("метки шапки с двоеточием", func(t *testing.T) {
		tbl := newTable(
			[]*fakeCell{newCell("项目名称:"), newCell("项目编号:"), newCell("备注")},
			[]*fakeCell{newCell(""), newCell(""), newCell("")},
		)
		assert.Equal(t, tableHeaderData, e.tables.classify(tbl))
	})

	t.Run("метка с двоеточием без значения попадает в незаполненные", func(t *testing.T) {
		tbl := newTable(
			[]*fakeCell{newCell("邮政编码："), newCell("")},
			[]*fakeCell{newCell("传真："), newCell("")},
		)
		stats := e.FillDocument(docOf(tbl), testData())

		tableUnfilled := 0
		for _, u := range stats.UnfilledFields {
			if u.Pattern == KindTable {
				tableUnfilled++
			}
		}
		assert.Equal(t, 2, tableUnfilled)
	})
}

func TestTableSignatureRowSkipped(t *testing.T) {
	e := newTestEngine()

	tbl := newTable(
		[]*fakeCell{newCell("供应商名称"), newCell("")},
		[]*fakeCell{newCell("法定代表人（签字）"), newCell("")},
	)
	data := testData()
	data[KeyLegalRepresentative] = "张三"
	stats := e.FillDocument(docOf(tbl), data)

	assert.Equal(t, "测试科技有限公司", cellString(tbl.rows[0].cells[1]))
	// Строка подписи остаётся пустой под собственноручную подпись.
	assert.Equal(t, "", cellString(tbl.rows[1].cells[1]))
	assert.GreaterOrEqual(t, stats.SkippedCount, 1)
}

func TestTableInlinePipeline(t *testing.T) {
	e := newTestEngine()

	// Плейсхолдеры внутри ячеек проходят обычный строчный конвейер.
	tbl := newTable(
		[]*fakeCell{newCell("项目名称：____"), newCell("日期：____年__月__日"), newCell("说明")},
	)
	e.FillDocument(docOf(tbl), testData())

	assert.Equal(t, "项目名称：智慧城市建设项目", cellString(tbl.rows[0].cells[0]))
	assert.Equal(t, "日期：2024年3月7日", cellString(tbl.rows[0].cells[1]))
}

func TestNestedTable(t *testing.T) {
	e := newTestEngine()

	inner := newTable(
		[]*fakeCell{newCell("联系电话"), newCell("")},
		[]*fakeCell{newCell("邮政编码"), newCell("")},
	)
	outer := &fakeTable{rows: []*fakeRow{
		{cells: []*fakeCell{
			{paras: []*fakePara{newPara("内嵌信息")}, tables: []*fakeTable{inner}},
			newCell("备注"),
			newCell(""),
		}},
	}}
	data := testData()
	data[KeyPostalCode] = "100020"
	e.FillDocument(docOf(outer), data)

	assert.Equal(t, "010-12345678", cellString(inner.rows[0].cells[1]))
	assert.Equal(t, "100020", cellString(inner.rows[1].cells[1]))
}

func TestCleanCellPlaceholder(t *testing.T) {
	t.Run("пустая ячейка", func(t *testing.T) {
		out, changed := cleanCellPlaceholder("", "值")
		require.True(t, changed)
		assert.Equal(t, "值", out)
	})

	t.Run("прогон подчёркиваний", func(t *testing.T) {
		out, changed := cleanCellPlaceholder("地址：______", "北京")
		require.True(t, changed)
		assert.Equal(t, "地址：北京", out)
	})

	t.Run("замыкающее двоеточие", func(t *testing.T) {
		out, changed := cleanCellPlaceholder("电话：", "010-12345678")
		require.True(t, changed)
		assert.Equal(t, "电话：010-12345678", out)
	})

	t.Run("пробельный прогон", func(t *testing.T) {
		out, changed := cleanCellPlaceholder("名称　　　　", "值")
		require.True(t, changed)
		assert.Equal(t, "名称值", out)
	})

	t.Run("заполненная ячейка не меняется", func(t *testing.T) {
		out, changed := cleanCellPlaceholder("已有内容", "值")
		assert.False(t, changed)
		assert.Equal(t, "已有内容", out)
	})
}

func TestSetCellText(t *testing.T) {
	t.Run("первый ран получает текст, остальные опустошаются", func(t *testing.T) {
		c := &fakeCell{paras: []*fakePara{newPara("旧", "内容")}}
		require.True(t, setCellText(c, "新值"))
		assert.Equal(t, "新值", c.paras[0].runs[0].text)
		assert.Equal(t, "", c.paras[0].runs[1].text)
	})

	t.Run("ячейка без ранов", func(t *testing.T) {
		c := &fakeCell{paras: []*fakePara{{}}}
		assert.False(t, setCellText(c, "值"))
	})
}
