package service

import (
	"testing"
	"time"

	"github.com/bigface030/fatten-up-plan/internal/catalog"
	"github.com/bigface030/fatten-up-plan/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Dictionary: map[string]string{
			"支出":    "expenditure",
			"收入":    "income",
			"刪除上一筆": "delete_latest",
			"查詢":    "look_up",
			"明細":    "check_detail",
			"說明":    "help",
			"標籤":    "tag",
			"區間":    "interval",
		},
		Tags: map[string]catalog.TagConfig{
			"早餐": {TransactionType: "支出", Classification: "飲食"},
			"午餐": {TransactionType: "支出", Classification: "飲食"},
			"薪水": {TransactionType: "收入", Classification: "工作"},
			"怪帳": {TransactionType: "沖帳", Classification: ""}, // 词典里查不到的交易类型
		},
		Intervals: map[string]string{
			"今日": "today",
			"昨日": "yesterday",
			"本週": "this_week",
			"本月": "this_month",
		},
		Localization: map[string]string{},
		Help:         "help text",
	}
}

func testParser(now time.Time) *Parser {
	p := NewParser(testCatalog())
	p.now = func() time.Time { return now }
	return p
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseInvalidCommand(t *testing.T) {
	p := testParser(date("2024-06-05"))

	_, failure := p.Parse([]string{"ABC"})
	require.NotNil(t, failure)
	assert.Equal(t, KeyInvalidCommand, failure.Key)

	_, failure = p.Parse(nil)
	require.NotNil(t, failure)
	assert.Equal(t, KeyInvalidCommand, failure.Key)

	// "支出"是词典 token 但不是标签，不能直接记账
	_, failure = p.Parse([]string{"支出", "100"})
	require.NotNil(t, failure)
	assert.Equal(t, KeyInvalidTag, failure.Key)
}

func TestParseDeleteLatest(t *testing.T) {
	p := testParser(date("2024-06-05"))

	_, failure := p.Parse([]string{"刪除上一筆", "ABC"})
	require.NotNil(t, failure)
	assert.Equal(t, KeyInvalidParamsLength, failure.Key)

	message, failure := p.Parse([]string{"刪除上一筆"})
	require.Nil(t, failure)
	assert.Equal(t, MessageTypeDelete, message.Type)
}

func TestParseSystemCommand(t *testing.T) {
	p := testParser(date("2024-06-05"))

	message, failure := p.Parse([]string{"說明"})
	require.Nil(t, failure)
	assert.Equal(t, MessageTypeSystem, message.Type)
	assert.Equal(t, catalog.CommandHelp, message.Action)

	// 系统指令不接受参数
	_, failure = p.Parse([]string{"標籤", "ABC"})
	require.NotNil(t, failure)
	assert.Equal(t, KeyInvalidParamsLength, failure.Key)
}

func TestParseRead(t *testing.T) {
	p := testParser(date("2024-06-05")) // 星期三

	t.Run("interval alias", func(t *testing.T) {
		message, failure := p.Parse([]string{"查詢", "今日"})
		require.Nil(t, failure)
		assert.Equal(t, MessageTypeRead, message.Type)
		assert.Equal(t, catalog.ActionReadBalance, message.Action)
		assert.Equal(t, []time.Time{model.DateOnly(date("2024-06-05"))}, message.Interval)

		// 别名后面不允许再带参数
		_, failure = p.Parse([]string{"查詢", "今日", "ABC"})
		require.NotNil(t, failure)
		assert.Equal(t, KeyInvalidParamsLength, failure.Key)
	})

	t.Run("params length", func(t *testing.T) {
		_, failure := p.Parse([]string{"查詢"})
		require.NotNil(t, failure)
		assert.Equal(t, KeyInvalidParamsLength, failure.Key)

		_, failure = p.Parse([]string{"查詢", "20240531", "20240601", "ABC"})
		require.NotNil(t, failure)
		assert.Equal(t, KeyInvalidParamsLength, failure.Key)
	})

	t.Run("date format", func(t *testing.T) {
		// 民国年份不是 8 位
		_, failure := p.Parse([]string{"查詢", "1130531"})
		require.NotNil(t, failure)
		assert.Equal(t, KeyInvalidParamsValue, failure.Key)

		_, failure = p.Parse([]string{"查詢", "20240531", "1130601"})
		require.NotNil(t, failure)
		assert.Equal(t, KeyInvalidParamsValue, failure.Key)

		// 位数对但不是合法日期
		_, failure = p.Parse([]string{"查詢", "20241301"})
		require.NotNil(t, failure)
		assert.Equal(t, KeyInvalidParamsValue, failure.Key)
	})

	t.Run("explicit dates", func(t *testing.T) {
		message, failure := p.Parse([]string{"查詢", "20240531"})
		require.Nil(t, failure)
		assert.Equal(t, []time.Time{model.DateOnly(date("2024-05-31"))}, message.Interval)

		message, failure = p.Parse([]string{"查詢", "20240531", "20240601"})
		require.Nil(t, failure)
		assert.Equal(t, []time.Time{
			model.DateOnly(date("2024-05-31")),
			model.DateOnly(date("2024-06-01")),
		}, message.Interval)

		// 两个日期按输入顺序保留，降序也照单全收
		message, failure = p.Parse([]string{"查詢", "20240601", "20240531"})
		require.Nil(t, failure)
		assert.Equal(t, []time.Time{
			model.DateOnly(date("2024-06-01")),
			model.DateOnly(date("2024-05-31")),
		}, message.Interval)
	})

	t.Run("check detail action", func(t *testing.T) {
		message, failure := p.Parse([]string{"明細", "本月"})
		require.Nil(t, failure)
		assert.Equal(t, catalog.ActionReadStatement, message.Action)
	})
}

func TestParseCreate(t *testing.T) {
	p := testParser(date("2024-06-05"))

	t.Run("params length", func(t *testing.T) {
		_, failure := p.Parse([]string{"早餐", "100", "信用卡", "ABC"})
		require.NotNil(t, failure)
		assert.Equal(t, KeyInvalidParamsLength, failure.Key)
	})

	t.Run("amount", func(t *testing.T) {
		_, failure := p.Parse([]string{"早餐"})
		require.NotNil(t, failure)
		assert.Equal(t, KeyInvalidAmount, failure.Key)

		_, failure = p.Parse([]string{"早餐", "$100"})
		require.NotNil(t, failure)
		assert.Equal(t, KeyInvalidAmount, failure.Key)
	})

	t.Run("expenditure", func(t *testing.T) {
		message, failure := p.Parse([]string{"早餐", "100"})
		require.Nil(t, failure)
		assert.Equal(t, MessageTypeCreate, message.Type)
		require.NotNil(t, message.Create)
		assert.Equal(t, model.ActivityExpenditure, message.Create.Activity)
		assert.Equal(t, "早餐", message.Create.CustomizedTag)
		assert.Equal(t, "飲食", message.Create.CustomizedClassification)
		assert.True(t, message.Create.Amount.Equal(decimal.NewFromInt(100)))
		assert.Empty(t, message.Create.Description)
	})

	t.Run("income with description", func(t *testing.T) {
		message, failure := p.Parse([]string{"薪水", "50000", "六月"})
		require.Nil(t, failure)
		assert.Equal(t, model.ActivityIncome, message.Create.Activity)
		assert.Equal(t, "六月", message.Create.Description)
	})

	t.Run("sign stripped", func(t *testing.T) {
		message, failure := p.Parse([]string{"早餐", "-100"})
		require.Nil(t, failure)
		assert.True(t, message.Create.Amount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("numeric description", func(t *testing.T) {
		message, failure := p.Parse([]string{"早餐", "100", "100"})
		require.Nil(t, failure)
		assert.Equal(t, "100", message.Create.Description)
	})

	t.Run("misconfigured tag", func(t *testing.T) {
		// 标签的交易类型在词典里查不到 activity，算配置错误
		_, failure := p.Parse([]string{"怪帳", "100"})
		require.NotNil(t, failure)
		assert.Equal(t, KeyInvalidConfigs, failure.Key)
	})
}

func TestTokenize(t *testing.T) {
	assert.Nil(t, Tokenize("   "))
	assert.Equal(t, [][]string{{"早餐", "100"}}, Tokenize("早餐 100"))
	assert.Equal(t, [][]string{
		{"早餐", "100"},
		{"午餐", "200", "信用卡"},
	}, Tokenize("早餐 100\n\n午餐  200\t信用卡\n"))
}
