package render

import (
	"testing"
	"time"

	"github.com/bigface030/fatten-up-plan/internal/catalog"
	"github.com/bigface030/fatten-up-plan/internal/model"
	"github.com/bigface030/fatten-up-plan/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testRenderer() *Renderer {
	return NewRenderer(&catalog.Catalog{
		Tags: map[string]catalog.TagConfig{
			"早餐": {TransactionType: "支出", Classification: "飲食"},
			"午餐": {TransactionType: "支出", Classification: "飲食"},
			"娛樂": {TransactionType: "支出", Classification: ""},
			"薪水": {TransactionType: "收入", Classification: "工作"},
		},
		Intervals: map[string]string{"今日": "today", "本月": "this_month"},
		Localization: map[string]string{
			"create_success": "記帳成功",
			"delete_success": "刪除成功",
			"no_records":     "查無紀錄",
			"expenditure":    "支出",
			"income":         "收入",
			"date":           "日期",
			"category":       "分類",
			"description":    "備註",
			"null":           "無",
			"all":            "全部",
			"total":          "結餘",
		},
		Help: "help text",
	})
}

func testDetail(tag, classification, value string) model.RecordDetail {
	return model.RecordDetail{
		Activity:                 model.ActivityExpenditure,
		AccountingDate:           time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		Amount:                   decimal.RequireFromString(value),
		CustomizedTag:            tag,
		CustomizedClassification: classification,
	}
}

func TestRenderFailed(t *testing.T) {
	r := testRenderer()

	out := r.Render(&service.Reply{Status: service.ReplyStatusFailed, MsgKey: "no_records"})
	assert.Equal(t, "查無紀錄", out)

	// 没有对应文案时原样返回消息键
	out = r.Render(&service.Reply{Status: service.ReplyStatusFailed, MsgKey: "invalid_command"})
	assert.Equal(t, "invalid_command", out)
}

func TestRenderCreate(t *testing.T) {
	r := testRenderer()

	detail := testDetail("早餐", "飲食", "100")
	detail.Description = "信用卡"

	out := r.Render(&service.Reply{
		Status:  service.ReplyStatusSuccess,
		Type:    service.MessageTypeCreate,
		Records: []model.RecordDetail{detail},
	})
	assert.Equal(t, "記帳成功\n支出 早餐 $100\n日期: 2024-06-05, 分類: 飲食, 備註: 信用卡", out)
}

func TestRenderDelete(t *testing.T) {
	r := testRenderer()

	detail := testDetail("娛樂", "", "250")
	out := r.Render(&service.Reply{
		Status: service.ReplyStatusSuccess,
		Type:   service.MessageTypeDelete,
		Record: &detail,
	})
	// 空分类和空备注显示"無"
	assert.Equal(t, "刪除成功\n支出 娛樂 $250\n日期: 2024-06-05, 分類: 無, 備註: 無", out)
}

func TestRenderBalance(t *testing.T) {
	r := testRenderer()

	out := r.Render(&service.Reply{
		Status: service.ReplyStatusSuccess,
		Type:   service.MessageTypeRead,
		Action: catalog.ActionReadBalance,
		Balance: &service.Balance{
			Expenditure: decimal.RequireFromString("0.3"),
			Income:      decimal.RequireFromString("100"),
			Total:       decimal.RequireFromString("99.7"),
			Interval:    []string{"2024-06-01", "2024-06-30"},
		},
	})
	assert.Equal(t,
		"支出: $0.3, 收入: $100, 結餘: $99.7\n日期: 2024-06-01,2024-06-30, 分類: 全部, 備註: 全部",
		out)
}

func TestRenderStatement(t *testing.T) {
	r := testRenderer()

	out := r.Render(&service.Reply{
		Status: service.ReplyStatusSuccess,
		Type:   service.MessageTypeRead,
		Action: catalog.ActionReadStatement,
		Statement: []service.StatementGroup{
			{Date: "2024-06-05", Records: []model.RecordDetail{
				testDetail("早餐", "飲食", "50"),
				testDetail("午餐", "飲食", "120"),
			}},
		},
	})
	assert.Equal(t, "2024-06-05\n支出 早餐 $50\n支出 午餐 $120", out)
}

func TestRenderSystem(t *testing.T) {
	r := testRenderer()

	out := r.Render(&service.Reply{
		Status: service.ReplyStatusSuccess,
		Type:   service.MessageTypeSystem,
		Action: catalog.CommandHelp,
	})
	assert.Equal(t, "help text", out)

	out = r.Render(&service.Reply{
		Status: service.ReplyStatusSuccess,
		Type:   service.MessageTypeSystem,
		Action: catalog.CommandInterval,
	})
	assert.Equal(t, "今日, 本月", out)
}

func TestRenderTags(t *testing.T) {
	r := testRenderer()

	out := r.Render(&service.Reply{
		Status: service.ReplyStatusSuccess,
		Type:   service.MessageTypeSystem,
		Action: catalog.CommandTag,
	})

	// 按 交易类型 -> 分类 分层，未分类的直接跟在类型后面
	assert.Equal(t,
		"1. 支出: \n娛樂\n(1) 飲食: \n午餐, 早餐\n2. 收入: \n(1) 工作: \n薪水",
		out)
}
