package service

import (
	"github.com/bigface030/fatten-up-plan/internal/model"
	"github.com/bigface030/fatten-up-plan/pkg/money"

	"github.com/shopspring/decimal"
)

// Balance 区间内的收支合计
// 支出和收入分开累计，结余 = 收入 - 支出，冲销记录不计入。
type Balance struct {
	Expenditure decimal.Decimal `json:"expenditure"`
	Income      decimal.Decimal `json:"income"`
	Total       decimal.Decimal `json:"total"`
	Interval    []string        `json:"interval"`
}

// StatementGroup 对账单里的一个日期分组
type StatementGroup struct {
	Date    string               `json:"date"`
	Records []model.RecordDetail `json:"records"`
}

// ComputeBalance 按活动类型汇总金额，定点累加不丢分
func ComputeBalance(records []model.RecordDetail) *Balance {
	expenditure := decimal.Zero
	income := decimal.Zero

	for i := range records {
		switch records[i].Activity {
		case model.ActivityExpenditure:
			expenditure = money.Add(expenditure, records[i].Amount)
		case model.ActivityIncome:
			income = money.Add(income, records[i].Amount)
		}
	}

	return &Balance{
		Expenditure: expenditure,
		Income:      income,
		Total:       money.Sub(income, expenditure),
	}
}

// GroupByDate 按记账日期分组
// 日期按在输入序列里首次出现的顺序排列，组内保持存储返回的顺序。
func GroupByDate(records []model.RecordDetail) []StatementGroup {
	var groups []StatementGroup
	index := make(map[string]int)

	for _, record := range records {
		date := record.DateString()
		if i, ok := index[date]; ok {
			groups[i].Records = append(groups[i].Records, record)
		} else {
			index[date] = len(groups)
			groups = append(groups, StatementGroup{
				Date:    date,
				Records: []model.RecordDetail{record},
			})
		}
	}

	return groups
}
