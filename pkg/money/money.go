package money

import (
	"github.com/shopspring/decimal"
)

// ============================================================================
// 金额运算
// ============================================================================
//
// 货币金额统一保留两位小数（分）。所有加减都先把操作数对齐到分，
// 再做定点运算，避免二进制浮点累加产生的尾差
// （0.1 + 0.2 必须精确等于 0.30）。
// ============================================================================

const scale = 2

// Add 金额求和，结果对齐到分
func Add(nums ...decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, n := range nums {
		sum = sum.Add(n.Round(scale))
	}
	return sum.Round(scale)
}

// Sub 从第一个数依次减去其余数，结果对齐到分
func Sub(first decimal.Decimal, rest ...decimal.Decimal) decimal.Decimal {
	result := first.Round(scale)
	for _, n := range rest {
		result = result.Sub(n.Round(scale))
	}
	return result.Round(scale)
}

// Parse 解析金额字符串并取绝对值，返回是否为合法数字。
// 符号一律丢弃，正负语义由记录的活动类型决定。
func Parse(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Abs().Round(scale), true
}
