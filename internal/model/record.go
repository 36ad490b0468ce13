package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================================
// 记账活动类型常量
// ============================================================================

const (
	ActivityExpenditure = "expenditure" // 支出
	ActivityIncome      = "income"      // 收入
	ActivityOffset      = "offset"      // 冲销
)

// ============================================================================
// 记账记录实体
// ============================================================================

// Record 记账记录表头
// accounting_date 是记账的逻辑日期，与 created_at（写入时刻）区分开。
// 删除只设置 deleted_at / deleted_by，从不做物理删除。
//
// transaction_order 只在一次多行输入产生多条记录时才有值（1,2,3...），
// 用来区分同一批次内（created_at 相同）的先后顺序。
type Record struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ChannelID        int64          `gorm:"index;not null" json:"channel_id"`
	AccountingDate   time.Time      `gorm:"type:date;not null;index" json:"accounting_date"`
	Activity         string         `gorm:"type:varchar(20);not null" json:"activity"`
	Description      string         `gorm:"type:varchar(255)" json:"description,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy        string         `gorm:"type:varchar(64)" json:"created_by"`
	DeletedBy        string         `gorm:"type:varchar(64)" json:"-"`
	TransactionOrder *int           `gorm:"column:transaction_order" json:"transaction_order,omitempty"`
}

func (Record) TableName() string {
	return "records"
}

// Transaction 金额明细表
// 与 Record 一对一（record_id 唯一），与所属 Record 在同一个数据库
// 事务中创建和删除。amount 永远存非负数，正负语义由 Record.Activity 决定。
type Transaction struct {
	RecordID                 int64           `gorm:"primaryKey;autoIncrement:false" json:"record_id"`
	Username                 string          `gorm:"type:varchar(64);not null" json:"username"`
	Amount                   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CustomizedClassification string          `gorm:"type:varchar(64)" json:"customized_classification,omitempty"`
	CustomizedTag            string          `gorm:"type:varchar(64)" json:"customized_tag,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// RecordDetail 是 records JOIN transactions 之后摊平的一行，
// 查询和响应都用它，不单独落库。
type RecordDetail struct {
	ID                       int64           `json:"id"`
	ChannelID                int64           `json:"channel_id"`
	AccountingDate           time.Time       `json:"accounting_date"`
	Activity                 string          `json:"activity"`
	Description              string          `json:"description,omitempty"`
	CreatedAt                time.Time       `json:"created_at"`
	CreatedBy                string          `json:"created_by"`
	TransactionOrder         *int            `json:"transaction_order,omitempty"`
	Username                 string          `json:"username"`
	Amount                   decimal.Decimal `json:"amount"`
	CustomizedClassification string          `json:"customized_classification,omitempty"`
	CustomizedTag            string          `json:"customized_tag,omitempty"`
}

// DateString 返回记账日期的 ISO 格式（YYYY-MM-DD）
func (d *RecordDetail) DateString() string {
	return d.AccountingDate.Format("2006-01-02")
}

// DateOnly 把时间截断成 UTC 零点的纯日期
// accounting_date 一律用这个形态存取，保证等值和区间比较一致。
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
