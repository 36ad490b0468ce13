package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bigface030/fatten-up-plan/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNoRecords = errors.New("没有符合的记录")

// CreateRecordParams 一条新记录的参数（来自一行已通过校验的输入）
type CreateRecordParams struct {
	Activity                 string
	Amount                   decimal.Decimal
	Description              string
	CustomizedTag            string
	CustomizedClassification string
}

type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// recordDetailColumns 是 records JOIN transactions 摊平查询的选择列
const recordDetailColumns = "records.id, records.channel_id, records.accounting_date, " +
	"records.activity, records.description, records.created_at, records.created_by, " +
	"records.transaction_order, transactions.username, transactions.amount, " +
	"transactions.customized_classification, transactions.customized_tag"

// CreateBatch 插入一批 Record + Transaction 对，按传入顺序返回。
//
// 批量（N > 1）时每条记录带递增的 transaction_order（1,2,3...），
// 单条时不设置。记账日期取当天。调用方负责把本方法包在事务里，
// 任何一条失败整批回滚，不会留下半个 Record/Transaction 对。
func (r *RecordRepository) CreateBatch(ctx context.Context, tx *gorm.DB, channelID int64, username string, params []CreateRecordParams) ([]model.RecordDetail, error) {
	if tx == nil {
		tx = r.db
	}

	today := model.DateOnly(time.Now())
	details := make([]model.RecordDetail, 0, len(params))

	for i, p := range params {
		record := &model.Record{
			ChannelID:      channelID,
			AccountingDate: today,
			Activity:       p.Activity,
			Description:    p.Description,
			CreatedBy:      username,
		}
		if len(params) > 1 {
			order := i + 1
			record.TransactionOrder = &order
		}

		if err := tx.WithContext(ctx).Create(record).Error; err != nil {
			return nil, err
		}

		transaction := &model.Transaction{
			RecordID:                 record.ID,
			Username:                 username,
			Amount:                   p.Amount,
			CustomizedClassification: p.CustomizedClassification,
			CustomizedTag:            p.CustomizedTag,
		}
		if err := tx.WithContext(ctx).Create(transaction).Error; err != nil {
			return nil, err
		}

		details = append(details, joinDetail(record, transaction))
	}

	return details, nil
}

// DeleteLatest 软删除频道内最近一条有效记录，返回被删的记录。
//
// 先按 created_at 倒序取最新，再按 transaction_order 倒序打破平局：
// 同一批次写入的多条记录 created_at 相同，"删除上一笔"只撤销
// 批次里的最后一行，不是整个批次。没有有效记录时返回 ErrNoRecords。
func (r *RecordRepository) DeleteLatest(ctx context.Context, tx *gorm.DB, channelID int64, username string) (*model.RecordDetail, error) {
	if tx == nil {
		tx = r.db
	}

	var record model.Record
	err := tx.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Order("transaction_order DESC").
		Order("id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRecords
		}
		return nil, err
	}

	result := tx.WithContext(ctx).
		Model(&model.Record{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": username,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// 并发删除抢先了一步
		return nil, ErrNoRecords
	}

	var transaction model.Transaction
	if err := tx.WithContext(ctx).Where("record_id = ?", record.ID).First(&transaction).Error; err != nil {
		return nil, err
	}

	detail := joinDetail(&record, &transaction)
	return &detail, nil
}

// ReadInterval 查询频道内指定区间的有效记录。
//
// 两个端点走闭区间 BETWEEN，端点按调用方给的顺序原样传入，
// 不做大小交换——倒序区间查不到东西是既有行为。单个端点做等值匹配。
func (r *RecordRepository) ReadInterval(ctx context.Context, channelID int64, interval []time.Time) ([]model.RecordDetail, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Record{}).
		Select(recordDetailColumns).
		Joins("JOIN transactions ON transactions.record_id = records.id").
		Where("records.channel_id = ?", channelID)

	if len(interval) > 1 {
		query = query.Where("records.accounting_date BETWEEN ? AND ?", interval[0], interval[1])
	} else {
		query = query.Where("records.accounting_date = ?", interval[0])
	}

	var details []model.RecordDetail
	err := query.Order("records.id ASC").Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func joinDetail(record *model.Record, transaction *model.Transaction) model.RecordDetail {
	return model.RecordDetail{
		ID:                       record.ID,
		ChannelID:                record.ChannelID,
		AccountingDate:           record.AccountingDate,
		Activity:                 record.Activity,
		Description:              record.Description,
		CreatedAt:                record.CreatedAt,
		CreatedBy:                record.CreatedBy,
		TransactionOrder:         record.TransactionOrder,
		Username:                 transaction.Username,
		Amount:                   transaction.Amount,
		CustomizedClassification: transaction.CustomizedClassification,
		CustomizedTag:            transaction.CustomizedTag,
	}
}
