package repository

import (
	"context"
	"errors"

	"github.com/bigface030/fatten-up-plan/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrChannelNotFound = errors.New("频道不存在")

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// GetByName 按名字查未删除的频道，查不到返回 nil
func (r *ChannelRepository) GetByName(ctx context.Context, name string) (*model.Channel, error) {
	var channel model.Channel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

// GetOrCreate 按来访者身份解析频道，不存在就建一个。
//
// 两个并发的首次来访可能同时判定"频道不存在"并各自插入，
// 所以插入走 ON CONFLICT DO NOTHING，冲突后重读一次，
// 保证同一个名字永远只落一行、返回同一个 ID。
func (r *ChannelRepository) GetOrCreate(ctx context.Context, username string) (*model.Channel, error) {
	channel, err := r.GetByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if channel != nil {
		return channel, nil
	}

	newChannel := &model.Channel{
		Name:      username,
		CreatedBy: username,
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(newChannel).Error
	if err != nil {
		return nil, err
	}

	// 冲突时本次插入没有生效，重读拿真正落库的那行
	channel, err = r.GetByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}
	return channel, nil
}
