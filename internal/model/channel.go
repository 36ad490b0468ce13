package model

import (
	"time"

	"gorm.io/gorm"
)

// Channel 记账频道表
// 每个聊天来源（用户名）对应一个频道，作为多租户边界，
// 所有记录都挂在频道下。首次来访时惰性创建，正常运行中只做逻辑删除。
type Channel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"` // 来访者身份（用户名），全局唯一
	Metadata  string         `gorm:"type:varchar(255)" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy string         `gorm:"type:varchar(64)" json:"created_by"`
	DeletedBy string         `gorm:"type:varchar(64)" json:"-"`
}

func (Channel) TableName() string {
	return "channels"
}
