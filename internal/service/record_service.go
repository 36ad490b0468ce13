package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/bigface030/fatten-up-plan/internal/catalog"
	"github.com/bigface030/fatten-up-plan/internal/config"
	"github.com/bigface030/fatten-up-plan/internal/model"
	"github.com/bigface030/fatten-up-plan/internal/repository"
	"github.com/bigface030/fatten-up-plan/pkg/idgen"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ============================================================================
// 记账管线
// ============================================================================
//
// 一次指令就是一条同步管线：解析 -> 解析频道 -> 仓储操作 -> 汇总。
// 管线内部没有并行；多条指令并发时靠各自的数据库事务保证单次操作
// 原子性，同频道的并发操作不做额外串行化，以存储的默认隔离级别为准。
// ============================================================================

const (
	ReplyStatusSuccess = "success"
	ReplyStatusFailed  = "failed"
)

// Reply 管线的统一出口
// 成功时按 Type/Action 带类型化结果，失败时只带消息键，由调用方呈现。
type Reply struct {
	Status    string
	MsgKey    string               // Status == failed 时的消息键
	Type      string               // create / delete / read / system
	Action    string               // read 动作或系统指令名
	Records   []model.RecordDetail // create 的结果，按写入顺序
	Record    *model.RecordDetail  // delete 的结果
	Balance   *Balance             // read_balance 的结果
	Statement []StatementGroup     // read_statement 的结果
}

func failedReply(key string) *Reply {
	return &Reply{Status: ReplyStatusFailed, MsgKey: key}
}

type RecordService struct {
	db          *gorm.DB
	redisClient *redis.Client
	cfg         *config.Config
	parser      *Parser
	channelRepo *repository.ChannelRepository
	recordRepo  *repository.RecordRepository
	outboxRepo  *repository.OutboxRepository
}

func NewRecordService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, c *catalog.Catalog) *RecordService {
	return &RecordService{
		db:          db,
		redisClient: redisClient,
		cfg:         cfg,
		parser:      NewParser(c),
		channelRepo: repository.NewChannelRepository(db),
		recordRepo:  repository.NewRecordRepository(db),
		outboxRepo:  repository.NewOutboxRepository(db),
	}
}

// Execute 执行一次指令输入
// tokenGroups 是按行切好的 token 组；多行输入只允许全部是记账，
// 任何一行解析失败整批拒绝，返回第一个失败。
func (s *RecordService) Execute(ctx context.Context, username string, tokenGroups [][]string) *Reply {
	if len(tokenGroups) > s.cfg.Business.MaxBatchLines {
		return failedReply(KeyInvalidMultiLineLen)
	}

	messages := make([]*ParsedMessage, 0, len(tokenGroups))
	for _, tokens := range tokenGroups {
		message, failure := s.parser.Parse(tokens)
		if failure != nil {
			return failedReply(failure.Key)
		}
		messages = append(messages, message)
	}
	if len(messages) == 0 {
		return failedReply(KeyInvalidCommand)
	}

	if len(messages) > 1 {
		for _, message := range messages {
			if message.Type != MessageTypeCreate {
				return failedReply(KeyInvalidMultiLineType)
			}
		}
	}

	head := messages[0]

	// 系统指令不碰数据库
	if head.Type == MessageTypeSystem {
		return &Reply{Status: ReplyStatusSuccess, Type: MessageTypeSystem, Action: head.Action}
	}

	channelID, err := s.resolveChannelID(ctx, username)
	if err != nil {
		log.Printf("[RecordService] 解析频道失败: username=%s, err=%v", username, err)
		return failedReply(KeyDBQueryFailed)
	}

	switch head.Type {
	case MessageTypeCreate:
		return s.executeCreate(ctx, channelID, username, messages)
	case MessageTypeDelete:
		return s.executeDelete(ctx, channelID, username)
	case MessageTypeRead:
		return s.executeRead(ctx, channelID, head)
	}

	return failedReply(KeyInvalidRecordType)
}

func (s *RecordService) executeCreate(ctx context.Context, channelID int64, username string, messages []*ParsedMessage) *Reply {
	params := make([]repository.CreateRecordParams, 0, len(messages))
	for _, message := range messages {
		params = append(params, *message.Create)
	}

	var details []model.RecordDetail
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		details, txErr = s.recordRepo.CreateBatch(ctx, tx, channelID, username, params)
		if txErr != nil {
			return txErr
		}
		return s.writeEvent(ctx, tx, model.EventRecordCreated, username, details)
	})
	if err != nil {
		log.Printf("[RecordService] 创建记录失败: channelID=%d, err=%v", channelID, err)
		return failedReply(KeyDBQueryFailed)
	}

	return &Reply{Status: ReplyStatusSuccess, Type: MessageTypeCreate, Records: details}
}

func (s *RecordService) executeDelete(ctx context.Context, channelID int64, username string) *Reply {
	var detail *model.RecordDetail
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		detail, txErr = s.recordRepo.DeleteLatest(ctx, tx, channelID, username)
		if txErr != nil {
			return txErr
		}
		return s.writeEvent(ctx, tx, model.EventRecordDeleted, username, []model.RecordDetail{*detail})
	})
	if errors.Is(err, repository.ErrNoRecords) {
		return failedReply(KeyNoRecords)
	}
	if err != nil {
		log.Printf("[RecordService] 删除记录失败: channelID=%d, err=%v", channelID, err)
		return failedReply(KeyDBQueryFailed)
	}

	return &Reply{Status: ReplyStatusSuccess, Type: MessageTypeDelete, Record: detail}
}

func (s *RecordService) executeRead(ctx context.Context, channelID int64, message *ParsedMessage) *Reply {
	records, err := s.recordRepo.ReadInterval(ctx, channelID, message.Interval)
	if err != nil {
		log.Printf("[RecordService] 查询记录失败: channelID=%d, err=%v", channelID, err)
		return failedReply(KeyDBQueryFailed)
	}
	if len(records) == 0 {
		return failedReply(KeyNoRecords)
	}

	switch message.Action {
	case catalog.ActionReadBalance:
		balance := ComputeBalance(records)
		balance.Interval = isoDates(message.Interval)
		return &Reply{Status: ReplyStatusSuccess, Type: MessageTypeRead, Action: message.Action, Balance: balance}
	case catalog.ActionReadStatement:
		return &Reply{Status: ReplyStatusSuccess, Type: MessageTypeRead, Action: message.Action, Statement: GroupByDate(records)}
	}

	return failedReply(KeyInvalidRecordAction)
}

// resolveChannelID 按来访者身份解析频道 ID，首次来访惰性建频道。
// Redis 只是一层可选缓存，不可用时直接走数据库，不影响正确性。
func (s *RecordService) resolveChannelID(ctx context.Context, username string) (int64, error) {
	cacheKey := "channel:" + username

	if s.redisClient != nil {
		if id, err := s.redisClient.Get(ctx, cacheKey).Int64(); err == nil {
			return id, nil
		}
	}

	channel, err := s.channelRepo.GetOrCreate(ctx, username)
	if err != nil {
		return 0, err
	}

	if s.redisClient != nil {
		ttl := time.Duration(s.cfg.Business.ChannelCacheTTLHours) * time.Hour
		if err := s.redisClient.Set(ctx, cacheKey, channel.ID, ttl).Err(); err != nil {
			log.Printf("[RecordService] 缓存频道 ID 失败: %v", err)
		}
	}

	return channel.ID, nil
}

// writeEvent 在业务事务内写入一条记账事件，由 outbox 任务异步投递
func (s *RecordService) writeEvent(ctx context.Context, tx *gorm.DB, event, username string, details []model.RecordDetail) error {
	payload, err := json.Marshal(map[string]interface{}{
		"event":    event,
		"username": username,
		"records":  details,
	})
	if err != nil {
		return err
	}

	msg := &model.OutboxMessage{
		MessageKey: idgen.GenerateEventKey(),
		Topic:      s.cfg.Kafka.Topic.RecordEvent,
		Payload:    string(payload),
		Status:     model.OutboxStatusPending,
	}
	return s.outboxRepo.Create(ctx, tx, msg)
}
