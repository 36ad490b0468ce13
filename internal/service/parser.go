package service

import (
	"strings"
	"time"

	"github.com/bigface030/fatten-up-plan/internal/catalog"
	"github.com/bigface030/fatten-up-plan/internal/model"
	"github.com/bigface030/fatten-up-plan/internal/repository"
	"github.com/bigface030/fatten-up-plan/pkg/money"
)

// ============================================================================
// 指令解析
// ============================================================================
//
// 一行输入按空白切成 token，按优先级匹配：
//   1. 系统指令（说明 / 标签 / 区间）—— 不碰数据库
//   2. 删除上一笔 —— 不允许带参数
//   3. 查询 / 明细 —— 参数是区间别名，或 1~2 个 YYYYMMDD 日期
//   4. 记账标签 —— <标签> <金额> [备注]，最多 3 个 token
//
// 解析在任何数据库操作之前完成，失败就地返回消息键，没有副作用。
// ============================================================================

// 请求类型
const (
	MessageTypeCreate = "create"
	MessageTypeDelete = "delete"
	MessageTypeRead   = "read"
	MessageTypeSystem = "system"
)

// ParsedMessage 一行输入解析出的类型化请求
type ParsedMessage struct {
	Type     string                          // create / delete / read / system
	Action   string                          // read 的动作（read_balance / read_statement），或系统指令名
	Create   *repository.CreateRecordParams  // Type == create 时有值
	Interval []time.Time                     // Type == read 时有值，1~2 个日期，保持输入顺序
}

// Tokenize 把整段输入按行切分，每行再按空白切成 token，空行丢弃。
// webhook 和 CLI 入口共用同一份切分规则。
func Tokenize(text string) [][]string {
	var groups [][]string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		groups = append(groups, tokens)
	}
	return groups
}

type Parser struct {
	catalog *catalog.Catalog
	now     func() time.Time // 测试时可替换
}

func NewParser(c *catalog.Catalog) *Parser {
	return &Parser{catalog: c, now: time.Now}
}

// Parse 解析一行 token，失败时返回带消息键的 Failure
func (p *Parser) Parse(tokens []string) (*ParsedMessage, *Failure) {
	if len(tokens) == 0 {
		return nil, NewFailure(KeyInvalidCommand)
	}

	command, inDictionary := p.catalog.Dictionary[tokens[0]]
	_, inTags := p.catalog.Tags[tokens[0]]
	if !inDictionary && !inTags {
		return nil, NewFailure(KeyInvalidCommand)
	}

	if inDictionary && catalog.IsSystemCommand(command) {
		if len(tokens) > 1 {
			return nil, NewFailure(KeyInvalidParamsLength)
		}
		return &ParsedMessage{Type: MessageTypeSystem, Action: command}, nil
	}

	if command == catalog.CommandDeleteLatest {
		if len(tokens) > 1 {
			return nil, NewFailure(KeyInvalidParamsLength)
		}
		return &ParsedMessage{Type: MessageTypeDelete}, nil
	}

	if command == catalog.CommandLookUp || command == catalog.CommandCheckDetail {
		return p.parseRead(command, tokens[1:])
	}

	// 词典没命中任何指令（比如直接输入"支出"），或压根不在词典里：
	// 剩下的唯一可能是记账标签
	return p.parseCreate(tokens)
}

func (p *Parser) parseRead(command string, params []string) (*ParsedMessage, *Failure) {
	action := catalog.ActionReadBalance
	if command == catalog.CommandCheckDetail {
		action = catalog.ActionReadStatement
	}

	// 区间别名优先：查询 今日 / 本週 / 上月 ...
	if len(params) > 0 {
		if name, ok := p.catalog.Intervals[params[0]]; ok && catalog.IsDefaultInterval(name) {
			if len(params) > 1 {
				return nil, NewFailure(KeyInvalidParamsLength)
			}
			return &ParsedMessage{
				Type:     MessageTypeRead,
				Action:   action,
				Interval: expandInterval(name, p.now()),
			}, nil
		}
	}

	if len(params) < 1 || len(params) > 2 {
		return nil, NewFailure(KeyInvalidParamsLength)
	}

	interval := make([]time.Time, 0, len(params))
	for _, param := range params {
		date, ok := parseDateToken(param)
		if !ok {
			return nil, NewFailure(KeyInvalidParamsValue)
		}
		interval = append(interval, date)
	}

	// 两个日期按输入顺序原样保留，不做大小交换
	return &ParsedMessage{Type: MessageTypeRead, Action: action, Interval: interval}, nil
}

func (p *Parser) parseCreate(tokens []string) (*ParsedMessage, *Failure) {
	tag, ok := p.catalog.Tags[tokens[0]]
	if !ok {
		return nil, NewFailure(KeyInvalidTag)
	}

	if len(tokens) > 3 {
		return nil, NewFailure(KeyInvalidParamsLength)
	}
	if len(tokens) < 2 {
		// 没给金额
		return nil, NewFailure(KeyInvalidAmount)
	}

	amount, ok := money.Parse(tokens[1])
	if !ok {
		return nil, NewFailure(KeyInvalidAmount)
	}

	// 标签的 transaction_type 再查一次词典才是 activity。
	// 解析出的 activity 不在支出/收入之内说明词典和标签目录配置对不上，
	// 这是管理员侧的数据完整性问题，不是用户输错
	activity := p.catalog.Dictionary[tag.TransactionType]
	if activity != model.ActivityExpenditure && activity != model.ActivityIncome {
		return nil, NewFailure(KeyInvalidConfigs)
	}

	description := ""
	if len(tokens) == 3 {
		description = tokens[2]
	}

	return &ParsedMessage{
		Type: MessageTypeCreate,
		Create: &repository.CreateRecordParams{
			Activity:                 activity,
			Amount:                   amount,
			Description:              description,
			CustomizedTag:            tokens[0],
			CustomizedClassification: tag.Classification,
		},
	}, nil
}
