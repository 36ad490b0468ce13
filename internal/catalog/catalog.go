package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bigface030/fatten-up-plan/internal/config"
)

// ============================================================================
// 指令词典 / 标签目录
// ============================================================================
//
// 用户输入的第一个词先查指令词典（token -> 规范指令名），
// 查不到指令再查标签目录（token -> 交易类型 + 分类）。
// 标签的 transaction_type 本身也是一个词典 token，
// 再查一次词典才得到 activity（expenditure / income）。
//
// 这几份映射启动时从 JSON 读进内存，之后只读不改。
// ============================================================================

// 规范指令名（词典的值）
const (
	CommandExpenditure  = "expenditure"
	CommandIncome       = "income"
	CommandDeleteLatest = "delete_latest"
	CommandLookUp       = "look_up"
	CommandCheckDetail  = "check_detail"
)

// 系统指令（不碰数据库）
const (
	CommandHelp     = "help"
	CommandTag      = "tag"
	CommandInterval = "interval"
)

// 查询动作
const (
	ActionReadBalance   = "read_balance"
	ActionReadStatement = "read_statement"
)

// 区间别名的规范名
const (
	IntervalToday     = "today"
	IntervalYesterday = "yesterday"
	IntervalThisWeek  = "this_week"
	IntervalLastWeek  = "last_week"
	IntervalThisMonth = "this_month"
	IntervalLastMonth = "last_month"
	IntervalThisYear  = "this_year"
	IntervalLastYear  = "last_year"
)

// TagConfig 一个标签的配置
type TagConfig struct {
	TransactionType string `json:"transaction_type"` // 词典 token，再查词典得到 activity
	Classification  string `json:"classification"`   // 分类，可为空
}

// Catalog 全部静态配置的内存形态
type Catalog struct {
	Dictionary   map[string]string    // 输入 token -> 规范指令名
	Tags         map[string]TagConfig // 输入 token -> 标签配置
	Intervals    map[string]string    // 输入 token -> 规范区间名
	Localization map[string]string    // 消息键 -> 本地化文案
	Help         string
}

// Load 从静态文件加载全部词典
func Load(cfg *config.StaticConfig) (*Catalog, error) {
	c := &Catalog{}

	if err := readJSON(cfg.Dictionary, &c.Dictionary); err != nil {
		return nil, fmt.Errorf("加载指令词典失败: %w", err)
	}
	if err := readJSON(cfg.Tags, &c.Tags); err != nil {
		return nil, fmt.Errorf("加载标签目录失败: %w", err)
	}
	if err := readJSON(cfg.Intervals, &c.Intervals); err != nil {
		return nil, fmt.Errorf("加载区间别名失败: %w", err)
	}
	if err := readJSON(cfg.Localization, &c.Localization); err != nil {
		return nil, fmt.Errorf("加载本地化文案失败: %w", err)
	}

	help, err := os.ReadFile(cfg.Help)
	if err != nil {
		return nil, fmt.Errorf("加载帮助文本失败: %w", err)
	}
	c.Help = string(help)

	return c, nil
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// Localize 按消息键取文案，没有对应文案时原样返回键
func (c *Catalog) Localize(key string) string {
	if v, ok := c.Localization[key]; ok {
		return v
	}
	return key
}

// IsSystemCommand 判断规范指令名是不是系统指令
func IsSystemCommand(command string) bool {
	switch command {
	case CommandHelp, CommandTag, CommandInterval:
		return true
	}
	return false
}

// IsDefaultInterval 判断规范区间名是不是内置区间
func IsDefaultInterval(name string) bool {
	switch name {
	case IntervalToday, IntervalYesterday,
		IntervalThisWeek, IntervalLastWeek,
		IntervalThisMonth, IntervalLastMonth,
		IntervalThisYear, IntervalLastYear:
		return true
	}
	return false
}
