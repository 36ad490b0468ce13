package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bigface030/fatten-up-plan/internal/catalog"
	"github.com/bigface030/fatten-up-plan/internal/model"
	"github.com/bigface030/fatten-up-plan/internal/service"
)

// ============================================================================
// 回复文案
// ============================================================================
//
// 把管线的类型化结果排成聊天回复的纯文本，webhook 和 CLI 共用。
// 所有面向用户的字串都查本地化表，核心代码里不写死文案。
// ============================================================================

type Renderer struct {
	catalog *catalog.Catalog
}

func NewRenderer(c *catalog.Catalog) *Renderer {
	return &Renderer{catalog: c}
}

// Render 把一次指令的结果转成回复文本
func (r *Renderer) Render(reply *service.Reply) string {
	if reply.Status == service.ReplyStatusFailed {
		return r.catalog.Localize(reply.MsgKey)
	}

	switch reply.Type {
	case service.MessageTypeSystem:
		return r.renderSystem(reply.Action)
	case service.MessageTypeCreate:
		return r.renderRecords(reply.Records, r.catalog.Localize(service.KeyCreateSuccess))
	case service.MessageTypeDelete:
		return r.renderRecords([]model.RecordDetail{*reply.Record}, r.catalog.Localize(service.KeyDeleteSuccess))
	case service.MessageTypeRead:
		if reply.Action == catalog.ActionReadBalance {
			return r.renderBalance(reply.Balance)
		}
		return r.renderStatement(reply.Statement)
	}

	return r.catalog.Localize(service.KeyInvalidRecordType)
}

func (r *Renderer) renderSystem(action string) string {
	switch action {
	case catalog.CommandHelp:
		return r.catalog.Help
	case catalog.CommandTag:
		return r.renderTags()
	case catalog.CommandInterval:
		return r.renderIntervals()
	}
	return r.catalog.Localize(service.KeyInvalidRecordAction)
}

func (r *Renderer) renderRecords(records []model.RecordDetail, title string) string {
	if len(records) == 0 {
		return r.catalog.Localize(service.KeyNoRecords)
	}

	lines := []string{title}
	for i := range records {
		record := &records[i]
		lines = append(lines, r.recordLine(record))
		detail := []string{
			fmt.Sprintf("%s: %s", r.catalog.Localize("date"), record.DateString()),
			fmt.Sprintf("%s: %s", r.catalog.Localize("category"), r.orNull(record.CustomizedClassification)),
			fmt.Sprintf("%s: %s", r.catalog.Localize("description"), r.orNull(record.Description)),
		}
		lines = append(lines, strings.Join(detail, ", "))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderBalance(balance *service.Balance) string {
	title := []string{
		fmt.Sprintf("%s: $%s", r.catalog.Localize(model.ActivityExpenditure), balance.Expenditure.String()),
		fmt.Sprintf("%s: $%s", r.catalog.Localize(model.ActivityIncome), balance.Income.String()),
		fmt.Sprintf("%s: $%s", r.catalog.Localize("total"), balance.Total.String()),
	}
	subtitle := []string{
		fmt.Sprintf("%s: %s", r.catalog.Localize("date"), strings.Join(balance.Interval, ",")),
		fmt.Sprintf("%s: %s", r.catalog.Localize("category"), r.catalog.Localize("all")),
		fmt.Sprintf("%s: %s", r.catalog.Localize("description"), r.catalog.Localize("all")),
	}
	return strings.Join(title, ", ") + "\n" + strings.Join(subtitle, ", ")
}

func (r *Renderer) renderStatement(groups []service.StatementGroup) string {
	var lines []string
	for _, group := range groups {
		lines = append(lines, group.Date)
		for i := range group.Records {
			lines = append(lines, r.recordLine(&group.Records[i]))
		}
	}
	return strings.Join(lines, "\n")
}

// renderTags 按 交易类型 -> 分类 -> 标签 的层级列出标签目录
func (r *Renderer) renderTags() string {
	// transaction_type -> classification -> tags，未分类的归到空串
	classified := make(map[string]map[string][]string)
	for tag, cfg := range r.catalog.Tags {
		if classified[cfg.TransactionType] == nil {
			classified[cfg.TransactionType] = make(map[string][]string)
		}
		classified[cfg.TransactionType][cfg.Classification] = append(
			classified[cfg.TransactionType][cfg.Classification], tag)
	}

	transactionTypes := sortedKeys(classified)

	var lines []string
	for i, transactionType := range transactionTypes {
		lines = append(lines, fmt.Sprintf("%d. %s: ", i+1, transactionType))

		byClassification := classified[transactionType]
		if none := byClassification[""]; len(none) > 0 {
			sort.Strings(none)
			lines = append(lines, strings.Join(none, ", "))
		}

		classifications := sortedKeys(byClassification)
		index := 0
		for _, classification := range classifications {
			if classification == "" {
				continue
			}
			index++
			tags := byClassification[classification]
			sort.Strings(tags)
			lines = append(lines, fmt.Sprintf("(%d) %s: ", index, classification))
			lines = append(lines, strings.Join(tags, ", "))
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderIntervals() string {
	names := make([]string, 0, len(r.catalog.Intervals))
	for name := range r.catalog.Intervals {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func (r *Renderer) recordLine(record *model.RecordDetail) string {
	return fmt.Sprintf("%s %s $%s",
		r.catalog.Localize(record.Activity),
		record.CustomizedTag,
		record.Amount.String(),
	)
}

func (r *Renderer) orNull(s string) string {
	if s == "" {
		return r.catalog.Localize("null")
	}
	return s
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
