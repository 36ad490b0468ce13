package service

import (
	"time"

	"github.com/bigface030/fatten-up-plan/internal/catalog"
	"github.com/bigface030/fatten-up-plan/internal/model"
)

// parseDateToken 严格解析 8 位 YYYYMMDD 日期
// 位数不对或不是合法公历日期（如 20241301）都算失败。
func parseDateToken(s string) (time.Time, bool) {
	if len(s) != 8 {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}, false
	}
	return model.DateOnly(t), true
}

// expandInterval 把区间别名展开成日期端点
// 今日/昨日是单个日期，週/月/年别名是起止两个日期。週以週日为起点。
func expandInterval(name string, now time.Time) []time.Time {
	today := model.DateOnly(now)

	switch name {
	case catalog.IntervalToday:
		return []time.Time{today}
	case catalog.IntervalYesterday:
		return []time.Time{today.AddDate(0, 0, -1)}
	case catalog.IntervalThisWeek:
		start := startOfWeek(today)
		return []time.Time{start, start.AddDate(0, 0, 6)}
	case catalog.IntervalLastWeek:
		start := startOfWeek(today).AddDate(0, 0, -7)
		return []time.Time{start, start.AddDate(0, 0, 6)}
	case catalog.IntervalThisMonth:
		start := startOfMonth(today)
		return []time.Time{start, endOfMonth(start)}
	case catalog.IntervalLastMonth:
		start := startOfMonth(today).AddDate(0, -1, 0)
		return []time.Time{start, endOfMonth(start)}
	case catalog.IntervalThisYear:
		start := startOfYear(today)
		return []time.Time{start, start.AddDate(1, 0, -1)}
	case catalog.IntervalLastYear:
		start := startOfYear(today).AddDate(-1, 0, 0)
		return []time.Time{start, start.AddDate(1, 0, -1)}
	}
	return nil
}

func startOfWeek(d time.Time) time.Time {
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func startOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func endOfMonth(start time.Time) time.Time {
	return start.AddDate(0, 1, 0).AddDate(0, 0, -1)
}

func startOfYear(d time.Time) time.Time {
	return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// isoDates 把日期端点转成 ISO 字符串，给余额结果回显区间用
func isoDates(interval []time.Time) []string {
	out := make([]string, 0, len(interval))
	for _, d := range interval {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}
