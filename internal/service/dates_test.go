package service

import (
	"testing"
	"time"

	"github.com/bigface030/fatten-up-plan/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateToken(t *testing.T) {
	d, ok := parseDateToken("20240531")
	require.True(t, ok)
	assert.Equal(t, "2024-05-31", d.Format("2006-01-02"))

	_, ok = parseDateToken("1130531")
	assert.False(t, ok)

	_, ok = parseDateToken("20240532")
	assert.False(t, ok)

	_, ok = parseDateToken("2024-05-31")
	assert.False(t, ok)
}

func TestExpandInterval(t *testing.T) {
	// 2024-06-05 是星期三
	now := time.Date(2024, 6, 5, 15, 30, 0, 0, time.UTC)

	iso := func(interval []time.Time) []string {
		return isoDates(interval)
	}

	assert.Equal(t, []string{"2024-06-05"}, iso(expandInterval(catalog.IntervalToday, now)))
	assert.Equal(t, []string{"2024-06-04"}, iso(expandInterval(catalog.IntervalYesterday, now)))

	// 週以週日为起点
	assert.Equal(t, []string{"2024-06-02", "2024-06-08"}, iso(expandInterval(catalog.IntervalThisWeek, now)))
	assert.Equal(t, []string{"2024-05-26", "2024-06-01"}, iso(expandInterval(catalog.IntervalLastWeek, now)))

	assert.Equal(t, []string{"2024-06-01", "2024-06-30"}, iso(expandInterval(catalog.IntervalThisMonth, now)))
	assert.Equal(t, []string{"2024-05-01", "2024-05-31"}, iso(expandInterval(catalog.IntervalLastMonth, now)))

	assert.Equal(t, []string{"2024-01-01", "2024-12-31"}, iso(expandInterval(catalog.IntervalThisYear, now)))
	assert.Equal(t, []string{"2023-01-01", "2023-12-31"}, iso(expandInterval(catalog.IntervalLastYear, now)))

	assert.Nil(t, expandInterval("unknown", now))
}

func TestExpandIntervalWeekOnSunday(t *testing.T) {
	// 当天就是週日时，本週从当天开始
	now := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2024-06-02", "2024-06-08"}, isoDates(expandInterval(catalog.IntervalThisWeek, now)))
}

func TestExpandIntervalAcrossYearEnd(t *testing.T) {
	now := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	// 2024-01-02 是星期二，上週跨年
	assert.Equal(t, []string{"2023-12-24", "2023-12-30"}, isoDates(expandInterval(catalog.IntervalLastWeek, now)))
	assert.Equal(t, []string{"2023-12-01", "2023-12-31"}, isoDates(expandInterval(catalog.IntervalLastMonth, now)))
}
