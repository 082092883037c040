package model

import "time"

// ResultCode 全场赛果（与数据源 FTR 列一致）
type ResultCode string

const (
	ResultHome ResultCode = "H"
	ResultDraw ResultCode = "D"
	ResultAway ResultCode = "A"
)

// Valid 是否为 H/D/A 之一
func (r ResultCode) Valid() bool {
	return r == ResultHome || r == ResultDraw || r == ResultAway
}

// Outcome 站在某一支球队角度的结果
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeDraw Outcome = "D"
	OutcomeLoss Outcome = "L"
)

// Points 3/1/0 积分规则
func (o Outcome) Points() int {
	switch o {
	case OutcomeWin:
		return 3
	case OutcomeDraw:
		return 1
	default:
		return 0
	}
}

// Venue 主客场过滤
type Venue int

const (
	VenueAll Venue = iota
	VenueHome
	VenueAway
)

func (v Venue) String() string {
	switch v {
	case VenueHome:
		return "home"
	case VenueAway:
		return "away"
	default:
		return "all"
	}
}

// ParseVenue 解析 all/home/away，未知值按 all 处理
func ParseVenue(s string) Venue {
	switch s {
	case "home":
		return VenueHome
	case "away":
		return VenueAway
	default:
		return VenueAll
	}
}

// DateOnly 截断到 UTC 零点，所有比赛日期统一按天比较
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
