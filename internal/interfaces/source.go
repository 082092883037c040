package interfaces

import (
	"context"
	"time"
)

// RawMatch 数据源原始比赛记录（按队名标识，尚未映射到 ID）
type RawMatch struct {
	Season            string
	Date              time.Time
	HomeTeam          string
	AwayTeam          string
	HomeGoals         *int
	AwayGoals         *int
	Result            string
	HomeShots         *int
	AwayShots         *int
	HomeShotsOnTarget *int
	AwayShotsOnTarget *int
	HomeCorners       *int
	AwayCorners       *int
	HomeFouls         *int
	AwayFouls         *int
	HomeYellow        *int
	AwayYellow        *int
	HomeRed           *int
	AwayRed           *int
}

// HistorySource 历史比赛数据源，所有数据源必须实现
type HistorySource interface {
	GetName() string
	// FetchSeason 拉取某联赛某赛季全部已完赛比赛
	FetchSeason(ctx context.Context, leagueCode, season string) ([]*RawMatch, error)
}

// RawFixture 数据源原始赛程记录（未开赛）
type RawFixture struct {
	LeagueCode string
	Date       time.Time
	HomeTeam   string
	AwayTeam   string
	Venue      string
}

// FixtureSource 赛程数据源，可选能力：数据源实现时才支持赛程同步
type FixtureSource interface {
	FetchFixtures(ctx context.Context) ([]*RawFixture, error)
}
