package model

import (
	"time"
)

// League 联赛（football-data.co.uk 的 division 对应一条）
type League struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name      string    `gorm:"column:name;type:varchar(64);uniqueIndex;not null;comment:联赛名称"`
	Country   string    `gorm:"column:country;type:varchar(64);comment:国家"`
	Code      string    `gorm:"column:code;type:varchar(8);comment:数据源联赛代码，如E0"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

// Team 球队，以 (name, league_id) 唯一确定
type Team struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name      string    `gorm:"column:name;type:varchar(128);not null;uniqueIndex:uq_team_league;comment:球队名称"`
	LeagueID  uint64    `gorm:"column:league_id;type:bigint;not null;uniqueIndex:uq_team_league;comment:所属联赛ID"`
	Country   string    `gorm:"column:country;type:varchar(64);comment:国家"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

// Match 已完赛比赛，入库后不再修改。
// (league_id, season, home_team_id, away_team_id, date) 唯一，重复数据入库时直接忽略。
type Match struct {
	ID                uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	LeagueID          uint64     `gorm:"column:league_id;type:bigint;not null;uniqueIndex:uq_match;index:idx_match_league_date,priority:1;comment:联赛ID"`
	Season            string     `gorm:"column:season;type:varchar(16);not null;uniqueIndex:uq_match;comment:赛季代码，如2425"`
	Date              time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:uq_match;index:idx_match_league_date,priority:2;comment:比赛日期"`
	HomeTeamID        uint64     `gorm:"column:home_team_id;type:bigint;not null;uniqueIndex:uq_match;index:idx_match_teams,priority:1;comment:主队ID"`
	AwayTeamID        uint64     `gorm:"column:away_team_id;type:bigint;not null;uniqueIndex:uq_match;index:idx_match_teams,priority:2;comment:客队ID"`
	HomeGoals         *int       `gorm:"column:home_goals;type:int;comment:主队进球"`
	AwayGoals         *int       `gorm:"column:away_goals;type:int;comment:客队进球"`
	Result            ResultCode `gorm:"column:result;type:varchar(1);comment:赛果 H/D/A"`
	HomeShots         *int       `gorm:"column:home_shots;type:int"`
	AwayShots         *int       `gorm:"column:away_shots;type:int"`
	HomeShotsOnTarget *int       `gorm:"column:home_shots_on_target;type:int"`
	AwayShotsOnTarget *int       `gorm:"column:away_shots_on_target;type:int"`
	HomeCorners       *int       `gorm:"column:home_corners;type:int"`
	AwayCorners       *int       `gorm:"column:away_corners;type:int"`
	HomeFouls         *int       `gorm:"column:home_fouls;type:int"`
	AwayFouls         *int       `gorm:"column:away_fouls;type:int"`
	HomeYellow        *int       `gorm:"column:home_yellow;type:int"`
	AwayYellow        *int       `gorm:"column:away_yellow;type:int"`
	HomeRed           *int       `gorm:"column:home_red;type:int"`
	AwayRed           *int       `gorm:"column:away_red;type:int"`
	CreatedAt         time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:入库时间"`

	HomeTeam *Team `gorm:"foreignKey:HomeTeamID"`
	AwayTeam *Team `gorm:"foreignKey:AwayTeamID"`
}

// Fixture 未开赛的赛程，只用于赛前预测，不会改写 Match
type Fixture struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	LeagueID    uint64    `gorm:"column:league_id;type:bigint;not null;uniqueIndex:uq_fixture;comment:联赛ID"`
	Date        time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_fixture;index;comment:比赛日期"`
	HomeTeamID  uint64    `gorm:"column:home_team_id;type:bigint;not null;uniqueIndex:uq_fixture;comment:主队ID"`
	AwayTeamID  uint64    `gorm:"column:away_team_id;type:bigint;not null;uniqueIndex:uq_fixture;comment:客队ID"`
	Status      string    `gorm:"column:status;type:varchar(16);default:scheduled;comment:状态：scheduled/finished/postponed"`
	Venue       string    `gorm:"column:venue;type:varchar(128);comment:球场"`
	LastUpdated time.Time `gorm:"column:last_updated;type:timestamp;default:now();comment:更新时间"`
}

func (League) TableName() string  { return "leagues" }
func (Team) TableName() string    { return "teams" }
func (Match) TableName() string   { return "matches" }
func (Fixture) TableName() string { return "fixtures" }
