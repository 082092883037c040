package footballdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"MatchForecast/internal/interfaces"
)

// 支持的日期格式：DD/MM/YYYY 与 DD/MM/YY
var dateLayouts = []string{"02/01/2006", "02/01/06", "2/1/2006", "2/1/06", "2006-01-02"}

// ParseDate 解析数据源日期
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析日期: %q", s)
}

// newReader 读取表头并校验必需列
func newReader(r io.Reader, required ...string) (*csv.Reader, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("读取表头失败: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		cols[h] = i
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, nil, fmt.Errorf("缺少必需列 %s", c)
		}
	}
	return cr, cols, nil
}

// ParseCSV 解析 football-data.co.uk 赛季 CSV。缺少主客队或日期的行跳过并计数。
func ParseCSV(r io.Reader, season string) ([]*interfaces.RawMatch, int, error) {
	cr, cols, err := newReader(r, "Date", "HomeTeam", "AwayTeam")
	if err != nil {
		return nil, 0, err
	}

	var (
		matches []*interfaces.RawMatch
		skipped int
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("读取数据行失败: %w", err)
		}
		row := rowReader{cols: cols, record: record}

		home, away := row.str("HomeTeam"), row.str("AwayTeam")
		if home == "" || away == "" {
			skipped++
			continue
		}
		date, err := ParseDate(row.str("Date"))
		if err != nil {
			skipped++
			continue
		}
		matches = append(matches, &interfaces.RawMatch{
			Season:            season,
			Date:              date,
			HomeTeam:          home,
			AwayTeam:          away,
			HomeGoals:         row.int("FTHG"),
			AwayGoals:         row.int("FTAG"),
			Result:            row.str("FTR"),
			HomeShots:         row.int("HS"),
			AwayShots:         row.int("AS"),
			HomeShotsOnTarget: row.int("HST"),
			AwayShotsOnTarget: row.int("AST"),
			HomeCorners:       row.int("HC"),
			AwayCorners:       row.int("AC"),
			HomeFouls:         row.int("HF"),
			AwayFouls:         row.int("AF"),
			HomeYellow:        row.int("HY"),
			AwayYellow:        row.int("AY"),
			HomeRed:           row.int("HR"),
			AwayRed:           row.int("AR"),
		})
	}
	return matches, skipped, nil
}

// ParseFixturesCSV 解析 fixtures.csv。Div 为联赛代码；FTR 非空（已完赛）或缺少球队、日期的行跳过并计数。
func ParseFixturesCSV(r io.Reader) ([]*interfaces.RawFixture, int, error) {
	cr, cols, err := newReader(r, "Div", "Date", "HomeTeam", "AwayTeam")
	if err != nil {
		return nil, 0, err
	}

	var (
		fixtures []*interfaces.RawFixture
		skipped  int
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("读取数据行失败: %w", err)
		}
		row := rowReader{cols: cols, record: record}

		code, home, away := row.str("Div"), row.str("HomeTeam"), row.str("AwayTeam")
		if code == "" || home == "" || away == "" || row.str("FTR") != "" {
			skipped++
			continue
		}
		date, err := ParseDate(row.str("Date"))
		if err != nil {
			skipped++
			continue
		}
		fixtures = append(fixtures, &interfaces.RawFixture{
			LeagueCode: code,
			Date:       date,
			HomeTeam:   home,
			AwayTeam:   away,
			Venue:      row.str("Venue"),
		})
	}
	return fixtures, skipped, nil
}

type rowReader struct {
	cols   map[string]int
	record []string
}

func (r rowReader) str(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

// int 空值或非数字返回 nil
func (r rowReader) int(col string) *int {
	s := r.str(col)
	if s == "" {
		return nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return &v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		v := int(f)
		return &v
	}
	return nil
}
