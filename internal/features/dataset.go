package features

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"MatchForecast/internal/model"
)

// ErrUnordered 输入比赛没有按日期升序排列
var ErrUnordered = errors.New("matches not in ascending date order")

// 训练集中除特征列以外的标识列
var identifierColumns = []string{"match_id", "date", "home_team_id", "away_team_id", "league_id"}

// DatasetRow 训练集一行：标识 + 特征 + 标签
type DatasetRow struct {
	MatchID    uint64
	Date       string
	HomeTeamID uint64
	AwayTeamID uint64
	LeagueID   uint64
	Result     model.ResultCode
	Features   *model.FeatureVector
}

// DatasetBuilder 批量构建训练集
type DatasetBuilder struct {
	assembler *Assembler
	enhanced  bool
	logger    *logrus.Logger
}

// NewDatasetBuilder 创建训练集构建器
func NewDatasetBuilder(assembler *Assembler, enhanced bool, logger *logrus.Logger) *DatasetBuilder {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &DatasetBuilder{assembler: assembler, enhanced: enhanced, logger: logger}
}

// Columns 输出 CSV 的表头
func (b *DatasetBuilder) Columns() []string {
	cols := append([]string{}, identifierColumns...)
	cols = append(cols, Columns(b.enhanced)...)
	return append(cols, "result")
}

// Build 按给定顺序单遍处理比赛。输入必须已按日期升序，这里只校验不重排。
// 存储故障立即中止；重复比赛只保留第一场。
func (b *DatasetBuilder) Build(ctx context.Context, matches []*model.Match) ([]*DatasetRow, error) {
	for i := 1; i < len(matches); i++ {
		if matches[i].Date.Before(matches[i-1].Date) {
			return nil, fmt.Errorf("%w: match %d (%s) after match %d (%s)", ErrUnordered,
				matches[i].ID, matches[i].Date.Format("2006-01-02"),
				matches[i-1].ID, matches[i-1].Date.Format("2006-01-02"))
		}
	}

	b.logger.WithField("matches", len(matches)).Info("开始构建训练集")
	rows := make([]*DatasetRow, 0, len(matches))
	seen := make(map[model.MatchKey]struct{}, len(matches))
	for i, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if (i+1)%100 == 0 {
			b.logger.Infof("已处理 %d/%d 场比赛", i+1, len(matches))
		}
		k := m.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		v, err := b.assembler.Features(ctx, m.HomeTeamID, m.AwayTeamID, m.LeagueID, m.Date, b.enhanced)
		if err != nil {
			return nil, fmt.Errorf("构建比赛特征失败 match=%d: %w", m.ID, err)
		}
		rows = append(rows, &DatasetRow{
			MatchID:    m.ID,
			Date:       model.DateOnly(m.Date).Format("2006-01-02"),
			HomeTeamID: m.HomeTeamID,
			AwayTeamID: m.AwayTeamID,
			LeagueID:   m.LeagueID,
			Result:     m.Result,
			Features:   v,
		})
	}
	b.logger.WithFields(logrus.Fields{
		"rows":    len(rows),
		"columns": len(b.Columns()),
	}).Info("训练集构建完成")
	return rows, nil
}

// WriteCSV 按固定表头写出训练集
func (b *DatasetBuilder) WriteCSV(w io.Writer, rows []*DatasetRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(b.Columns()); err != nil {
		return fmt.Errorf("写表头失败: %w", err)
	}
	featureCols := Columns(b.enhanced)
	record := make([]string, 0, len(identifierColumns)+len(featureCols)+1)
	for _, r := range rows {
		record = record[:0]
		record = append(record,
			strconv.FormatUint(r.MatchID, 10),
			r.Date,
			strconv.FormatUint(r.HomeTeamID, 10),
			strconv.FormatUint(r.AwayTeamID, 10),
			strconv.FormatUint(r.LeagueID, 10),
		)
		for _, col := range featureCols {
			record = append(record, strconv.FormatFloat(r.Features.Value(col), 'f', -1, 64))
		}
		record = append(record, string(r.Result))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("写入比赛 %d 失败: %w", r.MatchID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
