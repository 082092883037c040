package footballdata

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"MatchForecast/internal/adapter"
	"MatchForecast/internal/config"
	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// SourceName 数据源名称
const SourceName = "football-data"

func init() {
	adapter.Register(SourceName, NewAdapter)
}

var _ interfaces.FixtureSource = (*Adapter)(nil)

// Adapter football-data.co.uk 历史比赛与赛程 CSV 数据源
type Adapter struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewAdapter 创建数据源实例
func NewAdapter(cfg *config.SyncConfig, logger *logrus.Logger) interfaces.HistorySource {
	return &Adapter{
		baseURL:    cfg.BaseURL,
		httpClient: httpclient.NewHTTPClient(httpclient.Options{Timeout: cfg.Timeout, Proxy: cfg.Proxy}, logger),
		logger:     logger,
	}
}

// GetName 实现 HistorySource 接口
func (a *Adapter) GetName() string {
	return SourceName
}

// SeasonURL 某联赛某赛季的 CSV 地址：{base}/mmz4281/{season}/{code}.csv
func (a *Adapter) SeasonURL(leagueCode, season string) string {
	return fmt.Sprintf("%s/mmz4281/%s/%s.csv", a.baseURL, season, leagueCode)
}

// FixturesURL 全部联赛的未开赛赛程：{base}/fixtures.csv
func (a *Adapter) FixturesURL() string {
	return a.baseURL + "/fixtures.csv"
}

// download GET url 并把响应体交给 parse
func (a *Adapter) download(ctx context.Context, url string, parse func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("构建请求失败: %w", err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("下载失败 %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("下载失败 %s: status=%d body=%s", url, resp.StatusCode, string(body))
	}
	if err := parse(resp.Body); err != nil {
		return fmt.Errorf("解析失败 %s: %w", url, err)
	}
	return nil
}

// FetchSeason 下载并解析一个赛季
func (a *Adapter) FetchSeason(ctx context.Context, leagueCode, season string) ([]*interfaces.RawMatch, error) {
	url := a.SeasonURL(leagueCode, season)
	a.logger.WithFields(logrus.Fields{"league": leagueCode, "season": season, "url": url}).Info("开始下载赛季数据")

	var (
		matches []*interfaces.RawMatch
		skipped int
	)
	err := a.download(ctx, url, func(r io.Reader) (err error) {
		matches, skipped, err = ParseCSV(r, season)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("同步赛季数据失败: %w", err)
	}
	a.logger.WithFields(logrus.Fields{
		"league":  leagueCode,
		"season":  season,
		"matches": len(matches),
		"skipped": skipped,
	}).Info("赛季数据下载完成")
	return matches, nil
}

// FetchFixtures 下载未开赛赛程；已有赛果的行跳过
func (a *Adapter) FetchFixtures(ctx context.Context) ([]*interfaces.RawFixture, error) {
	url := a.FixturesURL()
	var (
		fixtures []*interfaces.RawFixture
		skipped  int
	)
	err := a.download(ctx, url, func(r io.Reader) (err error) {
		fixtures, skipped, err = ParseFixturesCSV(r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("同步赛程失败: %w", err)
	}
	a.logger.WithFields(logrus.Fields{"fixtures": len(fixtures), "skipped": skipped}).Info("赛程下载完成")
	return fixtures, nil
}
