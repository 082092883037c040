package footballdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MatchForecast/internal/adapter"
	"MatchForecast/internal/config"
	"MatchForecast/internal/interfaces"
)

const sampleCSV = "\ufeffDiv,Date,Time,HomeTeam,AwayTeam,FTHG,FTAG,FTR,HS,AS,HST,AST,HF,AF,HC,AC,HY,AY,HR,AR\n" +
	"E0,16/08/2024,20:00,Man United,Fulham,1,0,H,14,10,5,2,12,10,7,8,2,3,0,0\n" +
	"E0,17/08/24,12:30,Ipswich,Liverpool,0,2,A,7,18,2,5,9,14,2,10,3,1,0,0\n" +
	"E0,18/08/2024,16:30,Chelsea,Man City,0,2,A,,,,,,,,,,,,\n" +
	"E0,,,,,,,,,,,,,,,,,,,\n"

func TestParseCSV(t *testing.T) {
	matches, skipped, err := ParseCSV(strings.NewReader(sampleCSV), "2425")
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, 1, skipped)

	first := matches[0]
	assert.Equal(t, "2425", first.Season)
	assert.Equal(t, time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "Man United", first.HomeTeam)
	assert.Equal(t, "H", first.Result)
	require.NotNil(t, first.HomeGoals)
	assert.Equal(t, 1, *first.HomeGoals)
	require.NotNil(t, first.HomeShotsOnTarget)
	assert.Equal(t, 5, *first.HomeShotsOnTarget)
	require.NotNil(t, first.AwayYellow)
	assert.Equal(t, 3, *first.AwayYellow)

	// 两位年份
	assert.Equal(t, time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC), matches[1].Date)

	// 缺失的技术统计为 nil
	assert.Nil(t, matches[2].HomeShots)
	assert.Nil(t, matches[2].AwayRed)
}

func TestParseCSVMissingColumns(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader("Div,Date\nE0,16/08/2024\n"), "2425")
	assert.Error(t, err)
}

const sampleFixturesCSV = "Div,Date,Time,HomeTeam,AwayTeam,FTHG,FTAG,FTR,B365H\n" +
	"E0,05/10/2024,15:00,Arsenal,Southampton,,,,1.2\n" +
	"SP1,06/10/2024,20:00,Real Madrid,Villarreal,,,,1.4\n" +
	"E0,28/09/2024,12:30,Newcastle,Man City,1,1,D,3.1\n" +
	",06/10/2024,15:00,Nobody,Nowhere,,,,\n"

func TestParseFixturesCSV(t *testing.T) {
	fixtures, skipped, err := ParseFixturesCSV(strings.NewReader(sampleFixturesCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, fixtures, 2)

	assert.Equal(t, "E0", fixtures[0].LeagueCode)
	assert.Equal(t, "Arsenal", fixtures[0].HomeTeam)
	assert.Equal(t, "Southampton", fixtures[0].AwayTeam)
	assert.Equal(t, time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC), fixtures[0].Date)
	assert.Equal(t, "SP1", fixtures[1].LeagueCode)

	_, _, err = ParseFixturesCSV(strings.NewReader("Date,HomeTeam,AwayTeam\n"))
	assert.Error(t, err)
}

func TestFetchFixtures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixtures.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleFixturesCSV))
	}))
	defer srv.Close()

	src := NewAdapter(&config.SyncConfig{BaseURL: srv.URL, Timeout: 5}, logrus.New())
	fs, ok := src.(interfaces.FixtureSource)
	require.True(t, ok)

	fixtures, err := fs.FetchFixtures(context.Background())
	require.NoError(t, err)
	assert.Len(t, fixtures, 2)

	broken := NewAdapter(&config.SyncConfig{BaseURL: srv.URL + "/missing", Timeout: 5}, logrus.New())
	_, err = broken.(interfaces.FixtureSource).FetchFixtures(context.Background())
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("05/01/2025")
	require.NoError(t, err)
	assert.Equal(t, time.January, d.Month())

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestFetchSeason(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Path != "/mmz4281/2425/E0.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	src := NewAdapter(&config.SyncConfig{BaseURL: srv.URL, Timeout: 5}, logrus.New())
	assert.Equal(t, SourceName, src.GetName())

	matches, err := src.FetchSeason(context.Background(), "E0", "2425")
	require.NoError(t, err)
	assert.Len(t, matches, 3)
	assert.Equal(t, "/mmz4281/2425/E0.csv", gotPath)

	_, err = src.FetchSeason(context.Background(), "SP1", "2425")
	assert.Error(t, err)
}

func TestRegisteredInSourceRegistry(t *testing.T) {
	reg := adapter.NewSourceRegistry(&config.SyncConfig{BaseURL: "http://localhost"}, logrus.New())
	src, err := reg.Get(SourceName)
	require.NoError(t, err)
	assert.Equal(t, SourceName, src.GetName())

	_, err = reg.Get("unknown")
	assert.Error(t, err)
}
