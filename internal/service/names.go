package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxTeamLen 与 teams.name 的 varchar(128) 一致
const maxTeamLen = 128

var multiSpace = regexp.MustCompile(`\s+`)

// normalizeTeamName 去掉首尾及重复空白并按列宽截断；大小写保持数据源原样
func normalizeTeamName(name string) string {
	s := multiSpace.ReplaceAllString(strings.TrimSpace(name), " ")
	if len(s) <= maxTeamLen {
		return s
	}
	s = s[:maxTeamLen]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

// teamKey 同批次内的球队缓存键，不区分大小写
func teamKey(name string) string {
	return strings.ToLower(normalizeTeamName(name))
}
