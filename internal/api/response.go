package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
	"MatchForecast/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// errorStatus 错误 → HTTP 状态码
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, interfaces.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, interfaces.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError 统一错误输出；5xx 记 Error，其余记 Warn
func respondError(c *gin.Context, logger *logrus.Logger, msg string, err error) {
	status := errorStatus(err)
	entry := logger.WithError(err).WithField("path", c.FullPath())
	if status >= http.StatusInternalServerError {
		entry.Error(msg)
	} else {
		entry.Warn(msg)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// parseDate 解析 YYYY-MM-DD，为空时取今天
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return model.DateOnly(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func parseID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
