package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
	"MatchForecast/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

var (
	_ interfaces.Classifier       = (*Remote)(nil)
	_ interfaces.ImportanceRanker = (*Remote)(nil)
)

// RemoteConfig 远程模型服务参数
type RemoteConfig struct {
	URL     string
	APIKey  string
	Timeout int
	Proxy   string
}

// Remote 通过 HTTP 调用外部训练好的模型服务
type Remote struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger

	mu      sync.RWMutex
	version string
}

// predictRequest 请求体：columns 给出列顺序，features 为扁平键值
type predictRequest struct {
	Columns  []string           `json:"columns"`
	Features map[string]float64 `json:"features"`
}

type predictResponse struct {
	interfaces.Probabilities
	ModelVersion string `json:"model_version"`
}

// NewRemote 创建远程分类器
func NewRemote(cfg RemoteConfig, logger *logrus.Logger) *Remote {
	return &Remote{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpclient.NewHTTPClient(httpclient.Options{Timeout: cfg.Timeout, Proxy: cfg.Proxy}, logger),
		logger:     logger,
		version:    "remote",
	}
}

// Version 最近一次响应中的模型版本
func (r *Remote) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Predict POST {base}/predict
func (r *Remote) Predict(ctx context.Context, features *model.FeatureVector) (*interfaces.Probabilities, error) {
	body, err := json.Marshal(predictRequest{Columns: features.Names(), Features: features.Map()})
	if err != nil {
		return nil, fmt.Errorf("序列化特征失败: %w", err)
	}
	var resp predictResponse
	if err := r.do(ctx, http.MethodPost, "/predict", body, &resp); err != nil {
		return nil, err
	}
	if resp.ModelVersion != "" {
		r.mu.Lock()
		r.version = resp.ModelVersion
		r.mu.Unlock()
	}
	probs := resp.Probabilities
	if err := Normalize(&probs); err != nil {
		return nil, err
	}
	return &probs, nil
}

// Importance GET {base}/importance
func (r *Remote) Importance(ctx context.Context) ([]interfaces.FeatureImportance, error) {
	var list []interfaces.FeatureImportance
	if err := r.do(ctx, http.MethodGet, "/importance", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Remote) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("构建模型请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("调用模型服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		r.logger.WithFields(logrus.Fields{"path": path, "status": resp.StatusCode}).Warn("模型服务返回非200")
		return fmt.Errorf("模型服务返回 %d: %s", resp.StatusCode, string(msg))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解析模型响应失败: %w", err)
	}
	return nil
}
