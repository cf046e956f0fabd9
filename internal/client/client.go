// Package client はYardバックエンドAPIへのHTTPクライアントラッパーを提供する。
// ベースURL・JSONコンテントタイプ・Cookieによるセッション維持を一元管理し、
// 全ドメインサービスがこのラッパーを経由してバックエンドと通信する。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/hitoshi/yardclient/internal/model"
)

// maxResponseSize はレスポンスボディの最大サイズ（5MB）。
const maxResponseSize = 5 * 1024 * 1024

// userAgent は全リクエストに付与するUser-Agentヘッダ。
const userAgent = "YardClient/1.0"

// MetricsRecorder はクライアントメトリクス収集のインターフェース。
type MetricsRecorder interface {
	RecordRequest(endpoint string, statusCode int)
	RecordLatency(endpoint string, duration time.Duration)
	RecordAuthFailure()
}

// Options はClientの生成オプション。
type Options struct {
	// Timeout はHTTPリクエスト全体のタイムアウト。0の場合は10秒。
	Timeout time.Duration
	// RateLimitRPS は送信レート上限（req/sec）。0以下の場合は制限しない。
	RateLimitRPS int
	// Metrics はメトリクス収集先。nilの場合は記録しない。
	Metrics MetricsRecorder
	// OnUnauthorized は401/403レスポンス受信時に1回呼ばれるフック。
	// 元実装のリダイレクト用インターセプタをコールバックとして一般化したもの。
	OnUnauthorized func()
}

// Client はベースURLとセッションCookieを持つ事前構成済みHTTPクライアント。
// 再試行は一切行わない（失敗はリクエスト単位でエラーとして返す）。
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *slog.Logger
	limiter        *rate.Limiter
	metrics        MetricsRecorder
	onUnauthorized func()
}

// New はClientの新しいインスタンスを生成する。
// Cookie jarを持つため、/token/signinで発行されたセッションCookieは
// 以降の全リクエストに自動で付与される。
func New(baseURL string, logger *slog.Logger, opts Options) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jarの生成に失敗しました: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitRPS)
	}

	return &Client{
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		baseURL:        strings.TrimRight(baseURL, "/"),
		logger:         logger,
		limiter:        limiter,
		metrics:        opts.Metrics,
		onUnauthorized: opts.OnUnauthorized,
	}, nil
}

// GetJSON はGETリクエストを送信し、レスポンスJSONをoutにデコードする。
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// PostJSON はinをJSONボディとしてPOSTし、レスポンスJSONをoutにデコードする。
// outがnilの場合はレスポンスボディを破棄する。
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// do はリクエストの組み立て・送信・レスポンス分類を行う。
// 401/403はmodel.ErrUnauthenticatedに写像し、その他の非2xxはAPIErrorとする。
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("レート制限の待機が中断されました: %w", err)
		}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return model.NewInvalidRequestError(err.Error())
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error("HTTPリクエストに失敗しました",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("HTTPリクエストに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.RecordRequest(path, resp.StatusCode)
		c.metrics.RecordLatency(path, duration)
	}

	c.logger.Debug("HTTPリクエストが完了しました",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("http_status", resp.StatusCode),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	// 401/403は「ログアウト状態」という正常な結果として写像する
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if c.metrics != nil {
			c.metrics.RecordAuthFailure()
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%s: %w", path, model.ErrUnauthenticated)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("バックエンドがエラーステータスを返しました",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("http_status", resp.StatusCode),
		)
		return model.NewRequestFailedError(path, resp.StatusCode)
	}

	if out == nil {
		// ボディは読み捨ててコネクションを再利用可能にする
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error("レスポンスJSONのパースに失敗しました",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return model.NewInvalidResponseError(path, err.Error())
	}

	return nil
}

// IsUnauthenticated はエラーが401/403由来かどうかを判定するヘルパー。
func IsUnauthenticated(err error) bool {
	return errors.Is(err, model.ErrUnauthenticated)
}
