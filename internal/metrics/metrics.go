// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はクライアントのリクエストメトリクスを収集する。
// client.MetricsRecorderを実装する。
type Collector struct {
	requests     *prometheus.CounterVec
	latency      prometheus.Histogram
	authFailures prometheus.Counter
	itemsFetched prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yardclient_request_total",
			Help: "エンドポイント・ステータスコード別のリクエスト数",
		}, []string{"endpoint", "status_code"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "yardclient_request_latency_seconds",
			Help:    "バックエンドリクエストのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yardclient_auth_failure_total",
			Help: "401/403レスポンスの合計数",
		}),
		itemsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yardclient_items_fetched_total",
			Help: "取得したアイテムの合計数",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.latency,
		c.authFailures,
		c.itemsFetched,
	)

	return c
}

// RecordRequest はエンドポイント・ステータスコード別のリクエストを記録する。
func (c *Collector) RecordRequest(endpoint string, statusCode int) {
	c.requests.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
}

// RecordLatency はリクエストのレイテンシを記録する。
func (c *Collector) RecordLatency(endpoint string, duration time.Duration) {
	c.latency.Observe(duration.Seconds())
}

// RecordAuthFailure は401/403レスポンスを記録する。
func (c *Collector) RecordAuthFailure() {
	c.authFailures.Inc()
}

// RecordItemsFetched は取得したアイテム数を記録する。
func (c *Collector) RecordItemsFetched(count int) {
	c.itemsFetched.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
