// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// フェッチ層と各アダプターから利用する。
type MetricsCollector interface {
	RecordFetchSuccess(source string)
	RecordFetchFailure(source string)
	RecordFetchLatency(source string, duration time.Duration)
	RecordUpstreamStatus(statusCode int)
	RecordItemSkipped(source string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	fetchSuccess   *prometheus.CounterVec
	fetchFail      *prometheus.CounterVec
	fetchLatency   *prometheus.HistogramVec
	upstreamStatus *prometheus.CounterVec
	itemsSkipped   *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fetchSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esuna_fetch_success_total",
			Help: "取得元別のフェッチ成功の合計数",
		}, []string{"source"}),
		fetchFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esuna_fetch_fail_total",
			Help: "取得元別のフェッチ失敗の合計数",
		}, []string{"source"}),
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "esuna_fetch_latency_seconds",
			Help:    "取得元別のフェッチレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		upstreamStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esuna_upstream_status_total",
			Help: "上流HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		itemsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esuna_items_skipped_total",
			Help: "パース時にスキップされた不正アイテムの合計数",
		}, []string{"source"}),
	}

	reg.MustRegister(
		c.fetchSuccess,
		c.fetchFail,
		c.fetchLatency,
		c.upstreamStatus,
		c.itemsSkipped,
	)

	return c
}

// RecordFetchSuccess はフェッチ成功を記録する。
func (c *Collector) RecordFetchSuccess(source string) {
	c.fetchSuccess.WithLabelValues(source).Inc()
}

// RecordFetchFailure はフェッチ失敗を記録する。
func (c *Collector) RecordFetchFailure(source string) {
	c.fetchFail.WithLabelValues(source).Inc()
}

// RecordFetchLatency はフェッチのレイテンシを記録する。
func (c *Collector) RecordFetchLatency(source string, duration time.Duration) {
	c.fetchLatency.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordUpstreamStatus は上流のHTTPステータスコードを記録する。
func (c *Collector) RecordUpstreamStatus(statusCode int) {
	c.upstreamStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordItemSkipped は不正アイテムのスキップを記録する。
func (c *Collector) RecordItemSkipped(source string) {
	c.itemsSkipped.WithLabelValues(source).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
