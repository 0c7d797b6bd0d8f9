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
// サービス層とミドルウェアから利用する。
type MetricsCollector interface {
	RecordFoodLogCreated()
	RecordLookupSuccess()
	RecordLookupNotFound()
	RecordLookupFailure()
	RecordLookupLatency(duration time.Duration)
	RecordFeedbackOutcome(source string)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	foodLogsCreated prometheus.Counter
	lookupSuccess   prometheus.Counter
	lookupNotFound  prometheus.Counter
	lookupFail      prometheus.Counter
	lookupLatency   prometheus.Histogram
	feedbackTotal   *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		foodLogsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealtrack_foodlogs_created_total",
			Help: "作成された食事記録の合計数",
		}),
		lookupSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealtrack_nutrient_lookup_success_total",
			Help: "栄養素ルックアップ成功の合計数",
		}),
		lookupNotFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealtrack_nutrient_lookup_not_found_total",
			Help: "栄養素ルックアップで該当なしとなった合計数",
		}),
		lookupFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealtrack_nutrient_lookup_fail_total",
			Help: "栄養素ルックアップ失敗の合計数",
		}),
		lookupLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mealtrack_nutrient_lookup_latency_seconds",
			Help:    "栄養素ルックアップのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		feedbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mealtrack_feedback_total",
			Help: "生成経路別のアドバイス生成数",
		}, []string{"source"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mealtrack_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.foodLogsCreated,
		c.lookupSuccess,
		c.lookupNotFound,
		c.lookupFail,
		c.lookupLatency,
		c.feedbackTotal,
		c.httpStatus,
	)

	return c
}

// RecordFoodLogCreated は食事記録の作成を記録する。
func (c *Collector) RecordFoodLogCreated() {
	c.foodLogsCreated.Inc()
}

// RecordLookupSuccess は栄養素ルックアップの成功を記録する。
func (c *Collector) RecordLookupSuccess() {
	c.lookupSuccess.Inc()
}

// RecordLookupNotFound は栄養素ルックアップの該当なしを記録する。
func (c *Collector) RecordLookupNotFound() {
	c.lookupNotFound.Inc()
}

// RecordLookupFailure は栄養素ルックアップの失敗を記録する。
func (c *Collector) RecordLookupFailure() {
	c.lookupFail.Inc()
}

// RecordLookupLatency は栄養素ルックアップのレイテンシを記録する。
func (c *Collector) RecordLookupLatency(duration time.Duration) {
	c.lookupLatency.Observe(duration.Seconds())
}

// RecordFeedbackOutcome は生成経路別のアドバイス生成を記録する。
func (c *Collector) RecordFeedbackOutcome(source string) {
	c.feedbackTotal.WithLabelValues(source).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
