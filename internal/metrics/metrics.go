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
// ミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordGateDecision(category string, allowed bool)
	RecordOnboardingOutcome(outcome string)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordUpstreamFailure(reason string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	gateDecisions      *prometheus.CounterVec
	onboardingOutcomes *prometheus.CounterVec
	httpStatus         *prometheus.CounterVec
	requestLatency     prometheus.Histogram
	upstreamFailures   *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forensiq_gate_decisions_total",
			Help: "ルートカテゴリと判定結果別のアクセスゲート判定数",
		}, []string{"category", "decision"}),
		onboardingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forensiq_onboarding_outcomes_total",
			Help: "結果別のオンボーディング試行数",
		}, []string{"outcome"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forensiq_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "forensiq_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		upstreamFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forensiq_upstream_failures_total",
			Help: "理由別の認証アップストリーム転送失敗数",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.gateDecisions,
		c.onboardingOutcomes,
		c.httpStatus,
		c.requestLatency,
		c.upstreamFailures,
	)

	return c
}

// RecordGateDecision はアクセスゲートの判定を記録する。
func (c *Collector) RecordGateDecision(category string, allowed bool) {
	decision := "redirect"
	if allowed {
		decision = "allow"
	}
	c.gateDecisions.WithLabelValues(category, decision).Inc()
}

// RecordOnboardingOutcome はオンボーディング試行の結果を記録する。
func (c *Collector) RecordOnboardingOutcome(outcome string) {
	c.onboardingOutcomes.WithLabelValues(outcome).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordUpstreamFailure は認証アップストリームへの転送失敗を記録する。
func (c *Collector) RecordUpstreamFailure(reason string) {
	c.upstreamFailures.WithLabelValues(reason).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
