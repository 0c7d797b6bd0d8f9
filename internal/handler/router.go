package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/mealtrack/internal/metrics"
	"github.com/hitoshi/mealtrack/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Collector         metrics.MetricsCollector
	Gatherer          prometheus.Gatherer

	// 食事記録
	FoodLogService FoodLogServiceInterface

	// サマリー
	SummaryService SummaryServiceInterface

	// フィードバック
	FeedbackService FeedbackServiceInterface

	// 死活監視
	HealthChecker DBPinger
	OllamaHealth  OllamaChecker
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Logging → Metrics → Recovery → RateLimit(General)
//
// Recoveryをロギングとメトリクスの内側に置くことで、パニック時の500も
// アクセスログとステータスカウンタに記録される。フィードバックルートには
// LLM呼び出しを伴うため専用レート制限を重ねる。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewMetricsMiddleware(deps.Collector))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(deps.RateLimiter.GeneralMiddleware())

	foodLogHandler := NewFoodLogHandler(deps.FoodLogService)
	summaryHandler := NewSummaryHandler(deps.SummaryService)
	feedbackHandler := NewFeedbackHandler(deps.FeedbackService)
	healthHandler := NewHealthHandler(deps.HealthChecker, deps.OllamaHealth)

	// 動作確認用ルート
	r.Get("/", helloHandler)

	// 食事記録
	r.Route("/foodlogs", func(r chi.Router) {
		r.Post("/", foodLogHandler.CreateFoodLog)
		r.Get("/", foodLogHandler.ListFoodLogs)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", foodLogHandler.GetFoodLog)
			r.Get("/nutrients", foodLogHandler.GetFoodLogNutrients)
		})
	})

	// 期間別サマリー
	r.Route("/summaries", func(r chi.Router) {
		r.Get("/daily", summaryHandler.GetDailySummary)
		r.Get("/weekly", summaryHandler.GetWeeklySummary)
		r.Get("/monthly", summaryHandler.GetMonthlySummary)
		r.Get("/yearly", summaryHandler.GetYearlySummary)
	})

	// フィードバック生成（専用レート制限を追加）
	r.With(deps.RateLimiter.FeedbackMiddleware()).Get("/feedback/daily", feedbackHandler.GetDailyFeedback)

	// 死活監視
	r.Get("/health", healthHandler.CheckHealth)
	r.Get("/health/ollama", healthHandler.CheckOllamaHealth)

	// Prometheusメトリクス公開
	r.Get("/metrics", metrics.Handler(deps.Gatherer).ServeHTTP)

	return r
}

// helloHandler は動作確認用の固定メッセージを返す。
// GET /
func helloHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Hello, Food Tracker!"})
}
