package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/mealtrack/internal/feedback"
	"github.com/hitoshi/mealtrack/internal/model"
)

// DBPinger はデータベースの死活確認に必要な最小インターフェース。*sql.DBが実装する。
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// OllamaChecker はOllamaサーバーの稼働状態確認インターフェース。feedback.Generatorが実装する。
type OllamaChecker interface {
	Health(ctx context.Context) feedback.HealthStatus
}

// HealthHandler は死活監視のHTTPハンドラー。
type HealthHandler struct {
	db     DBPinger
	ollama OllamaChecker
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(db DBPinger, ollama OllamaChecker) *HealthHandler {
	return &HealthHandler{
		db:     db,
		ollama: ollama,
	}
}

// CheckHealth はデータベース接続を確認する。
// GET /health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		handleServiceError(w, model.NewStorageUnavailableError(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "db ok"})
}

// CheckOllamaHealth はOllamaサーバーの稼働状態を返す。
// 状態は接続可否によらずボディで表現するため、ステータスコードは常に200。
// GET /health/ollama
func (h *HealthHandler) CheckOllamaHealth(w http.ResponseWriter, r *http.Request) {
	status := h.ollama.Health(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
