package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/mealtrack/internal/feedback"
)

// FeedbackServiceInterface はフィードバックハンドラーが必要とするサービスインターフェース。
type FeedbackServiceInterface interface {
	// DailyTip は指定日の栄養サマリーに基づく食事アドバイスを返す。
	DailyTip(ctx context.Context, date time.Time, tzName string) (*feedback.DailyTip, error)
}

// FeedbackHandler は食事アドバイス生成のHTTPハンドラー。
type FeedbackHandler struct {
	service FeedbackServiceInterface
}

// NewFeedbackHandler はFeedbackHandlerを生成する。
func NewFeedbackHandler(service FeedbackServiceInterface) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
	}
}

// GetDailyFeedback は指定日の食事記録に基づくアドバイスを返す。
// 生成が失敗した場合でもサービス層が固定メッセージにフォールバックするため、
// サマリー取得自体が失敗しない限り200を返す。
// GET /feedback/daily?date=YYYY-MM-DD&tz=Asia/Tokyo
func (h *FeedbackHandler) GetDailyFeedback(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDateParam(w, r, "date")
	if !ok {
		return
	}
	tzName := r.URL.Query().Get("tz")

	tip, err := h.service.DailyTip(r.Context(), date, tzName)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tip)
}
