package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hitoshi/mealtrack/internal/middleware"
	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/hitoshi/mealtrack/internal/summary"
)

// SummaryServiceInterface はサマリーハンドラーが必要とするサービスインターフェース。
type SummaryServiceInterface interface {
	// Daily は指定日の栄養サマリーを返す。
	Daily(ctx context.Context, date time.Time, tzName string) (*summary.DailySummary, error)
	// Weekly は開始日からの7日間の栄養サマリーを返す。
	Weekly(ctx context.Context, startDate time.Time, tzName string) (*summary.WeeklySummary, error)
	// Monthly は指定月の栄養サマリーを返す。
	Monthly(ctx context.Context, year, month int) (*summary.MonthlySummary, error)
	// Yearly は指定年の栄養サマリーを返す。
	Yearly(ctx context.Context, year int) (*summary.YearlySummary, error)
}

// SummaryHandler は期間別栄養サマリーのHTTPハンドラー。
type SummaryHandler struct {
	service SummaryServiceInterface
}

// NewSummaryHandler はSummaryHandlerを生成する。
func NewSummaryHandler(service SummaryServiceInterface) *SummaryHandler {
	return &SummaryHandler{
		service: service,
	}
}

// GetDailySummary は日次の栄養サマリーを返す。
// GET /summaries/daily?date=YYYY-MM-DD&tz=Asia/Tokyo
func (h *SummaryHandler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDateParam(w, r, "date")
	if !ok {
		return
	}
	tzName := r.URL.Query().Get("tz")

	result, err := h.service.Daily(r.Context(), date, tzName)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetWeeklySummary は開始日からの7日間の栄養サマリーを返す。
// GET /summaries/weekly?start_date=YYYY-MM-DD&tz=Asia/Tokyo
func (h *SummaryHandler) GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	startDate, ok := requireDateParam(w, r, "start_date")
	if !ok {
		return
	}
	tzName := r.URL.Query().Get("tz")

	result, err := h.service.Weekly(r.Context(), startDate, tzName)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetMonthlySummary は指定月の栄養サマリーを返す。
// GET /summaries/monthly?year=2025&month=1
func (h *SummaryHandler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	year, ok := requireIntParam(w, r, "year")
	if !ok {
		return
	}
	month, ok := requireIntParam(w, r, "month")
	if !ok {
		return
	}

	result, err := h.service.Monthly(r.Context(), year, month)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetYearlySummary は指定年の栄養サマリーを返す。
// GET /summaries/yearly?year=2025
func (h *SummaryHandler) GetYearlySummary(w http.ResponseWriter, r *http.Request) {
	year, ok := requireIntParam(w, r, "year")
	if !ok {
		return
	}

	result, err := h.service.Yearly(r.Context(), year)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// --- クエリパラメータ解析ヘルパー ---

// requireDateParam はYYYY-MM-DD形式の必須クエリパラメータを解析する。
// 欠落または形式不正の場合はエラーレスポンスを書き込み、falseを返す。
func requireDateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError(fmt.Sprintf("%sは必須です", name)))
		return time.Time{}, false
	}

	date, err := time.Parse(dateParamLayout, value)
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError(fmt.Sprintf("%sはYYYY-MM-DD形式で指定してください", name)))
		return time.Time{}, false
	}

	return date, true
}

// requireIntParam は必須の整数クエリパラメータを解析する。
// 欠落または形式不正の場合はエラーレスポンスを書き込み、falseを返す。
func requireIntParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError(fmt.Sprintf("%sは必須です", name)))
		return 0, false
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError(fmt.Sprintf("%sは整数で指定してください", name)))
		return 0, false
	}

	return n, true
}
