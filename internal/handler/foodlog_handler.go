package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/mealtrack/internal/foodlog"
	"github.com/hitoshi/mealtrack/internal/middleware"
	"github.com/hitoshi/mealtrack/internal/model"
)

// dateParamLayout はクエリパラメータで受け取る日付の形式。
const dateParamLayout = "2006-01-02"

// FoodLogServiceInterface は食事記録ハンドラーが必要とするサービスインターフェース。
type FoodLogServiceInterface interface {
	// Create は食事記録を作成し、栄養素を解決して紐付ける。
	Create(ctx context.Context, foodName string, quantity float64) (*model.FoodLog, error)
	// List は食事記録の一覧をページネーションと日付フィルタ付きで返す。
	List(ctx context.Context, skip, limit int, date *time.Time) ([]*model.FoodLog, error)
	// Get は食事記録を1件取得する。
	Get(ctx context.Context, id string) (*model.FoodLog, error)
	// Nutrients は食事記録に紐づく栄養素ベクトルを返す。
	Nutrients(ctx context.Context, id string) (model.NutrientVector, error)
}

// FoodLogHandler は食事記録のHTTPハンドラー。
type FoodLogHandler struct {
	service FoodLogServiceInterface
}

// NewFoodLogHandler はFoodLogHandlerを生成する。
func NewFoodLogHandler(service FoodLogServiceInterface) *FoodLogHandler {
	return &FoodLogHandler{
		service: service,
	}
}

// createFoodLogRequest は食事記録作成リクエストのボディ。
type createFoodLogRequest struct {
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
}

// foodLogResponse は食事記録のAPIレスポンス。
type foodLogResponse struct {
	ID        string    `json:"id"`
	FoodName  string    `json:"food_name"`
	Quantity  float64   `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateFoodLog は食事記録を作成する。
// POST /foodlogs/
func (h *FoodLogHandler) CreateFoodLog(w http.ResponseWriter, r *http.Request) {
	var req createFoodLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディの解析に失敗しました"))
		return
	}

	log, err := h.service.Create(r.Context(), req.FoodName, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toFoodLogResponse(log))
}

// ListFoodLogs は食事記録の一覧を記録時刻の昇順で返す。
// GET /foodlogs/?skip=0&limit=100&date=YYYY-MM-DD
func (h *FoodLogHandler) ListFoodLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	skip := 0
	if v := query.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			middleware.WriteErrorResponse(w, http.StatusBadRequest,
				model.NewValidationError("skipは整数で指定してください"))
			return
		}
		skip = n
	}

	limit := foodlog.DefaultListLimit
	if v := query.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			middleware.WriteErrorResponse(w, http.StatusBadRequest,
				model.NewValidationError("limitは整数で指定してください"))
			return
		}
		limit = n
	}

	var date *time.Time
	if v := query.Get("date"); v != "" {
		d, err := time.Parse(dateParamLayout, v)
		if err != nil {
			middleware.WriteErrorResponse(w, http.StatusBadRequest,
				model.NewValidationError("dateはYYYY-MM-DD形式で指定してください"))
			return
		}
		date = &d
	}

	logs, err := h.service.List(r.Context(), skip, limit, date)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]foodLogResponse, len(logs))
	for i, log := range logs {
		results[i] = toFoodLogResponse(log)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

// GetFoodLog は食事記録を1件取得する。
// GET /foodlogs/{id}
func (h *FoodLogHandler) GetFoodLog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	log, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toFoodLogResponse(log))
}

// GetFoodLogNutrients は食事記録に紐づく栄養素ベクトルを返す。
// 栄養データ未付与の記録（孤児レコード）は404になる。
// GET /foodlogs/{id}/nutrients
func (h *FoodLogHandler) GetFoodLogNutrients(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	vec, err := h.service.Nutrients(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vec)
}

// --- ヘルパー関数 ---

// toFoodLogResponse はmodel.FoodLogからAPIレスポンスに変換する。
func toFoodLogResponse(log *model.FoodLog) foodLogResponse {
	return foodLogResponse{
		ID:        log.ID,
		FoodName:  log.FoodName,
		Quantity:  log.Quantity,
		Timestamp: log.LoggedAt,
	}
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeValidation, model.ErrCodeInvalidTimezone, model.ErrCodeInvalidPeriod:
		return http.StatusBadRequest
	case model.ErrCodeFoodLogNotFound, model.ErrCodeNutrientDataNotFound:
		return http.StatusNotFound
	case model.ErrCodeNutrientLookupFailed:
		return http.StatusBadGateway
	case model.ErrCodeStorageUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
