// Package foodlog は食事記録の作成・取得のドメインロジックを提供する。
package foodlog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/mealtrack/internal/metrics"
	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/hitoshi/mealtrack/internal/repository"
	"github.com/hitoshi/mealtrack/internal/security"
	"github.com/hitoshi/mealtrack/internal/timewindow"
)

// DefaultListLimit は一覧取得のデフォルト件数。
const DefaultListLimit = 100

// maxListLimit は一覧取得の最大件数。
const maxListLimit = 1000

// NutrientResolver は食品名から栄養素ベクトルを解決するインターフェース。
// 外部の食品成分データベースAPIを抽象化する。
// 該当する食品が見つからない場合はfound=falseを返す（エラーにしない）。
type NutrientResolver interface {
	Resolve(ctx context.Context, foodName string) (model.NutrientVector, bool, error)
}

// Service は食事記録のサービス層。
// 記録の作成（栄養素ルックアップを含む）、一覧取得、個別取得を提供する。
type Service struct {
	foodLogRepo   repository.FoodLogRepository
	nutritionRepo repository.NutritionRepository
	resolver      NutrientResolver
	sanitizer     security.FoodNameSanitizer
	windows       *timewindow.Resolver
	metrics       metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	foodLogRepo repository.FoodLogRepository,
	nutritionRepo repository.NutritionRepository,
	resolver NutrientResolver,
	sanitizer security.FoodNameSanitizer,
	windows *timewindow.Resolver,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		foodLogRepo:   foodLogRepo,
		nutritionRepo: nutritionRepo,
		resolver:      resolver,
		sanitizer:     sanitizer,
		windows:       windows,
		metrics:       collector,
	}
}

// Create は食事記録を作成し、栄養素ルックアップの結果を紐づけて保存する。
// フロー: サニタイズ・検証 → 記録の保存 → 栄養素ルックアップ → ベクトルの保存
//
// ルックアップが該当なし・失敗に終わった場合でも、保存済みの記録は
// ロールバックせずそのまま残す。栄養データを持たない記録は一覧には
// 現れるが、栄養素の取得はNUTRIENT_DATA_NOT_FOUNDを返す。
func (s *Service) Create(ctx context.Context, foodName string, quantity float64) (*model.FoodLog, error) {
	// 1. サニタイズと入力検証（永続化・外部呼び出しの前に行う）
	name := s.sanitizer.Sanitize(foodName)
	if name == "" {
		return nil, model.NewValidationError("food_nameは必須です")
	}
	if !(quantity > 0) {
		return nil, model.NewValidationError("quantityは0より大きい値で指定してください")
	}

	// 2. 食事記録の保存（IDと記録時刻はサーバー側で採番）
	log := &model.FoodLog{
		ID:       uuid.New().String(),
		FoodName: name,
		Quantity: quantity,
		LoggedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := s.foodLogRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("食事記録の保存に失敗しました: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordFoodLogCreated()
	}

	// 3. 栄養素ルックアップ
	started := time.Now()
	vec, found, err := s.resolver.Resolve(ctx, name)
	if s.metrics != nil {
		s.metrics.RecordLookupLatency(time.Since(started))
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordLookupFailure()
		}
		slog.Warn("栄養素ルックアップに失敗しました", "foodLogID", log.ID, "foodName", name, "error", err)
		return nil, model.NewNutrientLookupFailedError(err.Error())
	}
	if !found {
		if s.metrics != nil {
			s.metrics.RecordLookupNotFound()
		}
		slog.Info("栄養データが見つかりませんでした", "foodLogID", log.ID, "foodName", name)
		return nil, model.NewNutrientDataNotFoundError(name)
	}

	// 4. 栄養素ベクトルの保存
	if err := s.nutritionRepo.Create(ctx, log.ID, vec); err != nil {
		return nil, fmt.Errorf("栄養素データの保存に失敗しました: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordLookupSuccess()
	}

	return log, nil
}

// List は食事記録を記録時刻の昇順で返す。
// dateが非nilの場合、そのUTC暦日1日分に絞り込む。
func (s *Service) List(ctx context.Context, skip, limit int, date *time.Time) ([]*model.FoodLog, error) {
	if skip < 0 {
		return nil, model.NewValidationError("skipは0以上で指定してください")
	}
	if limit < 1 || limit > maxListLimit {
		return nil, model.NewValidationError(fmt.Sprintf("limitは1〜%dの範囲で指定してください", maxListLimit))
	}

	opts := repository.FoodLogListOptions{Skip: skip, Limit: limit}
	if date != nil {
		window, err := s.windows.Day(*date, "")
		if err != nil {
			return nil, err
		}
		opts.Window = &window
	}

	logs, err := s.foodLogRepo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("食事記録一覧の取得に失敗しました: %w", err)
	}
	return logs, nil
}

// Get は指定IDの食事記録を返す。
func (s *Service) Get(ctx context.Context, id string) (*model.FoodLog, error) {
	log, err := s.foodLogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("食事記録の取得に失敗しました: %w", err)
	}
	if log == nil {
		return nil, model.NewFoodLogNotFoundError(id)
	}
	return log, nil
}

// Nutrients は指定IDの食事記録に紐づく栄養素ベクトルを返す。
// 記録が存在しない場合はFOODLOG_NOT_FOUND、記録はあるが栄養データが
// 未付与（ルックアップ失敗で残った孤児）の場合はNUTRIENT_DATA_NOT_FOUNDを返す。
func (s *Service) Nutrients(ctx context.Context, id string) (model.NutrientVector, error) {
	log, err := s.foodLogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("食事記録の取得に失敗しました: %w", err)
	}
	if log == nil {
		return nil, model.NewFoodLogNotFoundError(id)
	}

	vec, err := s.nutritionRepo.FindByFoodLogID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("栄養素データの取得に失敗しました: %w", err)
	}
	if vec == nil {
		return nil, model.NewNutrientDataNotFoundError(log.FoodName)
	}
	return vec, nil
}
