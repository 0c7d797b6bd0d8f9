// Package repository はデータ永続化のインターフェースと実装を提供する。
package repository

import (
	"context"

	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/hitoshi/mealtrack/internal/timewindow"
)

// FoodLogListOptions は食事記録一覧のページネーションと日付フィルタを表す。
type FoodLogListOptions struct {
	// Skip は読み飛ばす件数。0以上。
	Skip int
	// Limit は最大取得件数。1〜1000。
	Limit int
	// Window が非nilの場合、logged_atがこの区間に含まれる記録のみを返す。
	Window *timewindow.Window
}

// FoodLogRepository は食事記録の永続化インターフェース。
type FoodLogRepository interface {
	// Create は食事記録を作成する。IDとlogged_atは呼び出し側が設定する。
	Create(ctx context.Context, log *model.FoodLog) error

	// FindByID は指定IDの食事記録を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.FoodLog, error)

	// List は食事記録をlogged_at昇順で返す。
	List(ctx context.Context, opts FoodLogListOptions) ([]*model.FoodLog, error)
}

// NutritionRepository は栄養素ベクトルの永続化と集計のインターフェース。
type NutritionRepository interface {
	// Create は食事記録に紐づく栄養素ベクトルを保存する。
	// ベクトルに含まれない栄養素は0として保存される。
	Create(ctx context.Context, foodLogID string, vec model.NutrientVector) error

	// FindByFoodLogID は食事記録の栄養素ベクトルを取得する。
	// 見つからない場合（孤児レコード）はnilを返す。
	FindByFoodLogID(ctx context.Context, foodLogID string) (model.NutrientVector, error)

	// SumNutrients は区間内の全記録について指定栄養素ごとの合計を返す。
	// 該当レコードが0件の場合も全フィールド0のマップを返す（エラーにしない）。
	SumNutrients(ctx context.Context, window timewindow.Window, fields []model.Nutrient) (map[model.Nutrient]float64, error)

	// TopFoodsByCalories は区間内の記録を食品名でグループ化し、
	// カロリー合計の降順（同値は食品名の昇順）で上位limit件を返す。
	TopFoodsByCalories(ctx context.Context, window timewindow.Window, limit int) ([]model.TopFood, error)
}
