package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/hitoshi/mealtrack/internal/timewindow"
)

// SQLNutritionRepo はNutritionRepositoryのSQL実装。
// カラム名はmodel.Nutrientの列挙値と1対1で対応しており、
// 集計クエリのカラムリストは列挙からのみ組み立てる（自由文字列は使わない）。
type SQLNutritionRepo struct {
	db *sql.DB
}

// NewSQLNutritionRepo はSQLNutritionRepoを生成する。
func NewSQLNutritionRepo(db *sql.DB) *SQLNutritionRepo {
	return &SQLNutritionRepo{db: db}
}

// compile-time interface check
var _ NutritionRepository = (*SQLNutritionRepo)(nil)

// Create は食事記録に紐づく栄養素ベクトルを保存する。
func (r *SQLNutritionRepo) Create(ctx context.Context, foodLogID string, vec model.NutrientVector) error {
	nutrients := model.Nutrients()

	cols := make([]string, 0, len(nutrients)+1)
	placeholders := make([]string, 0, len(nutrients)+1)
	args := make([]any, 0, len(nutrients)+1)

	cols = append(cols, "food_log_id")
	placeholders = append(placeholders, "$1")
	args = append(args, foodLogID)

	for i, n := range nutrients {
		cols = append(cols, string(n))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, vec.Get(n))
	}

	query := fmt.Sprintf(`INSERT INTO nutrition_facts (%s) VALUES (%s)`,
		strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("栄養素ベクトルの保存に失敗しました: %w", err)
	}

	return nil
}

// FindByFoodLogID は食事記録の栄養素ベクトルを取得する。
// 見つからない場合（栄養データ未付与の孤児レコード）はnilを返す。
func (r *SQLNutritionRepo) FindByFoodLogID(ctx context.Context, foodLogID string) (model.NutrientVector, error) {
	nutrients := model.Nutrients()

	cols := make([]string, len(nutrients))
	for i, n := range nutrients {
		cols[i] = string(n)
	}

	query := fmt.Sprintf(`SELECT %s FROM nutrition_facts WHERE food_log_id = $1`,
		strings.Join(cols, ", "))

	values := make([]float64, len(nutrients))
	dest := make([]any, len(nutrients))
	for i := range values {
		dest[i] = &values[i]
	}

	err := r.db.QueryRowContext(ctx, query, foodLogID).Scan(dest...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("栄養素ベクトルの取得に失敗しました: %w", err)
	}

	vec := model.NewNutrientVector()
	for i, n := range nutrients {
		vec[n] = values[i]
	}

	return vec, nil
}

// SumNutrients は区間内の全記録について指定栄養素ごとの合計を返す。
// 該当レコードが0件の場合はCOALESCEにより全フィールド0となる。
func (r *SQLNutritionRepo) SumNutrients(ctx context.Context, window timewindow.Window, fields []model.Nutrient) (map[model.Nutrient]float64, error) {
	if len(fields) == 0 {
		return map[model.Nutrient]float64{}, nil
	}

	cols := make([]string, len(fields))
	for i, f := range fields {
		if !f.IsValid() {
			return nil, fmt.Errorf("未知の栄養素が指定されました: %s", f)
		}
		cols[i] = fmt.Sprintf("COALESCE(SUM(n.%s), 0)", f)
	}

	query := fmt.Sprintf(
		`SELECT %s
		 FROM nutrition_facts n
		 JOIN food_logs fl ON fl.id = n.food_log_id
		 WHERE fl.logged_at >= $1 AND fl.logged_at < $2`,
		strings.Join(cols, ", "))

	sums := make([]float64, len(fields))
	dest := make([]any, len(fields))
	for i := range sums {
		dest[i] = &sums[i]
	}

	err := r.db.QueryRowContext(ctx, query, window.Start.UTC(), window.End.UTC()).Scan(dest...)
	if err != nil {
		return nil, fmt.Errorf("栄養素合計の集計に失敗しました: %w", err)
	}

	result := make(map[model.Nutrient]float64, len(fields))
	for i, f := range fields {
		result[f] = sums[i]
	}

	return result, nil
}

// TopFoodsByCalories は区間内の記録を食品名でグループ化し、
// カロリー合計の降順で上位limit件を返す。同値の場合は食品名の昇順で
// 並べることで、データが同じなら常に同じ順序になることを保証する。
func (r *SQLNutritionRepo) TopFoodsByCalories(ctx context.Context, window timewindow.Window, limit int) ([]model.TopFood, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT fl.food_name, SUM(n.calories) AS total_calories
		 FROM nutrition_facts n
		 JOIN food_logs fl ON fl.id = n.food_log_id
		 WHERE fl.logged_at >= $1 AND fl.logged_at < $2
		 GROUP BY fl.food_name
		 ORDER BY total_calories DESC, fl.food_name ASC
		 LIMIT $3`,
		window.Start.UTC(), window.End.UTC(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("上位食品の集計に失敗しました: %w", err)
	}
	defer rows.Close()

	foods := []model.TopFood{}
	for rows.Next() {
		var f model.TopFood
		if err := rows.Scan(&f.FoodName, &f.Calories); err != nil {
			return nil, fmt.Errorf("上位食品行の読み取りに失敗しました: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("上位食品の走査に失敗しました: %w", err)
	}

	return foods, nil
}
