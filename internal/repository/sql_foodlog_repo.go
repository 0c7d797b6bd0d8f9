package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/mealtrack/internal/model"
)

// utcWallClock はスキャンした時刻をUTCの壁時計として再解釈する。
// logged_at列はタイムゾーンを持たず常にUTCの値を書き込んでいるため、
// ドライバが付与するロケーションに関係なく数字そのものがUTCである。
func utcWallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// SQLFoodLogRepo はFoodLogRepositoryのSQL実装。
// PostgreSQLとSQLiteの両方で動くよう方言固有の構文は使わず、
// タイムスタンプは必ずUTCに正規化してからバインドする。
type SQLFoodLogRepo struct {
	db *sql.DB
}

// NewSQLFoodLogRepo はSQLFoodLogRepoを生成する。
func NewSQLFoodLogRepo(db *sql.DB) *SQLFoodLogRepo {
	return &SQLFoodLogRepo{db: db}
}

// compile-time interface check
var _ FoodLogRepository = (*SQLFoodLogRepo)(nil)

// Create は食事記録を作成する。
func (r *SQLFoodLogRepo) Create(ctx context.Context, log *model.FoodLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO food_logs (id, food_name, quantity, logged_at)
		 VALUES ($1, $2, $3, $4)`,
		log.ID, log.FoodName, log.Quantity, log.LoggedAt.UTC().Truncate(time.Second),
	)
	if err != nil {
		return fmt.Errorf("食事記録の作成に失敗しました: %w", err)
	}

	return nil
}

// FindByID は指定IDの食事記録を取得する。見つからない場合はnilを返す。
func (r *SQLFoodLogRepo) FindByID(ctx context.Context, id string) (*model.FoodLog, error) {
	log := &model.FoodLog{}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, food_name, quantity, logged_at
		 FROM food_logs WHERE id = $1`,
		id,
	).Scan(&log.ID, &log.FoodName, &log.Quantity, &log.LoggedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("食事記録の取得に失敗しました: %w", err)
	}

	log.LoggedAt = utcWallClock(log.LoggedAt)
	return log, nil
}

// List は食事記録をlogged_at昇順（同時刻はID昇順）で返す。
// opts.Windowが指定されている場合はその区間内の記録のみを対象とする。
func (r *SQLFoodLogRepo) List(ctx context.Context, opts FoodLogListOptions) ([]*model.FoodLog, error) {
	query := `SELECT id, food_name, quantity, logged_at FROM food_logs`
	args := []any{}

	if opts.Window != nil {
		query += ` WHERE logged_at >= $1 AND logged_at < $2`
		args = append(args, opts.Window.Start.UTC(), opts.Window.End.UTC())
	}

	query += fmt.Sprintf(` ORDER BY logged_at ASC, id ASC LIMIT $%d OFFSET $%d`,
		len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Skip)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("食事記録一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	logs := []*model.FoodLog{}
	for rows.Next() {
		log := &model.FoodLog{}
		if err := rows.Scan(&log.ID, &log.FoodName, &log.Quantity, &log.LoggedAt); err != nil {
			return nil, fmt.Errorf("食事記録行の読み取りに失敗しました: %w", err)
		}
		log.LoggedAt = utcWallClock(log.LoggedAt)
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("食事記録一覧の走査に失敗しました: %w", err)
	}

	return logs, nil
}
