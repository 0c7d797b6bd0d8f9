// Package summary は期間別の栄養サマリーの組み立てを提供する。
// 日次・週次はタイムゾーン指定のローカル日付で、月次・年次はUTCで集計する。
package summary

import (
	"context"
	"time"

	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/hitoshi/mealtrack/internal/repository"
	"github.com/hitoshi/mealtrack/internal/timewindow"
)

const (
	// dateLayout はサマリーに含む日付の表記形式。
	dateLayout = "2006-01-02"
	// topFoodsLimit は上位食品リストの件数。
	topFoodsLimit = 3
)

// DailySummary は1日分の栄養サマリー。
type DailySummary struct {
	Date     string            `json:"date"`
	Timezone string            `json:"timezone"`
	Totals   model.MacroTotals `json:"totals"`
	TopFoods []model.TopFood   `json:"top_foods"`
}

// WeeklySummary は開始日から7日間の栄養サマリー。
// WeekEndは期間に含まれる最終日（開始日+6日）を表す。
type WeeklySummary struct {
	WeekStart string            `json:"week_start"`
	WeekEnd   string            `json:"week_end"`
	Timezone  string            `json:"timezone"`
	Totals    model.MacroTotals `json:"totals"`
	TopFoods  []model.TopFood   `json:"top_foods"`
}

// MonthlySummary は1ヶ月分の栄養サマリー。UTC固定で集計する。
type MonthlySummary struct {
	Year   int               `json:"year"`
	Month  int               `json:"month"`
	Totals model.MacroTotals `json:"totals"`
}

// YearlySummary は1年分の栄養サマリー。UTC固定で集計する。
type YearlySummary struct {
	Year   int               `json:"year"`
	Totals model.MacroTotals `json:"totals"`
}

// Service はサマリー組み立てのビジネスロジックを提供する。
type Service struct {
	nutritionRepo repository.NutritionRepository
	resolver      *timewindow.Resolver
}

// NewService はService の新しいインスタンスを生成する。
func NewService(nutritionRepo repository.NutritionRepository, resolver *timewindow.Resolver) *Service {
	return &Service{
		nutritionRepo: nutritionRepo,
		resolver:      resolver,
	}
}

// Daily は指定日の栄養サマリーを返す。
// tzNameはIANAタイムゾーン名で、空文字列の場合はUTCとして扱う。
// 記録が1件もない日でもエラーにはせず、全項目0のサマリーを返す。
func (s *Service) Daily(ctx context.Context, date time.Time, tzName string) (*DailySummary, error) {
	window, err := s.resolver.Day(date, tzName)
	if err != nil {
		return nil, err
	}

	totals, topFoods, err := s.aggregate(ctx, window)
	if err != nil {
		return nil, err
	}

	return &DailySummary{
		Date:     date.Format(dateLayout),
		Timezone: displayTimezone(tzName),
		Totals:   totals,
		TopFoods: topFoods,
	}, nil
}

// Weekly は開始日から7日間の栄養サマリーを返す。
func (s *Service) Weekly(ctx context.Context, startDate time.Time, tzName string) (*WeeklySummary, error) {
	window, err := s.resolver.Week(startDate, tzName)
	if err != nil {
		return nil, err
	}

	totals, topFoods, err := s.aggregate(ctx, window)
	if err != nil {
		return nil, err
	}

	return &WeeklySummary{
		WeekStart: startDate.Format(dateLayout),
		WeekEnd:   startDate.AddDate(0, 0, 6).Format(dateLayout),
		Timezone:  displayTimezone(tzName),
		Totals:    totals,
		TopFoods:  topFoods,
	}, nil
}

// Monthly は指定月の栄養サマリーを返す。
func (s *Service) Monthly(ctx context.Context, year, month int) (*MonthlySummary, error) {
	window, err := s.resolver.Month(year, month)
	if err != nil {
		return nil, err
	}

	sums, err := s.nutritionRepo.SumNutrients(ctx, window, model.MacroNutrients())
	if err != nil {
		return nil, err
	}

	return &MonthlySummary{
		Year:   year,
		Month:  month,
		Totals: model.MacroTotalsFromSums(sums),
	}, nil
}

// Yearly は指定年の栄養サマリーを返す。
func (s *Service) Yearly(ctx context.Context, year int) (*YearlySummary, error) {
	window, err := s.resolver.Year(year)
	if err != nil {
		return nil, err
	}

	sums, err := s.nutritionRepo.SumNutrients(ctx, window, model.MacroNutrients())
	if err != nil {
		return nil, err
	}

	return &YearlySummary{
		Year:   year,
		Totals: model.MacroTotalsFromSums(sums),
	}, nil
}

// aggregate は区間のマクロ栄養素合計と上位食品を取得する。
func (s *Service) aggregate(ctx context.Context, window timewindow.Window) (model.MacroTotals, []model.TopFood, error) {
	sums, err := s.nutritionRepo.SumNutrients(ctx, window, model.MacroNutrients())
	if err != nil {
		return model.MacroTotals{}, nil, err
	}

	topFoods, err := s.nutritionRepo.TopFoodsByCalories(ctx, window, topFoodsLimit)
	if err != nil {
		return model.MacroTotals{}, nil, err
	}
	if topFoods == nil {
		topFoods = []model.TopFood{}
	}

	return model.MacroTotalsFromSums(sums), topFoods, nil
}

// displayTimezone はサマリーに表示するタイムゾーン名を返す。
// 未指定の場合のデフォルトはUTC。
func displayTimezone(tzName string) string {
	if tzName == "" {
		return "UTC"
	}
	return tzName
}
