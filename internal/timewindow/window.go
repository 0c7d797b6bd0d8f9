// Package timewindow は暦上の期間指定をUTCの半開区間へ解決する。
//
// 日・週はリクエスト元のタイムゾーンにおける暦日境界（ローカル深夜0時）で
// 区間を組み立ててからUTCへ変換する。月・年はタイムゾーンを受け取らず
// UTCのまま計算する。この非対称性は既存APIの挙動であり、意図的に保持する。
package timewindow

import (
	"fmt"
	"time"

	"github.com/hitoshi/mealtrack/internal/model"
)

// minYear は月次・年次サマリーで指定できる年の下限。
const minYear = 1900

// Window はUTCの半開区間 [Start, End) を表す。
// 集計クエリの境界として使い捨てる一時的な値で、永続化しない。
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration は区間のUTC上の長さを返す。
// DST切り替えを跨ぐローカル暦日の場合は24時間にならないことがある。
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains は時刻が区間に含まれるかを返す。開始は含み、終了は含まない。
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Resolver は期間指定をWindowへ解決する。
type Resolver struct {
	// now は年上限（今年まで）の判定に使う。テストで差し替え可能。
	now func() time.Time
}

// NewResolver は新しいResolverを生成する。
func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// Day は指定日のローカル暦日1日分の区間を返す。
// dateは日付成分のみを使用する。tzNameが空の場合はUTCとして扱う。
// DST切り替え日ではUTC上の長さが23時間または25時間になるが、
// ウォールクロック上では常にちょうど1暦日となる。
func (r *Resolver) Day(date time.Time, tzName string) (Window, error) {
	loc, err := loadLocation(tzName)
	if err != nil {
		return Window{}, err
	}

	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	return Window{Start: start.UTC(), End: end.UTC()}, nil
}

// Week は開始日からローカル暦日7日分の区間を返す。
// 終端はAddDateによる暦日加算のため、DSTを跨いでも7暦日が保たれる。
func (r *Resolver) Week(startDate time.Time, tzName string) (Window, error) {
	loc, err := loadLocation(tzName)
	if err != nil {
		return Window{}, err
	}

	year, month, day := startDate.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 7)

	return Window{Start: start.UTC(), End: end.UTC()}, nil
}

// Month は指定年月のUTC1か月分の区間を返す。12月は翌年1月へ繰り上がる。
// 月が1〜12の範囲外、または年が1900〜今年の範囲外の場合はInvalidPeriodを返す。
func (r *Resolver) Month(year, month int) (Window, error) {
	if err := r.validateYear(year); err != nil {
		return Window{}, err
	}
	if month < 1 || month > 12 {
		return Window{}, model.NewInvalidPeriodError(fmt.Sprintf("月が1〜12の範囲外です: %d", month))
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	return Window{Start: start, End: end}, nil
}

// Year は指定年のUTC1年分の区間を返す。
// 年が1900〜今年の範囲外の場合はInvalidPeriodを返す。
func (r *Resolver) Year(year int) (Window, error) {
	if err := r.validateYear(year); err != nil {
		return Window{}, err
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	return Window{Start: start, End: end}, nil
}

// validateYear は年が1900〜今年の範囲に収まっているかを検証する。
func (r *Resolver) validateYear(year int) error {
	maxYear := r.now().Year()
	if year < minYear || year > maxYear {
		return model.NewInvalidPeriodError(
			fmt.Sprintf("年が%d〜%dの範囲外です: %d", minYear, maxYear, year))
	}
	return nil
}

// loadLocation はIANAタイムゾーン名をロードする。
// 空文字列はUTCとして扱い、未知の名前はInvalidTimezoneを返す。
func loadLocation(tzName string) (*time.Location, error) {
	if tzName == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, model.NewInvalidTimezoneError(tzName)
	}
	return loc, nil
}
