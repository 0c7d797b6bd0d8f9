// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, nutrition, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeInvalidTimezone      = "INVALID_TIMEZONE"
	ErrCodeInvalidPeriod        = "INVALID_PERIOD"
	ErrCodeFoodLogNotFound      = "FOODLOG_NOT_FOUND"
	ErrCodeNutrientDataNotFound = "NUTRIENT_DATA_NOT_FOUND"
	ErrCodeNutrientLookupFailed = "NUTRIENT_LOOKUP_FAILED"
	ErrCodeStorageUnavailable   = "STORAGE_UNAVAILABLE"
)

// NewValidationError は入力値検証エラーを生成する。
func NewValidationError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  fmt.Sprintf("入力値が不正です: %s", reason),
		Category: "validation",
		Action:   "リクエストパラメータを確認してください。",
	}
}

// NewInvalidTimezoneError は未知のIANAタイムゾーン名エラーを生成する。
func NewInvalidTimezoneError(tzName string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTimezone,
		Message:  fmt.Sprintf("無効なタイムゾーンです: %s", tzName),
		Category: "validation",
		Action:   "IANA形式のタイムゾーン名（例: Asia/Tokyo、America/Chicago、UTC）を指定してください。",
	}
}

// NewInvalidPeriodError は期間指定が範囲外の場合のエラーを生成する。
func NewInvalidPeriodError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPeriod,
		Message:  fmt.Sprintf("無効な期間指定です: %s", reason),
		Category: "validation",
		Action:   "月は1〜12、年は1900〜今年の範囲で指定してください。",
	}
}

// NewFoodLogNotFoundError は食事記録が見つからない場合のエラーを生成する。
func NewFoodLogNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeFoodLogNotFound,
		Message:  fmt.Sprintf("指定された食事記録が見つかりません: %s", id),
		Category: "nutrition",
		Action:   "記録IDを確認してください。",
	}
}

// NewNutrientDataNotFoundError は栄養データが見つからない場合のエラーを生成する。
// 食品名での検索が0件だった場合と、記録に栄養データが未付与の場合の両方で使う。
func NewNutrientDataNotFoundError(foodName string) *APIError {
	return &APIError{
		Code:     ErrCodeNutrientDataNotFound,
		Message:  fmt.Sprintf("栄養データが見つかりませんでした: %s", foodName),
		Category: "nutrition",
		Action:   "より一般的な食品名（例: apple、banana）で再度お試しください。",
	}
}

// NewNutrientLookupFailedError は栄養データベースAPIの呼び出し失敗エラーを生成する。
func NewNutrientLookupFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeNutrientLookupFailed,
		Message:  fmt.Sprintf("栄養データの取得に失敗しました: %s", reason),
		Category: "nutrition",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewStorageUnavailableError はストレージ接続不能エラーを生成する。
func NewStorageUnavailableError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeStorageUnavailable,
		Message:  fmt.Sprintf("データベースに接続できません: %s", reason),
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
