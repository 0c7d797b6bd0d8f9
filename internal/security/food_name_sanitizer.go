// Package security はアプリケーションのセキュリティ機能を提供する。
//
// FoodNameSanitizer は利用者が入力した食品名をサニタイズし、
// 保存・API応答・プロンプト生成の各経路にHTMLが混入しないようにする。
// bluemondayライブラリの全タグ除去ポリシーを使用する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// FoodNameSanitizer は食品名のサニタイズ機能のインターフェースを定義する。
// 食事記録の保存前に使用される。
type FoodNameSanitizer interface {
	// Sanitize は食品名からHTMLタグを全て除去し、前後の空白を取り除いた
	// 平文を返す。タグ除去後に残るHTMLエンティティは平文に戻すため、
	// "fish & chips" のような名前はそのまま保持される。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// foodNameSanitizer はFoodNameSanitizerの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type foodNameSanitizer struct {
	policy *bluemonday.Policy
}

// NewFoodNameSanitizer はFoodNameSanitizerの新しいインスタンスを生成する。
// 食品名は平文のみを想定しているため、許可タグを一切持たない
// StrictPolicyを使用する。script/styleタグは中身ごと除去される。
func NewFoodNameSanitizer() *foodNameSanitizer {
	return &foodNameSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は食品名をサニタイズして平文を返す。
func (s *foodNameSanitizer) Sanitize(raw string) string {
	clean := s.policy.Sanitize(raw)
	// bluemondayはHTML出力用にエンティティをエスケープするため、
	// 平文として保存できるよう元に戻す。
	return strings.TrimSpace(html.UnescapeString(clean))
}
