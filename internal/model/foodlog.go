package model

import "time"

// FoodLog は1回の食事記録を表す。
// 作成後は更新も削除もされないイミュータブルなレコードとして扱う。
type FoodLog struct {
	ID       string    // UUID（サーバー側で採番）
	FoodName string    // 食品名（自由入力、保存前にサニタイズ済み）
	Quantity float64   // 摂取量（単位は自由、正の実数）
	LoggedAt time.Time // 記録時刻。常にUTCで保存・比較する
}

// NutrientVector は1件のFoodLogに紐づく栄養素量のマッピング。
// キーは閉じた列挙型Nutrientで、ルックアップ結果に含まれない栄養素は
// 欠損ではなく0.0として保持する（集計側が欠損を考慮しなくて済むようにする）。
type NutrientVector map[Nutrient]float64

// NewNutrientVector は全栄養素を0.0で初期化したベクトルを生成する。
func NewNutrientVector() NutrientVector {
	v := make(NutrientVector, len(allNutrients))
	for _, n := range allNutrients {
		v[n] = 0.0
	}
	return v
}

// Get は栄養素の量を返す。未設定の場合は0.0を返す。
func (v NutrientVector) Get(n Nutrient) float64 {
	return v[n]
}

// IsZero は全栄養素が0.0かどうかを返す。
func (v NutrientVector) IsZero() bool {
	for _, amount := range v {
		if amount != 0 {
			return false
		}
	}
	return true
}

// MacroTotals はマクロ栄養素4種の集計値。
// 対象期間にレコードが1件もない場合でも全フィールド0の値として成立する。
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MacroTotalsFromSums は栄養素ごとの合計マップからMacroTotalsを構築する。
func MacroTotalsFromSums(sums map[Nutrient]float64) MacroTotals {
	return MacroTotals{
		Calories: sums[NutrientCalories],
		Protein:  sums[NutrientProtein],
		Carbs:    sums[NutrientCarbs],
		Fat:      sums[NutrientFat],
	}
}

// TopFood はカロリー上位ランキングの1エントリを表す。
type TopFood struct {
	FoodName string  `json:"food_name"`
	Calories float64 `json:"calories"`
}
