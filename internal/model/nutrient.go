package model

// Nutrient は追跡対象の栄養素を表す閉じた列挙型。
// 値はDBのカラム名と一致しており、この36種以外の栄養素は扱わない。
type Nutrient string

const (
	// マクロ栄養素
	NutrientCalories Nutrient = "calories" // kcal
	NutrientProtein  Nutrient = "protein"  // g
	NutrientCarbs    Nutrient = "carbs"    // g
	NutrientFat      Nutrient = "fat"      // g
	NutrientSugars   Nutrient = "sugars"   // g

	// コレステロール
	NutrientCholesterol Nutrient = "cholesterol" // mg

	// 脂肪酸の内訳
	NutrientSatFat   Nutrient = "sat_fat"   // g
	NutrientMonoFat  Nutrient = "mono_fat"  // g
	NutrientPolyFat  Nutrient = "poly_fat"  // g
	NutrientTransFat Nutrient = "trans_fat" // g

	// ビタミン
	NutrientVitaminA     Nutrient = "vitamin_a"     // µg
	NutrientBetaCarotene Nutrient = "beta_carotene" // µg
	NutrientVitaminB1    Nutrient = "vitamin_b1"    // mg
	NutrientVitaminB2    Nutrient = "vitamin_b2"    // mg
	NutrientVitaminB3    Nutrient = "vitamin_b3"    // mg
	NutrientVitaminB5    Nutrient = "vitamin_b5"    // mg
	NutrientVitaminB6    Nutrient = "vitamin_b6"    // mg
	NutrientVitaminB9    Nutrient = "vitamin_b9"    // µg
	NutrientVitaminB12   Nutrient = "vitamin_b12"   // µg
	NutrientVitaminC     Nutrient = "vitamin_c"     // mg
	NutrientVitaminD     Nutrient = "vitamin_d"     // µg
	NutrientVitaminE     Nutrient = "vitamin_e"     // mg
	NutrientVitaminK     Nutrient = "vitamin_k"     // µg

	// ミネラル
	NutrientCalcium    Nutrient = "calcium"    // mg
	NutrientIron       Nutrient = "iron"       // mg
	NutrientMagnesium  Nutrient = "magnesium"  // mg
	NutrientPhosphorus Nutrient = "phosphorus" // mg
	NutrientPotassium  Nutrient = "potassium"  // mg
	NutrientSodium     Nutrient = "sodium"     // mg
	NutrientZinc       Nutrient = "zinc"       // mg
	NutrientCopper     Nutrient = "copper"     // mg
	NutrientManganese  Nutrient = "manganese"  // mg
	NutrientSelenium   Nutrient = "selenium"   // µg
	NutrientChromium   Nutrient = "chromium"   // µg
	NutrientMolybdenum Nutrient = "molybdenum" // µg
	NutrientFluoride   Nutrient = "fluoride"   // mg
)

// allNutrients は全栄養素の定義順リスト。DBカラムの並びもこの順序に従う。
var allNutrients = []Nutrient{
	NutrientCalories, NutrientProtein, NutrientCarbs, NutrientFat, NutrientSugars,
	NutrientCholesterol,
	NutrientSatFat, NutrientMonoFat, NutrientPolyFat, NutrientTransFat,
	NutrientVitaminA, NutrientBetaCarotene,
	NutrientVitaminB1, NutrientVitaminB2, NutrientVitaminB3, NutrientVitaminB5,
	NutrientVitaminB6, NutrientVitaminB9, NutrientVitaminB12,
	NutrientVitaminC, NutrientVitaminD, NutrientVitaminE, NutrientVitaminK,
	NutrientCalcium, NutrientIron, NutrientMagnesium, NutrientPhosphorus,
	NutrientPotassium, NutrientSodium, NutrientZinc, NutrientCopper,
	NutrientManganese, NutrientSelenium, NutrientChromium, NutrientMolybdenum,
	NutrientFluoride,
}

// Nutrients は全栄養素を定義順で返す。
// 呼び出し側による変更を防ぐためコピーを返す。
func Nutrients() []Nutrient {
	out := make([]Nutrient, len(allNutrients))
	copy(out, allNutrients)
	return out
}

// MacroNutrients はサマリー集計対象のマクロ栄養素4種を返す。
func MacroNutrients() []Nutrient {
	return []Nutrient{NutrientCalories, NutrientProtein, NutrientCarbs, NutrientFat}
}

// IsValid は既知の栄養素かどうかを返す。
func (n Nutrient) IsValid() bool {
	for _, known := range allNutrients {
		if n == known {
			return true
		}
	}
	return false
}

// Unit は栄養素の表示単位を返す。
func (n Nutrient) Unit() string {
	switch n {
	case NutrientCalories:
		return "kcal"
	case NutrientProtein, NutrientCarbs, NutrientFat, NutrientSugars,
		NutrientSatFat, NutrientMonoFat, NutrientPolyFat, NutrientTransFat:
		return "g"
	case NutrientVitaminA, NutrientBetaCarotene, NutrientVitaminB9, NutrientVitaminB12,
		NutrientVitaminD, NutrientVitaminK,
		NutrientSelenium, NutrientChromium, NutrientMolybdenum:
		return "µg"
	default:
		return "mg"
	}
}
