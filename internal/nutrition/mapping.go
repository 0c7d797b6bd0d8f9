package nutrition

import (
	"github.com/hitoshi/mealtrack/internal/model"
)

// usdaNutrientMap はUSDA FoodData Centralの栄養素名から
// 内部の栄養素列挙値へのマッピング。ここに無い栄養素は取り込まない。
var usdaNutrientMap = map[string]model.Nutrient{
	// マクロ栄養素
	"Energy":                      model.NutrientCalories,
	"Protein":                     model.NutrientProtein,
	"Carbohydrate, by difference": model.NutrientCarbs,
	"Total lipid (fat)":           model.NutrientFat,
	"Sugars, total":               model.NutrientSugars,

	// コレステロール
	"Cholesterol": model.NutrientCholesterol,

	// 脂肪酸の内訳
	"Fatty acids, total saturated":       model.NutrientSatFat,
	"Fatty acids, total monounsaturated": model.NutrientMonoFat,
	"Fatty acids, total polyunsaturated": model.NutrientPolyFat,
	"Fatty acids, total trans":           model.NutrientTransFat,

	// ビタミン
	"Vitamin A, RAE":                 model.NutrientVitaminA,
	"Beta-carotene":                  model.NutrientBetaCarotene,
	"Thiamin":                        model.NutrientVitaminB1,
	"Riboflavin":                     model.NutrientVitaminB2,
	"Niacin":                         model.NutrientVitaminB3,
	"Pantothenic acid":               model.NutrientVitaminB5,
	"Vitamin B-6":                    model.NutrientVitaminB6,
	"Folate, total":                  model.NutrientVitaminB9,
	"Vitamin B-12":                   model.NutrientVitaminB12,
	"Vitamin C, total ascorbic acid": model.NutrientVitaminC,
	"Vitamin D (D2 + D3)":            model.NutrientVitaminD,
	"Vitamin E (alpha-tocopherol)":   model.NutrientVitaminE,
	"Vitamin K (phylloquinone)":      model.NutrientVitaminK,

	// ミネラル
	"Calcium, Ca":    model.NutrientCalcium,
	"Iron, Fe":       model.NutrientIron,
	"Magnesium, Mg":  model.NutrientMagnesium,
	"Phosphorus, P":  model.NutrientPhosphorus,
	"Potassium, K":   model.NutrientPotassium,
	"Sodium, Na":     model.NutrientSodium,
	"Zinc, Zn":       model.NutrientZinc,
	"Copper, Cu":     model.NutrientCopper,
	"Manganese, Mn":  model.NutrientManganese,
	"Selenium, Se":   model.NutrientSelenium,
	"Chromium, Cr":   model.NutrientChromium,
	"Molybdenum, Mo": model.NutrientMolybdenum,
	"Fluoride, F":    model.NutrientFluoride,
}

// usdaNutrientAliases はFDCのデータタイプによって表記が揺れる栄養素名の別名。
// Foundation/SR Legacyデータでは一部の栄養素が別表記で返る。
var usdaNutrientAliases = map[string]model.Nutrient{
	"Sugars, total including NLEA": model.NutrientSugars,
	"Carotene, beta":               model.NutrientBetaCarotene,
}

// mapNutrientName はUSDAの栄養素名を内部の栄養素列挙値に変換する。
// 未知の名前の場合はfalseを返す。
func mapNutrientName(name string) (model.Nutrient, bool) {
	if n, ok := usdaNutrientMap[name]; ok {
		return n, true
	}
	if n, ok := usdaNutrientAliases[name]; ok {
		return n, true
	}
	return "", false
}
