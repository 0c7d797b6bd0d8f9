package feedback

import (
	"fmt"

	"github.com/hitoshi/mealtrack/internal/model"
)

// BuildDailyPrompt は日次のマクロ栄養素合計からプロンプトを組み立てる。
// モデルへの指示は英語で行う（多言語モデルでも安定して動作するため）。
func BuildDailyPrompt(date string, totals model.MacroTotals) string {
	return fmt.Sprintf(
		"My nutrition totals for %s: %.0f kcal, %.1f g protein, %.1f g carbs, %.1f g fat. "+
			"Give me one concise tip to improve my diet tomorrow.",
		date, totals.Calories, totals.Protein, totals.Carbs, totals.Fat,
	)
}
