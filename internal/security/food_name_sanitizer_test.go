package security

import (
	"testing"
)

func TestFoodNameSanitizer_ImplementsInterface(t *testing.T) {
	var _ FoodNameSanitizer = (*foodNameSanitizer)(nil)
}

// TestSanitize_RemovesHTML はHTMLタグが全て除去され平文のみが残ることを検証する。
func TestSanitize_RemovesHTML(t *testing.T) {
	sanitizer := NewFoodNameSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "装飾タグが除去される",
			input: "<b>玄米ごはん</b>",
			want:  "玄米ごはん",
		},
		{
			name:  "scriptタグは中身ごと除去される",
			input: "<script>alert(1)</script>green salad",
			want:  "green salad",
		},
		{
			name:  "styleタグは中身ごと除去される",
			input: "<style>body{}</style>味噌汁",
			want:  "味噌汁",
		},
		{
			name:  "imgタグが除去される",
			input: `banana<img src="https://example.com/x.png">`,
			want:  "banana",
		},
		{
			name:  "イベント属性付きタグが除去される",
			input: `<a href="#" onclick="alert(1)">apple</a>`,
			want:  "apple",
		},
		{
			name:  "入れ子のタグも全て除去される",
			input: "<div><p><em>chicken</em> curry</p></div>",
			want:  "chicken curry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizer.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestSanitize_PreservesPlainText はタグを含まない食品名が
// そのまま保持されることを検証する。
func TestSanitize_PreservesPlainText(t *testing.T) {
	sanitizer := NewFoodNameSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "英語の食品名",
			input: "grilled chicken breast",
			want:  "grilled chicken breast",
		},
		{
			name:  "日本語の食品名",
			input: "鶏むね肉のグリル",
			want:  "鶏むね肉のグリル",
		},
		{
			name:  "アンパサンドを含む名前が壊れない",
			input: "fish & chips",
			want:  "fish & chips",
		},
		{
			name:  "不等号を含む名前はエンティティ化されず平文に戻る",
			input: "rice < 200g",
			want:  "rice < 200g",
		},
		{
			name:  "前後の空白が取り除かれる",
			input: "  banana  ",
			want:  "banana",
		},
		{
			name:  "空文字列は空文字列のまま",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizer.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestSanitize_Idempotent は同一入力に対して常に同一出力を返すこと、
// および一度サニタイズした出力を再度通しても変化しないことを検証する。
func TestSanitize_Idempotent(t *testing.T) {
	sanitizer := NewFoodNameSanitizer()

	inputs := []string{
		"<b>rice</b> bowl",
		"fish & chips",
		"plain yogurt",
	}

	for _, input := range inputs {
		first := sanitizer.Sanitize(input)
		second := sanitizer.Sanitize(first)
		if first != second {
			t.Errorf("Sanitize(Sanitize(%q)) = %q, want %q（冪等性）", input, second, first)
		}
	}
}
