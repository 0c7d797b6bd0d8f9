package feedback

import (
	"context"
	"time"

	"github.com/hitoshi/mealtrack/internal/summary"
)

// DailySummarizer は日次サマリーの取得先。summaryサービスが実装する。
type DailySummarizer interface {
	Daily(ctx context.Context, date time.Time, tzName string) (*summary.DailySummary, error)
}

// OutcomeRecorder はアドバイス生成経路の集計先。metrics.Collectorが実装する。
type OutcomeRecorder interface {
	RecordFeedbackOutcome(source string)
}

// DailyTip は1日分の栄養アドバイス。
type DailyTip struct {
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
	Tip      string `json:"tip"`
	Source   Source `json:"source"`
}

// Service は日次サマリーとアドバイス生成を組み合わせるビジネスロジック。
type Service struct {
	summarizer DailySummarizer
	generator  *Generator
	metrics    OutcomeRecorder
}

// NewService はService の新しいインスタンスを生成する。
// metricsはnil許容で、nilの場合は生成経路の集計を行わない。
func NewService(summarizer DailySummarizer, generator *Generator, metrics OutcomeRecorder) *Service {
	return &Service{
		summarizer: summarizer,
		generator:  generator,
		metrics:    metrics,
	}
}

// DailyTip は指定日の栄養サマリーに基づくアドバイスを返す。
// サマリー取得の失敗（無効なタイムゾーンなど）はエラーとして返すが、
// 生成の失敗はフォールバック文言に置き換わるためエラーにならない。
func (s *Service) DailyTip(ctx context.Context, date time.Time, tzName string) (*DailyTip, error) {
	daily, err := s.summarizer.Daily(ctx, date, tzName)
	if err != nil {
		return nil, err
	}

	prompt := BuildDailyPrompt(daily.Date, daily.Totals)
	outcome := s.generator.Generate(ctx, prompt)
	if s.metrics != nil {
		s.metrics.RecordFeedbackOutcome(string(outcome.Source))
	}

	return &DailyTip{
		Date:     daily.Date,
		Timezone: daily.Timezone,
		Tip:      outcome.Text,
		Source:   outcome.Source,
	}, nil
}
