package nutrition

import (
	"time"
)

// CallResult はHTTPステータスコードに基づくAPI呼び出し結果の分類。
type CallResult int

const (
	// CallResultOK は呼び出し成功（200）。
	CallResultOK CallResult = iota
	// CallResultNotFound はリソースが存在しないステータス（404）。
	CallResultNotFound
	// CallResultRetry はリトライが必要なステータス（429/5xx）。
	CallResultRetry
	// CallResultFail はリトライ不能なステータス（その他の4xxなど）。
	CallResultFail
)

const (
	// initialBackoff は指数バックオフの初回遅延。
	initialBackoff = 200 * time.Millisecond
	// maxBackoff は指数バックオフの最大遅延。
	maxBackoff = 2 * time.Second
)

// ClassifyHTTPStatus はHTTPステータスコードを呼び出し結果に分類する。
func ClassifyHTTPStatus(statusCode int) CallResult {
	switch {
	case statusCode == 200:
		return CallResultOK
	case statusCode == 404:
		return CallResultNotFound
	case statusCode == 429:
		return CallResultRetry
	case statusCode >= 500:
		return CallResultRetry
	default:
		return CallResultFail
	}
}

// CalculateBackoff はリトライ回数に基づいて指数バックオフ遅延を計算する。
// 初回200ミリ秒、2倍ずつ増加、最大2秒。
func CalculateBackoff(retries int) time.Duration {
	delay := initialBackoff
	for i := 0; i < retries; i++ {
		delay *= 2
		if delay > maxBackoff {
			return maxBackoff
		}
	}
	return delay
}
