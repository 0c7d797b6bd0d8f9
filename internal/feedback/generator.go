// Package feedback はOllamaを使った栄養アドバイス生成を提供する。
// OpenAI互換エンドポイントを優先し、失敗時はネイティブAPI、
// それも失敗した場合は固定文言へフォールバックする。
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// defaultBaseURL はOllamaのデフォルトURL。
	defaultBaseURL = "http://localhost:11434"
	// systemPrompt はOpenAI互換エンドポイントに渡すシステムメッセージ。
	systemPrompt = "You are a helpful nutrition coach. Provide concise, actionable advice."
	// nativePromptPrefix はネイティブAPIのプロンプトに付ける前置き。
	nativePromptPrefix = "You are a helpful nutrition coach. "
	// temperature と maxTokens は両エンドポイント共通の生成パラメータ。
	temperature = 0.7
	maxTokens   = 100
	// healthCheckTimeout は稼働確認リクエストのタイムアウト。
	healthCheckTimeout = 10 * time.Second
)

// FallbackMessage は両エンドポイントが失敗した場合に返す固定文言。
const FallbackMessage = "Sorry, I'm unable to generate feedback at this time. Please check your nutrition data manually."

// Source はアドバイスを生成した経路を表す。
type Source string

const (
	// SourceChat はOpenAI互換エンドポイントでの生成。
	SourceChat Source = "chat"
	// SourceGenerate はネイティブAPIでの生成。
	SourceGenerate Source = "generate"
	// SourceFallback は固定文言へのフォールバック。
	SourceFallback Source = "fallback"
)

// Outcome は生成結果。どの経路で生成されたかをSourceで保持する。
type Outcome struct {
	Text   string
	Source Source
}

// HealthStatus はOllamaの稼働状態。
type HealthStatus struct {
	Status          string   `json:"status"`
	OllamaRunning   bool     `json:"ollama_running"`
	ModelAvailable  bool     `json:"model_available"`
	AvailableModels []string `json:"available_models"`
	Error           string   `json:"error,omitempty"`
}

// Generator はOllamaへの生成リクエストを行うクライアント。
type Generator struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	model      string
}

// NewGenerator はGenerator の新しいインスタンスを生成する。
// baseURLが空文字列の場合はローカルのOllamaを使用する。
func NewGenerator(httpClient *http.Client, logger *slog.Logger, baseURL, model string) *Generator {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Generator{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    baseURL,
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Generate はプロンプトからアドバイスを生成する。
// 生成経路が全て失敗しても固定文言を返すため、エラーは返さない。
func (g *Generator) Generate(ctx context.Context, prompt string) Outcome {
	text, err := g.generateChat(ctx, prompt)
	if err == nil {
		return Outcome{Text: text, Source: SourceChat}
	}
	g.logger.Warn("OpenAI互換エンドポイントでの生成に失敗しました",
		slog.String("error", err.Error()),
	)

	text, err = g.generateNative(ctx, prompt)
	if err == nil {
		return Outcome{Text: text, Source: SourceGenerate}
	}
	g.logger.Warn("ネイティブAPIでの生成にも失敗しました",
		slog.String("error", err.Error()),
	)

	return Outcome{Text: FallbackMessage, Source: SourceFallback}
}

// generateChat はOpenAI互換エンドポイントで生成する。
func (g *Generator) generateChat(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	body, err := g.postJSON(ctx, "/v1/chat/completions", payload)
	if err != nil {
		return "", err
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("レスポンスにchoicesが含まれていません")
	}

	return strings.TrimSpace(chat.Choices[0].Message.Content), nil
}

// generateNative はネイティブのOllama APIで生成する。
func (g *Generator) generateNative(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Model:  g.model,
		Prompt: nativePromptPrefix + prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: temperature,
			NumPredict:  maxTokens,
		},
	}

	body, err := g.postJSON(ctx, "/api/generate", payload)
	if err != nil {
		return "", err
	}

	var gen generateResponse
	if err := json.Unmarshal(body, &gen); err != nil {
		return "", fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	return strings.TrimSpace(gen.Response), nil
}

// Health はOllamaの稼働状態と設定モデルの利用可否を確認する。
// 接続できない場合もエラーは返さず、状態として報告する。
func (g *Generator) Health(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/tags", nil)
	if err != nil {
		return HealthStatus{Status: "error", Error: err.Error()}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("Ollamaへの接続に失敗しました", slog.String("error", err.Error()))
		return HealthStatus{Status: "error", Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{
			Status: "error",
			Error:  fmt.Sprintf("Ollama APIがステータス %d を返しました", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return HealthStatus{Status: "error", Error: err.Error()}
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return HealthStatus{Status: "error", Error: err.Error()}
	}

	names := make([]string, 0, len(tags.Models))
	modelAvailable := false
	for _, m := range tags.Models {
		names = append(names, m.Name)
		if m.Name == g.model {
			modelAvailable = true
		}
	}

	return HealthStatus{
		Status:          "healthy",
		OllamaRunning:   true,
		ModelAvailable:  modelAvailable,
		AvailableModels: names,
	}
}

// postJSON はJSONボディ付きのPOSTリクエストを実行してボディを返す。
func (g *Generator) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("リクエストJSONの生成に失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Ollama APIがステータス %d を返しました", resp.StatusCode)
	}

	return data, nil
}
