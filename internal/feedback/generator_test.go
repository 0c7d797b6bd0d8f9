package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func newTestGenerator(server *httptest.Server, model string) *Generator {
	var buf bytes.Buffer
	return NewGenerator(server.Client(), newTestLogger(&buf), server.URL, model)
}

func TestNewGenerator_DefaultBaseURL(t *testing.T) {
	var buf bytes.Buffer
	g := NewGenerator(http.DefaultClient, newTestLogger(&buf), "", "mistral:latest")
	if g.baseURL != defaultBaseURL {
		t.Errorf("baseURL = %q, want %q", g.baseURL, defaultBaseURL)
	}
}

func TestGenerator_Generate_Chat(t *testing.T) {
	var nativeCalls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat/completions":
			if r.Method != http.MethodPost {
				t.Errorf("HTTPメソッド = %s, want POST", r.Method)
			}
			if got := r.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", got)
			}

			var req chatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("リクエストボディのデコードに失敗: %v", err)
			}
			if req.Model != "mistral:latest" {
				t.Errorf("model = %q, want mistral:latest", req.Model)
			}
			if len(req.Messages) != 2 {
				t.Fatalf("len(messages) = %d, want 2", len(req.Messages))
			}
			if req.Messages[0].Role != "system" || req.Messages[0].Content != systemPrompt {
				t.Errorf("messages[0] = %+v, want システムメッセージ", req.Messages[0])
			}
			if req.Messages[1].Role != "user" || req.Messages[1].Content != "How did I eat today?" {
				t.Errorf("messages[1] = %+v, want ユーザープロンプト", req.Messages[1])
			}
			if req.Temperature != 0.7 {
				t.Errorf("temperature = %v, want 0.7", req.Temperature)
			}
			if req.MaxTokens != 100 {
				t.Errorf("max_tokens = %d, want 100", req.MaxTokens)
			}

			fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"  Eat more fiber.  "}}]}`)

		case "/api/generate":
			nativeCalls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	g := newTestGenerator(server, "mistral:latest")

	outcome := g.Generate(context.Background(), "How did I eat today?")
	if outcome.Source != SourceChat {
		t.Errorf("Source = %q, want %q", outcome.Source, SourceChat)
	}
	if outcome.Text != "Eat more fiber." {
		t.Errorf("Text = %q, want %q（前後の空白は除去される）", outcome.Text, "Eat more fiber.")
	}
	if nativeCalls.Load() != 0 {
		t.Errorf("ネイティブAPIの呼び出し回数 = %d, want 0", nativeCalls.Load())
	}
}

// TestGenerator_Generate_FallsBackToNative はOpenAI互換エンドポイントが
// 失敗した場合にネイティブAPIへフォールバックすることを検証する。
func TestGenerator_Generate_FallsBackToNative(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat/completions":
			w.WriteHeader(http.StatusNotFound)

		case "/api/generate":
			var req generateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("リクエストボディのデコードに失敗: %v", err)
			}
			if req.Model != "mistral:latest" {
				t.Errorf("model = %q, want mistral:latest", req.Model)
			}
			if want := nativePromptPrefix + "How did I eat today?"; req.Prompt != want {
				t.Errorf("prompt = %q, want %q", req.Prompt, want)
			}
			if req.Stream {
				t.Error("stream = true, want false")
			}
			if req.Options.Temperature != 0.7 {
				t.Errorf("options.temperature = %v, want 0.7", req.Options.Temperature)
			}
			if req.Options.NumPredict != 100 {
				t.Errorf("options.num_predict = %d, want 100", req.Options.NumPredict)
			}

			fmt.Fprint(w, `{"response":"Drink more water.\n"}`)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	g := newTestGenerator(server, "mistral:latest")

	outcome := g.Generate(context.Background(), "How did I eat today?")
	if outcome.Source != SourceGenerate {
		t.Errorf("Source = %q, want %q", outcome.Source, SourceGenerate)
	}
	if outcome.Text != "Drink more water." {
		t.Errorf("Text = %q, want %q", outcome.Text, "Drink more water.")
	}
}

// TestGenerator_Generate_StaticFallback は両エンドポイントが失敗した場合に
// 固定文言が返ることを検証する。
func TestGenerator_Generate_StaticFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	g := newTestGenerator(server, "mistral:latest")

	outcome := g.Generate(context.Background(), "prompt")
	if outcome.Source != SourceFallback {
		t.Errorf("Source = %q, want %q", outcome.Source, SourceFallback)
	}
	if outcome.Text != FallbackMessage {
		t.Errorf("Text = %q, want 固定文言", outcome.Text)
	}
}

// TestGenerator_Generate_ServerDown はOllamaに接続できない場合でも
// パニックやエラーにならず固定文言が返ることを検証する。
func TestGenerator_Generate_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 即座に停止して接続エラーを起こす

	g := newTestGenerator(server, "mistral:latest")

	outcome := g.Generate(context.Background(), "prompt")
	if outcome.Source != SourceFallback {
		t.Errorf("Source = %q, want %q", outcome.Source, SourceFallback)
	}
	if outcome.Text != FallbackMessage {
		t.Errorf("Text = %q, want 固定文言", outcome.Text)
	}
}

func TestGenerator_Health_Healthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("パス = %s, want /api/tags", r.URL.Path)
		}
		fmt.Fprint(w, `{"models":[{"name":"mistral:latest"},{"name":"llama3:8b"}]}`)
	}))
	defer server.Close()

	g := newTestGenerator(server, "mistral:latest")

	status := g.Health(context.Background())
	if status.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", status.Status)
	}
	if !status.OllamaRunning {
		t.Error("OllamaRunning = false, want true")
	}
	if !status.ModelAvailable {
		t.Error("ModelAvailable = false, want true")
	}
	if len(status.AvailableModels) != 2 {
		t.Errorf("len(AvailableModels) = %d, want 2", len(status.AvailableModels))
	}
}

func TestGenerator_Health_ModelMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"models":[{"name":"llama3:8b"}]}`)
	}))
	defer server.Close()

	g := newTestGenerator(server, "mistral:latest")

	status := g.Health(context.Background())
	if status.Status != "healthy" {
		t.Errorf("Status = %q, want healthy（モデル未取得でも稼働はしている）", status.Status)
	}
	if status.ModelAvailable {
		t.Error("ModelAvailable = true, want false")
	}
}

func TestGenerator_Health_Down(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	g := newTestGenerator(server, "mistral:latest")

	status := g.Health(context.Background())
	if status.Status != "error" {
		t.Errorf("Status = %q, want error", status.Status)
	}
	if status.OllamaRunning {
		t.Error("OllamaRunning = true, want false")
	}
	if status.Error == "" {
		t.Error("Error = 空文字列, want エラー内容")
	}
}
