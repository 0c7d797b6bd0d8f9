// Package nutrition はUSDA FoodData Central（FDC）APIからの
// 栄養素データ取得を提供する。食品名での検索と栄養素詳細の取得を
// 組み合わせて、食品1件分の栄養素ベクトルを構築する。
package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/hitoshi/mealtrack/internal/model"
)

const (
	// defaultBaseURL はFDC APIのベースURL。
	defaultBaseURL = "https://api.nal.usda.gov/fdc/v1"
	// searchPageSize は検索結果の取得件数。最初の1件のみ使用する。
	searchPageSize = 1
)

// Client はFDC APIのクライアント。
// 検索エンドポイントで食品を特定し、詳細エンドポイントで栄養素を取得する。
// APIのレート制限を超えないようクライアント側でも流量を制御する。
type Client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	apiKey      string
	baseURL     string
	limiter     *rate.Limiter
	maxAttempts int
}

// NewClient はClient の新しいインスタンスを生成する。
// baseURLが空文字列の場合は公式FDCエンドポイントを使用する。
// requestsPerSecondが0以下の場合はレート制限なしで動作する。
// maxAttemptsが1未満の場合は1回（リトライなし）として扱う。
func NewClient(httpClient *http.Client, logger *slog.Logger, apiKey, baseURL string, requestsPerSecond float64, maxAttempts int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	limit := rate.Inf
	burst := 1
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
		if b := int(requestsPerSecond); b > 1 {
			burst = b
		}
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Client{
		httpClient:  httpClient,
		logger:      logger,
		apiKey:      apiKey,
		baseURL:     baseURL,
		limiter:     rate.NewLimiter(limit, burst),
		maxAttempts: maxAttempts,
	}
}

// searchResponse は検索エンドポイントのレスポンス。
type searchResponse struct {
	Foods []searchFood `json:"foods"`
}

type searchFood struct {
	FdcID       int64  `json:"fdcId"`
	Description string `json:"description"`
}

// foodDetailResponse は食品詳細エンドポイントのレスポンス。
type foodDetailResponse struct {
	FoodNutrients []foodNutrient `json:"foodNutrients"`
}

// foodNutrient は栄養素1件分のレスポンス。FDCはデータタイプによって
// 栄養素名をnutrientNameまたはnutrient.nameのどちらかで返し、
// 含有量もvalueまたはamountのどちらかで返す。
type foodNutrient struct {
	NutrientName string  `json:"nutrientName"`
	Value        float64 `json:"value"`
	Amount       float64 `json:"amount"`
	Nutrient     struct {
		Name string `json:"name"`
	} `json:"nutrient"`
}

// Resolve は食品名でFDCを検索し、最初にヒットした食品の栄養素ベクトルを返す。
// 検索にヒットしない場合はfound=falseを返す（エラーにはしない）。
// マッピング対象外の栄養素は無視され、レスポンスに含まれない栄養素は0になる。
func (c *Client) Resolve(ctx context.Context, foodName string) (vec model.NutrientVector, found bool, err error) {
	fdcID, found, err := c.searchFood(ctx, foodName)
	if err != nil {
		return nil, false, err
	}
	if !found {
		c.logger.Info("FDCに該当する食品がありません", slog.String("food_name", foodName))
		return nil, false, nil
	}

	detail, found, err := c.fetchFood(ctx, fdcID)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	vec = model.NewNutrientVector()
	for _, nut := range detail.FoodNutrients {
		name := nut.NutrientName
		if name == "" {
			name = nut.Nutrient.Name
		}
		field, ok := mapNutrientName(name)
		if !ok {
			continue
		}
		value := nut.Value
		if value == 0 {
			value = nut.Amount
		}
		vec[field] = value
	}

	return vec, true, nil
}

// searchFood は食品名で検索し、最初にヒットした食品のFDC IDを返す。
// ヒットしない場合はfound=falseを返す。
func (c *Client) searchFood(ctx context.Context, foodName string) (fdcID int64, found bool, err error) {
	reqURL, err := url.Parse(c.baseURL + "/foods/search")
	if err != nil {
		return 0, false, fmt.Errorf("エンドポイントURLのパースに失敗しました: %w", err)
	}

	q := reqURL.Query()
	q.Set("api_key", c.apiKey)
	q.Set("query", foodName)
	q.Set("pageSize", strconv.Itoa(searchPageSize))
	reqURL.RawQuery = q.Encode()

	body, result, err := c.get(ctx, reqURL.String())
	if err != nil {
		return 0, false, err
	}
	if result == CallResultNotFound {
		return 0, false, nil
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return 0, false, fmt.Errorf("検索レスポンスのパースに失敗しました: %w", err)
	}
	if len(search.Foods) == 0 {
		return 0, false, nil
	}

	return search.Foods[0].FdcID, true, nil
}

// fetchFood はFDC IDで食品の栄養素詳細を取得する。
// IDに該当する食品が存在しない場合はfound=falseを返す。
func (c *Client) fetchFood(ctx context.Context, fdcID int64) (detail *foodDetailResponse, found bool, err error) {
	reqURL, err := url.Parse(fmt.Sprintf("%s/food/%d", c.baseURL, fdcID))
	if err != nil {
		return nil, false, fmt.Errorf("エンドポイントURLのパースに失敗しました: %w", err)
	}

	q := reqURL.Query()
	q.Set("api_key", c.apiKey)
	reqURL.RawQuery = q.Encode()

	body, result, err := c.get(ctx, reqURL.String())
	if err != nil {
		return nil, false, err
	}
	if result == CallResultNotFound {
		return nil, false, nil
	}

	detail = &foodDetailResponse{}
	if err := json.Unmarshal(body, detail); err != nil {
		return nil, false, fmt.Errorf("食品詳細レスポンスのパースに失敗しました: %w", err)
	}

	return detail, true, nil
}

// get はレート制限とリトライ付きでGETリクエストを実行する。
// 404はエラーにせずCallResultNotFoundとして返す（食品が存在しないケース）。
// 429/5xxと通信エラーは指数バックオフでmaxAttempts回まで再試行する。
// URLにはAPIキーが含まれるため、ログにもエラーにもURLは出力しない。
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, CallResult, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := CalculateBackoff(attempt - 2)
			select {
			case <-ctx.Done():
				return nil, CallResultFail, ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, CallResultFail, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, CallResultFail, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
		}
		req.Header.Set("User-Agent", "Mealtrack/1.0 Nutrition Tracker")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Warn("FDC APIの呼び出しに失敗しました",
				slog.String("error", err.Error()),
				slog.Int("attempt", attempt),
			)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch ClassifyHTTPStatus(resp.StatusCode) {
		case CallResultOK:
			if readErr != nil {
				lastErr = fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", readErr)
				continue
			}
			return body, CallResultOK, nil

		case CallResultNotFound:
			return nil, CallResultNotFound, nil

		case CallResultRetry:
			lastErr = fmt.Errorf("FDC APIがステータス %d を返しました", resp.StatusCode)
			c.logger.Warn("FDC APIがエラーステータスを返しました",
				slog.Int("http_status", resp.StatusCode),
				slog.Int("attempt", attempt),
			)

		default:
			return nil, CallResultFail, fmt.Errorf("FDC APIがステータス %d を返しました", resp.StatusCode)
		}
	}

	return nil, CallResultFail, fmt.Errorf("FDC APIの呼び出しが%d回失敗しました: %w", c.maxAttempts, lastErr)
}
