package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1/chat/completions"
	defaultModel   = "llama-3.3-70b-versatile"

	maxAttempts    = 3
	requestTimeout = 60 * time.Second
)

type llmClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewLLMClient creates a keyword-extraction client against an
// OpenAI-compatible chat completions endpoint. Empty baseURL/model select
// the defaults.
func NewLLMClient(apiKey, baseURL, model string) Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &llmClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
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
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ExtractKeywords asks the model for discriminative keywords, retrying
// transient failures with exponential backoff.
func (c *llmClient) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			// 1s, 2s, 4s...
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		raw, err := c.complete(ctx, buildKeywordPrompt(text))
		if err != nil {
			lastErr = err
			log.Printf("⚠️ Keyword extraction attempt %d/%d failed: %v", attempt+1, maxAttempts, err)
			continue
		}

		keywords := parseKeywordResponse(raw)
		if len(keywords) == 0 {
			lastErr = fmt.Errorf("no usable keywords in response %q", raw)
			continue
		}
		return keywords, nil
	}
	return nil, lastErr
}

func (c *llmClient) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("API error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from chat API")
	}

	return cleanMarkdownFences(chatResp.Choices[0].Message.Content), nil
}

var (
	answerPrefixRegex = regexp.MustCompile(`^[^：:]*[：:]\s*`)
	punctuationRegex  = regexp.MustCompile(`[。！？，；：""''（）【】]`)
)

// parseKeywordResponse pulls a clean keyword list out of a model reply
// that may contain explanations around the comma-separated line.
func parseKeywordResponse(response string) []string {
	lines := strings.Split(strings.TrimSpace(response), "\n")

	keywordLine := ""
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "输出：") || strings.HasPrefix(line, "关键词：") ||
			strings.HasPrefix(line, "提取：") || strings.HasPrefix(line, "结果：") {
			keywordLine = answerPrefixRegex.ReplaceAllString(line, "")
			break
		}
		if strings.Contains(line, ",") &&
			!strings.Contains(line, "要求") && !strings.Contains(line, "示例") && !strings.Contains(line, "说明") {
			keywordLine = line
			break
		}
	}
	if keywordLine == "" && len(lines) > 0 {
		keywordLine = strings.TrimSpace(lines[0])
	}

	var keywords []string
	for _, kw := range strings.Split(keywordLine, ",") {
		kw = strings.TrimSpace(punctuationRegex.ReplaceAllString(kw, ""))
		if kw == "" || kw == "无" || kw == "无关键词" || kw == "暂无" || kw == "N/A" || kw == "NA" {
			continue
		}
		if n := len([]rune(kw)); n < 2 || n > 20 {
			continue
		}
		if isAllDigits(kw) {
			continue
		}
		keywords = append(keywords, kw)
		if len(keywords) == 5 {
			break
		}
	}
	return keywords
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// cleanMarkdownFences removes backticks and "json" prefix if the model
// tries to be helpful
func cleanMarkdownFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
