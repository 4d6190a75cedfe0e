package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubClient struct {
	keywords []string
	err      error
	calls    int
}

func (s *stubClient) ExtractKeywords(_ context.Context, _ string) ([]string, error) {
	s.calls++
	return s.keywords, s.err
}

func TestExtractorCachesByContent(t *testing.T) {
	client := &stubClient{keywords: []string{"推荐系统", "机器学习"}}
	e := NewExtractor(client)

	first := e.Keywords(context.Background(), "岗位：推荐算法工程师")
	second := e.Keywords(context.Background(), "岗位：推荐算法工程师")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls, "identical text hits the cache")
	assert.Equal(t, 1, e.LLMCalls)
}

func TestExtractorFallsBackOnError(t *testing.T) {
	client := &stubClient{err: errors.New("rate limited")}
	e := NewExtractor(client)

	keywords := e.Keywords(context.Background(), "负责大模型训练，微信支付团队")

	assert.NotEmpty(t, keywords, "provider failure degrades to the heuristic, never fails")
}

func TestExtractorNilClientUsesFallback(t *testing.T) {
	e := NewExtractor(nil)

	keywords := e.Keywords(context.Background(), "推荐系统平台，机器学习方向")
	assert.Contains(t, keywords, "机器学习")
	assert.Equal(t, 0, e.LLMCalls)
}

func TestExtractorEmptyText(t *testing.T) {
	e := NewExtractor(&stubClient{})
	assert.Nil(t, e.Keywords(context.Background(), "   "))
}

func TestFallbackKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "products and business units, capped at three",
			text:     "微信支付团队，负责大模型与机器学习落地",
			expected: []string{"微信", "微信支付团队", "大模型"},
		},
		{
			name:     "business direction",
			text:     "推荐系统的召回与排序",
			expected: []string{"推荐系统"},
		},
		{
			name:     "nothing recognizable",
			text:     "行政前台，接待访客",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FallbackKeywords(tt.text))
		})
	}
}

func TestParseKeywordResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected []string
	}{
		{
			name:     "plain comma line",
			response: "推荐系统,机器学习,排序模型",
			expected: []string{"推荐系统", "机器学习", "排序模型"},
		},
		{
			name:     "labelled answer",
			response: "分析如下。\n输出：推荐系统,机器学习",
			expected: []string{"推荐系统", "机器学习"},
		},
		{
			name:     "punctuation stripped",
			response: "推荐系统，机器学习,排序模型。",
			expected: []string{"推荐系统机器学习", "排序模型"},
		},
		{
			name:     "filters junk tokens",
			response: "推荐系统,无,12345,x,机器学习",
			expected: []string{"推荐系统", "机器学习"},
		},
		{
			name:     "caps at five",
			response: "aa,bb,cc,dd,ee,ff,gg",
			expected: []string{"aa", "bb", "cc", "dd", "ee"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseKeywordResponse(tt.response))
		})
	}
}

func TestCleanMarkdownFences(t *testing.T) {
	assert.Equal(t, "推荐系统,机器学习", cleanMarkdownFences("```\n推荐系统,机器学习\n```"))
	assert.Equal(t, `{"a":1}`, cleanMarkdownFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, "plain", cleanMarkdownFences("plain"))
}
