package ai

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log"
	"regexp"
	"strings"
)

// Extractor wraps a Client with a content-addressed cache and a local
// fallback so keyword extraction never fails the run. A nil client means
// the fallback heuristic is used for everything.
type Extractor struct {
	client Client
	cache  map[string][]string

	// LLMCalls counts actual provider calls (cache hits excluded).
	LLMCalls int
}

func NewExtractor(client Client) *Extractor {
	return &Extractor{
		client: client,
		cache:  make(map[string][]string),
	}
}

// Keywords returns the keyword set for a posting text. Results are cached
// by a hash of the input text; provider failures degrade to the regex
// heuristic and are logged, never returned.
func (e *Extractor) Keywords(ctx context.Context, text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sum := md5.Sum([]byte(text))
	cacheKey := hex.EncodeToString(sum[:])
	if cached, ok := e.cache[cacheKey]; ok {
		return cached
	}

	var keywords []string
	if e.client != nil {
		e.LLMCalls++
		extracted, err := e.client.ExtractKeywords(ctx, text)
		if err != nil {
			log.Printf("⚠️ LLM keyword extraction failed, using fallback: %v", err)
			keywords = FallbackKeywords(text)
		} else {
			keywords = extracted
		}
	} else {
		keywords = FallbackKeywords(text)
	}

	e.cache[cacheKey] = keywords
	return keywords
}

// fallback patterns: company/team units, known products, business
// directions, technology directions
var fallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[\p{Han}a-zA-Z]+(?:云|端|科技|技术)[\p{Han}a-zA-Z]*(?:团队|实验室|部门|事业部|BG)`),
	regexp.MustCompile(`微信|QQ|抖音|头条|淘宝|钉钉|支付宝|百度|搜索`),
	regexp.MustCompile(`HarmonyOS|TikTok|WeChat|ChatGPT|Claude`),
	regexp.MustCompile(`[\p{Han}]*(?:推荐|搜索|广告|支付|风控)[\p{Han}]*(?:系统|平台|算法|团队)`),
	regexp.MustCompile(`大模型|机器学习|深度学习|计算机视觉|自然语言处理|语音识别`),
}

// FallbackKeywords scans for known company/product/domain terms when the
// provider is unavailable. Order-preserving, deduplicated, at most 3.
func FallbackKeywords(text string) []string {
	var found []string
	seen := make(map[string]bool)
	for _, re := range fallbackPatterns {
		for _, m := range re.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				found = append(found, m)
			}
			if len(found) == 3 {
				return found
			}
		}
	}
	return found
}
