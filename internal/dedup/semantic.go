package dedup

import (
	"context"
	"log"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"go-jobagent/internal/ai"
	"go-jobagent/internal/canonical"
	"go-jobagent/internal/models"
)

// similarity component weights
const (
	keywordWeight  = 0.4
	companyWeight  = 0.3
	businessWeight = 0.2
	locationWeight = 0.1
)

// businessDomains is the fixed taxonomy used to compare postings at the
// business-area level rather than the keyword level.
var businessDomains = map[string][]string{
	"recommendation":  {"推荐", "推荐系统", "个性化推荐", "推荐算法", "推荐引擎"},
	"computer_vision": {"计算机视觉", "cv", "图像识别", "视觉ai", "图像处理"},
	"nlp":             {"自然语言处理", "nlp", "文本分析", "语音识别", "对话系统"},
	"ai_platform":     {"ai团队", "人工智能", "ai实验室", "ai部门"},
	"cloud":           {"云服务", "云计算", "云平台", "华为云", "腾讯云"},
	"mobile":          {"移动端", "手机", "终端", "app", "移动应用"},
}

type acceptedPosting struct {
	keywords mapset.Set[string]
	company  string
	location string
}

// Semantic drops near-duplicates among locally-unique postings by
// comparing each one against the postings already accepted in the same
// pass. Acceptance order defines cluster representatives, so the result
// depends on input order; that keeps the work at O(n·accepted) and
// guarantees one survivor per cluster.
type Semantic struct {
	extractor *ai.Extractor
	threshold float64
	accepted  []acceptedPosting
}

func NewSemantic(extractor *ai.Extractor, threshold float64) *Semantic {
	return &Semantic{
		extractor: extractor,
		threshold: threshold,
	}
}

// Deduplicate processes postings in input order, keeping each posting that
// is not similar enough to any already-accepted one.
func (s *Semantic) Deduplicate(ctx context.Context, postings []models.Posting, stats *models.DedupStats) []models.Posting {
	if len(postings) <= 1 {
		return postings
	}

	var unique []models.Posting
	for _, p := range postings {
		keywords := s.extractor.Keywords(ctx, buildPostingText(p))
		kwSet := keywordSet(keywords)

		entry := acceptedPosting{
			keywords: kwSet,
			company:  canonical.Company(p.Company),
			location: canonical.Location(p.Location),
		}

		if s.isDuplicate(entry) {
			stats.SemanticDuplicates++
			log.Printf("   ⚠️ Semantic duplicate dropped: %s @ %s", p.Title, p.Company)
			continue
		}

		s.accepted = append(s.accepted, entry)
		p.Derived.Keywords = keywords
		unique = append(unique, p)
	}

	stats.LLMCalls = s.extractor.LLMCalls
	log.Printf("🧠 Semantic dedup: %d in, %d unique (%d semantic dupes, %d llm calls)",
		len(postings), len(unique), stats.SemanticDuplicates, stats.LLMCalls)

	return unique
}

func (s *Semantic) isDuplicate(candidate acceptedPosting) bool {
	for _, existing := range s.accepted {
		if s.similarity(candidate, existing) >= s.threshold {
			return true
		}
	}
	return false
}

// similarity is a weighted blend of keyword overlap, company-name match,
// business-domain overlap and city equality, each in [0,1].
func (s *Semantic) similarity(a, b acceptedPosting) float64 {
	return jaccard(a.keywords, b.keywords)*keywordWeight +
		companySimilarity(a.company, b.company)*companyWeight +
		businessSimilarity(a.keywords, b.keywords)*businessWeight +
		locationSimilarity(a.location, b.location)*locationWeight
}

func jaccard(a, b mapset.Set[string]) float64 {
	union := a.Union(b).Cardinality()
	if union == 0 {
		return 0
	}
	return float64(a.Intersect(b).Cardinality()) / float64(union)
}

// companySimilarity compares canonical company names: exact match is 1.0,
// containment (e.g. "华为" vs "华为技术") is 0.8.
func companySimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.8
	}
	return 0
}

func locationSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	return 0
}

func businessSimilarity(a, b mapset.Set[string]) float64 {
	domainsA := extractDomains(a)
	domainsB := extractDomains(b)
	if domainsA.Cardinality() == 0 || domainsB.Cardinality() == 0 {
		return 0
	}
	return jaccard(domainsA, domainsB)
}

func extractDomains(keywords mapset.Set[string]) mapset.Set[string] {
	found := mapset.NewSet[string]()
	for kw := range keywords.Iter() {
		lower := strings.ToLower(kw)
		for domain, terms := range businessDomains {
			if found.Contains(domain) {
				continue
			}
			for _, term := range terms {
				if strings.Contains(lower, term) {
					found.Add(domain)
					break
				}
			}
		}
	}
	return found
}

func keywordSet(keywords []string) mapset.Set[string] {
	set := mapset.NewSet[string]()
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			set.Add(kw)
		}
	}
	return set
}

// buildPostingText assembles the short descriptive text handed to the
// keyword extractor.
func buildPostingText(p models.Posting) string {
	var parts []string
	if p.Title != "" {
		parts = append(parts, "岗位："+p.Title)
	}
	if p.Company != "" {
		parts = append(parts, "公司："+p.Company)
	}
	if p.Location != "" {
		parts = append(parts, "地点："+p.Location)
	}
	if p.Description != "" {
		parts = append(parts, "描述："+p.Description)
	}
	return strings.Join(parts, "\n")
}
