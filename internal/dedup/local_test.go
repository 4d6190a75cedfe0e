package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobagent/internal/models"
)

func TestLocalURLDuplicates(t *testing.T) {
	postings := []models.Posting{
		{Title: "算法工程师", Company: "华为", URL: "https://www.zhipin.com/job_detail/abc123.html"},
		{Title: "算法专家", Company: "华为云", URL: "https://www.zhipin.com/job_detail/abc123.html?ka=2"},
	}

	var stats models.DedupStats
	result := Local(postings, &stats)

	assert.Len(t, result.Unique, 1)
	assert.Equal(t, "算法工程师", result.Unique[0].Title, "first occurrence survives")
	assert.Equal(t, 1, stats.URLDuplicates)
	assert.Equal(t, 0, stats.ContentDuplicates)
}

func TestLocalContentDuplicates(t *testing.T) {
	postings := []models.Posting{
		{Title: "算法工程师（推荐方向）", Company: "华为技术有限公司", Location: "北京·海淀区"},
		{Title: "算法工程师", Company: "华为科技有限公司", Location: "北京"},
	}

	var stats models.DedupStats
	result := Local(postings, &stats)

	assert.Len(t, result.Unique, 1)
	assert.Equal(t, "华为技术有限公司", result.Unique[0].Company)
	assert.Equal(t, 1, stats.ContentDuplicates)
}

func TestLocalAttachesDerived(t *testing.T) {
	postings := []models.Posting{
		{Title: "算法工程师", Company: "华为", Location: "北京", URL: "https://www.zhipin.com/job_detail/abc123.html"},
	}

	var stats models.DedupStats
	result := Local(postings, &stats)

	assert.Equal(t, "abc123", result.Unique[0].Derived.JobID)
	assert.NotEmpty(t, result.Unique[0].Derived.ContentFingerprint)
}

// a posting with nothing to key on must pass through, never be dropped
func TestLocalEmptyIdentityPassthrough(t *testing.T) {
	postings := []models.Posting{
		{Description: "只有描述没有身份字段"},
		{Description: "另一条匿名记录"},
	}

	var stats models.DedupStats
	result := Local(postings, &stats)

	assert.Len(t, result.Unique, 2)
	assert.Equal(t, 0, stats.URLDuplicates)
	assert.Equal(t, 0, stats.ContentDuplicates)
}

// running the output through again must change nothing
func TestLocalIdempotent(t *testing.T) {
	postings := []models.Posting{
		{Title: "算法工程师", Company: "华为", Location: "北京", URL: "https://a.com/jobs/1"},
		{Title: "算法工程师", Company: "华为", Location: "北京", URL: "https://a.com/jobs/1"},
		{Title: "后端工程师", Company: "腾讯", Location: "深圳", URL: "https://a.com/jobs/2"},
	}

	var stats models.DedupStats
	first := Local(postings, &stats)

	var stats2 models.DedupStats
	second := Local(first.Unique, &stats2)

	assert.Equal(t, first.Unique, second.Unique)
	assert.Equal(t, 0, stats2.URLDuplicates)
	assert.Equal(t, 0, stats2.ContentDuplicates)
}
