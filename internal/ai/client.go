package ai

import (
	"context"
	"fmt"
)

// Client is the interface for text-understanding providers.
type Client interface {
	// ExtractKeywords returns 3-5 ranked discriminative keywords for a
	// posting text, most important first.
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
}

// buildKeywordPrompt creates the extraction instruction for the model
func buildKeywordPrompt(text string) string {
	return fmt.Sprintf(`请分析以下岗位描述，提取3-5个最能区分不同岗位的关键词。

岗位描述：
%s

提取要求：
1. 优先级排序：公司部门/团队名称 > 产品/平台名称 > 业务方向 > 特殊技术要求
2. 避免过于通用的词汇（如"算法"、"开发"、"工程师"）和基础技术栈（如"Python"、"Java"）
3. 只返回关键词，用英文逗号分隔，按重要性排序，不要解释，不要编号

示例：
输入：华为云AI团队招聘机器学习工程师，负责推荐系统算法开发，熟悉PyTorch
输出：华为云,AI团队,推荐系统

请提取关键词：`, text)
}
