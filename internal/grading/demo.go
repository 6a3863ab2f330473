package grading

import (
	"math/rand"
)

// DemoResult fabricates a plausible grading without touching the upstream
// API. Score bands and texts mirror what the real model tends to produce.
func DemoResult(dataType string) *Result {
	if dataType == "image" {
		return demoImageResult()
	}
	return demoTextResult()
}

func demoImageResult() *Result {
	score := rand.Intn(14) + 85

	switch {
	case score >= 95:
		return &Result{
			Score:   score,
			Comment: "这份作业完成得非常出色，思路清晰，解题方法正确，书写工整。",
			Issues: []string{
				"第3题：计算过程正确，但最终答案有小错误",
			},
			Suggestions: "继续保持良好的学习习惯，可以尝试更具挑战性的题目。",
		}
	case score >= 90:
		return &Result{
			Score:   score,
			Comment: "这份作业完成得很好，思路清晰，解题方法正确。有几处小错误需要注意。",
			Issues: []string{
				"第2题：计算过程正确，但最终答案有小错误",
				"第4题：解题思路正确，但公式应用有误",
			},
			Suggestions: "建议复习一下分数乘法的计算规则，注意验算最终答案。",
		}
	default:
		return &Result{
			Score:   score,
			Comment: "这份作业基本完成，但存在一些问题需要改进。",
			Issues: []string{
				"第1题：解题思路有误，需要重新理解题目要求",
				"第3题：计算过程有错误，导致最终答案不正确",
				"第5题：公式使用不正确，建议复习相关知识点",
			},
			Suggestions: "建议重新复习相关知识点，特别是公式的应用和计算技巧。",
		}
	}
}

func demoTextResult() *Result {
	score := rand.Intn(16) + 80

	switch {
	case score >= 90:
		return &Result{
			Score:   score,
			Comment: "这篇作文写得非常好，结构清晰，语言流畅，观点明确。",
			Issues: []string{
				"个别句子表达不够简洁，可以进一步精炼",
				"部分论据可以更加具体",
			},
			Suggestions: "建议在遣词造句上更加注重精准性，同时可以增加一些生活实例来支持论点。",
		}
	case score >= 85:
		return &Result{
			Score:   score,
			Comment: "这篇作文整体不错，有清晰的主题和结构，但存在一些需要改进的地方。",
			Issues: []string{
				"开头部分引入主题不够自然",
				"部分段落之间的过渡不够流畅",
				"结尾部分略显仓促，没有很好地总结全文",
			},
			Suggestions: "建议加强段落之间的连贯性，注意开头和结尾的写作技巧，使文章更加完整。",
		}
	default:
		return &Result{
			Score:   score,
			Comment: "这篇作文有一定的基础，但存在较多问题需要改进。",
			Issues: []string{
				"主题不够明确，文章缺乏中心思想",
				"段落组织混乱，逻辑不够清晰",
				"语言表达较为单调，缺乏变化",
				"错别字和语法错误较多",
			},
			Suggestions: "建议重新梳理文章结构，明确中心思想，注意语言的多样性和准确性，多阅读优秀范文来提高写作水平。",
		}
	}
}
