// Package analysis derives per-user error-type counters and practice
// recommendations from grading feedback.
package analysis

import (
	"strings"
)

const (
	TypeCalculation = "计算错误"
	TypeConcept     = "概念理解错误"
	TypeFormula     = "公式应用错误"
	TypeGrammar     = "语法错误"
	TypeVocabulary  = "词汇错误"
	TypeExpression  = "表达错误"
	TypeOther       = "其他错误"
)

type errorCategory struct {
	label    string
	keywords []string
}

var mathCategories = []errorCategory{
	{TypeCalculation, []string{"计算", "运算", "答案"}},
	{TypeConcept, []string{"概念", "理解", "思路"}},
	{TypeFormula, []string{"公式", "定理", "法则"}},
}

var languageCategories = []errorCategory{
	{TypeGrammar, []string{"语法", "句子", "结构"}},
	{TypeVocabulary, []string{"词汇", "用词", "词语"}},
	{TypeExpression, []string{"表达", "逻辑", "连贯"}},
}

type TypeCount struct {
	Type  string
	Count int
}

// ExtractErrorTypes classifies each issue by keyword against the subject's
// category table. An issue may count under several categories. When no
// category fires at all, the whole issue list lands in the catch-all bucket.
func ExtractErrorTypes(subject string, issues []string) []TypeCount {
	var categories []errorCategory
	switch subject {
	case "math":
		categories = mathCategories
	case "chinese", "english":
		categories = languageCategories
	}

	var counts []TypeCount
	for _, cat := range categories {
		n := 0
		for _, issue := range issues {
			if matchesAny(issue, cat.keywords) {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, TypeCount{Type: cat.label, Count: n})
		}
	}

	if len(counts) == 0 && len(issues) > 0 {
		counts = append(counts, TypeCount{Type: TypeOther, Count: len(issues)})
	}

	return counts
}

func matchesAny(issue string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(issue, kw) {
			return true
		}
	}
	return false
}
