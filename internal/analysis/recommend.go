package analysis

import (
	"sort"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
)

type Recommendation struct {
	Type        string   `json:"type"`
	Count       int      `json:"count"`
	Subject     string   `json:"subject"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Exercises   []string `json:"exercises"`
}

type practiceSet struct {
	title       string
	description string
	exercises   []string
}

var practiceSets = map[string]practiceSet{
	TypeCalculation: {
		title:       "基础计算能力训练",
		description: "针对性练习各种数学计算技巧，提高计算准确性。",
		exercises:   []string{"分数四则运算专项练习", "小数点位置计算练习", "多步骤计算题集"},
	},
	TypeConcept: {
		title:       "数学概念强化训练",
		description: "通过图解和实例帮助理解抽象数学概念。",
		exercises:   []string{"几何概念可视化练习", "代数概念应用题", "数学术语理解练习"},
	},
	TypeFormula: {
		title:       "公式应用专项训练",
		description: "学习如何在不同情境下正确选择和应用数学公式。",
		exercises:   []string{"常用公式记忆与应用", "公式变形练习", "综合应用题集"},
	},
	TypeGrammar: {
		title:       "语法规则专项训练",
		description: "系统学习语法规则，提高语言表达的准确性。",
		exercises:   []string{"句子成分分析练习", "常见语法错误纠正", "复杂句型构建练习"},
	},
	TypeVocabulary: {
		title:       "词汇积累与应用",
		description: "扩充词汇量，学习词语的正确用法。",
		exercises:   []string{"近义词辨析练习", "常用词语搭配训练", "成语应用专项练习"},
	},
	TypeExpression: {
		title:       "语言表达能力提升",
		description: "提高语言的逻辑性和连贯性，使表达更加清晰。",
		exercises:   []string{"段落组织训练", "逻辑连接词使用练习", "主题句与支撑句练习"},
	},
}

var fallbackPracticeSet = practiceSet{
	title:       "综合能力提升训练",
	description: "全面提升学科能力，查漏补缺。",
	exercises:   []string{"综合练习题集", "常见错误分析与纠正", "解题思路训练"},
}

// Recommend maps error-type counters to canned practice sets, highest count
// first.
func Recommend(stats []models.ErrorTypeStat) []Recommendation {
	sorted := make([]models.ErrorTypeStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	recommendations := make([]Recommendation, 0, len(sorted))
	for _, stat := range sorted {
		set, ok := practiceSets[stat.Type]
		if !ok {
			set = fallbackPracticeSet
		}
		recommendations = append(recommendations, Recommendation{
			Type:        stat.Type,
			Count:       stat.Count,
			Subject:     stat.Subject,
			Title:       set.title,
			Description: set.description,
			Exercises:   set.exercises,
		})
	}

	return recommendations
}
