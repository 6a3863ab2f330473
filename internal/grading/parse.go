package grading

import (
	"regexp"
	"strconv"
	"strings"
)

type Result struct {
	Score       int      `json:"score"`
	Comment     string   `json:"comment"`
	Issues      []string `json:"issues"`
	Suggestions string   `json:"suggestions"`
}

// Section patterns and their fallbacks, kept in one place. A model reply
// missing a section degrades to the default instead of failing the grading.
var (
	scoreRe       = regexp.MustCompile(`分数：(\d+)`)
	commentRe     = regexp.MustCompile(`总体评价：([\s\S]*?)(?:具体问题：|改进建议：|$)`)
	issuesRe      = regexp.MustCompile(`具体问题：([\s\S]*?)(?:改进建议：|$)`)
	suggestionsRe = regexp.MustCompile(`改进建议：([\s\S]*)$`)
)

const (
	defaultScore       = 90
	defaultComment     = "作业完成得不错，有一些小问题需要注意。"
	defaultSuggestions = "建议多加练习，注意细节。"
)

// ParseFormattedResponse extracts the structured grading result from a model
// reply following the 分数/总体评价/具体问题/改进建议 section format.
func ParseFormattedResponse(content string) *Result {
	result := &Result{
		Score:       defaultScore,
		Comment:     defaultComment,
		Suggestions: defaultSuggestions,
	}

	if m := scoreRe.FindStringSubmatch(content); m != nil {
		if score, err := strconv.Atoi(m[1]); err == nil {
			result.Score = score
		}
	}

	if m := commentRe.FindStringSubmatch(content); m != nil {
		if comment := strings.TrimSpace(m[1]); comment != "" {
			result.Comment = comment
		}
	}

	if m := issuesRe.FindStringSubmatch(content); m != nil {
		for _, line := range strings.Split(strings.TrimSpace(m[1]), "\n") {
			line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
			if line != "" {
				result.Issues = append(result.Issues, line)
			}
		}
	}

	if m := suggestionsRe.FindStringSubmatch(content); m != nil {
		if suggestions := strings.TrimSpace(m[1]); suggestions != "" {
			result.Suggestions = suggestions
		}
	}

	return result
}
