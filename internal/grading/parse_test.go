package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormattedResponse(t *testing.T) {
	t.Run("full well-formed reply", func(t *testing.T) {
		content := "分数：87\n总体评价：整体不错，有几处小问题。\n具体问题：\n- 第2题计算错误\n- 第4题公式应用有误\n改进建议：注意验算最终答案。"

		got := ParseFormattedResponse(content)

		assert.Equal(t, 87, got.Score)
		assert.Equal(t, "整体不错，有几处小问题。", got.Comment)
		assert.Equal(t, []string{"第2题计算错误", "第4题公式应用有误"}, got.Issues)
		assert.Equal(t, "注意验算最终答案。", got.Suggestions)
	})

	t.Run("missing sections fall back to defaults", func(t *testing.T) {
		got := ParseFormattedResponse("模型没有按格式回复。")

		assert.Equal(t, defaultScore, got.Score)
		assert.Equal(t, defaultComment, got.Comment)
		assert.Empty(t, got.Issues)
		assert.Equal(t, defaultSuggestions, got.Suggestions)
	})

	t.Run("score only", func(t *testing.T) {
		got := ParseFormattedResponse("分数：100")

		assert.Equal(t, 100, got.Score)
		assert.Equal(t, defaultComment, got.Comment)
	})

	t.Run("issues without suggestions section", func(t *testing.T) {
		content := "分数：75\n总体评价：需要改进。\n具体问题：\n- 主题不明确\n- 逻辑混乱"

		got := ParseFormattedResponse(content)

		assert.Equal(t, 75, got.Score)
		assert.Equal(t, []string{"主题不明确", "逻辑混乱"}, got.Issues)
		assert.Equal(t, defaultSuggestions, got.Suggestions)
	})

	t.Run("bullet lines with padding and blanks", func(t *testing.T) {
		content := "具体问题：\n  - 用词不当  \n\n-表达不连贯\n改进建议：多读范文。"

		got := ParseFormattedResponse(content)

		assert.Equal(t, []string{"用词不当", "表达不连贯"}, got.Issues)
		assert.Equal(t, "多读范文。", got.Suggestions)
	})

	t.Run("empty comment keeps default", func(t *testing.T) {
		got := ParseFormattedResponse("总体评价：\n具体问题：\n- 一处错误")

		assert.Equal(t, defaultComment, got.Comment)
		assert.Equal(t, []string{"一处错误"}, got.Issues)
	})
}

func TestDemoResult(t *testing.T) {
	t.Run("image scores stay in band", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			got := DemoResult("image")
			assert.GreaterOrEqual(t, got.Score, 85)
			assert.LessOrEqual(t, got.Score, 98)
			assert.NotEmpty(t, got.Comment)
			assert.NotEmpty(t, got.Issues)
			assert.NotEmpty(t, got.Suggestions)
		}
	})

	t.Run("text scores stay in band", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			got := DemoResult("text")
			assert.GreaterOrEqual(t, got.Score, 80)
			assert.LessOrEqual(t, got.Score, 95)
			assert.NotEmpty(t, got.Comment)
			assert.NotEmpty(t, got.Issues)
		}
	})
}
