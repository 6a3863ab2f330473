package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
)

func TestWriteInviteCodesCSV(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	expiry := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	codes := []models.InviteCode{
		{
			Code:       "STUDENT2023",
			Role:       models.RoleStudent,
			Status:     models.CodeStatusActive,
			UsedCount:  0,
			ExpiryDate: expiry.Unix(),
			CreatedAt:  created.Unix(),
		},
		{
			Code:       "TEACHER2023",
			Role:       models.RoleTeacher,
			Status:     models.CodeStatusUsed,
			UsedCount:  1,
			ExpiryDate: expiry.Unix(),
			CreatedAt:  created.Unix(),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInviteCodesCSV(&buf, codes))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"邀请码", "类型", "状态", "是否已使用", "过期日期", "创建日期"}, rows[0])
	assert.Equal(t, []string{"STUDENT2023", "学生", "有效", "否", "2024-04-01", "2024-03-01"}, rows[1])
	assert.Equal(t, []string{"TEACHER2023", "教师", "已使用", "是", "2024-04-01", "2024-03-01"}, rows[2])
}

func TestRenderReport(t *testing.T) {
	g := &models.Grading{
		ID:          1,
		Username:    "zhang.san",
		Date:        time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Unix(),
		Subject:     models.SubjectMath,
		Score:       88,
		Comment:     "整体不错",
		Issues:      models.IssueList{"第2题计算错误"},
		Suggestions: "注意验算",
		DataType:    models.DataTypeText,
		Content:     "1+1=3",
	}

	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, g))

	html := buf.String()
	assert.Contains(t, html, "作业批改报告")
	assert.Contains(t, html, "zhang.san")
	assert.Contains(t, html, "数学")
	assert.Contains(t, html, "88")
	assert.Contains(t, html, "第2题计算错误")
	assert.Contains(t, html, "注意验算")
	assert.Contains(t, html, "<pre>1&#43;1=3</pre>")
}

func TestRenderReportImage(t *testing.T) {
	g := &models.Grading{
		Username: "zhang.san",
		Subject:  models.SubjectChinese,
		Score:    90,
		DataType: models.DataTypeImage,
		Content:  "data:image/png;base64,aGk=",
	}

	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, g))

	assert.Contains(t, buf.String(), `<img src="data:image/png;base64,aGk="`)
}
