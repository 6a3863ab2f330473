package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shrimpsizemoose/rodpenna/internal/models"
)

var statusLabels = map[string]string{
	models.CodeStatusActive:  "有效",
	models.CodeStatusUsed:    "已使用",
	models.CodeStatusExpired: "已过期",
}

// WriteInviteCodesCSV writes the admin invite-code listing, labels matching
// the admin UI language.
func WriteInviteCodesCSV(w io.Writer, codes []models.InviteCode) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"邀请码", "类型", "状态", "是否已使用", "过期日期", "创建日期"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, code := range codes {
		role := "学生"
		if code.Role == models.RoleTeacher {
			role = "教师"
		}

		status, ok := statusLabels[code.Status]
		if !ok {
			status = code.Status
		}

		used := "否"
		if code.UsedCount > 0 {
			used = "是"
		}

		row := []string{
			code.Code,
			role,
			status,
			used,
			time.Unix(code.ExpiryDate, 0).UTC().Format("2006-01-02"),
			time.Unix(code.CreatedAt, 0).UTC().Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
