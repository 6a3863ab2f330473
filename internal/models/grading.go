package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	SubjectMath    = "math"
	SubjectChinese = "chinese"
	SubjectEnglish = "english"
	SubjectOther   = "other"

	DataTypeImage = "image"
	DataTypeText  = "text"
)

// IssueList is stored as a JSON array in a TEXT column.
type IssueList []string

func (l IssueList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal issues: %w", err)
	}
	return string(data), nil
}

func (l *IssueList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan issues from %T", src)
	}
}

type Grading struct {
	ID          int64     `db:"id" json:"id"`
	Username    string    `db:"username" json:"username" validate:"required"`
	Date        int64     `db:"date" json:"date"`
	Subject     string    `db:"subject" json:"subject" validate:"required,oneof=math chinese english other"`
	Score       int       `db:"score" json:"score" validate:"min=0,max=100"`
	Comment     string    `db:"comment" json:"comment"`
	Issues      IssueList `db:"issues" json:"issues"`
	Suggestions string    `db:"suggestions" json:"suggestions"`
	DataType    string    `db:"data_type" json:"data_type" validate:"required,oneof=image text"`
	Content     string    `db:"content" json:"content,omitempty"`
}

func (g *Grading) Validate() error {
	validate := validator.New()
	return validate.Struct(g)
}
