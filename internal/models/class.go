package models

type Class struct {
	ClassID     int64  `db:"class_id" json:"class_id"`
	Grade       string `db:"grade" json:"grade"`
	HeadTeacher string `db:"head_teacher" json:"head_teacher"`
}
