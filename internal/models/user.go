package models

import (
	"github.com/go-playground/validator/v10"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type User struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name" validate:"required"`
	Password  string `db:"password" json:"-" validate:"required"`
	Role      string `db:"role" json:"role" validate:"required,oneof=student teacher"`
	StudentID string `db:"student_id" json:"student_id,omitempty"`
	ClassRoom string `db:"class_room" json:"class_room,omitempty"`
	TeacherID string `db:"teacher_id" json:"teacher_id,omitempty"`
	Subjects  string `db:"subjects" json:"subjects,omitempty"` // comma-separated for teachers
	CreatedAt int64  `db:"created_at" json:"created_at"`
}

func (u *User) Validate() error {
	validate := validator.New()
	if err := validate.Struct(u); err != nil {
		return err
	}
	return u.validateRoleFields()
}

func (u *User) validateRoleFields() error {
	switch u.Role {
	case RoleStudent:
		if u.StudentID == "" {
			return ErrMissingStudentID
		}
	case RoleTeacher:
		if u.TeacherID == "" {
			return ErrMissingTeacherID
		}
	}
	return nil
}
