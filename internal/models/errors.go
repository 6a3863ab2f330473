package models

import "errors"

var (
	ErrMissingStudentID = errors.New("student requires a student id")
	ErrMissingTeacherID = errors.New("teacher requires a teacher id")
)
