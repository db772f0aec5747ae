package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrUserBlocked       = errors.New("account blocked by administration")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrCourseNotFound    = errors.New("course not found")
	ErrCourseLocked      = errors.New("course not unlocked")
	ErrExamNotFound      = errors.New("exam not found")
	ErrNoActiveSession   = errors.New("no active exam session")
	ErrForumLocked       = errors.New("forum locked for this grade")
	ErrCodeExhausted     = errors.New("could not generate a unique activation code")
)
