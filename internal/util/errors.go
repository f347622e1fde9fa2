package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrSectionNotFound     = errors.New("section not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrAnswerCountMismatch = errors.New("answer vector does not match question count")
	ErrAttemptLimitReached = errors.New("quiz attempt limit reached")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrNotEnrolled         = errors.New("not enrolled in this course")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrPollClosed          = errors.New("poll is closed")
	ErrPollNotFound        = errors.New("poll not found")
	ErrAlreadyVoted        = errors.New("already voted in this poll")
	ErrGroupFull           = errors.New("study group is full")
	ErrGroupNotFound       = errors.New("study group not found")
	ErrAlreadyMember       = errors.New("already a member of this group")
	ErrNotMember           = errors.New("not a member of this group")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed     = errors.New("course already reviewed")
)
