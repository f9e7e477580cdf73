package main

import "errors"

var (
	ErrTopicNotFound   = errors.New("topic not found")
	ErrNoQuestions     = errors.New("topic has no questions")
	ErrSessionNotFound = errors.New("session not found")
	ErrForbidden       = errors.New("session belongs to another client")
	ErrQuestionIndex   = errors.New("question index out of range")
	ErrNotSubmitted    = errors.New("session not submitted yet")
	ErrSuperseded      = errors.New("load superseded by a newer request")
	ErrSetTooLarge     = errors.New("question set exceeds size limit")
)
