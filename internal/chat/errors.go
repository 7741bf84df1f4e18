package chat

import "errors"

// Domain-specific errors for the chat package.
var (
	ErrEmptyMessage = errors.New("message text is empty")
	ErrEmptyPrompt  = errors.New("image prompt is empty")
	ErrEmptyText    = errors.New("speech text is empty")
)
