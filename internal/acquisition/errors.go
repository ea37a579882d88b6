package acquisition

import (
	"fmt"
	"regexp"
	"strings"

	"clipscout/internal/services"
)

// Category labels an acquisition failure for the operator.
type Category string

const (
	CategoryProfileBlocked        Category = "PROFILE_BLOCKED"
	CategoryItemBlocked           Category = "ITEM_BLOCKED"
	CategoryProfileEmptyOrBlocked Category = "PROFILE_EMPTY_OR_BLOCKED"
	CategoryItemUnavailable       Category = "ITEM_UNAVAILABLE"
	CategoryUnknown               Category = "UNKNOWN_ACQUISITION_FAILURE"
	CategoryToolNotInstalled      Category = "TOOL_NOT_INSTALLED"
)

const directItemRemedy = "Open the video in the app and copy its share link. Expected form: " +
	"https://www.tiktok.com/@username/video/1234567890"

// forbiddenPattern matches an HTTP 403 response. A bare 403 is not enough:
// item ids and handles in the same output often contain those digits.
var forbiddenPattern = regexp.MustCompile(`(?i)http error 403\b|status(?: code)?:? 403\b|\b403\s*:?\s*forbidden|\bforbidden\b`)

var messages = map[Category]string{
	CategoryProfileBlocked: "Could not fetch a video from this profile page. Use a direct video URL instead. " +
		directItemRemedy,
	CategoryItemBlocked: "The video could not be downloaded. It may be private or deleted, the platform may be " +
		"restricting access, or the URL may be wrong.",
	CategoryProfileEmptyOrBlocked: "No video could be found on this profile page. Use a direct video URL instead. " +
		directItemRemedy,
	CategoryItemUnavailable:  "This video is unavailable. It may have been deleted or made private.",
	CategoryToolNotInstalled: "yt-dlp was not found. Install it (for example: brew install yt-dlp) and try again.",
}

// Error is a classified acquisition failure.
type Error struct {
	Category Category
	Message  string
	// Detail is the first line of the raw tool output.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" && e.Category != CategoryUnknown {
		return fmt.Sprintf("%s: %s (%s)", e.Category, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// ErrorKind exposes the category for classification.
func (e *Error) ErrorKind() string {
	return string(e.Category)
}

// Unwrap exposes the service marker alongside the underlying cause.
func (e *Error) Unwrap() []error {
	marker := services.ErrExternalTool
	if e.Category == CategoryToolNotInstalled {
		marker = services.ErrConfiguration
	}
	if e.Err == nil {
		return []error{marker}
	}
	return []error{marker, e.Err}
}

// Classify maps raw tool output to a category. profile reports whether the
// target was profile-shaped.
func Classify(output string, profile bool, cause error) *Error {
	lower := strings.ToLower(output)
	detail := firstLine(output)

	var category Category
	switch {
	case forbiddenPattern.MatchString(output):
		category = CategoryItemBlocked
		if profile {
			category = CategoryProfileBlocked
		}
	case strings.Contains(lower, "video unavailable") ||
		strings.Contains(lower, "no video found") ||
		strings.Contains(lower, "no items found"):
		category = CategoryItemUnavailable
		if profile {
			category = CategoryProfileEmptyOrBlocked
		}
	default:
		message := "Video download failed"
		if detail != "" {
			message += ": " + detail
		}
		return &Error{Category: CategoryUnknown, Message: message, Detail: detail, Err: cause}
	}
	return &Error{Category: category, Message: messages[category], Detail: detail, Err: cause}
}

// ToolNotInstalled wraps a locator failure.
func ToolNotInstalled(cause error) *Error {
	return &Error{
		Category: CategoryToolNotInstalled,
		Message:  messages[CategoryToolNotInstalled],
		Err:      cause,
	}
}

func firstLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
