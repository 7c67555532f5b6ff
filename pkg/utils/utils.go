package utils

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode"

	"golang-stock-assistant/pkg/logger"
)

// GoSafe runs fn in a goroutine and logs any panic it raises.
func GoSafe(log *logger.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Recovered from panic",
					logger.Field("panic", r),
					logger.StringField("stack", string(debug.Stack())),
				)
			}
		}()
		fn()
	}()
}

// SafeCall runs fn and converts a panic into an error.
func SafeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func ToPointer[T any](v T) *T {
	return &v
}

// SafeText drops invalid UTF-8 and control characters and collapses runs of
// whitespace into single spaces.
func SafeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
