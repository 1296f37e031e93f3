package handler

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/hashfs"
)

// TemplateFuncs returns the FuncMap shared by every template. Static asset
// names are resolved through assets so pages link to content-hashed files;
// a nil assets leaves names unchanged.
func TemplateFuncs(assets *hashfs.FS) template.FuncMap {
	return template.FuncMap{
		"year": func() int {
			return time.Now().Year()
		},
		"formatDateLong": FormatDateLong,
		"static": func(name string) string {
			name = strings.TrimPrefix(name, "/")
			if assets != nil {
				name = assets.HashName(name)
			}
			return "/static/" + name
		},
		"ternary": func(condition bool, trueVal, falseVal any) any {
			if condition {
				return trueVal
			}
			return falseVal
		},
	}
}

// FormatDateLong formats t as "October 20th, 2026".
func FormatDateLong(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %s, %d", t.Month(), ordinal(t.Day()), t.Year())
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
