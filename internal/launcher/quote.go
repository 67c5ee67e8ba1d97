package launcher

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// UnixJoin quotes args for a POSIX shell. Splitting the result with shell
// rules gives back args.
func UnixJoin(args []string) string {
	return shellquote.Join(args...)
}

// WindowsQuote quotes one argument following the CommandLineToArgvW rules:
// arguments with blanks or quotes are wrapped in double quotes, embedded
// quotes are backslash-escaped, and backslashes are only doubled when they
// precede a quote.
func WindowsQuote(s string) string {
	if s == "" {
		return `""`
	}
	if !strings.ContainsAny(s, " \t\n\v\"") {
		return s
	}

	var b strings.Builder
	b.WriteByte('"')
	slashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			slashes++
		case '"':
			for ; slashes > 0; slashes-- {
				b.WriteByte('\\')
			}
			b.WriteByte('\\')
		default:
			slashes = 0
		}
		b.WriteByte(c)
	}
	// The closing quote must not be escaped by trailing backslashes.
	for ; slashes > 0; slashes-- {
		b.WriteByte('\\')
	}
	b.WriteByte('"')
	return b.String()
}

// WindowsJoin quotes and joins args for a Windows command line.
func WindowsJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = WindowsQuote(arg)
	}
	return strings.Join(quoted, " ")
}

// appleScriptString escapes s for use inside an AppleScript string literal.
func appleScriptString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
