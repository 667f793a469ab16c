package text

import "strings"

// LineEnding specifies how line breaks are written out.
// Inside a Text every line break is stored as a single '\n'.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// ParseLineEnding maps "lf", "crlf" and "cr" to a LineEnding.
func ParseLineEnding(s string) (LineEnding, bool) {
	switch strings.ToLower(s) {
	case "lf", "\n":
		return LineEndingLF, true
	case "crlf", "\r\n":
		return LineEndingCRLF, true
	case "cr", "\r":
		return LineEndingCR, true
	default:
		return LineEndingLF, false
	}
}

// String returns the escaped form of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// DetectLineEnding returns the most common line ending in s.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(s string) LineEnding {
	var lfCount, crlfCount, crCount int

	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n':
			crlfCount++
			i++
		case s[i] == '\r':
			crCount++
		case s[i] == '\n':
			lfCount++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount {
		return LineEndingCRLF
	}
	if crCount > 0 && crCount >= lfCount {
		return LineEndingCR
	}
	return LineEndingLF
}

// toLF converts every line break in s to '\n'.
func toLF(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// encode converts the '\n' line breaks of s to le.
func (le LineEnding) encode(s string) string {
	if le == LineEndingLF {
		return s
	}
	return strings.ReplaceAll(s, "\n", le.Sequence())
}
