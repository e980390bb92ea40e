package format

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)

var rampHeader = regexp.MustCompile(`^\s*ramp\s+"[^"]*"\s*\{\s*$`)
var attributeLine = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_-]*)\s*=`)

// rampAttributeOrder is the canonical order of a ramp block's leading
// attributes. Unknown attributes keep their relative order after these.
var rampAttributeOrder = map[string]int{
	"base":   0,
	"steps":  1,
	"format": 2,
}

// Format takes HCL source content and returns it formatted according to
// HCL canonical style rules. It uses hclwrite.Format which handles
// indentation, spacing, and newline normalization.
//
// The formatter works even on partial/invalid HCL, making it suitable
// for use while the user is still typing.
func Format(content string) (string, error) {
	formatted := hclwrite.Format([]byte(content))
	// Collapse multiple consecutive blank lines into a single blank line.
	collapsed := multipleBlankLines.ReplaceAllString(string(formatted), "\n\n")
	// Remove blank lines immediately after opening braces.
	collapsed = blankLineAfterOpenBrace.ReplaceAllString(collapsed, "{\n")
	// Remove blank lines immediately before closing braces.
	collapsed = blankLineBeforeCloseBrace.ReplaceAllString(collapsed, "\n${1}")
	// Reordering changes which attributes sit together, so align again.
	return string(hclwrite.Format([]byte(orderRampAttributes(collapsed)))), nil
}

type attribute struct {
	name  string
	lines []string // leading comments, then the attribute itself
}

// orderRampAttributes sorts the run of single-line attributes that opens
// each ramp block into canonical order. Comment lines directly above an
// attribute move with it. Multi-line values end the run.
func orderRampAttributes(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		line := lines[i]
		out = append(out, line)
		i++
		if !rampHeader.MatchString(line) {
			continue
		}

		var run []attribute
		var pending []string
		for i < len(lines) {
			l := lines[i]
			trimmed := strings.TrimSpace(l)
			if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
				pending = append(pending, l)
				i++
				continue
			}
			m := attributeLine.FindStringSubmatch(l)
			if m == nil || !balanced(trimmed) {
				break
			}
			run = append(run, attribute{name: m[1], lines: append(pending, l)})
			pending = nil
			i++
		}

		sort.SliceStable(run, func(a, b int) bool {
			return rank(run[a].name) < rank(run[b].name)
		})
		for _, attr := range run {
			out = append(out, attr.lines...)
		}
		out = append(out, pending...)
	}
	return strings.Join(out, "\n")
}

func rank(name string) int {
	if r, ok := rampAttributeOrder[name]; ok {
		return r
	}
	return len(rampAttributeOrder)
}

// balanced reports whether a line closes every bracket it opens, ignoring
// brackets inside string literals.
func balanced(line string) bool {
	depth := 0
	inString := false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case inString && c == '\\':
			i++
		case c == '"':
			inString = !inString
		case inString:
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		}
	}
	return depth == 0 && !inString
}
