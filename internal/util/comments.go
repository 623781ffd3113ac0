package util

import "strings"

// CleanCommentText removes C++ comment markers from one raw comment and
// returns its lines, trimmed. Leading '*' gutters of block comments are
// dropped. Blank lines are kept as empty strings to mark paragraphs.
func CleanCommentText(text string) []string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "//") {
		for _, marker := range []string{"///<", "//!<", "///", "//!", "//"} {
			if strings.HasPrefix(text, marker) {
				text = text[len(marker):]
				break
			}
		}
		return []string{strings.TrimSpace(text)}
	}

	for _, marker := range []string{"/**<", "/*!<", "/**", "/*!", "/*"} {
		if strings.HasPrefix(text, marker) {
			text = text[len(marker):]
			break
		}
	}
	text = strings.TrimSuffix(text, "*/")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "*")
		lines = append(lines, strings.TrimSpace(line))
	}

	// Drop the empty lines left by "/**" and " */" on their own lines.
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// BriefComment returns the brief text of a documentation comment made of one
// or more consecutive raw comments: the paragraph introduced by \brief or
// @brief, or else the first paragraph. A paragraph ends at a blank line or
// at the next block command such as @param.
func BriefComment(raw ...string) string {
	var lines []string
	for _, r := range raw {
		lines = append(lines, CleanCommentText(r)...)
	}

	start := 0
	for i, line := range lines {
		if isBriefCommand(line) {
			start = i
			break
		}
	}

	var brief []string
	for _, line := range lines[start:] {
		if rest, ok := cutBriefCommand(line); ok {
			line = rest
		} else if len(brief) > 0 && (line == "" || isBlockCommand(line)) {
			break
		}
		if line == "" {
			continue
		}
		brief = append(brief, line)
	}
	return strings.Join(brief, " ")
}

func isBriefCommand(line string) bool {
	_, ok := cutBriefCommand(line)
	return ok
}

func cutBriefCommand(line string) (string, bool) {
	for _, cmd := range []string{`\brief`, `@brief`, `\short`, `@short`} {
		if rest, ok := strings.CutPrefix(line, cmd); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func isBlockCommand(line string) bool {
	return len(line) > 1 && (line[0] == '@' || line[0] == '\\')
}
