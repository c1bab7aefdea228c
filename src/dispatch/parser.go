package dispatch

import (
	"regexp"
	"strconv"
	"strings"
)

var answerLine = regexp.MustCompile(`^(\d+)[.)\-:]\s*(.*)$`)

// ParseBatched decodes a batched completion into a question -> answer map,
// aligned by the caller-supplied question order: a line starting "2." answers
// questions[1]. Answers may continue across unprefixed lines until the next
// numbered line. Indices outside [1, len(questions)] are dropped together
// with their continuation lines, and a repeated index overwrites the earlier
// answer. Missing or empty answers are left out; the dispatcher backfills
// them.
func ParseBatched(raw string, questions []string) map[string]string {
	answers := make(map[string]string, len(questions))

	idx := 0 // 1-based question index being accumulated, 0 means none
	var buf []string

	flush := func() {
		if idx < 1 || idx > len(questions) {
			return
		}
		if answer := strings.TrimSpace(strings.Join(buf, " ")); answer != "" {
			answers[questions[idx-1]] = answer
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := answerLine.FindStringSubmatch(trimmed); m != nil {
			flush()
			n, err := strconv.Atoi(m[1])
			if err != nil {
				// Unparseable index, e.g. more digits than an int holds.
				// Treat as out of range so its continuation lines are
				// swallowed rather than glued onto a real answer.
				n = -1
			}
			idx = n
			buf = buf[:0]
			if m[2] != "" {
				buf = append(buf, m[2])
			}
			continue
		}

		if trimmed == "" || idx == 0 {
			continue
		}
		buf = append(buf, trimmed)
	}
	flush()

	return answers
}
