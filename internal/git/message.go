// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"strings"
)

const maxSubjectLength = 72

// GenerateMessage creates a conventional commit message for a prune run:
// a chore subject with the route count, a body listing each removed route
// and its file, and the Pruned-By trailer.
func GenerateMessage(removals []Removal) string {
	msg := buildSubject(len(removals))
	if body := buildBody(removals); body != "" {
		msg += "\n\n" + body
	}
	msg += "\n\n" + pruneTrailer
	return msg
}

func buildSubject(n int) string {
	noun := "routes"
	if n == 1 {
		noun = "route"
	}
	subject := fmt.Sprintf("chore: prune %d legacy %s", n, noun)
	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength-3] + "..."
	}
	return subject
}

func buildBody(removals []Removal) string {
	if len(removals) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("Removed routes:\n")
	for _, rm := range removals {
		if rm.Route == "" {
			fmt.Fprintf(&buf, "- %s\n", rm.Path)
			continue
		}
		fmt.Fprintf(&buf, "- %s (%s)\n", rm.Route, rm.Path)
	}
	return strings.TrimRight(buf.String(), "\n")
}
