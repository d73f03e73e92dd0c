package aci

import (
	"regexp"
	"strings"

	"github.com/hydro-project/katara/internal/ir"
)

var defineFunRe = regexp.MustCompile(`^\(define-fun\s+(\S+)\s+\(.*?\)\s+\S+\s+(.*)\)$`)

// parseModel scans a solver's (define-fun ...) model lines looking up
// the value bound to each of watch's variables, mirroring aci.py's
// lookup_var. Variables the model doesn't mention (the solver is free to
// omit don't-care assignments) are left out of the result.
func parseModel(lines []string, watch []ir.Expr) map[string]string {
	byName := map[string]string{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		m := defineFunRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		byName[m[1]] = strings.TrimSuffix(strings.TrimSpace(m[2]), ")")
	}

	out := map[string]string{}
	for _, v := range watch {
		if val, ok := byName[v.Name()]; ok {
			out[v.Name()] = val
		}
	}
	return out
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimRight(l, "\r")
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
