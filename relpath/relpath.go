// Package relpath computes links between notes.
package relpath

import (
	"path"
	"strings"
)

// Compute returns the slash-separated path that leads from the directory of
// fromFile to toFile. A target in the same directory yields its bare name.
func Compute(fromFile, toFile string) string {
	fromDir := split(path.Dir(path.Clean(fromFile)))
	to := split(path.Clean(toFile))
	if len(to) == 0 {
		return ""
	}
	name := to[len(to)-1]
	toDir := to[:len(to)-1]

	common := 0
	for common < len(fromDir) && common < len(toDir) && fromDir[common] == toDir[common] {
		common++
	}
	parts := make([]string, 0, len(fromDir)-common+len(toDir)-common+1)
	for range fromDir[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, toDir[common:]...)
	parts = append(parts, name)
	return strings.Join(parts, "/")
}

func split(p string) []string {
	var out []string
	for s := range strings.SplitSeq(p, "/") {
		if s != "" && s != "." {
			out = append(out, s)
		}
	}
	return out
}
