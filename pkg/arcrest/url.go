package arcrest

import (
	"fmt"
	"net/url"
	"strings"
)

// Join builds an endpoint URL from a base and child path segments. The base
// is used verbatim since it may carry a scheme and query-like structure;
// every child segment is percent-encoded before joining with "/", because
// child names are user- or server-supplied and may contain spaces or other
// reserved characters. A "/" inside a segment is kept as a separator, so
// server-reported relative paths like "results/Output_Features" pass through
// intact.
func Join(base string, segments ...any) string {
	parts := []string{strings.TrimSpace(base)}
	for _, seg := range segments {
		parts = append(parts, escapeSegment(strings.TrimSpace(fmt.Sprint(seg))))
	}
	return strings.Join(parts, "/")
}

func escapeSegment(seg string) string {
	sub := strings.Split(seg, "/")
	for i, s := range sub {
		sub[i] = url.PathEscape(s)
	}
	return strings.Join(sub, "/")
}
