package schema

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// sanitizeHelp strips everything but a small inline vocabulary from help
// texts that carry markup. Help strings without tags are returned as-is so
// plain prose keeps its punctuation unescaped.
func sanitizeHelp(raw string) string {
	if !strings.Contains(raw, "<") {
		return raw
	}
	return strings.TrimSpace(helpSanitizer().Sanitize(raw))
}

func helpSanitizer() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("a", "b", "br", "code", "em", "i", "strong")
		policy.AllowAttrs("href", "rel", "target").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		helpPolicy = policy
	})
	return helpPolicy
}
