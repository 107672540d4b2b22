package user

import "strings"

// EmailAllowList is a fixed set of addresses granted access, compared case-insensitively.
type EmailAllowList map[string]struct{}

func NewEmailAllowList(emails ...string) EmailAllowList {
	al := make(EmailAllowList, len(emails))
	for _, e := range emails {
		e = normalizeEmail(e)
		if e == "" {
			continue
		}
		al[e] = struct{}{}
	}

	return al
}

func (al EmailAllowList) Contains(email string) bool {
	_, ok := al[normalizeEmail(email)]
	return ok
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
