package appconfig

import "strings"

// RejectRuleList holds expr programs separated by semicolons rather than the
// envconfig comma default, as rule expressions regularly contain commas.
type RejectRuleList []string

func (l *RejectRuleList) Decode(value string) error {
	*l = RejectRuleList{}
	for _, rule := range strings.Split(value, ";") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		*l = append(*l, rule)
	}
	return nil
}
