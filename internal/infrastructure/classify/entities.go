package classify

import (
	"regexp"
	"strings"

	"github.com/arjunkps/docudesk/internal/core/domain"
)

var (
	emailRe  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	dateRe   = regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`)
	amountRe = regexp.MustCompile(`(?i)(?:Rs\.?|₹)\s*[\d,]+(?:\.\d{2})?`)
	nameRe   = regexp.MustCompile(`(?i:name[:\s]+)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
)

func (c *Classifier) extractEntities(text string) domain.Entities {
	lower := strings.ToLower(text)

	names := []string{}
	for _, line := range strings.Split(text, "\n") {
		m := nameRe.FindStringSubmatch(line)
		if m != nil && m[1] != "" {
			names = append(names, m[1])
		}
	}

	departments := []string{}
	for _, dept := range c.taxonomy.DepartmentNames() {
		if strings.Contains(lower, strings.ToLower(dept)) {
			departments = append(departments, dept)
		}
	}

	return domain.Entities{
		Names:       dedupe(names),
		Departments: departments,
		Dates:       dedupe(dateRe.FindAllString(text, -1)),
		Amounts:     dedupe(amountRe.FindAllString(text, -1)),
		Emails:      dedupe(emailRe.FindAllString(text, -1)),
	}
}

// dedupe keeps the first occurrence of each value, preserving order.
func dedupe(values []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
