package classify

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/arjunkps/docudesk/internal/core/domain"
)

const (
	departmentKeywordThreshold = 2
	maxKeyPoints               = 5
	minKeyPointLength          = 20

	criticalityReason = "Document contains critical keywords requiring immediate attention"
)

var keyPointTriggers = []string{"important", "require", "must", "critical", "ensure"}

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// Classifier scores extracted text against the department taxonomy.
// All methods are pure.
type Classifier struct {
	taxonomy Taxonomy
}

func NewClassifier(taxonomy Taxonomy) *Classifier {
	return &Classifier{taxonomy: taxonomy}
}

func (c *Classifier) Analyze(text string, meta domain.SubmissionMetadata) domain.AnalysisResult {
	lower := strings.ToLower(text)

	departments := c.detectDepartments(lower)
	if len(departments) == 0 && meta.Department != "" {
		departments = []string{meta.Department}
	}
	if departments == nil {
		departments = []string{}
	}

	critical := c.assessCriticality(lower)
	reason := ""
	if critical {
		reason = criticalityReason
	}

	return domain.AnalysisResult{
		Departments:       departments,
		IsCritical:        critical,
		CriticalityReason: reason,
		Summary:           c.summarize(text, meta),
		KeyPoints:         extractKeyPoints(text),
		Entities:          c.extractEntities(text),
	}
}

// detectDepartments selects a department only when at least two of its
// keywords occur as substrings of the lower-cased text.
func (c *Classifier) detectDepartments(lower string) []string {
	var detected []string
	for _, rule := range c.taxonomy.Departments {
		matches := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				matches++
			}
		}
		if matches >= departmentKeywordThreshold {
			detected = append(detected, rule.Name)
		}
	}
	return detected
}

func (c *Classifier) assessCriticality(lower string) bool {
	for _, kw := range c.taxonomy.CriticalKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func extractKeyPoints(text string) []string {
	sentences := sentenceSplitRe.Split(text, -1)
	points := []string{}
	for _, s := range sentences {
		// Rune count, not bytes: Malayalam text is three bytes per letter.
		if utf8.RuneCountInString(strings.TrimSpace(s)) <= minKeyPointLength {
			continue
		}
		lower := strings.ToLower(s)
		for _, trigger := range keyPointTriggers {
			if strings.Contains(lower, trigger) {
				points = append(points, strings.TrimSpace(s))
				break
			}
		}
		if len(points) == maxKeyPoints {
			break
		}
	}
	return points
}

// summarize builds the fixed-template summary. Word count splits on
// whitespace runs, so empty text counts as one (empty) word and zero lines.
func (c *Classifier) summarize(text string, meta domain.SubmissionMetadata) string {
	words := len(whitespaceRe.Split(text, -1))

	lines := 0
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines++
		}
	}

	title := meta.Title
	if title == "" {
		title = "Document"
	}
	docType := meta.Type
	if docType == "" {
		docType = "Document"
	}
	department := meta.Department
	if department == "" {
		department = "General"
	}

	return fmt.Sprintf(
		"%s - %s for %s department. Contains %d words across %d lines. Document requires review and approval as per departmental protocols.",
		title, docType, department, words, lines,
	)
}
