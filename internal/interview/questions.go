package interview

import (
	"regexp"
	"strings"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
)

// FallbackQuestions pad a short question set, taken from the top.
var FallbackQuestions = []string{
	"Tell me about yourself and your background.",
	"What interests you most about this role?",
	"Describe a challenging project you've worked on.",
	"How do you handle tight deadlines and pressure?",
	"What are your greatest strengths and weaknesses?",
	"Where do you see yourself in 5 years?",
	"Why do you want to work for our company?",
	"Describe a time when you had to learn something new quickly.",
	"How do you prioritize your work when you have multiple deadlines?",
	"What questions do you have for us?",
}

var listMarkerRe = regexp.MustCompile(`^(?:(?:Q(?:uestion)?\s*)?\d+\s*[.):]|[-*•])\s*`)

// ParseQuestions splits generated text into one question per non-empty line,
// dropping list markers the model adds despite being asked not to.
func ParseQuestions(text string) ([]string, error) {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		q := strings.TrimSpace(line)
		q = listMarkerRe.ReplaceAllString(q, "")
		q = strings.TrimSpace(strings.ReplaceAll(q, "**", ""))
		if q == "" {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, &apperr.ParseError{What: "interview questions", Message: "response contained no questions"}
	}
	return questions, nil
}

// Normalize returns exactly n questions.
func Normalize(questions []string, n int) []string {
	out := make([]string, 0, n)
	for _, q := range questions {
		if len(out) == n {
			break
		}
		out = append(out, q)
	}
	for i := 0; len(out) < n; i++ {
		out = append(out, FallbackQuestions[i%len(FallbackQuestions)])
	}
	return out
}
