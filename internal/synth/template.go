package synth

import (
	"fmt"
	"strings"

	"ragpipe/internal/domain"
)

// DefaultTemplate receives the query and the retrieved context, in that order.
const DefaultTemplate = `Based on your query "%s", here's what I found: %s. ` +
	`This is a simulated response generated from the retrieved context; ` +
	`a full RAG system would pass this context to a language model to produce the final answer.`

// TemplateSynthesizer renders a fixed template from the query and the retrieved chunk texts.
// It never calls a model.
type TemplateSynthesizer struct {
	template string
}

// NewTemplateSynthesizer creates a synthesizer. The template must contain two %s verbs,
// query first; an empty template selects DefaultTemplate.
func NewTemplateSynthesizer(template string) *TemplateSynthesizer {
	if template == "" {
		template = DefaultTemplate
	}
	return &TemplateSynthesizer{template: template}
}

// Synthesize joins result texts with a single space, in result order, and renders the template.
func (s *TemplateSynthesizer) Synthesize(query string, results []domain.RetrievalResult) string {
	return fmt.Sprintf(s.template, query, Context(results))
}

// Context concatenates the texts of results separated by a single space.
func Context(results []domain.RetrievalResult) string {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	return strings.Join(texts, " ")
}
