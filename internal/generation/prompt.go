package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

const (
	// MaxExcerptLength caps the document excerpt sent to the model, in runes.
	MaxExcerptLength = 6000

	// QuestionCount is the number of questions requested per generation.
	QuestionCount = 20

	// IncorrectAnswerCount is the number of distractors requested per question.
	IncorrectAnswerCount = 3
)

// Sampling holds the fixed sampling parameters sent with every request.
type Sampling struct {
	Temperature     float32
	TopK            int
	TopP            float32
	MaxOutputTokens int
}

// DefaultSampling is static configuration; it is not tunable at runtime.
var DefaultSampling = Sampling{
	Temperature:     0.3,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 2048,
}

//go:embed prompt.tmpl
var promptSource string

var promptTemplate = template.Must(template.New("trivia").Parse(promptSource))

// promptData represents the data passed to the prompt template
type promptData struct {
	QuestionCount        int
	IncorrectAnswerCount int
	Excerpt              string
}

// NormalizeExcerpt turns raw extracted document text into the bounded excerpt
// embedded in the prompt: line breaks become spaces, runs of spaces collapse
// to one, surrounding whitespace is trimmed and the result is capped at
// MaxExcerptLength runes.
func NormalizeExcerpt(text string) string {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}

	excerpt := strings.TrimSpace(b.String())

	runes := []rune(excerpt)
	if len(runes) > MaxExcerptLength {
		excerpt = string(runes[:MaxExcerptLength])
	}
	return excerpt
}

// BuildPrompt embeds an already normalized excerpt into the fixed
// instruction template.
func BuildPrompt(excerpt string) (string, error) {
	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, promptData{
		QuestionCount:        QuestionCount,
		IncorrectAnswerCount: IncorrectAnswerCount,
		Excerpt:              excerpt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
