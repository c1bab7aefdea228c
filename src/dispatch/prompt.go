package dispatch

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

// batchTemplate asks for every answer in a single completion. One call per
// (text, questions) pair keeps token spend proportional to the corpus rather
// than the question count.
var batchTemplate = prompts.NewPromptTemplate(`You are an investigator reviewing evidence from an active case.

Transcript:
{{.transcript}}

Answer each question below using ONLY information from the transcript.
Reply with one line per question, numbered in the same order, in the form
"<number>. <answer>". If the transcript does not contain the answer, write
"Information not found in transcript."

Questions:
{{.questions}}
Answers:`, []string{"transcript", "questions"})

// BuildBatchPrompt renders the batched prompt: the full text plus the
// enumerated question list in caller order.
func BuildBatchPrompt(text string, questions []string) (string, error) {
	var list strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&list, "%d. %s\n", i+1, q)
	}
	return batchTemplate.Format(map[string]any{
		"transcript": text,
		"questions":  list.String(),
	})
}
