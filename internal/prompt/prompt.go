// Package prompt renders the instruction sent to the generation backend.
package prompt

import "strings"

const (
	FileContentHeader = "FILE CONTENT:"
	QuestionHeader    = "USER QUESTION:"
	AnswerHeader      = "YOUR ANSWER:"
	Delimiter         = "---"
)

const instructions = "You are a smart chatbot assistant. You answer the user's questions based on the FILE CONTENT below.\n" +
	"If the question is not related to the file content, say that you can only answer questions about the provided file."

// Build embeds context and question verbatim into the fixed template. It has
// no state and is safe for concurrent use.
func Build(context string, question string) string {
	var b strings.Builder
	b.Grow(len(instructions) + len(context) + len(question) + 96)

	b.WriteString(instructions)
	b.WriteString("\n\n")
	b.WriteString(FileContentHeader)
	b.WriteString("\n")
	b.WriteString(Delimiter)
	b.WriteString("\n")
	b.WriteString(context)
	b.WriteString("\n")
	b.WriteString(Delimiter)
	b.WriteString("\n\n")
	b.WriteString(QuestionHeader)
	b.WriteString(" ")
	b.WriteString(question)
	b.WriteString("\n\n")
	b.WriteString(AnswerHeader)
	b.WriteString("\n")
	return b.String()
}
