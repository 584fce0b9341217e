package chatbot

import (
	"fmt"
	"strings"
)

const (
	// RAGSystemPrompt is sent with document-grounded questions.
	RAGSystemPrompt = "Eres un asistente útil y preciso."
	// DirectSystemPrompt is sent when no document context is used.
	DirectSystemPrompt = "Eres un asistente amable y útil."
)

const ragTemplate = `
Eres un asistente experto. Responde usando ÚNICAMENTE el siguiente contexto
proveniente del documento, sin inventar nada.

Si la respuesta no está en el contexto, dilo claramente.

--- CONTEXTO ---
%s
----------------

Pregunta del usuario:
%s
`

// BuildRAGPrompt joins the retrieved chunks with blank lines and wraps them
// with the question.
func BuildRAGPrompt(chunks []string, question string) string {
	return fmt.Sprintf(ragTemplate, strings.Join(chunks, "\n\n"), question)
}
