package services

import (
	"fmt"
	"path"
	"strings"

	"github.com/icta-labs/lore-cli/internal/core/domain"
)

// groundedInstructions tell the model to answer strictly from the
// provided excerpts.
var groundedInstructions = map[domain.PromptLanguage]string{
	domain.PromptPortuguese: "Você é um assistente da ICTA Technology que responde APENAS com base no CONTEXTO abaixo. " +
		"Se a resposta não estiver no contexto, diga educadamente que não sabe e sugira falar com um humano.",
	domain.PromptEnglish: "You are an ICTA Technology assistant. Answer ONLY using the CONTEXT below. " +
		"If the answer is not in the context, say you don't know and suggest contacting a human.",
}

// fallbackPreambles give the model static organizational context when
// no usable excerpts exist. Nothing retrieved appears here.
var fallbackPreambles = map[domain.PromptLanguage]string{
	domain.PromptPortuguese: "Você é um assistente da ICTA Technology, uma empresa de tecnologia educacional. " +
		"Responda a pergunta de forma breve e educada. Se não tiver certeza, sugira falar com um atendente humano.",
	domain.PromptEnglish: "You are an assistant for ICTA Technology, an educational technology company. " +
		"Answer the question briefly and politely. If unsure, suggest contacting a human agent.",
}

// apologies are the deterministic replacement answers used when
// generation fails or returns nothing.
var apologies = map[domain.PromptLanguage]string{
	domain.PromptPortuguese: "Desculpe, não consegui responder agora. Por favor, entre em contato com um atendente humano.",
	domain.PromptEnglish:    "Sorry, I could not answer right now. Please contact a human agent.",
}

// groundedPrompt assembles the instruction header, each retrieved
// excerpt labeled with rank and score, and the question.
func groundedPrompt(lang domain.PromptLanguage, results []domain.RetrievalResult, question string) string {
	var b strings.Builder
	b.WriteString("[INSTRUÇÕES]\n")
	b.WriteString(groundedInstructions[lang])
	b.WriteString("\n\n[CONTEXTO]\n")
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[TRECHO %d | score=%.3f | fonte=%s]\n%s",
			i+1, r.Score, path.Base(r.Chunk.SourceID), r.Chunk.Text)
	}
	fmt.Fprintf(&b, "\n\n[PERGUNTA]\n%s\n\n[RESPOSTA]", question)
	return b.String()
}

// fallbackPrompt assembles the static preamble and the question, with
// no retrieved excerpts.
func fallbackPrompt(lang domain.PromptLanguage, question string) string {
	var b strings.Builder
	b.WriteString("[INSTRUÇÕES]\n")
	b.WriteString(fallbackPreambles[lang])
	fmt.Fprintf(&b, "\n\n[PERGUNTA]\n%s\n\n[RESPOSTA]", question)
	return b.String()
}

// apology returns the static replacement answer for the language.
func apology(lang domain.PromptLanguage) string {
	return apologies[lang]
}
