package services

import "github.com/icta-labs/lore-cli/internal/core/domain"

// DefaultIntents tags common support questions with a topic. Tags are
// informational only; routing never looks at them.
func DefaultIntents() domain.IntentTable {
	return domain.IntentTable{
		{
			Topic:      "enrolment",
			Keywords:   []string{"matrícula", "matricula", "inscrição", "inscricao", "enrol", "enroll", "sign up"},
			Suggestion: "Para detalhes de matrícula, consulte a secretaria ou o portal do aluno.",
		},
		{
			Topic:      "pricing",
			Keywords:   []string{"preço", "preco", "valor", "mensalidade", "price", "cost", "payment"},
			Suggestion: "Valores e formas de pagamento podem variar; confirme com o atendimento.",
		},
		{
			Topic:      "schedule",
			Keywords:   []string{"horário", "horario", "agenda", "calendário", "calendario", "schedule", "timetable"},
			Suggestion: "Os horários atualizados ficam no calendário acadêmico.",
		},
		{
			Topic:      "support",
			Keywords:   []string{"suporte", "ajuda", "problema", "erro", "support", "help", "issue"},
			Suggestion: "Se o problema persistir, fale com um atendente humano.",
		},
	}
}
