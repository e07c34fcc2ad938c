package usecase

import (
	"strings"

	"gift-suggest-core/internal/domain/entity"
)

const (
	markerUnknownBirthday = "unbekannt"
	markerNoNotes         = "keine"
	markerNoGifts         = "keine"
	markerNoHint          = "kein"
)

// BuildPrompt renders the instruction document sent to the model. It is a pure
// function of its inputs; budget fields on req are intentionally not rendered.
func BuildPrompt(req entity.SuggestionRequest, person entity.PersonContext, occasionName string, history []entity.GiftHistoryItem) string {
	var b strings.Builder

	b.WriteString("Erstelle exakt 3 Geschenkideen für diese Person und diesen Anlass.\n")
	b.WriteString("Die Vorschläge müssen realistisch und speicherbar sein (nur Titel + kurzer Grund).\n")
	b.WriteString("Vermeide Duplikate zu bestehenden Ideen.\n\n")

	b.WriteString("Person:\n")
	b.WriteString("- Name: " + person.Name + "\n")
	b.WriteString("- Geburtstag: " + valueOr(person.Birthday, markerUnknownBirthday) + "\n")
	b.WriteString("- Notizen: " + valueOr(person.Notes, markerNoNotes) + "\n\n")

	b.WriteString("Anlass:\n")
	b.WriteString("- " + occasionName + "\n\n")

	b.WriteString("Bestehende Ideen:\n")
	if len(history) > entity.HistoryLimit {
		history = history[:entity.HistoryLimit]
	}
	if len(history) == 0 {
		b.WriteString("- " + markerNoGifts + "\n")
	}
	for _, g := range history {
		b.WriteString("- " + g.Title + "\n")
	}
	b.WriteString("\n")

	b.WriteString("Hinweis:\n")
	b.WriteString(valueOr(req.Hint, markerNoHint) + "\n\n")

	b.WriteString("Antworte als JSON im Format:\n")
	b.WriteString("{\n")
	b.WriteString(`  "suggestions":[` + "\n")
	b.WriteString(`    {"title":"...", "reason":"...", "category":"...", "priceHint":"..."},` + "\n")
	b.WriteString("    ...\n")
	b.WriteString("  ]\n")
	b.WriteString("}")

	return b.String()
}

// valueOr falls back only for absent values; stored text is rendered verbatim.
func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
