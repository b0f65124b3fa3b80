package app

import (
	"fmt"
	"strings"

	"phonebook/cmd/phonebook/ui"
	"phonebook/internal/phonebook"
)

// RenderPersons renders the person list. It is a pure function of its
// arguments: the name always, a phone line only when the phone is present,
// then the address.
func RenderPersons(styles ui.Styles, persons []phonebook.Person, width int) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Persons"))

	cardWidth := width - ui.ContentIndent
	for _, p := range persons {
		var card strings.Builder
		card.WriteString(styles.CardName.Render(p.Name))
		if p.HasPhone() {
			card.WriteString("\n")
			card.WriteString(styles.CardField.Render("Phone: " + *p.Phone))
		}
		card.WriteString("\n")
		card.WriteString(styles.CardField.Render(fmt.Sprintf("Address: %s, %s", p.Address.Street, p.Address.City)))

		sb.WriteString("\n\n")
		if cardWidth > 0 {
			sb.WriteString(styles.Card.Width(cardWidth).Render(card.String()))
		} else {
			sb.WriteString(styles.Card.Render(card.String()))
		}
	}
	return sb.String()
}

// personsKey hashes everything RenderPersons reads.
func personsKey(styles ui.Styles, persons []phonebook.Person, width int) uint64 {
	inputs := make([]interface{}, 0, 2+len(persons)*5)
	inputs = append(inputs, width, styles.Theme.IsDark)
	for _, p := range persons {
		inputs = append(inputs, p.ID, p.Name, p.PhoneOrEmpty(), p.Address.Street, p.Address.City)
	}
	return ui.ComputeKey(inputs...)
}
