package discord

import "github.com/bwmarrin/discordgo"

// ModalValues returns the submitted text inputs keyed by their CustomID.
func ModalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if input, ok := rc.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}

// TextInputRow wraps a single text input in its own action row.
func TextInputRow(customID, label, placeholder string, required bool) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    customID,
			Label:       label,
			Style:       discordgo.TextInputShort,
			Required:    required,
			Placeholder: placeholder,
		},
	}}
}
