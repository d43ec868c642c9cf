package director

import (
	"fmt"
	"strings"

	"filmcraft/internal/store"
)

const directorPreamble = `You are the director's assistant for a film production. The director talks to
you by voice or text. Turn their instructions into tool calls against the
project and answer briefly, like a first AD on set.

Rules:
- Refer to scenes by the number shown below or by their title.
- Use only the values the tool schemas allow for enumerated fields.
- You may call several tools in one turn; they run in the order given.
- When a tool fails, say so plainly and suggest a fix instead of retrying blindly.
- For questions about the project, call get_project_summary rather than guessing.
- Keep the final reply to a few sentences.`

// systemPrompt renders the preamble followed by the project and its current
// running order.
func systemPrompt(project *store.Project, scenes []store.Scene) string {
	var b strings.Builder
	b.WriteString(directorPreamble)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Project: %s\n", project.Title)
	if project.Genre != "" {
		fmt.Fprintf(&b, "Genre: %s\n", project.Genre)
	}
	if project.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", project.Description)
	}

	ordered := append([]store.Scene(nil), scenes...)
	sortScenes(ordered)
	if len(ordered) == 0 {
		b.WriteString("\nThe project has no scenes yet.\n")
		return b.String()
	}
	b.WriteString("\nScenes:\n")
	for _, s := range ordered {
		fmt.Fprintf(&b, "%d. %s", s.OrderIndex+1, s.Title)
		var attrs []string
		for _, a := range []string{s.TimeOfDay, s.Weather, s.Mood} {
			if a != "" {
				attrs = append(attrs, a)
			}
		}
		if s.Duration > 0 {
			attrs = append(attrs, fmt.Sprintf("%ds", s.Duration))
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(attrs, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

const sceneExpansionPrompt = `You are a screenwriter and production designer. Expand the director's vision
into one complete scene: a title, a vivid description, every production field,
a short exchange of dialogue and the sound effects the scene needs. Keep the
scene consistent with the rest of the film.`

func sceneExpansionMessage(vision string, project *store.Project, scenes []store.Scene) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Film: %s", project.Title)
	if project.Genre != "" {
		fmt.Fprintf(&b, " (%s)", project.Genre)
	}
	b.WriteString("\n")
	if project.Description != "" {
		fmt.Fprintf(&b, "Synopsis: %s\n", project.Description)
	}
	if len(scenes) > 0 {
		ordered := append([]store.Scene(nil), scenes...)
		sortScenes(ordered)
		b.WriteString("Existing scenes:\n")
		for i, s := range ordered {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, s.Title, s.Description)
		}
	}
	fmt.Fprintf(&b, "\nVision: %s\n", vision)
	return b.String()
}

const filmExpansionPrompt = `You are a screenwriter and production designer. Write a complete short film
from the concept: a title, a one-sentence logline and every scene with its
production fields, dialogue and sound effects. Scenes must follow a clear
beginning, middle and end.`

func filmExpansionMessage(concept string, targetSeconds, sceneCount int, withImages bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Concept: %s\n\n", concept)
	fmt.Fprintf(&b, "Write exactly %d scenes. Scene durations are in seconds and must add up to about %d seconds in total.\n", sceneCount, targetSeconds)
	if withImages {
		b.WriteString("The attached images are visual references; match their palette, lighting and setting.\n")
	}
	return b.String()
}

// ClearSentinel is what the voice edit model returns when the command asks
// for the text to be erased.
const ClearSentinel = "[[CLEAR_TEXT]]"

const voiceEditPrompt = `You edit text by voice command. You receive the current text and a spoken
command. The command may chain several edits joined by "and", "then", "also",
commas or periods ("change X to Y, then remove the last sentence"). Apply every
edit, one after another in the order spoken, against the same text.

Return only the edited text: no quotes, no commentary, no explanation.
If the command asks to clear or delete everything, return exactly ` + ClearSentinel + `.
If the command does not describe an edit, return the current text unchanged.`

func voiceEditMessage(currentText, command string) string {
	return fmt.Sprintf("Current text:\n%s\n\nCommand:\n%s", currentText, command)
}
