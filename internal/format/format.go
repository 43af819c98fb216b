// Package format renders schedules, question dumps and user rosters as chat text.
package format

import (
	"fmt"
	"strings"

	"eventqa/internal/domain"
)

// MaxMessageRunes is the largest piece of text sent in one chat message.
const MaxMessageRunes = 4000

const separator = "----------------------------------------"

// Schedule lists presenters with their time slot and title, followed by prompt.
func Schedule(presenters []*domain.Presenter, prompt string) string {
	var b strings.Builder
	b.WriteString("Event schedule:\n\n")
	for _, p := range presenters {
		b.WriteString("👤 ")
		b.WriteString(p.Name)
		if p.StartTime != "" {
			fmt.Fprintf(&b, " (%s - %s)", p.StartTime, p.EndTime)
		}
		if p.Title != "" {
			b.WriteString("\n📌 ")
			b.WriteString(p.Title)
		}
		b.WriteString("\n\n")
	}
	b.WriteString(prompt)
	return b.String()
}

// Questions renders a question dump under heading. The presenter line is omitted
// when every question is known to target the same presenter.
func Questions(heading string, questions []*domain.Question, withPresenter bool) string {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n\n")
	for _, q := range questions {
		fmt.Fprintf(&b, "ID: %d\n", q.ID)
		fmt.Fprintf(&b, "From: %s\n", q.UserName)
		if withPresenter {
			fmt.Fprintf(&b, "To: %s\n", q.PresenterName)
		}
		fmt.Fprintf(&b, "Question: %s\n", q.Text)
		fmt.Fprintf(&b, "Time: %s\n", q.CreatedAt.Format("2006-01-02 15:04:05"))
		b.WriteString(separator)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Roster renders every registered user with an organizer badge.
func Roster(users []*domain.User) string {
	var b strings.Builder
	b.WriteString("Registered users:\n\n")
	for _, u := range users {
		b.WriteString("Name: ")
		b.WriteString(u.Name)
		if u.IsOrganizer {
			b.WriteString(" [organizer]")
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "Email: %s\n", u.Email)
		fmt.Fprintf(&b, "ID: %d\n", u.ID)
		b.WriteString(separator)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Candidates renders a compact "name - ID" list under heading.
func Candidates(heading string, users []*domain.User) string {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n\n")
	for _, u := range users {
		fmt.Fprintf(&b, "%s - ID: %d\n", u.Name, u.ID)
	}
	return b.String()
}

// Chunk splits text into consecutive pieces of at most max runes, cut at fixed
// offsets. Empty text yields no pieces; max <= 0 yields the text unsplit.
func Chunk(text string, max int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return []string{text}
	}
	chunks := make([]string, 0, (len(runes)+max-1)/max)
	for start := 0; start < len(runes); start += max {
		end := start + max
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
