package format

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"eventqa/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want int
	}{
		{"empty", "", 10, 0},
		{"short", "hello", 10, 1},
		{"exact", strings.Repeat("a", 10), 10, 1},
		{"one over", strings.Repeat("a", 11), 10, 2},
		{"many", strings.Repeat("abc", 3001), MaxMessageRunes, 3},
		{"multibyte", strings.Repeat("سلام", 2500), MaxMessageRunes, 3},
		{"non-positive max", "hello", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunk(tt.text, tt.max)
			require.Len(t, chunks, tt.want)
			assert.Equal(t, tt.text, strings.Join(chunks, ""))
			for _, c := range chunks {
				assert.True(t, utf8.ValidString(c))
				if tt.max > 0 {
					assert.LessOrEqual(t, utf8.RuneCountInString(c), tt.max)
				}
			}
		})
	}
}

func TestChunk_CeilCount(t *testing.T) {
	for l := 1; l <= 50; l++ {
		for max := 1; max <= 12; max++ {
			text := strings.Repeat("x", l)
			chunks := Chunk(text, max)
			require.Len(t, chunks, (l+max-1)/max, "L=%d T=%d", l, max)
			assert.Equal(t, text, strings.Join(chunks, ""))
		}
	}
}

func TestSchedule(t *testing.T) {
	got := Schedule([]*domain.Presenter{
		domain.NewPresenter("Guest", "", "", ""),
		domain.NewPresenter("Sara", "Rust in Linux", "16:30", "17:00"),
	}, "Pick one.")

	assert.Equal(t, "Event schedule:\n\n"+
		"👤 Guest\n\n"+
		"👤 Sara (16:30 - 17:00)\n📌 Rust in Linux\n\n"+
		"Pick one.", got)
}

func TestQuestions(t *testing.T) {
	qs := []*domain.Question{{
		ID:            3,
		UserName:      "Ali",
		PresenterName: "Sara",
		Text:          "Why?",
		CreatedAt:     time.Date(2025, 5, 1, 12, 30, 0, 0, time.UTC),
	}}

	with := Questions("All questions:", qs, true)
	assert.Contains(t, with, "ID: 3\nFrom: Ali\nTo: Sara\nQuestion: Why?\nTime: 2025-05-01 12:30:00\n")
	assert.True(t, strings.HasPrefix(with, "All questions:\n\n"))

	without := Questions("Questions for Sara:", qs, false)
	assert.NotContains(t, without, "To: Sara")
}

func TestRoster(t *testing.T) {
	got := Roster([]*domain.User{
		domain.NewUser(1, "Ali", "ali@example.com", false, time.Time{}),
		domain.NewUser(2, "Sara", "sara@example.com", true, time.Time{}),
	})
	assert.Contains(t, got, "Name: Ali\nEmail: ali@example.com\nID: 1\n")
	assert.Contains(t, got, "Name: Sara [organizer]\n")
	assert.NotContains(t, got, "Ali [organizer]")
}

func TestCandidates(t *testing.T) {
	got := Candidates("Pick a user:", []*domain.User{domain.NewUser(42, "Ali", "", false, time.Time{})})
	assert.Equal(t, "Pick a user:\n\nAli - ID: 42\n", got)
}
