package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/UniversMood/planning-auto/models"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"bare json",
			`{"suggestions":[]}`,
			`{"suggestions":[]}`,
		},
		{
			"json fenced block",
			"Voici le plan:\n```json\n{\"suggestions\":[]}\n```\nBonne journée!",
			`{"suggestions":[]}`,
		},
		{
			"anonymous fenced block",
			"```\n{\"suggestions\":[]}\n```",
			`{"suggestions":[]}`,
		},
		{
			"surrounding prose",
			`Bien sûr! {"suggestions":[]} N'hésitez pas.`,
			`{"suggestions":[]}`,
		},
		{
			"no json at all",
			"Je ne peux pas répondre.",
			"",
		},
		{
			"malformed json",
			`{"suggestions":[`,
			"",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.in); got != tc.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestConstructSuggestionPrompt(t *testing.T) {
	student := models.User{
		Name: "Lucas Bernard",
		Progress: &models.Progress{
			DrivingHours: 8,
			TargetHours:  20,
			CodeScore:    28,
		},
	}
	weekStart := time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)
	busy := []models.Lesson{
		{
			Start: time.Date(2025, time.September, 9, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2025, time.September, 9, 11, 30, 0, 0, time.UTC),
		},
	}

	prompt := constructSuggestionPrompt(student, weekStart, busy)

	for _, fragment := range []string{
		"Lucas Bernard",
		"2025-09-08",
		"8 heures de conduite sur 20",
		"score de code 28/40",
		"séance de code", // балл по коду ниже порога, модель должна запланировать теорию
		"2025-09-09 de 10:00 à 11:30",
		`"suggestions"`,
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt is missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestGenerateTemporaryPassword(t *testing.T) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		password, err := generateTemporaryPassword()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(password) != 12 {
			t.Fatalf("password length = %d, want 12", len(password))
		}
		for _, r := range password {
			if !strings.ContainsRune(charset, r) {
				t.Fatalf("password contains unexpected character %q", r)
			}
		}
		seen[password] = true
	}

	// Совпадения среди 20 паролей практически исключены.
	if len(seen) < 20 {
		t.Errorf("generated %d distinct passwords out of 20", len(seen))
	}
}
