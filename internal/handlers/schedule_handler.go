// planning-auto/internal/handlers/schedule_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/UniversMood/planning-auto/config"
	"github.com/UniversMood/planning-auto/internal/scheduling"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
)

// extractJSON находит первую полную JSON-структуру в ответе модели.
// Модель любит заворачивать JSON в markdown-блоки и сопровождать его текстом,
// поэтому сначала вырезаем содержимое ```json ... ``` или ``` ... ```.
func extractJSON(raw string) string {
	if jsonBlockStart := strings.Index(raw, "```json"); jsonBlockStart != -1 {
		raw = raw[jsonBlockStart+7:]
		if jsonBlockEnd := strings.Index(raw, "```"); jsonBlockEnd != -1 {
			raw = raw[:jsonBlockEnd]
		}
	} else if blockStart := strings.Index(raw, "```"); blockStart != -1 {
		raw = raw[blockStart+3:]
		if blockEnd := strings.Index(raw, "```"); blockEnd != -1 {
			raw = raw[:blockEnd]
		}
	}

	start := strings.Index(raw, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(raw, "}")
	if end == -1 || end < start {
		return ""
	}

	potentialJSON := raw[start : end+1]
	if json.Valid([]byte(potentialJSON)) {
		return potentialJSON
	}

	slog.Warn("AI response contained a malformed or incomplete JSON object.", "snippet", potentialJSON)
	return ""
}

// WeekScheduleHandler возвращает недельную сетку: фиксированные получасовые
// слоты с 08:00 до 19:30 и занятия, разложенные по слотам. Занятие попадает в
// слот только при точном совпадении начала с меткой слота.
func WeekScheduleHandler(c *gin.Context) {
	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date parameter"})
			return
		}
		date = parsed
	}

	weekStart := scheduling.WeekStart(date)
	weekEnd := weekStart.AddDate(0, 0, 7)

	query := config.DB.
		Preload("Student").
		Preload("Instructor").
		Preload("Vehicle").
		Where("status <> ?", models.LessonCancelled).
		Where("start_time >= ? AND start_time < ?", weekStart, weekEnd).
		Order("start_time asc")

	if id := c.Query("instructorId"); id != "" {
		query = query.Where("instructor_id = ?", id)
	}
	if id := c.Query("studentId"); id != "" {
		query = query.Where("student_id = ?", id)
	}
	if id := c.Query("vehicleId"); id != "" {
		query = query.Where("vehicle_id = ?", id)
	}

	var lessons []models.Lesson
	if err := query.Find(&lessons).Error; err != nil {
		slog.Error("Failed to fetch week lessons", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch lessons"})
		return
	}

	grid := make(map[string][]LessonResponse)
	for _, lesson := range lessons {
		key := scheduling.LessonSlotKey(lesson.Start)
		grid[key] = append(grid[key], toLessonResponse(lesson))
	}

	days := make([]string, 0, 7)
	for _, day := range scheduling.WeekDays(weekStart) {
		days = append(days, day.Format("2006-01-02"))
	}

	c.JSON(http.StatusOK, gin.H{
		"weekStart": weekStart.Format("2006-01-02"),
		"days":      days,
		"slots":     scheduling.TimeSlots(),
		"lessons":   grid,
	})
}

// suggestedLesson - один элемент плана, предложенного моделью.
type suggestedLesson struct {
	Day   string `json:"day"`   // "2006-01-02"
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "10:30"
	Type  string `json:"type"`  // driving | code
}

// SuggestScheduleHandler просит Gemini составить черновик плана занятий для
// ученика на неделю. Результат - только предложение: каждое занятие из него
// бронируется обычным путем и проходит обычную проверку конфликтов.
func SuggestScheduleHandler(c *gin.Context) {
	if config.GeminiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI suggestions are not available"})
		return
	}

	studentID := c.Query("studentId")
	if studentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing studentId parameter"})
		return
	}

	var student models.User
	if err := config.DB.Where("role = ?", models.RoleStudent).First(&student, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	weekStart := scheduling.WeekStart(time.Now().AddDate(0, 0, 7)) // следующая неделя
	weekEnd := weekStart.AddDate(0, 0, 7)

	var busy []models.Lesson
	err := config.DB.
		Where("status <> ?", models.LessonCancelled).
		Where("start_time >= ? AND start_time < ?", weekStart, weekEnd).
		Where("student_id = ?", student.ID).
		Find(&busy).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lessons"})
		return
	}

	prompt := constructSuggestionPrompt(student, weekStart, busy)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	iter := config.GeminiClient.GenerateContentStream(ctx, genai.Text(prompt))
	var fullResponse strings.Builder

	for {
		resp, err := iter.Next()
		if err != nil {
			if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "no more items in iterator") {
				break
			}
			slog.Error("Error during AI stream", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stream suggestions from AI"})
			return
		}
		if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			for _, part := range resp.Candidates[0].Content.Parts {
				if txt, ok := part.(genai.Text); ok {
					fullResponse.WriteString(string(txt))
				}
			}
		}
	}

	cleanJSON := extractJSON(fullResponse.String())
	if cleanJSON == "" {
		slog.Error("AI returned invalid or incomplete data (no valid JSON found)", "response", fullResponse.String())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "L'IA a renvoyé des données invalides. Réessayez."})
		return
	}

	var parsed struct {
		Suggestions []suggestedLesson `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(cleanJSON), &parsed); err != nil {
		slog.Error("Failed to parse extracted JSON from AI", "json", cleanJSON, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse the suggestions from AI"})
		return
	}

	// Отбрасываем предложения вне сетки или с неизвестным типом занятия.
	validSlots := make(map[string]bool)
	for _, slot := range scheduling.TimeSlots() {
		validSlots[slot] = true
	}
	suggestions := make([]suggestedLesson, 0, len(parsed.Suggestions))
	for _, s := range parsed.Suggestions {
		if !validSlots[s.Start] {
			slog.Warn("AI suggested a start time outside the schedule grid", "start", s.Start)
			continue
		}
		if s.Type != models.LessonDriving && s.Type != models.LessonCode {
			slog.Warn("AI suggested an unknown lesson type", "type", s.Type)
			continue
		}
		suggestions = append(suggestions, s)
	}

	if len(suggestions) == 0 {
		slog.Warn("The final suggestion list is empty after filtering.", "ai_response", cleanJSON)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "L'IA n'a pas pu proposer de plan. Réessayez."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weekStart":   weekStart.Format("2006-01-02"),
		"suggestions": suggestions,
	})
}

// constructSuggestionPrompt создает строгое задание для модели: только JSON,
// только свободные получасовые слоты, с учетом прогресса ученика.
func constructSuggestionPrompt(student models.User, weekStart time.Time, busy []models.Lesson) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Tu es l'assistant de planning d'une auto-école. ")
	fmt.Fprintf(&b, "Propose un plan de leçons pour l'élève %s pour la semaine du %s. ",
		student.Name, weekStart.Format("2006-01-02"))

	if student.Progress != nil {
		fmt.Fprintf(&b, "Progression: %d heures de conduite sur %d, score de code %d/40. ",
			student.Progress.DrivingHours, student.Progress.TargetHours, student.Progress.CodeScore)
		if !student.Progress.CodeReady() {
			b.WriteString("Le score de code est insuffisant, prévois au moins une séance de code. ")
		}
	}

	b.WriteString("Les créneaux durent 30 minutes et commencent entre 08:00 et 19:30. ")
	if len(busy) > 0 {
		b.WriteString("Créneaux déjà occupés: ")
		for _, lesson := range busy {
			fmt.Fprintf(&b, "%s de %s à %s; ",
				lesson.Start.Format("2006-01-02"), lesson.Start.Format("15:04"), lesson.End.Format("15:04"))
		}
	}

	b.WriteString(`Réponds UNIQUEMENT avec un objet JSON de la forme ` +
		`{"suggestions":[{"day":"2006-01-02","start":"09:00","end":"10:30","type":"driving"}]} ` +
		`sans aucun texte autour. Les types autorisés sont "driving" et "code". ` +
		`Propose au maximum 4 leçons, sans chevauchement avec les créneaux occupés.`)

	return b.String()
}
