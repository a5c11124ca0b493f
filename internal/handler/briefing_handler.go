package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexmerricks0/ai-pulse/internal/model"
)

type BriefingStore interface {
	FindLatest() (*model.BriefingRecord, error)
	FindByDate(date string) (*model.BriefingRecord, error)
	FindRange(since string) ([]model.BriefingSummary, error)
}

type PipelineRunner interface {
	Run(ctx context.Context) error
}

type BriefingHandler struct {
	repository    BriefingStore
	pipeline      PipelineRunner
	triggerSecret string
	now           func() time.Time
}

func NewBriefingHandler(repository BriefingStore, pipeline PipelineRunner, triggerSecret string) *BriefingHandler {
	return &BriefingHandler{
		repository:    repository,
		pipeline:      pipeline,
		triggerSecret: triggerSecret,
		now:           time.Now,
	}
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365
)

func (h *BriefingHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *BriefingHandler) GetToday(c *gin.Context) {
	record, err := h.repository.FindLatest()
	if err != nil {
		slog.Error("error fetching latest briefing", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No briefing available yet"})
		return
	}

	c.JSON(http.StatusOK, toBriefingResponse(record))
}

func (h *BriefingHandler) GetByDate(c *gin.Context) {
	date := c.Param("date")
	if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	record, err := h.repository.FindByDate(date)
	if err != nil {
		slog.Error("error fetching briefing by date", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No briefing for %s", date)})
		return
	}

	c.JSON(http.StatusOK, toBriefingResponse(record))
}

func (h *BriefingHandler) GetHistory(c *gin.Context) {
	days := getQueryInt("days", defaultHistoryDays, c)
	if days < 1 {
		days = 1
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}

	// The window is inclusive at both ends: a briefing from exactly
	// days calendar days ago still belongs to it.
	since := h.now().UTC().AddDate(0, 0, -(days + 1)).Format("2006-01-02")

	summaries, err := h.repository.FindRange(since)
	if err != nil {
		slog.Error("error fetching briefing history", "since", since, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	data := make([]HistoryEntryResponse, 0, len(summaries))
	for _, s := range summaries {
		data = append(data, toHistoryEntryResponse(s))
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (h *BriefingHandler) TriggerBriefing(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	if h.triggerSecret == "" || auth != "Bearer "+h.triggerSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Manual triggers run the pipeline once, without the retry wrapper.
	if err := h.pipeline.Run(c.Request.Context()); err != nil {
		slog.Error("manual briefing run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Briefing run failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "triggered"})
}

// validDate accepts only real calendar dates in strict YYYY-MM-DD form;
// the regexp rejects loose forms like 2024-1-1 that time.Parse accepts.
func validDate(date string) bool {
	if !dateRe.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsed
}
