package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/coach"
	"github.com/abhisek/examlens/internal/history"
	"github.com/abhisek/examlens/internal/store"
)

// LibraryItem is one bookmarked question in the revision library.
type LibraryItem struct {
	AttemptID   int64     `json:"attempt_id"`
	QuestionID  int64     `json:"question_id"`
	Text        string    `json:"text"`
	Subject     string    `json:"subject"`
	Pattern     string    `json:"pattern"`
	Year        int       `json:"year,omitempty"`
	Correct     bool      `json:"is_correct"`
	Skipped     bool      `json:"is_skipped"`
	AttemptedAt time.Time `json:"attempted_at"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getDashboard(c *gin.Context) {
	rep, err := s.reports.Dashboard(c.Request.Context(), c.Param("user"))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) getTrend(c *gin.Context) {
	trend, err := s.reports.Trend(c.Request.Context(), c.Param("user"))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (s *Server) getSession(c *gin.Context) {
	var o history.Override
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a positive integer"})
			return
		}
		o.Year = year
	}
	o.Subject = strings.TrimSpace(c.Query("subject"))

	rep, err := s.reports.Session(c.Request.Context(), c.Param("user"), c.Param("session"), o)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if !rep.Found() {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) getLibrary(c *gin.Context) {
	recs, err := s.store.Library(c.Request.Context(), c.Param("user"), c.Query("subject"))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	items := make([]LibraryItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, LibraryItem{
			AttemptID:   r.ID,
			QuestionID:  r.QuestionID,
			Text:        r.Question.Text,
			Subject:     r.Question.Subject,
			Pattern:     string(r.Question.Pattern),
			Year:        r.Question.Year,
			Correct:     r.Correct,
			Skipped:     r.Skipped,
			AttemptedAt: r.AttemptedAt,
		})
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) clearLibrary(c *gin.Context) {
	qid, err := strconv.ParseInt(c.Param("question"), 10, 64)
	if err != nil || qid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id"})
		return
	}
	n, err := s.store.ClearFromLibrary(c.Request.Context(), c.Param("user"), qid)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not in library"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": n})
}

func (s *Server) postAttempt(c *gin.Context) {
	var raw attempt.Raw
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := attempt.Normalize(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Ids are assigned by the store; timestamps are server-side.
	rec.ID = 0
	rec.AttemptedAt = time.Time{}

	id, err := s.store.AppendAttempt(c.Request.Context(), rec)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	case err != nil:
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) getCutoff(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	rec, err := s.store.Cutoff(c.Request.Context(), c.Param("exam"), year)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no official data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exam_name": rec.ExamName,
		"year":      rec.Year,
		"official":  rec.Official,
		"breakdown": rec.Breakdown(),
	})
}

func (s *Server) postPlan(c *gin.Context) {
	if s.planner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no LLM provider configured"})
		return
	}
	ctx := c.Request.Context()
	rep, err := s.reports.Dashboard(ctx, c.Param("user"))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	if s.cfg.PlanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.PlanTimeout)
		defer cancel()
	}
	plan, err := s.planner.Plan(ctx, rep)
	switch {
	case errors.Is(err, coach.ErrNoHistory):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		s.fail(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	s.logger.ErrorContext(c.Request.Context(), "request failed",
		"request_id", c.GetString(requestIDKey),
		"path", c.FullPath(),
		"error", err)
	c.JSON(status, gin.H{"error": http.StatusText(status)})
}
