package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/intake"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/journal"
)

const (
	maxBodySize  = 64 << 10 // 64KB
	defaultLimit = 20
	maxLimit     = 500

	headerDecisionID = "X-Decision-ID"
	headerSubject    = "X-Subject"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"journal": s.store != nil,
	})
}

func (s *Server) handleDecide(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}
	if len(body) > maxBodySize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body exceeds 64KB"})
		return
	}

	in, err := intake.ParseJSON(body)
	if err != nil {
		writeInputError(c, err)
		return
	}
	d, err := engine.Decide(in)
	if err != nil {
		writeInputError(c, err)
		return
	}

	if s.store != nil {
		e, err := s.store.Record(c.GetHeader(headerSubject), in, d)
		if err != nil {
			// The decision is still valid; journaling is best effort.
			log.Printf("[HTTP] journal record failed: %v", err)
		} else {
			c.Header(headerDecisionID, e.DecisionID)
		}
	}

	c.JSON(http.StatusOK, d)
}

func (s *Server) handleListDecisions(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 500"})
			return
		}
		limit = n
	}

	entries, err := s.store.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{
		"decisions": entries,
		"count":     len(entries),
	})
}

func (s *Server) handleGetDecision(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	e, err := s.store.Get(c.Param("id"))
	if errors.Is(err, journal.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "decision not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) handleStates(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	counts, err := s.store.StateCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total := 0
	for _, sc := range counts {
		total += sc.Count
	}
	if counts == nil {
		counts = []journal.StateCount{}
	}
	c.JSON(http.StatusOK, gin.H{
		"states": counts,
		"total":  total,
	})
}

func (s *Server) requireStore(c *gin.Context) bool {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "journal disabled"})
		return false
	}
	return true
}

func writeInputError(c *gin.Context, err error) {
	var invalid *engine.InvalidInputError
	if errors.As(err, &invalid) {
		resp := gin.H{"error": invalid.Error()}
		if invalid.Field != "" {
			resp["field"] = invalid.Field
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
