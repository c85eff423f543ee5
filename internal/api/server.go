// Package api exposes the decision engine over HTTP for the dashboard and
// other collaborators.
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/engine"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/journal"
)

// Store is the slice of the journal the handlers use. A nil Store disables
// journaling; decisions are still served.
type Store interface {
	Record(subject string, in engine.BiometricInput, d engine.Decision) (journal.Entry, error)
	Get(id string) (journal.Entry, error)
	List(limit int) ([]journal.Entry, error)
	StateCounts() ([]journal.StateCount, error)
}

// Server is the HTTP front end.
type Server struct {
	store  Store
	router *gin.Engine
}

// NewServer builds the router. Call gin.SetMode beforehand to pick the mode.
func NewServer(store Store) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLog())

	s := &Server{
		store:  store,
		router: router,
	}

	router.GET("/healthz", s.handleHealth)

	v1 := router.Group("/v1")
	{
		v1.POST("/decide", s.handleDecide)
		v1.GET("/decisions", s.handleListDecisions)
		v1.GET("/decisions/:id", s.handleGetDecision)
		v1.GET("/states", s.handleStates)
	}

	return s
}

// Handler returns the router for embedding in an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[HTTP] %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
