// Package server exposes the content pipeline over HTTP. Every request
// re-resolves content through the store, so edits to source files are
// visible immediately (the store's mtime cache keeps this cheap).
package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sersergious/folio/internal/config"
	"github.com/sersergious/folio/internal/content"
)

type Server struct {
	cfg    config.Config
	store  *content.Store
	log    *zap.Logger
	router *gin.Engine
}

func New(cfg config.Config, store *content.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestMetrics())

	s := &Server{cfg: cfg, store: store, log: log, router: router}
	s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	api.GET("/projects", s.listProjects)
	api.GET("/projects/:slug", s.getProject)
	api.GET("/projects/:slug/related", s.relatedProjects)
	api.GET("/blog", s.listPosts)
	api.GET("/blog/:slug", s.getPost)
	api.GET("/blog/:slug/related", s.relatedPosts)
	api.GET("/research", s.listPapers)
	api.GET("/research/:slug", s.getPaper)
	api.GET("/research/:slug/related", s.relatedPapers)
	api.GET("/search", s.search)
	api.GET("/tags", s.tags)

	// Everything else is the built static site.
	s.router.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.cfg.OutputDir))))
}

func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, content.ErrDirectoryUnavailable):
		s.log.Error("content directory unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "content unavailable"})
	default:
		s.log.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func queryLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return n
}

// listing applies the shared featured/tag/limit query params to a kind
// listing and writes the JSON response.
func listing[T content.Item](s *Server, c *gin.Context, load func() ([]T, error)) {
	items, err := load()
	if err != nil {
		s.fail(c, err)
		return
	}
	if tag := c.Query("tag"); tag != "" {
		items = content.Filter(items, func(it T) bool {
			for _, t := range it.Info().Tags {
				if t == tag {
					return true
				}
			}
			return false
		})
	}
	if c.Query("featured") == "true" {
		items = content.Featured(items, queryLimit(c))
	} else if limit := queryLimit(c); limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	c.JSON(http.StatusOK, items)
}

func single[T content.Item](s *Server, c *gin.Context, load func(string) (T, error)) {
	item, err := load(c.Param("slug"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// related resolves the current item, then ranks the listing pool around
// it. For blog posts the pool is the published set, so drafts never show
// up as related content.
func related[T content.Item](s *Server, c *gin.Context, load func(string) (T, error), pool func() ([]T, error)) {
	item, err := load(c.Param("slug"))
	if err != nil {
		s.fail(c, err)
		return
	}
	candidates, err := pool()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, content.Related(item, candidates, queryLimit(c)))
}

func (s *Server) listProjects(c *gin.Context) { listing(s, c, s.store.Projects) }
func (s *Server) listPosts(c *gin.Context)    { listing(s, c, s.store.BlogPosts) }
func (s *Server) listPapers(c *gin.Context)   { listing(s, c, s.store.ResearchPapers) }

func (s *Server) getProject(c *gin.Context) { single(s, c, s.store.Project) }
func (s *Server) getPost(c *gin.Context)    { single(s, c, s.store.BlogPost) }
func (s *Server) getPaper(c *gin.Context)   { single(s, c, s.store.ResearchPaper) }

func (s *Server) relatedProjects(c *gin.Context) {
	related(s, c, s.store.Project, s.store.Projects)
}

func (s *Server) relatedPosts(c *gin.Context) {
	related(s, c, s.store.BlogPost, s.store.BlogPosts)
}

func (s *Server) relatedPapers(c *gin.Context) {
	related(s, c, s.store.ResearchPaper, s.store.ResearchPapers)
}

func (s *Server) search(c *gin.Context) {
	query := c.Query("q")
	limit := queryLimit(c)

	projects, err := s.store.Projects()
	if err != nil {
		s.fail(c, err)
		return
	}
	posts, err := s.store.BlogPosts()
	if err != nil {
		s.fail(c, err)
		return
	}
	papers, err := s.store.ResearchPapers()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": content.Search(projects, query, limit),
		"posts":    content.Search(posts, query, limit),
		"papers":   content.Search(papers, query, limit),
	})
}

func (s *Server) tags(c *gin.Context) {
	projects, err := s.store.Projects()
	if err != nil {
		s.fail(c, err)
		return
	}
	posts, err := s.store.BlogPosts()
	if err != nil {
		s.fail(c, err)
		return
	}
	papers, err := s.store.ResearchPapers()
	if err != nil {
		s.fail(c, err)
		return
	}

	categories := content.UniqueValues(projects, func(p *content.Project) []string {
		return p.Categories
	})
	categories = append(categories, content.UniqueValues(posts, func(p *content.BlogPost) []string {
		if p.Category == "" {
			return nil
		}
		return []string{p.Category}
	})...)

	c.JSON(http.StatusOK, gin.H{
		"tags": gin.H{
			"projects": content.UniqueTags(projects),
			"blog":     content.UniqueTags(posts),
			"research": content.UniqueTags(papers),
		},
		"categories": content.UniqueValues(categories, func(cat string) []string { return []string{cat} }),
	})
}
