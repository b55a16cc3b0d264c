package api

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cpucorecore/datelabel/internal/filter"
	"github.com/cpucorecore/datelabel/internal/format"
	"github.com/cpucorecore/datelabel/internal/monitor"
	"github.com/cpucorecore/datelabel/internal/req_pre_check"
	"github.com/cpucorecore/datelabel/internal/shutdown"
	"github.com/cpucorecore/datelabel/internal/view_model"
	"github.com/cpucorecore/datelabel/log"
)

var ErrPreviewTimezone = errors.New("tz is not supported on /preview; labels use the configured zone")

//go:embed templates/*.tmpl
var templatesFS embed.FS

type Server struct {
	labels   *format.DateLabel
	filters  *filter.Registry
	drain    *shutdown.Manager
	maxBatch int
	tmpl     *template.Template
}

// NewServer parses the page templates against the filters already in reg,
// so filter.Install must run first. drain may be nil.
func NewServer(labels *format.DateLabel, reg *filter.Registry, drain *shutdown.Manager, maxBatch int) (*Server, error) {
	tmpl, err := template.New("").Funcs(reg.FuncMap()).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Server{
		labels:   labels,
		filters:  reg,
		drain:    drain,
		maxBatch: maxBatch,
		tmpl:     tmpl,
	}, nil
}

func (s *Server) Routes(r *gin.Engine) {
	monitor.RegisterMetricsRoute(r)
	r.SetHTMLTemplate(s.tmpl)

	g := r.Group("/")
	if s.drain != nil {
		g.Use(s.drain.Middleware())
	}
	g.Use(observeRequest)

	g.GET("/labels", s.handleGetLabel)
	g.POST("/labels", s.handlePostLabels)
	g.GET("/filters", s.handleGetFilters)
	g.GET("/preview", s.handlePreview)
}

func observeRequest(c *gin.Context) {
	start := time.Now()
	c.Next()
	monitor.ObserveRequest(c.FullPath(), time.Since(start))
}

func (s *Server) handleGetLabel(c *gin.Context) {
	value, loc, err := req_pre_check.CheckHttpReq(c)
	if err != nil {
		log.Log.Debug("bad label request", zap.String("query", c.Request.URL.RawQuery), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view_model.ConvertLabel(value, s.labels.In(loc)))
}

func (s *Server) handlePostLabels(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	values, loc, err := req_pre_check.CheckJsonReq(body, s.maxBatch)
	if err != nil {
		log.Log.Debug("bad label batch", zap.Int("body_bytes", len(body)), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view_model.ConvertLabels(values, s.labels.In(loc)))
}

func (s *Server) handleGetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"filters": s.filters.Names()})
}

// handlePreview renders value through the registered formatDate filter.
// The filter is bound to the configured zone at startup, so a tz parameter
// is rejected with 400; the zone used is echoed in the page.
func (s *Server) handlePreview(c *gin.Context) {
	if c.Query("tz") != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrPreviewTimezone.Error()})
		return
	}

	value, _, err := req_pre_check.CheckHttpReq(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "preview.tmpl", gin.H{
		"Value":    value,
		"Timezone": s.labels.Location().String(),
	})
}
