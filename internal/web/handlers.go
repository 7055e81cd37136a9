package web

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/globe"
	"github.com/Zachkp/portfolio/internal/scrollspy"
)

// Home page. Each list section reads its own <param>_category and
// <param>_page query values; section deep-links to an anchor.
func (s *Server) index(c *gin.Context) {
	hero, about := counters(s.content)
	d := &pageData{
		Personal:   s.content.Personal(),
		About:      s.content.About(),
		Metrics:    hero,
		Stats:      about,
		Skills:     s.content.Skills(),
		Experience: s.content.Experience(),
		Education:  s.content.Education(),
		Projects: s.projects(parseQuery(
			c.Query("projects_category"), c.Query("projects_page"))),
		Certifications: s.certifications(parseQuery(
			c.Query("certs_category"), c.Query("certs_page"))),
		Blogs: s.blogs(parseQuery(
			c.Query("posts_category"), c.Query("posts_page"))),
		Year: time.Now().Year(),
	}

	d.ScrollY, d.Active = locate(layout(d), c.Query("section"))
	d.Scrolled = scrollspy.Scrolled(d.ScrollY)
	d.Nav = nav(d.Active)

	for _, sec := range []struct{ id, category string }{
		{"projects", d.Projects.knownCategory()},
		{"certifications", d.Certifications.knownCategory()},
		{"blogs", d.Blogs.knownCategory()},
	} {
		s.metrics.SectionRenders.WithLabelValues(sec.id, sec.category).Inc()
	}
	c.HTML(http.StatusOK, "index.html", d)
}

func (s *Server) projects(q listQuery) sectionView[content.Project] {
	return buildSection("projects", "projects", s.content.Projects(), s.cfg.Listing.Projects, true, q)
}

func (s *Server) certifications(q listQuery) sectionView[content.Certification] {
	return buildSection("certifications", "certs", s.content.Certifications(), s.cfg.Listing.Certifications, false, q)
}

func (s *Server) blogs(q listQuery) sectionView[content.Post] {
	return buildSection("blogs", "posts", s.content.Posts(), s.cfg.Listing.Posts, true, q)
}

// section renders one list as an HTMX fragment.
func (s *Server) section(c *gin.Context) {
	q := parseQuery(c.Query("category"), c.Query("page"))
	id := c.Param("section")

	var (
		data     any
		category string
	)
	switch id {
	case "projects":
		v := s.projects(q)
		data, category = v, v.knownCategory()
	case "certifications":
		v := s.certifications(q)
		data, category = v, v.knownCategory()
	case "blogs":
		v := s.blogs(q)
		data, category = v, v.knownCategory()
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
		return
	}

	s.metrics.SectionRenders.WithLabelValues(id, category).Inc()
	c.HTML(http.StatusOK, "section-"+id, data)
}

func (s *Server) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title":    "Privacy Policy",
		"Personal": s.content.Personal(),
	})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"pending_contact": s.submitter.Pending(),
	})
}

type globeResponse struct {
	Radius float64      `json:"radius"`
	Points [][3]float64 `json:"points"`
	Edges  [][2]int     `json:"edges"`
}

// globeModel returns the point cloud for client-side rendering.
func (s *Server) globeModel(c *gin.Context) {
	resp := globeResponse{
		Radius: s.model.Radius,
		Points: make([][3]float64, len(s.model.Points)),
		Edges:  make([][2]int, len(s.model.Edges)),
	}
	for i, p := range s.model.Points {
		resp.Points[i] = [3]float64{p.X, p.Y, p.Z}
	}
	for i, e := range s.model.Edges {
		resp.Edges[i] = [2]int{e.I, e.J}
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, resp)
}

const maxSVGSize = 2048

// globeSVG renders a single static frame, used as the no-JavaScript fallback.
func (s *Server) globeSVG(c *gin.Context) {
	yaw, err1 := floatQuery(c, "yaw", 0)
	pitch, err2 := floatQuery(c, "pitch", 0)
	dist, err3 := floatQuery(c, "distance", globe.InitialDistance)
	w, err4 := intQuery(c, "w", 600)
	h, err5 := intQuery(c, "h", 600)
	for _, err := range []error{err1, err2, err3, err4, err5} {
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if w < 1 || h < 1 || w > maxSVGSize || h > maxSVGSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "w and h must be between 1 and 2048"})
		return
	}

	ctrl := globe.NewController(w, h)
	ctrl.SetView(yaw, pitch, dist)

	c.Header("Content-Type", "image/svg+xml")
	c.Status(http.StatusOK)
	if err := globe.WriteSVG(c.Writer, ctrl.Frame(s.model)); err != nil {
		s.log.Warn("writing globe svg", zap.Error(err))
		return
	}
	s.metrics.GlobeFrames.Inc()
}

func floatQuery(c *gin.Context, key string, def float64) (float64, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be a finite number", key)
	}
	return f, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// contact accepts JSON or form posts. HTMX requests get an HTML fragment,
// everything else the JSON result.
func (s *Server) contact(c *gin.Context) {
	var m contact.Message
	if err := c.ShouldBind(&m); err != nil {
		c.JSON(http.StatusBadRequest, contact.Result{Message: "Invalid request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Contact.Timeout)
	defer cancel()
	res := s.submitter.Submit(ctx, m)

	outcome := "failed"
	if res.Success {
		outcome = "sent"
	}
	s.metrics.ContactResults.WithLabelValues(outcome).Inc()

	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "contact-result", res)
		return
	}
	c.JSON(http.StatusOK, res)
}
