package httpserver

import (
	"encoding/base64"
	"html/template"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/api"
	"kgeyst.com/pictale/pkg/pictale/domain"
	"kgeyst.com/pictale/pkg/pictale/infrastructure/metrics"
)

const (
	// ConfigKeyHTTPAddr where the server listens
	ConfigKeyHTTPAddr = "httpAddr"
	// ConfigKeyGinDebug runs gin in debug mode (verbose route logging)
	ConfigKeyGinDebug = "ginDebug"
)

const formFieldImage = "image"

type Server struct {
	api    api.API
	logger common.Logger
	router *gin.Engine
}

func NewServer(service api.API, logger common.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))
	router.Use(metrics.Handler())
	router.SetHTMLTemplate(pageTemplate)
	s := &Server{
		api:    service,
		logger: logger,
		router: router,
	}
	s.registerRoutes()
	return s
}

// ConfigureGinMode must be called before NewServer.
func ConfigureGinMode(config *common.Config) {
	if config.GetBoolOrDefault(ConfigKeyGinDebug, false) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	s.router.GET("/metrics", metrics.Exposer())
	pages := s.router.Group("/", session())
	pages.GET("/", s.index)
	pages.POST("/story", s.story)
	pages.POST("/api/v1/stories", s.createStory)
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplateName, pageData{Idle: MessageIdle})
}

// story renders the result page. The preview stays on the page even if a later stage fails.
func (s *Server) story(c *gin.Context) {
	preview := &previewListener{}
	result, err := s.generate(c, preview)
	if err != nil {
		userErr := toUserError(err)
		c.HTML(userErr.Status, pageTemplateName, pageData{
			Error:   userErr.Message,
			Preview: preview.dataURL(),
		})
		return
	}
	c.HTML(http.StatusOK, pageTemplateName, pageData{
		Preview: preview.dataURL(),
		Caption: result.Caption,
		Story:   result.Story,
	})
}

type imageJSON struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type storyJSON struct {
	Caption string    `json:"caption"`
	Story   string    `json:"story"`
	Image   imageJSON `json:"image"`
}

func (s *Server) createStory(c *gin.Context) {
	result, err := s.generate(c, nil)
	if err != nil {
		userErr := toUserError(err)
		c.JSON(userErr.Status, userErr)
		return
	}
	c.JSON(http.StatusOK, storyJSON{
		Caption: result.Caption,
		Story:   result.Story,
		Image: imageJSON{
			Name:   result.Image.Name,
			Format: result.Image.Format,
			Width:  result.Image.Width,
			Height: result.Image.Height,
		},
	})
}

func (s *Server) generate(c *gin.Context, listener domain.ProgressListener) (*domain.StoryResult, error) {
	upload, err := readUpload(c)
	if err != nil {
		_ = c.Error(err)
		return nil, err
	}
	result, err := s.api.Generate(c.Request.Context(), c.GetString(contextKeySession), upload, listener)
	if err != nil {
		_ = c.Error(err)
		return nil, err
	}
	return result, nil
}

func readUpload(c *gin.Context) (domain.UploadedImage, error) {
	file, err := c.FormFile(formFieldImage)
	if err != nil {
		return domain.UploadedImage{}, errMissingFile
	}
	f, err := file.Open()
	if err != nil {
		return domain.UploadedImage{}, err
	}
	defer func() {
		_ = f.Close()
	}()
	data, err := io.ReadAll(f)
	if err != nil {
		return domain.UploadedImage{}, err
	}
	return domain.UploadedImage{Name: file.Filename, Data: data}, nil
}

// previewListener keeps the decoded image so that the result page can show it.
type previewListener struct {
	domain.NopProgressListener
	image *domain.DecodedImage
}

func (p *previewListener) ImageDecoded(image *domain.DecodedImage) {
	p.image = image
}

func (p *previewListener) dataURL() template.URL {
	if p.image == nil {
		return ""
	}
	// The MIME type comes from the decoder and the payload is base64, so the URL is safe to embed.
	return template.URL("data:" + p.image.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(p.image.Data))
}
