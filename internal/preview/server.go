// Package preview 提供本机预览/调试 HTTP 服务：
// 查看当前图标和快照，触发一次手动刷新。
package preview

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wattbot/gowatt/internal/display"
	"github.com/wattbot/gowatt/pkg/logger"
)

// Server 预览服务
type Server struct {
	board   *display.SnapshotBoard
	trigger func()
	srv     *http.Server
}

// New 创建预览服务。trigger 会在 POST /refresh 时被调用（即手动触发一次 tick）。
func New(board *display.SnapshotBoard, trigger func()) *Server {
	s := &Server{board: board, trigger: trigger}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/icon.svg", s.handleIcon)
	r.GET("/snapshot", s.handleSnapshot)
	r.POST("/refresh", s.handleRefresh)

	s.srv = &http.Server{Handler: r}
	return s
}

// Handler 返回底层 handler（测试用）
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start 在指定地址启动服务（阻塞直到服务退出）
func (s *Server) Start(listen string) error {
	s.srv.Addr = listen
	logger.Infof("预览服务监听 %s", listen)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop 优雅停止服务
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func (s *Server) handleIcon(c *gin.Context) {
	emission, ok := s.board.Current()
	if !ok {
		c.String(http.StatusNotFound, "no icon rendered yet")
		return
	}

	body := strings.TrimPrefix(emission.ImageDataURI, "data:image/svg+xml,")
	svg, err := url.PathUnescape(body)
	if err != nil {
		c.String(http.StatusInternalServerError, "broken icon encoding")
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

func (s *Server) handleSnapshot(c *gin.Context) {
	emission, ok := s.board.Current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no snapshot yet"})
		return
	}
	c.JSON(http.StatusOK, emission)
}

func (s *Server) handleRefresh(c *gin.Context) {
	if s.trigger != nil {
		s.trigger()
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "refresh triggered"})
}
