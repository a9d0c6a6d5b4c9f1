package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tessob/wasmgate"
	"github.com/tessob/wasmgate/errors"
)

// Server serves the HTTP API over a Gate.
type Server struct {
	gate   *wasmgate.Gate
	logger *zap.Logger
}

// New creates a Server. A nil logger disables request logging.
func New(gate *wasmgate.Gate, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{gate: gate, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.health)
	router.POST("/instances", s.create)
	router.POST("/instances/:id/call/:fn", s.call)
	router.GET("/exports", s.exports)
	router.GET("/instances/:id/exports", s.instanceExports)

	return router
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("serving http", zap.String("addr", addr))
	return s.Router().Run(addr)
}

func (s *Server) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"instances": len(s.gate.Instances()),
	})
}

type createRequest struct {
	Path string `json:"path"`
}

func (s *Server) create(ctx *gin.Context) {
	var (
		id     string
		source string
		err    error
	)

	if strings.HasPrefix(ctx.ContentType(), "application/json") {
		var req createRequest
		if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": bindErr.Error()})
			return
		}
		if req.Path == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
			return
		}
		source = req.Path
		id, err = s.gate.Load(ctx.Request.Context(), req.Path)
	} else {
		raw, readErr := io.ReadAll(ctx.Request.Body)
		if readErr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": readErr.Error()})
			return
		}
		if len(raw) == 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "empty module body"})
			return
		}
		source = "upload"
		id, err = s.gate.LoadBytes(ctx.Request.Context(), raw, source)
	}

	if err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"id": id, "source": source})
}

type callRequest struct {
	Args []int64 `json:"args"`
}

func (s *Server) call(ctx *gin.Context) {
	var req callRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	value, hasValue, err := s.gate.Invoke(ctx.Request.Context(), ctx.Param("id"), ctx.Param("fn"), req.Args...)
	if err != nil {
		s.fail(ctx, err)
		return
	}

	if !hasValue {
		ctx.JSON(http.StatusOK, gin.H{"value": nil})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"value": value})
}

func (s *Server) exports(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, s.gate.Exports())
}

func (s *Server) instanceExports(ctx *gin.Context) {
	rows, err := s.gate.ExportsOf(ctx.Param("id"))
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rows)
}

func (s *Server) fail(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	var gateErr *errors.Error
	if errors.As(err, &gateErr) {
		status = statusFor(gateErr.Kind)
	}

	s.logger.Warn("request failed",
		zap.Int("status", status),
		zap.String("path", ctx.FullPath()),
		zap.Error(err))
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(kind errors.Kind) int {
	switch kind {
	case errors.KindInstanceNotFound, errors.KindFunctionNotFound:
		return http.StatusNotFound
	case errors.KindArityMismatch, errors.KindIO:
		return http.StatusBadRequest
	case errors.KindCompile, errors.KindInstantiation, errors.KindUnsupportedType:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
