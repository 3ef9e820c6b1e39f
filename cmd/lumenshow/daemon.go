package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dougsko/lumenshow/pkg/client"
	"github.com/dougsko/lumenshow/pkg/config"
	"github.com/dougsko/lumenshow/pkg/engine"
	"github.com/dougsko/lumenshow/pkg/logging"
)

// ShowDaemon owns the engine and the web server that fronts it.
type ShowDaemon struct {
	config     *config.Config
	configPath string
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	verbose    bool

	coreEngine   *engine.Engine
	socketClient *client.SocketClient
	webServer    *http.Server

	socketPath string
}

// NewShowDaemon creates a daemon instance wrapping the engine and web server.
func NewShowDaemon(cfg *config.Config, configPath string, verbose bool) (*ShowDaemon, error) {
	ctx, cancel := context.WithCancel(context.Background())

	socketPath := cfg.API.UnixSocket
	if socketPath == "" {
		socketPath = "/tmp/lumenshow.sock"
	}

	daemon := &ShowDaemon{
		config:       cfg,
		configPath:   configPath,
		ctx:          ctx,
		cancel:       cancel,
		verbose:      verbose,
		socketPath:   socketPath,
		socketClient: client.NewSocketClient(socketPath),
	}

	daemon.coreEngine = engine.NewEngine(cfg, socketPath)

	if err := daemon.setupWebServer(); err != nil {
		return nil, fmt.Errorf("failed to setup web server: %w", err)
	}

	return daemon, nil
}

// Start starts the engine and the web server.
func (d *ShowDaemon) Start() error {
	logging.Info("daemon", "Starting lumenshow daemon...")

	if err := d.coreEngine.Start(); err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}

	time.Sleep(100 * time.Millisecond)

	if !d.socketClient.IsConnected() {
		return fmt.Errorf("failed to connect to engine control socket")
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		addr := fmt.Sprintf("%s:%d", d.config.Web.BindAddress, d.config.Web.Port)
		logging.Info("daemon", fmt.Sprintf("Starting web server on %s", addr))
		if err := d.webServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("daemon", fmt.Sprintf("Web server error: %v", err))
		}
	}()

	return nil
}

// Stop shuts the web server and engine down gracefully.
func (d *ShowDaemon) Stop() error {
	logging.Info("daemon", "Stopping daemon...")

	d.cancel()

	if d.webServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.webServer.Shutdown(ctx); err != nil {
			logging.Error("daemon", fmt.Sprintf("Web server shutdown error: %v", err))
		}
	}

	if d.coreEngine != nil {
		if err := d.coreEngine.Stop(); err != nil {
			logging.Error("daemon", fmt.Sprintf("Engine shutdown error: %v", err))
		}
	}

	d.wg.Wait()

	logging.Info("daemon", "Daemon stopped")
	return nil
}

func (d *ShowDaemon) setupWebServer() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Static("/static", "./web/static")
	router.LoadHTMLGlob("web/templates/*")

	router.GET("/", d.handleHome)

	api := router.Group("/api")
	{
		api.GET("/status", d.handleGetStatus)
		api.POST("/play", d.handlePlay)
		api.POST("/pause", d.handlePause)
		api.POST("/seek", d.handleSeek)
		api.POST("/bpm", d.handleSetBpm)
		api.POST("/beats-per-bar", d.handleSetBeatsPerBar)
		api.POST("/primary", d.handleSetPrimary)
		api.GET("/fixtures", d.handleGetFixtures)
		api.POST("/effects", d.handleAddEffect)
		api.DELETE("/handle/:handle", d.handleRemove)
		api.GET("/events", d.handleGetEvents)
	}

	router.GET("/ws/stream", d.handleStreamWebSocket)

	addr := fmt.Sprintf("%s:%d", d.config.Web.BindAddress, d.config.Web.Port)
	d.webServer = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	return nil
}
