package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/dougsko/lumenshow/pkg/config"
	"github.com/dougsko/lumenshow/pkg/logging"
	"github.com/dougsko/lumenshow/pkg/verbose"
)

var (
	configPath  = flag.String("config", "config.yaml", "Configuration file path")
	pidFilePath = flag.String("pidfile", "", "PID file path (default: /var/run/lumenshow.pid or ./lumenshow.pid)")
	version     = flag.Bool("version", false, "Show version information")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

const (
	Version = "0.1.0-dev"
	Build   = "development"
)

func getDefaultPidFile() string {
	systemPidFile := "/var/run/lumenshow.pid"
	if dir := filepath.Dir(systemPidFile); isWritableDir(dir) {
		return systemPidFile
	}
	return "./lumenshow.pid"
}

func isWritableDir(dir string) bool {
	if stat, err := os.Stat(dir); err == nil && stat.IsDir() {
		testFile := filepath.Join(dir, ".lumenshow_write_test")
		if f, err := os.Create(testFile); err == nil {
			f.Close()
			os.Remove(testFile)
			return true
		}
	}
	return false
}

func createPidFile(pidFile string) error {
	if err := checkExistingPid(pidFile); err != nil {
		return err
	}

	if dir := filepath.Dir(pidFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create PID file directory: %v", err)
		}
	}

	pid := os.Getpid()
	content := fmt.Sprintf("%d\n", pid)
	if err := os.WriteFile(pidFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %v", err)
	}
	return nil
}

func checkExistingPid(pidFile string) error {
	data, err := os.ReadFile(pidFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read existing PID file: %v", err)
	}

	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		os.Remove(pidFile)
		return nil
	}

	if isProcessRunning(pid) {
		return fmt.Errorf("lumenshow is already running with PID %d", pid)
	}

	os.Remove(pidFile)
	return nil
}

func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil
}

func removePidFile(pidFile string) {
	if pidFile != "" {
		if err := os.Remove(pidFile); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove PID file %s: %v", pidFile, err)
		}
	}
}

func main() {
	flag.Parse()

	verbose.SetEnabled(*verboseFlag)

	if *version {
		fmt.Printf("lumenshow version %s (%s)\n", Version, Build)
		os.Exit(0)
	}

	var actualPidFile string
	if *pidFilePath != "" {
		actualPidFile = *pidFilePath
	} else {
		actualPidFile = getDefaultPidFile()
	}

	if err := createPidFile(actualPidFile); err != nil {
		log.Fatalf("Failed to create PID file: %v", err)
	}
	defer removePidFile(actualPidFile)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logging.InitGlobalLogger(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseGlobalLogger()

	logging.Info("main", fmt.Sprintf("lumenshow version %s starting...", Version))
	logging.Info("main", fmt.Sprintf("PID: %d, PID file: %s", os.Getpid(), actualPidFile))
	logging.Info("main", fmt.Sprintf("Show: %s (%d fixtures)", cfg.Show.Name, len(cfg.Fixtures)))
	logging.Info("main", fmt.Sprintf("Web interface: http://%s:%d", cfg.Web.BindAddress, cfg.Web.Port))

	daemon, err := NewShowDaemon(cfg, *configPath, *verboseFlag)
	if err != nil {
		logging.Error("main", fmt.Sprintf("Failed to create daemon: %v", err))
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := daemon.Start(); err != nil {
		logging.Error("main", fmt.Sprintf("Failed to start daemon: %v", err))
		os.Exit(1)
	}

	logging.Info("main", "lumenshow started successfully")

	<-sigChan
	logging.Info("main", "Shutting down...")

	if err := daemon.Stop(); err != nil {
		logging.Error("main", fmt.Sprintf("Error during shutdown: %v", err))
	}

	logging.Info("main", "lumenshow stopped")
}
