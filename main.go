package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tdooms/tracker/internal/config"
	"github.com/tdooms/tracker/internal/daemon"
	"github.com/tdooms/tracker/internal/database"
	"github.com/tdooms/tracker/internal/maintenance"
	"github.com/tdooms/tracker/internal/tracker"
	"github.com/tdooms/tracker/pkg/detector"
	"github.com/tdooms/tracker/pkg/input"
	"github.com/tdooms/tracker/pkg/integrations/gamepad"
	"github.com/tdooms/tracker/pkg/integrations/xinput"
	"github.com/tdooms/tracker/version"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "start":
		startDaemon()
	case "stop":
		stopDaemon()
	case "status":
		showStatus()
	case "clear":
		clearDatabase()
	case "version":
		showVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`tracker - Desktop activity tracker

Usage:
  tracker <command>

Commands:
  start              Start the tracking daemon
  stop               Stop the tracking daemon
  status             Show daemon status and current focused window
  clear              Clear all tracking data from database
  version            Show version information
  help               Show this help message

Examples:
  tracker start
  tracker status
  tracker stop

Environment Variables:
  TRACKER_DB_PATH             Database file path
  TRACKER_POLL_INTERVAL       Poll interval in seconds (1-60)
  TRACKER_METRICS_INTERVAL    Input metrics flush interval in seconds
  TRACKER_IDLE_THRESHOLD      Idle threshold in seconds
  TRACKER_INPUT_SAMPLE_MS     Input sampling interval in milliseconds
  TRACKER_ENABLE_CONTROLLER   Track game controller activity (true/false)
  TRACKER_CONTROLLER_ID       Controller device index
  TRACKER_PID_FILE            PID file path
  TRACKER_RETENTION_DAYS      Days of history to keep (0 disables pruning)
  TRACKER_RETENTION_SCHEDULE  Cron schedule for pruning

Version: %s
`, version.Version)
}

func startDaemon() {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if running {
		log.Fatalf("Daemon is already running (PID: %d)", pid)
	}

	if os.Getenv("TRACKER_DAEMON_CHILD") != "1" {
		daemonize()
		return
	}

	runStartDaemon(cfg, dm)
}

func runStartDaemon(cfg *config.Config, dm *daemon.Daemon) {
	logPath := fmt.Sprintf("/tmp/tracker-%d.log", os.Getuid())
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	det, err := detector.New()
	if err != nil {
		log.Fatalf("Failed to initialize window detector: %v", err)
	}
	defer det.Close()

	log.Printf("Window detector initialized: %s", det.Name())

	inputListener, err := xinput.NewListener(cfg.Input.SampleInterval)
	if err != nil {
		log.Fatalf("Failed to initialize input listener: %v", err)
	}

	listeners := []input.Listener{inputListener}
	if cfg.Input.EnableController {
		listeners = append(listeners, gamepad.NewListener(cfg.Input.ControllerID, cfg.Input.SampleInterval))
	}

	if err := dm.WritePID(); err != nil {
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.RemovePID()

	repo := database.NewRepository(db)
	trackerSvc := tracker.NewService(cfg, repo, det, listeners)

	if cfg.Retention.Days > 0 {
		janitor := maintenance.NewJanitor(repo, cfg.Retention.Days, cfg.Retention.Schedule)
		if err := janitor.Start(); err != nil {
			log.Fatalf("Failed to start retention janitor: %v", err)
		}
		defer janitor.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
		trackerSvc.Stop()
	}()

	log.Println("Starting tracker daemon...")
	log.Printf("Configuration:\n%s", cfg.String())

	if err := trackerSvc.Start(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Tracker error: %v", err)
	}

	log.Println("Daemon stopped successfully")
}

func stopDaemon() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Daemon is not running")
		return
	}
	fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop daemon: %v", err)
	}
	fmt.Println("Daemon stopped successfully")
}

func showStatus() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Status: Not running")
	} else {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
		fmt.Printf("Poll Interval: %v\n", cfg.Tracker.PollInterval)
		fmt.Printf("Idle Threshold: %v\n", cfg.Tracker.IdleThreshold)
		fmt.Printf("Database: %s\n", cfg.Database.Path)
	}

	fmt.Printf("Session: %s\n", detector.DetectDisplayServer())

	det, err := detector.New()
	if err != nil {
		fmt.Printf("\nCould not detect current window: %v\n", err)
		return
	}
	defer det.Close()

	windowInfo, err := det.GetFocusedWindow()
	if err == nil && windowInfo != nil {
		fmt.Printf("\nCurrent Window:\n")
		fmt.Printf("  App: %s\n", windowInfo.AppName)
		fmt.Printf("  Title: %s\n", windowInfo.WindowTitle)
	}
}

func clearDatabase() {
	cfg := config.New()
	fmt.Print("This will delete all tracking data. Are you sure? (yes/no): ")
	var response string
	fmt.Scanln(&response)
	if response != "yes" && response != "y" {
		fmt.Println("Operation cancelled")
		return
	}
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	repo := database.NewRepository(db)
	if err := repo.Clear(); err != nil {
		log.Fatalf("Failed to clear database: %v", err)
	}
	fmt.Println("Database cleared successfully")
}

func daemonize() {
	env := os.Environ()
	env = append(env, "TRACKER_DAEMON_CHILD=1")
	args := os.Args
	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil},
		Sys:   &syscall.SysProcAttr{Setsid: true},
	}
	process, err := os.StartProcess(args[0], args, procAttr)
	if err != nil {
		log.Fatalf("Failed to start daemon process: %v", err)
	}
	fmt.Printf("Daemon started successfully (PID: %d)\n", process.Pid)
	fmt.Printf("Logs: /tmp/tracker-%d.log\n", os.Getuid())
}

func showVersion() {
	fmt.Printf("version: %s\n", version.Version)
	fmt.Printf("built  : %s\n", version.Date)
}
