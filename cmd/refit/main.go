package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/refit/extension/internal/cache"
	"github.com/refit/extension/internal/config"
	"github.com/refit/extension/internal/dispatcher"
	"github.com/refit/extension/internal/finder"
	"github.com/refit/extension/internal/hooks"
	"github.com/refit/extension/internal/influx"
	"github.com/refit/extension/internal/journal"
	"github.com/refit/extension/internal/logging"
	"github.com/refit/extension/internal/mirror"
	"github.com/refit/extension/internal/monitor"
	"github.com/refit/extension/internal/parser"
	"github.com/refit/extension/internal/session"
	"github.com/refit/extension/pkg/hostapi"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentExtensionVersion string = "1.0.0"
	BuildDate               string = "unknown"

	ExtensionName string = "refit"
)

var (
	SessionStartTime time.Time = time.Now()

	LogManager *logging.Manager

	sessionContext  *session.Context
	world           *cache.WorldCache
	journalManager  *journal.Manager
	influxManager   *influx.Manager
	monitorService  *monitor.Service
	hookService     *hooks.Service
	mirrorManager   *mirror.Manager
	eventDispatcher *dispatcher.Dispatcher

	logFile *os.File
)

func initExtension() error {
	var err error

	LogManager = logging.NewManager()
	LogManager.Setup(nil, "info", "", nil)
	logger := LogManager.Logger()

	if err = config.Load("."); err != nil {
		logger.Warn("Failed to load config, using defaults", "error", err)
	} else {
		logger.Info("Loaded config")
	}

	logsDir := config.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.Mkdir(logsDir, 0755)
	}

	logFilePath := logging.LogFilePath(logsDir, ExtensionName, SessionStartTime)
	logFile, err = os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		logger.Error("Failed to create/open log file", "error", err, "path", logFilePath)
	}

	graylogAddr := ""
	if config.GetBool("graylog.enabled") {
		graylogAddr = config.GetString("graylog.address")
	}

	sessionContext = session.NewContext()
	LogManager.Setup(logFile, config.GetString("logLevel"), graylogAddr, sessionContext.Attrs)
	logger = LogManager.Logger()
	logger.Info("Logging to file", "path", logFilePath, "version", CurrentExtensionVersion, "build", BuildDate)

	zlog := zerolog.New(logFile).With().Timestamp().Logger()

	journalCfg := config.GetJournalConfig()
	if journalCfg.Enabled {
		journalManager = journal.NewManager(zlog)
		journalManager.SqliteFilePath = journalCfg.SqlitePath
		if err := journalManager.Connect(); err != nil {
			// not fatal: records buffer in memory until a DB appears
			logger.Error("Journal connection failed, buffering decisions", "error", err)
		}
	}

	if config.GetBool("influx.enabled") {
		influxManager = influx.NewManager(zlog, logging.LogFilePath(logsDir, ExtensionName+".metrics", SessionStartTime)+".gz")
		if err := influxManager.Connect(); err != nil {
			logger.Error("InfluxDB setup failed, metrics disabled", "error", err)
			influxManager = nil
		}
	}

	world = cache.NewWorldCache()

	monitorService = monitor.NewService(monitor.Dependencies{
		World:      world,
		Journal:    journalManager,
		Influx:     influxManager,
		LogManager: LogManager,
		Session:    sessionContext,
		StatusDir:  logsDir,
	})
	if err := monitorService.Start(); err != nil {
		logger.Error("Failed to start status monitor", "error", err)
	}

	eventDispatcher, err = dispatcher.New(logger)
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	p := parser.NewParser(logger)

	mirrorManager = mirror.NewManager(mirror.Dependencies{
		World:      world,
		Parser:     p,
		LogManager: LogManager,
	})
	mirrorManager.RegisterHandlers(eventDispatcher)

	hookDeps := hooks.Dependencies{
		World:                world,
		Finder:               finder.New(world),
		Parser:               p,
		LogManager:           LogManager,
		Metrics:              monitorService,
		TutorialKey:          config.GetString("extension.tutorialKey"),
		RequireMaterialMatch: config.GetBool("extension.requireMaterialMatch"),
	}
	if journalManager != nil {
		hookDeps.Journal = journalManager
	}
	hookService = hooks.NewService(hookDeps)
	hookService.RegisterHandlers(eventDispatcher, config.HookEnabled)

	registerLifecycleHandlers(eventDispatcher)

	hostapi.SetVersion(CurrentExtensionVersion)
	hostapi.SetDispatcher(eventDispatcher)
	hostapi.RegisterHostCallback(func(name, function, data string) {
		logger.Info("Host callback", "name", name, "function", function, "data", data)
	})

	logger.Info("Extension initialized")
	return nil
}

func registerLifecycleHandlers(d *dispatcher.Dispatcher) {
	d.RegisterSync(":INIT:", handleInit)
	d.RegisterSync(":STATUS:", handleStatus)
	d.RegisterSync(":SHUTDOWN:", handleShutdown)
}

// handleInit receives the session announcement sent once per map load.
// Args: [mapName, faction, addonVersion]
func handleInit(e dispatcher.Event) (any, error) {
	if len(e.Args) < 3 {
		return nil, fmt.Errorf("insufficient data fields: got %d, need 3", len(e.Args))
	}

	info := session.Info{
		MapName:          e.Args[0],
		Faction:          e.Args[1],
		AddonVersion:     e.Args[2],
		ExtensionVersion: CurrentExtensionVersion,
	}
	sessionContext.Set(info)
	world.Reset()

	if journalManager != nil {
		if err := journalManager.StartSession(&journal.SessionRecord{
			MapName:          info.MapName,
			Faction:          info.Faction,
			AddonVersion:     info.AddonVersion,
			ExtensionVersion: info.ExtensionVersion,
		}); err != nil {
			LogManager.WriteLog(":INIT:", fmt.Sprintf("error writing session marker: %v", err), "WARN")
		}
	}

	hostapi.WriteHostCallback(ExtensionName, ":EXT:READY:", CurrentExtensionVersion)
	return "ready", nil
}

// handleStatus answers the current extension status as JSON.
func handleStatus(e dispatcher.Event) (any, error) {
	status := monitorService.GetStatus()
	out, err := json.Marshal(status)
	if err != nil {
		return nil, fmt.Errorf("error serializing status: %w", err)
	}
	return string(out), nil
}

func handleShutdown(e dispatcher.Event) (any, error) {
	monitorService.Stop()
	if journalManager != nil {
		if err := journalManager.Close(); err != nil {
			LogManager.WriteLog(":SHUTDOWN:", fmt.Sprintf("error closing journal: %v", err), "WARN")
		}
	}
	if influxManager != nil {
		influxManager.Close()
	}
	return "bye", nil
}

func main() {
	if err := initExtension(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Println("Usage:")
		fmt.Println("  refit replay <eventlog> [eventlog...]   feed recorded host event logs")
		fmt.Println("  refit status                             print extension status")
		return
	}

	switch strings.ToLower(args[0]) {
	case "replay":
		if len(args) < 2 {
			fmt.Println("No event logs provided.")
			return
		}
		for _, path := range args[1:] {
			if err := replayEventLog(path); err != nil {
				fmt.Fprintf(os.Stderr, "replay of %s failed: %v\n", path, err)
				os.Exit(1)
			}
		}
		printStatus()
	case "status":
		printStatus()
	default:
		fmt.Printf("Unknown command: %s\n", args[0])
	}

	hostapi.Call(":SHUTDOWN:", nil)
}

func printStatus() {
	out, err := json.MarshalIndent(monitorService.GetStatus(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error serializing status: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
