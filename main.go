package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/jmoiron/sqlx"
	"github.com/kardianos/osext"
	_ "github.com/mattn/go-sqlite3" // Just needed for the sqlite driver
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	kiosk "github.com/teknologkoren/strequekiosk/internal"
	"github.com/teknologkoren/strequekiosk/internal/celebrate"
	"github.com/teknologkoren/strequekiosk/internal/ctxhelper"
	"github.com/teknologkoren/strequekiosk/internal/gateway"
	"github.com/teknologkoren/strequekiosk/internal/log"
	"github.com/teknologkoren/strequekiosk/internal/migrate"
	"github.com/teknologkoren/strequekiosk/internal/models"
	quoterepo "github.com/teknologkoren/strequekiosk/internal/repos/quote/sqlite"
	rosterrepo "github.com/teknologkoren/strequekiosk/internal/repos/roster/sqlite"
)

const (
	appName    = "Strequekiosk"
	appVersion = "0.1.0"
	dbFile     = "kiosk.db"
)

// Checks and tries to create the given directory recursively (or exits if this fails)
func checkAndCreateDir(path string, logger *logrus.Entry) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField(log.FldPath, path).Info("Directory does not exist - trying to create...")
			if err = os.MkdirAll(path, os.ModePerm); err != nil {
				logger.WithError(err).Fatal("Failed to create directory")
			}
			logger.Info("Directory created successfully")
		} else {
			logger.WithError(err).Fatal("Stat has failed")
		}
	} else if !fileInfo.IsDir() {
		logger.Fatalf("'%s' is not a directory. Remove the plain file if you want to continue", path)
	}
}

func main() {
	execDir, err := osext.ExecutableFolder()
	if err != nil {
		panic(err)
	}

	configFile := flag.String(
		"config",
		filepath.Join(execDir, "config.json"),
		"The configuration file to load the application's configuration from",
	)
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()

	// Initialize the logger
	logger := logrus.WithField(log.FldVersion, appVersion)
	logger.Infof("%s version %s is starting up...", appName, appVersion)
	ctx = context.WithValue(ctx, ctxhelper.KeyLogger, logger)

	// Load the main configuration file
	cs := kiosk.NewConfigService(*configFile)
	if err := cs.LoadOrCreate(ctx); err != nil {
		logger.WithError(err).Error("Cannot load config. Using defaults")
	}
	conf := cs.GetConfig(ctx)

	logger.Infof("Using '%s' as data directory", conf.DataDir)
	checkAndCreateDir(conf.DataDir, logger)

	// Set up the snapshot database and perform pending migrations
	dbFileName := path.Join(conf.DataDir, dbFile)
	var db *sqlx.DB
	if db, err = sqlx.Open("sqlite3", dbFileName); err != nil {
		logger.WithError(err).Fatal("Failed to open database connection")
	}
	logger.Info("Performing database migrations...")
	if err = migrate.ExecuteMigrationsOnDb(db, logger); err != nil {
		logger.WithError(err).Fatal("Database migration has failed. Please check database for consistency and try again.")
	}

	// Access to the tally server
	upstreamLogger := logger.WithField(log.FldTransport, "upstream")
	gw, err := gateway.New(conf.Upstream.BaseURL, upstreamLogger, upstreamOptions(conf.Upstream)...)
	if err != nil {
		logger.WithError(err).Fatal("Invalid upstream configuration")
	}

	display := celebrate.New(
		time.Duration(conf.Celebration.DurationMs)*time.Millisecond,
		kiosk.LogPlayer{Logger: logger.WithField("component", "celebration")},
	)

	rosterRepo := rosterrepo.New(db, logger)
	quoteRepo := quoterepo.New(db, logger)
	if num, err := rosterRepo.CountUsers(); err == nil {
		logger.WithField(log.FldCount, num).Info("Loaded user list snapshot")
	}

	strSrv := kiosk.NewStrequeService(gw, display, cs, upstreamLogger)
	rosSrv := kiosk.NewRosterService(rosterRepo, quoteRepo, logger)

	httpLogger := logger.WithField(log.FldTransport, "HTTP")

	h := kiosk.MakeHTTPHandler(strSrv, rosSrv, display, httpLogger)

	// Start listening
	errs := make(chan error)

	// Listen for stop signals that will end the service
	go func() {
		c := make(chan os.Signal, 2)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		err := fmt.Errorf("%s", <-c)
		logger.Info("Caught signal to stop. Shutting down.")
		display.Cancel()
		errs <- err
	}()

	go func() {
		httpLogger.WithField("addr", conf.ListenAddress).Info("Starting listening port")
		errs <- http.ListenAndServe(conf.ListenAddress, h)
	}()

	// Watchdog for systemd
	go func() {
		interval, err := daemon.SdWatchdogEnabled(false)
		if err != nil || interval == 0 {
			return
		}
		logger.Info("Activating systemd watchdog goroutine")
		port := conf.ListenAddress[strings.LastIndex(conf.ListenAddress, ":")+1:]
		url := fmt.Sprintf("http://127.0.0.1:%s/alive", port)
		for {
			if res, err := http.Get(url); err == nil {
				res.Body.Close()
				daemon.SdNotify(false, "WATCHDOG=1")
			}
			time.Sleep(interval / 3)
		}
	}()

	// Notify systemd that we are ready to go (if available)
	daemon.SdNotify(false, "READY=1")

	err = <-errs
	db.Close()
	logger.WithError(err).Error("Shutdown complete")
}

// upstreamOptions builds the gateway options from the upstream configuration. A timeout of 0 keeps the gateway's
// default timeout.
func upstreamOptions(conf models.UpstreamConfig) []gateway.Option {
	return []gateway.Option{
		gateway.WithTimeout(time.Duration(conf.TimeoutMs) * time.Millisecond),
		gateway.WithHeader("Cookie", conf.SessionCookie),
		gateway.WithHeader("Authorization", bearer(conf.APIKey)),
	}
}

// bearer formats an API key as bearer authorization, the empty key results in no header at all
func bearer(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	return "Bearer " + apiKey
}
