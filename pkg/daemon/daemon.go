package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"battwatch/pkg/config"
	"battwatch/pkg/events"
	"battwatch/pkg/notify"
)

var (
	conf    config.Config
	watcher *Watcher
	hub     *events.EventHub
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/status", getStatus)
	router.GET("/config", getConfig)
	router.PUT("/low-threshold", setLowThreshold)
	router.PUT("/high-threshold", setHighThreshold)
	router.GET("/events", getEvents)
	router.GET("/version", getVersion)

	return router
}

// buildNotifiers assembles the notification channels. Both read their
// settings from the live config on every send, so a SIGHUP reload that
// supplies credentials or flips the toast flag takes effect without a
// restart.
func buildNotifiers(c config.Config) []notify.Notifier {
	return []notify.Notifier{
		notify.NewTelegram(c),
		notify.NewToast(c),
	}
}

func Run(configPath string, unixSocketPath string) error {
	router := setupRoutes()

	confFile, err := config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	conf = confFile
	logrus.WithFields(confFile.LogrusFields()).Infof("config loaded")

	if conf.BotToken() == "" || conf.TelegramChatID() == "" {
		logrus.Warnf("telegram credentials not set (%s / %s); chat notifications will be skipped",
			config.EnvBotToken, config.EnvChatID)
	}

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.Infof("config reloaded")
		}
	}()

	hub = events.NewEventHub()
	watcher = NewWatcher(conf, buildNotifiers(conf), hub)

	srv := &http.Server{
		Handler: router,
	}

	// A stale socket from a previous unclean shutdown would make
	// net.Listen fail.
	_ = os.Remove(unixSocketPath)

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	stop := make(chan struct{})
	go func() {
		logrus.Debugln("watcher loop starts")
		watcher.Run(stop)
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("stopping watcher loop")
	close(stop)

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("exiting")
	return nil
}
