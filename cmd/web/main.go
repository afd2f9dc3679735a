package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kgeyst.com/pictale/pkg/common"
	"kgeyst.com/pictale/pkg/pictale/api"
	"kgeyst.com/pictale/pkg/pictale/httpserver"
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfigOrDefault("config.yaml")
	if err != nil {
		return err
	}
	logger := common.NewFileLogger(
		config.GetStringOrDefault(api.ConfigKeyLogPath, "log.txt"),
		config.GetStringOrDefault(api.ConfigKeyLogLevel, "info"),
	)
	pictale := api.NewAPI(config, logger)
	if config.GetBoolOrDefault(api.ConfigKeyPreloadModels, false) {
		err := pictale.PreloadModels(context.Background())
		if err != nil {
			return err
		}
	}
	httpserver.ConfigureGinMode(config)
	server := httpserver.NewServer(pictale, logger)
	addr := config.GetStringOrDefault(httpserver.ConfigKeyHTTPAddr, ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErrs := make(chan error, 1)
	go func() {
		logger.WithFields(common.Fields{"addr": addr}).Log("starting http server")
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrs <- err
		}
		close(serveErrs)
	}()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErrs:
		return err
	case <-stop:
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = srv.Shutdown(ctx)
	if err != nil {
		return err
	}
	logger.Log("server stopped")
	return nil
}
