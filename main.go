package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"realmlauncher/handlers"
	"realmlauncher/internal/database"
	"realmlauncher/services/launcher"
	"realmlauncher/services/profiles"
	"realmlauncher/services/realmlist"
	"realmlauncher/services/status"
	"realmlauncher/utils"
)

func main() {
	var (
		listenAddr = flag.String("listen", "127.0.0.1:5595", "address the local API listens on")
		dataDirArg = flag.String("data-dir", "", "directory for servers.json and settings.json (default: per-user config dir)")
	)
	flag.Parse()

	dataDir := *dataDirArg
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			log.Fatalf("[main] resolve user config dir: %v", err)
		}
		dataDir = filepath.Join(base, "realmlauncher")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("[main] create data dir %s: %v", dataDir, err)
	}

	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   filepath.Join(dataDir, "logs", "realmlauncher.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
	}))

	store := profiles.NewService(dataDir)
	syncer := realmlist.NewService()
	launchSvc := launcher.NewService(store, syncer)

	// The history database is a nicety; probing still works without it.
	var history status.HistoryStore
	db, err := database.NewDB(database.Config{DatabasePath: filepath.Join(dataDir, "status.db")})
	if err != nil {
		log.Printf("[main] status history unavailable: %v", err)
	} else {
		defer db.Close()
		history = db.Repository
	}
	statusSvc := status.NewService(store, history)

	serversHandler := handlers.NewServersHandler(store)
	settingsHandler := handlers.NewSettingsHandler(store)
	realmlistHandler := handlers.NewRealmlistHandler(syncer)
	launchHandler := handlers.NewLaunchHandler(launchSvc)
	statusHandler := handlers.NewStatusHandler(statusSvc)

	router := utils.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/servers", serversHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/servers", serversHandler.Replace).Methods(http.MethodPut)
	api.HandleFunc("/servers", serversHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/servers/{id}", serversHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/servers/{id}", serversHandler.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/settings", settingsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/settings", settingsHandler.Save).Methods(http.MethodPut)
	api.HandleFunc("/realmlist/sync", realmlistHandler.Sync).Methods(http.MethodPost)
	api.HandleFunc("/servers/{id}/play", launchHandler.Play).Methods(http.MethodPost)
	api.HandleFunc("/servers/{id}/status", statusHandler.Profile).Methods(http.MethodGet)
	api.HandleFunc("/servers/{id}/status/history", statusHandler.History).Methods(http.MethodGet)
	api.HandleFunc("/status/check", statusHandler.Check).Methods(http.MethodPost)
	api.HandleFunc("/status/all", statusHandler.All).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         *listenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s (data dir %s)", *listenAddr, dataDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}
