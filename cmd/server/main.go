package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/lukev/catan_server/internal/game"
	"github.com/lukev/catan_server/internal/lobby"
	"github.com/lukev/catan_server/internal/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, continuing with process environment")
	}

	logger := logrus.New()
	log := logrus.NewEntry(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	hub := websocket.NewHub(log.WithField("component", "hub"))
	go hub.Run()

	gameMgr := game.NewManager(log.WithField("component", "game"))
	lobbyMgr := lobby.NewManager(gameMgr, log.WithField("component", "lobby"))

	deps := websocket.ServerDeps{
		Lobby: lobbyMgr,
		Games: gameMgr,
	}

	router := mux.NewRouter()

	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		websocket.ServeWs(hub, deps, w, r)
	})

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"service": "catan-server",
		})
	})

	router.Use(corsMiddleware)

	addr := ":" + port
	log.WithField("addr", addr).Info("catan server starting")
	if err := http.ListenAndServe(addr, router); err != nil {
		log.WithError(err).Fatal("ListenAndServe failed")
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
