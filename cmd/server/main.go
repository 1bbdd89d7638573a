package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"wizard-server/internal/config"
	"wizard-server/internal/mux"
	"wizard-server/pkg/room"
	"wizard-server/pkg/wizard"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// minPlayersToStart is the fewest seats, human plus CPU, a game can start with
const minPlayersToStart = 3

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	server := room.NewServer(logrus.StandardLogger(), room.Options{
		Game:       wizard.Options{Seed: cfg.DealSeed},
		CPUPlayers: cfg.CPUPlayers,
		BotSeed:    cfg.BotSeed,
	})

	go autoStart(server, cfg)

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, server))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"addr": srv.Addr,
		"game": server.UUID(),
	}).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// autoStart deals the first round once enough players are seated. The delay
// gives stragglers a window to grab a seat
func autoStart(server *room.Server, cfg config.Config) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if server.SeatCount() == 0 {
			continue
		}

		if server.SeatCount()+cfg.CPUPlayers < minPlayersToStart {
			continue
		}

		time.Sleep(time.Second * time.Duration(cfg.StartGameDelay))

		if err := server.Start(); err != nil {
			logrus.WithError(err).Fatal("could not start the game")
		}

		return
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if config.Instance().Log.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
