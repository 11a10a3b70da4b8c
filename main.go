package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"livequiz-backend/internal/config"
	"livequiz-backend/internal/handlers"
	"livequiz-backend/internal/middleware"
	"livequiz-backend/internal/quiz"

	"github.com/coder/websocket"

	_ "embed"
)

//go:embed questions.yaml
var defaultQuestions []byte

func main() {
	cfg, err := config.LoadConfig("") // TODO: config flags
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	bank, err := loadBank(cfg)
	if err != nil {
		// No valid bank means the session could never leave the lobby.
		slog.Error("load question bank", slog.Any("error", err))
		os.Exit(1)
	}

	session := quiz.NewSession(bank)

	acceptOpts := websocket.AcceptOptions{
		InsecureSkipVerify: true, // Accepting all origins
	}
	quizHandler := handlers.QuizHandler(cfg, session, acceptOpts)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /quiz", middleware.ApplyDefaults(quizHandler))

	srv := http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	slog.Info("listening",
		slog.String("addr", srv.Addr),
		slog.Int("questions", bank.Len()))

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		slog.Error("serve", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadBank(cfg config.Config) (*quiz.Bank, error) {
	var r io.Reader = bytes.NewReader(defaultQuestions)

	if path := cfg.Quiz.QuestionsPath; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	return quiz.LoadBank(r)
}
