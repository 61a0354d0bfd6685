package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trivia-game-service/internal/app"
	"trivia-game-service/internal/config"
	"trivia-game-service/internal/domain"
	"trivia-game-service/internal/infra/memory"
	pgcontent "trivia-game-service/internal/infra/postgres"
	redisstore "trivia-game-service/internal/infra/redis"
	"trivia-game-service/internal/notify"
	transport "trivia-game-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.ContentLoader = memory.NewStaticContentLoader(sampleCategories())
	if pool != nil {
		loader = pgcontent.NewContentLoader(pool)
	}
	contentTTL := config.TTLDuration(cfg.Content.TTL, 10*time.Minute)
	categories := memory.NewCategoryRepository(loader, contentTTL)

	// Finished and in-flight games stay cached for an hour of idle time.
	gameTTL := config.TTLDuration(cfg.Game.TTL, time.Hour)
	var store app.GameStore
	if redisClient != nil {
		store = redisstore.NewGameStore(redisClient, gameTTL)
	} else {
		store = memory.NewGameStore(gameTTL)
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	picker := domain.NewRandomPicker(seed)

	service := app.NewGameService(store, categories, defaultRoster(), picker)

	var highscore app.HighscorePublisher
	if cfg.Highscore.Endpoint != "" {
		highscore = notify.NewHighscoreClient(cfg.Highscore.Endpoint, cfg.Highscore.UserKey)
	}
	var social app.SocialPublisher
	if cfg.Social.Endpoint != "" {
		social = notify.NewSocialClient(cfg.Social.Endpoint, cfg.Social.Token)
	}
	service.SetPublishers(highscore, social)

	gameHandler := transport.NewGameHandler(service)
	watchHandler := transport.NewWatchHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	gameHandler.Register(mux)
	mux.HandleFunc("/game/watch", watchHandler.ServeWatch)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting trivia game service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// defaultRoster is the player lineup for fresh games. The engine is generic
// over any ordered roster; how additional players join a browser session is
// an open product question, so the default plays solo.
func defaultRoster() []domain.Player {
	return []domain.Player{
		{ID: "p1", FirstName: "Player", LastName: "One", Gender: "unspecified"},
	}
}

// sampleCategories provides a minimal content pool; the Postgres loader
// replaces this when a database is configured.
func sampleCategories() []domain.Category {
	return []domain.Category{
		{
			ID:   "films",
			Name: domain.Text{EN: "Films", DE: "Filme"},
			Questions: []domain.Question{
				{
					ID:             "films-q1",
					Text:           domain.Text{EN: "Which films did Tim Burton direct?", DE: "Welche Filme hat Tim Burton gedreht?"},
					MaxTimeSeconds: 30,
					Points:         10,
					Choices: []domain.Choice{
						{ID: "films-q1-c1", Text: domain.Text{EN: "Ed Wood", DE: "Ed Wood"}, Correct: true},
						{ID: "films-q1-c2", Text: domain.Text{EN: "Sweeney Todd", DE: "Sweeney Todd"}, Correct: true},
						{ID: "films-q1-c3", Text: domain.Text{EN: "Blow", DE: "Blow"}, Correct: false},
						{ID: "films-q1-c4", Text: domain.Text{EN: "The Tourist", DE: "The Tourist"}, Correct: false},
					},
				},
				{
					ID:             "films-q2",
					Text:           domain.Text{EN: "Which film won the Oscar for Best Picture in 1995?", DE: "Welcher Film gewann 1995 den Oscar als bester Film?"},
					MaxTimeSeconds: 30,
					Points:         10,
					Choices: []domain.Choice{
						{ID: "films-q2-c1", Text: domain.Text{EN: "Forrest Gump", DE: "Forrest Gump"}, Correct: true},
						{ID: "films-q2-c2", Text: domain.Text{EN: "Pulp Fiction", DE: "Pulp Fiction"}, Correct: false},
						{ID: "films-q2-c3", Text: domain.Text{EN: "The Lion King", DE: "Der König der Löwen"}, Correct: false},
					},
				},
			},
		},
		{
			ID:   "capitals",
			Name: domain.Text{EN: "Capitals", DE: "Hauptstädte"},
			Questions: []domain.Question{
				{
					ID:             "capitals-q1",
					Text:           domain.Text{EN: "What is the capital of Austria?", DE: "Was ist die Hauptstadt von Österreich?"},
					MaxTimeSeconds: 20,
					Points:         10,
					Choices: []domain.Choice{
						{ID: "capitals-q1-c1", Text: domain.Text{EN: "Vienna", DE: "Wien"}, Correct: true},
						{ID: "capitals-q1-c2", Text: domain.Text{EN: "Graz", DE: "Graz"}, Correct: false},
						{ID: "capitals-q1-c3", Text: domain.Text{EN: "Salzburg", DE: "Salzburg"}, Correct: false},
					},
				},
				{
					ID:             "capitals-q2",
					Text:           domain.Text{EN: "Which cities are national capitals?", DE: "Welche Städte sind Hauptstädte?"},
					MaxTimeSeconds: 20,
					Points:         10,
					Choices: []domain.Choice{
						{ID: "capitals-q2-c1", Text: domain.Text{EN: "Bern", DE: "Bern"}, Correct: true},
						{ID: "capitals-q2-c2", Text: domain.Text{EN: "Canberra", DE: "Canberra"}, Correct: true},
						{ID: "capitals-q2-c3", Text: domain.Text{EN: "Zurich", DE: "Zürich"}, Correct: false},
						{ID: "capitals-q2-c4", Text: domain.Text{EN: "Sydney", DE: "Sydney"}, Correct: false},
					},
				},
			},
		},
	}
}
