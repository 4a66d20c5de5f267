package routes

import (
	"net/http"

	"github.com/Dosada05/soccer-cup/handlers"
	"github.com/Dosada05/soccer-cup/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Tournament *handlers.TournamentHandler
	Group      *handlers.GroupHandler
	Team       *handlers.TeamHandler
	Player     *handlers.PlayerHandler
	Match      *handlers.MatchHandler
	Knockout   *handlers.KnockoutHandler
	Standings  *handlers.StandingsHandler
	Dashboard  *handlers.DashboardHandler
	Search     *handlers.SearchHandler
	Backup     *handlers.BackupHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
}

// SetupRoutes вешает все маршруты API на router. Чтение открыто, изменения только для организатора.
func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Post("/auth/login", h.Auth.Login)
	router.Get("/statistics", h.Dashboard.Stats)
	router.Get("/search", h.Search.Search)

	admin := func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.JWTSecret))
		r.Use(middleware.Authorize(middleware.RoleAdmin))
	}

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.List)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", h.Tournament.GetByID)
			r.Get("/matches", h.Tournament.ListMatches)
			r.Get("/teams", h.Team.ListByTournament)
			r.Get("/groups", h.Group.List)
			r.Get("/standings", h.Standings.Tournament)
			r.Get("/groups/standings", h.Standings.AllGroups)
			r.Get("/bracket", h.Knockout.Bracket)

			r.Group(func(r chi.Router) {
				admin(r)
				r.Put("/", h.Tournament.Update)
				r.Patch("/status", h.Tournament.UpdateStatus)
				r.Delete("/", h.Tournament.Delete)

				r.Post("/groups", h.Group.Create)
				r.Put("/groups/{groupID}", h.Group.Rename)
				r.Delete("/groups/{groupID}", h.Group.Delete)
				r.Post("/groups/{groupID}/generate-matches", h.Group.GenerateMatches)
				r.Post("/generate-all-group-matches", h.Group.GenerateAllMatches)

				r.Post("/qualification", h.Knockout.Qualify)
				r.Post("/knockout/matches", h.Knockout.CreateMatch)
				r.Delete("/knockout/matches", h.Knockout.ClearMatches)

				r.Post("/backup", h.Backup.Backup)
			})
		})

		r.Group(func(r chi.Router) {
			admin(r)
			r.Post("/", h.Tournament.Create)
		})
	})

	router.Route("/groups/{groupID}", func(r chi.Router) {
		r.Get("/", h.Group.GetByID)
		r.Get("/standings", h.Standings.Group)
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", h.Team.GetByID)
		r.Get("/{teamID}/standings", h.Standings.Team)
		r.Get("/{teamID}/players", h.Player.ListByTeam)

		r.Group(func(r chi.Router) {
			admin(r)
			r.Post("/", h.Team.Create)
			r.Put("/{teamID}", h.Team.Update)
			r.Put("/{teamID}/group", h.Team.AssignGroup)
			r.Delete("/{teamID}", h.Team.Delete)
			r.Post("/{teamID}/players", h.Player.Create)
		})
	})

	router.Route("/players/{playerID}", func(r chi.Router) {
		r.Get("/", h.Player.GetByID)

		r.Group(func(r chi.Router) {
			admin(r)
			r.Put("/stats", h.Player.UpdateStats)
			r.Delete("/", h.Player.Delete)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", h.Match.GetByID)

		r.Group(func(r chi.Router) {
			admin(r)
			r.Post("/", h.Match.Create)
			r.Put("/{matchID}", h.Match.Update)
			r.Delete("/{matchID}", h.Match.Delete)
			r.Post("/{matchID}/start", h.Match.Start)
			r.Post("/{matchID}/cancel", h.Match.Cancel)
			r.Post("/{matchID}/score", h.Match.Score)
			r.Post("/{matchID}/knockout-score", h.Knockout.Score)
			r.Post("/{matchID}/advance", h.Knockout.Advance)
		})
	})
}
