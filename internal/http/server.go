package http

import (
	"net/http"

	"github.com/mkrogh/pokernight/internal/config"
	"github.com/mkrogh/pokernight/internal/ledger"
	"github.com/mkrogh/pokernight/internal/metrics"
	"github.com/mkrogh/pokernight/internal/notifier"
	"github.com/mkrogh/pokernight/internal/processor"
	"github.com/mkrogh/pokernight/internal/pubsub"
)

func NewServer(store ledger.LedgerStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, metricsStore metrics.MetricsStore, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		MetricsStore:   metricsStore,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/metrics/counters", Chain(s.CountersHandler(), paramsMiddleware))
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/players/add", Chain(s.AddPlayerHandler(), paramsMiddleware))
	s.Router.Handle("/players/remove", Chain(s.RemovePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/sessions", Chain(s.ListSessionsHandler(), paramsMiddleware))
	s.Router.Handle("/sessions/add", Chain(s.AddSessionHandler(), paramsMiddleware))
	s.Router.Handle("/sessions/update", Chain(s.UpdateSessionHandler(), paramsMiddleware))
	s.Router.Handle("/sessions/remove", Chain(s.RemoveSessionHandler(), paramsMiddleware))
	s.Router.Handle("/buyins/add", Chain(s.AddBuyInHandler(), paramsMiddleware))
	s.Router.Handle("/seats/suggest", Chain(s.SeatSuggestionHandler(), paramsMiddleware))
	s.Router.Handle("/results/update", Chain(s.UpdateResultsHandler(), paramsMiddleware))
	s.Router.Handle("/reports/sessions", Chain(s.SessionReportHandler(), paramsMiddleware))
	s.Router.Handle("/reports/winnings", Chain(s.WinningsReportHandler(), paramsMiddleware))
	s.Router.Handle("/reports/buyins", Chain(s.BuyInsReportHandler(), paramsMiddleware))
	s.Router.Handle("/process", Chain(s.ProcessSessionsHandler(), paramsMiddleware))
	s.Router.Handle("/export", Chain(s.ExportHandler(), paramsMiddleware))
	s.Router.Handle("/import", Chain(s.ImportHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard-refresh", Chain(s.LeaderboardRefreshHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/standings", Chain(s.StandingsCommandHandler(), paramsMiddleware, s.slackVerifyMiddleware))
	s.Router.Handle("/slack/command/player-winnings", Chain(s.PlayerWinningsCommandHandler(), paramsMiddleware, s.slackVerifyMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
