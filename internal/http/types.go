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

type Server struct {
	Store          ledger.LedgerStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	MetricsStore   metrics.MetricsStore
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
