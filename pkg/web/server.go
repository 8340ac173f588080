package web

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ulule/limiter/v3"
	lmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	lmem "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/enrapt/muninn/pkg/models/kb"
	"github.com/enrapt/muninn/pkg/services/chatwork"
	"github.com/enrapt/muninn/pkg/services/relay"
	"github.com/enrapt/muninn/pkg/services/stores"
	"github.com/enrapt/muninn/pkg/settings"
)

type Service interface {
	Serve(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Notifier delivers a reply to the originating chat room.
type Notifier interface {
	SendMessage(ctx context.Context, roomID int64, body string) error
}

type Config struct {
	Addr  string
	Debug bool

	// optional overrides, wired from settings and redis when nil
	Rows     stores.RowStore
	Relay    *relay.Relay
	Notifier Notifier
}

type server struct {
	Addr string
	cfg  Config

	ar *chi.Mux     // app router
	hs *http.Server // http server

	relay    *relay.Relay
	hist     *stores.History
	elog     *stores.EventLog
	notifier Notifier

	replyTitle string
	secret     []byte // webhook signature key, empty disables verification
}

// New return new web server
func New(cfg Config) Service {
	ar := chi.NewMux()
	if cfg.Debug {
		ar.Use(middleware.Logger)
	}
	ar.Use(middleware.Recoverer, middleware.RealIP)

	s := &server{
		Addr: cfg.Addr, ar: ar,
		cfg: cfg,
	}

	rows := cfg.Rows
	if rows == nil {
		rows = stores.NewRedisRows(stores.SgtRC(), settings.Current.StorePrefix)
	}
	s.hist = stores.NewHistory(rows)
	s.elog = stores.NewEventLog(rows, settings.Current.EventLogName)

	preset, err := stores.LoadPreset()
	if err == nil && len(settings.Current.PresetFile) > 0 {
		logger().Infow("loaded preset", "file", settings.Current.PresetFile)
	}
	s.replyTitle = dftReplyTitle
	if len(preset.ReplyTitle) > 0 {
		s.replyTitle = preset.ReplyTitle
	}

	s.relay = cfg.Relay
	if s.relay == nil {
		oc := stores.NewOpenAIClient()
		s.relay = relay.New(relay.Config{
			History:        s.hist,
			Corpus:         stores.NewKnowledge(rows, settings.Current.CorpusName, kb.VectorLen),
			Retriever:      relay.NewRetriever(stores.NewEmbedder(oc)),
			Prompts:        relay.NewPromptBuilder(preset.Persona),
			Completer:      stores.NewCompleter(oc, preset),
			ResetSentinel:  settings.Current.ResetSentinel,
			GroundSentinel: settings.Current.GroundSentinel,
			ResetReply:     preset.ResetReply,
		})
	}

	s.notifier = cfg.Notifier
	if s.notifier == nil {
		s.notifier = chatwork.NewClient(settings.Current.ChatworkToken)
	}

	if len(settings.Current.WebhookSecret) > 0 {
		s.secret, err = base64.StdEncoding.DecodeString(settings.Current.WebhookSecret)
		if err != nil {
			logger().Infow("decode webhook secret fail", "err", err)
		}
	}

	s.strapRouter()

	s.hs = &http.Server{
		Addr:    s.Addr,
		Handler: s.ar,
	}

	if cfg.Debug {
		logger().Infow("routes:")
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			route = strings.Replace(route, "/*/", "/", -1)
			fmt.Fprintf(os.Stderr, "DEBUG: %-6s %-24s --> %s (%d mw)\n", method, route, nameOfFunction(handler), len(middlewares))
			return nil
		}

		if err := chi.Walk(ar, walkFunc); err != nil {
			logger().Infow("router walk fail", "err", err)
		}
	}
	return s
}

func (s *server) Serve(ctx context.Context) error {
	// Run HTTP server
	runErrChan := make(chan error)
	t := time.AfterFunc(time.Millisecond*200, func() {
		runErrChan <- s.hs.ListenAndServe()
	})

	defer t.Stop()
	logger().Infow("Listen on", "addr", s.hs.Addr)

	// Wait
	for {
		select {
		case runErr := <-runErrChan:
			if runErr != nil {
				logger().Infow("run http server failed",
					"err", runErr,
				)
				return runErr
			}
		case <-ctx.Done():
			//TODO Graceful shutdown
			logger().Info("http server has been stopped")
			return ctx.Err()
		}
	}
}

func (s *server) Stop(ctx context.Context) error {
	if err := s.hs.Shutdown(ctx); err != nil {
		logger().Fatalw("Server Shutdown", "err", err)
		return err
	}
	return nil
}

func (s *server) limitMw() func(http.Handler) http.Handler {
	rate, err := limiter.NewRateFromFormatted(settings.Current.WebhookLimit)
	if err != nil {
		logger().Infow("parse webhook limit fail", "limit", settings.Current.WebhookLimit, "err", err)
		rate = limiter.Rate{Period: time.Minute, Limit: 30}
	}
	mw := lmw.NewMiddleware(limiter.New(lmem.NewStore(), rate))
	return mw.Handler
}

const dftReplyTitle = "チャットGPTからの返信"

func envelope(title, text string) string {
	return "[info][title]" + title + "[/title]" + text + "[/info]"
}
