package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/cupogo/andvari/utils/zlog"

	"github.com/enrapt/muninn/pkg/models/kb"
	"github.com/enrapt/muninn/pkg/services/stores"
	"github.com/enrapt/muninn/pkg/settings"
	"github.com/enrapt/muninn/pkg/web"
)

func main() {
	var zlogger *zap.Logger
	if settings.InDevelop() {
		zlogger, _ = zap.NewDevelopment()
	} else {
		zlogger, _ = zap.NewProduction()
	}
	sugar := zlogger.Sugar()
	zlog.Set(sugar)

	app := &cli.App{
		Name:    "muninn",
		Usage:   "chat relay bot with spreadsheet-like memory",
		Version: settings.Current.Version,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the webhook server",
				Action: runServe,
			},
			{
				Name:  "kb",
				Usage: "manage the knowledge corpus",
				Subcommands: []*cli.Command{
					{
						Name:  "import",
						Usage: "import (id, text) CSV and embed it into the corpus",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true},
						},
						Action: runImport,
					},
				},
			},
			{
				Name:  "usage",
				Usage: "show environment configuration",
				Action: func(c *cli.Context) error {
					return settings.Usage()
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		sugar.Fatalw("run fail", "err", err)
	}
}

func runServe(c *cli.Context) error {
	srv := web.New(web.Config{
		Addr:  settings.Current.HTTPListen,
		Debug: settings.InDevelop(),
	})

	idleClosed := make(chan struct{})
	ctx := context.Background()
	go func() {
		quit := make(chan os.Signal, 2)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		zlog.Get().Info("shuting down server...")
		if err := srv.Stop(ctx); err != nil {
			zlog.Get().Infow("server shutdown:", "err", err)
		}
		close(idleClosed)
	}()

	if err := srv.Serve(ctx); err != nil {
		zlog.Get().Infow("serve fali", "err", err)
	}

	<-idleClosed
	return nil
}

func runImport(c *cli.Context) error {
	f, err := os.Open(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	rows := stores.NewRedisRows(stores.SgtRC(), settings.Current.StorePrefix)
	corpus := stores.NewKnowledge(rows, settings.Current.CorpusName, kb.VectorLen)
	emb := stores.NewEmbedder(stores.NewOpenAIClient())
	return corpus.ImportCorpusCSV(c.Context, emb, f)
}
