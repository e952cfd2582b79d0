package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/stoune2024/go-user-api/internal/auth"
	"github.com/stoune2024/go-user-api/internal/config"
	"github.com/stoune2024/go-user-api/internal/external"
	"github.com/stoune2024/go-user-api/internal/httpapi"
	"github.com/stoune2024/go-user-api/internal/store"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Debug),
		glog.WithName("userapi"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(goerrors.ToSlogAttributes),
	)

	cfg := config.LoadConfig()

	fmt.Println("============")
	fmt.Println(print.MaybeHighlightJSON(cfg))
	fmt.Println("============")

	users := store.NewUserStore(store.WithLatency(cfg.StoreLatency))

	tokens := auth.NewTokenService(cfg, lgr.GetLogger("auth:tokens"))

	auther := auth.NewAuthenticator(users, tokens).
		WithLogger(lgr.GetLogger("auth"))

	app := httpapi.New(httpapi.Config{
		Auther:     auther,
		Tokens:     tokens,
		Users:      users,
		Upstream:   external.NewClient(cfg.UpstreamURL),
		CookieName: cfg.CookieName,
		CookieTTL:  cfg.AccessTokenTTL,
		Logger:     lgr.GetLogger("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			lgr.GetLogger("http").Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	lgr.GetLogger("http").Info("listening", "addr", cfg.HTTPAddr)

	WaitExitSignal()

	if err := app.Shutdown(); err != nil {
		lgr.GetLogger("http").Error("shutdown error", "error", err)
	}
}

// WaitExitSignal blocks until the process receives a termination signal.
func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
