package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fedspend/awards-api/modules"
	"github.com/fedspend/awards-api/pkg/application"
	"github.com/fedspend/awards-api/pkg/configuration"
	"github.com/fedspend/awards-api/pkg/httpjson"
	"github.com/fedspend/awards-api/pkg/metrics"
	"github.com/fedspend/awards-api/pkg/middleware"
	"github.com/fedspend/awards-api/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:   pool,
		Logger: logger,
	})
	if err := modules.Load(app); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	app.RegisterMiddleware(
		middleware.WithLogger(logger),
		middleware.WithMetrics(),
		middleware.WithPool(pool),
	)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpjson.WriteError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpjson.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	srv := server.NewHTTPServer(app, notFound, notAllowed)
	logger.WithField("address", conf.Address).Info("listening")
	if err := srv.Start(conf.Address); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
