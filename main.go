package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"

	"eventtickets/app"
	"eventtickets/config"
	"eventtickets/db"
	"eventtickets/pubsub"
	"eventtickets/tracing"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log.Init(cfg.Level())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dbConn, err := db.Connect(cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	defer dbConn.Close()

	redisClient := pubsub.NewRedisClient(cfg.RedisAddr)
	defer redisClient.Close()

	traceProvider := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint)

	err = app.New(
		app.Config{
			HTTPAddr:      cfg.HTTPAddr,
			SecureCookies: cfg.Production,
		},
		dbConn,
		redisClient,
		traceProvider,
	).Run(ctx)
	if err != nil {
		panic(err)
	}
}
