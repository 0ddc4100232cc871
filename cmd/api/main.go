package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"SafeCampus/internal/config"
	"SafeCampus/internal/model"
	"SafeCampus/internal/pkg"
	"SafeCampus/internal/repository/mysql"
	"SafeCampus/internal/repository/redis"
	"SafeCampus/internal/router"
	"SafeCampus/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	flag.Parse()
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*configPath = v
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	if err = pkg.InitJWT(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret); err != nil {
		logrus.WithError(err).Fatal("init jwt")
	}

	if err = mysql.InitDB(cfg.MySQL.DSN); err != nil {
		logrus.WithError(err).Fatal("connect mysql")
	}

	if err = redis.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logrus.WithError(err).Fatal("connect redis")
	}
	defer redis.Close()

	if err = mysql.DB.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.SocialOutbox{},
		&model.Post{},
		&model.Report{},
		&model.Tip{},
	); err != nil {
		logrus.WithError(err).Fatal("auto migrate")
	}

	if err = os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		logrus.WithError(err).Fatal("create upload dir")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sender := service.Sender(service.LogSender)
	if len(cfg.Kafka.Brokers) > 0 {
		producer := pkg.NewEventProducer(cfg.Kafka)
		defer producer.Close()
		sender = service.KafkaSender(producer)
	} else {
		logrus.Info("no kafka brokers configured, follow events go to the log")
	}

	go service.NewOutboxRelayer(sender).Run(ctx)
	go service.NewFollowCountReconciler().Run(ctx)

	r := router.InitRouter(cfg)
	if err = r.Run(cfg.Server.Addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
