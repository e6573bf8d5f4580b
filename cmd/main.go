package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"recruitment-system/infrastructure"
	"recruitment-system/interfaces"
)

func main() {
	cfg := infrastructure.LoadConfig()

	db, err := infrastructure.NewMySQLConnection(cfg.DBDSN)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	store := infrastructure.NewStore(db)

	files, err := infrastructure.NewFileStore(cfg.UploadDir)
	if err != nil {
		logrus.Fatalf("upload dir: %v", err)
	}

	aiClient := infrastructure.NewAIClient(cfg.AIServiceURL)

	mailer := infrastructure.NewMailer(cfg)
	if mailer == nil {
		logrus.Warn("EMAIL_HOST not set, interview notifications disabled")
	}

	var events *infrastructure.EventPublisher
	if cfg.RabbitMQURL != "" {
		events, err = infrastructure.NewEventPublisher(cfg.RabbitMQURL)
		if err != nil {
			logrus.WithError(err).Warn("RabbitMQ unavailable, domain events disabled")
		} else {
			defer events.Close()
		}
	}

	router := gin.Default()
	router.MaxMultipartMemory = 10 << 20 // 10 MB upload cap
	interfaces.NewHTTPHandler(router, store, aiClient, mailer, events, files)

	logrus.Infof("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatal(err)
	}
}
