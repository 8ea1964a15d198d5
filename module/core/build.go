package core

import (
	"database/sql"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handler "github.com/jschady/geodorm/module/core/internal/handler/http"
	"github.com/jschady/geodorm/module/core/internal/handler/subscriber"
	"github.com/jschady/geodorm/module/core/internal/metrics"
	"github.com/jschady/geodorm/module/core/internal/repository/cache/redis"
	"github.com/jschady/geodorm/module/core/internal/repository/database/postgres"
	"github.com/jschady/geodorm/module/core/internal/repository/publisher/rabbitmq"
	"github.com/jschady/geodorm/module/core/service"
)

const rosterCacheTTL = 30 * time.Second

type Module struct {
	PresenceSvc *service.PresenceService
	RosterSvc   *service.RosterService
	GeofenceSvc *service.GeofenceService

	presenceHandler *handler.PresenceHandler
	geofenceHandler *handler.GeofenceHandler
	subscriber      *subscriber.PingSubscriber
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, redisClient *goredis.Client, log *logrus.Logger) (*Module, error) {
	presenceRepo := postgres.NewPresenceRepo(db)
	rosterRepo := postgres.NewRosterRepo(db)
	geofenceRepo := postgres.NewGeofenceRepo(db)
	rosterCache := redis.NewRosterCache(redisClient, rosterCacheTTL)

	statusPub, err := rabbitmq.NewStatusPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("status publisher: %w", err)
	}

	presenceSvc := service.NewPresenceService(presenceRepo, statusPub, rosterCache, log)
	rosterSvc := service.NewRosterService(rosterRepo, rosterCache, log)
	geofenceSvc := service.NewGeofenceService(geofenceRepo)

	ph := handler.NewPresenceHandler(rosterSvc, presenceSvc)
	gh := handler.NewGeofenceHandler(geofenceSvc)
	sub := subscriber.NewPingSubscriber(mqttClient, presenceSvc, log)

	return &Module{
		PresenceSvc:     presenceSvc,
		RosterSvc:       rosterSvc,
		GeofenceSvc:     geofenceSvc,
		presenceHandler: ph,
		geofenceHandler: gh,
		subscriber:      sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.presenceHandler.Register(r)
	m.geofenceHandler.Register(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
