//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/monastery360/service-travel/internal/application"
	bookingDomain "github.com/monastery360/service-travel/internal/domain/booking"
	"github.com/monastery360/service-travel/internal/domain/location"
	travelEvents "github.com/monastery360/service-travel/internal/events"
	"github.com/monastery360/service-travel/internal/repository"
	"github.com/monastery360/service-travel/internal/spreadsheet"
	"github.com/monastery360/service-travel/migrations"
	"github.com/monastery360/service-travel/pkg/database"
	"github.com/monastery360/service-travel/pkg/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const bookingTopic = "travel.bookings"

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// travelStack holds wired-up travel service components.
type travelStack struct {
	Travel          *application.TravelService
	Festivals       *application.FestivalService
	Consumer        *travelEvents.FestivalEventConsumer
	Mirror          *repository.GormFestivalRepository
	CleanupProducer func()
}

// straightPlanner skips the routing upstream.
type straightPlanner struct{}

func (straightPlanner) Route(_ context.Context, from, to location.Location) bookingDomain.Route {
	return bookingDomain.StraightLine(
		bookingDomain.LatLng{Lat: from.Lat, Lng: from.Lng},
		bookingDomain.LatLng{Lat: to.Lat, Lng: to.Lng},
	)
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a migrated GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()
	logger, _ := zap.NewDevelopment()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_travel",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := database.PostgresConfig{
		Host:     pgHost,
		Port:     pgPort.Port(),
		User:     "test",
		Password: "test",
		DBName:   "test_travel",
		SSLMode:  "disable",
	}

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = database.Connect(cfg, logger)
		return err == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(ctx, sqlDB, migrations.FS, logger))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, bookingTopic, travelEvents.TopicFestivalEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupTravelStack wires the travel and festival services against real infrastructure.
func setupTravelStack(t *testing.T, db *gorm.DB, brokers []string, sheetPath string) *travelStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	producer := kafka.NewProducer(brokers, logger)
	publisher := travelEvents.NewBookingPublisher(producer, bookingTopic, logger)
	travel := application.NewTravelService(
		repository.NewMemorySessionRepository(),
		straightPlanner{},
		bookingDomain.NewTierPricingStrategy(),
		publisher,
		application.SystemClock(),
		logger,
	)

	mirror := repository.NewGormFestivalRepository(db)
	festivals := application.NewFestivalService(spreadsheet.NewFestivalSheet(sheetPath), mirror, nil, logger)

	groupID := fmt.Sprintf("test-festivals-%s", uuid.New().String()[:8])
	consumer := travelEvents.NewFestivalEventConsumer(
		kafka.NewConsumer(brokers, groupID, travelEvents.TopicFestivalEvents, logger),
		festivals,
		logger,
	)

	return &travelStack{
		Travel:          travel,
		Festivals:       festivals,
		Consumer:        consumer,
		Mirror:          mirror,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// writeFestivalSheet writes rows under a header row into a fresh workbook.
func writeFestivalSheet(t *testing.T, header []string, rows ...[]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &headerRow))
	for i, row := range rows {
		r := row
		require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &r))
	}

	path := filepath.Join(t.TempDir(), "festivals.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce.ID, ce)
	require.NoError(t, err, "failed to publish event")
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
