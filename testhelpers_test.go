//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adota-pet/service-adoption/internal/application"
	petDomain "github.com/adota-pet/service-adoption/internal/domain/pet"
	"github.com/adota-pet/service-adoption/internal/events"
	"github.com/adota-pet/service-adoption/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// adoptionStack holds wired-up adoption service components.
type adoptionStack struct {
	Service         *application.AdoptionService
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and
// returns a connected GORM DB with the schema migrated.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_adoption",
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

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_adoption sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.PetModel{},
		&repository.AdopterModel{},
		&repository.RequestModel{},
		&repository.AdoptionModel{},
	))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, events.TopicAdoptionEvents)

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

// setupAdoptionStack wires up the adoption service against real
// containers.
func setupAdoptionStack(t *testing.T, db *gorm.DB, brokers []string) *adoptionStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	petRepo := repository.NewGormPetRepository(db)
	adopterRepo := repository.NewGormAdopterRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)
	adoptionRepo := repository.NewGormAdoptionRepository(db)
	txManager := repository.NewGormTxManager(db)
	producer := events.NewProducer(brokers, logger)

	adoptionSvc := application.NewAdoptionService(
		txManager, requestRepo, adoptionRepo, petRepo, adopterRepo, producer, logger,
	)

	return &adoptionStack{
		Service:         adoptionSvc,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// seedAvailablePet inserts an available pet directly.
func seedAvailablePet(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	p, err := petDomain.NewPet(
		uuid.New(), "Rex", petDomain.SpeciesDog,
		time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
		"integration test pet", petDomain.SizeMedium, "playful",
	)
	require.NoError(t, err)
	require.NoError(t, repository.NewGormPetRepository(db).Save(context.Background(), p))
	return p.ID()
}

func requestInput(petID uuid.UUID, email string) application.CreateRequestInput {
	return application.CreateRequestInput{
		PetID:        petID,
		AdopterName:  "Maria Silva",
		AdopterEmail: email,
		AdopterPhone: "11999990000",
		Street:       "Rua das Flores",
		Number:       "123",
		Neighborhood: "Centro",
		City:         "Sao Paulo",
		State:        "SP",
	}
}

// consumeOneEvent reads from a Kafka topic until it finds an event of
// the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) events.CloudEvent {
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
		ce, err := events.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with
// "Unknown Topic".
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
