package tests

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"

	"eventtickets/db"
)

// set by TestMain from the containers started for this package
var (
	postgresURL string
	redisURL    string
)

func TestMain(m *testing.M) {
	containers, err := startDependencies()
	if err != nil {
		fmt.Println("could not start test dependencies:", err)
		terminate(containers)
		os.Exit(1)
	}

	code := m.Run()

	terminate(containers)
	os.Exit(code)
}

func startDependencies() ([]testcontainers.Container, error) {
	postgresContainer, connStr := db.StartPostgresContainer()
	postgresURL = connStr
	containers := []testcontainers.Container{postgresContainer}

	dbConn, err := sqlx.Open("postgres", postgresURL)
	if err != nil {
		return containers, err
	}
	defer dbConn.Close()

	if err := db.InitializeDatabaseSchema(dbConn); err != nil {
		return containers, fmt.Errorf("could not initialize schema: %w", err)
	}

	redisContainer, addr, err := startRedisContainer()
	if err != nil {
		return containers, err
	}
	redisURL = addr

	return append(containers, redisContainer), nil
}

func terminate(containers []testcontainers.Container) {
	for _, container := range containers {
		if err := container.Terminate(context.Background()); err != nil {
			fmt.Println("could not terminate container:", err)
		}
	}
}

func startRedisContainer() (testcontainers.Container, string, error) {
	ctx := context.Background()

	redisContainer, err := redis.RunContainer(ctx, testcontainers.WithImage("docker.io/redis:7"))
	if err != nil {
		return nil, "", fmt.Errorf("could not start redis: %w", err)
	}

	uri, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		return redisContainer, "", err
	}

	return redisContainer, strings.TrimPrefix(uri, "redis://"), nil
}
