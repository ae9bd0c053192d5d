package db

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventtickets/pubsub/outbox"
)

func TestMain(m *testing.M) {
	if os.Getenv("POSTGRES_URL") == "" {
		container, url := StartPostgresContainer()
		os.Setenv("POSTGRES_URL", url)

		code := m.Run()

		if err := container.Terminate(context.Background()); err != nil {
			fmt.Println("could not terminate postgres container:", err)
		}
		os.Exit(code)
	}

	os.Exit(m.Run())
}

func getTestDb(t *testing.T) *sqlx.DB {
	t.Helper()

	dbConn := GetDb(t)
	require.NoError(t, outbox.InitializeSchema(dbConn, watermill.NopLogger{}))

	return dbConn
}
