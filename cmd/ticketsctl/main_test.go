package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"eventtickets/db"
	"eventtickets/entity"
)

var postgresURL string

func TestMain(m *testing.M) {
	container, url := db.StartPostgresContainer()
	postgresURL = url

	code := m.Run()

	if err := container.Terminate(context.Background()); err != nil {
		fmt.Println("could not terminate postgres container:", err)
	}
	os.Exit(code)
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out

	err := app.Run(append([]string{"ticketsctl", "--postgres-url", postgresURL}, args...))
	return out.String(), err
}

func TestEvents_add_and_list(t *testing.T) {
	name := "CLI concert " + uuid.NewString()[:8]

	out, err := runApp(
		t,
		"events", "add",
		"--name", name,
		"--date", "2031-03-15",
		"--location", "Krakow",
		"--description", "Added from the command line",
		"--tickets", "40",
		"--max-per-person", "4",
		"--price", "12.5",
	)
	require.NoError(t, err)
	eventID := strings.TrimSpace(out)
	_, err = uuid.Parse(eventID)
	require.NoError(t, err, "add prints the new event ID, got %q", out)

	out, err = runApp(t, "events", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, []string{"ID", "NAME", "DATE", "LOCATION", "AVAILABLE", "MAX", "PER", "PERSON", "PRICE"}, strings.Fields(lines[0]))

	var row string
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, eventID) {
			row = line
		}
	}
	require.NotEmpty(t, row, "event %s not listed:\n%s", eventID, out)
	assert.Contains(t, row, name)
	assert.Equal(
		t,
		[]string{"2031-03-15", "Krakow", "40", "4", "12.50"},
		strings.Fields(row)[len(strings.Fields(row))-5:],
	)
}

func TestEvents_add_rejects_invalid_event(t *testing.T) {
	_, err := runApp(
		t,
		"events", "add",
		"--name", "Too short",
		"--date", "someday",
		"--location", "Krakow",
		"--description", "short",
		"--tickets", "0",
	)
	require.Error(t, err)

	exitErr, ok := err.(cli.ExitCoder)
	require.True(t, ok, "expected exit error, got %T", err)
	assert.Equal(t, 2, exitErr.ExitCode())
	assert.Contains(t, err.Error(), "date: Invalid date")
	assert.Contains(t, err.Error(), "description: Description must be at least 10 characters")
}

func TestDataLake_list(t *testing.T) {
	ctx := context.Background()

	dbConn, err := db.Connect(postgresURL)
	require.NoError(t, err)
	defer dbConn.Close()
	require.NoError(t, db.InitializeDatabaseSchema(dbConn))

	dataLake := db.NewDataLake(dbConn)
	publishedAt := time.Date(2031, 1, 2, 3, 4, 5, 0, time.UTC)

	booked := entity.DataLakeEvent{
		ID:          uuid.NewString(),
		PublishedAt: publishedAt,
		Name:        "TicketBooked_v1",
		Payload:     []byte(`{"ticket_id":"ticket-1"}`),
	}
	created := entity.DataLakeEvent{
		ID:          uuid.NewString(),
		PublishedAt: publishedAt.Add(time.Second),
		Name:        "EventCreated_v1",
		Payload:     []byte(`{"event_id":"event-1"}`),
	}
	require.NoError(t, dataLake.StoreEvent(ctx, booked))
	require.NoError(t, dataLake.StoreEvent(ctx, created))

	out, err := runApp(t, "datalake", "list")
	require.NoError(t, err)
	assert.Contains(t, out, booked.ID)
	assert.Contains(t, out, created.ID)
	assert.Contains(t, out, "2031-01-02T03:04:05Z")
	assert.Contains(t, out, "ticket-1")
	assert.Less(t, strings.Index(out, booked.ID), strings.Index(out, created.ID))

	out, err = runApp(t, "datalake", "list", "--name", "EventCreated_v1")
	require.NoError(t, err)
	assert.Contains(t, out, created.ID)
	assert.NotContains(t, out, booked.ID)
}
