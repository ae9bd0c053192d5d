package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v2"

	"eventtickets/db"
	"eventtickets/entity"
	"eventtickets/pubsub/outbox"
)

func connect(c *cli.Context) (*sqlx.DB, error) {
	dbConn, err := db.Connect(c.String("postgres-url"))
	if err != nil {
		return nil, err
	}

	if err := db.InitializeDatabaseSchema(dbConn); err != nil {
		dbConn.Close()
		return nil, err
	}
	if err := outbox.InitializeSchema(dbConn, watermill.NopLogger{}); err != nil {
		dbConn.Close()
		return nil, err
	}

	return dbConn, nil
}

func listEvents(c *cli.Context) error {
	dbConn, err := connect(c)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	events, err := db.NewEventsPostgresRepository(dbConn).FindAll(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDATE\tLOCATION\tAVAILABLE\tMAX PER PERSON\tPRICE")
	for _, e := range events {
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%d\t%d\t%.2f\n",
			e.ID, e.Name, e.Date.Format("2006-01-02"), e.Location, e.AvailableTickets, e.MaxPerPerson, e.Price,
		)
	}
	return w.Flush()
}

func addEvent(c *cli.Context) error {
	date, _ := entity.ParseEventDate(c.String("date"))

	event := entity.Event{
		ID:               uuid.NewString(),
		Name:             c.String("name"),
		Date:             date,
		Location:         c.String("location"),
		Description:      c.String("description"),
		AvailableTickets: c.Int("tickets"),
		MaxPerPerson:     c.Int("max-per-person"),
		Price:            c.Float64("price"),
	}
	if err := event.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	dbConn, err := connect(c)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if err := db.NewEventsPostgresRepository(dbConn).Add(c.Context, event); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, event.ID)
	return nil
}

func salesReport(c *cli.Context) error {
	dbConn, err := connect(c)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	sales, err := db.NewSalesReadModel(dbConn).SalesReport(c.Context)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EVENT\tDATE\tLOCATION\tSOLD\tREVENUE")
	for _, s := range sales {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\n", s.EventName, s.Date.Format("2006-01-02"), s.Location, s.TicketsSold, s.Revenue)
	}
	return w.Flush()
}

func listDataLake(c *cli.Context) error {
	dbConn, err := connect(c)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	dataLake := db.NewDataLake(dbConn)

	var events []entity.DataLakeEvent
	if name := c.String("name"); name != "" {
		events, err = dataLake.GetEventsByName(c.Context, name)
	} else {
		events, err = dataLake.GetEvents(c.Context)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPUBLISHED AT\tNAME\tPAYLOAD")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.PublishedAt.UTC().Format(time.RFC3339), e.Name, e.Payload)
	}
	return w.Flush()
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ticketsctl",
		Usage: "Manage events and inspect ticket sales",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "postgres-url",
				EnvVars:  []string{"POSTGRES_URL"},
				Required: true,
			},
		},
		// exit codes are handled by main
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:  "events",
				Usage: "manage events",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "list events by date",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Usage: "show at most `N` events"},
						},
						Action: listEvents,
					},
					{
						Name:  "add",
						Usage: "add an event",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name", Required: true},
							&cli.StringFlag{Name: "date", Required: true, Usage: "YYYY-MM-DD"},
							&cli.StringFlag{Name: "location", Required: true},
							&cli.StringFlag{Name: "description", Required: true},
							&cli.IntFlag{Name: "tickets", Required: true},
							&cli.IntFlag{Name: "max-per-person", Value: 1},
							&cli.Float64Flag{Name: "price"},
						},
						Action: addEvent,
					},
				},
			},
			{
				Name:   "sales",
				Usage:  "print tickets sold and revenue per event",
				Action: salesReport,
			},
			{
				Name:  "datalake",
				Usage: "inspect published domain events",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "list stored events in publish order",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name", Usage: "only events of type `NAME`, e.g. TicketBooked_v1"},
						},
						Action: listDataLake,
					},
				},
			},
		},
	}
}

func main() {
	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitErr.ExitCode())
		}
		log.Fatal(err)
	}
}
