// Command appointments prints the booking requests of one shop.
// The store is opened read-only so it can run next to the master.
package main

import (
	"barber-lab/domain"
	"barber-lab/repositories"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	shop := flag.String("shop", "", "Shop identity")
	flag.Parse()
	if !domain.Identity(*shop).Valid() {
		log.Fatal("a -shop identity is required")
	}

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	appointments, err := repositories.NewAppointmentRepository(db, logs.GetLoggerFromString("ERROR")).GetAppointments(domain.Identity(*shop))
	if err != nil {
		log.Fatal(err)
	}
	render(os.Stdout, repositories.FromDiskAppointments(appointments))
}

func render(w io.Writer, appointments []domain.Appointment) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Submitted", "Customer", "Phone", "Service", "Time", "ID"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, a := range appointments {
		table.Append([]string{
			a.CreatedAt.Local().Format(time.DateTime),
			a.CustomerName,
			a.CustomerPhone,
			a.Service,
			a.Time,
			a.ID.String()[:8],
		})
	}
	table.Render()
	fmt.Fprintf(w, "%d appointment(s)\n", len(appointments))
}
