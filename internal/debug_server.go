package internal

import (
	"barber-lab/codec"
	"barber-lab/repositories"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

const defaultPrefix = "msg:conv:"

type InspectRow struct {
	Key       string
	Type      string
	Timestamp string
	EntityID  string
	Namespace string
	Detail    string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// NewInspectHandler lists the Badger entries under the "prefix" query parameter.
func NewInspectHandler(db *badger.DB, mapper RowMapper, statsProvider StatsProvider) http.Handler {
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))
	if mapper == nil {
		mapper = KeyMapper
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = defaultPrefix
		}
		data := PageData{Prefix: prefix, Stats: make(map[string]any)}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		err := db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				if err := item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})
}

// StartDebugServer serves the inspector in the background until the process exits.
func StartDebugServer(log *slog.Logger, db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	mux.Handle(endpoint, NewInspectHandler(db, mapper, statsProvider))
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux); err != nil {
			log.Error("Debug server stopped", "port", port, "error", err)
		}
	}()
}

// KeyMapper decodes the documents written by the repositories.
func KeyMapper(key string, val []byte) InspectRow {
	row := InspectRow{
		Key:       strings.ReplaceAll(key, "\x00", "/"),
		Type:      "RAW",
		Timestamp: "--:--:--",
		EntityID:  "--------",
		Namespace: "default",
		Detail:    "Size: " + strconv.Itoa(len(val)) + " bytes",
	}

	switch {
	case strings.HasPrefix(key, "msg:"):
		row.Type = "MESSAGE"
		var m repositories.DiskMessage
		if err := codec.Unmarshal(val, &m); err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.Namespace = m.Sender + " -> " + m.Receiver
		row.Timestamp = m.At.Format(time.TimeOnly)
		row.EntityID = shortID(m.ID.String())
		row.Detail = m.Content
	case strings.HasPrefix(key, "appt:"):
		row.Type = "APPOINTMENT"
		var a repositories.DiskAppointment
		if err := codec.Unmarshal(val, &a); err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.Namespace = a.Shop
		row.Timestamp = a.At.Format(time.TimeOnly)
		row.EntityID = shortID(a.ID.String())
		row.Detail = fmt.Sprintf("%s for %s (%s) at %s", a.Service, a.CustomerName, a.CustomerPhone, a.Time)
	case strings.HasPrefix(key, "profile:"):
		row.Type = "PROFILE"
		p, err := repositories.DecodeProfile(val)
		if err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.Namespace = string(p.Kind)
		row.EntityID = string(p.ID)
		row.Detail = p.DisplayName()
	}
	return row
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
