// Package catalog stores scraped class documents and building data, and is
// the sole consumer of the document format the scraper emits.
package catalog

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"classfinder-backend/services/catalog/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/catalog")

// Document mirrors the file the scraper writes. Meetings are
// [location, time] 2-tuples; location is "" for online sessions.
type Document struct {
	Classes []DocumentClass `json:"classes"`
}

type DocumentClass struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Number      int64       `json:"number"`
	Instructors []string    `json:"instructors"`
	Meetings    [][2]string `json:"meetings"`
	Mode        string      `json:"mode"`
	LastUpdated string      `json:"last_updated"`
}

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

// OpenDatabase opens a sqlite file (or a remote libsql database when the
// dsn carries a url scheme) and makes sure the schema exists.
func OpenDatabase(dsn string) (*sql.DB, error) {
	driver := "sqlite"
	if strings.Contains(dsn, "://") {
		driver = "libsql"
	}
	database, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(db.Schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		database.Close()
		return nil, err
	}
	return database, nil
}

func (s Service) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// LoadDocument reads a scraped class document and inserts its records under
// the given term label, replacing whatever that term held before. Each
// meeting becomes one row; a class with no meetings still gets a row with
// NULL room and days.
func (s Service) LoadDocument(ctx context.Context, term string, r io.Reader) (int, error) {
	ctx, span := tracer.Start(ctx, "LoadDocument")
	defer span.End()
	span.SetAttributes(attribute.String("term", term))

	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "document parse failed")
		return 0, fmt.Errorf("catalog: parse document: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	if err := txqry.DeleteClassesByTerm(ctx, term); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	inserted := 0
	for _, class := range doc.Classes {
		for _, row := range classRows(term, class) {
			if err := txqry.InsertClass(ctx, row); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return 0, err
			}
			inserted++
		}
		slog.DebugContext(ctx, "loaded class", "code", class.Code, "number", class.Number)
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return inserted, nil
}

// classRows flattens one document entry into insertable rows, one per
// meeting. An empty room becomes NULL and the legacy "Cancelled Cancelled"
// duplication is collapsed in case an old document is loaded.
func classRows(term string, class DocumentClass) []db.Class {
	base := db.Class{
		Term:        term,
		Code:        class.Code,
		Name:        class.Name,
		Number:      class.Number,
		Instructor:  strings.Join(class.Instructors, ", "),
		Mode:        class.Mode,
		LastUpdated: class.LastUpdated,
	}

	if len(class.Meetings) == 0 {
		return []db.Class{base}
	}

	rows := make([]db.Class, 0, len(class.Meetings))
	for _, meeting := range class.Meetings {
		row := base
		if meeting[0] != "" {
			row.Room = sql.NullString{String: meeting[0], Valid: true}
		}
		days := strings.ReplaceAll(meeting[1], "Cancelled Cancelled", "Cancelled")
		if days != "" {
			row.Days = sql.NullString{String: days, Valid: true}
		}
		rows = append(rows, row)
	}
	return rows
}

// LoadBuildings reads name,place_id csv rows and upserts them.
func (s Service) LoadBuildings(ctx context.Context, r io.Reader) (int, error) {
	ctx, span := tracer.Start(ctx, "LoadBuildings")
	defer span.End()

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "csv parse failed")
		return 0, err
	}

	inserted := 0
	for _, record := range records {
		if len(record) != 2 {
			err := fmt.Errorf("catalog: building row has %d columns, want 2", len(record))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return inserted, err
		}
		err := s.qry.InsertBuilding(ctx, db.Building{Name: record[0], PlaceId: record[1]})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (s Service) Classes(ctx context.Context, term string) ([]db.Class, error) {
	return s.qry.ListClassesByTerm(ctx, term)
}

func (s Service) Buildings(ctx context.Context) ([]db.Building, error) {
	return s.qry.ListBuildings(ctx)
}
