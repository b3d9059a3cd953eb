package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Class struct {
	Term        string
	Code        string
	Name        string
	Number      int64
	Instructor  string
	Room        sql.NullString
	Days        sql.NullString
	Mode        string
	LastUpdated string
}

const insertClass = `
INSERT INTO classes (term, code, name, number, instructor, room, days, mode, last_updated)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) InsertClass(ctx context.Context, c Class) error {
	_, err := q.db.ExecContext(ctx, insertClass,
		c.Term, c.Code, c.Name, c.Number, c.Instructor,
		c.Room, c.Days, c.Mode, c.LastUpdated,
	)
	return err
}

const deleteClassesByTerm = `
DELETE FROM classes WHERE term = ?
`

func (q *Queries) DeleteClassesByTerm(ctx context.Context, term string) error {
	_, err := q.db.ExecContext(ctx, deleteClassesByTerm, term)
	return err
}

const listClassesByTerm = `
SELECT term, code, name, number, instructor, room, days, mode, last_updated
    FROM classes
    WHERE term = ?
    ORDER BY id
`

func (q *Queries) ListClassesByTerm(ctx context.Context, term string) ([]Class, error) {
	rows, err := q.db.QueryContext(ctx, listClassesByTerm, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Class
	for rows.Next() {
		var c Class
		err := rows.Scan(
			&c.Term, &c.Code, &c.Name, &c.Number, &c.Instructor,
			&c.Room, &c.Days, &c.Mode, &c.LastUpdated,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const countClassesByTerm = `
SELECT COUNT(*) FROM classes WHERE term = ?
`

func (q *Queries) CountClassesByTerm(ctx context.Context, term string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countClassesByTerm, term).Scan(&count)
	return count, err
}

type Building struct {
	Name    string
	PlaceId string
}

const insertBuilding = `
INSERT INTO buildings (name, place_id)
    VALUES (?, ?)
    ON CONFLICT (name) DO UPDATE SET place_id = excluded.place_id
`

func (q *Queries) InsertBuilding(ctx context.Context, b Building) error {
	_, err := q.db.ExecContext(ctx, insertBuilding, b.Name, b.PlaceId)
	return err
}

const listBuildings = `
SELECT name, place_id FROM buildings ORDER BY name
`

func (q *Queries) ListBuildings(ctx context.Context) ([]Building, error) {
	rows, err := q.db.QueryContext(ctx, listBuildings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Building
	for rows.Next() {
		var b Building
		if err := rows.Scan(&b.Name, &b.PlaceId); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
