package catalog

import (
	"io"

	"classfinder-backend/services/catalog/db"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderClasses prints stored classes as a table, NULL room shown as TBD
// the way the registrar displays it.
func RenderClasses(w io.Writer, rows []db.Class) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Code", "Name", "Number", "Instructor", "Room", "Days", "Mode"})

	for _, r := range rows {
		room := "TBD"
		if r.Room.Valid {
			room = r.Room.String
		}
		days := ""
		if r.Days.Valid {
			days = r.Days.String
		}
		t.AppendRow(table.Row{r.Code, r.Name, r.Number, r.Instructor, room, days, r.Mode})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
}
