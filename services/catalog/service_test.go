package catalog

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"classfinder-backend/lib/testutil"
	"classfinder-backend/services/catalog/db"

	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
    "classes": [
        {
            "code": "CSE115A",
            "name": "Intro Software Eng",
            "number": 12345,
            "instructors": [
                "Staff",
                "Jullig,R.K."
            ],
            "meetings": [
                [
                    "Soc Sci 2 075",
                    "MWF 10:40AM-11:45AM"
                ],
                [
                    "",
                    "TuTh 01:00PM-02:05PM"
                ]
            ],
            "mode": "In Person",
            "last_updated": "2022-09-01 00:00:00"
        },
        {
            "code": "CSE293",
            "name": "Advanced Topics",
            "number": 44444,
            "instructors": [
                "Staff"
            ],
            "meetings": [
            ],
            "mode": "Asynchronous Online",
            "last_updated": "2022-09-01 00:00:00"
        }
    ]
}
`

func setupService(t *testing.T) (Service, func()) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "catalog",
		DbSchema: db.Schema,
	})
	return NewService(res.DB), cleanup
}

func TestLoadDocument(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	inserted, err := svc.LoadDocument(ctx, "fall2022", strings.NewReader(sampleDocument))
	require.NoError(t, err)
	require.Equal(t, 3, inserted)

	classes, err := svc.Classes(ctx, "fall2022")
	require.NoError(t, err)
	require.Len(t, classes, 3)

	require.Equal(t, db.Class{
		Term:        "fall2022",
		Code:        "CSE115A",
		Name:        "Intro Software Eng",
		Number:      12345,
		Instructor:  "Staff, Jullig,R.K.",
		Room:        sql.NullString{String: "Soc Sci 2 075", Valid: true},
		Days:        sql.NullString{String: "MWF 10:40AM-11:45AM", Valid: true},
		Mode:        "In Person",
		LastUpdated: "2022-09-01 00:00:00",
	}, classes[0])

	// the online meeting has no room
	require.False(t, classes[1].Room.Valid)
	require.Equal(t, "TuTh 01:00PM-02:05PM", classes[1].Days.String)

	// the meeting-less class still gets one row
	require.Equal(t, "CSE293", classes[2].Code)
	require.False(t, classes[2].Room.Valid)
	require.False(t, classes[2].Days.Valid)
}

func TestLoadDocumentReplacesTerm(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.LoadDocument(ctx, "fall2022", strings.NewReader(sampleDocument))
	require.NoError(t, err)
	_, err = svc.LoadDocument(ctx, "fall2022", strings.NewReader(sampleDocument))
	require.NoError(t, err)

	classes, err := svc.Classes(ctx, "fall2022")
	require.NoError(t, err)
	require.Len(t, classes, 3)
}

func TestLoadDocumentKeepsOtherTerms(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := svc.LoadDocument(ctx, "fall2022", strings.NewReader(sampleDocument))
	require.NoError(t, err)
	_, err = svc.LoadDocument(ctx, "winter2023", strings.NewReader(sampleDocument))
	require.NoError(t, err)

	fall, err := svc.Classes(ctx, "fall2022")
	require.NoError(t, err)
	require.Len(t, fall, 3)
	winter, err := svc.Classes(ctx, "winter2023")
	require.NoError(t, err)
	require.Len(t, winter, 3)
}

func TestLoadDocumentRejectsGarbage(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.LoadDocument(context.Background(), "fall2022", strings.NewReader("not json"))
	require.Error(t, err)

	// a failed load leaves nothing behind
	classes, err := svc.Classes(context.Background(), "fall2022")
	require.NoError(t, err)
	require.Empty(t, classes)
}

func TestLoadDocumentCollapsesLegacyCancelled(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	doc := `{"classes":[{"code":"A","name":"a","number":1,"instructors":["Staff"],
	    "meetings":[["","Cancelled Cancelled"]],"mode":"In Person",
	    "last_updated":"2022-09-01 00:00:00"}]}`
	_, err := svc.LoadDocument(ctx, "fall2022", strings.NewReader(doc))
	require.NoError(t, err)

	classes, err := svc.Classes(ctx, "fall2022")
	require.NoError(t, err)
	require.Len(t, classes, 1)
	require.Equal(t, "Cancelled", classes[0].Days.String)
}

func TestLoadBuildings(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	inserted, err := svc.LoadBuildings(ctx, strings.NewReader(
		"Social Sciences 2,ChIJa0000000000000000001\nKresge Classroom,ChIJa0000000000000000002\n",
	))
	require.NoError(t, err)
	require.Equal(t, 2, inserted)

	// loading again upserts rather than duplicating
	inserted, err = svc.LoadBuildings(ctx, strings.NewReader(
		"Social Sciences 2,ChIJa0000000000000000009\n",
	))
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	buildings, err := svc.Buildings(ctx)
	require.NoError(t, err)
	require.Equal(t, []db.Building{
		{Name: "Kresge Classroom", PlaceId: "ChIJa0000000000000000002"},
		{Name: "Social Sciences 2", PlaceId: "ChIJa0000000000000000009"},
	}, buildings)
}

func TestLoadBuildingsRejectsBadRow(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.LoadBuildings(context.Background(), strings.NewReader("only-one-column\n"))
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	require.NoError(t, svc.Ping(context.Background()))
}

func TestRenderClasses(t *testing.T) {
	var out strings.Builder
	RenderClasses(&out, []db.Class{
		{Code: "CSE115A", Name: "Intro Software Eng", Number: 12345,
			Instructor: "Staff", Mode: "In Person"},
	})
	require.Contains(t, out.String(), "CSE115A")
	require.Contains(t, out.String(), "TBD")
}
