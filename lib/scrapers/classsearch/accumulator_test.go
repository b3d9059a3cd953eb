package classsearch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sliceSink struct {
	recs []ClassRecord
}

func (s *sliceSink) WriteRecord(rec ClassRecord) error {
	s.recs = append(s.recs, rec)
	return nil
}

func feedFields(t *testing.T, acc *accumulator, fields []field) {
	t.Helper()
	for _, f := range fields {
		require.NoError(t, acc.consume(f))
	}
}

func TestAccumulatorAssemblesRecord(t *testing.T) {
	sink := &sliceSink{}
	acc := newAccumulator("2022-09-01 00:00:00", sink)

	feedFields(t, acc, []field{
		{kind: fieldHeading, code: "CSE115A", name: "Intro Software Eng"},
		{kind: fieldNumber, number: 12345},
		{kind: fieldInstructors, instructors: []string{"Jullig,R.K."}},
		{kind: fieldLocation, location: "Soc Sci 2 075"},
		{kind: fieldDayTime, times: []string{"MWF 10:40AM-11:45AM"}},
		{kind: fieldMode, mode: "In Person"},
	})

	require.Len(t, sink.recs, 1)
	require.Equal(t, ClassRecord{
		Code:        "CSE115A",
		Name:        "Intro Software Eng",
		Number:      12345,
		Instructors: []string{"Jullig,R.K."},
		Meetings:    []Meeting{{Location: "Soc Sci 2 075", Time: "MWF 10:40AM-11:45AM"}},
		Mode:        "In Person",
		LastUpdated: "2022-09-01 00:00:00",
	}, sink.recs[0])
	require.Equal(t, 1, acc.emitted)
}

func TestAccumulatorTwoTimeBlockYieldsTwoMeetings(t *testing.T) {
	sink := &sliceSink{}
	acc := newAccumulator("2022-09-01 00:00:00", sink)

	feedFields(t, acc, []field{
		{kind: fieldHeading, code: "CSE101", name: "Algorithms"},
		{kind: fieldNumber, number: 22222},
		{kind: fieldInstructors, instructors: []string{"Staff"}},
		{kind: fieldLocation, location: "Kresge Clrm 327"},
		{kind: fieldDayTime, times: []string{"MWF 09:20AM-10:25AM", "TuTh 01:00PM-02:05PM"}},
		{kind: fieldMode, mode: "In Person"},
	})

	require.Len(t, sink.recs, 1)
	require.Equal(t, []Meeting{
		{Location: "Kresge Clrm 327", Time: "MWF 09:20AM-10:25AM"},
		{Location: "Kresge Clrm 327", Time: "TuTh 01:00PM-02:05PM"},
	}, sink.recs[0].Meetings)
}

func TestAccumulatorMultipleMeetingBlocks(t *testing.T) {
	sink := &sliceSink{}
	acc := newAccumulator("2022-09-01 00:00:00", sink)

	feedFields(t, acc, []field{
		{kind: fieldHeading, code: "CHEM1A", name: "General Chemistry"},
		{kind: fieldNumber, number: 33333},
		{kind: fieldInstructors, instructors: []string{"Staff"}},
		{kind: fieldLocation, location: "Phys Sciences 110"},
		{kind: fieldDayTime, times: []string{"MWF 08:00AM-09:05AM"}},
		{kind: fieldLocation, location: ""},
		{kind: fieldDayTime, times: []string{"W 05:20PM-06:55PM"}},
		{kind: fieldMode, mode: "Hybrid"},
	})

	require.Len(t, sink.recs, 1)
	require.Equal(t, []Meeting{
		{Location: "Phys Sciences 110", Time: "MWF 08:00AM-09:05AM"},
		{Location: "", Time: "W 05:20PM-06:55PM"},
	}, sink.recs[0].Meetings)
}

func TestAccumulatorNoMeetingsRecord(t *testing.T) {
	sink := &sliceSink{}
	acc := newAccumulator("2022-09-01 00:00:00", sink)

	feedFields(t, acc, []field{
		{kind: fieldHeading, code: "CSE293", name: "Advanced Topics"},
		{kind: fieldNumber, number: 44444},
		{kind: fieldInstructors, instructors: []string{"Staff"}},
		{kind: fieldMode, mode: "Asynchronous Online"},
	})

	require.Len(t, sink.recs, 1)
	require.Empty(t, sink.recs[0].Meetings)
}

func TestAccumulatorRejectsOutOfOrderFields(t *testing.T) {
	sink := &sliceSink{}
	acc := newAccumulator("2022-09-01 00:00:00", sink)

	// number with no open record
	require.Error(t, acc.consume(field{kind: fieldNumber, number: 1}))

	// heading while a record is open
	acc = newAccumulator("2022-09-01 00:00:00", sink)
	require.NoError(t, acc.consume(field{kind: fieldHeading, code: "A", name: "a"}))
	require.Error(t, acc.consume(field{kind: fieldHeading, code: "B", name: "b"}))

	// two locations in a row break the location/time alternation
	acc = newAccumulator("2022-09-01 00:00:00", sink)
	feedFields(t, acc, []field{
		{kind: fieldHeading, code: "A", name: "a"},
		{kind: fieldNumber, number: 1},
		{kind: fieldInstructors, instructors: []string{"Staff"}},
		{kind: fieldLocation, location: "x"},
	})
	require.Error(t, acc.consume(field{kind: fieldLocation, location: "y"}))

	// time with no location open
	acc = newAccumulator("2022-09-01 00:00:00", sink)
	feedFields(t, acc, []field{
		{kind: fieldHeading, code: "A", name: "a"},
		{kind: fieldNumber, number: 1},
		{kind: fieldInstructors, instructors: []string{"Staff"}},
	})
	require.Error(t, acc.consume(field{kind: fieldDayTime, times: []string{"t"}}))
}

func TestAccumulatorResetsBetweenRecords(t *testing.T) {
	sink := &sliceSink{}
	acc := newAccumulator("2022-09-01 00:00:00", sink)

	feedFields(t, acc, []field{
		{kind: fieldHeading, code: "A", name: "a"},
		{kind: fieldNumber, number: 1},
		{kind: fieldInstructors, instructors: []string{"Staff"}},
		{kind: fieldLocation, location: "x"},
		{kind: fieldDayTime, times: []string{"t"}},
		{kind: fieldMode, mode: "In Person"},
		{kind: fieldHeading, code: "B", name: "b"},
		{kind: fieldNumber, number: 2},
		{kind: fieldInstructors, instructors: []string{"Staff"}},
		{kind: fieldMode, mode: "Synchronous Online"},
	})

	require.Len(t, sink.recs, 2)
	require.Equal(t, "A", sink.recs[0].Code)
	require.Equal(t, "B", sink.recs[1].Code)
	require.Empty(t, sink.recs[1].Meetings)
}
