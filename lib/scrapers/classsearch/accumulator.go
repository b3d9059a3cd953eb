package classsearch

import "fmt"

// recordSink receives each record the moment it completes.
type recordSink interface {
	WriteRecord(rec ClassRecord) error
}

type accState int

const (
	stateIdle accState = iota
	stateHeading
	stateNumber
	stateInstructors
	stateMeetingOpen
	stateAwaitingComma
)

func (s accState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateHeading:
		return "heading"
	case stateNumber:
		return "number"
	case stateInstructors:
		return "instructors"
	case stateMeetingOpen:
		return "meeting open"
	case stateAwaitingComma:
		return "awaiting comma"
	}
	return "unknown"
}

// accumulator assembles one ClassRecord at a time from classified fields.
// The feed's field order contract is absolute: heading, number,
// instructors, one or more location/time pairs, then mode. A field arriving
// out of order means the feed format changed and the whole run must stop
// rather than silently drop or reorder data.
type accumulator struct {
	state accState
	open  ClassRecord

	// location of the meeting currently awaiting its day-and-time line
	pendingLocation string

	// wall-clock stamp captured once at the start of the scrape, shared by
	// every record of the run
	stamp string

	sink    recordSink
	emitted int
}

func newAccumulator(stamp string, sink recordSink) *accumulator {
	return &accumulator{stamp: stamp, sink: sink}
}

func (a *accumulator) protocolError(f field) error {
	return fmt.Errorf("classsearch: %s field while %s, the feed's field order changed", f.kind, a.state)
}

func (a *accumulator) consume(f field) error {
	switch f.kind {
	case fieldHeading:
		if a.state != stateIdle {
			return a.protocolError(f)
		}
		a.open = ClassRecord{Code: f.code, Name: f.name}
		a.state = stateHeading

	case fieldNumber:
		if a.state != stateHeading {
			return a.protocolError(f)
		}
		a.open.Number = f.number
		a.state = stateNumber

	case fieldInstructors:
		if a.state != stateNumber {
			return a.protocolError(f)
		}
		a.open.Instructors = f.instructors
		a.state = stateInstructors

	case fieldLocation:
		// a location while one is already awaiting its time means the
		// location/time alternation broke
		if a.state != stateInstructors && a.state != stateAwaitingComma {
			return a.protocolError(f)
		}
		a.pendingLocation = f.location
		a.state = stateMeetingOpen

	case fieldDayTime:
		if a.state != stateMeetingOpen {
			return a.protocolError(f)
		}
		// a two-time block is two meetings sharing the one location
		for _, t := range f.times {
			a.open.Meetings = append(a.open.Meetings, Meeting{
				Location: a.pendingLocation,
				Time:     t,
			})
		}
		a.pendingLocation = ""
		a.state = stateAwaitingComma

	case fieldMode:
		// stateInstructors closes a record with no meetings at all;
		// stateMeetingOpen closes one whose final location never got a
		// time line, leaving that location out of the meeting list
		if a.state != stateInstructors && a.state != stateMeetingOpen && a.state != stateAwaitingComma {
			return a.protocolError(f)
		}
		a.open.Mode = f.mode
		a.open.LastUpdated = a.stamp
		if err := a.sink.WriteRecord(a.open); err != nil {
			return err
		}
		a.emitted++
		a.open = ClassRecord{}
		a.pendingLocation = ""
		a.state = stateIdle

	default:
		return a.protocolError(f)
	}
	return nil
}
