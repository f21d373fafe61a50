package sim

// FillingSystemStatus is the progress of one opening through its opening and
// submergence state machines. Values only advance within a run.
type FillingSystemStatus int

const (
	StatusUnknown FillingSystemStatus = iota
	StatusOpeningStarted
	StatusFullyOpened
	StatusSubmergenceStarted
	StatusFullySubmerged
)

var statusNames = map[FillingSystemStatus]string{
	StatusUnknown:            "unknown",
	StatusOpeningStarted:     "opening-started",
	StatusFullyOpened:        "fully-opened",
	StatusSubmergenceStarted: "submergence-started",
	StatusFullySubmerged:     "fully-submerged",
}

var statusCodes = map[FillingSystemStatus]string{
	StatusUnknown:            "--",
	StatusOpeningStarted:     "OS",
	StatusFullyOpened:        "FO",
	StatusSubmergenceStarted: "SS",
	StatusFullySubmerged:     "FS",
}

func (s FillingSystemStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "invalid"
}

// Code is the short tag used in event listings.
func (s FillingSystemStatus) Code() string {
	if code, ok := statusCodes[s]; ok {
		return code
	}
	return "??"
}

// Event marks a status change of one unit of the filling system.
type Event struct {
	Unit   int // index of the unit in FillingSystem.Units
	Code   string
	Status FillingSystemStatus
}

func newEvent(unit int, status FillingSystemStatus) Event {
	return Event{Unit: unit, Code: status.Code(), Status: status}
}
