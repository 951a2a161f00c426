// sim/event.go
//
// Event is a tagged-variant dispatch: five concrete structs each embed
// BaseEvent for the (timestamp, type, sequence) triple EventHeap orders on,
// and implement Execute to mutate SimulationState (§4.3). Grounded on
// sim/cluster/events.go's BaseEvent + typed-Execute pattern.
package sim

import "github.com/sirupsen/logrus"

// EventType classifies an Event for the tie-break rule in §4.2.
type EventType int

const (
	EventTypeQuantumEnd EventType = iota
	EventTypeJobArrival
	EventTypeDeviceRequest
	EventTypeDeviceRelease
	EventTypeDisplay
)

// Event is a pending state transition the driver dispatches in timestamp
// order (§4.2, §4.3).
type Event interface {
	Timestamp() int64
	Type() EventType
	Seq() uint64
	Execute(state *SimulationState)
}

// BaseEvent supplies the three EventHeap ordering accessors common to
// every concrete event.
type BaseEvent struct {
	timestamp int64
	eventType EventType
	seq       uint64
}

func newBaseEvent(timestamp int64, eventType EventType, seq uint64) BaseEvent {
	return BaseEvent{timestamp: timestamp, eventType: eventType, seq: seq}
}

func (e *BaseEvent) Timestamp() int64   { return e.timestamp }
func (e *BaseEvent) Type() EventType    { return e.eventType }
func (e *BaseEvent) Seq() uint64        { return e.seq }

// JobArrivalEvent models a new Job entering the system (§4.3).
type JobArrivalEvent struct {
	BaseEvent
	Job *Job
}

// NewJobArrivalEvent constructs a JobArrivalEvent scheduled at time.
func NewJobArrivalEvent(time int64, job *Job, seq uint64) *JobArrivalEvent {
	return &JobArrivalEvent{BaseEvent: newBaseEvent(time, EventTypeJobArrival, seq), Job: job}
}

// Execute admits, holds, or rejects the arriving job per §4.3.
func (e *JobArrivalEvent) Execute(state *SimulationState) {
	logrus.Infof("[t=%d] job arrival: job %d", e.Timestamp(), e.Job.Number)
	state.handleJobArrival(e.Job)
}

// DeviceRequestEvent models a CPU-resident job requesting n devices (§4.3).
type DeviceRequestEvent struct {
	BaseEvent
	JobNumber int
	Count     int
}

// NewDeviceRequestEvent constructs a DeviceRequestEvent scheduled at time.
func NewDeviceRequestEvent(time int64, jobNumber, count int, seq uint64) *DeviceRequestEvent {
	return &DeviceRequestEvent{BaseEvent: newBaseEvent(time, EventTypeDeviceRequest, seq), JobNumber: jobNumber, Count: count}
}

// Execute records the pending request and forces a reconciliation pass.
func (e *DeviceRequestEvent) Execute(state *SimulationState) {
	logrus.Infof("[t=%d] device request: job %d wants %d", e.Timestamp(), e.JobNumber, e.Count)
	if state.cpuJob != e.JobNumber {
		logrus.Errorf("[t=%d] job %d requested devices while not on the CPU", e.Timestamp(), e.JobNumber)
		return
	}
	state.cpuRequestDevices(e.Count)
	state.EndQuantum()
}

// DeviceReleaseEvent models a CPU-resident job releasing n devices (§4.3).
type DeviceReleaseEvent struct {
	BaseEvent
	JobNumber int
	Count     int
}

// NewDeviceReleaseEvent constructs a DeviceReleaseEvent scheduled at time.
func NewDeviceReleaseEvent(time int64, jobNumber, count int, seq uint64) *DeviceReleaseEvent {
	return &DeviceReleaseEvent{BaseEvent: newBaseEvent(time, EventTypeDeviceRelease, seq), JobNumber: jobNumber, Count: count}
}

// Execute releases devices from the CPU job and forces a reconciliation pass.
func (e *DeviceReleaseEvent) Execute(state *SimulationState) {
	logrus.Infof("[t=%d] device release: job %d releases %d", e.Timestamp(), e.JobNumber, e.Count)
	if state.cpuJob != e.JobNumber {
		logrus.Errorf("[t=%d] job %d released devices while not on the CPU", e.Timestamp(), e.JobNumber)
		return
	}
	state.cpuReleaseDevices(e.Count)
	state.EndQuantum()
}

// QuantumEndEvent is the internal tick that drives reconciliation when a
// CPU job's quantum naturally expires (§4.3). It has no direct effect
// itself beyond forcing the driver to reconcile after dispatch.
type QuantumEndEvent struct {
	BaseEvent
}

// NewQuantumEndEvent constructs a QuantumEndEvent scheduled at time.
func NewQuantumEndEvent(time int64, seq uint64) *QuantumEndEvent {
	return &QuantumEndEvent{BaseEvent: newBaseEvent(time, EventTypeQuantumEnd, seq)}
}

// Execute is a no-op; the driver's post-event reconciliation does the work.
func (e *QuantumEndEvent) Execute(state *SimulationState) {
	logrus.Infof("[t=%d] quantum ended", e.Timestamp())
}

// DisplayEvent renders the current snapshot to the diagnostic stream and
// writes the structured snapshot file (§4.3, §6).
type DisplayEvent struct {
	BaseEvent
	PathStem string
}

// NewDisplayEvent constructs a DisplayEvent scheduled at time, writing
// structured snapshots under pathStem_D<time>.json.
func NewDisplayEvent(time int64, pathStem string, seq uint64) *DisplayEvent {
	return &DisplayEvent{BaseEvent: newBaseEvent(time, EventTypeDisplay, seq), PathStem: pathStem}
}

// Execute renders and writes both snapshot formats.
func (e *DisplayEvent) Execute(state *SimulationState) {
	logrus.Infof("[t=%d] display system status", e.Timestamp())
	terminal := e.Timestamp() == EndTime
	logrus.Info(state.RenderText(terminal))
	if err := state.WriteJSONSnapshot(e.PathStem, terminal); err != nil {
		logrus.Errorf("[t=%d] failed to write snapshot: %v", e.Timestamp(), err)
	}
}
