// SimulationState is the authoritative model of the simulated system:
// resource counters, the job table, the six job queues, the CPU slot, the
// quantum counter, and the pending event heap. Grounded on sim/simulator.go's
// Simulator struct (fields-plus-methods aggregate root, Schedule/Run) and
// SystemState.cpp's primitives and update_queues reconciliation.

package sim

import "github.com/sirupsen/logrus"

// EndTime is the canonical terminal simulated time (§4.3, §6, GLOSSARY).
const EndTime = 9999

// SimulationState owns every mutable quantity in the simulation.
type SimulationState struct {
	// Static configuration, set once at construction (§3).
	MaxMemory     int
	TimeExcess    int64
	MaxDevices    int
	QuantumLength int64

	// Mutable resource counters (§3, invariants 1-2).
	AllocatedMemory  int
	AllocatedDevices int

	// Clock.
	CurrentTime int64

	jobs map[int]*Job

	hold1    jobQueue
	hold2    jobQueue
	long     jobQueue
	ready    jobQueue
	wait     jobQueue
	complete jobQueue

	cpuJob            int
	quantumRemaining  int64

	events *EventHeap
	seq    uint64

	// canMove is read by reconcile's CPU-settle step and written by its
	// Long-drain step; see DESIGN.md "can_move flag semantics". It carries
	// across reconcile() calls by design.
	canMove bool
}

// NewSimulationState constructs a SimulationState from the mandatory `C`
// command's fields (§6). The CPU slot starts empty and all queues start
// empty.
func NewSimulationState(maxMemory int, timeExcess int64, maxDevices int, quantumLength int64, startTime int64) *SimulationState {
	return &SimulationState{
		MaxMemory:     maxMemory,
		TimeExcess:    timeExcess,
		MaxDevices:    maxDevices,
		QuantumLength: quantumLength,
		CurrentTime:   startTime,
		jobs:          make(map[int]*Job),
		cpuJob:        NoJob,
		events:        NewEventHeap(),
	}
}

// AvailableMemory is MaxMemory - AllocatedMemory.
func (s *SimulationState) AvailableMemory() int { return s.MaxMemory - s.AllocatedMemory }

// AvailableDevices is MaxDevices - AllocatedDevices.
func (s *SimulationState) AvailableDevices() int { return s.MaxDevices - s.AllocatedDevices }

// CPUJob returns the job number currently on the CPU, or NoJob.
func (s *SimulationState) CPUJob() int { return s.cpuJob }

// Job looks up a job by number. Returns nil if unknown.
func (s *SimulationState) Job(number int) *Job { return s.jobs[number] }

// Jobs returns every job in the job table, in no particular order. Callers
// that need a stable order (snapshot rendering) sort by Number themselves.
func (s *SimulationState) Jobs() map[int]*Job { return s.jobs }

// nextSeq returns a fresh monotonically increasing sequence number for
// event tie-breaking (§4.2).
func (s *SimulationState) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// --- §4.1 primitives ---

// AllocateMemory increases AllocatedMemory by n. Preconditions (n does not
// exceed AvailableMemory) are enforced by callers.
func (s *SimulationState) AllocateMemory(n int) { s.AllocatedMemory += n }

// ReleaseMemory decreases AllocatedMemory by n.
func (s *SimulationState) ReleaseMemory(n int) { s.AllocatedMemory -= n }

// cpuRequestDevices overwrites the CPU job's pending device request. Only
// one outstanding request per job is modeled.
func (s *SimulationState) cpuRequestDevices(n int) {
	s.jobs[s.cpuJob].RequestedDevices = n
}

// cpuReleaseDevices decrements the CPU job's AllocatedDevices and the
// global AllocatedDevices counter by n.
func (s *SimulationState) cpuReleaseDevices(n int) {
	s.jobs[s.cpuJob].ReleaseDevices(n)
	s.AllocatedDevices -= n
}

// allocateRequestedDevices commits a job's pending request: increments the
// global counter and the job's AllocatedDevices, then clears the request.
// Callers must have already verified the grant is banker's-safe.
func (s *SimulationState) allocateRequestedDevices(jobID int) {
	s.AllocatedDevices += s.jobs[jobID].RequestedDevices
	s.jobs[jobID].AllocateRequestedDevices()
}

// EndQuantum forces the CPU job's quantum to end immediately, so the next
// reconciliation pass settles it. Invoked by device request/release
// handlers (§4.1, §4.3).
func (s *SimulationState) EndQuantum() {
	s.quantumRemaining = 0
}

// SetTime advances CurrentTime from its previous value to t (t must be >=
// the previous value). If the CPU slot is occupied, the occupant's
// TimeRemaining and the quantum counter are both decremented by the
// elapsed delta (§4.1).
func (s *SimulationState) SetTime(t int64) {
	delta := t - s.CurrentTime
	s.CurrentTime = t
	if s.cpuJob != NoJob {
		s.jobs[s.cpuJob].StepTime(delta)
		s.quantumRemaining -= delta
	}
}

// cpuSetJob assigns jobID to the CPU slot. Passing NoJob clears the slot
// and zeroes the quantum counter. Assigning a real job sets the quantum to
// min(QuantumLength, job.TimeRemaining) and schedules the matching
// QuantumEnd event (§4.1).
func (s *SimulationState) cpuSetJob(jobID int) {
	s.cpuJob = jobID
	if jobID == NoJob {
		s.quantumRemaining = 0
		return
	}
	remaining := s.jobs[jobID].TimeRemaining
	if s.QuantumLength < remaining {
		s.quantumRemaining = s.QuantumLength
	} else {
		s.quantumRemaining = remaining
	}
	s.events.Schedule(NewQuantumEndEvent(s.CurrentTime+s.quantumRemaining, s.nextSeq()))
}

// scheduleJob appends jobID to the given queue. Hold1 instead inserts so
// the queue stays sorted by ascending job runtime, stable for ties (§4.1).
func (s *SimulationState) scheduleJob(queue QueueKind, jobID int) {
	switch queue {
	case Hold1:
		s.hold1.insertSortedByRuntime(jobID, func(id int) int64 { return s.jobs[id].Runtime })
		logrus.Infof("job %d placed in Hold1", jobID)
	case Hold2:
		s.hold2.PushBack(jobID)
		logrus.Infof("job %d placed in Hold2", jobID)
	case LongQ:
		s.long.PushBack(jobID)
		logrus.Infof("job %d placed in Long", jobID)
	case Ready:
		s.ready.PushBack(jobID)
		logrus.Infof("job %d placed in Ready", jobID)
	case Wait:
		s.wait.PushBack(jobID)
		logrus.Infof("job %d placed in Wait", jobID)
	case CompleteQ:
		s.complete.PushBack(jobID)
		logrus.Infof("job %d placed in Complete", jobID)
	}
}

// addJob inserts a newly arrived job into the job table.
func (s *SimulationState) addJob(j *Job) {
	s.jobs[j.Number] = j
}

// ScheduleEvent inserts e into the pending event heap.
func (s *SimulationState) ScheduleEvent(e Event) {
	s.events.Schedule(e)
}

// HasNextEvent reports whether any event is still pending.
func (s *SimulationState) HasNextEvent() bool { return s.events.Len() > 0 }

// PeekNextEvent returns the earliest-ordered pending event without
// removing it, or nil if none remain.
func (s *SimulationState) PeekNextEvent() Event { return s.events.Peek() }

// PopNextEvent removes and returns the earliest-ordered pending event.
func (s *SimulationState) PopNextEvent() Event { return s.events.PopNext() }

// NextSeq exposes a fresh event sequence number to callers outside the
// package (the driver, constructing events from parsed commands).
func (s *SimulationState) NextSeq() uint64 { return s.nextSeq() }

// --- §4.3 event-handler bodies invoked from sim/event.go ---

// handleJobArrival implements JobArrivalEvent's contract (§4.3): rejects a
// job whose stated maximums exceed system totals, holds a job that doesn't
// currently fit in memory (routed by priority), or admits it straight to
// Ready.
func (s *SimulationState) handleJobArrival(job *Job) {
	switch {
	case job.MaxMemory > s.MaxMemory || job.MaxDevices > s.MaxDevices:
		logrus.Warnf("job %d rejected: exceeds total system resources", job.Number)
	case job.MaxMemory > s.AvailableMemory():
		s.addJob(job)
		switch job.Priority {
		case PriorityHigh:
			s.scheduleJob(Hold1, job.Number)
		case PriorityLow:
			s.scheduleJob(Hold2, job.Number)
		default:
			panic(fatalf("job %d has invalid priority %d", job.Number, job.Priority))
		}
	default:
		s.AllocateMemory(job.MaxMemory)
		s.addJob(job)
		s.scheduleJob(Ready, job.Number)
	}
}

// --- §4.4 banker's-safety wrapper ---

// activeJobsForBankers builds the {CPU} ∪ Ready ∪ Wait vector in that
// order, as required by §4.4.
func (s *SimulationState) activeJobsForBankers() []*Job {
	active := make([]*Job, 0, 1+s.ready.Len()+s.wait.Len())
	if s.cpuJob != NoJob {
		active = append(active, s.jobs[s.cpuJob])
	}
	for _, id := range s.ready.items {
		active = append(active, s.jobs[id])
	}
	for _, id := range s.wait.items {
		active = append(active, s.jobs[id])
	}
	return active
}

// bankersSafe answers whether jobID's pending request can be granted
// without risking deadlock (§4.4).
func (s *SimulationState) bankersSafe(jobID int) bool {
	return BankersSafe(s.activeJobsForBankers(), jobID, s.AvailableDevices())
}

// --- §4.5 reconciliation ---

// Reconcile runs update_queues: CPU settle, Wait drain, Hold1 drain, Hold2
// drain, Long drain, then dispatch. Invoked after every event handler
// (§4.5).
func (s *SimulationState) Reconcile() {
	s.settleCPU()
	s.drainWait()
	s.drainHold(&s.hold1)
	s.drainHold(&s.hold2)
	s.drainLong()
	s.dispatch()
}

// settleCPU implements step 1: if the CPU holds a job whose quantum has
// run out, route it to Complete, Long, Ready, or Wait and clear the slot.
func (s *SimulationState) settleCPU() {
	if s.cpuJob == NoJob || s.quantumRemaining != 0 {
		return
	}
	j := s.jobs[s.cpuJob]
	if j.TimeRemaining == 0 {
		s.ReleaseMemory(j.MaxMemory)
		s.cpuReleaseDevices(j.AllocatedDevices)
		j.CompletionTime = s.CurrentTime
		s.scheduleJob(CompleteQ, j.Number)
		s.cpuSetJob(NoJob)
		return
	}

	// Tentative placement from the long/ready decision; the device-request
	// decision below independently overwrites it whenever a request is
	// actually outstanding (§4.5 Note). A long job with no outstanding
	// request keeps its Long placement untouched (S4).
	isLong := j.AccruedTime() >= s.TimeExcess
	target := Ready
	if isLong && !s.canMove {
		target = LongQ
	}
	switch {
	case j.RequestedDevices > 0 && s.bankersSafe(j.Number):
		s.allocateRequestedDevices(j.Number)
		target = Ready
	case j.RequestedDevices > 0:
		target = Wait
	}
	s.scheduleJob(target, j.Number)
	s.cpuSetJob(NoJob)
}

// drainWait implements step 2: move every Wait job whose request is now
// banker's-safe to Ready.
func (s *SimulationState) drainWait() {
	var remaining []int
	for _, jobID := range s.wait.items {
		if s.bankersSafe(jobID) {
			s.allocateRequestedDevices(jobID)
			s.scheduleJob(Ready, jobID)
		} else {
			remaining = append(remaining, jobID)
		}
	}
	s.wait.items = remaining
}

// drainHold implements steps 3/4: move every job in the given hold queue
// whose MaxMemory now fits into Ready, allocating memory as it goes.
func (s *SimulationState) drainHold(q *jobQueue) {
	var remaining []int
	for _, jobID := range q.items {
		if s.jobs[jobID].MaxMemory <= s.AvailableMemory() {
			s.AllocateMemory(s.jobs[jobID].MaxMemory)
			s.scheduleJob(Ready, jobID)
		} else {
			remaining = append(remaining, jobID)
		}
	}
	q.items = remaining
}

// drainLong implements step 5: while the system is otherwise idle (both
// hold queues empty, CPU empty, Ready non-empty), move Long jobs to Ready
// one at a time, recording canMove for a future settleCPU call to observe.
func (s *SimulationState) drainLong() {
	var remaining []int
	for _, jobID := range s.long.items {
		s.canMove = false
		if s.hold1.Empty() && s.hold2.Empty() && s.cpuJob == NoJob && !s.ready.Empty() {
			s.canMove = true
			s.scheduleJob(Ready, jobID)
		} else {
			remaining = append(remaining, jobID)
		}
	}
	s.long.items = remaining
}

// dispatch implements step 6: if the CPU is empty and Ready is non-empty,
// pop the head of Ready onto the CPU.
func (s *SimulationState) dispatch() {
	if s.cpuJob == NoJob && !s.ready.Empty() {
		next := s.ready.PopFront()
		logrus.Infof("job %d placed on the CPU", next)
		s.cpuSetJob(next)
	}
}
