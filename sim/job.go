// Job models a single scheduled process in the simulation: its immutable
// arrival-time identity and its mutable memory/device/time bookkeeping.

package sim

// Priority values a Job may arrive with. Priority never affects dispatch
// order once a job is memory-resident — it only selects Hold1 vs Hold2 on
// arrival (§3, Non-goals).
const (
	PriorityHigh = 1
	PriorityLow  = 2
)

// Job is a single job in the scheduler's job table. Identity fields
// (ArrivalTime, Number, MaxMemory, MaxDevices, Runtime, Priority) are set
// once at arrival and never change; the remaining fields are mutated by
// SimulationState as the job moves through its lifecycle.
type Job struct {
	ArrivalTime int64
	Number      int
	MaxMemory   int
	MaxDevices  int
	Runtime     int64
	Priority    int

	AllocatedDevices int
	RequestedDevices int
	TimeRemaining    int64
	CompletionTime   int64
}

// NewJob constructs a Job with TimeRemaining initialized to Runtime and all
// other mutable fields zeroed, matching the original Job constructor.
func NewJob(arrivalTime int64, number, maxMemory, maxDevices int, runtime int64, priority int) *Job {
	return &Job{
		ArrivalTime:   arrivalTime,
		Number:        number,
		MaxMemory:     maxMemory,
		MaxDevices:    maxDevices,
		Runtime:       runtime,
		Priority:      priority,
		TimeRemaining: runtime,
	}
}

// AccruedTime is runtime already consumed: Runtime - TimeRemaining.
func (j *Job) AccruedTime() int64 {
	return j.Runtime - j.TimeRemaining
}

// StepTime advances the job's clock by delta, decrementing TimeRemaining.
// Called only for the job currently occupying the CPU slot.
func (j *Job) StepTime(delta int64) {
	j.TimeRemaining -= delta
}

// AllocateRequestedDevices commits the pending device request: it moves
// RequestedDevices into AllocatedDevices and clears the pending request.
// Callers must have already verified the request is banker's-safe.
func (j *Job) AllocateRequestedDevices() {
	j.AllocatedDevices += j.RequestedDevices
	j.RequestedDevices = 0
}

// ReleaseDevices decrements the job's AllocatedDevices by n. Callers are
// responsible for also decrementing SimulationState's global counter.
func (j *Job) ReleaseDevices(n int) {
	j.AllocatedDevices -= n
}

// UnweightedTurnaround is CompletionTime - ArrivalTime. Only meaningful
// once CompletionTime has been set (job in Complete).
func (j *Job) UnweightedTurnaround() int64 {
	return j.CompletionTime - j.ArrivalTime
}

// WeightedTurnaround is UnweightedTurnaround divided by the job's declared
// Runtime. Only meaningful once CompletionTime has been set.
func (j *Job) WeightedTurnaround() float64 {
	return float64(j.UnweightedTurnaround()) / float64(j.Runtime)
}
