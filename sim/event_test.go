package sim

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJobArrivalEvent_Execute_AdmitsToReady(t *testing.T) {
	// GIVEN a fresh state with enough memory for the arriving job
	s := NewSimulationState(100, 1000, 4, 10, 0)
	job := NewJob(0, 1, 20, 2, 30, PriorityHigh)
	e := NewJobArrivalEvent(0, job, 1)

	// WHEN the event executes
	e.Execute(s)

	// THEN the job lands in Ready with memory allocated
	if !s.ready.Contains(1) {
		t.Error("job not admitted to Ready")
	}
	if s.AllocatedMemory != 20 {
		t.Errorf("AllocatedMemory: got %d, want 20", s.AllocatedMemory)
	}
}

func TestDeviceRequestEvent_Execute_NoopWhenJobNotOnCPU(t *testing.T) {
	// GIVEN a state with no job on the CPU
	s := NewSimulationState(100, 1000, 4, 10, 0)
	e := NewDeviceRequestEvent(0, 1, 2, 1)

	// WHEN a device request event fires for a job that is not on the CPU
	e.Execute(s)

	// THEN it is treated as a no-op (§7 out-of-turn request)
	if s.AllocatedDevices != 0 {
		t.Errorf("AllocatedDevices: got %d, want 0", s.AllocatedDevices)
	}
}

func TestDeviceRequestEvent_Execute_RecordsRequestAndEndsQuantum(t *testing.T) {
	// GIVEN a state with job 1 on the CPU mid-quantum
	s := NewSimulationState(100, 1000, 4, 10, 0)
	job := NewJob(0, 1, 20, 4, 30, PriorityHigh)
	s.addJob(job)
	s.cpuSetJob(1)

	// WHEN job 1 requests 2 devices
	e := NewDeviceRequestEvent(0, 1, 2, 1)
	e.Execute(s)

	// THEN the request is recorded and the quantum is forced to end
	if job.RequestedDevices != 2 {
		t.Errorf("RequestedDevices: got %d, want 2", job.RequestedDevices)
	}
	if s.quantumRemaining != 0 {
		t.Errorf("quantumRemaining: got %d, want 0", s.quantumRemaining)
	}
}

func TestQuantumEndEvent_Execute_IsNoop(t *testing.T) {
	// GIVEN any state
	s := NewSimulationState(100, 1000, 4, 10, 0)

	// WHEN a QuantumEndEvent executes
	e := NewQuantumEndEvent(10, 1)
	e.Execute(s)

	// THEN nothing about the state changes directly (reconciliation does the work)
	if s.cpuJob != NoJob {
		t.Errorf("cpuJob: got %d, want NoJob", s.cpuJob)
	}
}

func TestDisplayEvent_Execute_WritesJSONSnapshot(t *testing.T) {
	// GIVEN a state and a Display event scheduled at a non-terminal time
	s := NewSimulationState(100, 1000, 4, 10, 0)
	stem := filepath.Join(t.TempDir(), "trace")
	e := NewDisplayEvent(42, stem, 1)
	s.CurrentTime = 42

	// WHEN the event executes
	e.Execute(s)

	// THEN the structured snapshot file exists at the expected path
	want := stem + "_D42.json"
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected snapshot file %s: %v", want, err)
	}
}
