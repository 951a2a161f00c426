package sim

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderText_IncludesJobsTableAndAllQueueTables(t *testing.T) {
	// GIVEN a state with one job in Ready
	s := NewSimulationState(100, 1000, 4, 10, 0)
	job := NewJob(0, 1, 10, 1, 20, PriorityHigh)
	s.addJob(job)
	s.scheduleJob(Ready, 1)

	// WHEN rendered as text
	text := s.RenderText(false)

	// THEN the Jobs table and every queue table title appear
	for _, want := range []string{"Jobs", "Hold Queue 1", "Hold Queue 2", "Long Queue", "Ready Queue", "Device Wait Queue", "Complete Queue"} {
		if !strings.Contains(text, want) {
			t.Errorf("RenderText missing section %q", want)
		}
	}
	if !strings.Contains(text, "1") {
		t.Error("RenderText missing job number 1")
	}
}

func TestRenderText_Terminal_AppendsSystemAverages(t *testing.T) {
	// GIVEN a state with a completed job
	s := NewSimulationState(100, 1000, 4, 10, 0)
	job := NewJob(0, 1, 10, 1, 20, PriorityHigh)
	job.CompletionTime = 30
	s.addJob(job)
	s.scheduleJob(CompleteQ, 1)

	// WHEN rendered as a terminal snapshot
	text := s.RenderText(true)

	// THEN the trailing system-average lines are present
	if !strings.Contains(text, "System average unweighted turnaround") {
		t.Error("terminal RenderText missing unweighted average line")
	}
	if !strings.Contains(text, "System average weighted turnaround") {
		t.Error("terminal RenderText missing weighted average line")
	}
}

func TestBuildSnapshot_NonTerminal_OmitsTurnaroundFields(t *testing.T) {
	// GIVEN a state at a non-terminal time
	s := NewSimulationState(100, 1000, 4, 10, 0)

	// WHEN built non-terminal
	snap := s.BuildSnapshot(false)

	// THEN turnaround fields are absent and submitq is always empty
	if snap.Turnaround != nil || snap.WeightedTurnaround != nil {
		t.Error("non-terminal snapshot should omit turnaround fields")
	}
	if len(snap.SubmitQ) != 0 {
		t.Errorf("submitq: got %v, want empty", snap.SubmitQ)
	}
}

func TestBuildSnapshot_JobDeviceAllocationVisibility(t *testing.T) {
	// GIVEN a job on the CPU holding 2 allocated devices, and a held job in
	// Hold1 with no device allocation exposed
	s := NewSimulationState(100, 1000, 4, 10, 0)
	running := NewJob(0, 1, 10, 4, 20, PriorityHigh)
	running.AllocatedDevices = 2
	s.addJob(running)
	s.cpuSetJob(1)

	held := NewJob(0, 2, 10, 4, 20, PriorityHigh)
	s.addJob(held)
	s.scheduleJob(Hold1, 2)

	// WHEN built
	snap := s.BuildSnapshot(false)

	// THEN the CPU job's entry carries devices_allocated, the held job's
	// does not
	var runningEntry, heldEntry *jobSnapshot
	for i := range snap.Job {
		switch snap.Job[i].ID {
		case 1:
			runningEntry = &snap.Job[i]
		case 2:
			heldEntry = &snap.Job[i]
		}
	}
	if runningEntry == nil || runningEntry.DevicesAllocated == nil || *runningEntry.DevicesAllocated != 2 {
		t.Errorf("running job snapshot: got %+v, want devices_allocated=2", runningEntry)
	}
	if heldEntry == nil || heldEntry.DevicesAllocated != nil {
		t.Errorf("held job snapshot: got %+v, want devices_allocated omitted", heldEntry)
	}
}

func TestWriteJSONSnapshot_WritesValidJSONAtExpectedPath(t *testing.T) {
	// GIVEN a state at time 17
	s := NewSimulationState(100, 1000, 4, 10, 0)
	s.CurrentTime = 17
	stem := filepath.Join(t.TempDir(), "prog")

	// WHEN the snapshot is written
	if err := s.WriteJSONSnapshot(stem, false); err != nil {
		t.Fatalf("WriteJSONSnapshot: %v", err)
	}

	// THEN the file exists at {stem}_D{time}.json and parses as an object
	// containing the expected keys
	data, err := os.ReadFile(stem + "_D17.json")
	if err != nil {
		t.Fatalf("reading snapshot file: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	for _, key := range []string{"readyq", "current_time", "total_memory", "available_memory",
		"total_devices", "running", "submitq", "longq", "holdq2", "job", "holdq1",
		"available_devices", "quantum", "completeq", "waitq"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("snapshot missing key %q", key)
		}
	}
	if _, ok := doc["turnaround"]; ok {
		t.Error("non-terminal snapshot should not carry turnaround")
	}
}
