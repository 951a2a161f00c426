// Driver loop: reads command records, schedules the matching event, and
// advances simulated time (§6). Grounded on main.cpp's main/
// process_events_through_time and the teacher's Simulator.Run read-loop
// shape (sim/simulator.go).

package sim

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Driver owns the SimulationState being built and the path stem Display
// events write structured snapshots under.
type Driver struct {
	state    *SimulationState
	pathStem string
}

// NewDriver constructs a Driver that writes structured snapshots under
// pathStem. The SimulationState itself is created lazily by the first `C`
// command, mirroring the source's single-pointer-assigned-once structure.
func NewDriver(pathStem string) *Driver {
	return &Driver{pathStem: pathStem}
}

// State returns the simulation state built so far, or nil before the
// first `C` command has been processed.
func (d *Driver) State() *SimulationState { return d.state }

// Run reads one command record per line from r and drives the simulation
// to completion, including the implicit terminal Display at EndTime if
// none was explicitly scheduled at or after it (§6 "Driver pacing").
func (d *Driver) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	explicitFinalDisplay := false

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		cmd, err := ParseLine(line)
		if err != nil {
			return err
		}
		if cmd.Op == OpDisplay && cmd.Time >= EndTime {
			explicitFinalDisplay = true
		}
		if err := d.dispatchCommand(cmd); err != nil {
			return err
		}
		if err := d.processEventsThroughTime(cmd.Time); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if !explicitFinalDisplay {
		d.state.ScheduleEvent(NewDisplayEvent(EndTime, d.pathStem, d.state.NextSeq()))
		if err := d.processEventsThroughTime(EndTime); err != nil {
			return err
		}
	}
	return nil
}

// dispatchCommand handles one parsed command: `C` constructs the
// SimulationState, the rest schedule an event against it.
func (d *Driver) dispatchCommand(cmd *Command) error {
	switch cmd.Op {
	case OpConfiguration:
		maxMemory, timeExcess, maxDevices, quantumLength, err := cmd.ConfigurationArgs()
		if err != nil {
			return err
		}
		logrus.Infof("%d: system configuration", cmd.Time)
		d.state = NewSimulationState(maxMemory, timeExcess, maxDevices, quantumLength, cmd.Time)

	case OpJobArrival:
		if d.state == nil {
			return fatalf("job arrival before system configuration")
		}
		jobNumber, maxMemory, maxDevices, runtime, priority, err := cmd.JobArrivalArgs()
		if err != nil {
			return err
		}
		job := NewJob(cmd.Time, jobNumber, maxMemory, maxDevices, runtime, priority)
		d.state.ScheduleEvent(NewJobArrivalEvent(cmd.Time, job, d.state.NextSeq()))

	case OpDeviceRequest:
		if d.state == nil {
			return fatalf("device request before system configuration")
		}
		jobNumber, count, err := cmd.DeviceCommandArgs()
		if err != nil {
			return err
		}
		d.state.ScheduleEvent(NewDeviceRequestEvent(cmd.Time, jobNumber, count, d.state.NextSeq()))

	case OpDeviceRelease:
		if d.state == nil {
			return fatalf("device release before system configuration")
		}
		jobNumber, count, err := cmd.DeviceCommandArgs()
		if err != nil {
			return err
		}
		d.state.ScheduleEvent(NewDeviceReleaseEvent(cmd.Time, jobNumber, count, d.state.NextSeq()))

	case OpDisplay:
		if d.state == nil {
			return fatalf("display before system configuration")
		}
		d.state.ScheduleEvent(NewDisplayEvent(cmd.Time, d.pathStem, d.state.NextSeq()))
	}
	return nil
}

// processEventsThroughTime drains every pending event with timestamp <=
// time, advancing the clock and reconciling after each one.
func (d *Driver) processEventsThroughTime(time int64) error {
	for d.state.HasNextEvent() && d.state.PeekNextEvent().Timestamp() <= time {
		next := d.state.PopNextEvent()
		d.state.SetTime(next.Timestamp())
		next.Execute(d.state)
		d.state.Reconcile()
	}
	return nil
}
