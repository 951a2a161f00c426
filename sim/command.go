// Command-record parsing (§6), grounded on main.cpp's parse_command_tokens
// and split free functions. A thin external collaborator per §1's
// out-of-scope note: no simulation invariants live here, only tokenizing
// and strict field validation.

package sim

import (
	"strconv"
	"strings"
)

// Opcode identifies the kind of a parsed command record.
type Opcode byte

const (
	OpConfiguration  Opcode = 'C'
	OpJobArrival     Opcode = 'A'
	OpDeviceRequest  Opcode = 'Q'
	OpDeviceRelease  Opcode = 'L'
	OpDisplay        Opcode = 'D'
)

// Command is one parsed input record: an opcode, its time, and its K=V
// fields keyed by the single-letter field name.
type Command struct {
	Op     Opcode
	Time   int64
	Fields map[string]int
}

// field looks up a required field, returning a FatalError if absent.
func (c *Command) field(name string) (int, error) {
	v, ok := c.Fields[name]
	if !ok {
		return 0, fatalf("malformed input line: missing required field %q", name)
	}
	return v, nil
}

// ParseLine tokenizes one input line and validates it against §6's
// grammar: opcode, time, then zero or more `K=V` fields where each token
// is at least three characters (K, '=', and at least one value
// character). Any violation is fatal.
func ParseLine(line string) (*Command, error) {
	tokens := strings.Split(line, " ")
	if len(tokens) < 2 {
		return nil, fatalf("malformed input line: %q", line)
	}
	t, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return nil, fatalf("malformed input line: invalid time %q", tokens[1])
	}

	fields := make(map[string]int, len(tokens)-2)
	for _, tok := range tokens[2:] {
		if len(tok) < 3 || tok[1] != '=' {
			return nil, fatalf("malformed input line: bad field token %q", tok)
		}
		key := tok[:1]
		value, err := strconv.Atoi(tok[2:])
		if err != nil {
			return nil, fatalf("malformed input line: non-integer value in token %q", tok)
		}
		fields[key] = value
	}

	op := Opcode(tokens[0][0])
	switch op {
	case OpConfiguration, OpJobArrival, OpDeviceRequest, OpDeviceRelease, OpDisplay:
	default:
		return nil, fatalf("unknown input command %q", tokens[0])
	}

	return &Command{Op: op, Time: t, Fields: fields}, nil
}

// ConfigurationArgs extracts the `C` command's required fields.
func (c *Command) ConfigurationArgs() (maxMemory int, timeExcess int64, maxDevices int, quantumLength int64, err error) {
	m, err := c.field("M")
	if err != nil {
		return
	}
	l, err := c.field("L")
	if err != nil {
		return
	}
	s, err := c.field("S")
	if err != nil {
		return
	}
	q, err := c.field("Q")
	if err != nil {
		return
	}
	return m, int64(l), s, int64(q), nil
}

// JobArrivalArgs extracts the `A` command's required fields.
func (c *Command) JobArrivalArgs() (jobNumber, maxMemory, maxDevices int, runtime int64, priority int, err error) {
	j, err := c.field("J")
	if err != nil {
		return
	}
	m, err := c.field("M")
	if err != nil {
		return
	}
	s, err := c.field("S")
	if err != nil {
		return
	}
	r, err := c.field("R")
	if err != nil {
		return
	}
	p, err := c.field("P")
	if err != nil {
		return
	}
	return j, m, s, int64(r), p, nil
}

// DeviceCommandArgs extracts the `Q`/`L` commands' shared field shape.
func (c *Command) DeviceCommandArgs() (jobNumber, deviceCount int, err error) {
	j, err := c.field("J")
	if err != nil {
		return
	}
	d, err := c.field("D")
	if err != nil {
		return
	}
	return j, d, nil
}
