// Package testrom runs conformance ROMs that report their result as text on
// the serial port, such as Blargg's cpu_instrs and instr_timing.
package testrom

import (
	"bytes"
	"context"
	"fmt"
)

// Outcome is the verdict of a run.
type Outcome int

const (
	// OutcomeRunning means no banner has been observed yet.
	OutcomeRunning Outcome = iota
	OutcomePassed
	OutcomeFailed
	// OutcomeTimeout means the instruction ceiling was reached, or the run
	// was cancelled, before any banner appeared.
	OutcomeTimeout
)

var outcomeNames = [...]string{"RUNNING", "PASSED", "FAILED", "TIMEOUT"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// ExitCode maps the outcome to the process exit status: 0 for a pass,
// 1 for a failure and 2 when no banner was observed.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomePassed:
		return 0
	case OutcomeFailed:
		return 1
	default:
		return 2
	}
}

var (
	passedBanner = []byte("Passed")
	failedBanner = []byte("Failed")
)

// Detect looks for a banner in a serial transcript. "Failed" wins over
// "Passed" since multi-part ROMs print a line per sub-test.
func Detect(output string) Outcome {
	return detect([]byte(output))
}

func detect(output []byte) Outcome {
	if bytes.Contains(output, failedBanner) {
		return OutcomeFailed
	}
	if bytes.Contains(output, passedBanner) {
		return OutcomePassed
	}
	return OutcomeRunning
}

// Banner watches serial bytes as they arrive. The verdict is only taken at
// the end of a line so that a trailing "Failed" on a summary line is never
// missed because "Passed" showed up first.
type Banner struct {
	seen    []byte
	outcome Outcome
}

// Feed consumes one serial byte. It has the signature of a serial subscriber.
func (b *Banner) Feed(value byte) {
	if b.outcome != OutcomeRunning {
		return
	}
	b.seen = append(b.seen, value)
	if value == '\n' {
		b.outcome = detect(b.seen)
	}
}

// Outcome returns the verdict so far.
func (b *Banner) Outcome() Outcome {
	return b.outcome
}

// Machine is something that can be stepped one instruction at a time while
// its serial output is watched for a banner.
type Machine interface {
	Step() (int, error)
	Outcome() Outcome
	Output() string
}

// Result summarizes a run.
type Result struct {
	Outcome      Outcome
	Output       string
	Instructions uint64
	Cycles       uint64
}

func (r Result) String() string {
	return fmt.Sprintf("%s after %d instructions (%d cycles)", r.Outcome, r.Instructions, r.Cycles)
}

// cancelCheckInterval is how many instructions run between context checks.
const cancelCheckInterval = 1 << 14

// Run steps m until a banner is observed, maxInstructions instructions have
// run or ctx is cancelled. A ceiling of 0 means no ceiling. Cancellation is
// reported as OutcomeTimeout together with the context error.
func Run(ctx context.Context, m Machine, maxInstructions uint64) (Result, error) {
	var res Result
	for maxInstructions == 0 || res.Instructions < maxInstructions {
		if res.Instructions%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				res.Outcome = OutcomeTimeout
				res.Output = m.Output()
				return res, err
			}
		}

		cycles, err := m.Step()
		if err != nil {
			res.Output = m.Output()
			return res, fmt.Errorf("instruction %d: %w", res.Instructions, err)
		}
		res.Instructions++
		res.Cycles += uint64(cycles)

		if o := m.Outcome(); o != OutcomeRunning {
			res.Outcome = o
			res.Output = m.Output()
			return res, nil
		}
	}

	// a banner printed without a trailing newline still counts
	res.Output = m.Output()
	res.Outcome = Detect(res.Output)
	if res.Outcome == OutcomeRunning {
		res.Outcome = OutcomeTimeout
	}
	return res, nil
}
