package debug

import "github.com/valerio/go-jeebie-core/jeebie/cpu"

type DisasmLine struct {
	Address     uint16
	Instruction string
	IsCurrent   bool
}

// DisasmBuffer holds pre-allocated buffers for disassembly lines
type DisasmBuffer struct {
	Lines    []DisasmLine
	AllLines []DisasmLine
}

func NewDisasmBuffer(maxLines int) *DisasmBuffer {
	return &DisasmBuffer{
		Lines:    make([]DisasmLine, 0, maxLines),
		AllLines: make([]DisasmLine, 0, maxLines*3), // Extra space for context
	}
}

func CreateDisassembly(snapshot *MemorySnapshot, pc uint16, maxLines int) []DisasmLine {
	buf := NewDisasmBuffer(maxLines)
	return CreateDisassemblyWithBuffer(snapshot, pc, maxLines, buf)
}

// CreateDisassemblyWithBuffer decodes the snapshot and returns at most
// maxLines lines centered on pc. Decoding starts at the beginning of the
// snapshot, so lines before pc may be misaligned on data bytes; the line
// at pc is always decoded from pc itself.
func CreateDisassemblyWithBuffer(snapshot *MemorySnapshot, pc uint16, maxLines int, buf *DisasmBuffer) []DisasmLine {
	if snapshot == nil || maxLines <= 0 {
		return nil
	}

	buf.AllLines = buf.AllLines[:0]
	if !snapshot.Contains(pc) {
		buf.AllLines = append(buf.AllLines, DisasmLine{
			Address:     pc,
			Instruction: "[PC outside snapshot range]",
			IsCurrent:   true,
		})
		return buf.AllLines
	}

	pcIndex := -1
	end := int(snapshot.StartAddr) + len(snapshot.Bytes)
	for address := int(snapshot.StartAddr); address < end; {
		current := uint16(address)
		// resynchronize on pc if a previous instruction straddled it
		if pcIndex < 0 && address > int(pc) {
			current = pc
		}
		in, next := cpu.Decode(snapshot, current)

		if current == pc {
			pcIndex = len(buf.AllLines)
		}
		buf.AllLines = append(buf.AllLines, DisasmLine{
			Address:     current,
			Instruction: in.String(),
			IsCurrent:   current == pc,
		})

		if next <= current {
			break
		}
		address = int(next)
		if pcIndex >= 0 && len(buf.AllLines)-pcIndex > maxLines {
			break
		}
	}

	halfHeight := maxLines / 2
	startIdx := pcIndex - halfHeight
	endIdx := startIdx + maxLines

	if startIdx < 0 {
		startIdx = 0
		endIdx = maxLines
	}
	if endIdx > len(buf.AllLines) {
		endIdx = len(buf.AllLines)
		startIdx = endIdx - maxLines
		if startIdx < 0 {
			startIdx = 0
		}
	}

	buf.Lines = buf.Lines[:0]
	buf.Lines = append(buf.Lines, buf.AllLines[startIdx:endIdx]...)
	return buf.Lines
}
