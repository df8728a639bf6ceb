package debug

import "github.com/valerio/go-jeebie-core/jeebie/cpu"

// snapshotBefore is how many bytes before PC a snapshot starts.
const snapshotBefore = 32

// TakeMemorySnapshot copies size bytes around pc, starting snapshotBefore
// bytes ahead of it. The copy never wraps past 0xFFFF.
func TakeMemorySnapshot(r cpu.Reader, pc uint16, size int) *MemorySnapshot {
	start := pc
	if start >= snapshotBefore {
		start -= snapshotBefore
	} else {
		start = 0
	}

	if limit := 0x10000 - int(start); size > limit {
		size = limit
	}

	snapshot := &MemorySnapshot{StartAddr: start, Bytes: make([]uint8, size)}
	for i := range snapshot.Bytes {
		snapshot.Bytes[i] = r.Read(start + uint16(i))
	}
	return snapshot
}

// Contains reports whether address falls inside the snapshot.
func (s *MemorySnapshot) Contains(address uint16) bool {
	return address >= s.StartAddr && int(address-s.StartAddr) < len(s.Bytes)
}

// Read implements cpu.Reader over the snapshot, reading 0xFF outside of it.
func (s *MemorySnapshot) Read(address uint16) byte {
	if !s.Contains(address) {
		return 0xFF
	}
	return s.Bytes[address-s.StartAddr]
}
