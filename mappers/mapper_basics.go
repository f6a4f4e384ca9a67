// Package mappers implements page-indirected memory overlays: ROM images
// and read/write callback functions layered over a flat RAM array,
// independently for reads and writes. It backs the Banked and Callback
// memory-access strategies of the mos6502 package.
package mappers

const (
	PageSize  = 256
	PageCount = 256
)

// ReadCallback services a read that falls within a page registered via
// MapReadCallback. It receives the full 16-bit address.
type ReadCallback func(addr uint16) uint8

// WriteCallback services a write that falls within a page registered via
// MapWriteCallback.
type WriteCallback func(addr uint16, val uint8)

// Overlay owns a flat RAM array plus independent 256-entry read and write
// page tables. A page table entry is either empty (falls through to RAM),
// a ROM image (read table only), or a callback function. The same page may
// be read from ROM and written to the underlying RAM, modeling hardware
// where writes fall through while reads are overlaid.
type Overlay struct {
	ram      []uint8
	readROM  [PageCount]*[PageSize]byte
	readCB   [PageCount]ReadCallback
	writeCB  [PageCount]WriteCallback
}

// New returns an Overlay with ramSize bytes of zeroed RAM and no overlays
// registered; every address falls through to RAM.
func New(ramSize int) *Overlay {
	return &Overlay{ram: make([]uint8, ramSize)}
}

// MapROM rewrites the read-page entry for page so that reads within it are
// served from data instead of RAM. Writes to the page are unaffected. data
// is copied; fewer than PageSize bytes are zero-padded.
func (o *Overlay) MapROM(page int, data []byte) {
	var buf [PageSize]byte
	copy(buf[:], data)
	o.readROM[page] = &buf
}

// UnmapROM clears a previously-registered ROM overlay for page, restoring
// direct RAM reads.
func (o *Overlay) UnmapROM(page int) {
	o.readROM[page] = nil
}

// MapReadCallback registers fn to service reads for count pages starting at
// startPage. A registered read callback takes priority over a ROM overlay.
func (o *Overlay) MapReadCallback(startPage, count int, fn ReadCallback) {
	for p := startPage; p < startPage+count && p < PageCount; p++ {
		o.readCB[p] = fn
	}
}

// MapWriteCallback registers fn to service writes for count pages starting
// at startPage.
func (o *Overlay) MapWriteCallback(startPage, count int, fn WriteCallback) {
	for p := startPage; p < startPage+count && p < PageCount; p++ {
		o.writeCB[p] = fn
	}
}

// Read implements mos6502.Memory.
func (o *Overlay) Read(addr uint16) uint8 {
	page := addr >> 8
	if cb := o.readCB[page]; cb != nil {
		return cb(addr)
	}
	if rom := o.readROM[page]; rom != nil {
		return rom[addr&0xff]
	}
	if int(addr) < len(o.ram) {
		return o.ram[addr]
	}
	return 0
}

// Write implements mos6502.Memory.
func (o *Overlay) Write(addr uint16, val uint8) {
	page := addr >> 8
	if cb := o.writeCB[page]; cb != nil {
		cb(addr, val)
		return
	}
	if int(addr) < len(o.ram) {
		o.ram[addr] = val
	}
}

// RawRAM exposes the backing array for direct-access strategies and tests
// that need to poke at memory without going through the overlay logic.
func (o *Overlay) RawRAM() []uint8 {
	return o.ram
}
