package storage

import (
	"sync"

	"github.com/vovakirdan/lcd-dino/internal/core"
)

// BestScoreSlot is the cell slot holding the best score.
const BestScoreSlot = 0

// MaxCellValue is the largest value a 16-bit cell holds.
const MaxCellValue = 0xFFFF

// Cell is a device's best-score slot backed by the store. It also records
// runs in the device's history.
type Cell struct {
	store  *Store
	device string
	slot   int
}

// Cell returns the best-score cell for a device.
func (s *Store) Cell(device string) *Cell {
	return &Cell{store: s, device: device, slot: BestScoreSlot}
}

// Device returns the owning device name.
func (c *Cell) Device() string {
	return c.device
}

// ReadBestScore returns the stored best score, 0 on first use.
func (c *Cell) ReadBestScore() (int, error) {
	return c.store.ReadCell(c.device, c.slot)
}

// WriteBestScore stores the best score, clamped to 16 bits.
func (c *Cell) WriteBestScore(score int) error {
	return c.store.WriteCell(c.device, c.slot, core.Clamp(score, 0, MaxCellValue))
}

// RecordRun appends a run to the device's history.
func (c *Cell) RecordRun(score, best int) error {
	_, err := c.store.RecordRun(c.device, score, best)
	return err
}

// MemoryCell is a volatile best-score cell, used when no database is
// available.
type MemoryCell struct {
	mu    sync.Mutex
	value int
}

// NewMemoryCell returns a cell holding the given value.
func NewMemoryCell(value int) *MemoryCell {
	return &MemoryCell{value: core.Clamp(value, 0, MaxCellValue)}
}

// ReadBestScore returns the held value.
func (c *MemoryCell) ReadBestScore() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, nil
}

// WriteBestScore replaces the held value, clamped to 16 bits.
func (c *MemoryCell) WriteBestScore(score int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = core.Clamp(score, 0, MaxCellValue)
	return nil
}
