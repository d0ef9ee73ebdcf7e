package roster

// Memory is an in-memory roster snapshot. It backs tests and CSV loads;
// the dashboard hands the engine whatever table it currently holds.
type Memory struct {
	rows map[int]map[string]string
}

// NewMemory returns an empty snapshot.
func NewMemory() *Memory {
	return &Memory{rows: make(map[int]map[string]string)}
}

// SetRow replaces an entire row. The map is copied.
func (m *Memory) SetRow(idx int, fields map[string]string) {
	row := make(map[string]string, len(fields))
	for k, v := range fields {
		row[k] = v
	}
	m.rows[idx] = row
}

// Set assigns a single field on a row, creating the row if needed.
func (m *Memory) Set(idx int, field, value string) {
	row, ok := m.rows[idx]
	if !ok {
		row = make(map[string]string)
		m.rows[idx] = row
	}
	row[field] = value
}

// Remove drops a row from the snapshot.
func (m *Memory) Remove(idx int) {
	delete(m.rows, idx)
}

// Len returns the number of rows in the snapshot.
func (m *Memory) Len() int { return len(m.rows) }

// Has implements Roster.
func (m *Memory) Has(idx int) bool {
	_, ok := m.rows[idx]
	return ok
}

// Field implements Roster.
func (m *Memory) Field(idx int, name string) Value {
	row, ok := m.rows[idx]
	if !ok {
		return Absent()
	}
	raw, ok := row[name]
	if !ok {
		return Absent()
	}
	return Of(raw)
}
