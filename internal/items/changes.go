package items

// ChangeRecord describes one rescaled item.
type ChangeRecord struct {
	Identity string
	Original int64
	Modified int64
	Note     string
}

// Changes is an insertion-ordered mapping from identity to ChangeRecord.
// Setting an identity again replaces its record in place.
type Changes struct {
	order []string
	byID  map[string]ChangeRecord
}

// NewChanges returns an empty Changes.
func NewChanges() *Changes {
	return &Changes{byID: make(map[string]ChangeRecord)}
}

// Set stores rec under rec.Identity.
func (c *Changes) Set(rec ChangeRecord) {
	if _, ok := c.byID[rec.Identity]; !ok {
		c.order = append(c.order, rec.Identity)
	}
	c.byID[rec.Identity] = rec
}

// Get returns the record for identity.
func (c *Changes) Get(identity string) (ChangeRecord, bool) {
	rec, ok := c.byID[identity]
	return rec, ok
}

// Len returns the number of distinct identities recorded.
func (c *Changes) Len() int { return len(c.order) }

// Records returns the records in insertion order.
func (c *Changes) Records() []ChangeRecord {
	out := make([]ChangeRecord, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
