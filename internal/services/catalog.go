package services

import (
	"context"

	"verbtrainer/internal/models"
	"verbtrainer/internal/observability"
)

// VerbCatalog is the immutable, ordered verb table. It is safe for concurrent
// readers because nothing mutates it after construction.
type VerbCatalog struct {
	verbs []*models.VerbRecord
	index map[string]*models.VerbRecord
}

// NewVerbCatalog builds a catalog from records in the given order. Duplicate
// infinitives (after folding) are kept for iteration; Lookup returns the first.
func NewVerbCatalog(ctx context.Context, records []models.VerbRecord, logger *observability.Logger) *VerbCatalog {
	c := &VerbCatalog{
		verbs: make([]*models.VerbRecord, 0, len(records)),
		index: make(map[string]*models.VerbRecord, len(records)),
	}
	for i := range records {
		rec := &records[i]
		c.verbs = append(c.verbs, rec)
		key := FoldSpanish(rec.Spanish)
		if existing, ok := c.index[key]; ok {
			if logger != nil {
				logger.Warn(ctx, "Duplicate infinitive in verb catalog", map[string]interface{}{
					"infinitive": rec.Spanish,
					"kept":       existing.Spanish,
				})
			}
			continue
		}
		c.index[key] = rec
	}
	return c
}

// Verbs returns the records in catalog order
func (c *VerbCatalog) Verbs() []*models.VerbRecord {
	out := make([]*models.VerbRecord, len(c.verbs))
	copy(out, c.verbs)
	return out
}

// Len returns the number of records
func (c *VerbCatalog) Len() int {
	return len(c.verbs)
}

// At returns the record at position i
func (c *VerbCatalog) At(i int) *models.VerbRecord {
	return c.verbs[i]
}

// Lookup finds a verb by infinitive, ignoring case and accents
func (c *VerbCatalog) Lookup(infinitive string) (*models.VerbRecord, bool) {
	rec, ok := c.index[FoldSpanish(infinitive)]
	return rec, ok
}

// Summaries lists every verb with its senses and available tenses
func (c *VerbCatalog) Summaries() []models.VerbSummary {
	out := make([]models.VerbSummary, 0, len(c.verbs))
	for _, v := range c.verbs {
		out = append(out, models.VerbSummary{
			Spanish: v.Spanish,
			Senses:  senseLabels(v),
			Tenses:  tenseLabels(v.AvailableTenses()),
		})
	}
	return out
}

// IrregularTable maps a normalized sense key ("to be", "to take off") to its
// English past forms. It is read-only after construction.
type IrregularTable struct {
	entries map[string]models.IrregularEntry
}

// NewIrregularTable copies entries into a table keyed by lowercased sense
func NewIrregularTable(entries map[string]models.IrregularEntry) *IrregularTable {
	t := &IrregularTable{entries: make(map[string]models.IrregularEntry, len(entries))}
	for k, v := range entries {
		t.entries[NormalizeEnglish(k)] = v
	}
	return t
}

// Find returns the entry for the first key present in the table
func (t *IrregularTable) Find(keys ...string) (models.IrregularEntry, bool) {
	if t == nil {
		return models.IrregularEntry{}, false
	}
	for _, k := range keys {
		if entry, ok := t.entries[NormalizeEnglish(k)]; ok {
			return entry, true
		}
	}
	return models.IrregularEntry{}, false
}

// Len returns the number of entries
func (t *IrregularTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

func senseLabels(v *models.VerbRecord) []string {
	out := make([]string, len(v.Senses))
	for i, s := range v.Senses {
		out[i] = s.Display()
	}
	return out
}

func tenseLabels(tenses []models.Tense) []string {
	out := make([]string, len(tenses))
	for i, t := range tenses {
		out[i] = t.String()
	}
	return out
}
