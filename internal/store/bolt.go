package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/asdine/storm"
)

// saveRecord is the storm document for one save slot.
type saveRecord struct {
	Key       string `storm:"id"`
	Data      string
	UpdatedAt time.Time
}

// Bolt is a Backend over a single-file bbolt database via storm. Storm's
// default JSON codec is used deliberately: the payloads are themselves JSON
// documents, so a binary codec would only double-encode opaque strings.
type Bolt struct {
	db *storm.DB
}

// OpenBolt opens (or creates) the bolt database at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := storm.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open save database: %w", err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Name() string { return "bolt" }

func (b *Bolt) List(ctx context.Context) ([]Entry, error) {
	var recs []saveRecord
	if err := b.db.All(&recs); err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	entries := make([]Entry, len(recs))
	for i, rec := range recs {
		entries[i] = Entry{Key: rec.Key, Size: len(rec.Data), UpdatedAt: rec.UpdatedAt}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

func (b *Bolt) Get(ctx context.Context, key string) (Record, error) {
	var rec saveRecord
	err := b.db.One("Key", key, &rec)
	if errors.Is(err, storm.ErrNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("loading save %q: %w", key, err)
	}
	return Record{Key: rec.Key, Data: rec.Data, UpdatedAt: rec.UpdatedAt}, nil
}

func (b *Bolt) Put(ctx context.Context, key, data string) error {
	rec := saveRecord{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	if err := b.db.Save(&rec); err != nil {
		return fmt.Errorf("storing save %q: %w", key, err)
	}
	return nil
}

func (b *Bolt) Close() error { return b.db.Close() }
