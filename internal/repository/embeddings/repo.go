// Package embeddings persists embedding records: per-listing dense vectors
// derived from composed listing text, plus the raw text itself so a vector
// can be re-derived on demand. Records are written by the indexer and read
// by the subset reranker; an approximate index is deliberately absent since
// only filtered subsets are ever ranked.
package embeddings

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/domek/internal/db"
	"github.com/kailas-cloud/domek/internal/domain"
	domlisting "github.com/kailas-cloud/domek/internal/domain/listing"
)

var keyPrefix = domain.KeyPrefix + "embedding:"

// Record is one stored embedding: the key may be a base listing ID or a
// chunk-level key (base + chunk suffix).
type Record struct {
	ID     string
	Vector []float32
	Text   string
}

// store is the consumer interface for embedding persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo persists embedding records as Redis hashes.
type Repo struct {
	store store
}

// New creates an embeddings repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put creates or refreshes an embedding record.
func (r *Repo) Put(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("embedding record id is required")
	}
	fields := map[string]string{
		"vector": vectorToBytes(rec.Vector),
		"text":   rec.Text,
	}
	if err := r.store.HSet(ctx, keyPrefix+rec.ID, fields); err != nil {
		return fmt.Errorf("hset embedding %s: %w", rec.ID, err)
	}
	return nil
}

// PutMulti writes several records in one pipelined round-trip. The chunked
// indexing path uses it so re-indexing a long listing is not N writes.
func (r *Repo) PutMulti(ctx context.Context, recs []Record) error {
	items := make([]db.HashSetItem, 0, len(recs))
	for _, rec := range recs {
		if rec.ID == "" {
			return fmt.Errorf("embedding record id is required")
		}
		items = append(items, db.HashSetItem{
			Key: keyPrefix + rec.ID,
			Fields: map[string]string{
				"vector": vectorToBytes(rec.Vector),
				"text":   rec.Text,
			},
		})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset embeddings: %w", err)
	}
	return nil
}

// Get returns the embedding record for a listing ID. When the store was
// populated with chunk-level records, the first chunk of the listing is
// returned instead; its key still identifies the same listing. found is
// false when the listing has no semantic coverage at all.
func (r *Repo) Get(ctx context.Context, id string) (Record, bool, error) {
	rec, ok, err := r.getExact(ctx, id)
	if err != nil || ok {
		return rec, ok, err
	}

	// Chunk-level fallback: any key whose base is this listing.
	keys, err := r.store.Scan(ctx, keyPrefix+id+"_chunk_*")
	if err != nil {
		return Record{}, false, fmt.Errorf("scan embedding chunks %s: %w", id, err)
	}
	if len(keys) == 0 {
		return Record{}, false, nil
	}
	sort.Strings(keys)
	return r.getExact(ctx, keys[0][len(keyPrefix):])
}

// Delete removes the embedding record for a listing, including any
// chunk-level records.
func (r *Repo) Delete(ctx context.Context, id string) error {
	keys, err := r.store.Scan(ctx, keyPrefix+id+"*")
	if err != nil {
		return fmt.Errorf("scan embeddings %s: %w", id, err)
	}
	for _, key := range keys {
		if domlisting.BaseID(key[len(keyPrefix):]) != id {
			continue
		}
		if err := r.store.Del(ctx, key); err != nil {
			return fmt.Errorf("del embedding %s: %w", key, err)
		}
	}
	return nil
}

func (r *Repo) getExact(ctx context.Context, id string) (Record, bool, error) {
	fields, err := r.store.HGetAll(ctx, keyPrefix+id)
	if err != nil {
		return Record{}, false, fmt.Errorf("hgetall embedding %s: %w", id, err)
	}
	if len(fields) == 0 {
		return Record{}, false, nil
	}
	return Record{
		ID:     id,
		Vector: bytesToVector(fields["vector"]),
		Text:   fields["text"],
	}, true, nil
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
