package listings

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/domek/internal/domain"
	domlisting "github.com/kailas-cloud/domek/internal/domain/listing"
	"github.com/kailas-cloud/domek/internal/domain/query"
)

var keyPrefix = domain.KeyPrefix + "listing:"

// store is the consumer interface for listing persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo persists listings as per-partition Redis hashes.
type Repo struct {
	store store
}

// New creates a listings repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put creates or replaces a listing in its partition.
func (r *Repo) Put(ctx context.Context, l domlisting.Listing) error {
	if l.ID == "" || l.Partition == "" {
		return fmt.Errorf("listing id and partition are required")
	}
	if err := r.store.HSet(ctx, listingKey(l.Partition, l.ID), buildHashFields(&l)); err != nil {
		return fmt.Errorf("hset listing %s: %w", l.ID, err)
	}
	return nil
}

// Get returns a listing by partition and ID.
func (r *Repo) Get(ctx context.Context, p domlisting.Partition, id string) (domlisting.Listing, error) {
	fields, err := r.store.HGetAll(ctx, listingKey(p, id))
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("hgetall listing %s: %w", id, err)
	}
	if len(fields) == 0 {
		return domlisting.Listing{}, domain.ErrListingNotFound
	}
	return parseHashFields(id, p, fields), nil
}

// Delete removes a listing. Deleting a listing that does not exist is an
// ErrListingNotFound, not a silent no-op.
func (r *Repo) Delete(ctx context.Context, p domlisting.Partition, id string) error {
	key := listingKey(p, id)
	ok, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("exists listing %s: %w", id, err)
	}
	if !ok {
		return domain.ErrListingNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del listing %s: %w", id, err)
	}
	return nil
}

// Query evaluates the compiled query against one partition and returns the
// listings that satisfy every present predicate, in key order, capped at
// limit. The cap applies after predicate evaluation, not as a scan limit.
func (r *Repo) Query(ctx context.Context, p domlisting.Partition, q query.Query, limit int) ([]domlisting.Listing, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+string(p)+":*")
	if err != nil {
		return nil, storeErr(fmt.Errorf("scan %s partition: %w", p, err))
	}
	// Key order is the store's natural order; fixing it keeps repeated
	// queries over an unchanged store deterministic.
	sort.Strings(keys)

	all, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, storeErr(fmt.Errorf("fetch %s partition: %w", p, err))
	}

	var matched []domlisting.Listing
	for i, fields := range all {
		if len(fields) == 0 {
			continue
		}
		l := parseHashFields(idFromKey(keys[i]), p, fields)
		if !q.Matches(l) {
			continue
		}
		matched = append(matched, l)
		if limit > 0 && len(matched) >= limit {
			break
		}
	}
	return matched, nil
}

func listingKey(p domlisting.Partition, id string) string {
	return keyPrefix + string(p) + ":" + id
}

func idFromKey(key string) string {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return key
	}
	return key[i+1:]
}

// storeErr tags storage failures so the orchestrator can report them as
// fatal for the current query.
func storeErr(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
