// Package db is a thin wrapper around a Bolt database that stores computed
// diffs keyed by the short content-hash ID used in the service's URLs.
package db

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

// DB centralizes functions that interact with the database.
type DB struct {
	DB *bbolt.DB

	err  error
	once sync.Once
}

func (d *DB) init() error {
	d.once.Do(d._init)
	return d.err
}

var bDiffs = []byte("diffs")

func (d *DB) _init() {
	err := d.DB.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bDiffs)
		return err
	})
	if err != nil {
		d.err = fmt.Errorf("initialization error: %w", err)
	}
}

// Record is a stored diff: the two inputs it was computed from and the
// rendered unified output, so a diff can be re-served without recomputing it.
type Record struct {
	CreatedAt time.Time `json:"created_at"`
	Old       string    `json:"old"`
	New       string    `json:"new"`
	Unified   string    `json:"unified"`
}

func (r Record) IsZero() bool {
	return r.CreatedAt.IsZero()
}

// HasDiff reports whether a record exists for id.
func (d *DB) HasDiff(id string) (bool, error) {
	if err := d.init(); err != nil {
		return false, err
	}
	var has bool
	err := d.DB.View(func(tx *bbolt.Tx) error {
		has = tx.Bucket(bDiffs).Get([]byte(id)) != nil
		return nil
	})
	return has, err
}

// PutDiff stores r under id, overwriting any existing record.
func (d *DB) PutDiff(id string, r Record) error {
	if err := d.init(); err != nil {
		return err
	}
	encoded, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return d.DB.Batch(func(tx *bbolt.Tx) error {
		return tx.Bucket(bDiffs).Put([]byte(id), encoded)
	})
}

// GetDiff returns the record stored under id, or the zero Record if none exists.
func (d *DB) GetDiff(id string) (Record, error) {
	if err := d.init(); err != nil {
		return Record{}, err
	}
	var buf []byte
	err := d.DB.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bDiffs).Get([]byte(id))
		buf = append(buf, data...)
		return nil
	})
	if err != nil || len(buf) == 0 {
		return Record{}, err
	}
	var r Record
	err = json.Unmarshal(buf, &r)
	return r, err
}
