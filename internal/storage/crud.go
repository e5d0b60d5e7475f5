package storage

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/model"
)

var (
	// ErrKeyNotFound is returned when a key is not found in the database.
	ErrKeyNotFound = stderrors.New("key not found")
)

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return stderrors.Is(err, ErrKeyNotFound) || stderrors.Is(err, badger.ErrKeyNotFound)
}

// conflict maps Badger's optimistic transaction conflict onto errors.ErrConflict.
func conflict(err error) error {
	if stderrors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("%w: %v", errors.ErrConflict, err)
	}
	return err
}

// Get retrieves a value by key and unmarshals it into v.
func (d *DB) Get(key string, v model.Model) error {
	return d.db.View(func(txn *badger.Txn) error {
		return getTxn(txn, key, v)
	})
}

func getTxn(txn *badger.Txn, key string, v model.Model) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		return err
	}

	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, v); err != nil {
			return err
		}
		v.SetKey(key)
		return nil
	})
}

// Set stores a model in the database.
func (d *DB) Set(v model.Model) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return conflict(d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(v.GetKey()), data)
	}))
}

// Insert stores a model only if its key is absent. It returns errors.ErrConflict
// when the key already exists or a concurrent writer won the race.
func (d *DB) Insert(v model.Model) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	key := []byte(v.GetKey())
	return conflict(d.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s", errors.ErrConflict, v.GetKey())
		case !stderrors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		return txn.Set(key, data)
	}))
}

// GetOrCreate loads key into existing, or stores the model built by create when
// the key is absent. The returned bool reports whether a record was created.
func (d *DB) GetOrCreate(key string, existing model.Model, create func() model.Model) (model.Model, bool, error) {
	var (
		result  model.Model
		created bool
	)
	err := d.db.Update(func(txn *badger.Txn) error {
		err := getTxn(txn, key, existing)
		if err == nil {
			result = existing
			return nil
		}
		if !stderrors.Is(err, ErrKeyNotFound) {
			return err
		}

		fresh := create()
		fresh.SetKey(key)
		data, err := json.Marshal(fresh)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(key), data); err != nil {
			return err
		}
		result, created = fresh, true
		return nil
	})
	if err != nil {
		return nil, false, conflict(err)
	}
	return result, created, nil
}

// Delete removes a key from the database.
func (d *DB) Delete(key string) error {
	return conflict(d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	}))
}

// Exists checks if a key exists in the database.
func (d *DB) Exists(key string) (bool, error) {
	var exists bool
	err := d.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err != nil {
			if stderrors.Is(err, badger.ErrKeyNotFound) {
				exists = false
				return nil
			}
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// CountByPrefix counts the keys with the given prefix without reading values.
func (d *DB) CountByPrefix(prefix string) (int, error) {
	count := 0
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// GetAllByPrefix retrieves all values with the given prefix.
func GetAllByPrefix[T model.Model](d *DB, prefix string, newFunc func() T) ([]T, error) {
	return GetFilteredByPrefix(d, prefix, newFunc, nil)
}

// GetFilteredByPrefix retrieves the values with the given prefix for which keep
// returns true. A nil keep keeps everything. The scan runs in one read transaction.
func GetFilteredByPrefix[T model.Model](d *DB, prefix string, newFunc func() T, keep func(T) bool) ([]T, error) {
	var results []T
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 100
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				v := newFunc()
				if err := json.Unmarshal(val, v); err != nil {
					return fmt.Errorf("decode %s: %w", item.Key(), err)
				}
				v.SetKey(string(item.KeyCopy(nil)))
				if keep == nil || keep(v) {
					results = append(results, v)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return results, err
}
