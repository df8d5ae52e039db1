package cellstore

import (
	"encoding/hex"

	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/domain/cellmodel/serialization"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldbErrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	cellsBucket   = []byte("cells/")
	lockSeparator = []byte("/")
)

// CellStore keeps the live cells of the wallet's locks in a leveldb
// database, indexed by lock script.
type CellStore struct {
	ldb *leveldb.DB
}

// New opens the store at path, creating it if it doesn't exist.
func New(path string) (*CellStore, error) {
	ldb, err := leveldb.OpenFile(path, Options())

	// If the database is corrupted, attempt to recover.
	if _, corrupted := err.(*ldbErrors.ErrCorrupted); corrupted {
		log.Warnf("LevelDB corruption detected for path %s: %s", path, err)
		ldb, err = leveldb.RecoverFile(path, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to recover the cell store at %s", path)
		}
		log.Warnf("LevelDB recovered from corruption for path %s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open the cell store at %s", path)
	}
	return &CellStore{ldb: ldb}, nil
}

// Close closes the store.
func (s *CellStore) Close() error {
	return s.ldb.Close()
}

// lockPrefix returns the key prefix of all cells locked by lock.
// The serialized lock is hex encoded so no lock is a prefix of another.
func lockPrefix(lock *cellmodel.Script) []byte {
	encodedLock := hex.EncodeToString(serialization.SerializeScript(lock))
	prefix := make([]byte, 0, len(cellsBucket)+len(encodedLock)+len(lockSeparator))
	prefix = append(prefix, cellsBucket...)
	prefix = append(prefix, encodedLock...)
	return append(prefix, lockSeparator...)
}

func cellKey(lock *cellmodel.Script, outPoint *cellmodel.OutPoint) []byte {
	return append(lockPrefix(lock), serialization.SerializeOutPoint(outPoint)...)
}

// Put stores a live cell, replacing any cell stored at the same out point.
func (s *CellStore) Put(cell *cellmodel.Cell) error {
	serialized, err := serialization.SerializeLiveCell(cell)
	if err != nil {
		return err
	}
	err = s.ldb.Put(cellKey(cell.Lock, cell.OutPoint), serialized, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to store cell %s", cell.OutPoint)
	}
	return nil
}

// PutAll stores cells atomically.
func (s *CellStore) PutAll(cells []*cellmodel.Cell) error {
	batch := new(leveldb.Batch)
	for _, cell := range cells {
		serialized, err := serialization.SerializeLiveCell(cell)
		if err != nil {
			return err
		}
		batch.Put(cellKey(cell.Lock, cell.OutPoint), serialized)
	}
	err := s.ldb.Write(batch, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to store %d cells", len(cells))
	}
	log.Debugf("Stored %d cells", len(cells))
	return nil
}

// Remove deletes the cell of lock at outPoint. Removing a missing cell is
// not an error.
func (s *CellStore) Remove(lock *cellmodel.Script, outPoint *cellmodel.OutPoint) error {
	err := s.ldb.Delete(cellKey(lock, outPoint), nil)
	if err != nil {
		return errors.Wrapf(err, "failed to remove cell %s", outPoint)
	}
	return nil
}

// RemoveSpent deletes every input of tx from the store.
func (s *CellStore) RemoveSpent(tx *cellmodel.Transaction) error {
	batch := new(leveldb.Batch)
	for _, input := range tx.Raw.Inputs {
		if input.OutPoint == nil {
			return errors.Errorf("input cell %s has no out point", input)
		}
		batch.Delete(cellKey(input.Lock, input.OutPoint))
	}
	err := s.ldb.Write(batch, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to remove %d spent cells", len(tx.Raw.Inputs))
	}
	return nil
}

// ReplaceCells atomically replaces the stored cells of lock with cells.
func (s *CellStore) ReplaceCells(lock *cellmodel.Script, cells []*cellmodel.Cell) error {
	batch := new(leveldb.Batch)
	iterator := s.ldb.NewIterator(util.BytesPrefix(lockPrefix(lock)), nil)
	for iterator.Next() {
		batch.Delete(append([]byte(nil), iterator.Key()...))
	}
	iterator.Release()
	if err := iterator.Error(); err != nil {
		return errors.WithStack(err)
	}

	for _, cell := range cells {
		if !cell.Lock.Equal(lock) {
			return errors.Errorf("cell %s isn't locked by %s", cell, lock)
		}
		serialized, err := serialization.SerializeLiveCell(cell)
		if err != nil {
			return err
		}
		batch.Put(cellKey(cell.Lock, cell.OutPoint), serialized)
	}
	err := s.ldb.Write(batch, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to replace the cells of %s", lock)
	}
	log.Debugf("Replaced the cells of %s with %d cells", lock, len(cells))
	return nil
}

// Cells returns the stored cells locked by lock, ordered by out point.
func (s *CellStore) Cells(lock *cellmodel.Script) ([]*cellmodel.Cell, error) {
	var cells []*cellmodel.Cell
	err := s.ForEachCell(lock, func(cell *cellmodel.Cell) (bool, error) {
		cells = append(cells, cell)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return cells, nil
}

// ForEachCell calls f with every stored cell locked by lock, ordered by out
// point, until f returns false or an error.
func (s *CellStore) ForEachCell(lock *cellmodel.Script, f func(cell *cellmodel.Cell) (bool, error)) error {
	iterator := s.ldb.NewIterator(util.BytesPrefix(lockPrefix(lock)), nil)
	defer iterator.Release()

	for iterator.Next() {
		cell, err := serialization.DeserializeLiveCell(iterator.Value())
		if err != nil {
			return errors.Wrapf(err, "corrupted cell at key %x", iterator.Key())
		}
		shouldContinue, err := f(cell)
		if err != nil {
			return err
		}
		if !shouldContinue {
			break
		}
	}
	return errors.WithStack(iterator.Error())
}
