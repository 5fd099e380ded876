package wrapper

import (
	"errors"
	"fmt"

	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

var errClosed = errors.New("storage is closed")

type bucket struct {
	bucketID byte
	owner    *StorageProvider
}

func newBucket(owner *StorageProvider, bucketID byte) *bucket {
	return &bucket{
		owner:    owner,
		bucketID: bucketID,
	}
}

// Put stores the key + value pair. If key is empty or value is nil, then an
// error will be returned.
func (b *bucket) Put(key string, value []byte) (err error) {
	glog.V(level7).Infoln("bucket::Put", key)

	if key == "" || value == nil {
		return errors.New("key and value are mandatory")
	}
	return b.owner.addData(b.bucketID, []byte(key), value)
}

// Get fetches the value associated with the given key. If key cannot be
// found, then an error wrapping api.ErrNotFound will be returned.
func (b *bucket) Get(key string) (data []byte, err error) {
	defer err2.Handle(&err, "bucket get")

	glog.V(level7).Infoln("bucket::Get", key)

	data = try.To1(b.owner.getData(b.bucketID, []byte(key)))
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", key, api.ErrNotFound)
	}
	return data, nil
}

// Delete deletes the key + value pair associated with key.
func (b *bucket) Delete(key string) error {
	glog.V(level7).Infoln("bucket::Delete", key)

	return b.owner.deleteData(b.bucketID, key)
}

func (b *bucket) GetAll() ([][]byte, error) {
	glog.V(level7).Infoln("bucket::GetAll")

	return b.owner.getAll(b.bucketID)
}
