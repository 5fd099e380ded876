// Package wrapper is the bolt implementation of api.Provider. It's built on
// findy-common-go's managed bolt DB: keys are hashed and values encrypted
// when the store key is given.
package wrapper

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/findy-network/findy-common-go/crypto"
	"github.com/findy-network/findy-common-go/crypto/db"
	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const level7 = 7

type Config struct {
	Key      string // hex encoded AES key, empty: no encryption
	FileName string
	FilePath string
}

type StorageProvider struct {
	l sync.RWMutex

	conf    Config
	db      db.Handle
	buckets map[string]*bucket
	cipher  *crypto.Cipher
}

func New(config Config) *StorageProvider {
	s := &StorageProvider{
		conf:    config,
		buckets: make(map[string]*bucket),
	}

	var bucketKey byte
	for _, name := range api.Buckets {
		s.buckets[name] = newBucket(s, bucketKey)
		bucketKey++
	}
	return s
}

func (s *StorageProvider) Init() (err error) {
	defer err2.Handle(&err, "bolt storage open")

	s.l.Lock()
	defer s.l.Unlock()

	if s.db != nil {
		glog.Warningf("skipping storage provider initialization for %s, already open", s.conf.FileName)
		return nil
	}

	if s.conf.Key != "" {
		k := try.To1(hex.DecodeString(s.conf.Key))
		s.cipher = crypto.NewCipher(k)
	}

	path := "."
	if s.conf.FilePath != "" {
		path = s.conf.FilePath
	}
	filename := filepath.Join(path, s.conf.FileName+".bolt")

	mgdBuckets := make([][]byte, 0, len(api.Buckets))
	for _, b := range s.buckets {
		mgdBuckets = append(mgdBuckets, []byte{b.bucketID})
	}

	// this will not open the file handle to db, just initializes it
	s.db = db.New(db.Cfg{
		Filename:   filename,
		Buckets:    mgdBuckets,
		BackupName: filename + "_backup",
	})
	glog.V(1).Infoln("bolt storage:", filename)
	return nil
}

func (s *StorageProvider) ID() string {
	return s.conf.FileName
}

func (s *StorageProvider) OpenStore(name string) (api.Store, error) {
	glog.V(level7).Infoln("StorageProvider::OpenStore", s.ID(), name)

	if b, ok := s.buckets[name]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("store %s not found", name)
}

func (s *StorageProvider) Close() (err error) {
	defer err2.Handle(&err, "bolt storage close")

	s.l.Lock()
	defer s.l.Unlock()

	if s.db == nil {
		glog.Warningf("skipping storage provider close for %s, already closed", s.conf.FileName)
		return nil
	}

	try.To(s.db.Close())
	s.db = nil
	return nil
}

// use runs fn with the open DB under the read lock.
func (s *StorageProvider) use(fn func(mgd db.Handle) error) error {
	s.l.RLock()
	defer s.l.RUnlock()

	if s.db == nil {
		return errClosed
	}
	return fn(s.db)
}

// keyData hashes the key when values are encrypted.
func (s *StorageProvider) keyData(key []byte) *db.Data {
	return &db.Data{Data: key, Read: s.hash}
}

func (s *StorageProvider) addData(bucketID byte, key, value []byte) error {
	return s.use(func(mgd db.Handle) error {
		return mgd.AddKeyValueToBucket([]byte{bucketID},
			&db.Data{Data: value, Read: s.encrypt}, s.keyData(key))
	})
}

func (s *StorageProvider) getData(bucketID byte, key []byte) (value []byte, err error) {
	err = s.use(func(mgd db.Handle) error {
		_, err := mgd.GetKeyValueFromBucket([]byte{bucketID}, s.keyData(key),
			&db.Data{
				Write: s.decrypt,
				Use: func(d []byte) interface{} {
					value = d
					return nil
				},
			})
		return err
	})
	return value, err
}

func (s *StorageProvider) deleteData(bucketID byte, key string) error {
	return s.use(func(mgd db.Handle) error {
		return mgd.RmKeyValueFromBucket([]byte{bucketID}, s.keyData([]byte(key)))
	})
}

func (s *StorageProvider) getAll(bucketID byte) (res [][]byte, err error) {
	err = s.use(func(mgd db.Handle) (err error) {
		res, err = mgd.GetAllValuesFromBucket([]byte{bucketID}, s.decrypt)
		return err
	})
	return res, err
}

func (s *StorageProvider) hash(key []byte) []byte {
	if s.cipher != nil {
		h := md5.Sum(key)
		return h[:]
	}
	return append(key[:0:0], key...)
}

func (s *StorageProvider) encrypt(value []byte) []byte {
	if s.cipher != nil {
		return s.cipher.TryEncrypt(value)
	}
	return append(value[:0:0], value...)
}

func (s *StorageProvider) decrypt(value []byte) []byte {
	if s.cipher != nil {
		return s.cipher.TryDecrypt(value)
	}
	return append(value[:0:0], value...)
}
