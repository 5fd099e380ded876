// Package cfg opens the agent store selected by the settings. Opened bolt
// files are kept in a process level map, so the same file is never opened
// twice.
package cfg

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/findy-network/findy-exchange/agent/storage/mem"
	"github.com/findy-network/findy-exchange/agent/storage/redisdb"
	"github.com/findy-network/findy-exchange/agent/storage/wrapper"
	"github.com/findy-network/findy-exchange/agent/utils"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type StorageInfo struct {
	storage *wrapper.StorageProvider
	refs    int
}

type InfoMap map[string]*StorageInfo

var storages = struct {
	InfoMap
	sync.Mutex
}{
	InfoMap: make(InfoMap),
}

// New opens the store of settings. Close the returned provider when done.
func New(h *utils.Hub) (p api.Provider, err error) {
	defer err2.Handle(&err, "open storage from cfg")

	switch h.StoreType() {
	case utils.StoreMemory:
		return mem.New(), nil
	case utils.StoreRedis:
		return try.To1(redisdb.New([]string{h.RedisAddr()}, h.Label())), nil
	case utils.StoreBolt:
		return openBolt(h.StorePath(), h.StoreKey())
	}
	return nil, fmt.Errorf("unknown store type %q", h.StoreType())
}

func openBolt(path, key string) (p api.Provider, err error) {
	storages.Lock()
	defer storages.Unlock()

	uniqueID, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if info, exist := storages.InfoMap[uniqueID]; exist {
		info.refs++
		glog.V(5).Infoln("open existing agent storage:", uniqueID, info.refs)
		return &boltRef{StorageProvider: info.storage, id: uniqueID}, nil
	}

	dir, file := filepath.Split(uniqueID)
	s := wrapper.New(wrapper.Config{
		Key:      key,
		FileName: trimExt(file),
		FilePath: dir,
	})
	if err = s.Init(); err != nil {
		return nil, err
	}
	glog.V(5).Infoln("successful first time opening agent storage:", uniqueID)
	storages.InfoMap[uniqueID] = &StorageInfo{storage: s, refs: 1}
	return &boltRef{StorageProvider: s, id: uniqueID}, nil
}

func trimExt(file string) string {
	return file[:len(file)-len(filepath.Ext(file))]
}

// boltRef closes the shared bolt file when the last reference is closed.
type boltRef struct {
	*wrapper.StorageProvider
	id string
}

func (b *boltRef) Close() (err error) {
	defer err2.Handle(&err, "close agent storage from cfg")

	storages.Lock()
	defer storages.Unlock()

	info, exist := storages.InfoMap[b.id]
	if !exist {
		glog.Warningf("Close called but storage (%s) not open!", b.id)
		return nil
	}
	info.refs--
	if info.refs > 0 {
		return nil
	}
	delete(storages.InfoMap, b.id)
	try.To(info.storage.Close())
	glog.V(5).Infoln("successful closing agent storage:", b.id)
	return nil
}
