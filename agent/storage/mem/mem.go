// Package mem is in-memory api.Provider for tests and single process agents.
package mem

import (
	"errors"
	"fmt"
	"sync"

	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/golang/glog"
)

type Provider struct {
	l      sync.Mutex
	stores map[string]*Store
}

// New returns provider serving all the api.Buckets.
func New() *Provider {
	p := &Provider{stores: make(map[string]*Store)}
	for _, name := range api.Buckets {
		p.stores[name] = &Store{data: make(map[string][]byte)}
	}
	return p
}

func (p *Provider) OpenStore(name string) (api.Store, error) {
	p.l.Lock()
	defer p.l.Unlock()

	if s, ok := p.stores[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("store %s not found", name)
}

func (p *Provider) Close() error {
	glog.V(7).Infoln("mem provider close")
	return nil
}

type Store struct {
	l    sync.RWMutex
	data map[string][]byte
}

func (s *Store) Put(key string, value []byte) error {
	if key == "" || value == nil {
		return errors.New("key and value are mandatory")
	}
	s.l.Lock()
	defer s.l.Unlock()

	s.data[key] = append(value[:0:0], value...)
	return nil
}

func (s *Store) Get(key string) ([]byte, error) {
	s.l.RLock()
	defer s.l.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", key, api.ErrNotFound)
	}
	return append(v[:0:0], v...), nil
}

func (s *Store) Delete(key string) error {
	s.l.Lock()
	defer s.l.Unlock()

	delete(s.data, key)
	return nil
}

func (s *Store) GetAll() ([][]byte, error) {
	s.l.RLock()
	defer s.l.RUnlock()

	values := make([][]byte, 0, len(s.data))
	for _, v := range s.data {
		values = append(values, append(v[:0:0], v...))
	}
	return values, nil
}
