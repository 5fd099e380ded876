// Package redisdb is the redis implementation of api.Provider. Every bucket
// is a redis hash, so the stores can be shared between agent processes.
package redisdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/findy-network/findy-exchange/agent/storage/api"
	"github.com/golang/glog"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix      = "findy-exchange"
	defaultTimeout = 15 * time.Second
)

type Provider struct {
	client  redis.UniversalClient
	timeout time.Duration
	prefix  string
}

// New connects to redis. addrs with more than one address gives a cluster
// client. namespace separates the agents sharing the same redis.
func New(addrs []string, namespace string) (*Provider, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:                 addrs,
		ContextTimeoutEnabled: true,
	})

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	glog.V(1).Infoln("redis storage:", addrs)
	return &Provider{
		client:  client,
		timeout: defaultTimeout,
		prefix:  keyPrefix + ":" + namespace,
	}, nil
}

func (p *Provider) OpenStore(name string) (api.Store, error) {
	for _, b := range api.Buckets {
		if b == name {
			return &store{p: p, hash: p.prefix + ":" + name}, nil
		}
	}
	return nil, fmt.Errorf("store %s not found", name)
}

func (p *Provider) Close() error {
	return p.client.Close()
}

func (p *Provider) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), p.timeout)
}

type store struct {
	p    *Provider
	hash string
}

func (s *store) Put(key string, value []byte) error {
	if key == "" || value == nil {
		return errors.New("key and value are mandatory")
	}
	ctx, cancel := s.p.ctx()
	defer cancel()

	return s.p.client.HSet(ctx, s.hash, key, value).Err()
}

func (s *store) Get(key string) ([]byte, error) {
	ctx, cancel := s.p.ctx()
	defer cancel()

	b, err := s.p.client.HGet(ctx, s.hash, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", key, api.ErrNotFound)
	}
	return b, err
}

func (s *store) Delete(key string) error {
	ctx, cancel := s.p.ctx()
	defer cancel()

	return s.p.client.HDel(ctx, s.hash, key).Err()
}

func (s *store) GetAll() ([][]byte, error) {
	ctx, cancel := s.p.ctx()
	defer cancel()

	vals, err := s.p.client.HVals(ctx, s.hash).Result()
	if err != nil {
		return nil, err
	}
	res := make([][]byte, len(vals))
	for i, v := range vals {
		res[i] = []byte(v)
	}
	return res, nil
}
