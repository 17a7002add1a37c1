// Package cache holds upstream response bodies in memory for a fixed
// revalidation window.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
	Clear()
	Len() int
}

// TTLCache is a Cache whose entries expire ttl after they were stored.
// A capacity of zero means no size bound; entries leave only by expiring.
// Expired entries are purged in the background by the underlying LRU.
type TTLCache struct {
	lru *expirable.LRU[string, []byte]
	ttl time.Duration
}

func New(capacity int, ttl time.Duration) *TTLCache {
	if capacity < 0 {
		capacity = 0
	}
	return &TTLCache{
		lru: expirable.NewLRU[string, []byte](capacity, nil, ttl),
		ttl: ttl,
	}
}

func (c *TTLCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

// Set stores value and restarts its expiry clock.
func (c *TTLCache) Set(key string, value []byte) {
	c.lru.Add(key, value)
}

func (c *TTLCache) Delete(key string) {
	c.lru.Remove(key)
}

func (c *TTLCache) Clear() {
	c.lru.Purge()
}

// Len counts stored entries, including expired ones not yet purged.
func (c *TTLCache) Len() int {
	return c.lru.Len()
}

func (c *TTLCache) TTL() time.Duration {
	return c.ttl
}
