package cache

import (
	"container/list"
	"sync"
)

// entry represents a key-value pair in the cache
type entry struct {
	key   string
	value interface{}
}

// LRUCache is a Least Recently Used cache. It is safe for concurrent use.
type LRUCache struct {
	mu         sync.Mutex
	maxSize    int
	cache      map[string]*list.Element
	doubleList *list.List
}

// NewLRUCache creates a new LRU cache with the given maximum size
func NewLRUCache(maxSize int) *LRUCache {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &LRUCache{
		maxSize:    maxSize,
		cache:      make(map[string]*list.Element),
		doubleList: list.New(),
	}
}

// Set adds or updates a key-value pair in the cache
func (l *LRUCache) Set(key string, value interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if element, exists := l.cache[key]; exists {
		l.doubleList.MoveToFront(element)
		element.Value.(*entry).value = value
		return
	}

	ele := l.doubleList.PushFront(&entry{key: key, value: value})
	l.cache[key] = ele

	if l.doubleList.Len() > l.maxSize {
		if oldest := l.doubleList.Back(); oldest != nil {
			l.removeElement(oldest)
		}
	}
}

// Get retrieves a value from the cache by key
func (l *LRUCache) Get(key string) (interface{}, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	element, exists := l.cache[key]
	if !exists {
		return nil, false
	}
	l.doubleList.MoveToFront(element)
	return element.Value.(*entry).value, true
}

// Len returns the number of cached entries.
func (l *LRUCache) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doubleList.Len()
}

// Purge drops every entry.
func (l *LRUCache) Purge() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]*list.Element)
	l.doubleList.Init()
}

func (l *LRUCache) removeElement(element *list.Element) {
	l.doubleList.Remove(element)
	delete(l.cache, element.Value.(*entry).key)
}
