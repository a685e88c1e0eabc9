package valueparse

// cacheCapacity is the MRU cache's fixed entry count (spec §4.7/§9).
const cacheCapacity = 8

// missCheckInterval is how often (in misses) the hit-rate guard is
// evaluated.
const missCheckInterval = 4096

// minHitRate is the guard threshold: below this, the cache is disabled
// for the remainder of the column (spec §9).
const minHitRate = 0.10

type cacheEntry struct {
	meta    uint64
	content string
	valid   bool
}

// StringCache is a fixed-capacity MRU string interning cache, one per
// column, grounded on the same "fixed-capacity, approximate before exact"
// shape as common.BloomFilter: a cheap packed fingerprint is compared
// before falling back to a full byte comparison.
type StringCache struct {
	entries  [cacheCapacity]cacheEntry
	disabled bool

	hits        int
	missesSince int
}

// NewStringCache returns an empty, enabled cache.
func NewStringCache() *StringCache {
	return &StringCache{}
}

func meta(b []byte) uint64 {
	n := len(b)
	var first, last byte
	if n > 0 {
		first = b[0]
		last = b[n-1]
	}
	return uint64(n)<<16 | uint64(first)<<8 | uint64(last)
}

// Intern returns an owned string equal to b, reusing a cached allocation
// when one matches. The chunk driver calls it for unquoted string fields;
// quoted fields go through QuotedString and bypass the cache.
func (c *StringCache) Intern(b []byte) string {
	if c.disabled {
		return string(b)
	}

	m := meta(b)
	for i := range c.entries {
		e := &c.entries[i]
		if !e.valid || e.meta != m {
			continue
		}
		if e.content == string(b) {
			c.hits++
			c.promote(i)
			return e.content
		}
	}

	c.recordMiss()
	s := string(b)
	c.insert(m, s)
	return s
}

// promote moves the hit entry to the front (MRU position).
func (c *StringCache) promote(i int) {
	if i == 0 {
		return
	}
	hit := c.entries[i]
	copy(c.entries[1:i+1], c.entries[0:i])
	c.entries[0] = hit
}

// insert evicts the LRU (last) slot and installs a new MRU entry.
func (c *StringCache) insert(m uint64, s string) {
	copy(c.entries[1:], c.entries[:cacheCapacity-1])
	c.entries[0] = cacheEntry{meta: m, content: s, valid: true}
}

func (c *StringCache) recordMiss() {
	c.missesSince++
	if c.missesSince < missCheckInterval {
		return
	}
	total := c.hits + c.missesSince
	if total > 0 && float64(c.hits)/float64(total) < minHitRate {
		c.disabled = true
	}
	c.hits = 0
	c.missesSince = 0
}
