package valueparse

import "testing"

func TestStringCacheHitReusesContent(t *testing.T) {
	c := NewStringCache()
	a := c.Intern([]byte("hello"))
	b := c.Intern([]byte("hello"))
	if a != b {
		t.Fatalf("expected equal strings, got %q vs %q", a, b)
	}
	if c.hits == 0 {
		t.Fatal("expected a cache hit on the second call")
	}
}

func TestStringCacheDistinguishesSimilarLengths(t *testing.T) {
	c := NewStringCache()
	got := c.Intern([]byte("cat"))
	if got != "cat" {
		t.Fatalf("got %q", got)
	}
	got2 := c.Intern([]byte("dog"))
	if got2 != "dog" {
		t.Fatalf("got %q", got2)
	}
}

func TestStringCacheDisablesOnLowHitRate(t *testing.T) {
	c := NewStringCache()
	for i := 0; i < missCheckInterval+1; i++ {
		// Every value distinct: guarantees misses only, well under the
		// minimum hit rate.
		c.Intern([]byte{byte(i), byte(i >> 8)})
	}
	if !c.disabled {
		t.Fatal("expected cache to disable itself after a run of all misses")
	}
}
