package cache

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache()
	c.Set("k", "v", 0)
	v, ok := c.Get("k")
	if !ok || v != "v" {
		t.Errorf("Get(k) = (%v, %v), want (v, true)", v, ok)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache()
	c.Set("k", "v", 1)
	c.m.Store("k", cacheItem{Value: "v", ExpiresAt: time.Now().Add(-time.Second).UnixNano()})
	if _, ok := c.Get("k"); ok {
		t.Error("expired key still readable")
	}
}

func TestCache_Delete(t *testing.T) {
	c := NewCache()
	c.Set("k", 1, 0)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("deleted key still readable")
	}
}

func TestCache_CompositeKeys(t *testing.T) {
	c := NewCache()
	c.SetN([]interface{}{"search", "widget", 1}, []int{1, 2}, 0)
	v, ok := c.GetN("search", "widget", 1)
	if !ok {
		t.Fatal("composite key not found")
	}
	if ids := v.([]int); len(ids) != 2 {
		t.Errorf("len = %d, want 2", len(ids))
	}
	c.DeleteN("search", "widget", 1)
	if _, ok := c.GetN("search", "widget", 1); ok {
		t.Error("composite key not deleted")
	}
}
