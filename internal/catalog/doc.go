// Package catalog memoizes the venue's room/product catalog behind a
// sync.Once-guarded cache with an explicit Clear, mirroring
// original_source's database.py lru_cache-backed _load_rooms_cached /
// clear_cached_rooms pair (spec §5: "every such cache must expose a clear()
// affordance").
//
// The underlying lookup is pluggable via adapters.Catalog so tests and
// alternate deployments can swap in a different room/product source without
// touching the caching behavior.
package catalog
