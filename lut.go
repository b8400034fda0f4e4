package rasterops

import (
	"errors"
	"fmt"
	"sync"
)

// channelTableSize is the number of entries per channel table; a full
// lookup table covers all four channels.
const (
	channelTableSize = 256
	lookupTableLen   = 4 * channelTableSize
)

// ErrTableSize is returned when a lookup table does not contain exactly
// 1024 entries (256 per channel).
var ErrTableSize = errors.New("lookup table must contain exactly 1024 entries")

// ChannelFunc maps an 8-bit channel value, given as an int in [0, 255],
// to its replacement. Results are clamped to [0, 255] when the table is
// built, so formulas that overflow do not wrap.
type ChannelFunc func(v int) int

// IdentityChannel maps every channel value to itself.
func IdentityChannel(v int) int {
	return v
}

// LookupFilter is the fast path for independent-channel transforms:
// four 256-entry tables, one per channel, built once per application
// and then applied with direct indexing. Table layout is alpha, red,
// green, blue, 256 entries each.
type LookupFilter struct {
	alphaFn ChannelFunc
	redFn   ChannelFunc
	greenFn ChannelFunc
	blueFn  ChannelFunc

	// prebuilt is set for filters constructed from a raw table or a
	// cache; nil means BuildTable evaluates the channel functions.
	prebuilt []uint8
}

// NewLookupFilter creates a lookup filter from red, green, and blue
// transform functions. Alpha defaults to identity.
func NewLookupFilter(red, green, blue ChannelFunc) *LookupFilter {
	return NewLookupFilterARGB(IdentityChannel, red, green, blue)
}

// NewLookupFilterARGB creates a lookup filter with an explicit alpha
// transform as well.
func NewLookupFilterARGB(alpha, red, green, blue ChannelFunc) *LookupFilter {
	return &LookupFilter{alphaFn: alpha, redFn: red, greenFn: green, blueFn: blue}
}

// NewLookupFilterFromTable creates a lookup filter from a prebuilt raw
// table. The table must contain exactly 1024 entries; anything else is
// rejected here, before any pixel is touched.
func NewLookupFilterFromTable(table []uint8) (*LookupFilter, error) {
	if len(table) != lookupTableLen {
		return nil, fmt.Errorf("%d entries: %w", len(table), ErrTableSize)
	}
	return &LookupFilter{prebuilt: table}, nil
}

// BuildTable evaluates each channel function at all 256 inputs and
// returns the combined 1024-entry table. Filters built from a raw table
// return that table unchanged. Callers that apply the same filter
// repeatedly can keep the result in a TableCache.
func (f *LookupFilter) BuildTable() ([]uint8, error) {
	if f.prebuilt != nil {
		return f.prebuilt, nil
	}
	if f.alphaFn == nil || f.redFn == nil || f.greenFn == nil || f.blueFn == nil {
		return nil, fmt.Errorf("building lookup table: %w", ErrNilPixelFunc)
	}
	table := make([]uint8, 0, lookupTableLen)
	for _, fn := range []ChannelFunc{f.alphaFn, f.redFn, f.greenFn, f.blueFn} {
		for v := 0; v < channelTableSize; v++ {
			table = append(table, clampChannel(fn(v)))
		}
	}
	if len(table) != lookupTableLen {
		return nil, fmt.Errorf("%d entries: %w", len(table), ErrTableSize)
	}
	return table, nil
}

func (f *LookupFilter) pointFn() (func(*PixelView), error) {
	table, err := f.BuildTable()
	if err != nil {
		return nil, err
	}
	at := table[0:channelTableSize]
	rt := table[channelTableSize : 2*channelTableSize]
	gt := table[2*channelTableSize : 3*channelTableSize]
	bt := table[3*channelTableSize : 4*channelTableSize]
	return func(px *PixelView) {
		p := px.ARGB()
		px.SetARGB(PackARGB(at[AlphaOf(p)], rt[RedOf(p)], gt[GreenOf(p)], bt[BlueOf(p)]))
	}, nil
}

// Apply builds the table once, then replaces every pixel in the region
// using four direct table lookups and one packed store.
func (f *LookupFilter) Apply(buf *PixelBuffer, opts *Options) error {
	visit, err := f.pointFn()
	if err != nil {
		return err
	}
	cur, err := cursorFor(buf, opts)
	if err != nil {
		return err
	}
	drain(cur, opts, visit)
	return nil
}

// TransformPixel replaces a single pixel through the tables. The table
// is rebuilt on every call; prefer Apply for whole regions.
func (f *LookupFilter) TransformPixel(px *PixelView) error {
	visit, err := f.pointFn()
	if err != nil {
		return err
	}
	visit(px)
	return nil
}

// clampChannel clamps a transform result to [0, 255].
func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// InvertFilter maps every color channel to its complement, leaving
// alpha alone.
func InvertFilter() *LookupFilter {
	invert := func(v int) int { return 255 - v }
	return NewLookupFilter(invert, invert, invert)
}

// BrightnessFilter shifts every color channel by delta, clamping at the
// byte range.
func BrightnessFilter(delta int) *LookupFilter {
	shift := func(v int) int { return v + delta }
	return NewLookupFilter(shift, shift, shift)
}

// ContrastFilter scales every color channel around the midpoint by the
// given factor.
func ContrastFilter(factor float64) *LookupFilter {
	scale := func(v int) int { return int(float64(v-128)*factor) + 128 }
	return NewLookupFilter(scale, scale, scale)
}

// ThresholdFilter maps color channels below the cutoff to 0 and the
// rest to 255.
func ThresholdFilter(cutoff int) *LookupFilter {
	step := func(v int) int {
		if v < cutoff {
			return 0
		}
		return 255
	}
	return NewLookupFilter(step, step, step)
}

// TableCache is an optional caller-kept cache of built lookup tables,
// keyed by a caller-chosen string. It lets repeated applications of the
// same transform skip the 1024 function evaluations. The cache tracks
// hits and misses so callers can judge whether it earns its keep.
type TableCache struct {
	mu     sync.Mutex
	tables map[string][]uint8
	hits   int
	misses int
}

// NewTableCache creates an empty table cache.
func NewTableCache() *TableCache {
	return &TableCache{tables: make(map[string][]uint8)}
}

// Filter returns a lookup filter for key, building the table from the
// supplied filter on the first request and reusing it afterwards.
func (c *TableCache) Filter(key string, build func() *LookupFilter) (*LookupFilter, error) {
	c.mu.Lock()
	table, ok := c.tables[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()

	if !ok {
		var err error
		table, err = build().BuildTable()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.tables[key] = table
		c.mu.Unlock()
	}
	return NewLookupFilterFromTable(table)
}

// Stats returns the cache's hit and miss counts.
func (c *TableCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
