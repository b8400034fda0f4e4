package rasterops

import "fmt"

// Chain composes filters of possibly different kinds into a single
// filter whose application is observably equivalent to applying each
// stage fully, in order. Chains are Filters themselves and nest to any
// depth.
//
// Buffer-aliasing rules per stage pairing fall out of the stage
// contracts: every AreaFilter application re-snapshots from the
// then-current buffer, so a neighborhood stage following any other
// stage always reads the previous stage's finished output, never stale
// pre-chain data. Runs of consecutive per-pixel stages are fused into a
// single pass, which is safe because each only reads and writes the
// current position.
type Chain struct {
	stages []Filter
}

// NewChain creates a chain over the given stages. Nested chains are
// flattened, which keeps composition associative by construction.
func NewChain(filters ...Filter) *Chain {
	c := &Chain{stages: make([]Filter, 0, len(filters))}
	for _, f := range filters {
		if sub, ok := f.(*Chain); ok {
			c.stages = append(c.stages, sub.stages...)
			continue
		}
		c.stages = append(c.stages, f)
	}
	return c
}

// FollowedBy composes two filters: first applied fully, then second
// applied fully to the result.
func FollowedBy(first, second Filter) *Chain {
	return NewChain(first, second)
}

// Stages returns the number of stages after flattening.
func (c *Chain) Stages() int {
	return len(c.stages)
}

// Apply runs every stage in order over the same buffer and region.
// Consecutive per-pixel stages execute as one fused pass; any table
// building happens before the pass starts, so contract violations
// surface before the first pixel is touched.
func (c *Chain) Apply(buf *PixelBuffer, opts *Options) error {
	i := 0
	for i < len(c.stages) {
		ps, ok := c.stages[i].(pointStage)
		if !ok {
			if err := c.stages[i].Apply(buf, opts); err != nil {
				return fmt.Errorf("chain stage %d: %w", i, err)
			}
			i++
			continue
		}

		// Collect the run of per-pixel stages starting here.
		fns := make([]func(*PixelView), 0, len(c.stages)-i)
		start := i
		for i < len(c.stages) {
			ps, ok = c.stages[i].(pointStage)
			if !ok {
				break
			}
			fn, err := ps.pointFn()
			if err != nil {
				return fmt.Errorf("chain stage %d: %w", i, err)
			}
			fns = append(fns, fn)
			i++
		}

		if len(fns) == 1 {
			if err := c.stages[start].Apply(buf, opts); err != nil {
				return fmt.Errorf("chain stage %d: %w", start, err)
			}
			continue
		}

		cur, err := cursorFor(buf, opts)
		if err != nil {
			return err
		}
		drain(cur, opts, func(px *PixelView) {
			for _, fn := range fns {
				fn(px)
			}
		})
	}
	return nil
}

// TransformPixel applies the chain at a single position. It is only
// supported when every stage is a per-pixel filter; a chain containing
// a neighborhood stage cannot compute one output position in isolation
// and fails fast, naming the offending stage.
func (c *Chain) TransformPixel(px *PixelView) error {
	for i, stage := range c.stages {
		t, ok := stage.(PixelTransformer)
		if !ok {
			return fmt.Errorf("chain stage %d is a %s, not a per-pixel filter: %w",
				i, describeStage(stage), ErrUnsupportedComposition)
		}
		if err := t.TransformPixel(px); err != nil {
			return fmt.Errorf("chain stage %d: %w", i, err)
		}
	}
	return nil
}
