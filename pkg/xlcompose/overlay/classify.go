// Package overlay decides which extracted objects sit on top of which base
// images.
package overlay

import (
	"github.com/ymgata/xlcompose-go/pkg/xlcompose/models"
)

// Classify runs pairwise overlap analysis over a sheet's resolved objects
// and returns one composite plan per base image that has at least one
// overlay. Plans appear in base-image order; overlays keep insertion order.
//
// An image takes part, as base or overlay, only when it has a decoded
// bitmap and a positive box. For a pair of overlapping images the fully
// contained one
// becomes the overlay; with partial overlap the strictly smaller area wins,
// and equal areas mark neither (the comparison is float-exact, so
// near-equal areas are decided by whichever side is smaller after anchor
// math rounding). A pair where the base is contained in the other image is
// left for the other image's own evaluation. Shapes overlaying an image are
// always recorded, regardless of relative size.
func Classify(images, shapes []*models.VisualObject) []*models.CompositePlan {
	var plans []*models.CompositePlan

	for _, base := range images {
		if base.Image == nil || !base.Box.Positive() {
			continue
		}

		plan := &models.CompositePlan{Base: base}

		for _, other := range images {
			if other == base || other.Image == nil || !other.Box.Positive() {
				continue
			}
			if !base.Box.Overlaps(other.Box) {
				continue
			}

			switch {
			case base.Box.Contains(other.Box):
				plan.ImageOverlays = append(plan.ImageOverlays, other)
			case other.Box.Contains(base.Box):
				// Handled when other is evaluated as the base.
			case other.Box.Area() < base.Box.Area():
				plan.ImageOverlays = append(plan.ImageOverlays, other)
			}
		}

		for _, shape := range shapes {
			if !shape.Box.Positive() {
				continue
			}
			if base.Box.Overlaps(shape.Box) {
				plan.ShapeOverlays = append(plan.ShapeOverlays, shape)
			}
		}

		if plan.HasOverlays() {
			plans = append(plans, plan)
		}
	}

	return plans
}
