package bcond

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/goupscale/grid"
)

func TestSetupUpscalingConditions(t *testing.T) {
	// Fixed boundary: pressure drop across the flow axis, sealed laterals
	{
		g := grid.NewCartesian(3, 2, 2, 1, 1, 1)
		bc := SetupUpscalingConditions(g, FixedBoundary, 0, 1000, 0.3)
		assert.Equal(t, g.NumBoundaryFaces(), bc.NumFaces())
		for _, f := range g.BoundaryFaces() {
			fc := bc.FlowAt(f.Bid)
			sc := bc.SatAt(f.Bid)
			if f.Axis == 0 {
				assert.Equal(t, Dirichlet, fc.Type)
				if f.Side == 0 {
					assert.Equal(t, 500.0, fc.Pressure)
				} else {
					assert.Equal(t, -500.0, fc.Pressure)
				}
			} else {
				assert.Equal(t, Neumann, fc.Type)
			}
			assert.Equal(t, Dirichlet, sc.Type)
			assert.Equal(t, 0.3, sc.Saturation)
			_, ok := bc.PeriodicPartner(f.Bid)
			assert.False(t, ok)
		}
	}
	// Periodic boundary: every face paired, relation symmetric, jump only
	// along the flow axis, zero saturation difference everywhere
	{
		g := grid.NewCartesian(3, 2, 2, 1, 1, 1)
		bc := SetupUpscalingConditions(g, PeriodicBoundary, 1, 1000, 0.3)
		for _, f := range g.BoundaryFaces() {
			fc := bc.FlowAt(f.Bid)
			sc := bc.SatAt(f.Bid)
			assert.Equal(t, Periodic, fc.Type)
			assert.Equal(t, Periodic, sc.Type)
			assert.Equal(t, 0.0, sc.SaturationDifference)
			partner, ok := bc.PeriodicPartner(f.Bid)
			assert.True(t, ok)
			back, ok := bc.PeriodicPartner(partner)
			assert.True(t, ok)
			assert.Equal(t, f.Bid, back)
			if f.Axis == 1 {
				if f.Side == 0 {
					assert.Equal(t, 1000.0, fc.PressureDifference)
				} else {
					assert.Equal(t, -1000.0, fc.PressureDifference)
				}
				// the jumps of a pair cancel
				assert.Equal(t, -fc.PressureDifference, bc.FlowAt(partner).PressureDifference)
			} else {
				assert.Equal(t, 0.0, fc.PressureDifference)
			}
		}
	}
	// Invalid input panics
	{
		g := grid.NewCartesian(2, 2, 2, 1, 1, 1)
		assert.Panics(t, func() { SetupUpscalingConditions(g, FixedBoundary, 3, 1, 0) })
		assert.Panics(t, func() { SetupUpscalingConditions(g, BCType(42), 0, 1, 0) })
	}
}
