package levels

import (
	"fmt"

	"github.com/vovakirdan/stem-the-tide/internal/core"
	"github.com/vovakirdan/stem-the-tide/internal/engine"
	"github.com/vovakirdan/stem-the-tide/internal/levels/formats"
)

// Validation error codes.
const (
	CodeOutOfBounds = "OUT_OF_BOUNDS"
	CodeOverlap     = "OVERLAP"
	CodeEmptyLevel  = "EMPTY_LEVEL"
	CodeBadStrength = "BAD_STRENGTH"
	CodeBadSource   = "BAD_SOURCE"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Geometry is the grid a level is validated against.
type Geometry struct {
	Width, Height int
	Border        int
}

// DefaultGeometry returns the geometry of the standard 64×64 board.
func DefaultGeometry() Geometry {
	opts := engine.DefaultOptions()
	return Geometry{Width: opts.Width, Height: opts.Height, Border: opts.Border}
}

// Playable returns the area inside the metadata border.
func (g Geometry) Playable() core.Rect {
	return core.NewRect(0, 0, g.Width, g.Height).Inset(g.Border)
}

// Build resolves a parsed level into an engine level and validates it.
// Checks:
//   - The level has an ID and something to place
//   - Strength names and the source are recognized
//   - Zones and barriers lie inside the playable area
//   - No barrier overlaps a zone or another barrier, no zones overlap
func Build(raw formats.Level, geom Geometry) (engine.Level, error) {
	if raw.ID == "" {
		return engine.Level{}, ValidationError{Code: CodeEmptyLevel, Message: "level has no id"}
	}
	if len(raw.Zones) == 0 && len(raw.Barriers) == 0 {
		return engine.Level{}, ValidationError{
			Code:    CodeEmptyLevel,
			Message: fmt.Sprintf("level %s has no zones and no barriers", raw.ID),
		}
	}

	src, err := buildSource(raw.Source, geom)
	if err != nil {
		return engine.Level{}, err
	}

	lvl := engine.Level{
		ID:       raw.ID,
		Name:     raw.Name,
		Hint:     raw.Hint,
		Source:   src,
		Zones:    make([]engine.PriorityZone, 0, len(raw.Zones)),
		Barriers: make([]engine.Barrier, 0, len(raw.Barriers)),
	}
	if lvl.Name == "" {
		lvl.Name = raw.ID
	}

	for _, z := range raw.Zones {
		lvl.Zones = append(lvl.Zones, engine.PriorityZone{X: z.X, Y: z.Y, Size: z.Size})
	}
	for i, b := range raw.Barriers {
		strength, ok := engine.ParseStrength(b.Strength)
		if !ok {
			return engine.Level{}, ValidationError{
				Code:    CodeBadStrength,
				Message: fmt.Sprintf("barrier %d has unknown strength %q", i, b.Strength),
			}
		}
		lvl.Barriers = append(lvl.Barriers, engine.NewBarrier(b.X, b.Y, b.W, b.H, strength))
	}

	if err := Validate(lvl, geom); err != nil {
		return engine.Level{}, err
	}
	return lvl, nil
}

func buildSource(s formats.YAMLSource, geom Geometry) (engine.Source, error) {
	if s.Edge != "top" {
		return engine.Source{}, ValidationError{
			Code:    CodeBadSource,
			Message: fmt.Sprintf("unsupported source edge %q", s.Edge),
		}
	}
	// The seeded row sits above the playable area so every playable row floods.
	if s.Row < 0 || s.Row >= max(geom.Border, 1) {
		return engine.Source{}, ValidationError{
			Code:    CodeBadSource,
			Message: fmt.Sprintf("source row %d must lie in the top border", s.Row),
		}
	}
	if geom.Border > 0 && s.Row == geom.Border/2 {
		return engine.Source{}, ValidationError{
			Code:    CodeBadSource,
			Message: fmt.Sprintf("source row %d is the progress row", s.Row),
		}
	}
	return engine.Source{Edge: engine.EdgeTop, Row: s.Row}, nil
}

// Validate checks the geometry of an engine level.
func Validate(lvl engine.Level, geom Geometry) error {
	playable := geom.Playable()

	zones := make([]core.Rect, len(lvl.Zones))
	for i, z := range lvl.Zones {
		r := z.Rect()
		if r.Empty() || !r.Within(playable) {
			return ValidationError{
				Code:    CodeOutOfBounds,
				Message: fmt.Sprintf("zone %d at (%d,%d) size %d is outside the playable area", i, z.X, z.Y, z.Size),
			}
		}
		for j := 0; j < i; j++ {
			if r.Intersects(zones[j]) {
				return ValidationError{
					Code:    CodeOverlap,
					Message: fmt.Sprintf("zone %d overlaps zone %d", i, j),
				}
			}
		}
		zones[i] = r
	}

	for i, b := range lvl.Barriers {
		r := b.Rect
		if r.Empty() || !r.Within(playable) {
			return ValidationError{
				Code:    CodeOutOfBounds,
				Message: fmt.Sprintf("barrier %d at (%d,%d) %dx%d is outside the playable area", i, r.X, r.Y, r.W, r.H),
			}
		}
		for j, z := range zones {
			if r.Intersects(z) {
				return ValidationError{
					Code:    CodeOverlap,
					Message: fmt.Sprintf("barrier %d overlaps zone %d", i, j),
				}
			}
		}
		for j := 0; j < i; j++ {
			if r.Intersects(lvl.Barriers[j].Rect) {
				return ValidationError{
					Code:    CodeOverlap,
					Message: fmt.Sprintf("barrier %d overlaps barrier %d", i, j),
				}
			}
		}
	}

	return nil
}
