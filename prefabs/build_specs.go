package prefabs

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/spriteanim/ecs/component"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyFrames      = errors.New("prefabs: animation has no frames")
	ErrInvalidDuration  = errors.New("prefabs: frame duration must be positive")
	ErrUnknownComponent = errors.New("prefabs: unknown component")
)

// Component keys understood by the entity builder.
const (
	TransformKey        = "transform"
	SpriteKey           = "sprite"
	RenderLayerKey      = "render_layer"
	AnimationKey        = "animation"
	AnimationEventsKey  = "animation_events"
	AnimationScriptKey  = "animation_script"
	AnimationStoppedKey = "animation_stopped"
	VelocityKey         = "velocity"
	FacingKey           = "facing"
	TTLKey              = "ttl"
)

var knownComponents = map[string]struct{}{
	TransformKey:        {},
	SpriteKey:           {},
	RenderLayerKey:      {},
	AnimationKey:        {},
	AnimationEventsKey:  {},
	AnimationScriptKey:  {},
	AnimationStoppedKey: {},
	VelocityKey:         {},
	FacingKey:           {},
	TTLKey:              {},
}

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	spec, err := LoadSpec[EntityBuildSpec](filename)
	if err != nil {
		return EntityBuildSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return EntityBuildSpec{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

// Validate rejects unknown component keys and malformed animations.
func (s EntityBuildSpec) Validate() error {
	var unknown []string
	for key := range s.Components {
		if _, ok := knownComponents[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %s", ErrUnknownComponent, strings.Join(unknown, ", "))
	}
	raw, ok := s.Components[AnimationKey]
	if !ok {
		return nil
	}
	anim, err := DecodeComponentSpec[AnimationComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("animation: %w", err)
	}
	if _, err := anim.BuildFrames(); err != nil {
		return fmt.Errorf("animation: %w", err)
	}
	return nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image   string     `yaml:"image"`
	Atlas   *AtlasSpec `yaml:"atlas"`
	OriginX float64    `yaml:"origin_x"`
	OriginY float64    `yaml:"origin_y"`
}

type AtlasSpec struct {
	TileW    int `yaml:"tile_w"`
	TileH    int `yaml:"tile_h"`
	Columns  int `yaml:"columns"`
	Rows     int `yaml:"rows"`
	PaddingX int `yaml:"padding_x"`
	PaddingY int `yaml:"padding_y"`
	OffsetX  int `yaml:"offset_x"`
	OffsetY  int `yaml:"offset_y"`
}

func (a AtlasSpec) TextureAtlas() *component.TextureAtlas {
	return &component.TextureAtlas{
		TileW:    a.TileW,
		TileH:    a.TileH,
		Columns:  a.Columns,
		Rows:     a.Rows,
		PaddingX: a.PaddingX,
		PaddingY: a.PaddingY,
		OffsetX:  a.OffsetX,
		OffsetY:  a.OffsetY,
	}
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

// AnimationComponentSpec lists frames explicitly or as a contiguous range of
// atlas indices sharing one duration. Explicit frames win when both are set.
type AnimationComponentSpec struct {
	Frames          []FrameSpec     `yaml:"frames"`
	Range           *FrameRangeSpec `yaml:"range"`
	Direction       DirectionSpec   `yaml:"direction"`
	FlipX           bool            `yaml:"flip_x"`
	PingPong        bool            `yaml:"ping_pong"`
	DespawnOnFinish bool            `yaml:"despawn_on_finish"`
}

// FrameSpec durations are in seconds.
type FrameSpec struct {
	Index    int     `yaml:"index"`
	Duration float64 `yaml:"duration"`
}

type FrameRangeSpec struct {
	First    int     `yaml:"first"`
	Last     int     `yaml:"last"`
	Duration float64 `yaml:"duration"`
}

func (s AnimationComponentSpec) BuildFrames() ([]component.Frame, error) {
	var frames []component.Frame
	switch {
	case len(s.Frames) > 0:
		frames = make([]component.Frame, 0, len(s.Frames))
		for _, f := range s.Frames {
			frames = append(frames, component.NewFrame(f.Index, f.Duration))
		}
	case s.Range != nil:
		if s.Range.Last < s.Range.First {
			return nil, fmt.Errorf("range %d..%d runs backwards", s.Range.First, s.Range.Last)
		}
		frames = make([]component.Frame, 0, s.Range.Last-s.Range.First+1)
		for i := s.Range.First; i <= s.Range.Last; i++ {
			frames = append(frames, component.NewFrame(i, s.Range.Duration))
		}
	default:
		return nil, ErrEmptyFrames
	}

	for i, f := range frames {
		if f.Duration <= 0 {
			return nil, fmt.Errorf("frame %d: %w", i, ErrInvalidDuration)
		}
	}
	return frames, nil
}

func (s AnimationComponentSpec) Options() component.AnimationOptions {
	return component.AnimationOptions{
		Direction:       component.Direction(s.Direction),
		FlipX:           s.FlipX,
		PingPong:        s.PingPong,
		DespawnOnFinish: s.DespawnOnFinish,
	}
}

// DirectionSpec decodes "forward" or "backward"; empty means forward.
type DirectionSpec component.Direction

func (d *DirectionSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("direction must be a string")
	}
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "", "forward":
		*d = DirectionSpec(component.Forward)
	case "backward":
		*d = DirectionSpec(component.Backward)
	default:
		return fmt.Errorf("unknown direction %q", value.Value)
	}
	return nil
}

func (d DirectionSpec) MarshalYAML() (any, error) {
	return component.Direction(d).String(), nil
}

type AnimationScriptComponentSpec struct {
	Path string `yaml:"path"`
}

type VelocityComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type TTLComponentSpec struct {
	Seconds float64 `yaml:"seconds"`
}

type FacingComponentSpec struct {
	Facing        string `yaml:"facing"`
	FlipAnimation bool   `yaml:"flip_animation"`
}

// ParseFacing maps a facing name such as "north_east" to its value.
func ParseFacing(name string) (component.Facing, error) {
	if name == "" {
		return component.FacingWest, nil
	}
	for f := component.FacingWest; f <= component.FacingSouthWest; f++ {
		if f.String() == strings.ToLower(name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown facing %q", name)
}
