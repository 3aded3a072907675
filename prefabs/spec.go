package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotboss/boss"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

// LoadSpec unmarshals a prefab into a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := decodeInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// decodeInto unmarshals over the values already in out, so keys missing
// from the file keep their defaults.
func decodeInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type BossPerceptionSpec struct {
	DetectRange float64 `yaml:"detect_range"`
	AggroTime   float64 `yaml:"aggro_time"`
}

type BossMovementSpec struct {
	Speed          float64 `yaml:"speed"`
	TiredSpeed     float64 `yaml:"tired_speed"`
	TiredThreshold float64 `yaml:"tired_threshold"`
}

type BossMeleeSpec struct {
	Range        float64 `yaml:"range"`
	Damage       int     `yaml:"damage"`
	Cooldown     float64 `yaml:"cooldown"`
	AnimDuration float64 `yaml:"anim_duration"`
	Interval     float64 `yaml:"interval"`
}

type BossJumpSpec struct {
	Threshold      float64 `yaml:"threshold"`
	Range          float64 `yaml:"range"`
	Cooldown       float64 `yaml:"cooldown"`
	Duration       float64 `yaml:"duration"`
	Height         float64 `yaml:"height"`
	Damage         int     `yaml:"damage"`
	OuterDamage    int     `yaml:"outer_damage"`
	InnerRadius    float64 `yaml:"inner_radius"`
	OuterRadius    float64 `yaml:"outer_radius"`
	LandTimeout    float64 `yaml:"land_timeout"`
	LeadFactor     float64 `yaml:"lead_factor"`
	EvadeDuration  float64 `yaml:"evade_duration"`
	EscapeDistance float64 `yaml:"escape_distance"`
	EscapeBias     float64 `yaml:"escape_bias"`
	MaxLeap        float64 `yaml:"max_leap"`
}

type BossHealSpec struct {
	Delay       float64      `yaml:"delay"`
	Cooldown    float64      `yaml:"cooldown"`
	Amount      int          `yaml:"amount"`
	Tick        float64      `yaml:"tick"`
	Duration    float64      `yaml:"duration"`
	FlashPeriod float64      `yaml:"flash_period"`
	FlashColors []*YAMLColor `yaml:"flash_colors"`
}

type DropSpec struct {
	Item   string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	Min    int     `yaml:"min"`
	Max    int     `yaml:"max"`
}

type DropTableSpec struct {
	Guaranteed []DropSpec `yaml:"guaranteed"`
	Random     []DropSpec `yaml:"random"`
	Delay      float64    `yaml:"delay"`
	Interval   float64    `yaml:"interval"`
	Radius     float64    `yaml:"radius"`
	Height     float64    `yaml:"height"`
}

type BossAnimationsSpec struct {
	Idle      string `yaml:"idle"`
	Prepare   string `yaml:"prepare"`
	Walk      string `yaml:"walk"`
	WalkTired string `yaml:"walk_tired"`
	Attack    string `yaml:"attack"`
	Jump      string `yaml:"jump"`
	Heal      string `yaml:"heal"`
	Hit       string `yaml:"hit"`
	Death     string `yaml:"death"`
}

type BossSoundsSpec struct {
	Attack string `yaml:"attack"`
	Jump   string `yaml:"jump"`
	Land   string `yaml:"land"`
	Heal   string `yaml:"heal"`
	Hit    string `yaml:"hit"`
	Death  string `yaml:"death"`
}

type BossEffectsSpec struct {
	Land  string `yaml:"land"`
	Death string `yaml:"death"`
}

// BossSpec is boss.yaml. Every tunable defaults to boss.DefaultConfig.
type BossSpec struct {
	Name          string             `yaml:"name"`
	Health        int                `yaml:"health"`
	Transform     TransformSpec      `yaml:"transform"`
	Collider      ColliderSpec       `yaml:"collider"`
	Script        string             `yaml:"script"`
	Perception    BossPerceptionSpec `yaml:"perception"`
	Movement      BossMovementSpec   `yaml:"movement"`
	Melee         BossMeleeSpec      `yaml:"melee"`
	Jump          BossJumpSpec       `yaml:"jump"`
	Heal          BossHealSpec       `yaml:"heal"`
	ContactDamage int                `yaml:"contact_damage"`
	HitReact      float64            `yaml:"hit_react"`
	DeathGrace    float64            `yaml:"death_grace"`
	Patrol        []PointSpec        `yaml:"patrol"`
	Drops         DropTableSpec      `yaml:"drops"`
	Animations    BossAnimationsSpec `yaml:"animations"`
	Sounds        BossSoundsSpec     `yaml:"sounds"`
	Effects       BossEffectsSpec    `yaml:"effects"`
}

// DefaultBossSpec mirrors boss.DefaultConfig.
func DefaultBossSpec() BossSpec {
	c := boss.DefaultConfig()
	return BossSpec{
		Name:       c.Name,
		Health:     c.MaxHealth,
		Collider:   ColliderSpec{Width: 2, Height: 3},
		Perception: BossPerceptionSpec{DetectRange: c.DetectRange, AggroTime: c.AggroTime},
		Movement:   BossMovementSpec{Speed: c.MoveSpeed, TiredSpeed: c.TiredSpeed, TiredThreshold: c.TiredThreshold},
		Melee: BossMeleeSpec{
			Range:        c.AttackRange,
			Damage:       c.AttackDamage,
			Cooldown:     c.AttackCooldown,
			AnimDuration: c.AttackAnimDuration,
			Interval:     c.AttackInterval,
		},
		Jump: BossJumpSpec{
			Threshold:      c.JumpThreshold,
			Range:          c.JumpRange,
			Cooldown:       c.JumpCooldown,
			Duration:       c.JumpDuration,
			Height:         c.JumpHeight,
			Damage:         c.JumpDamage,
			OuterDamage:    c.JumpOuterDamage,
			InnerRadius:    c.JumpInnerRadius,
			OuterRadius:    c.JumpOuterRadius,
			LandTimeout:    c.LandTimeout,
			LeadFactor:     c.LeadFactor,
			EvadeDuration:  c.EvadeDuration,
			EscapeDistance: c.EscapeDistance,
			EscapeBias:     c.EscapeBias,
			MaxLeap:        c.MaxLeap,
		},
		Heal: BossHealSpec{
			Delay:       c.HealDelay,
			Cooldown:    c.HealCooldown,
			Amount:      c.HealAmount,
			Tick:        c.HealTick,
			Duration:    c.HealDuration,
			FlashPeriod: c.FlashPeriod,
		},
		ContactDamage: c.ContactDamage,
		HitReact:      c.HitReactDuration,
		DeathGrace:    c.DeathGrace,
		Drops: DropTableSpec{
			Delay:    c.Drops.Delay,
			Interval: c.Drops.Interval,
			Radius:   c.Drops.Radius,
			Height:   c.Drops.Height,
		},
		Animations: BossAnimationsSpec(c.Animations),
		Sounds:     BossSoundsSpec(c.Sounds),
		Effects:    BossEffectsSpec(c.Effects),
	}
}

func LoadBossSpec() (*BossSpec, error) {
	spec := DefaultBossSpec()
	if err := decodeInto("boss.yaml", &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config converts the spec into a validated controller config.
func (s *BossSpec) Config() (boss.Config, error) {
	c := boss.DefaultConfig()
	c.Name = s.Name
	c.MaxHealth = s.Health

	c.DetectRange = s.Perception.DetectRange
	c.AggroTime = s.Perception.AggroTime
	c.MoveSpeed = s.Movement.Speed
	c.TiredSpeed = s.Movement.TiredSpeed
	c.TiredThreshold = s.Movement.TiredThreshold

	c.AttackRange = s.Melee.Range
	c.AttackDamage = s.Melee.Damage
	c.AttackCooldown = s.Melee.Cooldown
	c.AttackAnimDuration = s.Melee.AnimDuration
	c.AttackInterval = s.Melee.Interval

	j := s.Jump
	c.JumpThreshold = j.Threshold
	c.JumpRange = j.Range
	c.JumpCooldown = j.Cooldown
	c.JumpDuration = j.Duration
	c.JumpHeight = j.Height
	c.JumpDamage = j.Damage
	c.JumpOuterDamage = j.OuterDamage
	c.JumpInnerRadius = j.InnerRadius
	c.JumpOuterRadius = j.OuterRadius
	c.LandTimeout = j.LandTimeout
	c.LeadFactor = j.LeadFactor
	c.EvadeDuration = j.EvadeDuration
	c.EscapeDistance = j.EscapeDistance
	c.EscapeBias = j.EscapeBias
	c.MaxLeap = j.MaxLeap

	h := s.Heal
	c.HealDelay = h.Delay
	c.HealCooldown = h.Cooldown
	c.HealAmount = h.Amount
	c.HealTick = h.Tick
	c.HealDuration = h.Duration
	c.FlashPeriod = h.FlashPeriod
	for i, col := range h.FlashColors {
		if i < len(c.FlashColors) && col != nil && col.Color != nil {
			c.FlashColors[i] = col.Color
		}
	}

	c.ContactDamage = s.ContactDamage
	c.HitReactDuration = s.HitReact
	c.DeathGrace = s.DeathGrace

	switch len(s.Patrol) {
	case 0:
	case 2:
		a := cp.Vector{X: s.Patrol[0].X, Y: s.Patrol[0].Y}
		b := cp.Vector{X: s.Patrol[1].X, Y: s.Patrol[1].Y}
		c.PatrolA, c.PatrolB = &a, &b
	default:
		return boss.Config{}, fmt.Errorf("%s: patrol needs exactly two points, got %d: %w", s.Name, len(s.Patrol), ErrInvalidSpec)
	}

	c.Drops = boss.DropTable{
		Guaranteed: dropsFromSpec(s.Drops.Guaranteed),
		Random:     dropsFromSpec(s.Drops.Random),
		Delay:      s.Drops.Delay,
		Interval:   s.Drops.Interval,
		Radius:     s.Drops.Radius,
		Height:     s.Drops.Height,
	}

	c.Animations = boss.Animations(s.Animations)
	c.Sounds = boss.Sounds(s.Sounds)
	c.Effects = boss.Effects(s.Effects)

	if err := c.Validate(); err != nil {
		return boss.Config{}, fmt.Errorf("prefabs: boss %q: %w", s.Name, err)
	}
	return c, nil
}

func dropsFromSpec(specs []DropSpec) []boss.Drop {
	if len(specs) == 0 {
		return nil
	}
	out := make([]boss.Drop, 0, len(specs))
	for _, d := range specs {
		out = append(out, boss.Drop(d))
	}
	return out
}

type PlayerSpec struct {
	Name               string        `yaml:"name"`
	Health             int           `yaml:"health"`
	MoveSpeed          float64       `yaml:"move_speed"`
	JumpSpeed          float64       `yaml:"jump_speed"`
	CoyoteFrames       int           `yaml:"coyote_frames"`
	DashSpeed          float64       `yaml:"dash_speed"`
	DashFrames         int           `yaml:"dash_frames"`
	DashCooldown       int           `yaml:"dash_cooldown"`
	AttackRange        float64       `yaml:"attack_range"`
	AttackDamage       int           `yaml:"attack_damage"`
	AttackFrames       int           `yaml:"attack_frames"`
	AttackCooldown     int           `yaml:"attack_cooldown"`
	InvulnerableFrames int           `yaml:"invulnerable_frames"`
	Transform          TransformSpec `yaml:"transform"`
	Collider           ColliderSpec  `yaml:"collider"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Health <= 0 {
		return nil, fmt.Errorf("prefabs: player.yaml: health %d must be positive: %w", spec.Health, ErrInvalidSpec)
	}
	return &spec, nil
}

type EffectSpec struct {
	Name   string     `yaml:"name"`
	Radius float64    `yaml:"radius"`
	Frames int        `yaml:"frames"`
	Color  *YAMLColor `yaml:"color"`
	Shake  float64    `yaml:"shake"`
}

type PickupSpec struct {
	Item   string     `yaml:"item"`
	Size   float64    `yaml:"size"`
	Radius float64    `yaml:"radius"`
	Color  *YAMLColor `yaml:"color"`
}

// SoundSpec describes a synthesized tone: a sweep from Freq to EndFreq.
type SoundSpec struct {
	Name     string  `yaml:"name"`
	Wave     string  `yaml:"wave"`
	Freq     float64 `yaml:"freq"`
	EndFreq  float64 `yaml:"end_freq"`
	Duration float64 `yaml:"duration"`
	Volume   float64 `yaml:"volume"`
}

type ArenaSpec struct {
	Name       string       `yaml:"name"`
	Width      float64      `yaml:"width"`
	Height     float64      `yaml:"height"`
	FloorY     float64      `yaml:"floor_y"`
	Background *YAMLColor   `yaml:"background"`
	Effects    []EffectSpec `yaml:"effects"`
	Pickups    []PickupSpec `yaml:"pickups"`
	Sounds     []SoundSpec  `yaml:"sounds"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec]("arena.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("prefabs: arena.yaml: size %vx%v: %w", spec.Width, spec.Height, ErrInvalidSpec)
	}
	return &spec, nil
}

func (s *ArenaSpec) Effect(name string) (EffectSpec, bool) {
	for _, e := range s.Effects {
		if e.Name == name {
			return e, true
		}
	}
	return EffectSpec{Name: name}, false
}

func (s *ArenaSpec) Pickup(item string) (PickupSpec, bool) {
	for _, p := range s.Pickups {
		if p.Item == item {
			return p, true
		}
	}
	return PickupSpec{Item: item}, false
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns c's color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
