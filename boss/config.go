package boss

import (
	"errors"
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"
)

var ErrInvalidConfig = errors.New("boss: invalid config")

// Animations names the poses the controller asks the AnimationPort to play.
type Animations struct {
	Idle      string
	Prepare   string
	Walk      string
	WalkTired string
	Attack    string
	Jump      string
	Heal      string
	Hit       string
	Death     string
}

// Sounds names the SFX ids sent to the AudioPort.
type Sounds struct {
	Attack string
	Jump   string
	Land   string
	Heal   string
	Hit    string
	Death  string
}

// Effects names the effect ids sent to the EffectPort.
type Effects struct {
	Land  string
	Death string
}

// Config holds every static tunable of an agent. Durations are seconds,
// distances are world units, fractions are in [0, 1].
type Config struct {
	Name      string
	MaxHealth int

	DetectRange    float64
	AggroTime      float64
	MoveSpeed      float64
	TiredSpeed     float64
	TiredThreshold float64

	AttackRange        float64
	AttackDamage       int
	AttackCooldown     float64
	AttackAnimDuration float64
	AttackInterval     float64

	JumpThreshold   float64
	JumpRange       float64
	JumpCooldown    float64
	JumpDuration    float64
	JumpHeight      float64
	JumpDamage      int
	JumpOuterDamage int
	JumpInnerRadius float64
	JumpOuterRadius float64
	LandTimeout     float64
	LeadFactor      float64
	EvadeDuration   float64
	EscapeDistance  float64
	EscapeBias      float64
	MaxLeap         float64

	HealDelay    float64
	HealCooldown float64
	HealAmount   int
	HealTick     float64
	HealDuration float64
	FlashPeriod  float64
	FlashColors  [2]color.Color

	ContactDamage    int
	HitReactDuration float64
	DeathGrace       float64

	// PatrolA and PatrolB enable walking between two points while idle.
	PatrolA *Vec2
	PatrolB *Vec2

	Drops DropTable

	Animations Animations
	Sounds     Sounds
	Effects    Effects
}

// DefaultConfig returns the tuning of the stock robot boss. Attack and skill
// durations are fixed literals; animation-reported lengths are not consulted.
func DefaultConfig() Config {
	return Config{
		Name:      "robot_boss",
		MaxHealth: 100,

		DetectRange:    12,
		AggroTime:      5,
		MoveSpeed:      3,
		TiredSpeed:     1,
		TiredThreshold: 0.2,

		AttackRange:        4,
		AttackDamage:       10,
		AttackCooldown:     2,
		AttackAnimDuration: 1.5,
		AttackInterval:     2,

		JumpThreshold:   0.6,
		JumpRange:       15,
		JumpCooldown:    6,
		JumpDuration:    1,
		JumpHeight:      4,
		JumpDamage:      25,
		JumpOuterDamage: 10,
		JumpInnerRadius: 2,
		JumpOuterRadius: 4,
		LandTimeout:     1,
		LeadFactor:      0.5,
		EvadeDuration:   0.15,
		EscapeDistance:  8,
		EscapeBias:      1.5,
		MaxLeap:         20,

		HealDelay:    1,
		HealCooldown: 15,
		HealAmount:   10,
		HealTick:     1,
		HealDuration: 5,
		FlashPeriod:  0.1,
		FlashColors:  [2]color.Color{colornames.Limegreen, colornames.White},

		ContactDamage:    5,
		HitReactDuration: 0.5,
		DeathGrace:       2,

		Drops: DropTable{
			Delay:    0.5,
			Interval: 0.1,
			Radius:   2,
			Height:   2,
		},

		Animations: Animations{
			Idle:      "idle",
			Prepare:   "idle_2",
			Walk:      "walk",
			WalkTired: "walk_tired",
			Attack:    "shot_attack",
			Jump:      "shot_skill_heavy",
			Heal:      "shot_skill_continues",
			Hit:       "hit",
			Death:     "dead",
		},
		Sounds: Sounds{
			Attack: "attack",
			Jump:   "jump",
			Land:   "land",
			Heal:   "heal",
			Hit:    "hit",
			Death:  "death",
		},
		Effects: Effects{
			Land:  "landing_shockwave",
			Death: "explosion",
		},
	}
}

// Validate reports the first inconsistent field.
func (c Config) Validate() error {
	switch {
	case c.MaxHealth <= 0:
		return fmt.Errorf("max health %d must be positive: %w", c.MaxHealth, ErrInvalidConfig)
	case c.TiredThreshold < 0 || c.TiredThreshold > 1:
		return fmt.Errorf("tired threshold %v outside [0,1]: %w", c.TiredThreshold, ErrInvalidConfig)
	case c.JumpThreshold < 0 || c.JumpThreshold > 1:
		return fmt.Errorf("jump threshold %v outside [0,1]: %w", c.JumpThreshold, ErrInvalidConfig)
	case c.DetectRange < 0 || c.AttackRange < 0 || c.JumpRange < 0:
		return fmt.Errorf("ranges must not be negative: %w", ErrInvalidConfig)
	case c.MoveSpeed < 0 || c.TiredSpeed < 0:
		return fmt.Errorf("speeds must not be negative: %w", ErrInvalidConfig)
	case c.AttackAnimDuration < 0 || c.AttackInterval < 0:
		return fmt.Errorf("attack timings must not be negative: %w", ErrInvalidConfig)
	case c.JumpDuration <= 0:
		return fmt.Errorf("jump duration %v must be positive: %w", c.JumpDuration, ErrInvalidConfig)
	case c.JumpInnerRadius < 0 || c.JumpOuterRadius < c.JumpInnerRadius:
		return fmt.Errorf("jump radii inner=%v outer=%v: %w", c.JumpInnerRadius, c.JumpOuterRadius, ErrInvalidConfig)
	case c.HealDuration > 0 && c.HealTick <= 0:
		return fmt.Errorf("heal tick %v must be positive: %w", c.HealTick, ErrInvalidConfig)
	case c.HealAmount < 0:
		return fmt.Errorf("heal amount %d must not be negative: %w", c.HealAmount, ErrInvalidConfig)
	case c.LandTimeout < 0 || c.DeathGrace < 0 || c.HealDelay < 0:
		return fmt.Errorf("timeouts must not be negative: %w", ErrInvalidConfig)
	case (c.PatrolA == nil) != (c.PatrolB == nil):
		return fmt.Errorf("patrol needs both points: %w", ErrInvalidConfig)
	}
	return c.Drops.validate()
}

// attackRecovery is the idle window after the attack animation.
func (c Config) attackRecovery() float64 {
	if c.AttackInterval <= c.AttackAnimDuration {
		return 0
	}
	return c.AttackInterval - c.AttackAnimDuration
}

// healTicks is how many heal applications a heal performs.
func (c Config) healTicks() int {
	if c.HealTick <= 0 || c.HealDuration <= 0 {
		return 0
	}
	return int(c.HealDuration/c.HealTick + timeEpsilon)
}
