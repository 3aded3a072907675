package prefabs

import (
	"errors"
	"image/color"
	"testing"

	"github.com/milk9111/robotboss/boss"
	"gopkg.in/yaml.v3"
)

func TestLoadBossSpec(t *testing.T) {
	spec, err := LoadBossSpec()
	if err != nil {
		t.Fatalf("LoadBossSpec: %v", err)
	}
	cfg, err := spec.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Name != "robot_boss" || cfg.MaxHealth != 100 {
		t.Fatalf("unexpected identity %q/%d", cfg.Name, cfg.MaxHealth)
	}
	if cfg.AttackRange != 3 || cfg.JumpDamage != 25 || cfg.HealAmount != 10 {
		t.Fatalf("unexpected tuning %+v", cfg)
	}
	if cfg.PatrolA == nil || cfg.PatrolA.X != 18 || cfg.PatrolB.X != 26 {
		t.Fatalf("expected patrol 18..26, got %v %v", cfg.PatrolA, cfg.PatrolB)
	}
	if len(cfg.Drops.Guaranteed) != 1 || cfg.Drops.Guaranteed[0] != (boss.Drop{Item: "coin", Min: 3, Max: 5}) {
		t.Fatalf("unexpected guaranteed drops %v", cfg.Drops.Guaranteed)
	}
	if got := cfg.FlashColors[0]; got != (color.NRGBA{R: 0x32, G: 0xCD, B: 0x32, A: 0xFF}) {
		t.Fatalf("unexpected flash color %v", got)
	}
	if spec.Script != "robot_boss.tengo" {
		t.Fatalf("unexpected script %q", spec.Script)
	}
}

func TestBossSpecKeepsDefaults(t *testing.T) {
	spec := DefaultBossSpec()
	if err := yaml.Unmarshal([]byte("name: tiny\nhealth: 10\nmelee:\n  damage: 1\n"), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cfg, err := spec.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	def := boss.DefaultConfig()
	if cfg.MaxHealth != 10 || cfg.AttackDamage != 1 {
		t.Fatalf("expected overrides applied, got %d/%d", cfg.MaxHealth, cfg.AttackDamage)
	}
	if cfg.AttackRange != def.AttackRange || cfg.JumpDuration != def.JumpDuration || cfg.Animations != def.Animations {
		t.Fatalf("expected untouched keys to keep their defaults")
	}
	if cfg.FlashColors != def.FlashColors {
		t.Fatalf("expected default flash colors")
	}
}

func TestBossSpecRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(s *BossSpec)
		target error
	}{
		{"one_patrol_point", func(s *BossSpec) { s.Patrol = []PointSpec{{X: 1}} }, ErrInvalidSpec},
		{"zero_health", func(s *BossSpec) { s.Health = 0 }, boss.ErrInvalidConfig},
		{"bad_drop", func(s *BossSpec) { s.Drops.Random = []DropSpec{{Item: "x", Chance: 3}} }, boss.ErrInvalidConfig},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec := DefaultBossSpec()
			c.mutate(&spec)
			if _, err := spec.Config(); !errors.Is(err, c.target) {
				t.Fatalf("expected %v, got %v", c.target, err)
			}
		})
	}
}

func TestLoadPlayerAndArenaSpecs(t *testing.T) {
	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if player.Health != 100 || player.DashFrames <= 0 || player.Collider.Height != 2 {
		t.Fatalf("unexpected player spec %+v", player)
	}

	arena, err := LoadArenaSpec()
	if err != nil {
		t.Fatalf("LoadArenaSpec: %v", err)
	}
	if arena.FloorY != 15 || arena.Width != 30 {
		t.Fatalf("unexpected arena bounds %+v", arena)
	}
	if fx, ok := arena.Effect("landing_shockwave"); !ok || fx.Radius != 4 || fx.Shake == 0 {
		t.Fatalf("unexpected shockwave %+v", fx)
	}
	if _, ok := arena.Effect("missing"); ok {
		t.Fatalf("expected unknown effect to miss")
	}
	if p, ok := arena.Pickup("potion"); !ok || p.Color == nil {
		t.Fatalf("unexpected potion %+v", p)
	}

	names := make(map[string]bool)
	for _, s := range arena.Sounds {
		names[s.Name] = true
	}
	bossSpec, _ := LoadBossSpec()
	for _, want := range []string{bossSpec.Sounds.Attack, bossSpec.Sounds.Land, bossSpec.Sounds.Death, "player_hurt", "pickup"} {
		if !names[want] {
			t.Fatalf("arena has no sound %q", want)
		}
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{`"#FF8000"`, color.NRGBA{R: 0xFF, G: 0x80, A: 0xFF}, false},
		{`"10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{`"#FFF"`, nil, true},
		{`"#GG0000"`, nil, true},
		{`[1, 2]`, nil, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got.Color)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Color != c.want {
				t.Fatalf("expected %v, got %v", c.want, got.Color)
			}
		})
	}

	var unset *YAMLColor
	if unset.Or(color.White) != color.White {
		t.Fatalf("expected fallback for nil color")
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"robot_boss.tengo", "scripts/robot_boss.tengo", "prefabs/scripts/robot_boss.tengo"} {
		data, err := LoadScript(name)
		if err != nil || len(data) == 0 {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}
}
