// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g.
// MOONSTRIKE_DRONES_COUNT=8.
const EnvPrefix = "MOONSTRIKE"

// Damage policy names
const (
	DamagePerHit       = "per_hit"
	DamageOncePerPhase = "once_per_phase"
)

// Drone fire modes
const (
	FireIndependent = "independent"
	FireShared      = "shared"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains configuration for a moonstrike session
type GameConfig struct {
	Seed        string           `json:"seed" yaml:"seed" mapstructure:"seed"`
	World       WorldConfig      `json:"world" yaml:"world" mapstructure:"world"`
	Aircraft    AircraftConfig   `json:"aircraft" yaml:"aircraft" mapstructure:"aircraft"`
	Drones      DroneConfig      `json:"drones" yaml:"drones" mapstructure:"drones"`
	Missiles    MissileConfig    `json:"missiles" yaml:"missiles" mapstructure:"missiles"`
	Checkpoints PopulationConfig `json:"checkpoints" yaml:"checkpoints" mapstructure:"checkpoints"`
	Asteroids   PopulationConfig `json:"asteroids" yaml:"asteroids" mapstructure:"asteroids"`
	Spawn       SpawnConfig      `json:"spawn" yaml:"spawn" mapstructure:"spawn"`
	Rules       GameRules        `json:"rules" yaml:"rules" mapstructure:"rules"`
}

// Vec3 is a plain coordinate triple as it appears in config files
type Vec3 struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
	Z float64 `json:"z" yaml:"z" mapstructure:"z"`
}

// WorldConfig describes the moon and the orbital shell around it
type WorldConfig struct {
	Radius float64 `json:"radius" yaml:"radius" mapstructure:"radius"`
	Center Vec3    `json:"center" yaml:"center" mapstructure:"center"`
}

// AircraftConfig contains the player craft's tuning
type AircraftConfig struct {
	MaxLife      int     `json:"maxLife" yaml:"maxLife" mapstructure:"maxLife"`
	Speed        float64 `json:"speed" yaml:"speed" mapstructure:"speed"`
	TurnRate     float64 `json:"turnRate" yaml:"turnRate" mapstructure:"turnRate"`
	FireCooldown float64 `json:"fireCooldown" yaml:"fireCooldown" mapstructure:"fireCooldown"`
	FireOffset   float64 `json:"fireOffset" yaml:"fireOffset" mapstructure:"fireOffset"`
	DamageFlash  float64 `json:"damageFlash" yaml:"damageFlash" mapstructure:"damageFlash"`
}

// DroneConfig contains the enemy drones' tuning
type DroneConfig struct {
	Count        int     `json:"count" yaml:"count" mapstructure:"count"`
	Speed        float64 `json:"speed" yaml:"speed" mapstructure:"speed"`
	MaxTurnRate  float64 `json:"maxTurnRate" yaml:"maxTurnRate" mapstructure:"maxTurnRate"`
	FireInterval float64 `json:"fireInterval" yaml:"fireInterval" mapstructure:"fireInterval"`
	FireOffset   float64 `json:"fireOffset" yaml:"fireOffset" mapstructure:"fireOffset"`
}

// MissileConfig contains projectile tuning shared by every launcher
type MissileConfig struct {
	Speed    float64 `json:"speed" yaml:"speed" mapstructure:"speed"`
	Lifetime float64 `json:"lifetime" yaml:"lifetime" mapstructure:"lifetime"`
}

// PopulationConfig sets how many of a static entity kind are spawned
type PopulationConfig struct {
	Count int `json:"count" yaml:"count" mapstructure:"count"`
}

// SpawnConfig controls random placement
type SpawnConfig struct {
	// Clearance is the arc distance around the aircraft spawn kept free of
	// drones, checkpoints and asteroids.
	Clearance float64 `json:"clearance" yaml:"clearance" mapstructure:"clearance"`
}

// GameRules contains game rules configuration
type GameRules struct {
	MaxDeltaTime          float64 `json:"maxDeltaTime" yaml:"maxDeltaTime" mapstructure:"maxDeltaTime"`
	DroneContactDamage    string  `json:"droneContactDamage" yaml:"droneContactDamage" mapstructure:"droneContactDamage"`
	AsteroidContactDamage string  `json:"asteroidContactDamage" yaml:"asteroidContactDamage" mapstructure:"asteroidContactDamage"`
	MissileDamage         string  `json:"missileDamage" yaml:"missileDamage" mapstructure:"missileDamage"`
	DroneFireMode         string  `json:"droneFireMode" yaml:"droneFireMode" mapstructure:"droneFireMode"`
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		World: WorldConfig{
			Radius: 16,
		},
		Aircraft: AircraftConfig{
			MaxLife:      3,
			Speed:        4,
			TurnRate:     2,
			FireCooldown: 0.25,
			FireOffset:   0.6,
			DamageFlash:  0.5,
		},
		Drones: DroneConfig{
			Count:        5,
			Speed:        2,
			MaxTurnRate:  1.5,
			FireInterval: 3,
			FireOffset:   0.6,
		},
		Missiles: MissileConfig{
			Speed:    10,
			Lifetime: 2.5,
		},
		Checkpoints: PopulationConfig{Count: 8},
		Asteroids:   PopulationConfig{Count: 10},
		Spawn: SpawnConfig{
			Clearance: 4,
		},
		Rules: GameRules{
			MaxDeltaTime:          0.1,
			DroneContactDamage:    DamagePerHit,
			AsteroidContactDamage: DamageOncePerPhase,
			MissileDamage:         DamagePerHit,
			DroneFireMode:         FireIndependent,
		},
	}
}

// setDefaults registers every key of def with v so that env overrides and
// partial files resolve against a complete key set.
func setDefaults(v *viper.Viper, def *GameConfig) {
	v.SetDefault("seed", def.Seed)

	v.SetDefault("world.radius", def.World.Radius)
	v.SetDefault("world.center.x", def.World.Center.X)
	v.SetDefault("world.center.y", def.World.Center.Y)
	v.SetDefault("world.center.z", def.World.Center.Z)

	v.SetDefault("aircraft.maxLife", def.Aircraft.MaxLife)
	v.SetDefault("aircraft.speed", def.Aircraft.Speed)
	v.SetDefault("aircraft.turnRate", def.Aircraft.TurnRate)
	v.SetDefault("aircraft.fireCooldown", def.Aircraft.FireCooldown)
	v.SetDefault("aircraft.fireOffset", def.Aircraft.FireOffset)
	v.SetDefault("aircraft.damageFlash", def.Aircraft.DamageFlash)

	v.SetDefault("drones.count", def.Drones.Count)
	v.SetDefault("drones.speed", def.Drones.Speed)
	v.SetDefault("drones.maxTurnRate", def.Drones.MaxTurnRate)
	v.SetDefault("drones.fireInterval", def.Drones.FireInterval)
	v.SetDefault("drones.fireOffset", def.Drones.FireOffset)

	v.SetDefault("missiles.speed", def.Missiles.Speed)
	v.SetDefault("missiles.lifetime", def.Missiles.Lifetime)

	v.SetDefault("checkpoints.count", def.Checkpoints.Count)
	v.SetDefault("asteroids.count", def.Asteroids.Count)
	v.SetDefault("spawn.clearance", def.Spawn.Clearance)

	v.SetDefault("rules.maxDeltaTime", def.Rules.MaxDeltaTime)
	v.SetDefault("rules.droneContactDamage", def.Rules.DroneContactDamage)
	v.SetDefault("rules.asteroidContactDamage", def.Rules.AsteroidContactDamage)
	v.SetDefault("rules.missileDamage", def.Rules.MissileDamage)
	v.SetDefault("rules.droneFireMode", def.Rules.DroneFireMode)
}

// LoadConfig loads a configuration from a JSON or YAML file, applies
// MOONSTRIKE_* environment overrides and validates the result. An empty
// path yields the defaults plus environment overrides.
func LoadConfig(path string) (*GameConfig, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config GameConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves a configuration to a file. .yaml and .yml paths are
// written as YAML, anything else as indented JSON.
func SaveConfig(config *GameConfig, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every out-of-range value, each wrapped in ErrInvalidConfig
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.World.Radius > 0, "world.radius must be positive, got %v", c.World.Radius)

	check(c.Aircraft.MaxLife >= 1, "aircraft.maxLife must be at least 1, got %d", c.Aircraft.MaxLife)
	check(c.Aircraft.Speed > 0, "aircraft.speed must be positive, got %v", c.Aircraft.Speed)
	check(c.Aircraft.TurnRate > 0, "aircraft.turnRate must be positive, got %v", c.Aircraft.TurnRate)
	check(c.Aircraft.FireCooldown >= 0, "aircraft.fireCooldown must not be negative, got %v", c.Aircraft.FireCooldown)
	check(c.Aircraft.FireOffset >= 0, "aircraft.fireOffset must not be negative, got %v", c.Aircraft.FireOffset)
	check(c.Aircraft.DamageFlash >= 0, "aircraft.damageFlash must not be negative, got %v", c.Aircraft.DamageFlash)

	check(c.Drones.Count >= 0, "drones.count must not be negative, got %d", c.Drones.Count)
	check(c.Drones.Speed > 0, "drones.speed must be positive, got %v", c.Drones.Speed)
	check(c.Drones.MaxTurnRate > 0, "drones.maxTurnRate must be positive, got %v", c.Drones.MaxTurnRate)
	check(c.Drones.FireInterval > 0, "drones.fireInterval must be positive, got %v", c.Drones.FireInterval)
	check(c.Drones.FireOffset >= 0, "drones.fireOffset must not be negative, got %v", c.Drones.FireOffset)

	check(c.Missiles.Speed > 0, "missiles.speed must be positive, got %v", c.Missiles.Speed)
	check(c.Missiles.Lifetime > 0, "missiles.lifetime must be positive, got %v", c.Missiles.Lifetime)

	check(c.Checkpoints.Count >= 0, "checkpoints.count must not be negative, got %d", c.Checkpoints.Count)
	check(c.Asteroids.Count >= 0, "asteroids.count must not be negative, got %d", c.Asteroids.Count)
	check(c.Spawn.Clearance >= 0, "spawn.clearance must not be negative, got %v", c.Spawn.Clearance)

	check(c.Rules.MaxDeltaTime > 0, "rules.maxDeltaTime must be positive, got %v", c.Rules.MaxDeltaTime)
	check(validDamagePolicy(c.Rules.DroneContactDamage), "rules.droneContactDamage: unknown policy %q", c.Rules.DroneContactDamage)
	check(validDamagePolicy(c.Rules.AsteroidContactDamage), "rules.asteroidContactDamage: unknown policy %q", c.Rules.AsteroidContactDamage)
	check(validDamagePolicy(c.Rules.MissileDamage), "rules.missileDamage: unknown policy %q", c.Rules.MissileDamage)
	check(c.Rules.DroneFireMode == FireIndependent || c.Rules.DroneFireMode == FireShared,
		"rules.droneFireMode: unknown mode %q", c.Rules.DroneFireMode)

	return errors.Join(errs...)
}

func validDamagePolicy(policy string) bool {
	return policy == DamagePerHit || policy == DamageOncePerPhase
}

// SeedValue derives the session's random seed. Equal seed strings always
// produce equal sessions; an empty seed falls back to the clock.
func (c *GameConfig) SeedValue() uint64 {
	if c.Seed == "" {
		return uint64(time.Now().UnixNano())
	}
	return xxhash.Sum64String(c.Seed)
}
