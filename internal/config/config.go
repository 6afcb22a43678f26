package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
	"gopkg.in/yaml.v3"
)

// Config — корневая структура конфигурации симуляции
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Server  ServerConfig  `yaml:"server"`
}

// WorldConfig описывает параметры генерации мира.
// Изменение любого поля и повторная генерация детерминированно воспроизводят
// один и тот же мир для одинаковых (seed, параметры).
type WorldConfig struct {
	Seed         int64            `yaml:"seed"`
	ChunkWidth   int              `yaml:"chunk_width"`
	ChunkHeight  int              `yaml:"chunk_height"`
	DrawDistance int              `yaml:"draw_distance"`
	Terrain      TerrainConfig    `yaml:"terrain"`
	Resources    []ResourceConfig `yaml:"resources"`
}

type TerrainConfig struct {
	Scale     float64 `yaml:"scale"`
	Magnitude float64 `yaml:"magnitude"`
	Offset    float64 `yaml:"offset"`
}

// ResourceConfig описывает один ресурсный блок.
// Порядок в списке значим: позже объявленный ресурс перезаписывает
// более ранний в той же позиции при генерации.
type ResourceConfig struct {
	ID        uint16  `yaml:"id"`
	Name      string  `yaml:"name"`
	VeinScale Vec3    `yaml:"vein_scale"`
	Scarcity  float64 `yaml:"scarcity"`
}

type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// PhysicsConfig — параметры физического движка и цикла симуляции
type PhysicsConfig struct {
	Gravity   float64 `yaml:"gravity"`
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	TickRate  int     `yaml:"tick_rate"`
}

type ServerConfig struct {
	MetricsPort int `yaml:"metrics_port"`
}

// GetMetricsPort возвращает порт Prometheus метрик с приоритетом config -> env -> default
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "VOXEL_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Default возвращает конфигурацию по умолчанию: мир 32x32 с тремя ресурсами
// и физика, настроенная под шаг в один блок
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:         0,
			ChunkWidth:   32,
			ChunkHeight:  32,
			DrawDistance: 1,
			Terrain: TerrainConfig{
				Scale:     30,
				Magnitude: 0.1,
				Offset:    0.2,
			},
			Resources: []ResourceConfig{
				{ID: uint16(block.StoneBlockID), Name: "stone", VeinScale: Vec3{X: 30, Y: 30, Z: 30}, Scarcity: 0.5},
				{ID: uint16(block.CoalOreBlockID), Name: "coal_ore", VeinScale: Vec3{X: 20, Y: 5, Z: 20}, Scarcity: 0.8},
				{ID: uint16(block.IronOreBlockID), Name: "iron_ore", VeinScale: Vec3{X: 16, Y: 8, Z: 16}, Scarcity: 0.9},
			},
		},
		Physics: PhysicsConfig{
			Gravity:   25,
			MoveSpeed: 5,
			JumpSpeed: 8,
			TickRate:  60,
		},
		Server: ServerConfig{},
	}
}

// Load читает YAML файл конфигурации и накладывает его на дефолты.
// Если path == "", пытается прочитать из ENV VOXEL_CONFIG; если и он пуст,
// возвращает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.World.ChunkWidth <= 0 {
		return fmt.Errorf("chunk_width должен быть положительным, получен %d", c.World.ChunkWidth)
	}
	if c.World.ChunkHeight <= 0 {
		return fmt.Errorf("chunk_height должен быть положительным, получен %d", c.World.ChunkHeight)
	}
	if c.World.DrawDistance < 0 {
		return fmt.Errorf("draw_distance не может быть отрицательным, получен %d", c.World.DrawDistance)
	}
	if c.Physics.TickRate <= 0 {
		return fmt.Errorf("tick_rate должен быть положительным, получен %d", c.Physics.TickRate)
	}
	for _, r := range c.World.Resources {
		if r.Scarcity <= 0 || r.Scarcity > 1 {
			return fmt.Errorf("scarcity ресурса %q должна лежать в (0, 1], получена %v", r.Name, r.Scarcity)
		}
		if r.VeinScale.X == 0 || r.VeinScale.Y == 0 || r.VeinScale.Z == 0 {
			return fmt.Errorf("vein_scale ресурса %q не может содержать нулей", r.Name)
		}
	}
	return nil
}

// WorldParams собирает параметры генерации для менеджера мира
func (c *Config) WorldParams() world.Params {
	return world.Params{
		Seed:         c.World.Seed,
		ChunkWidth:   c.World.ChunkWidth,
		ChunkHeight:  c.World.ChunkHeight,
		DrawDistance: c.World.DrawDistance,
		Terrain: world.TerrainParams{
			Scale:     c.World.Terrain.Scale,
			Magnitude: c.World.Terrain.Magnitude,
			Offset:    c.World.Terrain.Offset,
		},
	}
}

// BlockRegistry собирает каталог блоков: базовые типы плюс ресурсы
// из конфигурации в порядке их объявления
func (c *Config) BlockRegistry() *block.Registry {
	r := block.NewRegistry()
	r.Register(block.Type{ID: block.AirBlockID, Name: "air"})
	r.Register(block.Type{ID: block.DirtBlockID, Name: "dirt"})
	r.Register(block.Type{ID: block.GrassBlockID, Name: "grass"})

	for _, res := range c.World.Resources {
		r.Register(block.Type{
			ID:        block.BlockID(res.ID),
			Name:      res.Name,
			VeinScale: vec.Vec3Float{X: res.VeinScale.X, Y: res.VeinScale.Y, Z: res.VeinScale.Z},
			Scarcity:  res.Scarcity,
		})
	}
	return r
}
