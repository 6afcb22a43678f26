package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/eventbus"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/observability"
	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/render"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (иначе ENV VOXEL_CONFIG или дефолты)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("sim"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🧱 Запуск воксельной симуляции...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	logging.Info("📡 Конфигурация: seed=%d, чанк %dx%d, радиус видимости %d, тик %d Гц",
		cfg.World.Seed, cfg.World.ChunkWidth, cfg.World.ChunkHeight,
		cfg.World.DrawDistance, cfg.Physics.TickRate)

	// === ТЕЛЕМЕТРИЯ ===
	ctx := context.Background()
	shutdownTelemetry, err := observability.InitTelemetry(ctx, "voxel-sim")
	if err != nil {
		logging.Warn("⚠️ OpenTelemetry недоступен: %v", err)
		shutdownTelemetry = nil
	}

	// === ШИНА СОБЫТИЙ И МЕТРИКИ ===
	bus := eventbus.NewMemoryBus(1024)
	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("⚠️ Не удалось подписать LoggingListener: %v", err)
	}
	exporter := eventbus.NewMetricsExporter(bus)
	exporter.StartHTTP(fmt.Sprintf(":%d", cfg.Server.GetMetricsPort()))

	// === МИР ===
	logging.Debug("Создание менеджера мира...")
	registry := cfg.BlockRegistry()
	wm := world.NewWorldManager(cfg.WorldParams(), registry)
	renderer := render.NewMemoryRenderer()
	wm.SetRenderer(renderer)
	wm.SetEventBus(bus)

	// === ФИЗИКА ===
	logging.Debug("Создание физического движка...")
	engine := physics.NewEngine(wm)
	engine.Gravity = cfg.Physics.Gravity
	engine.JumpSpeed = cfg.Physics.JumpSpeed

	// Наблюдатель появляется над серединой стартового чанка и падает на рельеф
	body := physics.NewBody(vec.Vec3Float{
		X: float64(cfg.World.ChunkWidth) / 2,
		Y: float64(cfg.World.ChunkHeight),
		Z: float64(cfg.World.ChunkWidth) / 2,
	}, 0.4, 1.8)

	wm.Update(body.Position)
	logging.Info("✅ Мир застримлен: %d чанков, %d видимых инстансов",
		wm.LoadedChunkCount(), renderer.TotalInstances())

	// === ЦИКЛ СИМУЛЯЦИИ ===
	stats := observability.NewSysStats()

	tickDuration := time.Second / time.Duration(cfg.Physics.TickRate)
	dt := tickDuration.Seconds()

	ticker := time.NewTicker(tickDuration)
	defer ticker.Stop()
	statsTicker := time.NewTicker(10 * time.Second)
	defer statsTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logging.Info("🚶 Наблюдатель обходит мир по спирали со скоростью %.1f блоков/с", cfg.Physics.MoveSpeed)

	tick := 0
loop:
	for {
		select {
		case sig := <-sigCh:
			logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
			break loop

		case <-statsTicker.C:
			cpuPercent, _ := stats.CPUUsage()
			logging.Info("📊 Аптайм %s | память %.1f MB | CPU %.1f%% | чанков %d | позиция (%.1f, %.1f, %.1f)",
				stats.Uptime(), stats.MemoryUsageMB(), cpuPercent,
				wm.LoadedChunkCount(), body.Position.X, body.Position.Y, body.Position.Z)

		case <-ticker.C:
			// Скриптованный ввод: направление медленно вращается — наблюдатель
			// идёт по расширяющейся спирали и постоянно пересекает границы чанков
			angle := float64(tick) * dt * 0.2
			input := physics.InputState{
				Move: vec.Vec2Float{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(cfg.Physics.MoveSpeed),
				Jump: tick > 0 && tick%(cfg.Physics.TickRate*5) == 0,
			}

			engine.Step(body, input, dt)
			wm.Update(body.Position)
			tick++
		}
	}

	// === GRACEFUL SHUTDOWN ===
	logging.Debug("Остановка сервисов...")
	wm.Stop()
	exporter.Stop()
	if shutdownTelemetry != nil {
		if err := shutdownTelemetry(ctx); err != nil {
			logging.Error("❌ Ошибка остановки телеметрии: %v", err)
		}
	}

	logging.Info("👋 Симуляция остановлена")
}
