package injector

import (
	"github.com/google/uuid"
	"github.com/google/wire"

	"github.com/zeusync/armsim/internal/config"
	"github.com/zeusync/armsim/internal/core/events/bus"
	"github.com/zeusync/armsim/internal/core/observability/log"
	"github.com/zeusync/armsim/internal/core/sim"
)

// App is the set of long-lived components shared by every command.
type App struct {
	Config *config.Config
	Logger log.Log
	Sim    *sim.Simulator
	Bus    bus.EventBus
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideSimConfig,
	sim.New,
	bus.New,
	wire.Struct(new(App), "*"),
)

// ProvideLogger builds the root logger and tags it with a fresh run id.
// The cleanup flushes buffered entries.
func ProvideLogger(cfg *config.Config) (log.Log, func(), error) {
	l, err := log.New(cfg.LogOptions())
	if err != nil {
		return nil, nil, err
	}
	root := l.With(log.String("run_id", uuid.NewString()))
	return root, func() { _ = l.Sync() }, nil
}

func ProvideSimConfig(cfg *config.Config) (sim.Config, error) {
	return cfg.SimConfig()
}
