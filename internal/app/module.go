package app

import (
	"go.uber.org/fx"

	"orslog/internal/app/broadcast"
	"orslog/internal/app/bus"
	"orslog/internal/app/cli"
	"orslog/internal/app/export"
	"orslog/internal/app/generator"
	"orslog/internal/app/logs"
	"orslog/internal/app/monitor"
	"orslog/internal/app/publisher"
	"orslog/internal/app/receiver"
	"orslog/internal/app/reporter"
	"orslog/internal/app/runner"
	"orslog/internal/app/ui/wire"
	"orslog/internal/app/viewer"
	"orslog/internal/app/watcher"
	"orslog/internal/config/logger"
)

var Module = fx.Options(
	logger.Module,
	bus.Module,
	logs.Module,
	monitor.Module,
	reporter.Module,
	broadcast.Module,
	publisher.Module,
	receiver.Module,
	viewer.Module,
	export.Module,
	watcher.Module,
	generator.Module,
	wire.Module,
	runner.Module,
	cli.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
