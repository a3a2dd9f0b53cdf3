//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/bitebrain/internal/bootstrap"
	"github.com/yanqian/bitebrain/internal/domain/outlook"
	"github.com/yanqian/bitebrain/internal/domain/solunar"
	"github.com/yanqian/bitebrain/internal/infra/config"
	"github.com/yanqian/bitebrain/internal/infra/weather"
	httpiface "github.com/yanqian/bitebrain/internal/interface/http"
	"github.com/yanqian/bitebrain/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSpeciesStore,
		provideSpotCatalog,
		provideRecommender,
		provideSolunarCalculator,
		provideWeatherProvider,
		provideOutlookService,
		provideTilesConfig,
		provideRegionRepository,
		provideBlobStore,
		provideTileFetcher,
		provideJobQueue,
		provideTilesService,
		provideScheduler,
		wire.Bind(new(outlook.WeatherProvider), new(*weather.StaticProvider)),
		wire.Bind(new(outlook.SolunarSource), new(*solunar.Calculator)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
