package cmd

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jgayfer/solidus/internal/adapters/out/postgres"
	"github.com/jgayfer/solidus/internal/adapters/out/postgres/orderfacts"
	"github.com/jgayfer/solidus/internal/adapters/out/rates"
	"github.com/jgayfer/solidus/internal/core/application/usecases/commands"
	"github.com/jgayfer/solidus/internal/core/application/usecases/queries"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/core/ports"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	orderReader ports.OrderReader
	notifier    ports.ShipmentNotifier
	estimator   ports.RateEstimator
	cfg         shipment.Config
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, notifier ports.ShipmentNotifier) CompositionRoot {
	var cache *redis.Client
	if configs.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	}

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		orderReader: orderfacts.NewGormOrderReader(gormDB),
		notifier:    notifier,
		estimator:   rates.NewClient(configs.RateServiceURL, cache),
		cfg:         shipment.Config{RequirePaymentToShip: configs.RequirePaymentToShip},
	}
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateReadyShipmentCommandHandler() commands.ReadyShipmentCommandHandler {
	return commands.NewReadyShipmentCommandHandler(
		c.shipmentUoWFactory(), c.orderReader, c.notifier, c.cfg)
}

func (c *CompositionRoot) CreateShipShipmentCommandHandler() commands.ShipShipmentCommandHandler {
	return commands.NewShipShipmentCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateResumeShipmentCommandHandler() commands.ResumeShipmentCommandHandler {
	return commands.NewResumeShipmentCommandHandler(c.fullUoWFactory(), c.orderReader, c.cfg)
}

func (c *CompositionRoot) CreatePendShipmentCommandHandler() commands.PendShipmentCommandHandler {
	return commands.NewPendShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeShipmentCommandHandler() commands.FinalizeShipmentCommandHandler {
	return commands.NewFinalizeShipmentCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateRefreshShippingRatesCommandHandler() commands.RefreshShippingRatesCommandHandler {
	return commands.NewRefreshShippingRatesCommandHandler(
		c.shipmentUoWFactory(), c.orderReader, c.estimator)
}

func (c *CompositionRoot) CreateSelectShippingRateCommandHandler() commands.SelectShippingRateCommandHandler {
	return commands.NewSelectShippingRateCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateSelectShippingMethodCommandHandler() commands.SelectShippingMethodCommandHandler {
	return commands.NewSelectShippingMethodCommandHandler(c.shipmentUoWFactory(), c.orderReader, c.estimator)
}

func (c *CompositionRoot) CreateSyncShipmentStatesCommandHandler() commands.SyncShipmentStatesCommandHandler {
	return commands.NewSyncShipmentStatesCommandHandler(
		c.shipmentUoWFactory(), c.orderReader, c.notifier, c.cfg)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnshippedShipmentsQueryHandler() queries.GetUnshippedShipmentsQueryHandler {
	return queries.NewGetUnshippedShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
