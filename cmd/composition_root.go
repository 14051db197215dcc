package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/ws"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, hub *ws.Hub, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        hub,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateClaimProductionOrderCommandHandler() commands.ClaimProductionOrderCommandHandler {
	return commands.NewClaimProductionOrderCommandHandler(c.productionUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateTransitionProductionOrderCommandHandler() commands.TransitionProductionOrderCommandHandler {
	return commands.NewTransitionProductionOrderCommandHandler(c.productionUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateRecalculateCapacityCommandHandler() commands.RecalculateCapacityCommandHandler {
	return commands.NewRecalculateCapacityCommandHandler(c.capacityUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateAcknowledgeAlertCommandHandler() commands.AcknowledgeAlertCommandHandler {
	return commands.NewAcknowledgeAlertCommandHandler(c.capacityUoWFactory())
}

func (c *CompositionRoot) CreateRecordHeartbeatCommandHandler() commands.RecordHeartbeatCommandHandler {
	return commands.NewRecordHeartbeatCommandHandler(c.presenceUoWFactory())
}

func (c *CompositionRoot) CreateGetClaimableOrdersQueryHandler() queries.GetClaimableOrdersQueryHandler {
	return queries.NewGetClaimableOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetWorkerActivityQueryHandler() queries.GetWorkerActivityQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetWorkerActivityQueryHandler(uow.PresenceRepository(), uow.OrderRepository())
}

func (c *CompositionRoot) CreateGetLocationCapacityQueryHandler() queries.GetLocationCapacityQueryHandler {
	return queries.NewGetLocationCapacityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenAlertsQueryHandler() queries.GetOpenAlertsQueryHandler {
	return queries.NewGetOpenAlertsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRecalculateCapacityCommandHandler(),
		c.capacityUoWFactory(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateClaimOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateClaimProductionOrderCommandHandler(),
		c.CreateTransitionProductionOrderCommandHandler(),
		c.CreateRecalculateCapacityCommandHandler(),
		c.CreateAcknowledgeAlertCommandHandler(),
		c.CreateRecordHeartbeatCommandHandler(),
		c.CreateGetClaimableOrdersQueryHandler(),
		c.CreateGetWorkerActivityQueryHandler(),
		c.CreateGetLocationCapacityQueryHandler(),
		c.CreateGetOpenAlertsQueryHandler(),
		c.hub,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) productionUoWFactory() commands.ProductionUoWFactory {
	return FuncProductionUoWFactory(func() commands.ProductionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) capacityUoWFactory() commands.CapacityUoWFactory {
	return FuncCapacityUoWFactory(func() commands.CapacityUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) presenceUoWFactory() commands.PresenceUoWFactory {
	return FuncPresenceUoWFactory(func() commands.PresenceUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncProductionUoWFactory func() commands.ProductionUoW

func (f FuncProductionUoWFactory) Create() commands.ProductionUoW {
	return f()
}

type FuncCapacityUoWFactory func() commands.CapacityUoW

func (f FuncCapacityUoWFactory) Create() commands.CapacityUoW {
	return f()
}

type FuncPresenceUoWFactory func() commands.PresenceUoW

func (f FuncPresenceUoWFactory) Create() commands.PresenceUoW {
	return f()
}
