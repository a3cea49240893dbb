package services

import (
	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"
	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The converter is initialized first since most other services depend on it.
	container.Converter = NewConverterService(repos.RateRepo)
	container.Rate = NewRateService(repos.RateRepo)

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.ProfileRepo, container.Converter)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.ProfileRepo, container.Converter)
	container.Snapshot = NewSnapshotService(repos.SnapshotRepo, repos.ProfileRepo, container.Ledger, container.Budget, container.Converter)
	container.Feed = NewFeedService(repos.SnapshotRepo, repos.FeedRepo, container.Ledger, container.Budget, container.Converter)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RateSvcFacade     = (*RateService)(nil)
	_ portssvc.ConverterSvc      = (*ConverterService)(nil)
	_ portssvc.LedgerSvcFacade   = (*LedgerService)(nil)
	_ portssvc.BudgetSvcFacade   = (*BudgetService)(nil)
	_ portssvc.SnapshotSvcFacade = (*SnapshotService)(nil)
	_ portssvc.FeedSvcFacade     = (*FeedService)(nil)
)
