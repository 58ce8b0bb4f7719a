package services

// ServiceContainer aggregates the service interfaces handed to the HTTP layer.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Transfer  TransferSvcFacade
	Reporting ReportingSvcFacade
}
