package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	OrderHandler       *OrderHandler
	VacancyHandler     *VacancyHandler
	ApplicationHandler *ApplicationHandler
	WorkerHandler      *WorkerHandler
	ReviewHandler      *ReviewHandler
	GeoHandler         *GeoHandler
}
