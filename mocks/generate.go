package mocks

//go:generate mockgen -destination=./mock_notifier.go -package=mocks github.com/rxtech-lab/argo-trend/internal/notification Notifier
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-trend/internal/datasource DataSource
//go:generate mockgen -destination=./mock_executor.go -package=mocks github.com/rxtech-lab/argo-trend/internal/trading Executor
//go:generate mockgen -destination=./mock_marker.go -package=mocks github.com/rxtech-lab/argo-trend/internal/marker Marker
