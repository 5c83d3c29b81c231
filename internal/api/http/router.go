package http

import (
	"net/http"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/security"
	"tahseel-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles everything the router needs.
type Services struct {
	Auth        service.AuthService
	Notebooks   service.NotebookService
	Reports     service.ReportService
	Receipts    service.ReceiptService
	Collectors  service.CollectorService
	Funds       service.FundService
	Deposits    service.DepositService
	Subscribers service.SubscriberService
	Dashboard   service.DashboardService
}

// NewRouter builds the API surface. Login and refresh are public; everything
// else sits behind bearer auth. Mutations require the manager or admin role,
// user registration admin only.
func NewRouter(svcs Services, tokens security.TokenManager) http.Handler {
	auth := &authHandler{auth: svcs.Auth}
	notebooks := &notebookHandler{notebooks: svcs.Notebooks}
	reports := &reportHandler{reports: svcs.Reports}
	receipts := &receiptHandler{receipts: svcs.Receipts}
	collectors := &collectorHandler{collectors: svcs.Collectors}
	funds := &fundHandler{funds: svcs.Funds}
	deposits := &depositHandler{deposits: svcs.Deposits}
	subscribers := &subscriberHandler{subscribers: svcs.Subscribers}
	dashboard := &dashboardHandler{dashboard: svcs.Dashboard}

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", auth.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", auth.refresh).Methods(http.MethodPost)

	// Read endpoints, open to every authenticated role. Collector-role users
	// are pinned to their own data by scopeCollector inside the handlers.
	read := api.NewRoute().Subrouter()
	read.Use(Authenticate(tokens))

	read.HandleFunc("/auth/password", auth.changePassword).Methods(http.MethodPut)

	read.HandleFunc("/dashboard", dashboard.summary).Methods(http.MethodGet)

	read.HandleFunc("/receipts", receipts.list).Methods(http.MethodGet)
	read.HandleFunc("/receipts/{id:[0-9]+}", receipts.get).Methods(http.MethodGet)

	read.HandleFunc("/notebooks", notebooks.list).Methods(http.MethodGet)
	read.HandleFunc("/notebooks/overview", notebooks.overview).Methods(http.MethodGet)
	read.HandleFunc("/notebooks/missing", notebooks.missing).Methods(http.MethodGet)
	read.HandleFunc("/notebooks/receipts/{number:[0-9]+}", notebooks.findReceipt).Methods(http.MethodGet)
	read.HandleFunc("/notebooks/{id:[0-9]+}", notebooks.get).Methods(http.MethodGet)

	read.HandleFunc("/reports/periodic", reports.periodicSummary).Methods(http.MethodGet)
	read.HandleFunc("/reports/periodic/funds", reports.fundPeriodicSummary).Methods(http.MethodGet)
	read.HandleFunc("/reports/periodic/detailed", reports.detailedPeriodic).Methods(http.MethodGet)
	read.HandleFunc("/reports/annual", reports.annual).Methods(http.MethodGet)

	read.HandleFunc("/collectors", collectors.list).Methods(http.MethodGet)
	read.HandleFunc("/collectors/{id:[0-9]+}", collectors.get).Methods(http.MethodGet)
	read.HandleFunc("/funds", funds.list).Methods(http.MethodGet)
	read.HandleFunc("/funds/{id:[0-9]+}", funds.get).Methods(http.MethodGet)
	read.HandleFunc("/deposits", deposits.list).Methods(http.MethodGet)
	read.HandleFunc("/deposits/{id:[0-9]+}", deposits.get).Methods(http.MethodGet)
	read.HandleFunc("/subscribers", subscribers.list).Methods(http.MethodGet)
	read.HandleFunc("/subscribers/latest-payments", subscribers.latestPayments).Methods(http.MethodGet)
	read.HandleFunc("/subscribers/{id:[0-9]+}", subscribers.get).Methods(http.MethodGet)
	read.HandleFunc("/subscribers/{id:[0-9]+}/statement", subscribers.statement).Methods(http.MethodGet)

	// Mutations.
	write := api.NewRoute().Subrouter()
	write.Use(Authenticate(tokens), RequireRoles(domain.UserRoleAdmin, domain.UserRoleManager))

	write.HandleFunc("/receipts", receipts.create).Methods(http.MethodPost)
	write.HandleFunc("/receipts/import", receipts.importBatch).Methods(http.MethodPost)
	write.HandleFunc("/receipts/{id:[0-9]+}", receipts.update).Methods(http.MethodPut)
	write.HandleFunc("/receipts/{id:[0-9]+}", receipts.delete).Methods(http.MethodDelete)

	write.HandleFunc("/notebooks/sync", notebooks.sync).Methods(http.MethodPost)
	write.HandleFunc("/notebooks/{id:[0-9]+}/missing/{number:[0-9]+}", notebooks.annotate).Methods(http.MethodPut)

	write.HandleFunc("/collectors", collectors.create).Methods(http.MethodPost)
	write.HandleFunc("/collectors/{id:[0-9]+}", collectors.update).Methods(http.MethodPut)
	write.HandleFunc("/collectors/{id:[0-9]+}", collectors.delete).Methods(http.MethodDelete)

	write.HandleFunc("/funds", funds.create).Methods(http.MethodPost)
	write.HandleFunc("/funds/{id:[0-9]+}", funds.update).Methods(http.MethodPut)
	write.HandleFunc("/funds/{id:[0-9]+}", funds.delete).Methods(http.MethodDelete)

	write.HandleFunc("/deposits", deposits.create).Methods(http.MethodPost)
	write.HandleFunc("/deposits/{id:[0-9]+}", deposits.update).Methods(http.MethodPut)
	write.HandleFunc("/deposits/{id:[0-9]+}", deposits.delete).Methods(http.MethodDelete)

	write.HandleFunc("/subscribers", subscribers.create).Methods(http.MethodPost)
	write.HandleFunc("/subscribers/{id:[0-9]+}", subscribers.update).Methods(http.MethodPut)
	write.HandleFunc("/subscribers/{id:[0-9]+}", subscribers.delete).Methods(http.MethodDelete)

	// User administration.
	admin := api.NewRoute().Subrouter()
	admin.Use(Authenticate(tokens), RequireRoles(domain.UserRoleAdmin))
	admin.HandleFunc("/auth/register", auth.register).Methods(http.MethodPost)

	return r
}
