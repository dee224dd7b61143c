package mockapi

import (
	"net/http"

	"github.com/jrsteele09/go-pg-admin/staff"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route path constants
const (
	RouteAuthLogin  = "/api/auth/login"
	RouteAuthLogout = "/api/auth/logout"
	RouteAuthMe     = "/api/auth/me"

	RouteMembers   = "/api/members"
	RouteRooms     = "/api/rooms"
	RoutePayments  = "/api/payments"
	RouteReceipt   = "/api/payments/{id}/receipt"
	RouteExpenses  = "/api/expenses"
	RouteApprovals = "/api/approvals"
	RouteApproval  = "/api/approvals/{id}"
	RouteSummary   = "/api/reports/summary"

	RouteMetrics = "/metrics"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireAuth())...))

	s.RegisterRouteHandler("GET "+RouteMembers, ChainMiddleware(s.MembersHandler(), s.APIMiddleware(s.RequirePermission(staff.PermViewMembers))...))
	s.RegisterRouteHandler("GET "+RouteRooms, ChainMiddleware(s.RoomsHandler(), s.APIMiddleware(s.RequirePermission(staff.PermViewRooms))...))
	s.RegisterRouteHandler("GET "+RoutePayments, ChainMiddleware(s.PaymentsHandler(), s.APIMiddleware(s.RequirePermission(staff.PermViewPayments))...))
	s.RegisterRouteHandler("POST "+RouteReceipt, ChainMiddleware(s.ReceiptUploadHandler(), s.APIMiddleware(s.RequirePermission(staff.PermUploadReceipts))...))
	s.RegisterRouteHandler("GET "+RouteExpenses, ChainMiddleware(s.ExpensesHandler(), s.APIMiddleware(s.RequirePermission(staff.PermViewExpenses))...))
	s.RegisterRouteHandler("GET "+RouteApprovals, ChainMiddleware(s.ApprovalsHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("PATCH "+RouteApproval, ChainMiddleware(s.DecideApprovalHandler(), s.APIMiddleware(s.RequirePermission(staff.PermDecideApprovals))...))
	s.RegisterRouteHandler("GET "+RouteSummary, ChainMiddleware(s.SummaryHandler(), s.APIMiddleware(s.RequirePermission(staff.PermViewReports))...))

	// Preflight for every API path
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {}, s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}
