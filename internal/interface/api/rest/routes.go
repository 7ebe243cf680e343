package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteLogin = RouteAuth + "/login"

	// self-service
	RouteUsers        = RouteApiV1 + "/users"
	RouteSelf         = RouteUsers + "/me"
	RouteSelfPassword = RouteSelf + "/password"
	RouteSelfLogin    = RouteSelf + "/login"

	// admin
	RouteActiveUsers    = RouteUsers + "/active"
	RouteUsersOlderThan = RouteUsers + "/older-than/:age"
	RouteUser           = RouteUsers + "/:login"
	RouteUserPassword   = RouteUser + "/password"
	RouteUserLogin      = RouteUser + "/login"
	RouteUserRevoke     = RouteUser + "/revoke"
	RouteUserRestore    = RouteUser + "/restore"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
