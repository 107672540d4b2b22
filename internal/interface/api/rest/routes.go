package rest

const (
	// api
	RouteApi = "/api"

	RouteDebugSession = RouteApi + "/debug/session"
	RouteLogging      = RouteApi + "/logging"

	// uploads
	RouteUploadChunk  = RouteApi + "/upload-video-blob-chunk"
	RouteUploadDirect = RouteApi + "/upload-video-blob-direct"

	// auth
	RouteAuth     = RouteApi + "/auth"
	RouteAuthLink = RouteAuth + "/link"

	// admin
	RouteAdmin         = RouteApi + "/admin"
	RouteAdminUsers    = RouteAdmin + "/users"
	RouteAdminOverview = RouteAdmin + "/overview"

	RouteImages = RouteApi + "/images/*key"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)
