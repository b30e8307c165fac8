package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
// 專案全域建議都寫這裡，方便集中管理
type TraceSpanName string

const (
	SpanHttpRequest        TraceSpanName = "http_request"
	SpanLoggerMiddleware   TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware     TraceSpanName = "cors_middleware"
	SpanResponseMiddleware TraceSpanName = "response_middleware"
	SpanAuthMiddleware     TraceSpanName = "auth_middleware"
	SpanLoginRateLimit     TraceSpanName = "login_ratelimit_middleware"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal   MetricName = "requests_total"
	MetricHttpRequestDuration MetricName = "request_duration_seconds"
	MetricHttpSuccessTotal    MetricName = "success_total"
	MetricHttpFailTotal       MetricName = "fail_total"
	MetricAssetUploadTotal    MetricName = "asset_upload_total"
	MetricAssetDestroyTotal   MetricName = "asset_destroy_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelFolder   MetricLabelName = "folder"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
	UrlPath           string `trace:"url.path"`
	UrlScheme         string `trace:"url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanTraceID       string `trace:"span.trace_id"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.duration_ms"`
	Data       string  `trace:"response.preview"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.duration_ms"`
	Message    string  `trace:"panic.message"`
	Stack      string  `trace:"panic.stack"`
	Status     int     `trace:"http.status_code"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceAssetMeta struct {
	Folder   string `trace:"asset.folder"`
	PublicID string `trace:"asset.public_id,omitempty"`
	Format   string `trace:"asset.format,omitempty"`
	Bytes    int64  `trace:"asset.bytes,omitempty"`
	Status   string `trace:"asset.status,omitempty"`
}

type TraceLoginMeta struct {
	Username string `trace:"auth.username"`
	ClientIP string `trace:"net.peer.ip"`
	Status   string `trace:"auth.status"`
}

type TraceAuthMeta struct {
	Path     string `trace:"http.path"`
	ClientIP string `trace:"net.peer.ip"`
	Username string `trace:"auth.username,omitempty"`
	Status   string `trace:"auth.status"`
}

type TraceLoginLimitMeta struct {
	ClientIP  string `trace:"net.peer.ip"`
	Limit     int    `trace:"ratelimit.limit"`
	WindowSec int64  `trace:"ratelimit.window_sec"`
	Remaining int    `trace:"ratelimit.remaining"`
	TTL       int64  `trace:"ratelimit.ttl_sec"`
	Op        string `trace:"ratelimit.op"`
}

type TraceListMeta struct {
	City        string `trace:"list.city,omitempty"`
	Status      string `trace:"list.status,omitempty"`
	Search      string `trace:"list.search,omitempty"`
	ResultCount int    `trace:"result.count"`
}
