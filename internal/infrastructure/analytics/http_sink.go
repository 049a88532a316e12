package analytics

import (
	"strings"
	"time"

	"token_sale/internal/app/port"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type analyticsEvent struct {
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties,omitempty"`
	Timestamp  int64          `json:"timestamp"`
}

// HTTPSink delivers analytics events to a collector endpoint. Delivery is
// best effort; a failure is logged at debug level and never surfaces to
// the purchase flow.
type HTTPSink struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewHTTPSink creates a sink posting to baseURL/events.
func NewHTTPSink(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPSink {
	return &HTTPSink{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("AnalyticsSink"),
	}
}

func (s *HTTPSink) Send(event string, properties map[string]any) {
	body, err := json.Marshal(analyticsEvent{
		Event:      event,
		Properties: properties,
		Timestamp:  time.Now().Unix(),
	})
	if err != nil {
		s.logger.Debug("Failed to encode analytics event", zap.Error(err))
		return
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.baseURL + "/events")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		s.logger.Debug("Failed to deliver analytics event",
			zap.String("event", event), zap.Error(err))
		return
	}
	if resp.StatusCode() >= 300 {
		s.logger.Debug("Analytics collector rejected event",
			zap.String("event", event), zap.Int("status", resp.StatusCode()))
	}
}

// NoopSink drops every event. Used when analytics is disabled.
type NoopSink struct{}

func (NoopSink) Send(string, map[string]any) {}

var (
	_ port.AnalyticsSink = (*HTTPSink)(nil)
	_ port.AnalyticsSink = NoopSink{}
)
