package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/revesshop/revesshop-client/internal/supersede"
)

// debugTransport dumps every request and response through zerolog at debug
// level. Enable it with REVESSHOP_DEBUG=true, DEBUG=true or
// WithDebugLogging(true).
//
// Dumps include headers and bodies, so bearer tokens and login passwords end
// up in the log. Keep it out of production.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	logger := log.With().Str("method", req.Method).Str("url", req.URL.String()).Logger()
	if tok, ok := supersede.TokenFrom(req.Context()); ok {
		logger = logger.With().Str("call_token", tok.String()).Logger()
	}

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		logger.Debug().Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		logger.Error().Err(err).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		logger.Debug().Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether REVESSHOP_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("REVESSHOP_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
