package remote

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport dumps each HTTP request/response pair for troubleshooting
// adapter traffic (malformed payloads, unexpected statuses, auth issues).
// Installed via WithDebugLogging or LISTS_DEBUG=true; once installed it
// always dumps. Dumps include full bodies, so keep it out of production.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether HTTP debug logging is enabled via
// LISTS_DEBUG=true (adapter-specific) or DEBUG=true (general). New consults
// it so the transport can be turned on without a code change.
func debugLoggingRequested() bool {
	return os.Getenv("LISTS_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
