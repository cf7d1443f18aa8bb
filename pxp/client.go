package pxp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mdzio/go-logging"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	// Endpoint is the path of the PXP communication service below the district
	// URL.
	Endpoint = "/Service/PXPCommunication.asmx/ProcessWebServiceRequest"

	// max. size of a valid response, if not specified: 10 MB
	responseSizeLimit = 10 * 1024 * 1024

	// the service answers only to known mobile clients
	userAgent = "ksoap2-android/2.6.0+"

	// root element of the ASP.NET response envelope
	envelopeElement = "string"
)

// Caller is an interface for calling remote methods. The raw response document
// is returned.
type Caller interface {
	Call(ctx context.Context, op Operation, params Params) (string, error)
}

var clnLog = logging.Get("pxp-client")

// Client provides access to the PXP communication service of a school
// district. Client implements Caller.
type Client struct {
	// BaseURL is the district URL, e.g. https://studentvue.example.org
	BaseURL  string
	UserID   string
	Password string

	// HTTPClient is used for the requests. If nil, http.DefaultClient is used.
	HTTPClient        *http.Client
	ResponseSizeLimit int64
}

// Call executes a remote procedure call.
func (c *Client) Call(ctx context.Context, op Operation, params Params) (string, error) {
	addr := c.BaseURL + Endpoint
	clnLog.Tracef("Calling method %s on %s", op, addr)

	// build parameter fragment
	paramStr, err := params.Encode()
	if err != nil {
		return "", err
	}
	if clnLog.TraceEnabled() {
		clnLog.Tracef("Request parameters: %s", paramStr)
	}

	// the service expects the fields in this order
	body := encodeForm([][2]string{
		{"userID", c.UserID},
		{"password", c.Password},
		{"skipLoginLog", "true"},
		{"parent", "false"},
		{"webServiceHandleName", op.Handle.String()},
		{"methodName", op.Method.String()},
		{"paramStr", paramStr},
	})

	// http post
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, strings.NewReader(body))
	if err != nil {
		return "", newError(TransportFailure, "", fmt.Errorf("Creating of request for %s failed: %w", addr, err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	httpResp, err := hc.Do(req)
	if err != nil {
		return "", newError(TransportFailure, "", fmt.Errorf("HTTP request failed on %s: %w", addr, err))
	}
	defer httpResp.Body.Close()

	// check status
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", newError(TransportFailure, "", fmt.Errorf("HTTP request failed on %s with code: %s", addr, httpResp.Status))
	}

	// read response, a BOM selects the encoding
	limit := c.ResponseSizeLimit
	if limit == 0 {
		limit = responseSizeLimit
	}
	rawBuf, err := io.ReadAll(io.LimitReader(httpResp.Body, limit+1))
	if err != nil {
		return "", newError(TransportFailure, "", fmt.Errorf("Reading of response failed from %s: %w", addr, err))
	}
	if int64(len(rawBuf)) > limit {
		return "", newError(TransportFailure, "", fmt.Errorf("Response from %s exceeds size limit of %d bytes", addr, limit))
	}
	respBuf, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), rawBuf)
	if err != nil {
		return "", newError(TransportFailure, "", fmt.Errorf("Decoding of response failed from %s: %w", addr, err))
	}
	if clnLog.TraceEnabled() {
		clnLog.Tracef("Response: %s", string(respBuf))
	}

	// check for an error document of the service
	text := unescapeResponse(string(respBuf))
	if root, err := Parse(text); err == nil {
		if f := Fault(root); f != nil {
			return "", newError(TransportFailure, "", f)
		}
	}
	return text, nil
}

// encodeForm encodes form fields and keeps their order (url.Values sorts).
func encodeForm(fields [][2]string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f[1]))
	}
	return b.String()
}

var ltgtReplacer = strings.NewReplacer("&lt;", "<", "&gt;", ">")

// unescapeResponse returns the response document. The service wraps it XML
// escaped into a <string> element. A body which is not well-formed XML gets
// only its angle brackets unescaped.
func unescapeResponse(body string) string {
	root, err := Parse(body)
	if err != nil {
		return ltgtReplacer.Replace(body)
	}
	if root.Name == envelopeElement && len(root.Children) == 0 {
		return root.Text
	}
	return body
}
