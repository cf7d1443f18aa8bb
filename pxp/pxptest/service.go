// Package pxptest provides a fake PXP communication service for tests.
package pxptest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/mdzio/go-logging"

	"github.com/mdzio/go-studentvue/pxp"
)

// max. size of a valid request, if not specified: 1 MB
const requestSizeLimit = 1024 * 1024

var svrLog = logging.Get("pxp-server")

// MethodFunc handles a call. params is the parsed parameter fragment (root
// element Parms). The returned text is the response document.
type MethodFunc func(params *pxp.Element) (string, error)

// Request is a received call.
type Request struct {
	Header http.Header
	// raw form encoded body
	Body      string
	Form      url.Values
	Operation pxp.Operation
	ParamStr  string
}

// Service implements a http.Handler emulating the PXP communication service.
// Calls are dispatched to the registered MethodFunc's. Errors are answered
// with RT_ERROR documents, like the real service does.
type Service struct {
	UserID           string
	Password         string
	RequestSizeLimit int64

	mutex    sync.RWMutex
	methods  map[pxp.Operation]MethodFunc
	requests []*Request
}

// HandleFunc registers a MethodFunc.
func (s *Service) HandleFunc(op pxp.Operation, f MethodFunc) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.methods == nil {
		s.methods = make(map[pxp.Operation]MethodFunc)
	}
	s.methods[op] = f
}

// HandleDocument registers a method which always returns the same document.
func (s *Service) HandleDocument(op pxp.Operation, doc string) {
	s.HandleFunc(op, func(*pxp.Element) (string, error) { return doc, nil })
}

// HandleElement registers a method which always returns the same document.
func (s *Service) HandleElement(op pxp.Operation, doc *pxp.Element) {
	s.HandleFunc(op, func(*pxp.Element) (string, error) {
		b, err := xml.Marshal(doc)
		return string(b), err
	})
}

// Requests returns the received requests.
func (s *Service) Requests() []*Request {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]*Request(nil), s.requests...)
}

func (s *Service) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	svrLog.Tracef("Request received from %s, URI %s", req.RemoteAddr, req.RequestURI)
	if req.URL.Path != pxp.Endpoint {
		http.NotFound(resp, req)
		return
	}
	if req.Method != http.MethodPost {
		http.Error(resp, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// read request
	limit := s.RequestSizeLimit
	if limit == 0 {
		limit = requestSizeLimit
	}
	reqBuf, err := io.ReadAll(http.MaxBytesReader(resp, req.Body, limit))
	if err != nil {
		svrLog.Errorf("Reading of request failed from %s: %v", req.RemoteAddr, err)
		http.Error(resp, "Reading of request failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	form, err := url.ParseQuery(string(reqBuf))
	if err != nil {
		svrLog.Errorf("Decoding of request from %s failed: %v", req.RemoteAddr, err)
		http.Error(resp, "Decoding of request failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	r := &Request{Header: req.Header, Body: string(reqBuf), Form: form, ParamStr: form.Get("paramStr")}

	// dispatch call
	doc, err := s.dispatch(r)
	if err != nil {
		svrLog.Warningf("Sending error response to %s: %v", req.RemoteAddr, err)
		doc = faultDocument(err)
	}

	// wrap into envelope
	var respBuf bytes.Buffer
	respBuf.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<string xmlns=\"http://edupoint.com/webservices/\">")
	err = xml.EscapeText(&respBuf, []byte(doc))
	if err != nil {
		svrLog.Errorf("Encoding of response for %s failed: %v", req.RemoteAddr, err)
		http.Error(resp, "Encoding of response failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	respBuf.WriteString("</string>")

	// send response
	resp.Header().Set("Content-Type", "text/xml; charset=utf-8")
	resp.Header().Set("Content-Length", strconv.Itoa(respBuf.Len()))
	_, err = resp.Write(respBuf.Bytes())
	if err != nil {
		svrLog.Warningf("Sending of response for %s failed: %v", req.RemoteAddr, err)
	}
}

func (s *Service) dispatch(r *Request) (string, error) {
	handle, ok := pxp.ParseHandle(r.Form.Get("webServiceHandleName"))
	if !ok {
		return "", fmt.Errorf("Unknown web service handle: %s", r.Form.Get("webServiceHandleName"))
	}
	method, ok := pxp.ParseMethod(r.Form.Get("methodName"))
	if !ok {
		return "", fmt.Errorf("Unknown method: %s", r.Form.Get("methodName"))
	}
	r.Operation = pxp.Operation{Handle: handle, Method: method}

	s.mutex.Lock()
	s.requests = append(s.requests, r)
	f, ok := s.methods[r.Operation]
	s.mutex.Unlock()

	if r.Form.Get("userID") != s.UserID || r.Form.Get("password") != s.Password {
		return "", errors.New("Invalid user id or password")
	}
	params, err := pxp.Parse(r.ParamStr)
	if err != nil {
		return "", fmt.Errorf("Invalid paramStr: %v", err)
	}
	if params.Name != "Parms" {
		return "", fmt.Errorf("Invalid paramStr root: %s", params.Name)
	}
	if !ok {
		return "", fmt.Errorf("Unknown method: %s", r.Operation)
	}
	svrLog.Debugf("Call of method %s received", r.Operation)
	return f(params)
}

func faultDocument(err error) string {
	doc := pxp.NewElement("RT_ERROR").SetAttr("ERROR_MESSAGE", err.Error())
	b, merr := xml.Marshal(doc)
	if merr != nil {
		return "<RT_ERROR/>"
	}
	return string(b)
}
