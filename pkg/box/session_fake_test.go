package box

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// recordedCall is one request seen by fakeSession. Body holds the JSON
// encoding of the request body, or nil when there was none.
type recordedCall struct {
	Method string
	URL    string
	Query  any
	Body   json.RawMessage
}

// fakeSession records requests and answers each with resp or err.
type fakeSession struct {
	apiURL string
	resp   map[string]any
	err    error
	calls  []recordedCall
}

func newFakeSession(resp map[string]any) *fakeSession {
	return &fakeSession{apiURL: "https://api.example.test/2.0", resp: resp}
}

func (f *fakeSession) APIURL() string { return f.apiURL }

func (f *fakeSession) Get(_ context.Context, url string, query any, out any) error {
	f.calls = append(f.calls, recordedCall{Method: http.MethodGet, URL: url, Query: query})
	return f.answer(out)
}

func (f *fakeSession) Post(_ context.Context, url string, body any, out any) error {
	return f.record(http.MethodPost, url, body, out)
}

func (f *fakeSession) Put(_ context.Context, url string, body any, out any) error {
	return f.record(http.MethodPut, url, body, out)
}

func (f *fakeSession) Delete(_ context.Context, url string) error {
	f.calls = append(f.calls, recordedCall{Method: http.MethodDelete, URL: url})
	return f.err
}

func (f *fakeSession) record(method, url string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	f.calls = append(f.calls, recordedCall{Method: method, URL: url, Body: b})
	return f.answer(out)
}

func (f *fakeSession) answer(out any) error {
	if f.err != nil {
		return f.err
	}
	if out == nil || f.resp == nil {
		return nil
	}
	b, err := json.Marshal(f.resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

var _ types.Session = (*fakeSession)(nil)
