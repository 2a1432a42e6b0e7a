package www

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"ordertrack/orders"
	"ordertrack/store"
)

type recordingPublisher struct {
	published []store.Order
}

func (p *recordingPublisher) PublishOrder(_ context.Context, o *store.Order) error {
	p.published = append(p.published, *o)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *recordingPublisher) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "orders.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	pub := &recordingPublisher{}
	srv := httptest.NewServer(NewOrderRouter(orders.NewManager(db, pub)))
	t.Cleanup(srv.Close)
	return srv, pub
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func patchJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPatch, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH %s: %v", url, err)
	}
	return resp
}

func decodeOrder(t *testing.T, resp *http.Response) store.Order {
	t.Helper()
	defer resp.Body.Close()
	var o store.Order
	if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	return o
}

func TestCreateOrderReturnsPending(t *testing.T) {
	srv, pub := newTestServer(t)

	resp := postJSON(t, srv.URL+"/orders", `{"customerName":"Alice","amount":"100.00"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	o := decodeOrder(t, resp)
	if o.Status != "PENDING" {
		t.Errorf("status = %s, want PENDING", o.Status)
	}
	if o.ID == "" {
		t.Error("order has no id")
	}
	if len(pub.published) != 1 || pub.published[0].Status != "PENDING" {
		t.Errorf("published = %+v, want one PENDING event", pub.published)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []string{
		`{"customerName":"","amount":"10"}`,
		`{"customerName":"Bob","amount":"-1"}`,
		`not json`,
	}
	for _, body := range cases {
		resp := postJSON(t, srv.URL+"/orders", body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestGetOrderNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/orders/no-such-id")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestUpdateStatusFlow(t *testing.T) {
	srv, pub := newTestServer(t)

	created := decodeOrder(t, postJSON(t, srv.URL+"/orders", `{"customerName":"Alice","amount":"100.00"}`))

	resp := patchJSON(t, srv.URL+"/orders/"+created.ID+"/status", `{"status":"PROCESSED"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("forward transition: status = %d, want 200", resp.StatusCode)
	}
	if o := decodeOrder(t, resp); o.Status != "PROCESSED" {
		t.Errorf("status = %s, want PROCESSED", o.Status)
	}

	// Regression is a client error.
	resp = patchJSON(t, srv.URL+"/orders/"+created.ID+"/status", `{"status":"PENDING"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("regression: status = %d, want 400", resp.StatusCode)
	}

	// Terminal orders reject any further change.
	resp = patchJSON(t, srv.URL+"/orders/"+created.ID+"/status", `{"status":"CANCELED"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cancel: status = %d, want 200", resp.StatusCode)
	}
	resp = patchJSON(t, srv.URL+"/orders/"+created.ID+"/status", `{"status":"COMPLETED"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("terminal: status = %d, want 400", resp.StatusCode)
	}

	// Unknown literal.
	resp = patchJSON(t, srv.URL+"/orders/"+created.ID+"/status", `{"status":"TELEPORTED"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown status: status = %d, want 400", resp.StatusCode)
	}

	// Missing order.
	resp = patchJSON(t, srv.URL+"/orders/no-such-id/status", `{"status":"PROCESSED"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing order: status = %d, want 404", resp.StatusCode)
	}

	// create + processed + canceled published; rejected requests not.
	if len(pub.published) != 3 {
		t.Errorf("published %d events, want 3", len(pub.published))
	}
}

func TestListOrdersByStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	a := decodeOrder(t, postJSON(t, srv.URL+"/orders", `{"customerName":"Alice","amount":"10"}`))
	decodeOrder(t, postJSON(t, srv.URL+"/orders", `{"customerName":"Bob","amount":"20"}`))
	patchJSON(t, srv.URL+"/orders/"+a.ID+"/status", `{"status":"SHIPPED"}`).Body.Close()

	resp, err := http.Get(srv.URL + "/orders/status/shipped")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var list []store.Order
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != a.ID {
		t.Errorf("shipped list = %+v", list)
	}

	bad, err := http.Get(srv.URL + "/orders/status/teleported")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown status filter: status = %d, want 400", bad.StatusCode)
	}
}
