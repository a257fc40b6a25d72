package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/deppfellow/leadboard/internal/errs"
	"github.com/deppfellow/leadboard/internal/lib/job"
	"github.com/deppfellow/leadboard/internal/model"
	"github.com/deppfellow/leadboard/internal/model/developer"
	"github.com/deppfellow/leadboard/internal/model/lead"
	"github.com/deppfellow/leadboard/internal/service"
	"github.com/deppfellow/leadboard/internal/testutil"
)

const (
	alice = "user_alice"
	bob   = "user_bob"
)

type fakeNotifier struct {
	mu       sync.Mutex
	payloads []job.DeveloperAssignedPayload
	err      error
}

func (f *fakeNotifier) EnqueueDeveloperAssigned(ctx context.Context, p job.DeveloperAssignedPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, p)
	return f.err
}

type fixture struct {
	store       *testutil.MemoryStore
	notifier    *fakeNotifier
	leads       *service.LeadService
	developers  *service.DeveloperService
	assignments *service.AssignmentService
}

func newFixture() *fixture {
	store := testutil.NewMemoryStore()
	notifier := &fakeNotifier{}
	return &fixture{
		store:       store,
		notifier:    notifier,
		leads:       service.NewLeadService(store),
		developers:  service.NewDeveloperService(store),
		assignments: service.NewAssignmentService(store, store, store, notifier),
	}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) createLead(t *testing.T, userID, title string) int64 {
	t.Helper()
	l, err := f.leads.CreateLead(context.Background(), userID, &lead.CreateLeadPayload{
		Title:      title,
		ClientName: "Client of " + title,
	})
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	return l.ID
}

func (f *fixture) createDeveloper(t *testing.T, userID, name string) int64 {
	t.Helper()
	d, err := f.developers.CreateDeveloper(context.Background(), userID, &developer.CreateDeveloperPayload{
		Name:  name,
		Email: name + "@example.com",
		Phone: "555-0100",
	})
	if err != nil {
		t.Fatalf("CreateDeveloper: %v", err)
	}
	return d.ID
}

func requireHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Status != status {
		t.Errorf("status: got %d, want %d", httpErr.Status, status)
	}
	if httpErr.Message != message {
		t.Errorf("message: got %q, want %q", httpErr.Message, message)
	}
}

func TestLeadService_CreateAndGet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.leads.CreateLead(ctx, alice, &lead.CreateLeadPayload{
		Title:       "Website redesign",
		Description: ptr("New marketing site"),
		ClientName:  "Acme",
		ClientEmail: ptr("ops@acme.test"),
	})
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if created.Title != "Website redesign" || *created.Description != "New marketing site" {
		t.Errorf("unexpected summary: %+v", created)
	}

	detail, err := f.leads.GetLead(ctx, alice, created.ID)
	if err != nil {
		t.Fatalf("GetLead: %v", err)
	}
	if detail.ClientName != "Acme" || *detail.ClientEmail != "ops@acme.test" {
		t.Errorf("unexpected detail: %+v", detail)
	}
	if detail.ClientPhone != nil {
		t.Errorf("clientPhone: got %v, want nil", *detail.ClientPhone)
	}
}

func TestLeadService_OwnershipIsolation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createLead(t, alice, "Alice's lead")

	_, err := f.leads.GetLead(ctx, bob, id)
	requireHTTPError(t, err, http.StatusNotFound, "Lead does not exist.")

	_, err = f.leads.UpdateLead(ctx, bob, &lead.UpdateLeadPayload{ID: id, Title: model.Some("stolen")})
	requireHTTPError(t, err, http.StatusNotFound, "Lead does not exist.")

	err = f.leads.DeleteLead(ctx, bob, id)
	requireHTTPError(t, err, http.StatusNotFound, "Lead does not exist.")

	leads, err := f.leads.ListLeads(ctx, bob)
	if err != nil {
		t.Fatalf("ListLeads: %v", err)
	}
	if len(leads) != 0 {
		t.Errorf("bob sees %d leads, want 0", len(leads))
	}

	detail, err := f.leads.GetLead(ctx, alice, id)
	if err != nil {
		t.Fatalf("GetLead: %v", err)
	}
	if detail.Title != "Alice's lead" {
		t.Errorf("title changed to %q", detail.Title)
	}
}

func TestLeadService_UpdatePartial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.createLead(t, alice, "Original")

	updated, err := f.leads.UpdateLead(ctx, alice, &lead.UpdateLeadPayload{ID: id, ClientPhone: model.Some("555-0199")})
	if err != nil {
		t.Fatalf("UpdateLead: %v", err)
	}
	if updated.Title != "Original" {
		t.Errorf("title: got %q, want unchanged", updated.Title)
	}
	if updated.ClientPhone == nil || *updated.ClientPhone != "555-0199" {
		t.Errorf("clientPhone not updated: %+v", updated)
	}

	unchanged, err := f.leads.UpdateLead(ctx, alice, &lead.UpdateLeadPayload{ID: id})
	if err != nil {
		t.Fatalf("empty UpdateLead: %v", err)
	}
	if *unchanged != *updated {
		t.Errorf("empty update changed the lead: got %+v, want %+v", unchanged, updated)
	}

	cleared, err := f.leads.UpdateLead(ctx, alice, &lead.UpdateLeadPayload{ID: id, ClientPhone: model.Null[string]()})
	if err != nil {
		t.Fatalf("clearing UpdateLead: %v", err)
	}
	if cleared.ClientPhone != nil || cleared.Title != "Original" {
		t.Errorf("null did not clear clientPhone: %+v", cleared)
	}
}

func TestLeadService_ListEmptyIsNotNil(t *testing.T) {
	f := newFixture()

	leads, err := f.leads.ListLeads(context.Background(), alice)
	if err != nil {
		t.Fatalf("ListLeads: %v", err)
	}
	if leads == nil {
		t.Error("ListLeads returned nil, want empty slice")
	}
}

func TestLeadService_StoreErrorPassesThrough(t *testing.T) {
	f := newFixture()
	boom := errors.New("connection reset")
	f.store.Err = boom

	_, err := f.leads.GetLead(context.Background(), alice, 1)
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want store error", err)
	}
}

func TestDeveloperService_DeleteCascades(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	leadID := f.createLead(t, alice, "Lead")
	devID := f.createDeveloper(t, alice, "dana")

	if _, err := f.assignments.AddDeveloper(ctx, alice, &lead.AssignmentPayload{LeadID: leadID, DeveloperID: &devID}); err != nil {
		t.Fatalf("AddDeveloper: %v", err)
	}

	if err := f.developers.DeleteDeveloper(ctx, alice, devID); err != nil {
		t.Fatalf("DeleteDeveloper: %v", err)
	}
	if n := f.store.AssignmentCount(); n != 0 {
		t.Errorf("assignments left: %d, want 0", n)
	}

	err := f.developers.DeleteDeveloper(ctx, alice, devID)
	requireHTTPError(t, err, http.StatusNotFound, "Developer does not exist.")
}

func TestAssignmentService_AddRemove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	leadID := f.createLead(t, alice, "Lead")
	devID := f.createDeveloper(t, alice, "dana")
	payload := &lead.AssignmentPayload{LeadID: leadID, DeveloperID: &devID}

	msg, err := f.assignments.AddDeveloper(ctx, alice, payload)
	if err != nil {
		t.Fatalf("AddDeveloper: %v", err)
	}
	if msg != service.MessageDeveloperAdded {
		t.Errorf("message: got %q", msg)
	}

	_, err = f.assignments.AddDeveloper(ctx, alice, payload)
	requireHTTPError(t, err, http.StatusOK, "Developer is already added.")

	msg, err = f.assignments.RemoveDeveloper(ctx, alice, payload)
	if err != nil {
		t.Fatalf("RemoveDeveloper: %v", err)
	}
	if msg != service.MessageDeveloperRemoved {
		t.Errorf("message: got %q", msg)
	}

	_, err = f.assignments.RemoveDeveloper(ctx, alice, payload)
	requireHTTPError(t, err, http.StatusOK, "Developer is not there.")
}

func TestAssignmentService_MissingRecordsAreBadRequests(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	leadID := f.createLead(t, alice, "Lead")
	devID := f.createDeveloper(t, alice, "dana")
	bobDev := f.createDeveloper(t, bob, "bobby")
	missing := int64(9999)

	tests := []struct {
		name    string
		payload *lead.AssignmentPayload
		message string
	}{
		{"missing lead", &lead.AssignmentPayload{LeadID: missing, DeveloperID: &devID}, "Lead does not exist."},
		{"missing developer", &lead.AssignmentPayload{LeadID: leadID, DeveloperID: &missing}, "Developer does not exist."},
		{"other user's developer", &lead.AssignmentPayload{LeadID: leadID, DeveloperID: &bobDev}, "Developer does not exist."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.assignments.AddDeveloper(ctx, alice, tt.payload)
			requireHTTPError(t, err, http.StatusBadRequest, tt.message)

			_, err = f.assignments.RemoveDeveloper(ctx, alice, tt.payload)
			requireHTTPError(t, err, http.StatusBadRequest, tt.message)
		})
	}

	if n := f.store.AssignmentCount(); n != 0 {
		t.Errorf("assignments created: %d, want 0", n)
	}
}

func TestAssignmentService_ListPartitions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	leadID := f.createLead(t, alice, "Lead")
	d1 := f.createDeveloper(t, alice, "one")
	d2 := f.createDeveloper(t, alice, "two")
	d3 := f.createDeveloper(t, alice, "three")
	f.createDeveloper(t, bob, "not-alices")

	if _, err := f.assignments.AddDeveloper(ctx, alice, &lead.AssignmentPayload{LeadID: leadID, DeveloperID: &d2}); err != nil {
		t.Fatalf("AddDeveloper: %v", err)
	}

	got, err := f.assignments.ListAssignments(ctx, alice, leadID)
	if err != nil {
		t.Fatalf("ListAssignments: %v", err)
	}

	if len(got.Assigned) != 1 || got.Assigned[0].ID != d2 {
		t.Errorf("assigned: got %+v, want [%d]", got.Assigned, d2)
	}
	if len(got.Unassigned) != 2 || got.Unassigned[0].ID != d1 || got.Unassigned[1].ID != d3 {
		t.Errorf("unassigned: got %+v, want [%d %d]", got.Unassigned, d1, d3)
	}
}

func TestAssignmentService_ListMissingLeadIsSoftFailure(t *testing.T) {
	f := newFixture()

	_, err := f.assignments.ListAssignments(context.Background(), alice, 42)
	requireHTTPError(t, err, http.StatusOK, "Lead not found")
}

func TestAssignmentService_EnqueuesNotification(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.leads.CreateLead(ctx, alice, &lead.CreateLeadPayload{Title: "Mobile app", ClientName: "Acme"})
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	devID := f.createDeveloper(t, alice, "dana")

	if _, err := f.assignments.AddDeveloper(ctx, alice, &lead.AssignmentPayload{LeadID: created.ID, DeveloperID: &devID}); err != nil {
		t.Fatalf("AddDeveloper: %v", err)
	}

	if len(f.notifier.payloads) != 1 {
		t.Fatalf("enqueued %d notifications, want 1", len(f.notifier.payloads))
	}
	p := f.notifier.payloads[0]
	want := job.DeveloperAssignedPayload{
		LeadID:         created.ID,
		LeadTitle:      "Mobile app",
		ClientName:     "Acme",
		DeveloperID:    devID,
		DeveloperName:  "dana",
		DeveloperEmail: "dana@example.com",
	}
	if p != want {
		t.Errorf("payload: got %+v, want %+v", p, want)
	}

	// A duplicate add must not notify again.
	_, _ = f.assignments.AddDeveloper(ctx, alice, &lead.AssignmentPayload{LeadID: created.ID, DeveloperID: &devID})
	if len(f.notifier.payloads) != 1 {
		t.Errorf("enqueued %d notifications after duplicate, want 1", len(f.notifier.payloads))
	}
}

func TestAssignmentService_EnqueueFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("redis down")
	ctx := context.Background()
	leadID := f.createLead(t, alice, "Lead")
	devID := f.createDeveloper(t, alice, "dana")

	msg, err := f.assignments.AddDeveloper(ctx, alice, &lead.AssignmentPayload{LeadID: leadID, DeveloperID: &devID})
	if err != nil {
		t.Fatalf("AddDeveloper: %v", err)
	}
	if msg != service.MessageDeveloperAdded {
		t.Errorf("message: got %q", msg)
	}
}

func TestAssignmentService_NilNotifier(t *testing.T) {
	store := testutil.NewMemoryStore()
	leads := service.NewLeadService(store)
	developers := service.NewDeveloperService(store)
	assignments := service.NewAssignmentService(store, store, store, nil)
	ctx := context.Background()

	l, _ := leads.CreateLead(ctx, alice, &lead.CreateLeadPayload{Title: "t", ClientName: "c"})
	d, _ := developers.CreateDeveloper(ctx, alice, &developer.CreateDeveloperPayload{Name: "n", Email: "n@example.com", Phone: "1"})

	if _, err := assignments.AddDeveloper(ctx, alice, &lead.AssignmentPayload{LeadID: l.ID, DeveloperID: &d.ID}); err != nil {
		t.Fatalf("AddDeveloper: %v", err)
	}
}

func TestAssignmentService_ConcurrentAddSucceedsOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	leadID := f.createLead(t, alice, "Lead")
	devID := f.createDeveloper(t, alice, "dana")

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.assignments.AddDeveloper(ctx, alice, &lead.AssignmentPayload{LeadID: leadID, DeveloperID: &devID})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Errorf("%d adds succeeded, want exactly 1", succeeded)
	}
	if n := f.store.AssignmentCount(); n != 1 {
		t.Errorf("assignments: %d, want 1", n)
	}
}
