package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	activitydomain "github.com/fiberafrica/missioncontrol/internal/activitylog/domain"
	activityrepo "github.com/fiberafrica/missioncontrol/internal/activitylog/repository"
	activityservice "github.com/fiberafrica/missioncontrol/internal/activitylog/service"
	clientdomain "github.com/fiberafrica/missioncontrol/internal/client/domain"
	clientrepo "github.com/fiberafrica/missioncontrol/internal/client/repository"
	clientservice "github.com/fiberafrica/missioncontrol/internal/client/service"
	"github.com/fiberafrica/missioncontrol/internal/clock"
	"github.com/fiberafrica/missioncontrol/internal/config"
	"github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	"github.com/fiberafrica/missioncontrol/internal/dropcable/repository"
	"github.com/fiberafrica/missioncontrol/internal/job"
	pricedomain "github.com/fiberafrica/missioncontrol/internal/pricesheet/domain"
	pricerepo "github.com/fiberafrica/missioncontrol/internal/pricesheet/repository"
	priceservice "github.com/fiberafrica/missioncontrol/internal/pricesheet/service"
	"github.com/fiberafrica/missioncontrol/internal/providers/pdf"
	"github.com/fiberafrica/missioncontrol/internal/providers/spreadsheet"
	"github.com/fiberafrica/missioncontrol/pkg/nullable"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sentMail struct {
	to       []string
	template string
	data     map[string]any
}

type fakeEmail struct {
	sent []sentMail
}

func (f *fakeEmail) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	return nil
}

func (f *fakeEmail) SendTemplate(ctx context.Context, to []string, templateName string, data map[string]any) error {
	f.sent = append(f.sent, sentMail{to: to, template: templateName, data: data})
	return nil
}

type fixture struct {
	svc     domain.Service
	db      *gorm.DB
	clock   *clock.FakeClock
	clients clientdomain.Service
	email   *fakeEmail
}

func setup(t *testing.T) fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Order{},
		&clientdomain.Client{},
		&pricedomain.ServiceCost{},
		&activitydomain.Log{},
	))

	clk := clock.NewFakeClock(time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC))
	log := zap.NewNop()
	pricing := config.NewStaticPricingConfigHolder(config.DefaultPricingConfig())

	clients := clientservice.New(clientservice.Params{DB: db, Log: log, Clock: clk, Repo: clientrepo.Provide()})
	prices := priceservice.New(priceservice.Params{DB: db, Log: log, Clock: clk, Repo: pricerepo.Provide(), Pricing: pricing})
	activity := activityservice.NewService(activityservice.Params{DB: db, Log: log, Clock: clk, Repo: activityrepo.Provide()})
	mail := &fakeEmail{}

	svc := New(Params{
		DB:          db,
		Log:         log,
		Clock:       clk,
		Repo:        repository.Provide(),
		Clients:     clients,
		PriceSheets: prices,
		Pricing:     pricing,
		PDF:         pdf.New(),
		Spreadsheet: spreadsheet.New(),
		Email:       mail,
		Activity:    activity,
	})
	return fixture{svc: svc, db: db, clock: clk, clients: clients, email: mail}
}

func (f fixture) client(t *testing.T, company string) clientdomain.Client {
	t.Helper()
	c, err := f.clients.Create(context.Background(), clientdomain.CreateClientRequest{
		FirstName:   "Ops",
		LastName:    "Desk",
		Email:       "ops@example.com",
		CompanyName: nullable.Ptr(company),
	})
	require.NoError(t, err)
	return c
}

func (f fixture) priceSheet(t *testing.T, clientID string, sheet pricedomain.ServiceCost) {
	t.Helper()
	sheet.ID = uuid.NewString()
	sheet.ClientID = clientID
	sheet.OrderType = pricedomain.OrderTypeDropCable
	sheet.CreatedAt = f.clock.Now()
	sheet.UpdatedAt = f.clock.Now()
	require.NoError(t, f.db.Create(&sheet).Error)
}

func week(raw string) job.WeekInput {
	return job.WeekInput{Set: true, Raw: raw}
}

func baseRequest(clientID string) domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		Fields: domain.Fields{
			ClientID:      nullable.Ptr(clientID),
			CircuitNumber: nullable.Ptr(" CIR-001 "),
			SiteBName:     nullable.Ptr("Harbour Towers"),
		},
	}
}

func TestCreate_CanonicalizesWeekAndDerivesQuote(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.client(t, "Maziv Fibre")

	req := baseRequest(c.ID)
	req.Week = week("7")
	req.PM = nullable.Ptr("  ")
	req.County = nullable.Ptr("tablebay")
	req.Notes = &job.NotesInput{Text: nullable.Ptr("site visit booked")}

	order, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "CIR-001", order.CircuitNumber)
	require.NotNil(t, order.Week)
	assert.Equal(t, "2025-07", *order.Week)
	require.NotNil(t, order.QuoteNo)
	assert.Equal(t, "MAZ-Q01007", *order.QuoteNo)
	assert.Nil(t, order.PM)
	require.Len(t, order.Notes, 1)
	assert.Equal(t, "site visit booked", order.Notes[0].Text)
	assert.Equal(t, "2025-02-10T09:00:00Z", order.Notes[0].Timestamp)

	stored, err := f.svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.QuoteNo, stored.QuoteNo)
	assert.Empty(t, stored.InventoryUsed)

	var logs int64
	require.NoError(t, f.db.Model(&activitydomain.Log{}).Where("entity_id = ?", order.ID).Count(&logs).Error)
	assert.Equal(t, int64(1), logs)
}

func TestCreate_QuoteFallsBackToFreeTextClient(t *testing.T) {
	f := setup(t)
	c := f.client(t, "Acme Holdings")

	req := baseRequest(c.ID)
	req.Week = week("2025/3")
	order, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, order.QuoteNo)

	other := f.client(t, "")
	require.NoError(t, f.db.Model(&clientdomain.Client{}).Where("id = ?", other.ID).Update("first_name", "").Error)
	require.NoError(t, f.db.Model(&clientdomain.Client{}).Where("id = ?", other.ID).Update("last_name", "").Error)
	req = baseRequest(other.ID)
	req.Week = week("2025/3")
	req.Client = nullable.Ptr("Openserve Wholesale")
	order, err = f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, order.QuoteNo)
	assert.Equal(t, "OSV-Q02003", *order.QuoteNo)
}

func TestCreate_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.client(t, "Maziv Fibre")

	cases := []struct {
		name   string
		mutate func(*domain.CreateOrderRequest)
		want   error
	}{
		{"missing client", func(r *domain.CreateOrderRequest) { r.ClientID = nil }, domain.ErrInvalidClientID},
		{"bad client", func(r *domain.CreateOrderRequest) { r.ClientID = nullable.Ptr("abc") }, domain.ErrInvalidClientID},
		{"missing circuit", func(r *domain.CreateOrderRequest) { r.CircuitNumber = nullable.Ptr(" ") }, domain.ErrInvalidCircuitNumber},
		{"missing site", func(r *domain.CreateOrderRequest) { r.SiteBName = nil }, domain.ErrInvalidSiteBName},
		{"county", func(r *domain.CreateOrderRequest) { r.County = nullable.Ptr("atlantis") }, domain.ErrInvalidCounty},
		{"status", func(r *domain.CreateOrderRequest) { r.Status = nullable.Ptr("done") }, domain.ErrInvalidStatus},
		{"email", func(r *domain.CreateOrderRequest) { r.EndClientContactEmail = nullable.Ptr("nope") }, domain.ErrInvalidEmail},
		{"distance", func(r *domain.CreateOrderRequest) { r.DPCDistanceMeters = nullable.Ptr(-1.0) }, domain.ErrInvalidDistance},
		{"percent", func(r *domain.CreateOrderRequest) { r.InstallCompletionPercent = nullable.Ptr(150.0) }, domain.ErrInvalidCompletionPercent},
		{"additional", func(r *domain.CreateOrderRequest) { r.AdditionalCost = nullable.Ptr(-5.0) }, domain.ErrInvalidAdditionalCost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest(c.ID)
			tc.mutate(&req)
			_, err := f.svc.Create(ctx, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdate_AppendsNotesAndRegeneratesQuote(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.client(t, "Maziv Fibre")

	req := baseRequest(c.ID)
	req.Week = week("2025-7")
	req.PM = nullable.Ptr("Sipho")
	req.Notes = &job.NotesInput{Text: nullable.Ptr("first")}
	order, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	updated, err := f.svc.Update(ctx, domain.UpdateOrderRequest{
		ID:    order.ID,
		Week:  week("2025/9"),
		Notes: &job.NotesInput{Text: nullable.Ptr("second")},
		Fields: domain.Fields{
			PM: nullable.Ptr(""),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Week)
	assert.Equal(t, "2025-09", *updated.Week)
	require.NotNil(t, updated.QuoteNo)
	assert.Equal(t, "MAZ-Q01009", *updated.QuoteNo)
	assert.Nil(t, updated.PM)
	require.Len(t, updated.Notes, 2)
	assert.Equal(t, "second", updated.Notes[1].Text)
	assert.True(t, updated.UpdatedAt.Equal(f.clock.Now()))

	cleared, err := f.svc.Update(ctx, domain.UpdateOrderRequest{ID: order.ID, Week: week("soon")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Week)
	assert.Nil(t, cleared.QuoteNo)

	replaced, err := f.svc.Update(ctx, domain.UpdateOrderRequest{
		ID:    order.ID,
		Notes: &job.NotesInput{List: []job.Note{{Text: "only", Timestamp: "2025-01-01T00:00:00Z"}}},
	})
	require.NoError(t, err)
	require.Len(t, replaced.Notes, 1)
	assert.Equal(t, "only", replaced.Notes[0].Text)
}

func TestUpdate_NotFound(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Update(context.Background(), domain.UpdateOrderRequest{
		ID:     uuid.NewString(),
		Fields: domain.Fields{PM: nullable.Ptr("x")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Update(context.Background(), domain.UpdateOrderRequest{ID: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestCosts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.client(t, "Maziv Fibre")
	f.priceSheet(t, c.ID, pricedomain.ServiceCost{
		PerMeterRate: nullable.Ptr(20.0),
		Discount:     nullable.Ptr(0.85),
		CalloutCost:  nullable.Ptr(300.0),
	})

	req := baseRequest(c.ID)
	req.Installation = nullable.Ptr(true)
	req.DPCDistanceMeters = nullable.Ptr(150.0)
	req.Week = week("7")
	order, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	costs, err := f.svc.Costs(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 2550.0, costs.Total)
	assert.Equal(t, 2550.0, costs.Subtotal)
	assert.Equal(t, "MAZ-Q01007", *costs.QuoteNo)

	_, err = f.svc.Update(ctx, domain.UpdateOrderRequest{
		ID: order.ID,
		Fields: domain.Fields{
			InstallCompletionPercent: nullable.Ptr(50.0),
			Callout:                  nullable.Ptr(true),
			AdditionalCost:           nullable.Ptr(99.5),
		},
	})
	require.NoError(t, err)

	costs, err = f.svc.Costs(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1575.0, costs.Subtotal)
	assert.Equal(t, 99.5, costs.AdditionalCost)
	assert.Equal(t, 1674.5, costs.Total)
}

func TestCosts_WithoutPriceSheet(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.client(t, "Maziv Fibre")

	req := baseRequest(c.ID)
	req.Installation = nullable.Ptr(true)
	req.SurveyPlanning = nullable.Ptr(true)
	req.DPCDistanceMeters = nullable.Ptr(300.0)
	req.AdditionalCost = nullable.Ptr(45.0)
	order, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	costs, err := f.svc.Costs(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, costs.Subtotal)
	assert.Equal(t, 45.0, costs.Total)

	_, err = f.svc.Costs(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func seedWeek(t *testing.T, f fixture, clientID string) {
	t.Helper()
	ctx := context.Background()
	f.priceSheet(t, clientID, pricedomain.ServiceCost{
		InstallationCost: nullable.Ptr(1000.0),
		Discount:         nullable.Ptr(1.0),
		CalloutCost:      nullable.Ptr(250.25),
	})
	for i, distance := range []float64{50, 80} {
		req := baseRequest(clientID)
		req.CircuitNumber = nullable.Ptr(fmt.Sprintf("CIR-%d", i))
		req.Installation = nullable.Ptr(true)
		req.Callout = nullable.Ptr(i == 1)
		req.DPCDistanceMeters = nullable.Ptr(distance)
		req.Week = week("2025-07")
		_, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
	}
	other := baseRequest(clientID)
	other.Installation = nullable.Ptr(true)
	other.Week = week("2025-08")
	_, err := f.svc.Create(ctx, other)
	require.NoError(t, err)
}

func TestWeeklyTotals(t *testing.T) {
	f := setup(t)
	c := f.client(t, "Maziv Fibre")
	seedWeek(t, f, c.ID)

	totals, err := f.svc.WeeklyTotals(context.Background(), domain.WeeklyTotalsRequest{
		ClientID:  c.ID,
		OrderType: "drop-cable",
		Week:      "7",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-07", totals.Week)
	assert.Equal(t, pricedomain.OrderTypeDropCable, totals.OrderType)
	assert.Equal(t, 2, totals.Count)
	require.Len(t, totals.Items, 2)
	assert.Equal(t, 1000.0, totals.Items[0].Total)
	assert.Equal(t, 1250.25, totals.Items[1].Total)
	assert.Equal(t, 2250.25, totals.Total)
}

func TestWeeklyTotals_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.WeeklyTotals(ctx, domain.WeeklyTotalsRequest{ClientID: "x", Week: "7"})
	assert.ErrorIs(t, err, domain.ErrInvalidClientID)

	_, err = f.svc.WeeklyTotals(ctx, domain.WeeklyTotalsRequest{ClientID: uuid.NewString(), Week: "soon"})
	assert.ErrorIs(t, err, domain.ErrInvalidWeek)

	_, err = f.svc.WeeklyTotals(ctx, domain.WeeklyTotalsRequest{ClientID: uuid.NewString(), Week: "7", OrderType: "link_build"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrderType)

	empty, err := f.svc.WeeklyTotals(ctx, domain.WeeklyTotalsRequest{ClientID: uuid.NewString(), Week: "7"})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, 0.0, empty.Total)
}

func TestExportWeeklyTotals(t *testing.T) {
	f := setup(t)
	c := f.client(t, "Maziv Fibre")
	seedWeek(t, f, c.ID)

	file, err := f.svc.ExportWeeklyTotals(context.Background(), domain.WeeklyTotalsRequest{ClientID: c.ID, Week: "2025-7"})
	require.NoError(t, err)
	assert.Equal(t, "maziv-fibre-weekly-totals-2025-07.xlsx", file.Name)
	assert.Equal(t, spreadsheet.ContentType, file.ContentType)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Body))
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("orders")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestWeeklyQuote(t *testing.T) {
	f := setup(t)
	c := f.client(t, "Maziv Fibre")
	seedWeek(t, f, c.ID)

	file, err := f.svc.WeeklyQuote(context.Background(), domain.WeeklyTotalsRequest{ClientID: c.ID, Week: "7"})
	require.NoError(t, err)
	assert.Equal(t, "maziv-fibre-quote-2025-07.pdf", file.Name)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
}

func TestListByClientIncludesCompanyName(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.client(t, "Maziv Fibre")

	_, err := f.svc.Create(ctx, baseRequest(c.ID))
	require.NoError(t, err)

	orders, err := f.svc.ListByClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].ClientCompanyName)
	assert.Equal(t, "Maziv Fibre", *orders[0].ClientCompanyName)
	assert.Equal(t, "CIR-001", orders[0].CircuitNumber)
}

func TestListByTechnician(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.client(t, "Maziv Fibre")
	tech := uuid.NewString()

	req := baseRequest(c.ID)
	req.TechnicianID = nullable.Ptr(tech)
	_, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, baseRequest(c.ID))
	require.NoError(t, err)

	orders, err := f.svc.ListByTechnician(ctx, tech)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	all, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.client(t, "Maziv Fibre")

	order, err := f.svc.Create(ctx, baseRequest(c.ID))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, order.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, order.ID), domain.ErrNotFound)
	_, err = f.svc.Get(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSendAccessRequest(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.client(t, "Maziv Fibre")

	req := baseRequest(c.ID)
	req.EndClientContactEmail = nullable.Ptr("facilities@harbour.example")
	req.EndClientContactName = nullable.Ptr("Lerato")
	order, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	require.NoError(t, f.svc.SendAccessRequest(ctx, domain.AccessRequest{OrderID: order.ID, RequestedDate: "2025-02-14"}))
	require.Len(t, f.email.sent, 1)
	assert.Equal(t, []string{"facilities@harbour.example"}, f.email.sent[0].to)
	assert.Equal(t, "Lerato", f.email.sent[0].data["contact_name"])
	assert.Equal(t, "CIR-001", f.email.sent[0].data["circuit_number"])

	bare, err := f.svc.Create(ctx, baseRequest(c.ID))
	require.NoError(t, err)
	err = f.svc.SendAccessRequest(ctx, domain.AccessRequest{OrderID: bare.ID})
	assert.ErrorIs(t, err, domain.ErrMissingRecipient)
}
