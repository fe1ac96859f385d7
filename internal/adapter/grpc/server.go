package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/advisordesk-backend/internal/domain"
	"github.com/simaogato/advisordesk-backend/internal/usecase/custody"
	"github.com/simaogato/advisordesk-backend/internal/usecase/dashboard"
	"github.com/simaogato/advisordesk-backend/internal/usecase/ledger"
	"github.com/simaogato/advisordesk-backend/internal/usecase/payroll"
)

// Server implements the AdvisorDeskService gRPC server
type Server struct {
	DashboardService *dashboard.DashboardService
	PayrollService   *payroll.PayrollService
	LedgerService    *ledger.LedgerService
	CustodyUpdater   *custody.Updater
}

// NewServer creates a new gRPC server instance
func NewServer(
	dashboardService *dashboard.DashboardService,
	payrollService *payroll.PayrollService,
	ledgerService *ledger.LedgerService,
	custodyUpdater *custody.Updater,
) *Server {
	return &Server{
		DashboardService: dashboardService,
		PayrollService:   payrollService,
		LedgerService:    ledgerService,
		CustodyUpdater:   custodyUpdater,
	}
}

type periodRequest struct {
	OwnerID string `json:"ownerId"`
	Month   int    `json:"month"`
	Year    int    `json:"year"`
}

type entryRequest struct {
	Entry *domain.LedgerEntry `json:"entry"`
}

type idRequest struct {
	ID string `json:"id"`
}

// GetMonthlyRealized handles the GetMonthlyRealized RPC
func (s *Server) GetMonthlyRealized(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in periodRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.OwnerID == "" {
		return nil, status.Error(codes.InvalidArgument, "ownerId is required")
	}

	report, err := s.DashboardService.GetMonthlyRealized(ctx, in.OwnerID, in.Month, in.Year)
	if err != nil {
		return nil, mapError(err)
	}

	events := make([]entryResponse, 0, len(report.Events))
	for _, e := range report.Events {
		events = append(events, toEntryResponse(e))
	}

	return encode(monthlyRealizedResponse{
		Month:                  report.Period.Month,
		Year:                   report.Period.Year,
		RealizedRevenue:        money(report.Realized.RealizedRevenue),
		NetNewMoney:            money(report.Realized.NetNewMoney),
		InternalTransferVolume: money(report.Realized.InternalTransferVolume),
		Events:                 events,
		DerivedEvents:          report.DerivedEvents,
		SuppressedRefs:         nonNil(report.SuppressedRefs),
	})
}

// ComputeCommissionMonth handles the ComputeCommissionMonth RPC
func (s *Server) ComputeCommissionMonth(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in periodRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.OwnerID == "" {
		return nil, status.Error(codes.InvalidArgument, "ownerId is required")
	}

	stmt, err := s.PayrollService.ComputeMonth(ctx, in.OwnerID, in.Month, in.Year)
	if err != nil {
		return nil, mapError(err)
	}

	perClass := make([]classResponse, 0, len(stmt.Result.PerClass))
	for _, c := range stmt.Result.PerClass {
		perClass = append(perClass, classResponse{
			AssetClass:    c.AssetClass,
			RevenueAmount: money(c.RevenueAmount),
			PassThrough:   money(c.PassThrough),
			Markup:        money(c.Markup),
			Gross:         money(c.Gross),
		})
	}

	return encode(commissionMonthResponse{
		Month:           stmt.Month.Month,
		Year:            stmt.Month.Year,
		CrossCommission: money(stmt.CrossCommission),
		GrossSalary:     money(stmt.Result.GrossSalary),
		TaxWithheld:     money(stmt.Result.TaxWithheld),
		NetSalary:       money(stmt.Result.NetSalary),
		PerClass:        perClass,
	})
}

// SaveCommissionMonth handles the SaveCommissionMonth RPC
func (s *Server) SaveCommissionMonth(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		Month *domain.CommissionMonth `json:"month"`
	}
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.Month == nil || in.Month.OwnerID == "" {
		return nil, status.Error(codes.InvalidArgument, "month with ownerId is required")
	}

	saved, err := s.PayrollService.SaveMonth(ctx, in.Month)
	if err != nil {
		return nil, mapError(err)
	}

	return encode(map[string]any{"id": saved.ID})
}

// ComputeOfferCommission handles the ComputeOfferCommission RPC
func (s *Server) ComputeOfferCommission(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in idRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	offer, c, err := s.PayrollService.ComputeOffer(ctx, in.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return encode(offerCommissionResponse{
		OfferID:      offer.ID,
		RevenueHouse: money(c.RevenueHouse),
		AdvisorGross: money(c.AdvisorGross),
		AdvisorTax:   money(c.AdvisorTax),
		AdvisorNet:   money(c.AdvisorNet),
	})
}

// CreateLedgerEntry handles the CreateLedgerEntry RPC
func (s *Server) CreateLedgerEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in entryRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.Entry == nil {
		return nil, status.Error(codes.InvalidArgument, "entry is required")
	}

	created, err := s.LedgerService.Create(ctx, in.Entry)
	if err != nil {
		return nil, mapError(err)
	}

	return encode(toEntryResponse(created))
}

// UpdateLedgerEntry handles the UpdateLedgerEntry RPC
func (s *Server) UpdateLedgerEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in entryRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.Entry == nil || in.Entry.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "entry with id is required")
	}

	updated, err := s.LedgerService.Update(ctx, in.Entry)
	if err != nil {
		return nil, mapError(err)
	}

	return encode(toEntryResponse(updated))
}

// DeleteLedgerEntry handles the DeleteLedgerEntry RPC
func (s *Server) DeleteLedgerEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in idRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	if err := s.LedgerService.Delete(ctx, in.ID); err != nil {
		return nil, mapError(err)
	}

	return encode(map[string]any{"id": in.ID, "deleted": true})
}

// GetClientCustody handles the GetClientCustody RPC
func (s *Server) GetClientCustody(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in idRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	client, err := s.CustodyUpdater.GetCustody(ctx, in.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return encode(custodyResponse{
		ClientID:        client.ID,
		Name:            client.Name,
		CustodyOnShore:  money(client.CustodyOnShore),
		CustodyOffShore: money(client.CustodyOffShore),
		CustodyAtual:    money(client.CustodyAtual),
	})
}

// decode maps a Struct request onto a typed request through its JSON form.
// Decimal fields accept both JSON numbers and strings.
func decode(req *structpb.Struct, v any) error {
	raw, err := protojson.Marshal(req)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	return nil
}

// encode converts a typed response into a Struct through its JSON form
func encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	out := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// money renders an amount with two decimals for display
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Services wrap nil-input checks as plain errors
	if strings.HasPrefix(err.Error(), "invalid") {
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err.Error())
}
