package grpc

import "github.com/simaogato/advisordesk-backend/internal/domain"

type entryResponse struct {
	ID                  string `json:"id"`
	OwnerID             string `json:"ownerId"`
	Date                string `json:"date"`
	Month               int    `json:"month"`
	Year                int    `json:"year"`
	Direction           string `json:"direction"`
	Category            string `json:"category"`
	SourceKind          string `json:"sourceKind"`
	SourceRecordID      string `json:"sourceRecordId,omitempty"`
	SourceRef           string `json:"sourceRef,omitempty"`
	Amount              string `json:"amount"`
	ClientCustodyBucket string `json:"clientCustodyBucket,omitempty"`
	Notes               string `json:"notes,omitempty"`
}

type monthlyRealizedResponse struct {
	Month                  int             `json:"month"`
	Year                   int             `json:"year"`
	RealizedRevenue        string          `json:"realizedRevenue"`
	NetNewMoney            string          `json:"netNewMoney"`
	InternalTransferVolume string          `json:"internalTransferVolume"`
	Events                 []entryResponse `json:"events"`
	DerivedEvents          int             `json:"derivedEvents"`
	SuppressedRefs         []string        `json:"suppressedRefs"`
}

type classResponse struct {
	AssetClass    string `json:"assetClass"`
	RevenueAmount string `json:"revenueAmount"`
	PassThrough   string `json:"passThrough"`
	Markup        string `json:"markup"`
	Gross         string `json:"gross"`
}

type commissionMonthResponse struct {
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	CrossCommission string          `json:"crossCommission"`
	GrossSalary     string          `json:"grossSalary"`
	TaxWithheld     string          `json:"taxWithheld"`
	NetSalary       string          `json:"netSalary"`
	PerClass        []classResponse `json:"perClass"`
}

type offerCommissionResponse struct {
	OfferID      string `json:"offerId"`
	RevenueHouse string `json:"revenueHouse"`
	AdvisorGross string `json:"advisorGross"`
	AdvisorTax   string `json:"advisorTax"`
	AdvisorNet   string `json:"advisorNet"`
}

type custodyResponse struct {
	ClientID        string `json:"clientId"`
	Name            string `json:"name"`
	CustodyOnShore  string `json:"custodyOnShore"`
	CustodyOffShore string `json:"custodyOffShore"`
	CustodyAtual    string `json:"custodyAtual"`
}

func toEntryResponse(e *domain.LedgerEntry) entryResponse {
	return entryResponse{
		ID:                  e.ID,
		OwnerID:             e.OwnerID,
		Date:                e.Date,
		Month:               e.Month,
		Year:                e.Year,
		Direction:           string(e.Direction),
		Category:            string(e.Category),
		SourceKind:          string(e.SourceKind),
		SourceRecordID:      e.SourceRecordID,
		SourceRef:           e.SourceRef,
		Amount:              money(e.Amount),
		ClientCustodyBucket: string(e.ClientCustodyBucket),
		Notes:               e.Notes,
	}
}

var _ AdvisorDeskServer = (*Server)(nil)
