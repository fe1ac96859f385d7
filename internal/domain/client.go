package domain

import (
	"github.com/shopspring/decimal"
)

// Client holds the custody balances moved by client-linked ledger entries.
// CustodyAtual is delta-updated alongside the buckets and is never re-derived
// from them, so legacy records seeded with an independent total keep their offset.
type Client struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"ownerId"`
	Name            string          `json:"name"`
	CustodyOnShore  decimal.Decimal `json:"custodyOnShore"`
	CustodyOffShore decimal.Decimal `json:"custodyOffShore"`
	CustodyAtual    decimal.Decimal `json:"custodyAtual"`
}

// Apply adds delta to the named bucket and to the total
func (c *Client) Apply(delta decimal.Decimal, bucket CustodyBucket) error {
	switch bucket {
	case CustodyOnShore:
		c.CustodyOnShore = c.CustodyOnShore.Add(delta)
	case CustodyOffShore:
		c.CustodyOffShore = c.CustodyOffShore.Add(delta)
	default:
		return invalid("bucket", "must be onshore or offshore")
	}
	c.CustodyAtual = c.CustodyAtual.Add(delta)
	return nil
}
