package postgres

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// ReferenceGenerator generates transaction reference numbers. References
// are date-prefixed ULIDs so support staff can eyeball when an entry was
// booked.
type ReferenceGenerator struct{}

// NewReferenceGenerator creates a new ReferenceGenerator.
func NewReferenceGenerator() *ReferenceGenerator {
	return &ReferenceGenerator{}
}

// Generate generates a new reference number.
func (g *ReferenceGenerator) Generate() string {
	return fmt.Sprintf("TXN-%s-%s", time.Now().UTC().Format("20060102"), ulid.Make().String())
}
