// Package entity defines the core domain types and validation logic for the application.
// It contains the data breach record, the breached entity with its organization type tags,
// and the media sources that reported a breach, along with their validation rules.
package entity

// Field limits mirrored by the database schema.
const (
	MinBreachYear       = 1970
	MaxBreachYear       = 32767
	MinBreachRecords    = 1
	MaxEntityNameLength = 500
	MaxOrgTypeLength    = 30
	MaxMethodLength     = 30
)

// Entity is the organization that experienced a data breach.
// Name is globally unique.
type Entity struct {
	ID   int64
	Name string
}

// OrganizationType is a free-text tag describing an entity's field of activity.
// The pair (OrganizationType, EntityID) is unique.
type OrganizationType struct {
	ID               int64
	OrganizationType string
	EntityID         int64
}

// DataBreach is one breach event tied to a single entity.
type DataBreach struct {
	ID       int64
	EntityID int64
	Year     int
	Records  int64
	Method   string
}

// Validate checks the minimum-value and length constraints of a breach row.
func (b *DataBreach) Validate() error {
	errs := ValidationErrors{}
	errs.Merge(ValidateYear(b.Year))
	errs.Merge(ValidateRecords(b.Records))
	errs.Merge(ValidateMethod(b.Method))
	return errs.OrNil()
}

// Aggregate is a breach together with its entity, the entity's tags and the breach's sources,
// all ordered by insertion.
type Aggregate struct {
	Breach  DataBreach
	Entity  Entity
	Tags    []string
	Sources []string
}
