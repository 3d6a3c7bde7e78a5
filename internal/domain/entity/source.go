package entity

// Source is a URL citing a report about a breach.
type Source struct {
	ID           int64
	URL          string
	DataBreachID int64
}
