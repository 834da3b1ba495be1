package types

import "encoding/json"

// Wikidata property and class identifiers consumed by the extractors.
// These are external constants of the knowledge base, treated as
// configuration rather than protocol surface.
const (
	PropertyInstanceOf  = "P31"
	PropertyDateOfBirth = "P569"
	PropertyDateOfDeath = "P570"
	PropertyImage       = "P18"
	PropertyFather      = "P22"
	PropertyMother      = "P25"
	PropertyChild       = "P40"

	// ClassHuman is the entity a class-membership (P31) statement must
	// target for a search hit to survive the human filter.
	ClassHuman = "Q5"

	// MinTimePrecision is the coarsest temporal precision accepted when
	// extracting birth and death years. 9 means "year"; anything coarser
	// (decade, century, millennium) is rejected rather than approximated.
	MinTimePrecision = 9
)

// RawEntity is the wire shape of a single record returned by wbgetentities.
// The core reads it and never mutates it.
type RawEntity struct {
	ID           string              `json:"id"`
	Labels       map[string]Term     `json:"labels,omitempty"`
	Descriptions map[string]Term     `json:"descriptions,omitempty"`
	Claims       map[string][]Claim  `json:"claims,omitempty"`
	Sitelinks    map[string]Sitelink `json:"sitelinks,omitempty"`

	// Missing is set (to an empty string) when the knowledge base has no
	// record for the requested id.
	Missing *string `json:"missing,omitempty"`
}

// IsMissing reports whether the knowledge base returned a tombstone
// instead of a record for this id.
func (e RawEntity) IsMissing() bool {
	return e.Missing != nil
}

// Term is a single language-keyed label or description value.
type Term struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// Sitelink is a per-site link carried by an entity.
type Sitelink struct {
	Site  string `json:"site"`
	Title string `json:"title"`
}

// Claim is one statement about an entity for some property.
type Claim struct {
	MainSnak Snak   `json:"mainsnak"`
	Rank     string `json:"rank,omitempty"`
}

// Snak carries the actual value of a claim. SnakType is "value" for
// concrete values; "somevalue" and "novalue" snaks carry no DataValue.
type Snak struct {
	SnakType  string     `json:"snaktype"`
	Property  string     `json:"property"`
	DataValue *DataValue `json:"datavalue,omitempty"`
}

// DataValue is a typed claim value. Value is kept raw because its shape
// depends on Type ("string", "wikibase-entityid", "time", ...).
type DataValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// TimeValue is the payload of a "time" data value. Time uses signed-era
// notation: "[+-]YYYY...-MM-DDTHH:MM:SSZ". Precision is an integer code
// where 9 means year and larger means finer.
type TimeValue struct {
	Time      string `json:"time"`
	Precision int    `json:"precision"`
	Calendar  string `json:"calendarmodel,omitempty"`
}

// AsString returns the value of a string-typed data value.
func (d *DataValue) AsString() (string, bool) {
	if d == nil || d.Type != "string" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(d.Value, &s); err != nil {
		return "", false
	}
	return s, true
}

// AsEntityID returns the target id of a wikibase-entityid data value.
func (d *DataValue) AsEntityID() (string, bool) {
	if d == nil || d.Type != "wikibase-entityid" {
		return "", false
	}
	var v struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(d.Value, &v); err != nil || v.ID == "" {
		return "", false
	}
	return v.ID, true
}

// AsTime returns the payload of a time data value.
func (d *DataValue) AsTime() (TimeValue, bool) {
	if d == nil || d.Type != "time" {
		return TimeValue{}, false
	}
	var t TimeValue
	if err := json.Unmarshal(d.Value, &t); err != nil || t.Time == "" {
		return TimeValue{}, false
	}
	return t, true
}
