package descriptor

// ColumnType is a backing column's storage type.
type ColumnType string

const (
	ColumnString    ColumnType = "string"
	ColumnText      ColumnType = "text"
	ColumnInteger   ColumnType = "integer"
	ColumnFloat     ColumnType = "float"
	ColumnDecimal   ColumnType = "decimal"
	ColumnBoolean   ColumnType = "boolean"
	ColumnDate      ColumnType = "date"
	ColumnDatetime  ColumnType = "datetime"
	ColumnTimestamp ColumnType = "timestamp"
	ColumnUUID      ColumnType = "uuid"
)

// ColumnTypes lists the recognized column types.
var ColumnTypes = []ColumnType{
	ColumnString, ColumnText, ColumnInteger, ColumnFloat, ColumnDecimal,
	ColumnBoolean, ColumnDate, ColumnDatetime, ColumnTimestamp, ColumnUUID,
}

// Known reports whether t is in the recognized vocabulary.
func (t ColumnType) Known() bool {
	for _, known := range ColumnTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Column is the metadata of one backing column.
type Column struct {
	Type     ColumnType
	Nullable bool
}

// AssociationInfo is a model's reflection of one association.
type AssociationInfo struct {
	Collection bool
	// Related is the associated model, nil when unknown.
	Related Model
}

// Model exposes the column and association metadata of a backing data structure.
type Model interface {
	Name() string
	Column(name string) (Column, bool)
	Association(name string) (AssociationInfo, bool)
}

// Table is an in-memory Model.
type Table struct {
	TableName    string
	Columns      map[string]Column
	Associations map[string]AssociationInfo
}

// NewTable creates an empty table model.
func NewTable(name string) *Table {
	return &Table{
		TableName:    name,
		Columns:      make(map[string]Column),
		Associations: make(map[string]AssociationInfo),
	}
}

// Name implements Model. A nil table has no name.
func (t *Table) Name() string {
	if t == nil {
		return ""
	}
	return t.TableName
}

// Column implements Model.
func (t *Table) Column(name string) (Column, bool) {
	if t == nil {
		return Column{}, false
	}
	c, ok := t.Columns[name]
	return c, ok
}

// Association implements Model.
func (t *Table) Association(name string) (AssociationInfo, bool) {
	if t == nil {
		return AssociationInfo{}, false
	}
	a, ok := t.Associations[name]
	return a, ok
}

// WithColumn adds a column and returns the table for chaining.
func (t *Table) WithColumn(name string, typ ColumnType, nullable bool) *Table {
	if t.Columns == nil {
		t.Columns = make(map[string]Column)
	}
	t.Columns[name] = Column{Type: typ, Nullable: nullable}
	return t
}

// WithAssociation adds an association and returns the table for chaining.
// A nil *Table passed as related is stored as an unknown related model.
func (t *Table) WithAssociation(name string, collection bool, related Model) *Table {
	if rt, ok := related.(*Table); ok && rt == nil {
		related = nil
	}
	if t.Associations == nil {
		t.Associations = make(map[string]AssociationInfo)
	}
	t.Associations[name] = AssociationInfo{Collection: collection, Related: related}
	return t
}
