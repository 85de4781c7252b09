package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFieldOptions(t *testing.T) {
	opts, err := DecodeFieldOptions(map[string]any{
		"type":           []any{"string", "null"},
		"format":         "email",
		"description":    "Primary contact",
		"if":             "admin?",
		"exclude_if_nil": true,
	})
	require.NoError(t, err)

	assert.Equal(t, []any{"string", "null"}, opts.Type)
	assert.Equal(t, "email", opts.Format)
	assert.Equal(t, "Primary contact", opts.Description)
	assert.True(t, opts.ExcludeIfNil)
	assert.True(t, opts.Conditional())
}

func TestDecodeFieldOptionsRejectsUnknownKeys(t *testing.T) {
	_, err := DecodeFieldOptions(map[string]any{"nullable": true})
	assert.Error(t, err)

	empty, err := DecodeFieldOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, FieldOptions{}, empty)
}

func TestConditional(t *testing.T) {
	tests := []struct {
		name string
		opts FieldOptions
		want bool
	}{
		{name: "none", opts: FieldOptions{}, want: false},
		{name: "if predicate func", opts: FieldOptions{If: func() bool { return false }}, want: true},
		{name: "unless marker", opts: FieldOptions{Unless: true}, want: true},
		{name: "false marker", opts: FieldOptions{If: false}, want: false},
		{name: "empty string", opts: FieldOptions{Unless: ""}, want: false},
		{name: "exclude_if_nil alone", opts: FieldOptions{ExcludeIfNil: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Conditional())
		})
	}
}

func TestSerializerViews(t *testing.T) {
	s := NewSerializer("UserBlueprint")
	s.Default().
		AddField(&Field{Name: "id"}).
		AddField(&Field{Name: "email", DisplayName: "emailAddress"}).
		AddAssociation(&Association{Name: "addresses"})

	view, ok := s.View(DefaultView)
	require.True(t, ok)
	assert.Len(t, view.Fields, 2)

	f, ok := view.Field("email")
	require.True(t, ok)
	assert.Equal(t, "emailAddress", f.Key())

	id, _ := view.Field("id")
	assert.Equal(t, "id", id.Key())

	a, ok := view.Association("addresses")
	require.True(t, ok)
	assert.Equal(t, "addresses", a.Key())

	_, ok = s.View("extended")
	assert.False(t, ok)
	_, ok = (*Serializer)(nil).View(DefaultView)
	assert.False(t, ok)

	s.EnsureView("extended").AddField(&Field{Name: "created_at"})
	_, ok = s.View("extended")
	assert.True(t, ok)
}

func TestTable(t *testing.T) {
	address := NewTable("Address").WithColumn("id", ColumnInteger, false)
	user := NewTable("User").
		WithColumn("email", ColumnString, false).
		WithColumn("nickname", ColumnString, true).
		WithAssociation("addresses", true, address)

	var m Model = user
	assert.Equal(t, "User", m.Name())

	col, ok := m.Column("nickname")
	require.True(t, ok)
	assert.True(t, col.Nullable)

	_, ok = m.Column("missing")
	assert.False(t, ok)

	info, ok := m.Association("addresses")
	require.True(t, ok)
	assert.True(t, info.Collection)
	assert.Equal(t, "Address", info.Related.Name())
}

func TestNilTable(t *testing.T) {
	var nilTable *Table
	var m Model = nilTable

	assert.Equal(t, "", m.Name())
	_, ok := m.Column("id")
	assert.False(t, ok)
	_, ok = m.Association("owner")
	assert.False(t, ok)

	user := NewTable("User").WithAssociation("owner", false, nilTable)
	info, ok := user.Association("owner")
	require.True(t, ok)
	assert.Nil(t, info.Related)
}

func TestColumnTypeKnown(t *testing.T) {
	for _, ct := range ColumnTypes {
		assert.True(t, ct.Known(), ct)
	}
	assert.False(t, ColumnType("json").Known())
}
