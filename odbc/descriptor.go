// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import (
	"fmt"

	"github.com/fbclient/godbc/odbc/internal/types"
)

// DescSlot names one of the four per-statement descriptor slots.
type DescSlot int

// The four descriptor slots, per spec.md §4.4.
const (
	SlotAppRow DescSlot = iota
	SlotAppParam
	SlotImpRow
	SlotImpParam
)

// BindType selects column-wise (0, the zero value) vs row-wise binding
// for a descriptor's DataPtr records, per spec.md §4.4.
type BindType int64

// BindTypeColumnWise is the zero value: each record's DataPtr points
// into a column array indexed by row. Any other value is a byte stride
// between rows inside a caller row-struct.
const BindTypeColumnWise BindType = 0

// DescField names a field of a descriptor record. SQLSetDescField acts
// only on FieldConciseType: for any other field it changes nothing and
// returns success. SQLGetDescField returns the whole record, not one field.
type DescField int

// Descriptor record fields, per spec.md §3 "Descriptor record".
const (
	FieldName DescField = iota
	FieldConciseType
	FieldVerboseType
	FieldSubtype
	FieldLength
	FieldOctetLength
	FieldPrecision
	FieldScale
	FieldNullable
	FieldUnsigned
	FieldFixedPrecScale
	FieldSearchable
	FieldUpdatable
	FieldAutoUniqueValue
	FieldParameterType
	FieldCaseSensitive
	FieldBaseColumnName
	FieldBaseTableName
	FieldCatalogName
	FieldSchemaName
	FieldTableName
	FieldLabelName
	FieldDataPtr
	FieldOctetLengthPtr
	FieldIndicatorPtr
	FieldDisplaySize
)

// ParamIO distinguishes an IPD record's parameter direction for stored
// procedure calls.
type ParamIO int

// Parameter directions.
const (
	ParamInput ParamIO = iota
	ParamOutput
	ParamInOut
)

// DescRecord is the value type described in spec.md §3 "Descriptor
// record": every documented field, plus the APD/ARD binding triple.
// Record 0 is reserved for bookmarks and is never counted by the
// owning Descriptor's Count.
type DescRecord struct {
	Name        string
	ConciseType types.SQLType
	Verbose     types.VerboseType
	Length      int64
	OctetLength int64
	Precision   uint8
	Scale       int8
	Nullable    bool
	Unsigned    bool

	FixedPrecScale  bool
	Searchable      bool
	Updatable       bool
	AutoUniqueValue bool
	CaseSensitive   bool
	ParameterType   ParamIO

	BaseColumnName string
	BaseTableName  string
	CatalogName    string
	SchemaName     string
	TableName      string
	LabelName      string

	// Binding triple, meaningful only on ARD/APD records. DataPtr is the
	// full contiguous row array (column-wise) or row-struct field the
	// application bound; OctetLengthPtr/IndicatorPtr are one entry per
	// row, mirroring the SQLLEN* arrays ODBC's bind triple actually
	// points at rather than a single scalar.
	CType          types.CType
	DataPtr        []byte
	OctetLengthPtr []int64
	IndicatorPtr   []int64
	DisplaySize    int64
}

// defaultRecord returns a freshly allocated record with SQL_C_DEFAULT
// semantics, per spec.md §4.4's allocation rule.
func defaultRecord() DescRecord {
	return DescRecord{ConciseType: types.SQLChar, CType: types.CDefault}
}

// setConciseType implements the field-derivation rule: setting
// ConciseType resets Precision/Scale/Length/ParameterType/Nullable to
// type defaults and derives Verbose/Subtype, per spec.md §4.4.
func (r *DescRecord) setConciseType(t types.SQLType) {
	r.ConciseType = t
	r.Verbose = types.VerboseOf(t)
	r.Precision, r.Scale, r.Length = 0, 0, 0
	r.ParameterType = ParamInput
	r.Nullable = true
}

// Descriptor is a header plus an array of records, either implicit (one
// per statement, created and destroyed with it) or explicit (allocated
// on a connection and assignable to any of that connection's statement
// slots, reference-counted).
type Descriptor struct {
	Handle

	explicit bool
	conn     *Connection // owning connection, for explicit descriptors
	refs     int         // number of statement slots currently pointing here

	// Header fields, per spec.md §3.
	AllocType      int
	ArraySize      int64
	ArrayStatusPtr []int32
	BindOffsetPtr  *int64
	BindType       BindType
	RowsProcessed  *int64

	records []DescRecord // records[0] is the bookmark slot
}

func newDescriptor(explicit bool, conn *Connection) *Descriptor {
	d := &Descriptor{Handle: newHandle(KindDescriptor), explicit: explicit, conn: conn}
	d.records = make([]DescRecord, 1) // record 0 reserved for bookmarks
	return d
}

// Count is the number of non-bookmark records currently allocated.
func (d *Descriptor) Count() int { return len(d.records) - 1 }

// SetCount allocates or truncates the record array to hold records
// [1..k] with SQL_C_DEFAULT, per spec.md §4.4's "Record allocation"
// rule. Shrinking destroys the excess records outright.
func (d *Descriptor) SetCount(k int) {
	if k < 0 {
		k = 0
	}
	switch {
	case k+1 == len(d.records):
		return
	case k+1 < len(d.records):
		d.records = d.records[:k+1]
	default:
		grown := make([]DescRecord, k+1)
		copy(grown, d.records)
		for i := len(d.records); i <= k; i++ {
			grown[i] = defaultRecord()
		}
		d.records = grown
	}
}

// Record returns the nth record (0 = bookmark), growing Count
// implicitly if n > Count, per spec.md §4.4: "SetDescField(record=n,
// ...) on an n greater than Count implicitly grows Count to n."
func (d *Descriptor) Record(n int) (*DescRecord, error) {
	if n < 0 {
		return nil, fmt.Errorf("odbc: invalid descriptor record number %d", n)
	}
	if n > d.Count() {
		d.SetCount(n)
	}
	return &d.records[n], nil
}

// SetConciseType applies the field-derivation rule for record n.
func (d *Descriptor) SetConciseType(n int, t types.SQLType) error {
	rec, err := d.Record(n)
	if err != nil {
		return err
	}
	rec.setConciseType(t)
	return nil
}

// Attach increments the explicit descriptor's reference count when a
// statement slot is assigned to it.
func (d *Descriptor) Attach() { d.refs++ }

// Detach decrements the reference count when a statement slot is
// reassigned away from this explicit descriptor or the statement that
// referenced it is freed.
func (d *Descriptor) Detach() {
	if d.refs > 0 {
		d.refs--
	}
}

// Refs reports the current reference count (always 0 for implicit
// descriptors, which are never shared).
func (d *Descriptor) Refs() int { return d.refs }

// CopyDesc copies dst's header and all records from src, per spec.md
// §4.4: an empty src (Count = 0) resets dst without dereferencing any
// record; a populated src copied onto a larger dst frees dst's excess
// records (shrinks it to match src's Count).
func CopyDesc(src, dst *Descriptor) error {
	dst.AllocType = src.AllocType
	dst.ArraySize = src.ArraySize
	dst.ArrayStatusPtr = src.ArrayStatusPtr
	dst.BindOffsetPtr = src.BindOffsetPtr
	dst.BindType = src.BindType
	dst.RowsProcessed = src.RowsProcessed

	if src.Count() == 0 {
		dst.records = dst.records[:1]
		return nil
	}

	dst.records = make([]DescRecord, len(src.records))
	copy(dst.records, src.records)
	return nil
}
