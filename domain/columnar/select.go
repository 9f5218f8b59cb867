package columnar

import "github.com/apache/arrow-go/v18/arrow"

// FieldRef ties a selected field to its position in the source schema.
// SourceIndex is the only link back to the table's column data.
type FieldRef struct {
	Field       arrow.Field
	SourceIndex int
}

// FieldRefs is an ordered selection of fields
type FieldRefs []FieldRef

// SelectNumericFields keeps the numeric fields in schema order.
// Each kept field is a copy carrying only name and type.
func SelectNumericFields(fields []arrow.Field) FieldRefs {
	refs := make(FieldRefs, 0, len(fields))
	for idx, f := range fields {
		if f.Type == nil || !IsNumeric(f.Type.ID()) {
			continue
		}
		refs = append(refs, FieldRef{
			Field:       arrow.Field{Name: f.Name, Type: f.Type},
			SourceIndex: idx,
		})
	}
	return refs
}

// Names returns the selected field names in selection order
func (r FieldRefs) Names() []string {
	names := make([]string, len(r))
	for i, ref := range r {
		names[i] = ref.Field.Name
	}
	return names
}

// Schema builds the reduced schema used for report headers
func (r FieldRefs) Schema() *arrow.Schema {
	fields := make([]arrow.Field, len(r))
	for i, ref := range r {
		fields[i] = ref.Field
	}
	return arrow.NewSchema(fields, nil)
}
