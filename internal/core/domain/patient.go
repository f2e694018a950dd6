package domain

import "strconv"

// Field identifies one attribute of a PatientRecord.
type Field string

// Patient record fields.
const (
	FieldName        Field = "name"
	FieldAge         Field = "age"
	FieldAddress     Field = "address"
	FieldHistory     Field = "history"
	FieldComplaint   Field = "complaint"
	FieldDiagnosis   Field = "diagnosis"
	FieldProcedure   Field = "procedure"
	FieldMedications Field = "medications"
	FieldInsurance   Field = "insurance"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldVisitDate   Field = "visit_date"
)

// Fields lists every record field in declaration order.
var Fields = []Field{
	FieldName,
	FieldAge,
	FieldAddress,
	FieldHistory,
	FieldComplaint,
	FieldDiagnosis,
	FieldProcedure,
	FieldMedications,
	FieldInsurance,
	FieldEmail,
	FieldPhone,
	FieldVisitDate,
}

// Columns is the fixed column order used when a record is flattened into a row.
var Columns = []Field{
	FieldName,
	FieldAge,
	FieldComplaint,
	FieldProcedure,
	FieldPhone,
	FieldEmail,
	FieldAddress,
	FieldVisitDate,
	FieldInsurance,
	FieldMedications,
	FieldHistory,
}

// String returns the column name.
func (f Field) String() string {
	return string(f)
}

// PatientRecord is the structured result of reading one intake form.
// A nil field was not found in the source text; a non-nil empty string
// was found but captured nothing.
type PatientRecord struct {
	Name        *string `json:"name"`
	Age         *int    `json:"age"`
	Address     *string `json:"address"`
	History     *string `json:"history"`
	Complaint   *string `json:"complaint"`
	Diagnosis   *string `json:"diagnosis"`
	Procedure   *string `json:"procedure"`
	Medications *string `json:"medications"`
	Insurance   *string `json:"insurance"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	VisitDate   *string `json:"visit_date"`
}

// Text returns a pointer to the text slot for f, or nil for Age and
// unknown fields.
func (r *PatientRecord) Text(f Field) **string {
	switch f {
	case FieldName:
		return &r.Name
	case FieldAddress:
		return &r.Address
	case FieldHistory:
		return &r.History
	case FieldComplaint:
		return &r.Complaint
	case FieldDiagnosis:
		return &r.Diagnosis
	case FieldProcedure:
		return &r.Procedure
	case FieldMedications:
		return &r.Medications
	case FieldInsurance:
		return &r.Insurance
	case FieldEmail:
		return &r.Email
	case FieldPhone:
		return &r.Phone
	case FieldVisitDate:
		return &r.VisitDate
	default:
		return nil
	}
}

// Value returns the field rendered as a string and whether it is present.
func (r *PatientRecord) Value(f Field) (string, bool) {
	if f == FieldAge {
		if r.Age == nil {
			return "", false
		}
		return strconv.Itoa(*r.Age), true
	}
	slot := r.Text(f)
	if slot == nil || *slot == nil {
		return "", false
	}
	return **slot, true
}

// Row flattens the record in Columns order. Absent fields become empty cells.
func (r *PatientRecord) Row() []string {
	row := make([]string, len(Columns))
	for i, col := range Columns {
		row[i], _ = r.Value(col)
	}
	return row
}

// Present returns the fields that were found, in Fields order.
func (r *PatientRecord) Present() []Field {
	var fields []Field
	for _, col := range Fields {
		if _, ok := r.Value(col); ok {
			fields = append(fields, col)
		}
	}
	return fields
}

// ColumnNames returns Columns as plain strings, for header rows.
func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i, col := range Columns {
		names[i] = col.String()
	}
	return names
}
