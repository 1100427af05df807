package entities

// Appointment is one clinic appointment in the user's collection.
// Date and Time are kept as the free-text, locale-formatted strings the
// client submitted; the server does not reinterpret them.
type Appointment struct {
	ID          int64       `json:"id"`
	PatientName string      `json:"patient_name"`
	DoctorName  string      `json:"doctor_name"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Reason      string      `json:"reason"`
	Enrichment  *Enrichment `json:"enrichment,omitempty"`
}

// AppointmentForm carries the user-editable fields of an appointment.
type AppointmentForm struct {
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Reason      string `json:"reason"`
}

// ApplyForm replaces all user-editable fields. ID and Enrichment are
// deliberately untouched: edits never re-run enrichment.
func (a *Appointment) ApplyForm(form AppointmentForm) {
	a.PatientName = form.PatientName
	a.DoctorName = form.DoctorName
	a.Date = form.Date
	a.Time = form.Time
	a.Reason = form.Reason
}
