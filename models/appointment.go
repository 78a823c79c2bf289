package models

// Appointment is one booked visit. Field names are the on-disk document keys.
type Appointment struct {
	PatientName string `json:"patient_name" bson:"patient_name"`
	Date        string `json:"date" bson:"date"` // YYYY-MM-DD
	Time        string `json:"time" bson:"time"` // HH:MM
	MobileNo    string `json:"mobile_no" bson:"mobile_no"`
}

// BookingArgs are the arguments the assistant supplies to bookAppointment.
// The caller's number is never taken from the assistant.
type BookingArgs struct {
	PatientName string `json:"patient_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// WithMobile builds the appointment to persist for the given caller number.
func (a BookingArgs) WithMobile(mobileNo string) Appointment {
	return Appointment{
		PatientName: a.PatientName,
		Date:        a.Date,
		Time:        a.Time,
		MobileNo:    mobileNo,
	}
}
