package attendance

import "time"

// Observation is the reporting label of a record.
type Observation string

const (
	ObservationHoliday            Observation = "HOLIDAY"
	ObservationHomeOffice         Observation = "HOME_OFFICE"
	ObservationMedicalLeave       Observation = "MEDICAL_LEAVE"
	ObservationVacation           Observation = "VACATION"
	ObservationLeave              Observation = "LEAVE"
	ObservationPresentWithoutData Observation = "ERROR (PRESENT WITHOUT DATA)"
	ObservationPendingCheckout    Observation = "PENDING CHECKOUT"
	ObservationLate               Observation = "LATE"
	ObservationOK                 Observation = "OK"
)

// Observe labels a record. The first matching rule wins.
func Observe(att Attendance, loc *time.Location) Observation {
	switch att.DayType {
	case DayTypeHoliday:
		return ObservationHoliday
	case DayTypeHomeOffice:
		return ObservationHomeOffice
	case DayTypeMedicalLeave:
		return ObservationMedicalLeave
	case DayTypeVacation:
		return ObservationVacation
	case DayTypeOtherLeave:
		return ObservationLeave
	}

	switch {
	case att.CheckIn == nil:
		return ObservationPresentWithoutData
	case att.CheckOut == nil:
		return ObservationPendingCheckout
	case IsLate(*att.CheckIn, loc):
		return ObservationLate
	default:
		return ObservationOK
	}
}
