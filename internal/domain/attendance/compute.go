package attendance

import "time"

// Compute runs the tolerance, hours and observation rules over one record.
// loc is the time zone in which the 08:00 boundary is evaluated.
func Compute(att Attendance, loc *time.Location) Computed {
	c := Computed{Attendance: att}

	if att.DayType == DayTypePresent {
		if att.CheckIn != nil {
			in := EffectiveCheckIn(*att.CheckIn, loc)
			c.EffectiveCheckIn = &in
		}
		if att.CheckOut != nil {
			out := att.CheckOut.In(loc)
			c.EffectiveCheckOut = &out
		}
	}

	worked, overtime := WorkedAndOvertime(att.DayType, att.ExpectedHours, c.EffectiveCheckIn, c.EffectiveCheckOut)
	c.WorkedHours = worked.InexactFloat64()
	c.OvertimeHours = overtime.InexactFloat64()
	c.Observation = Observe(att, loc)

	return c
}

// ComputeAll applies Compute to every record, preserving order.
func ComputeAll(records []Attendance, loc *time.Location) []Computed {
	out := make([]Computed, 0, len(records))
	for _, r := range records {
		out = append(out, Compute(r, loc))
	}
	return out
}
