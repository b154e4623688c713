package billing

// Cycle is the billing configuration of a card.
type Cycle struct {
	ClosingDay int `json:"closing_day"`
	DueDay     int `json:"due_day"`
}

// Validate checks both days are in [1, 31].
func (c Cycle) Validate() error {
	if err := validateClosingDay(c.ClosingDay); err != nil {
		return err
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return invalidf("due day %d must be between 1 and 31", c.DueDay)
	}
	return nil
}

// Resolve returns the competência a purchase made on date is billed in.
func (c Cycle) Resolve(date Date) (Competencia, error) {
	if err := c.Validate(); err != nil {
		return Competencia{}, err
	}
	return ResolveCompetencia(date, c.ClosingDay)
}

// ClosingDate is the day the invoice of comp closes: the closing day inside
// the competência month, clamped to the month length.
func (c Cycle) ClosingDate(comp Competencia) Date {
	return comp.Day(c.ClosingDay)
}

// DueDate is the payment day of the invoice of comp. When the due day comes
// after the closing day it falls in the same month, otherwise in the next one.
func (c Cycle) DueDate(comp Competencia) Date {
	if c.DueDay > c.ClosingDay {
		return comp.Day(c.DueDay)
	}
	return comp.Next().Day(c.DueDay)
}

// OpenCompetencia is the competência still receiving purchases on today.
func (c Cycle) OpenCompetencia(today Date) (Competencia, error) {
	return c.Resolve(today)
}

// ResolveCompetencia returns the competência of a purchase made on date for a
// card closing on closingDay. A purchase made on the closing day itself
// still belongs to that month; later days roll into the next month. When the
// month is shorter than closingDay the last day of the month is the closing day.
func ResolveCompetencia(date Date, closingDay int) (Competencia, error) {
	if err := validateClosingDay(closingDay); err != nil {
		return Competencia{}, err
	}
	if err := date.Validate(); err != nil {
		return Competencia{}, err
	}
	comp := date.Competencia()
	if date.Day > ClampDay(date.Year, date.Month, closingDay) {
		return comp.Next(), nil
	}
	return comp, nil
}

func validateClosingDay(day int) error {
	if day < 1 || day > 31 {
		return invalidf("closing day %d must be between 1 and 31", day)
	}
	return nil
}
