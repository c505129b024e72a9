package models

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Teacher{},
		&Room{},
		&Student{},
		&Course{},
		&LessonBook{},
		&StudentCourse{},
		&CourseStatusLog{},
		&LessonProgress{},
		&Invoice{},
		&Purchase{},
		&Schedule{},
		&StudentSchedule{},
	}
}

// Defaulter is implemented by models whose new rows start from non-zero
// values. Create stores fields exactly as given, so callers apply defaults
// before filling in the row.
type Defaulter interface {
	ApplyDefaults()
}

func (t *Teacher) ApplyDefaults() { t.IsActive = true }

func (r *Room) ApplyDefaults() {
	r.Capacity = 1
	r.IsActive = true
}

func (s *Student) ApplyDefaults() { s.IsActive = true }

func (c *Course) ApplyDefaults() {
	c.DurationMinutes = 60
	c.IsActive = true
}

func (p *Purchase) ApplyDefaults() { p.Quantity = 1 }

func (s *Schedule) ApplyDefaults() { s.IsActive = true }

func (s *StudentSchedule) ApplyDefaults() { s.IsActive = true }
